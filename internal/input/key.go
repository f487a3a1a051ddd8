// Package input implements the confirm-by-repeat key handling core.
//
// A key only commits to the document when it is pressed twice in direct
// succession. Presses that arrive while a key is still held down are ignored,
// so auto-repeat from the terminal or OS never commits text on its own.
package input

import (
	"fmt"
	"unicode"
)

// Key is a stable identity for a physical or logical key, independent of
// modifiers. Printable keys use the code point of their unshifted (lowercase)
// character; named keys live above the Unicode range.
type Key int32

// NoChar is the produced character for presses that yield no text, such as a
// bare modifier or an arrow key.
const NoChar rune = '\uFFFF'

// keyBase places named keys above the last valid code point.
const keyBase Key = unicode.MaxRune + 1

// Named keys.
const (
	KeyBackspace Key = keyBase + iota
	KeyDelete
	KeyEnter
	KeyTab
	KeyEscape
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyShift
	KeyCtrl
	KeyAlt
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	keyEnd
)

var keyNames = map[Key]string{
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyEscape:    "esc",
	KeySpace:     "space",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyInsert:    "insert",
	KeyShift:     "shift",
	KeyCtrl:      "ctrl",
	KeyAlt:       "alt",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
}

// KeyOf returns the identity of the key that produces r. Letters fold to
// lowercase so that 'a' and 'A' share one key.
func KeyOf(r rune) Key {
	switch r {
	case ' ':
		return KeySpace
	case '\n', '\r':
		return KeyEnter
	case '\t':
		return KeyTab
	case '\b':
		return KeyBackspace
	case 0x7f:
		return KeyDelete
	case 0x1b:
		return KeyEscape
	}
	return Key(unicode.ToLower(r))
}

// IsNamed reports whether k is one of the named (non-character) keys.
func (k Key) IsNamed() bool {
	return k >= keyBase && k < keyEnd
}

// IsRemoval reports whether a confirmed press of k removes text instead of
// appending it.
func (k Key) IsRemoval() bool {
	return k == KeyBackspace || k == KeyDelete
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= 0 && k <= unicode.MaxRune {
		return string(rune(k))
	}
	return fmt.Sprintf("key(%d)", int32(k))
}

// Phase distinguishes key presses from releases.
type Phase int

const (
	PhasePress Phase = iota
	PhaseRelease
)

func (p Phase) String() string {
	switch p {
	case PhasePress:
		return "press"
	case PhaseRelease:
		return "release"
	default:
		return "unknown"
	}
}

// KeyEvent is a single raw key occurrence delivered by the host.
type KeyEvent struct {
	Code  Key
	Char  rune
	Phase Phase
}

// Press builds a press event for code producing char.
func Press(code Key, char rune) KeyEvent {
	return KeyEvent{Code: code, Char: char, Phase: PhasePress}
}

// Release builds a release event for code.
func Release(code Key) KeyEvent {
	return KeyEvent{Code: code, Char: NoChar, Phase: PhaseRelease}
}

// PressRune builds a press event for a key that types r.
func PressRune(r rune) KeyEvent {
	return Press(KeyOf(r), r)
}

// HasChar reports whether the event produced a character.
func (e KeyEvent) HasChar() bool {
	return e.Char != NoChar
}

func (e KeyEvent) String() string {
	return fmt.Sprintf("%s %s %q", e.Phase, e.Code, e.Char)
}
