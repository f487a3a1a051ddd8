package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/typetwice/internal/input"
)

var namedKeys = map[tea.KeyType]input.Key{
	tea.KeyUp:       input.KeyUp,
	tea.KeyDown:     input.KeyDown,
	tea.KeyLeft:     input.KeyLeft,
	tea.KeyRight:    input.KeyRight,
	tea.KeyHome:     input.KeyHome,
	tea.KeyEnd:      input.KeyEnd,
	tea.KeyPgUp:     input.KeyPageUp,
	tea.KeyPgDown:   input.KeyPageDown,
	tea.KeyInsert:   input.KeyInsert,
	tea.KeyEsc:      input.KeyEscape,
	tea.KeyShiftTab: input.KeyShift,
	tea.KeyF1:       input.KeyF1,
	tea.KeyF2:       input.KeyF2,
	tea.KeyF3:       input.KeyF3,
	tea.KeyF4:       input.KeyF4,
	tea.KeyF5:       input.KeyF5,
	tea.KeyF6:       input.KeyF6,
	tea.KeyF7:       input.KeyF7,
	tea.KeyF8:       input.KeyF8,
	tea.KeyF9:       input.KeyF9,
	tea.KeyF10:      input.KeyF10,
	tea.KeyF11:      input.KeyF11,
	tea.KeyF12:      input.KeyF12,
}

// keyEvents translates a terminal key message into presses for the
// confirmation machine. Terminals only report presses; releases are
// synthesized by the model. Pasted text yields nothing, since it cannot be
// typed twice.
func keyEvents(msg tea.KeyMsg) []input.KeyEvent {
	if msg.Paste {
		return nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return []input.KeyEvent{input.Press(input.KeyAlt, input.NoChar)}
		}
		evs := make([]input.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			evs = append(evs, input.PressRune(r))
		}
		return evs
	case tea.KeySpace:
		return []input.KeyEvent{input.Press(input.KeySpace, ' ')}
	case tea.KeyEnter:
		return []input.KeyEvent{input.Press(input.KeyEnter, '\n')}
	case tea.KeyTab:
		return []input.KeyEvent{input.Press(input.KeyTab, '\t')}
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []input.KeyEvent{input.Press(input.KeyBackspace, '\b')}
	case tea.KeyDelete:
		return []input.KeyEvent{input.Press(input.KeyDelete, 0x7f)}
	}

	if k, ok := namedKeys[msg.Type]; ok {
		// Escape never writes a control byte into the document.
		return []input.KeyEvent{input.Press(k, input.NoChar)}
	}
	// Remaining key types are control combinations.
	return []input.KeyEvent{input.Press(input.KeyCtrl, input.NoChar)}
}
