package input

import (
	"fmt"
	"strings"
)

// EffectKind identifies what an effect does when applied.
type EffectKind int

const (
	// EffectCue requests one audio cue for Symbol.
	EffectCue EffectKind = iota
	// EffectAppend appends Text to the document and the change buffer.
	EffectAppend
	// EffectRemove removes Count characters from the end of the document and
	// the change buffer.
	EffectRemove
)

func (k EffectKind) String() string {
	switch k {
	case EffectCue:
		return "cue"
	case EffectAppend:
		return "append"
	case EffectRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Effect is a side effect decided by the Machine. The Machine never applies
// effects itself; the host routes cues to the audio player and queues edits
// for the UI goroutine.
type Effect struct {
	Kind   EffectKind
	Symbol string // EffectCue
	Text   string // EffectAppend
	Count  int    // EffectRemove
}

// Cue builds a cue effect for the normalized form of char.
func Cue(char rune) Effect {
	return Effect{Kind: EffectCue, Symbol: CueSymbol(char)}
}

// Append builds an append effect.
func Append(text string) Effect {
	return Effect{Kind: EffectAppend, Text: text}
}

// Remove builds a remove effect.
func Remove(count int) Effect {
	return Effect{Kind: EffectRemove, Count: count}
}

// IsEdit reports whether the effect mutates the document.
func (e Effect) IsEdit() bool {
	return e.Kind == EffectAppend || e.Kind == EffectRemove
}

func (e Effect) String() string {
	switch e.Kind {
	case EffectCue:
		return fmt.Sprintf("cue(%q)", e.Symbol)
	case EffectAppend:
		return fmt.Sprintf("append(%q)", e.Text)
	case EffectRemove:
		return fmt.Sprintf("remove(%d)", e.Count)
	default:
		return "unknown"
	}
}

// CueSymbol normalizes a produced character for cue lookup. Letters are
// lowercased; everything else, including NoChar, is used literally.
//
// Only the cue is case-insensitive. Appended text keeps the typed case.
func CueSymbol(char rune) string {
	return strings.ToLower(string(char))
}

// Result is what an entry point returns for one event.
type Result struct {
	// Consumed is always true: the host must not run its own text insertion.
	Consumed bool
	Effects  []Effect
}

// Edits returns only the document-mutating effects, in order.
func (r Result) Edits() []Effect {
	var edits []Effect
	for _, e := range r.Effects {
		if e.IsEdit() {
			edits = append(edits, e)
		}
	}
	return edits
}

// Cues returns only the cue effects, in order.
func (r Result) Cues() []Effect {
	var cues []Effect
	for _, e := range r.Effects {
		if e.Kind == EffectCue {
			cues = append(cues, e)
		}
	}
	return cues
}
