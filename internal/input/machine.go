package input

import (
	"github.com/zjrosen/typetwice/internal/log"
)

// Machine is the confirmation state machine. It is not safe for concurrent
// use; the host delivers events one at a time.
type Machine struct {
	state WritingState
	armed Key
	held  map[Key]struct{}
}

// NewMachine returns a machine in StateNone with no keys held.
func NewMachine() *Machine {
	return &Machine{
		state: StateNone,
		held:  make(map[Key]struct{}),
	}
}

// State returns the current writing state.
func (m *Machine) State() WritingState {
	return m.state
}

// Armed returns the armed key and whether one is armed.
func (m *Machine) Armed() (Key, bool) {
	if m.state != StateSelected {
		return 0, false
	}
	return m.armed, true
}

// IsHeld reports whether k has been pressed and not yet released.
func (m *Machine) IsHeld(k Key) bool {
	_, ok := m.held[k]
	return ok
}

// HeldCount returns the number of keys currently held.
func (m *Machine) HeldCount() int {
	return len(m.held)
}

// OnKeyTyped swallows the host's native typed-character event.
func (m *Machine) OnKeyTyped(KeyEvent) Result {
	return Result{Consumed: true}
}

// OnKeyPress handles a key press. A press for a key that is already held is
// ignored entirely. Otherwise it emits one cue and then either confirms the
// armed key, arms this key, or does nothing for keys without a character.
// A press without a character never confirms, even for the armed key.
func (m *Machine) OnKeyPress(ev KeyEvent) Result {
	if _, held := m.held[ev.Code]; held {
		return Result{Consumed: true}
	}
	m.held[ev.Code] = struct{}{}

	effects := []Effect{Cue(ev.Char)}

	switch {
	case m.state == StateSelected && m.armed == ev.Code && ev.HasChar():
		if ev.Code.IsRemoval() {
			effects = append(effects, Remove(1))
		} else {
			effects = append(effects, Append(string(ev.Char)))
		}
		m.state = StateNone
		m.armed = 0
		log.Debug(log.CatInput, "confirmed", "key", ev.Code)

	case ev.HasChar():
		m.armed = ev.Code
		m.state = StateSelected
		log.Debug(log.CatInput, "armed", "key", ev.Code)
	}

	return Result{Consumed: true, Effects: effects}
}

// OnKeyRelease marks the key as released. Releasing a key that was never
// pressed is harmless.
func (m *Machine) OnKeyRelease(ev KeyEvent) Result {
	delete(m.held, ev.Code)
	return Result{Consumed: true}
}

// Handle dispatches ev to OnKeyPress or OnKeyRelease by phase.
func (m *Machine) Handle(ev KeyEvent) Result {
	if ev.Phase == PhaseRelease {
		return m.OnKeyRelease(ev)
	}
	return m.OnKeyPress(ev)
}
