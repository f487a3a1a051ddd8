package input

// WritingState records whether a candidate key is armed and waiting for its
// confirming repeat.
type WritingState int

const (
	StateNone WritingState = iota
	StateSelected
)

func (s WritingState) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateSelected:
		return "selected"
	default:
		return "unknown"
	}
}
