package styles

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// TruncateString truncates a string to fit within maxWidth cells, adding an
// ellipsis if needed. ANSI sequences are preserved.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return ansi.Truncate(s, maxWidth, "")
	}
	return ansi.Truncate(s, maxWidth, "...")
}

// TruncateLeft keeps the end of a plain string, such as a file path, so that
// it fits within maxWidth cells.
func TruncateLeft(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	// Drop runes from the front until the rest fits after "...".
	rs := []rune(s)
	for i := range rs {
		rest := string(rs[i:])
		if runewidth.StringWidth(rest) <= maxWidth-3 {
			return "..." + rest
		}
	}
	return "..."
}

// PadRight pads s with spaces to width cells.
func PadRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + runewidth.FillRight("", width-w)
}
