package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/typetwice/internal/keys"
	"github.com/zjrosen/typetwice/internal/ui/styles"
)

var statusMutedStyle = lipgloss.NewStyle().Foreground(styles.TextMutedColor)

func openKeyHelp() string {
	return keys.Editor.Open.Help().Key
}

// renderStatus draws the bottom line: file and state on the left, counts
// and key hints on the right.
func (m Model) renderStatus() string {
	inner := max(m.width-2, 0)

	var left []string
	if k, ok := m.session.Machine().Armed(); ok {
		left = append(left, styles.ArmedKeyStyle.Render("["+k.String()+"]"))
	}
	if m.session.HasUnsavedChanges() {
		left = append(left, styles.UnsavedStyle.Render("● unsaved"))
	}
	if p := m.session.Path(); p != "" {
		left = append(left, styles.TruncateLeft(p, max(inner/3, 8)))
	} else {
		left = append(left, statusMutedStyle.Render("no file"))
	}
	leftStr := strings.Join(left, " ")

	st := m.doc.Stats()
	counts := fmt.Sprintf("%d chars  %d words", st.Chars, st.Words)
	right := counts
	hints := m.shortKey.ShortHelpView(keys.Editor.ShortHelp())
	if lipgloss.Width(leftStr)+runewidth.StringWidth(counts)+lipgloss.Width(hints)+4 <= inner {
		right = counts + "  " + hints
	}

	gap := inner - lipgloss.Width(leftStr) - lipgloss.Width(right)
	line := leftStr
	if gap > 0 {
		line = leftStr + strings.Repeat(" ", gap) + right
	}
	return styles.StatusBarStyle.Render(styles.PadRight(styles.TruncateString(line, inner), inner))
}
