package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/typetwice/internal/ui/styles"
)

const (
	toolbarHeight = 2 // buttons plus the bottom border
	statusHeight  = 1
)

type tool string

const (
	toolNone tool = ""
	toolOpen tool = "open"
	toolSave tool = "save"
	toolHelp tool = "help"
	toolQuit tool = "quit"
)

var tools = []struct {
	id    tool
	label string
}{
	{toolOpen, "Open"},
	{toolSave, "Save"},
	{toolHelp, "Help"},
	{toolQuit, "Quit"},
}

var toolbarTitleStyle = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Padding(0, 1)

func toolZoneID(t tool) string {
	return "toolbar-" + string(t)
}

// clickedTool returns the toolbar button under a mouse event.
func clickedTool(msg tea.MouseMsg) tool {
	for _, t := range tools {
		if zone.Get(toolZoneID(t.id)).InBounds(msg) {
			return t.id
		}
	}
	return toolNone
}

func (m Model) renderToolbar() string {
	buttons := make([]string, 0, len(tools))
	for _, t := range tools {
		buttons = append(buttons, zone.Mark(toolZoneID(t.id), styles.ToolbarButtonStyle.Render(t.label)))
	}
	left := strings.Join(buttons, "")
	right := toolbarTitleStyle.Render("typetwice")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	line := left
	if gap > 0 {
		line = left + strings.Repeat(" ", gap) + right
	}
	return styles.ToolbarStyle.Width(m.width).Render(styles.TruncateString(line, m.width))
}
