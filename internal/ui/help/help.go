// Package help contains the help overlay component.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/typetwice/internal/keys"
	"github.com/zjrosen/typetwice/internal/log"
	"github.com/zjrosen/typetwice/internal/ui/markdown"
	"github.com/zjrosen/typetwice/internal/ui/overlay"
	"github.com/zjrosen/typetwice/internal/ui/styles"
)

const maxContentWidth = 64

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor)
)

// Model holds the help view state. The body is rendered when the size
// changes, not on every frame.
type Model struct {
	style    string
	width    int
	height   int
	rendered string
}

// New creates a help view using the given markdown style ("dark" or "light").
func New(style string) Model {
	return Model{style: style}
}

// SetSize updates dimensions and re-renders the body.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.rendered = m.render()
	return m
}

// Markdown returns the help text for the current key bindings.
func Markdown() string {
	var b strings.Builder
	b.WriteString("# typetwice\n\n")
	b.WriteString("Every key must be pressed **twice** to type it. ")
	b.WriteString("The first press plays its sound and selects the key; ")
	b.WriteString("pressing the same key again writes it. ")
	b.WriteString("Holding a key down does not repeat it, but a hold long enough ")
	b.WriteString("for the terminal to start repeating counts as a second press.\n\n")
	b.WriteString("Press backspace twice to delete one character, ")
	b.WriteString("enter twice for a new line.\n\n")

	sections := []string{"Document", "General"}
	for i, group := range keys.Editor.FullHelp() {
		title := "More"
		if i < len(sections) {
			title = sections[i]
		}
		fmt.Fprintf(&b, "## %s\n\n", title)
		for _, binding := range group {
			b.WriteString(row(binding))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func row(b key.Binding) string {
	h := b.Help()
	return fmt.Sprintf("- `%s` %s\n", h.Key, h.Desc)
}

func (m Model) contentWidth() int {
	w := m.width - 6 // border and padding, plus a margin
	return max(min(w, maxContentWidth), 20)
}

func (m Model) render() string {
	src := Markdown()
	r, err := markdown.New(m.contentWidth(), m.style)
	if err != nil {
		log.ErrorErr(log.CatUI, "Creating help renderer failed", err)
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		log.ErrorErr(log.CatUI, "Rendering help failed", err)
		return src
	}
	return strings.Trim(out, "\n")
}

// box returns the bordered help content.
func (m Model) box() string {
	body := m.rendered
	if body == "" {
		body = m.render()
	}
	footer := footerStyle.Render("press any key to close")
	return boxStyle.Render(body + "\n\n" + footer)
}

// View renders the help box centered on an empty screen.
func (m Model) View() string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.box())
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.box(), background)
}
