// Package modal provides the dialogs used by the editor: the open-file
// prompt and the yes/no/cancel confirmations.
package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/typetwice/internal/keys"
	"github.com/zjrosen/typetwice/internal/ui/overlay"
	"github.com/zjrosen/typetwice/internal/ui/styles"
)

// ButtonVariant controls the styling of a button.
type ButtonVariant int

const (
	ButtonPrimary ButtonVariant = iota
	ButtonSecondary
	ButtonDanger
)

// Button is one choice in the dialog.
type Button struct {
	Label   string
	Variant ButtonVariant
	Key     string // shortcut, e.g. "y"; empty for none
}

// InputConfig defines the optional text field.
type InputConfig struct {
	Placeholder string
	Value       string
	MaxLength   int
}

// Config controls modal appearance and behavior.
type Config struct {
	ID       string // echoed in SubmitMsg and CancelMsg
	Title    string
	Message  string
	Input    *InputConfig
	Buttons  []Button
	MinWidth int
}

// SubmitMsg is sent when a button is chosen. Choice indexes Config.Buttons.
type SubmitMsg struct {
	ID     string
	Choice int
	Value  string
}

// CancelMsg is sent when the dialog is dismissed with esc.
type CancelMsg struct {
	ID string
}

// Model is the modal component state.
type Model struct {
	config  Config
	input   textinput.Model
	focused int // button index, or -1 for the input
	width   int
	height  int
}

// New creates a modal. With an Input the text field starts focused, and
// enter in the field submits the first button.
func New(cfg Config) Model {
	if len(cfg.Buttons) == 0 {
		cfg.Buttons = []Button{{Label: "OK"}}
	}
	m := Model{config: cfg}

	if cfg.Input != nil {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = cfg.Input.Placeholder
		ti.Width = 48
		if cfg.Input.MaxLength > 0 {
			ti.CharLimit = cfg.Input.MaxLength
		}
		ti.SetValue(cfg.Input.Value)
		ti.CursorEnd()
		ti.Focus()
		m.input = ti
		m.focused = -1
	}
	return m
}

// ID returns the dialog identifier.
func (m Model) ID() string {
	return m.config.ID
}

// Value returns the input text.
func (m Model) Value() string {
	return m.input.Value()
}

// Focused returns the focused button index, or -1 when the input has focus.
func (m Model) Focused() int {
	return m.focused
}

// Init returns the initial command. For input mode, starts the cursor blink.
func (m Model) Init() tea.Cmd {
	if m.config.Input != nil {
		return textinput.Blink
	}
	return nil
}

// Update handles messages for the modal.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Prompt.Cancel) {
			return m, m.cancel()
		}
		switch msg.String() {
		case "tab", "right":
			if m.focused >= 0 || msg.String() == "tab" {
				m = m.cycle(1)
				return m, nil
			}
		case "shift+tab", "left":
			if m.focused >= 0 || msg.String() == "shift+tab" {
				m = m.cycle(-1)
				return m, nil
			}
		case "enter":
			return m, m.submit(max(m.focused, 0))
		}
		if m.focused >= 0 {
			for i, b := range m.config.Buttons {
				if b.Key != "" && msg.String() == b.Key {
					return m, m.submit(i)
				}
			}
			return m, nil
		}

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			for i := range m.config.Buttons {
				if z := zone.Get(m.zoneID(i)); z != nil && z.InBounds(msg) {
					m.focused = i
					return m, m.submit(i)
				}
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	if m.focused == -1 && m.config.Input != nil {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// cycle moves focus through input (if any) and buttons.
func (m Model) cycle(delta int) Model {
	first := 0
	if m.config.Input != nil {
		first = -1
	}
	n := len(m.config.Buttons) - first
	pos := (m.focused - first + delta + n) % n
	m.focused = pos + first

	if m.config.Input != nil {
		if m.focused == -1 {
			m.input.Focus()
		} else {
			m.input.Blur()
		}
	}
	return m
}

func (m Model) submit(choice int) tea.Cmd {
	msg := SubmitMsg{ID: m.config.ID, Choice: choice, Value: strings.TrimSpace(m.input.Value())}
	return func() tea.Msg { return msg }
}

func (m Model) cancel() tea.Cmd {
	id := m.config.ID
	return func() tea.Msg { return CancelMsg{ID: id} }
}

func (m Model) zoneID(i int) string {
	return "modal-" + m.config.ID + "-" + m.config.Buttons[i].Label
}

// View renders the modal box.
func (m Model) View() string {
	contentWidth := max(m.config.MinWidth, 40, lipgloss.Width(m.config.Title))
	boxWidth := contentWidth + 2

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)
	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	if m.config.Message != "" {
		msgStyle := lipgloss.NewStyle().
			Foreground(styles.TextPrimaryColor).
			Width(contentWidth)
		content.WriteString(msgStyle.Render(m.config.Message))
		content.WriteString("\n\n")
	}
	if m.config.Input != nil {
		content.WriteString(m.input.View())
		content.WriteString("\n\n")
	}
	content.WriteString(m.renderButtons())

	var result strings.Builder
	result.WriteString(titleStyle.Render(m.config.Title))
	result.WriteString("\n")
	result.WriteString(divider)
	result.WriteString("\n")
	result.WriteString(lipgloss.NewStyle().Padding(1, 1).Render(content.String()))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth).
		Render(result.String())
}

func (m Model) renderButtons() string {
	rendered := make([]string, len(m.config.Buttons))
	for i, b := range m.config.Buttons {
		label := b.Label
		if b.Key != "" {
			label += " (" + b.Key + ")"
		}
		rendered[i] = zone.Mark(m.zoneID(i), buttonStyle(b.Variant, i == m.focused).Render(label))
	}
	return strings.Join(rendered, "  ")
}

func buttonStyle(v ButtonVariant, focused bool) lipgloss.Style {
	switch v {
	case ButtonDanger:
		if focused {
			return styles.DangerButtonFocusedStyle
		}
		return styles.DangerButtonStyle
	case ButtonSecondary:
		if focused {
			return styles.SecondaryButtonFocusedStyle
		}
		return styles.SecondaryButtonStyle
	default:
		if focused {
			return styles.PrimaryButtonFocusedStyle
		}
		return styles.PrimaryButtonStyle
	}
}

// Overlay renders the modal centered on the given background.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// SetSize updates the modal's knowledge of viewport size for overlay centering.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
