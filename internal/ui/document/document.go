// Package document renders the text being written. It implements the
// editor's View: text only ever grows at the end or shrinks from the end.
package document

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/typetwice/internal/log"
	"github.com/zjrosen/typetwice/internal/ui/styles"
)

const cursorGlyph = "▌"

var cursorStyle = lipgloss.NewStyle().Foreground(styles.TextArmedColor)

// Stats summarizes the document text.
type Stats struct {
	Chars int // user-perceived characters
	Words int
	Lines int
}

// Model is the document view. Use it through a pointer; the editor session
// writes to it between Bubble Tea updates.
type Model struct {
	text     []rune
	viewport viewport.Model
	wrap     bool
	follow   bool
}

// New creates an empty document view.
func New(wrapLines bool) *Model {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	return &Model{viewport: vp, wrap: wrapLines, follow: true}
}

// SetContent replaces the whole text, as when a file is opened.
func (m *Model) SetContent(text string) {
	m.text = []rune(text)
	m.follow = true
	m.refresh()
}

// AppendText adds text at the end.
func (m *Model) AppendText(text string) {
	m.text = append(m.text, []rune(text)...)
	m.follow = true
	m.refresh()
}

// RemoveLastNCharacters removes up to n characters from the end. Removing
// more than the text holds empties it.
func (m *Model) RemoveLastNCharacters(n int) {
	if n <= 0 {
		return
	}
	if n > len(m.text) {
		log.Debug(log.CatUI, "Removal past start of document", "requested", n, "len", len(m.text))
		n = len(m.text)
	}
	m.text = m.text[:len(m.text)-n]
	m.follow = true
	m.refresh()
}

// Text returns the full document text.
func (m *Model) Text() string {
	return string(m.text)
}

// Len returns the length in runes.
func (m *Model) Len() int {
	return len(m.text)
}

// Stats counts characters, words and lines.
func (m *Model) Stats() Stats {
	s := string(m.text)
	st := Stats{
		Chars: uniseg.GraphemeClusterCount(s),
		Words: len(strings.Fields(s)),
	}
	if s != "" {
		st.Lines = strings.Count(s, "\n") + 1
	}
	return st
}

// SetSize sets the visible area.
func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.refresh()
}

// SetWrap toggles soft wrapping.
func (m *Model) SetWrap(on bool) {
	m.wrap = on
	m.refresh()
}

// AtBottom reports whether the end of the text is visible.
func (m *Model) AtBottom() bool {
	return m.viewport.AtBottom()
}

// ScrollPercent returns how far the view is scrolled, 0..1.
func (m *Model) ScrollPercent() float64 {
	return m.viewport.ScrollPercent()
}

// Update handles scrolling (mouse wheel). Scrolling up stops following the
// end of the text until the next edit.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	m.follow = m.viewport.AtBottom()
	return cmd
}

// View renders the visible part of the text.
func (m *Model) View() string {
	return m.viewport.View()
}

// refresh lays out the text for the current width.
func (m *Model) refresh() {
	m.viewport.SetContent(Layout(string(m.text), m.viewport.Width, m.wrap) + cursorStyle.Render(cursorGlyph))
	if m.follow {
		m.viewport.GotoBottom()
	}
}

// Layout wraps text to width. Words move to the next line whole; words
// longer than the line are broken. Tabs are expanded to four spaces.
func Layout(text string, width int, soft bool) string {
	text = strings.ReplaceAll(text, "\t", "    ")
	if !soft || width <= 1 {
		return text
	}
	// Leave a cell for the cursor at the end of a full line.
	w := width - 1
	return wrap.String(wordwrap.String(text, w), w)
}
