package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/typetwice/internal/keys"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestMarkdown_ListsEveryCommand(t *testing.T) {
	md := Markdown()

	for _, b := range keys.Editor.Bindings() {
		assert.Contains(t, md, "`"+b.Help().Key+"`")
		assert.Contains(t, md, b.Help().Desc)
	}
	assert.Contains(t, md, "## Document")
	assert.Contains(t, md, "## General")
	assert.Contains(t, md, "**twice**")
}

func TestMarkdown_ExplainsHeldKeys(t *testing.T) {
	md := Markdown()
	assert.Contains(t, md, "does not repeat it")
	assert.Contains(t, md, "counts as a second press")
}

func TestMarkdown_FollowsRebinding(t *testing.T) {
	t.Cleanup(keys.ResetForTesting)
	keys.ApplyConfig(keys.Overrides{Save: "ctrl+w"})

	md := Markdown()
	assert.Contains(t, md, "`ctrl+w` save")
	assert.NotContains(t, md, "`ctrl+s`")
}

func TestHelp_SetSize(t *testing.T) {
	m := New("notty").SetSize(120, 40)

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	assert.NotEmpty(t, m.rendered)

	m2 := m.SetSize(80, 24)
	assert.Equal(t, 80, m2.width)
	assert.Equal(t, 120, m.width, "SetSize must not mutate the receiver")
}

func TestHelp_View(t *testing.T) {
	m := New("notty").SetSize(80, 40)
	view := m.View()

	assert.Contains(t, view, "ctrl+s")
	assert.Contains(t, view, "Document")
	assert.Contains(t, view, "press any key to close")
	assert.Len(t, strings.Split(view, "\n"), 40)
}

func TestHelp_Overlay(t *testing.T) {
	m := New("notty").SetSize(80, 40)
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 80)+"\n", 40), "\n")

	out := m.Overlay(bg)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 40)
	assert.Contains(t, out, "ctrl+o")
	assert.Contains(t, out, "..", "background still visible around the box")
}

func TestHelp_ContentWidthBounds(t *testing.T) {
	assert.Equal(t, 20, Model{width: 10}.contentWidth())
	assert.Equal(t, maxContentWidth, Model{width: 300}.contentWidth())
	assert.Equal(t, 44, Model{width: 50}.contentWidth())
}
