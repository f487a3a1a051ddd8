package toaster

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestNew(t *testing.T) {
	m := New()

	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestShow(t *testing.T) {
	m, cmd := New().Show("Saved notes.txt", StyleSuccess, time.Millisecond)

	require.NotNil(t, cmd)
	assert.True(t, m.Visible())
	assert.Equal(t, "Saved notes.txt", m.Message())
	assert.Contains(t, m.View(), "✓ Saved notes.txt")
}

func TestShow_ErrorPrefix(t *testing.T) {
	m, _ := New().Show("disk full", StyleError, time.Millisecond)
	assert.Contains(t, m.View(), "✗ disk full")
}

func TestHide(t *testing.T) {
	m, _ := New().Show("Hello", StyleSuccess, time.Millisecond)
	m = m.Hide()

	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
	assert.Empty(t, m.Message())
}

func TestDismiss_OwnTick(t *testing.T) {
	m, cmd := New().Show("Hello", StyleInfo, time.Millisecond)

	m = m.Update(cmd())

	assert.False(t, m.Visible())
}

func TestDismiss_StaleTickIgnored(t *testing.T) {
	m, first := New().Show("First", StyleSuccess, time.Millisecond)
	m, _ = m.Show("Second", StyleError, time.Millisecond)

	m = m.Update(first())

	assert.True(t, m.Visible(), "older dismissal must not hide a newer toast")
	assert.Equal(t, "Second", m.Message())
}

func TestOverlay_Hidden(t *testing.T) {
	bg := "line1\nline2"
	assert.Equal(t, bg, New().Overlay(bg, 5, 2))
}

func TestOverlay_BottomCentered(t *testing.T) {
	m, _ := New().Show("ok", StyleSuccess, time.Millisecond)
	bg := strings.Repeat(strings.Repeat(".", 20)+"\n", 9) + strings.Repeat(".", 20)

	out := m.Overlay(bg, 20, 10)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 10)
	assert.Equal(t, strings.Repeat(".", 20), lines[0])
	assert.Contains(t, lines[7], "✓ ok")
	assert.Equal(t, strings.Repeat(".", 20), lines[9], "one row of padding below the toast")
}
