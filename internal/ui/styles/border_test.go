package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestRenderFrame_Dimensions(t *testing.T) {
	out := RenderFrame("hello\nworld", "notes.txt", 20, 5, true)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 5)
	for _, l := range lines {
		require.Equal(t, 20, ansi.StringWidth(l), "line %q", l)
	}
	require.Equal(t, "╭─ notes.txt ──────╮", lines[0])
	require.Equal(t, "│hello             │", lines[1])
	require.Equal(t, "│world             │", lines[2])
	require.Equal(t, "│                  │", lines[3])
	require.Equal(t, "╰──────────────────╯", lines[4])
}

func TestRenderFrame_CutsOverflow(t *testing.T) {
	out := RenderFrame("a very long line of text\n2\n3\n4", "", 10, 4, false)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 4)
	require.Equal(t, "╭────────╮", lines[0])
	require.Equal(t, "│a very l│", lines[1])
	require.Equal(t, "│2       │", lines[2])
}

func TestRenderFrame_LongTitleTruncated(t *testing.T) {
	out := RenderFrame("", "/a/really/long/path/to/a/document.txt", 16, 3, false)
	top := strings.Split(out, "\n")[0]

	require.Equal(t, 16, ansi.StringWidth(top))
	require.Contains(t, top, "...")
}
