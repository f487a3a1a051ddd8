package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/typetwice/internal/config"
	"github.com/zjrosen/typetwice/internal/editor"
	"github.com/zjrosen/typetwice/internal/input"
	"github.com/zjrosen/typetwice/internal/journal"
	"github.com/zjrosen/typetwice/internal/mocks"
	"github.com/zjrosen/typetwice/internal/ui/document"
	"github.com/zjrosen/typetwice/internal/ui/modal"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
	zone.NewGlobal()
}

func testConfig() config.Config {
	cfg := config.Defaults()
	cfg.Input.ReleaseAfter = 10 * time.Millisecond
	cfg.UI.MarkdownStyle = "notty"
	return cfg
}

type testOption func(*Options)

func withJournal(j editor.Journal) testOption {
	return func(o *Options) {
		o.Session = editor.NewSession(o.Document, nil, editor.WithJournal(j))
	}
}

func withPlayer(p *mocks.MockPlayer) testOption {
	return func(o *Options) {
		o.Session = editor.NewSession(o.Document, p)
	}
}

func newTestModel(t *testing.T, opts ...testOption) Model {
	t.Helper()
	doc := document.New(true)
	o := Options{Config: testConfig(), Document: doc}
	o.Session = editor.NewSession(doc, nil)
	for _, opt := range opts {
		opt(&o)
	}
	m := New(context.Background(), o)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// tap presses a key and lets its synthetic release fire.
func tap(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	m, _ = update(t, m, msg)
	for _, ev := range keyEvents(msg) {
		m, _ = update(t, m, releaseMsg{code: ev.Code, gen: m.gens[ev.Code]})
	}
	return m
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	return update(t, m, cmd())
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func openDoc(t *testing.T, m Model, path string) Model {
	t.Helper()
	m, _ = run(t, m, m.openCmd(path))
	require.Equal(t, path, m.session.Path())
	return m
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestModel_KeyPressedTwiceTypesOnce(t *testing.T) {
	m := newTestModel(t)

	m = tap(t, m, runes("a"))
	require.Empty(t, m.doc.Text())
	require.False(t, m.session.HasUnsavedChanges())

	m = tap(t, m, runes("a"))
	require.Equal(t, "a", m.doc.Text())
	require.True(t, m.session.HasUnsavedChanges())
}

func TestModel_DifferentKeysDoNotType(t *testing.T) {
	m := newTestModel(t)

	m = tap(t, m, runes("a"))
	m = tap(t, m, runes("b"))

	require.Empty(t, m.doc.Text())
	armed, ok := m.session.Machine().Armed()
	require.True(t, ok)
	require.Equal(t, input.KeyOf('b'), armed)
}

func TestModel_HeldKeyDoesNotType(t *testing.T) {
	m := newTestModel(t)

	// Auto-repeat delivers presses without releases in between.
	for i := 0; i < 5; i++ {
		m, _ = update(t, m, runes("a"))
	}
	require.Empty(t, m.doc.Text())
}

func TestModel_StaleReleaseIsIgnored(t *testing.T) {
	m := newTestModel(t)
	code := input.KeyOf('a')

	m, _ = update(t, m, runes("a"))
	stale := m.gens[code]
	m, _ = update(t, m, runes("a"))

	m, _ = update(t, m, releaseMsg{code: code, gen: stale})
	require.True(t, m.session.Machine().IsHeld(code), "an older timer must not end the hold")

	m, _ = update(t, m, releaseMsg{code: code, gen: m.gens[code]})
	require.False(t, m.session.Machine().IsHeld(code))
}

func TestModel_PressSchedulesRelease(t *testing.T) {
	m := newTestModel(t)

	_, cmd := update(t, m, runes("a"))
	require.NotNil(t, cmd)
}

func TestModel_ShiftedKeyConfirmsInTypedCase(t *testing.T) {
	m := newTestModel(t)

	m = tap(t, m, runes("h"))
	m = tap(t, m, runes("H"))

	require.Equal(t, "H", m.doc.Text())
}

func TestModel_BackspaceTwiceRemovesOne(t *testing.T) {
	m := newTestModel(t)
	for _, r := range "ab" {
		m = tap(t, m, runes(string(r)))
		m = tap(t, m, runes(string(r)))
	}
	require.Equal(t, "ab", m.doc.Text())

	bs := tea.KeyMsg{Type: tea.KeyBackspace}
	m = tap(t, m, bs)
	require.Equal(t, "ab", m.doc.Text())
	m = tap(t, m, bs)
	require.Equal(t, "a", m.doc.Text())
	require.Equal(t, "a", m.session.Buffered())
}

func TestModel_EnterTwiceAddsNewline(t *testing.T) {
	m := newTestModel(t)
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	m = tap(t, m, enter)
	m = tap(t, m, enter)

	require.Equal(t, "\n", m.doc.Text())
}

func TestModel_EscapeNeverWrites(t *testing.T) {
	m := newTestModel(t)
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	m = tap(t, m, esc)
	m = tap(t, m, esc)

	require.Empty(t, m.doc.Text())
	require.False(t, m.session.HasUnsavedChanges())
}

func TestModel_PasteIsIgnored(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("xx"), Paste: true})

	require.Nil(t, cmd)
	require.Empty(t, m.doc.Text())
}

func TestModel_CuePlayedOncePerPress(t *testing.T) {
	player := mocks.NewMockPlayer(t)
	player.EXPECT().Play("a").Times(2)
	m := newTestModel(t, withPlayer(player))

	m = tap(t, m, runes("a"))
	m, _ = update(t, m, runes("a"))
	// Auto-repeat while held plays nothing.
	_, _ = update(t, m, runes("a"))
}

func TestModel_DefaultCueForKeysWithoutChar(t *testing.T) {
	player := mocks.NewMockPlayer(t)
	player.EXPECT().Play(input.CueSymbol(input.NoChar)).Once()
	m := newTestModel(t, withPlayer(player))

	_ = tap(t, m, tea.KeyMsg{Type: tea.KeyLeft})
}

func TestModel_SaveWithoutDocument(t *testing.T) {
	m := newTestModel(t)
	m = tap(t, m, runes("a"))
	m = tap(t, m, runes("a"))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	require.True(t, m.toaster.Visible())
	require.Contains(t, m.toaster.Message(), "No file open")
	require.True(t, m.session.HasUnsavedChanges())
}

func TestModel_OpenLoadsContent(t *testing.T) {
	path := writeDoc(t, "first\r\nsecond")
	m := newTestModel(t)

	m = openDoc(t, m, path)

	require.Equal(t, "first\nsecond\n", m.doc.Text())
	require.Contains(t, m.toaster.Message(), "notes.txt")
}

func TestModel_OpenMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	m := newTestModel(t)

	m = openDoc(t, m, path)

	require.Empty(t, m.doc.Text())
	require.NoFileExists(t, path)
}

func TestModel_TypingBeforeOpenCarriesOver(t *testing.T) {
	path := writeDoc(t, "old\n")
	m := newTestModel(t)
	m = tap(t, m, runes("z"))
	m = tap(t, m, runes("z"))

	m = openDoc(t, m, path)

	require.Equal(t, "old\nz", m.doc.Text())
	require.Equal(t, "z", m.session.Buffered())
}

func TestModel_SaveAppendsToFile(t *testing.T) {
	path := writeDoc(t, "hello\n")
	m := openDoc(t, newTestModel(t), path)
	m = tap(t, m, runes("x"))
	m = tap(t, m, runes("x"))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = run(t, m, cmd)

	require.Equal(t, "hello\nx", readFile(t, path))
	require.False(t, m.session.HasUnsavedChanges())
	require.Contains(t, m.toaster.Message(), "Saved 1 characters")
}

func TestModel_SaveNothing(t *testing.T) {
	path := writeDoc(t, "hello\n")
	m := openDoc(t, newTestModel(t), path)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = run(t, m, cmd)

	require.Equal(t, "Nothing to save", m.toaster.Message())
	require.Equal(t, "hello\n", readFile(t, path))
}

func TestModel_SaveErrorKeepsBuffer(t *testing.T) {
	dir := t.TempDir()
	m := openDoc(t, newTestModel(t), filepath.Join(dir, "missing", "notes.txt"))
	m = tap(t, m, runes("q"))
	m = tap(t, m, runes("q"))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = run(t, m, cmd)

	require.Contains(t, m.toaster.Message(), "Save failed")
	require.Equal(t, "q", m.session.Buffered())
}

func TestModel_OpenPrompt(t *testing.T) {
	path := writeDoc(t, "prompted\n")
	m := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	require.NotNil(t, m.dialog)
	require.Equal(t, dialogOpen, m.dialog.ID())

	// Keys go to the prompt, not the document.
	for _, r := range path {
		m, _ = update(t, m, runes(string(r)))
	}
	require.Empty(t, m.doc.Text())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd = run(t, m, cmd) // SubmitMsg
	require.Nil(t, m.dialog)
	m, _ = run(t, m, cmd) // openedMsg

	require.Equal(t, path, m.session.Path())
	require.Equal(t, "prompted\n", m.doc.Text())
}

func TestModel_OpenPromptCancel(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = run(t, m, cmd)

	require.Nil(t, m.dialog)
	require.Empty(t, m.session.Path())
}

func TestModel_SwitchWithUnsavedChangesAsks(t *testing.T) {
	first := writeDoc(t, "one\n")
	second := writeDoc(t, "two\n")
	m := openDoc(t, newTestModel(t), first)
	m = tap(t, m, runes("k"))
	m = tap(t, m, runes("k"))

	m, _ = requestOpen(t, m, second)
	require.NotNil(t, m.dialog)
	require.Equal(t, dialogSwitch, m.dialog.ID())

	// Save & open
	m, cmd := update(t, m, modal.SubmitMsg{ID: dialogSwitch, Choice: 0})
	m, cmd = run(t, m, cmd) // savedMsg
	m, _ = run(t, m, cmd)   // openedMsg

	require.Equal(t, "one\nk", readFile(t, first))
	require.Equal(t, second, m.session.Path())
	require.Equal(t, "two\n", m.doc.Text())
}

func TestModel_SwitchDiscard(t *testing.T) {
	first := writeDoc(t, "one\n")
	second := writeDoc(t, "two\n")
	m := openDoc(t, newTestModel(t), first)
	m = tap(t, m, runes("k"))
	m = tap(t, m, runes("k"))

	m, _ = requestOpen(t, m, second)
	m, cmd := update(t, m, modal.SubmitMsg{ID: dialogSwitch, Choice: 1})
	m, _ = run(t, m, cmd)

	require.Equal(t, "one\n", readFile(t, first))
	require.Equal(t, "two\n", m.doc.Text())
	require.False(t, m.session.HasUnsavedChanges())
}

func TestModel_QuitWithoutChanges(t *testing.T) {
	m := newTestModel(t)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	require.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_QuitUnsavedUnnamed(t *testing.T) {
	m := newTestModel(t)
	m = tap(t, m, runes("a"))
	m = tap(t, m, runes("a"))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, m.dialog)
	require.Equal(t, dialogQuitUnnamed, m.dialog.ID())

	m, cmd := update(t, m, runes("y"))
	m, cmd = run(t, m, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_QuitSavesFirst(t *testing.T) {
	path := writeDoc(t, "")
	m := openDoc(t, newTestModel(t), path)
	m = tap(t, m, runes("a"))
	m = tap(t, m, runes("a"))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	require.Equal(t, dialogQuit, m.dialog.ID())

	m, cmd := update(t, m, modal.SubmitMsg{ID: dialogQuit, Choice: 0})
	_, cmd = run(t, m, cmd)

	require.Equal(t, tea.QuitMsg{}, cmd())
	require.Equal(t, "a", readFile(t, path))
}

func TestModel_QuitCancel(t *testing.T) {
	path := writeDoc(t, "")
	m := openDoc(t, newTestModel(t), path)
	m = tap(t, m, runes("a"))
	m = tap(t, m, runes("a"))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	m, _ = update(t, m, modal.CancelMsg{ID: dialogQuit})

	require.Nil(t, m.dialog)
	require.True(t, m.session.HasUnsavedChanges())
}

func recoverableJournal(t *testing.T, docPath, text string) *journal.Journal {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	earlier, err := journal.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, earlier.Record(context.Background(), docPath, journal.Op{Kind: journal.OpAppend, Text: text}))
	require.NoError(t, earlier.Close())

	j, err := journal.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

// freshJournal opens an empty journal and returns it with its database
// path, so a test can reopen it as a later session would.
func freshJournal(t *testing.T) (*journal.Journal, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	j, err := journal.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j, dbPath
}

// pendingAfterRestart reports what a new session would be offered to
// recover for docPath once j is closed.
func pendingAfterRestart(t *testing.T, j *journal.Journal, dbPath, docPath string) string {
	t.Helper()
	require.NoError(t, j.Close())
	next, err := journal.Open(dbPath)
	require.NoError(t, err)
	defer func() { _ = next.Close() }()
	pending, err := next.Pending(context.Background(), docPath)
	require.NoError(t, err)
	return pending
}

func TestModel_QuitDiscardForgetsText(t *testing.T) {
	path := writeDoc(t, "")
	j, dbPath := freshJournal(t)
	m := openDoc(t, newTestModel(t, withJournal(j)), path)
	m = tap(t, m, runes("a"))
	m = tap(t, m, runes("a"))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	require.Equal(t, dialogQuit, m.dialog.ID())
	_, cmd := update(t, m, modal.SubmitMsg{ID: dialogQuit, Choice: 1})

	require.Equal(t, tea.QuitMsg{}, cmd())
	require.Empty(t, readFile(t, path))
	require.Empty(t, pendingAfterRestart(t, j, dbPath, path), "discarded text is not offered again")
}

func TestModel_SwitchDiscardForgetsText(t *testing.T) {
	first := writeDoc(t, "one\n")
	second := writeDoc(t, "two\n")
	j, dbPath := freshJournal(t)
	m := openDoc(t, newTestModel(t, withJournal(j)), first)
	m = tap(t, m, runes("x"))
	m = tap(t, m, runes("x"))

	m, _ = requestOpen(t, m, second)
	m, cmd := update(t, m, modal.SubmitMsg{ID: dialogSwitch, Choice: 1})
	m, _ = run(t, m, cmd)

	require.Equal(t, second, m.session.Path())
	require.Empty(t, pendingAfterRestart(t, j, dbPath, first))
}

func TestModel_TextTypedBeforeOpenIsJournaled(t *testing.T) {
	path := writeDoc(t, "")
	j, dbPath := freshJournal(t)
	m := newTestModel(t, withJournal(j))
	m = tap(t, m, runes("h"))
	m = tap(t, m, runes("h"))

	m = openDoc(t, m, path)
	require.Equal(t, "h", m.doc.Text())
	require.Equal(t, "h", pendingAfterRestart(t, j, dbPath, path))
}

func TestModel_RecoverOnOpen(t *testing.T) {
	path := writeDoc(t, "kept\n")
	m := newTestModel(t, withJournal(recoverableJournal(t, path, "lost")))

	m = openDoc(t, m, path)
	require.NotNil(t, m.dialog)
	require.Equal(t, dialogRecover, m.dialog.ID())
	require.Equal(t, "kept\n", m.doc.Text())

	m, _ = update(t, m, modal.SubmitMsg{ID: dialogRecover, Choice: 0})

	require.Equal(t, "kept\nlost", m.doc.Text())
	require.Equal(t, "lost", m.session.Buffered())
	require.Contains(t, m.toaster.Message(), "Restored 4 characters")
}

func TestModel_RecoverLaterWithKey(t *testing.T) {
	path := writeDoc(t, "")
	m := newTestModel(t, withJournal(recoverableJournal(t, path, "later")))
	m = openDoc(t, m, path)

	m, _ = update(t, m, modal.CancelMsg{ID: dialogRecover})
	require.Empty(t, m.doc.Text())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.Equal(t, "later", m.doc.Text())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.Equal(t, "Nothing to recover", m.toaster.Message())
}

func TestModel_RecoverDiscard(t *testing.T) {
	path := writeDoc(t, "")
	j := recoverableJournal(t, path, "gone")
	m := openDoc(t, newTestModel(t, withJournal(j)), path)

	m, _ = update(t, m, modal.SubmitMsg{ID: dialogRecover, Choice: 1})

	pending, err := j.Pending(context.Background(), path)
	require.NoError(t, err)
	require.Empty(t, pending)
	require.Empty(t, m.doc.Text())
}

func TestModel_RecoverWithoutDocument(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.Equal(t, "Open a file first", m.toaster.Message())
}

func TestModel_HelpSwallowsNextKey(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	require.True(t, m.showHelp)
	require.Contains(t, m.View(), "press any key to close")

	m = tap(t, m, runes("a"))
	require.False(t, m.showHelp)
	_, armed := m.session.Machine().Armed()
	require.False(t, armed, "the closing key is not typed")
}

func TestModel_ViewShowsState(t *testing.T) {
	m := newTestModel(t)

	view := m.View()
	require.Contains(t, view, "untitled")
	require.Contains(t, view, "no file")
	require.Contains(t, view, "Open")
	require.Contains(t, view, "Quit")

	m = tap(t, m, runes("w"))
	require.Contains(t, m.View(), "[w]")

	m = tap(t, m, runes("w"))
	view = m.View()
	require.Contains(t, view, "untitled *")
	require.Contains(t, view, "unsaved")
	require.Contains(t, view, "1 chars")
	require.NotContains(t, view, "[w]")
}

func TestModel_ViewWithoutToolbar(t *testing.T) {
	m := newTestModel(t)
	m.cfg.UI.ShowToolbar = false
	m.layout()

	require.NotContains(t, m.View(), "typetwice")
	require.Equal(t, 24, lipgloss.Height(m.View()))
}

func TestModel_ViewFillsWindow(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	require.Equal(t, 24, lipgloss.Height(view))
	for _, line := range strings.Split(view, "\n") {
		require.LessOrEqual(t, lipgloss.Width(line), 80)
	}
}

func TestModel_ViewBeforeSize(t *testing.T) {
	m := New(context.Background(), Options{Config: testConfig()})
	require.Empty(t, m.View())
}

func TestModel_ToolbarClick(t *testing.T) {
	m := newTestModel(t)
	_ = m.View()

	var z *zone.ZoneInfo
	for i := 0; i < 100; i++ {
		z = zone.Get(toolZoneID(toolHelp))
		if !z.IsZero() {
			break
		}
		time.Sleep(time.Millisecond)
	}
	require.False(t, z.IsZero())

	m, _ = update(t, m, tea.MouseMsg{
		X:      z.StartX,
		Y:      z.StartY,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
	})
	require.True(t, m.showHelp)
}

func TestModel_CueChangeReloads(t *testing.T) {
	ch := make(chan struct{}, 1)
	calls := 0
	m := New(context.Background(), Options{
		Config:      testConfig(),
		CueChanges:  ch,
		OnCueChange: func() { calls++ },
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	ch <- struct{}{}
	m, cmd := run(t, m, waitForCueChange(ch))

	require.Equal(t, 1, calls)
	require.Equal(t, "Cues reloaded", m.toaster.Message())
	require.NotNil(t, cmd, "keeps listening")
}

func TestModel_CueChannelClosed(t *testing.T) {
	ch := make(chan struct{})
	close(ch)
	require.Nil(t, waitForCueChange(ch)())
}

func TestModel_InitOpensLastFile(t *testing.T) {
	path := writeDoc(t, "remembered\n")
	cfg := testConfig()
	cfg.LastFile = path
	m := New(context.Background(), Options{Config: cfg})

	msg, ok := firstMsg(t, m.Init()).(openedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	require.Equal(t, path, msg.res.Path)
}

func TestModel_InitWithoutFile(t *testing.T) {
	m := New(context.Background(), Options{Config: testConfig()})
	require.Nil(t, m.Init())
}

func TestModel_OpenRemembersLastFile(t *testing.T) {
	path := writeDoc(t, "")
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("# settings\naudio:\n  volume: 0.5\n"), 0o600))

	doc := document.New(true)
	m := New(context.Background(), Options{
		Config:     testConfig(),
		ConfigPath: cfgPath,
		Document:   doc,
		Session:    editor.NewSession(doc, nil),
	})
	m = openDoc(t, m, path)

	data := readFile(t, cfgPath)
	require.Contains(t, data, "last_file:")
	require.Contains(t, data, path)
	require.Contains(t, data, "# settings")
}

func requestOpen(t *testing.T, m Model, path string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.requestOpen(path)
	return next.(Model), cmd
}

// firstMsg runs cmd, unwrapping a batch to its first command.
func firstMsg(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		require.NotEmpty(t, batch)
		return batch[0]()
	}
	return msg
}
