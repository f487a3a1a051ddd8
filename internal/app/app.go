// Package app contains the root Bubble Tea model for typetwice.
package app

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/typetwice/internal/config"
	"github.com/zjrosen/typetwice/internal/editor"
	"github.com/zjrosen/typetwice/internal/input"
	"github.com/zjrosen/typetwice/internal/keys"
	"github.com/zjrosen/typetwice/internal/log"
	"github.com/zjrosen/typetwice/internal/ui/document"
	keyhelp "github.com/zjrosen/typetwice/internal/ui/help"
	"github.com/zjrosen/typetwice/internal/ui/modal"
	"github.com/zjrosen/typetwice/internal/ui/styles"
	"github.com/zjrosen/typetwice/internal/ui/toaster"
)

const defaultReleaseAfter = 120 * time.Millisecond

// Options wires the model to its collaborators.
type Options struct {
	Config     config.Config
	ConfigPath string // where last_file is written back; empty disables it
	Path       string // document to open at start; empty falls back to Config.LastFile

	Session  *editor.Session
	Document *document.Model

	// CueChanges fires when the cue directory changed on disk.
	CueChanges <-chan struct{}
	// OnCueChange runs on the UI goroutine for every CueChanges signal.
	OnCueChange func()
}

// Model is the root application model.
type Model struct {
	ctx        context.Context
	cfg        config.Config
	configPath string
	startPath  string

	session *editor.Session
	doc     *document.Model

	help     keyhelp.Model
	shortKey help.Model
	toaster  toaster.Model
	dialog   *modal.Model

	// pendingOpen is the path waiting behind the unsaved-changes dialog.
	pendingOpen string

	releaseAfter time.Duration
	// gens counts presses per key so a stale release timer can be told apart
	// from the one scheduled by the latest press.
	gens map[input.Key]int

	cueChanges  <-chan struct{}
	onCueChange func()

	showHelp bool
	width    int
	height   int
}

// New creates the root model.
func New(ctx context.Context, opts Options) Model {
	doc := opts.Document
	if doc == nil {
		doc = document.New(opts.Config.UI.Wrap)
	}
	session := opts.Session
	if session == nil {
		session = editor.NewSession(doc, nil)
	}

	releaseAfter := opts.Config.Input.ReleaseAfter
	if releaseAfter <= 0 {
		releaseAfter = defaultReleaseAfter
	}

	startPath := opts.Path
	if startPath == "" {
		startPath = opts.Config.LastFile
	}

	return Model{
		ctx:          ctx,
		cfg:          opts.Config,
		configPath:   opts.ConfigPath,
		startPath:    startPath,
		session:      session,
		doc:          doc,
		help:         keyhelp.New(opts.Config.UI.MarkdownStyle),
		shortKey:     help.New(),
		toaster:      toaster.New(),
		releaseAfter: releaseAfter,
		gens:         make(map[input.Key]int),
		cueChanges:   opts.CueChanges,
		onCueChange:  opts.OnCueChange,
	}
}

// Init opens the start document and begins listening for cue changes.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.startPath != "" {
		cmds = append(cmds, m.openCmd(m.startPath))
	}
	if m.cueChanges != nil {
		cmds = append(cmds, waitForCueChange(m.cueChanges))
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case releaseMsg:
		if m.gens[msg.code] == msg.gen {
			delete(m.gens, msg.code)
			m.session.HandleKey(input.Release(msg.code))
		}
		return m, nil

	case modal.SubmitMsg:
		m.dialog = nil
		return m.handleSubmit(msg)

	case modal.CancelMsg:
		m.dialog = nil
		m.pendingOpen = ""
		return m, nil

	case savedMsg:
		return m.handleSaved(msg)

	case openedMsg:
		return m.handleOpened(msg)

	case cueChangedMsg:
		if m.onCueChange != nil {
			m.onCueChange()
		}
		log.Info(log.CatWatcher, "Cue directory changed")
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Cues reloaded", toaster.StyleInfo, toaster.DefaultDuration)
		return m, tea.Batch(cmd, waitForCueChange(m.cueChanges))

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil
	}

	// Cursor blinks and other component messages.
	if m.dialog != nil {
		d, cmd := m.dialog.Update(msg)
		m.dialog = &d
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dialog != nil {
		d, cmd := m.dialog.Update(msg)
		m.dialog = &d
		return m, cmd
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Editor.Quit):
		return m.requestQuit()
	case key.Matches(msg, keys.Editor.Save):
		return m.save(false)
	case key.Matches(msg, keys.Editor.Open):
		return m.promptOpen()
	case key.Matches(msg, keys.Editor.Recover):
		return m.recover()
	case key.Matches(msg, keys.Editor.Help):
		m.showHelp = true
		return m, nil
	}

	return m.typeKey(msg)
}

// typeKey feeds a key through the confirmation machine, schedules its
// synthetic release and applies whatever edits it committed.
func (m Model) typeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	evs := keyEvents(msg)
	if len(evs) == 0 {
		return m, nil
	}

	cmds := make([]tea.Cmd, 0, len(evs))
	for _, ev := range evs {
		m.session.HandleKey(ev)
		m.gens[ev.Code]++
		cmds = append(cmds, releaseAfter(m.releaseAfter, ev.Code, m.gens[ev.Code]))
	}
	m.session.ApplyPending(m.ctx)
	return m, tea.Batch(cmds...)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.dialog != nil {
		d, cmd := m.dialog.Update(msg)
		m.dialog = &d
		return m, cmd
	}
	if m.showHelp {
		if msg.Action == tea.MouseActionRelease {
			m.showHelp = false
		}
		return m, nil
	}

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
		switch clickedTool(msg) {
		case toolOpen:
			return m.promptOpen()
		case toolSave:
			return m.save(false)
		case toolHelp:
			m.showHelp = true
			return m, nil
		case toolQuit:
			return m.requestQuit()
		}
	}
	return m, m.doc.Update(msg)
}

// layout sizes the document and overlays to the window.
func (m *Model) layout() {
	frameH := m.height - m.toolbarHeight() - statusHeight
	m.doc.SetSize(max(m.width-2, 0), max(frameH-2, 0))
	m.help = m.help.SetSize(m.width, m.height)
	if m.dialog != nil {
		m.dialog.SetSize(m.width, m.height)
	}
}

func (m Model) toolbarHeight() int {
	if !m.cfg.UI.ShowToolbar {
		return 0
	}
	return toolbarHeight
}

// showDialog makes cfg the active dialog.
func (m Model) showDialog(cfg modal.Config) (Model, tea.Cmd) {
	d := modal.New(cfg)
	d.SetSize(m.width, m.height)
	m.dialog = &d
	return m, d.Init()
}

func (m Model) toast(message string, style toaster.Style) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(message, style, toaster.DefaultDuration)
	return m, cmd
}

// title is the frame title: the file name, marked while unsaved.
func (m Model) title() string {
	name := "untitled"
	if p := m.session.Path(); p != "" {
		name = filepath.Base(p)
	}
	if m.session.HasUnsavedChanges() {
		name += " *"
	}
	return name
}

// View renders the application.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var sections []string
	if m.cfg.UI.ShowToolbar {
		sections = append(sections, m.renderToolbar())
	}
	frameH := m.height - m.toolbarHeight() - statusHeight
	sections = append(sections,
		styles.RenderFrame(m.doc.View(), m.title(), m.width, frameH, m.dialog == nil && !m.showHelp),
		m.renderStatus(),
	)
	view := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.showHelp {
		view = m.help.Overlay(view)
	}
	if m.dialog != nil {
		view = m.dialog.Overlay(view)
	}
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	return zone.Scan(view)
}

// Document exposes the document view.
func (m Model) Document() *document.Model {
	return m.doc
}

// Session exposes the editing session.
func (m Model) Session() *editor.Session {
	return m.session
}
