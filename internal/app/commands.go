package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/typetwice/internal/config"
	"github.com/zjrosen/typetwice/internal/editor"
	"github.com/zjrosen/typetwice/internal/input"
	"github.com/zjrosen/typetwice/internal/log"
	"github.com/zjrosen/typetwice/internal/ui/modal"
	"github.com/zjrosen/typetwice/internal/ui/toaster"
)

// Dialog IDs.
const (
	dialogOpen        = "open"
	dialogSwitch      = "switch"
	dialogQuit        = "quit"
	dialogQuitUnnamed = "quit-unnamed"
	dialogRecover     = "recover"
)

// releaseMsg ends a hold-run unless a newer press of the same key arrived.
type releaseMsg struct {
	code input.Key
	gen  int
}

// savedMsg reports the outcome of a save.
type savedMsg struct {
	path  string
	chars int
	err   error
	quit  bool   // quit after a successful save
	open  string // open this path after a successful save
}

// openedMsg reports the outcome of opening a document.
type openedMsg struct {
	res editor.OpenResult
	err error
}

// cueChangedMsg signals that cue files were added, changed or removed.
type cueChangedMsg struct{}

func releaseAfter(d time.Duration, code input.Key, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return releaseMsg{code: code, gen: gen}
	})
}

func waitForCueChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return cueChangedMsg{}
	}
}

func (m Model) openCmd(path string) tea.Cmd {
	session := m.session
	ctx := m.ctx
	return func() tea.Msg {
		abs, err := filepath.Abs(config.ExpandHome(path))
		if err != nil {
			return openedMsg{err: fmt.Errorf("resolving %s: %w", path, err)}
		}
		res, err := session.Open(ctx, abs)
		return openedMsg{res: res, err: err}
	}
}

func (m Model) saveCmd(quit bool, open string) tea.Cmd {
	session := m.session
	ctx := m.ctx
	return func() tea.Msg {
		chars := utf8.RuneCountInString(session.Buffered())
		err := session.Save(ctx)
		return savedMsg{path: session.Path(), chars: chars, err: err, quit: quit, open: open}
	}
}

func (m Model) save(quit bool) (tea.Model, tea.Cmd) {
	if m.session.Path() == "" {
		return m.toast("No file open. Press "+openKeyHelp()+" to choose one.", toaster.StyleInfo)
	}
	return m, m.saveCmd(quit, "")
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatSave, "Save failed", msg.err, "path", msg.path)
		if errors.Is(msg.err, editor.ErrNoDocument) {
			return m.toast("No file open", toaster.StyleInfo)
		}
		return m.toast("Save failed: "+msg.err.Error(), toaster.StyleError)
	}

	if msg.quit {
		return m, tea.Quit
	}
	if msg.open != "" {
		return m, m.openCmd(msg.open)
	}
	if msg.chars == 0 {
		return m.toast("Nothing to save", toaster.StyleInfo)
	}
	return m.toast(fmt.Sprintf("Saved %d characters to %s", msg.chars, filepath.Base(msg.path)), toaster.StyleSuccess)
}

func (m Model) promptOpen() (tea.Model, tea.Cmd) {
	return m.showDialog(modal.Config{
		ID:      dialogOpen,
		Title:   "Open file",
		Message: "Text is appended to the end of the file.",
		Input: &modal.InputConfig{
			Placeholder: "path/to/notes.txt",
			Value:       m.session.Path(),
			MaxLength:   4096,
		},
		Buttons: []modal.Button{
			{Label: "Open", Variant: modal.ButtonPrimary},
			{Label: "Cancel", Variant: modal.ButtonSecondary},
		},
	})
}

// requestOpen opens path, asking first when the open document has unsaved
// text that would be dropped.
func (m Model) requestOpen(path string) (tea.Model, tea.Cmd) {
	if path == "" {
		return m, nil
	}
	if m.session.Path() == "" || !m.session.HasUnsavedChanges() {
		return m, m.openCmd(path)
	}
	m.pendingOpen = path
	return m.showDialog(modal.Config{
		ID:      dialogSwitch,
		Title:   "Unsaved changes",
		Message: fmt.Sprintf("Save your changes to %s first?", filepath.Base(m.session.Path())),
		Buttons: []modal.Button{
			{Label: "Save & open", Variant: modal.ButtonPrimary, Key: "y"},
			{Label: "Discard & open", Variant: modal.ButtonDanger, Key: "n"},
			{Label: "Cancel", Variant: modal.ButtonSecondary},
		},
	})
}

func (m Model) handleOpened(msg openedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatSave, "Open failed", msg.err)
		return m.toast("Open failed: "+msg.err.Error(), toaster.StyleError)
	}

	res := msg.res
	m.doc.SetContent(res.Content + res.Unsaved)
	if m.configPath != "" {
		if err := config.SaveLastFile(m.configPath, res.Path); err != nil {
			log.ErrorErr(log.CatConfig, "Saving last file failed", err, "path", res.Path)
		}
	}

	if res.Recoverable != "" {
		return m.showDialog(modal.Config{
			ID:    dialogRecover,
			Title: "Recover unsaved text",
			Message: fmt.Sprintf("An earlier session left %d unsaved characters for %s. Restore them?",
				utf8.RuneCountInString(res.Recoverable), filepath.Base(res.Path)),
			Buttons: []modal.Button{
				{Label: "Restore", Variant: modal.ButtonPrimary, Key: "y"},
				{Label: "Discard", Variant: modal.ButtonDanger, Key: "n"},
				{Label: "Later", Variant: modal.ButtonSecondary},
			},
		})
	}
	return m.toast("Opened "+filepath.Base(res.Path), toaster.StyleInfo)
}

// recover replays journaled text into the view. It runs on the UI
// goroutine because it writes to the document.
func (m Model) recover() (tea.Model, tea.Cmd) {
	if m.session.Path() == "" {
		return m.toast("Open a file first", toaster.StyleInfo)
	}
	text, err := m.session.Recover(m.ctx)
	if err != nil {
		log.ErrorErr(log.CatJournal, "Recover failed", err)
		return m.toast("Recover failed: "+err.Error(), toaster.StyleError)
	}
	if text == "" {
		return m.toast("Nothing to recover", toaster.StyleInfo)
	}
	return m.toast(fmt.Sprintf("Restored %d characters", utf8.RuneCountInString(text)), toaster.StyleSuccess)
}

func (m Model) requestQuit() (tea.Model, tea.Cmd) {
	if !m.session.HasUnsavedChanges() {
		return m, tea.Quit
	}
	if m.session.Path() == "" {
		return m.showDialog(modal.Config{
			ID:      dialogQuitUnnamed,
			Title:   "Quit",
			Message: "No file is open. Your text will be lost.",
			Buttons: []modal.Button{
				{Label: "Quit anyway", Variant: modal.ButtonDanger, Key: "y"},
				{Label: "Cancel", Variant: modal.ButtonSecondary},
			},
		})
	}
	return m.showDialog(modal.Config{
		ID:      dialogQuit,
		Title:   "Unsaved changes",
		Message: fmt.Sprintf("Save your changes to %s before quitting?", filepath.Base(m.session.Path())),
		Buttons: []modal.Button{
			{Label: "Save", Variant: modal.ButtonPrimary, Key: "y"},
			{Label: "Discard", Variant: modal.ButtonDanger, Key: "n"},
			{Label: "Cancel", Variant: modal.ButtonSecondary},
		},
	})
}

func (m Model) handleSubmit(msg modal.SubmitMsg) (tea.Model, tea.Cmd) {
	switch msg.ID {
	case dialogOpen:
		if msg.Choice == 0 {
			return m.requestOpen(msg.Value)
		}
	case dialogSwitch:
		path := m.pendingOpen
		m.pendingOpen = ""
		switch msg.Choice {
		case 0:
			return m, m.saveCmd(false, path)
		case 1:
			m.session.DiscardChanges(m.ctx)
			return m, m.openCmd(path)
		}
	case dialogQuit:
		switch msg.Choice {
		case 0:
			return m, m.saveCmd(true, "")
		case 1:
			m.session.DiscardChanges(m.ctx)
			return m, tea.Quit
		}
	case dialogQuitUnnamed:
		if msg.Choice == 0 {
			m.session.DiscardChanges(m.ctx)
			return m, tea.Quit
		}
	case dialogRecover:
		switch msg.Choice {
		case 0:
			return m.recover()
		case 1:
			if err := m.session.DiscardRecovery(m.ctx); err != nil {
				log.ErrorErr(log.CatJournal, "Discard failed", err)
				return m.toast("Discard failed: "+err.Error(), toaster.StyleError)
			}
			return m.toast("Discarded recovered text", toaster.StyleInfo)
		}
	}
	return m, nil
}
