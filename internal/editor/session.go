// Package editor ties the confirmation machine to a document: it routes cues
// to the player, defers edits through the effect queue, and keeps the view,
// the change buffer and the journal in step.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/zjrosen/typetwice/internal/buffer"
	"github.com/zjrosen/typetwice/internal/cue"
	"github.com/zjrosen/typetwice/internal/effects"
	"github.com/zjrosen/typetwice/internal/input"
	"github.com/zjrosen/typetwice/internal/journal"
	"github.com/zjrosen/typetwice/internal/log"
	"github.com/zjrosen/typetwice/internal/persist"
)

// ErrNoDocument is returned by Save when no document is open.
var ErrNoDocument = errors.New("no document open")

// View is the editable text surface edits are applied to.
type View interface {
	AppendText(text string)
	RemoveLastNCharacters(n int)
}

// Journal records applied edits for crash recovery.
type Journal interface {
	Record(ctx context.Context, docPath string, op journal.Op) error
	Clear(ctx context.Context, docPath string) error
	Pending(ctx context.Context, docPath string) (string, error)
	Adopt(ctx context.Context, docPath string) (string, error)
	Discard(ctx context.Context, docPath string) error
}

// Session is one editing session over at most one open document.
//
// HandleKey and ApplyPending are called from the UI goroutine. Save may run
// on any goroutine.
type Session struct {
	machine *input.Machine
	queue   *effects.Queue[input.Effect]
	player  cue.Player
	journal Journal

	mu    sync.Mutex
	view  View
	buf   *buffer.Change
	saver *persist.Saver
	path  string
}

// Option configures a Session.
type Option func(*Session)

// WithJournal records every applied edit to j.
func WithJournal(j Journal) Option {
	return func(s *Session) { s.journal = j }
}

// NewSession returns a session with no document open. Edits made before a
// document is opened stay in the buffer until one is.
func NewSession(view View, player cue.Player, opts ...Option) *Session {
	if player == nil {
		player = cue.NoopPlayer{}
	}
	s := &Session{
		machine: input.NewMachine(),
		queue:   effects.NewQueue[input.Effect](),
		player:  player,
		view:    view,
		buf:     buffer.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenResult describes a freshly opened document.
type OpenResult struct {
	Path    string
	Content string
	// Unsaved is text typed before any document was open. It carries over
	// into this document and is not part of Content.
	Unsaved string
	// Recoverable is unsaved text an earlier session left for this
	// document. Empty when there is none.
	Recoverable string
}

// Open loads path and starts a fresh change buffer for it. A missing file
// opens as an empty document and is created on the first save. Text typed
// before the first document was opened carries over and is journaled under
// path; when switching documents, unsaved text of the previous one is
// discarded along with its journal entries, so callers should save or
// confirm first. The caller is responsible for showing Content and Unsaved
// in the view.
func (s *Session) Open(ctx context.Context, path string) (OpenResult, error) {
	content, err := persist.Load(ctx, path)
	if err != nil && !errors.Is(err, persist.ErrNoFile) {
		return OpenResult{}, err
	}

	s.mu.Lock()
	if s.saver != nil {
		s.clearJournal(ctx)
		s.buf.Reset()
		s.buf = buffer.New()
	}
	s.saver = persist.New(path, s.buf)
	s.path = path
	unsaved := s.buf.String()
	if unsaved != "" {
		s.record(ctx, journal.Op{Kind: journal.OpAppend, Text: unsaved})
	}
	s.mu.Unlock()

	res := OpenResult{Path: path, Content: content, Unsaved: unsaved}
	if s.journal != nil {
		pending, err := s.journal.Pending(ctx, path)
		if err != nil {
			log.ErrorErr(log.CatJournal, "reading pending edits failed", err, "path", path)
		}
		res.Recoverable = pending
	}

	log.Info(log.CatSave, "opened", "path", path, "bytes", len(content), "recoverable", len(res.Recoverable))
	return res, nil
}

// Path returns the open document's path, or "" when none is open.
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// SetView replaces the view edits are applied to.
func (s *Session) SetView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
}

// Machine exposes the confirmation state machine.
func (s *Session) Machine() *input.Machine {
	return s.machine
}

// HandleKey runs ev through the state machine. Cues are played immediately;
// edits are queued for ApplyPending.
func (s *Session) HandleKey(ev input.KeyEvent) input.Result {
	res := s.machine.Handle(ev)
	s.dispatch(res)
	return res
}

// HandleTyped swallows a native typed-character event.
func (s *Session) HandleTyped(ev input.KeyEvent) input.Result {
	return s.machine.OnKeyTyped(ev)
}

func (s *Session) dispatch(res input.Result) {
	for _, e := range res.Effects {
		if e.Kind == input.EffectCue {
			s.player.Play(e.Symbol)
			continue
		}
		s.queue.Push(e)
	}
}

// Pending returns the number of queued edits.
func (s *Session) Pending() int {
	return s.queue.Len()
}

// ApplyPending applies every queued edit in order and returns how many
// were applied.
func (s *Session) ApplyPending(ctx context.Context) int {
	return s.queue.Drain(func(e input.Effect) { s.apply(ctx, e) })
}

// RunPending applies edits as they are queued until ctx is done. It is for
// hosts that dedicate a goroutine to the view instead of draining from
// their own loop.
func (s *Session) RunPending(ctx context.Context) {
	s.queue.Run(ctx, func(e input.Effect) { s.apply(ctx, e) })
}

func (s *Session) apply(ctx context.Context, e input.Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var op journal.Op
	switch e.Kind {
	case input.EffectAppend:
		if s.view != nil {
			s.view.AppendText(e.Text)
		}
		s.buf.Append(e.Text)
		op = journal.Op{Kind: journal.OpAppend, Text: e.Text}
	case input.EffectRemove:
		if s.view != nil {
			s.view.RemoveLastNCharacters(e.Count)
		}
		s.buf.Remove(e.Count)
		op = journal.Op{Kind: journal.OpRemove, Count: e.Count}
	default:
		return
	}
	log.Debug(log.CatBuffer, "applied", "effect", e, "pending", s.buf.Len())

	s.record(ctx, op)
}

// record journals op for the open document. Callers hold s.mu.
func (s *Session) record(ctx context.Context, op journal.Op) {
	if s.journal == nil || s.path == "" {
		return
	}
	if err := s.journal.Record(ctx, s.path, op); err != nil {
		log.ErrorErr(log.CatJournal, "record failed", err, "path", s.path)
	}
}

// clearJournal drops the current session's entries for the open document.
// Callers hold s.mu.
func (s *Session) clearJournal(ctx context.Context) {
	if s.journal == nil || s.path == "" {
		return
	}
	if err := s.journal.Clear(ctx, s.path); err != nil {
		log.ErrorErr(log.CatJournal, "clear failed", err, "path", s.path)
	}
}

// HasUnsavedChanges reports whether committed text has not been saved.
func (s *Session) HasUnsavedChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.HasUnsavedChanges()
}

// Buffered returns the unsaved text.
func (s *Session) Buffered() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// Save appends unsaved text to the open document. The write runs without
// holding the session, so edits keep applying meanwhile. Once it succeeds
// the journal is reset to whatever was typed during the write.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	saver, path := s.saver, s.path
	s.mu.Unlock()

	if saver == nil {
		return ErrNoDocument
	}
	if err := saver.Save(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path != path {
		// Another document was opened during the write and already cleared
		// this one's entries.
		return nil
	}
	s.clearJournal(ctx)
	if rest := s.buf.String(); rest != "" {
		s.record(ctx, journal.Op{Kind: journal.OpAppend, Text: rest})
	}
	return nil
}

// DiscardChanges throws away unsaved text of the open document, in the view
// and the buffer, and forgets its journal entries so it is not offered for
// recovery later.
func (s *Session) DiscardChanges(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.buf.Len()
	if n > 0 && s.view != nil {
		s.view.RemoveLastNCharacters(n)
	}
	s.buf.Reset()
	s.clearJournal(ctx)
	log.Info(log.CatBuffer, "discarded unsaved text", "path", s.path, "chars", n)
}

// Recover replays text left by an earlier session into the view and the
// buffer and takes ownership of its journal entries. The recovered text
// lands after anything typed since the document was opened.
func (s *Session) Recover(ctx context.Context) (string, error) {
	if s.journal == nil {
		return "", nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" {
		return "", ErrNoDocument
	}

	text, err := s.journal.Adopt(ctx, s.path)
	if err != nil {
		return "", fmt.Errorf("adopting pending edits: %w", err)
	}
	if text == "" {
		return "", nil
	}
	if s.view != nil {
		s.view.AppendText(text)
	}
	s.buf.Append(text)
	log.Info(log.CatJournal, "recovered", "path", s.path, "chars", len([]rune(text)))
	return text, nil
}

// DiscardRecovery drops text left by earlier sessions for the open
// document.
func (s *Session) DiscardRecovery(ctx context.Context) error {
	if s.journal == nil {
		return nil
	}
	path := s.Path()
	if path == "" {
		return ErrNoDocument
	}
	return s.journal.Discard(ctx, path)
}
