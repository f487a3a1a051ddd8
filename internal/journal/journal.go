// Package journal keeps a crash-recovery log of edits that have not been
// saved yet. Every applied edit is recorded under the current session; a
// successful save clears the session's entries. Entries left behind by a
// session that never saved can be replayed into a later one.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/typetwice/internal/log"
	"github.com/zjrosen/typetwice/internal/tracing"
)

// ErrClosed is returned by every method after Close.
var ErrClosed = errors.New("journal is closed")

// OpKind identifies a journaled edit.
type OpKind string

const (
	OpAppend OpKind = "append"
	OpRemove OpKind = "remove"
)

// Op is one journaled edit.
type Op struct {
	Kind  OpKind
	Text  string // OpAppend
	Count int    // OpRemove
}

// Journal is a SQLite-backed edit log. It is safe for concurrent use.
type Journal struct {
	mu      sync.Mutex
	db      *sql.DB
	session string
	tracer  trace.Tracer
}

// Open opens or creates the journal database at path and starts a new
// session.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	// One connection keeps the pragmas and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	j := &Journal{
		db:      db,
		session: uuid.NewString(),
		tracer:  tracing.Tracer(),
	}
	log.Info(log.CatJournal, "journal opened", "path", path, "session", j.session)
	return j, nil
}

// Session returns the current session ID.
func (j *Journal) Session() string {
	return j.session
}

// Record appends op for the document at docPath to the current session.
func (j *Journal) Record(ctx context.Context, docPath string, op Op) error {
	ctx, span := j.tracer.Start(ctx, tracing.SpanJournalRecord, trace.WithAttributes(
		attribute.String(tracing.AttrFilePath, docPath),
		attribute.String(tracing.AttrOpKind, string(op.Kind)),
	))
	defer span.End()

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return ErrClosed
	}

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO ops (session, path, kind, text, count, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		j.session, docPath, string(op.Kind), op.Text, op.Count, time.Now().Unix(),
	)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to record op: %w", err)
	}
	return nil
}

// Clear drops the current session's entries for docPath.
func (j *Journal) Clear(ctx context.Context, docPath string) error {
	ctx, span := j.tracer.Start(ctx, tracing.SpanJournalClear,
		trace.WithAttributes(attribute.String(tracing.AttrFilePath, docPath)))
	defer span.End()

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return ErrClosed
	}

	res, err := j.db.ExecContext(ctx, `DELETE FROM ops WHERE session = ? AND path = ?`, j.session, docPath)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to clear ops: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		span.SetAttributes(attribute.Int64(tracing.AttrOpCount, n))
		log.Debug(log.CatJournal, "cleared", "path", docPath, "ops", n)
	}
	return nil
}

// Pending returns the text other sessions committed to docPath but never
// saved, replayed in order. Each session's removals only reach its own
// text. The result is empty when nothing is pending.
func (j *Journal) Pending(ctx context.Context, docPath string) (string, error) {
	ctx, span := j.tracer.Start(ctx, tracing.SpanJournalReplay,
		trace.WithAttributes(attribute.String(tracing.AttrFilePath, docPath)))
	defer span.End()

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return "", ErrClosed
	}

	ops, err := j.foreignOps(ctx, docPath)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetAttributes(attribute.Int(tracing.AttrOpCount, len(ops)))
	return replay(ops), nil
}

// Adopt takes over the text other sessions left for docPath. Their entries
// are replaced by a single append recorded after the current session's
// own, so a later replay sees the recovered text where it was restored.
// It returns the adopted text, empty when there was none.
func (j *Journal) Adopt(ctx context.Context, docPath string) (string, error) {
	ctx, span := j.tracer.Start(ctx, tracing.SpanJournalAdopt,
		trace.WithAttributes(attribute.String(tracing.AttrFilePath, docPath)))
	defer span.End()

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return "", ErrClosed
	}

	ops, err := j.foreignOps(ctx, docPath)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	text := replay(ops)
	span.SetAttributes(attribute.Int(tracing.AttrOpCount, len(ops)))

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to adopt ops: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM ops WHERE path = ? AND session <> ?`, docPath, j.session,
	); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("failed to adopt ops: %w", err)
	}
	if text != "" {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ops (session, path, kind, text, count, created_at) VALUES (?, ?, ?, ?, 0, ?)`,
			j.session, docPath, string(OpAppend), text, time.Now().Unix(),
		); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return "", fmt.Errorf("failed to adopt ops: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("failed to adopt ops: %w", err)
	}
	log.Debug(log.CatJournal, "adopted", "path", docPath, "ops", len(ops))
	return text, nil
}

// Discard drops other sessions' entries for docPath.
func (j *Journal) Discard(ctx context.Context, docPath string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return ErrClosed
	}

	if _, err := j.db.ExecContext(ctx,
		`DELETE FROM ops WHERE path = ? AND session <> ?`, docPath, j.session,
	); err != nil {
		return fmt.Errorf("failed to discard ops: %w", err)
	}
	return nil
}

// Close closes the database. Entries of the current session survive so a
// later session can recover them.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

type sessionOp struct {
	session string
	Op
}

func (j *Journal) foreignOps(ctx context.Context, docPath string) ([]sessionOp, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT session, kind, text, count FROM ops WHERE path = ? AND session <> ? ORDER BY id`,
		docPath, j.session,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query ops: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ops []sessionOp
	for rows.Next() {
		var (
			op   sessionOp
			kind string
		)
		if err := rows.Scan(&op.session, &kind, &op.Text, &op.Count); err != nil {
			return nil, fmt.Errorf("failed to scan op: %w", err)
		}
		op.Kind = OpKind(kind)
		ops = append(ops, op)
	}
	return ops, rows.Err()
}
