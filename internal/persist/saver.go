// Package persist reads documents and appends committed edits to them.
package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/typetwice/internal/buffer"
	"github.com/zjrosen/typetwice/internal/log"
	"github.com/zjrosen/typetwice/internal/tracing"
)

// ErrNoFile is returned when a document path does not exist.
var ErrNoFile = errors.New("document does not exist")

// Saver appends a Change buffer to one document. Existing content is never
// rewritten.
type Saver struct {
	path   string
	buf    *buffer.Change
	tracer trace.Tracer
}

// Option configures a Saver.
type Option func(*Saver)

// WithTracer overrides the tracer used for save spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Saver) { s.tracer = t }
}

// New returns a Saver that flushes buf to path.
func New(path string, buf *buffer.Change, opts ...Option) *Saver {
	s := &Saver{
		path:   path,
		buf:    buf,
		tracer: tracing.Tracer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Saver) Path() string {
	return s.path
}

// HasUnsavedChanges reports whether the buffer holds text not yet written.
func (s *Saver) HasUnsavedChanges() bool {
	return s.buf.HasUnsavedChanges()
}

// Save appends the buffered text to the file and clears the buffer. The
// file is created if missing. On failure the buffer is left intact so the
// save can be retried.
func (s *Saver) Save(ctx context.Context) error {
	_, span := s.tracer.Start(ctx, tracing.SpanSave,
		trace.WithAttributes(attribute.String(tracing.AttrFilePath, s.path)))
	defer span.End()

	var written int
	err := s.buf.Drain(func(text string) error {
		if text == "" {
			return nil
		}
		n, err := appendFile(s.path, text)
		written = n
		if err != nil {
			return err
		}
		span.SetAttributes(attribute.Int(tracing.AttrChars, utf8.RuneCountInString(text)))
		return nil
	})
	span.SetAttributes(attribute.Int(tracing.AttrBytes, written))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatSave, "save failed", err, "path", s.path)
		return fmt.Errorf("saving %s: %w", s.path, err)
	}

	span.SetStatus(codes.Ok, "")
	log.Info(log.CatSave, "saved", "path", s.path, "bytes", written)
	return nil
}

func appendFile(path, text string) (int, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: path is the document the user opened
	if err != nil {
		return 0, err
	}
	n, err := f.WriteString(text)
	if err != nil {
		_ = f.Close()
		return n, err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return n, err
	}
	return n, f.Close()
}
