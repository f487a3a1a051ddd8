package persist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/typetwice/internal/tracing"
)

// Load reads the document at path for display. Every line, including the
// last, is terminated with "\n" and "\r\n" endings are normalized. The file
// itself is not changed: a save appends right after its last byte, so text
// typed after a file lacking a final newline joins its last line on disk.
func Load(ctx context.Context, path string) (string, error) {
	_, span := tracing.Tracer().Start(ctx, tracing.SpanLoad,
		trace.WithAttributes(attribute.String(tracing.AttrFilePath, path)))
	defer span.End()

	f, err := os.Open(path) //nolint:gosec // G304: path is the document the user opened
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, ErrNoFile)
		}
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	text, err := readLines(f)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	span.SetAttributes(attribute.Int(tracing.AttrBytes, len(text)))
	return text, nil
}

func readLines(r io.Reader) (string, error) {
	var sb strings.Builder
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
}
