package cue

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
)

var (
	// ErrNotFound is returned when no resource exists for a cue.
	ErrNotFound = errors.New("cue resource not found")
	// ErrUnsupportedFormat is returned for files that are neither mp3 nor wav.
	ErrUnsupportedFormat = errors.New("unsupported cue format")
)

// Extensions lists the resource extensions tried for each cue, in order.
var Extensions = []string{".mp3", ".wav"}

// Loader reads cue resources from a directory and decodes them to the
// playback format.
type Loader struct {
	dir  string
	rate beep.SampleRate
}

// NewLoader returns a loader for dir that resamples everything to rate.
func NewLoader(dir string, rate beep.SampleRate) *Loader {
	return &Loader{dir: dir, rate: rate}
}

// Dir returns the cue directory.
func (l *Loader) Dir() string {
	return l.dir
}

// Resolve returns the path of id's resource and whether it exists.
func (l *Loader) Resolve(id ID) (string, bool) {
	if l.dir == "" {
		return "", false
	}
	for _, ext := range Extensions {
		path := filepath.Join(l.dir, string(id)+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Load decodes id's resource fully into memory.
func (l *Loader) Load(id ID) (*beep.Buffer, error) {
	path, ok := l.Resolve(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return l.LoadFile(path)
}

// LoadFile decodes the mp3 or wav file at path.
func (l *Loader) LoadFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the configured cue directory
	if err != nil {
		return nil, fmt.Errorf("opening cue %s: %w", path, err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		// mp3.Decode takes ownership of f.
		stream, format, err = mp3.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
		if err == nil {
			defer func() { _ = f.Close() }()
		}
	default:
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decoding cue %s: %w", path, err)
	}
	defer func() { _ = stream.Close() }()

	return l.buffer(stream, format), nil
}

// buffer renders s into a buffer at the loader's sample rate.
func (l *Loader) buffer(s beep.Streamer, format beep.Format) *beep.Buffer {
	if format.SampleRate != l.rate {
		s = beep.Resample(4, format.SampleRate, l.rate, s)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: l.rate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	return buf
}

// Synthesized renders id's fallback tone into a buffer.
func (l *Loader) Synthesized(id ID) *beep.Buffer {
	return l.buffer(Synthesize(id, l.rate), beep.Format{SampleRate: l.rate, NumChannels: 2, Precision: 2})
}
