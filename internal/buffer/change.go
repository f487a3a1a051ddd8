// Package buffer holds edits that have been committed to the document but
// not yet written to disk.
package buffer

import (
	"sync"
	"unicode/utf8"

	"github.com/zjrosen/typetwice/internal/log"
)

// Change is an append/truncate-only accumulator of unsaved text. It never
// sees persisted content, so removals can only reach back to the last save.
//
// Change is safe for concurrent use.
type Change struct {
	drainMu sync.Mutex
	mu      sync.Mutex
	runes   []rune

	// set while a Drain is writing; lost counts removals that reached past
	// the buffer into the text being written.
	draining bool
	lost     int
}

// New returns an empty Change.
func New() *Change {
	return &Change{}
}

// Append adds text to the end of the buffer.
func (c *Change) Append(text string) {
	if text == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runes = append(c.runes, []rune(text)...)
}

// Remove drops the last count characters. Counts larger than the buffer
// clear it; zero and negative counts do nothing.
func (c *Change) Remove(count int) {
	if count <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if count >= len(c.runes) {
		if count > len(c.runes) {
			if c.draining {
				c.lost += count - len(c.runes)
			}
			log.Debug(log.CatBuffer, "remove clamped", "requested", count, "length", len(c.runes))
		}
		c.runes = c.runes[:0]
		return
	}
	c.runes = c.runes[:len(c.runes)-count]
}

// HasUnsavedChanges reports whether the buffer holds any text.
func (c *Change) HasUnsavedChanges() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.runes) > 0
}

// Len returns the number of characters in the buffer.
func (c *Change) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.runes)
}

// String returns the buffered text.
func (c *Change) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return string(c.runes)
}

// Drain empties the buffer and hands its text to fn. Edits made while fn
// runs go to the emptied buffer, so a slow write never blocks typing. When
// fn fails the text is put back ahead of the newer edits, minus whatever
// later removals reached into it. Drains run one at a time.
func (c *Change) Drain(fn func(text string) error) error {
	c.drainMu.Lock()
	defer c.drainMu.Unlock()

	c.mu.Lock()
	text := string(c.runes)
	c.runes = nil
	c.draining = true
	c.lost = 0
	c.mu.Unlock()

	err := fn(text)

	c.mu.Lock()
	defer c.mu.Unlock()
	restore := c.draining
	c.draining = false
	if err != nil {
		if restore {
			kept := []rune(text)
			kept = kept[:len(kept)-min(c.lost, len(kept))]
			c.runes = append(kept, c.runes...)
		}
		return err
	}
	log.Debug(log.CatBuffer, "drained", "bytes", len(text), "chars", utf8.RuneCountInString(text))
	return nil
}

// Reset discards all buffered text, including text a running Drain would
// put back on failure.
func (c *Change) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runes = nil
	c.draining = false
	c.lost = 0
}
