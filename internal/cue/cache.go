package cue

import (
	"time"

	"github.com/gopxl/beep"
	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/typetwice/internal/log"
)

const (
	DefaultCacheTTL        = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// cache holds decoded cues keyed by ID. Entries expire so edits to the cue
// directory are picked up even without the watcher.
type cache struct {
	c *gocache.Cache
}

func newCache(ttl time.Duration) *cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &cache{c: gocache.New(ttl, DefaultCleanupInterval)}
}

func (c *cache) Get(id ID) (*beep.Buffer, bool) {
	v, found := c.c.Get(string(id))
	if !found {
		return nil, false
	}
	buf, ok := v.(*beep.Buffer)
	if !ok {
		log.Error(log.CatAudio, "wrong type assertion when getting cue", "id", id)
		return nil, false
	}
	return buf, true
}

func (c *cache) Set(id ID, buf *beep.Buffer) {
	c.c.Set(string(id), buf, gocache.DefaultExpiration)
}

func (c *cache) Flush() {
	c.c.Flush()
}

func (c *cache) Len() int {
	return c.c.ItemCount()
}
