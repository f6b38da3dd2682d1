// Package cache memoises tag reads in a fixed-size LRU.
// The now-playing area asks for the current track's tags on every refresh,
// and the library reads each track once per index.
package cache

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tejashwikalptaru/termtune/internal/domain"
	"github.com/tejashwikalptaru/termtune/internal/ports"
)

// DefaultSize is the number of paths kept when no size is given.
const DefaultSize = 4096

// Reader wraps a TagReader with an LRU keyed by path.
// Cached maps are shared; callers must not modify them.
type Reader struct {
	next  ports.TagReader
	cache *lru.Cache[string, domain.Tags]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New wraps next with a cache of size entries. size <= 0 uses DefaultSize.
func New(next ports.TagReader, size int) (*Reader, error) {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New[string, domain.Tags](size)
	if err != nil {
		return nil, fmt.Errorf("create tag cache: %w", err)
	}
	return &Reader{next: next, cache: c}, nil
}

// ReadTags returns the cached tags for path, reading them on a miss.
func (r *Reader) ReadTags(path string) domain.Tags {
	if tags, ok := r.cache.Get(path); ok {
		r.hits.Add(1)
		return tags
	}
	r.misses.Add(1)
	tags := r.next.ReadTags(path)
	r.cache.Add(path, tags)
	return tags
}

// Forget drops every cached entry, e.g. before a library rescan.
func (r *Reader) Forget() {
	r.cache.Purge()
}

// Stats returns cache hits, misses and the current entry count.
func (r *Reader) Stats() (hits, misses uint64, size int) {
	return r.hits.Load(), r.misses.Load(), r.cache.Len()
}

var _ ports.TagReader = (*Reader)(nil)
