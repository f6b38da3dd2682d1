// Package mock provides an in-memory TagReader for tests.
package mock

import (
	"sync"

	"github.com/tejashwikalptaru/termtune/internal/domain"
	"github.com/tejashwikalptaru/termtune/internal/ports"
)

// Reader serves tags from a map and counts reads per path.
type Reader struct {
	mu    sync.Mutex
	tags  map[string]domain.Tags
	reads map[string]int
}

// NewReader creates an empty reader.
func NewReader() *Reader {
	return &Reader{
		tags:  make(map[string]domain.Tags),
		reads: make(map[string]int),
	}
}

// Set stores tags for path.
func (r *Reader) Set(path string, tags domain.Tags) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags[path] = tags
}

// SetBasic stores a title, artist and album for path.
func (r *Reader) SetBasic(path, title, artist, album string) {
	r.Set(path, domain.Tags{
		domain.TagTitle:  {title},
		domain.TagArtist: {artist},
		domain.TagAlbum:  {album},
	})
}

// ReadTags returns the stored tags, or an empty map for unknown paths.
func (r *Reader) ReadTags(path string) domain.Tags {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reads[path]++
	if tags, ok := r.tags[path]; ok {
		return tags
	}
	return domain.Tags{}
}

// Reads returns how many times path was read.
func (r *Reader) Reads(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads[path]
}

var _ ports.TagReader = (*Reader)(nil)
