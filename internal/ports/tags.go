package ports

import "github.com/tejashwikalptaru/termtune/internal/domain"

// TagReader extracts metadata tags from audio files.
//
// ReadTags never fails: an unreadable or untagged file yields an empty Tags map,
// and a tag the file does not carry is simply absent from the map.
type TagReader interface {
	ReadTags(path string) domain.Tags
}
