// Package dhowden reads audio file tags with github.com/dhowden/tag.
package dhowden

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dhowden/tag"

	"github.com/tejashwikalptaru/termtune/internal/domain"
	"github.com/tejashwikalptaru/termtune/internal/ports"
)

// valueSeparator splits multi-valued ID3v2.4 text frames.
const valueSeparator = "\x00"

// Reader implements ports.TagReader over ID3, MP4, FLAC and Ogg tags.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a tag reader. A nil logger discards output.
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reader{logger: logger.With(slog.String("component", "tags"))}
}

// ReadTags extracts title, artist, album, genre and year from path.
// Unreadable files give an empty map.
func (r *Reader) ReadTags(path string) domain.Tags {
	tags := domain.Tags{}

	file, err := os.Open(path)
	if err != nil {
		r.logger.Debug("cannot open file for tags", slog.String("path", path), slog.Any("error", err))
		return tags
	}
	defer file.Close()

	metadata, err := tag.ReadFrom(file)
	if err != nil || metadata == nil {
		r.logger.Debug("unreadable tag",
			slog.String("path", path),
			slog.Any("error", domain.ErrUnreadableTag),
			slog.Any("cause", err))
		return tags
	}

	set(tags, domain.TagTitle, metadata.Title())
	set(tags, domain.TagArtist, metadata.Artist())
	set(tags, domain.TagAlbum, metadata.Album())
	set(tags, domain.TagGenre, metadata.Genre())

	if year := metadata.Year(); year > 0 {
		tags[domain.TagYear] = []string{strconv.Itoa(year)}
	}

	return tags
}

// set stores the non-empty parts of raw under key.
func set(tags domain.Tags, key domain.TagKey, raw string) {
	var values []string
	for _, v := range strings.Split(raw, valueSeparator) {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) > 0 {
		tags[key] = values
	}
}

var _ ports.TagReader = (*Reader)(nil)
