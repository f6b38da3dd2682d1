package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tagmock "github.com/tejashwikalptaru/termtune/internal/adapter/tags/mock"
	"github.com/tejashwikalptaru/termtune/internal/domain"
)

func TestBuildIndex(t *testing.T) {
	reader := tagmock.NewReader()
	reader.Set("t1", domain.Tags{domain.TagGenre: {"Jazz"}})
	reader.Set("t2", domain.Tags{domain.TagGenre: {"Rock", "Jazz"}})
	reader.Set("t3", domain.Tags{domain.TagGenre: {"Jazz", "Jazz"}})
	reader.Set("t4", domain.Tags{domain.TagArtist: {"No genre"}})
	reader.Set("t5", domain.Tags{domain.TagGenre: {""}})

	idx := BuildIndex([]string{"t1", "t2", "t3", "t4", "t5", "missing"}, domain.TagGenre, reader)

	assert.Equal(t, domain.TagGenre, idx.Key())
	assert.Equal(t, []string{"Jazz", "Rock"}, idx.Values())
	assert.Equal(t, []string{"t1", "t2", "t3"}, idx.Tracks("Jazz"))
	assert.Equal(t, []string{"t2"}, idx.Tracks("Rock"))
	assert.Nil(t, idx.Tracks("Pop"))
	assert.Equal(t, 2, idx.Len())
}

func TestBuildIndex_Empty(t *testing.T) {
	idx := BuildIndex(nil, domain.TagAlbum, tagmock.NewReader())

	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.Values())
}

func TestMetadataIndex_TracksIsACopy(t *testing.T) {
	reader := tagmock.NewReader()
	reader.Set("t1", domain.Tags{domain.TagAlbum: {"A"}})
	idx := BuildIndex([]string{"t1"}, domain.TagAlbum, reader)

	tracks := idx.Tracks("A")
	tracks[0] = "changed"

	assert.Equal(t, []string{"t1"}, idx.Tracks("A"))
}
