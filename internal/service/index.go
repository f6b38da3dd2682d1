package service

import (
	"sort"

	"github.com/samber/lo"

	"github.com/tejashwikalptaru/termtune/internal/domain"
	"github.com/tejashwikalptaru/termtune/internal/ports"
)

// MetadataIndex maps each value of one tag key to the tracks carrying it.
// Tracks within a bucket keep scan order and appear at most once.
// An index is read-only once built.
type MetadataIndex struct {
	key     domain.TagKey
	buckets map[string][]string
}

// BuildIndex reads key from every track and groups the tracks by value.
// Tracks with no value for key are left out of the index.
func BuildIndex(tracks []string, key domain.TagKey, reader ports.TagReader) *MetadataIndex {
	idx := &MetadataIndex{
		key:     key,
		buckets: make(map[string][]string),
	}

	for _, track := range tracks {
		values := lo.Uniq(lo.Compact(reader.ReadTags(track)[key]))
		for _, v := range values {
			idx.buckets[v] = append(idx.buckets[v], track)
		}
	}
	return idx
}

// Key returns the tag key this index was built for.
func (idx *MetadataIndex) Key() domain.TagKey {
	return idx.key
}

// Values returns every distinct value, sorted.
func (idx *MetadataIndex) Values() []string {
	values := lo.Keys(idx.buckets)
	sort.Strings(values)
	return values
}

// Tracks returns a copy of the tracks for value, in scan order.
func (idx *MetadataIndex) Tracks(value string) []string {
	bucket, ok := idx.buckets[value]
	if !ok {
		return nil
	}
	out := make([]string, len(bucket))
	copy(out, bucket)
	return out
}

// Len returns the number of distinct values.
func (idx *MetadataIndex) Len() int {
	return len(idx.buckets)
}
