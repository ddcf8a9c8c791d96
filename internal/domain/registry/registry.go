// Package registry owns one tag index per entity kind.
package registry

import (
	"fmt"
	"sort"

	"github.com/ersonp/tag-core/internal/domain/entities"
	"github.com/ersonp/tag-core/internal/domain/multimap"
)

// Registry routes tag operations to the index of the requested kind.
// Indexes are created once by New and never replaced. Passing an unknown
// kind is a programming error and panics.
type Registry struct {
	indexes map[entities.Kind]*multimap.KeyedMultimap[entities.Key]
}

// New creates a registry with an empty index for every kind.
func New() *Registry {
	indexes := make(map[entities.Kind]*multimap.KeyedMultimap[entities.Key], len(entities.AllKinds))
	for _, kind := range entities.AllKinds {
		indexes[kind] = multimap.New[entities.Key]()
	}
	return &Registry{indexes: indexes}
}

// Index returns the multimap backing kind.
func (r *Registry) Index(kind entities.Kind) *multimap.KeyedMultimap[entities.Key] {
	idx, ok := r.indexes[kind]
	if !ok {
		panic(fmt.Sprintf("registry: unknown kind %q", kind))
	}
	return idx
}

func mustKey(key entities.Key) {
	if key.IsZero() {
		panic("registry: key has no id")
	}
}

// Add associates tag with key in the index of kind.
func (r *Registry) Add(kind entities.Kind, tag string, key entities.Key) {
	mustKey(key)
	r.Index(kind).Add(tag, key)
}

// AddAll associates every tag with key in the index of kind.
func (r *Registry) AddAll(kind entities.Kind, tags []string, key entities.Key) {
	mustKey(key)
	r.Index(kind).AddAll(tags, key)
}

// RemoveTag deletes tag from the index of kind.
func (r *Registry) RemoveTag(kind entities.Kind, tag string) {
	r.Index(kind).RemoveTag(tag)
}

// RemoveTags deletes several tags from the index of kind.
func (r *Registry) RemoveTags(kind entities.Kind, tags []string) {
	r.Index(kind).RemoveTags(tags)
}

// RemoveKey deletes a single association.
func (r *Registry) RemoveKey(kind entities.Kind, tag string, key entities.Key) {
	r.Index(kind).RemoveKey(tag, key)
}

// RemoveKeyFromAll deletes the association between key and each of tags.
func (r *Registry) RemoveKeyFromAll(kind entities.Kind, tags []string, key entities.Key) {
	r.Index(kind).RemoveKeyFromAll(tags, key)
}

// Keys returns the keys tagged with tag, sorted by ID then Meta.
func (r *Registry) Keys(kind entities.Kind, tag string) []entities.Key {
	keys := r.Index(kind).Keys(tag)
	SortKeys(keys)
	return keys
}

// Tags returns the sorted tags of key.
func (r *Registry) Tags(kind entities.Kind, key entities.Key) []string {
	return r.Index(kind).Tags(key)
}

// HasTag reports whether key carries tag.
func (r *Registry) HasTag(kind entities.Kind, key entities.Key, tag string) bool {
	return r.Index(kind).HasTag(key, tag)
}

// HasAnyTag reports whether key carries any of tags.
func (r *Registry) HasAnyTag(kind entities.Kind, key entities.Key, tags ...string) bool {
	return r.Index(kind).HasAnyTag(key, tags...)
}

// ContainsKey reports whether key has any tag.
func (r *Registry) ContainsKey(kind entities.Kind, key entities.Key) bool {
	return r.Index(kind).ContainsKey(key)
}

// TagExists reports whether tag exists for kind.
func (r *Registry) TagExists(kind entities.Kind, tag string) bool {
	return r.Index(kind).TagExists(tag)
}

// AllTags returns the sorted tag names of kind.
func (r *Registry) AllTags(kind entities.Kind) []string {
	return r.Index(kind).AllTags()
}

// Stats returns the statistics of one kind.
func (r *Registry) Stats(kind entities.Kind) entities.Stats {
	return r.Index(kind).Stats()
}

// Total sums the statistics of every kind.
func (r *Registry) Total() entities.Stats {
	var total entities.Stats
	for _, kind := range entities.AllKinds {
		total = total.Add(r.Index(kind).Stats())
	}
	return total
}

// Associations returns every association of every kind, ordered by kind,
// tag and key.
func (r *Registry) Associations() []entities.Association {
	var result []entities.Association
	for _, kind := range entities.AllKinds {
		start := len(result)
		r.Index(kind).Each(func(tag string, key entities.Key) bool {
			result = append(result, entities.Association{Kind: kind, Tag: tag, Key: key})
			return true
		})
		part := result[start:]
		sort.Slice(part, func(i, j int) bool {
			if part[i].Tag != part[j].Tag {
				return part[i].Tag < part[j].Tag
			}
			return lessKey(part[i].Key, part[j].Key)
		})
	}
	return result
}

// Clear empties the index of kind.
func (r *Registry) Clear(kind entities.Kind) {
	r.Index(kind).Clear()
}

// ClearAll empties every index.
func (r *Registry) ClearAll() {
	for _, idx := range r.indexes {
		idx.Clear()
	}
}

// SortKeys orders keys by ID then Meta.
func SortKeys(keys []entities.Key) {
	sort.Slice(keys, func(i, j int) bool {
		return lessKey(keys[i], keys[j])
	})
}

func lessKey(a, b entities.Key) bool {
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	return a.Meta < b.Meta
}
