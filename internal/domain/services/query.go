package services

import (
	"github.com/ersonp/tag-core/internal/domain/entities"
	"github.com/ersonp/tag-core/internal/domain/registry"
)

// KindStats pairs a kind with its statistics.
type KindStats struct {
	Kind  entities.Kind  `json:"kind"`
	Stats entities.Stats `json:"stats"`
}

// Report summarizes the registry per kind and in total.
type Report struct {
	Kinds []KindStats    `json:"kinds"`
	Total entities.Stats `json:"total"`
}

// KeyTags lists the tags of one key.
type KeyTags struct {
	Key  entities.Key `json:"key"`
	Tags []string     `json:"tags"`
}

// QueryService answers read-only questions about the registry.
// Invalid tag names and kinds never match anything.
type QueryService struct {
	registry *registry.Registry
}

// NewQueryService creates a new query service.
func NewQueryService(reg *registry.Registry) *QueryService {
	return &QueryService{registry: reg}
}

// Tags returns the sorted tags of key.
func (s *QueryService) Tags(kind entities.Kind, key entities.Key) []string {
	if !kind.IsValid() || key.IsZero() {
		return nil
	}
	return s.registry.Tags(kind, entities.NormalizeKey(kind, key))
}

// HasTag reports whether key carries tag.
func (s *QueryService) HasTag(kind entities.Kind, key entities.Key, tag string) bool {
	if !kind.IsValid() || key.IsZero() || !entities.IsValidTagName(tag) {
		return false
	}
	return s.registry.HasTag(kind, entities.NormalizeKey(kind, key), tag)
}

// HasAnyTag reports whether key carries at least one of tags.
func (s *QueryService) HasAnyTag(kind entities.Kind, key entities.Key, tags ...string) bool {
	if !kind.IsValid() || key.IsZero() {
		return false
	}
	valid := make([]string, 0, len(tags))
	for _, tag := range tags {
		if entities.IsValidTagName(tag) {
			valid = append(valid, tag)
		}
	}
	return s.registry.HasAnyTag(kind, entities.NormalizeKey(kind, key), valid...)
}

// Keys returns the sorted keys carrying tag.
func (s *QueryService) Keys(kind entities.Kind, tag string) []entities.Key {
	if !kind.IsValid() || !entities.IsValidTagName(tag) {
		return nil
	}
	return s.registry.Keys(kind, tag)
}

// TagExists reports whether tag has at least one key.
func (s *QueryService) TagExists(kind entities.Kind, tag string) bool {
	if !kind.IsValid() || !entities.IsValidTagName(tag) {
		return false
	}
	return s.registry.TagExists(kind, tag)
}

// AllTags returns every tag name of kind, sorted.
func (s *QueryService) AllTags(kind entities.Kind) []string {
	if !kind.IsValid() {
		return nil
	}
	return s.registry.AllTags(kind)
}

// AllTagsByKind returns the tag names of every non-empty kind.
func (s *QueryService) AllTagsByKind() map[entities.Kind][]string {
	result := make(map[entities.Kind][]string, len(entities.AllKinds))
	for _, kind := range entities.AllKinds {
		if tags := s.registry.AllTags(kind); len(tags) > 0 {
			result[kind] = tags
		}
	}
	return result
}

// Stats returns the statistics of one kind.
func (s *QueryService) Stats(kind entities.Kind) entities.Stats {
	if !kind.IsValid() {
		return entities.Stats{}
	}
	return s.registry.Stats(kind)
}

// Total returns statistics summed across kinds.
func (s *QueryService) Total() entities.Stats {
	return s.registry.Total()
}

// Report returns per-kind statistics in kind order followed by the total.
func (s *QueryService) Report() Report {
	r := Report{Kinds: make([]KindStats, 0, len(entities.AllKinds))}
	for _, kind := range entities.AllKinds {
		st := s.registry.Stats(kind)
		r.Kinds = append(r.Kinds, KindStats{Kind: kind, Stats: st})
		r.Total = r.Total.Add(st)
	}
	return r
}

// Inspect returns the tags of several keys at once. Zero keys are skipped.
func (s *QueryService) Inspect(kind entities.Kind, keys ...entities.Key) []KeyTags {
	if !kind.IsValid() {
		return nil
	}
	result := make([]KeyTags, 0, len(keys))
	for _, key := range keys {
		if key.IsZero() {
			continue
		}
		key = entities.NormalizeKey(kind, key)
		result = append(result, KeyTags{Key: key, Tags: s.registry.Tags(kind, key)})
	}
	return result
}

// Associations returns every association, optionally limited to one kind.
// An empty kind selects all kinds.
func (s *QueryService) Associations(kind entities.Kind) []entities.Association {
	all := s.registry.Associations()
	if kind == "" {
		return all
	}
	out := make([]entities.Association, 0, len(all))
	for _, a := range all {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}
