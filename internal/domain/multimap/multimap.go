// Package multimap provides a bidirectional many-to-many index between tag
// names and keys.
package multimap

import (
	"sort"
	"sync"

	"github.com/ersonp/tag-core/internal/domain/entities"
)

// KeyedMultimap associates tag names with keys in both directions.
//
// For every tag t and key k, k is in the key set of t exactly when t is in
// the tag set of k. Neither side ever holds an empty set. All methods are
// safe for concurrent use; a mutation is observed by readers as a whole.
type KeyedMultimap[K comparable] struct {
	mu        sync.RWMutex
	tagToKeys map[string]map[K]struct{}
	keyToTags map[K]map[string]struct{}
}

// New creates an empty multimap.
func New[K comparable]() *KeyedMultimap[K] {
	return &KeyedMultimap[K]{
		tagToKeys: make(map[string]map[K]struct{}),
		keyToTags: make(map[K]map[string]struct{}),
	}
}

// mustTag panics on an empty tag name. Callers validate syntax before calling in.
func mustTag(tag string) {
	if tag == "" {
		panic("multimap: empty tag name")
	}
}

// Keys returns every key tagged with tag, or nil if the tag is unknown.
// The slice is a copy.
func (m *KeyedMultimap[K]) Keys(tag string) []K {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys, ok := m.tagToKeys[tag]
	if !ok {
		return nil
	}
	result := make([]K, 0, len(keys))
	for k := range keys {
		result = append(result, k)
	}
	return result
}

// Tags returns the sorted tag names of key, or nil if it has none.
func (m *KeyedMultimap[K]) Tags(key K) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return sortedNames(m.keyToTags[key])
}

// HasTag reports whether key is tagged with tag.
func (m *KeyedMultimap[K]) HasTag(key K, tag string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.keyToTags[key][tag]
	return ok
}

// HasAnyTag reports whether key carries at least one of tags.
func (m *KeyedMultimap[K]) HasAnyTag(key K, tags ...string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owned, ok := m.keyToTags[key]
	if !ok {
		return false
	}
	for _, tag := range tags {
		if _, ok := owned[tag]; ok {
			return true
		}
	}
	return false
}

// Add associates tag with key. Adding an existing association is a no-op.
func (m *KeyedMultimap[K]) Add(tag string, key K) {
	mustTag(tag)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.add(tag, key)
}

// AddAll associates every tag in tags with key under a single lock.
func (m *KeyedMultimap[K]) AddAll(tags []string, key K) {
	for _, tag := range tags {
		mustTag(tag)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tag := range tags {
		m.add(tag, key)
	}
}

// add allocates both sets before linking either side, so a failed allocation
// never leaves a half-inserted association. Caller must hold the write lock.
func (m *KeyedMultimap[K]) add(tag string, key K) {
	keys, keysOK := m.tagToKeys[tag]
	if !keysOK {
		keys = make(map[K]struct{}, 1)
	}
	tags, tagsOK := m.keyToTags[key]
	if !tagsOK {
		tags = make(map[string]struct{}, 1)
	}

	keys[key] = struct{}{}
	tags[tag] = struct{}{}
	if !keysOK {
		m.tagToKeys[tag] = keys
	}
	if !tagsOK {
		m.keyToTags[key] = tags
	}
}

// RemoveTag deletes tag and every association it has.
func (m *KeyedMultimap[K]) RemoveTag(tag string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removeTag(tag)
}

// removeTag caller must hold the write lock.
func (m *KeyedMultimap[K]) removeTag(tag string) {
	keys, ok := m.tagToKeys[tag]
	if !ok {
		return
	}
	for k := range keys {
		m.unlinkTag(k, tag)
	}
	delete(m.tagToKeys, tag)
}

// RemoveTags deletes several tags. The key side is cleaned in one pass over
// the affected keys.
func (m *KeyedMultimap[K]) RemoveTags(tags []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pending := make(map[K][]string)
	for _, tag := range tags {
		keys, ok := m.tagToKeys[tag]
		if !ok {
			continue
		}
		for k := range keys {
			pending[k] = append(pending[k], tag)
		}
		delete(m.tagToKeys, tag)
	}

	for k, removed := range pending {
		owned := m.keyToTags[k]
		for _, tag := range removed {
			delete(owned, tag)
		}
		if len(owned) == 0 {
			delete(m.keyToTags, k)
		}
	}
}

// RemoveKey deletes the single association between tag and key.
func (m *KeyedMultimap[K]) RemoveKey(tag string, key K) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removeKey(tag, key)
}

// RemoveKeyFromAll deletes the association between key and each of tags.
func (m *KeyedMultimap[K]) RemoveKeyFromAll(tags []string, key K) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tag := range tags {
		m.removeKey(tag, key)
	}
}

// removeKey caller must hold the write lock.
func (m *KeyedMultimap[K]) removeKey(tag string, key K) {
	keys, ok := m.tagToKeys[tag]
	if !ok {
		return
	}
	if _, ok := keys[key]; !ok {
		return
	}

	delete(keys, key)
	if len(keys) == 0 {
		delete(m.tagToKeys, tag)
	}
	m.unlinkTag(key, tag)
}

// unlinkTag drops tag from the tag set of key, pruning the set when empty.
// Caller must hold the write lock.
func (m *KeyedMultimap[K]) unlinkTag(key K, tag string) {
	owned, ok := m.keyToTags[key]
	if !ok {
		return
	}
	delete(owned, tag)
	if len(owned) == 0 {
		delete(m.keyToTags, key)
	}
}

// ContainsKey reports whether key has at least one tag.
func (m *KeyedMultimap[K]) ContainsKey(key K) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.keyToTags[key]
	return ok
}

// TagExists reports whether tag has at least one key.
func (m *KeyedMultimap[K]) TagExists(tag string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.tagToKeys[tag]
	return ok
}

// AllTags returns every tag name, sorted.
func (m *KeyedMultimap[K]) AllTags() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.tagToKeys))
	for tag := range m.tagToKeys {
		names = append(names, tag)
	}
	sort.Strings(names)
	return names
}

// TagCount returns the number of tags.
func (m *KeyedMultimap[K]) TagCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.tagToKeys)
}

// KeyCount returns the number of distinct keys with at least one tag.
func (m *KeyedMultimap[K]) KeyCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.keyToTags)
}

// Associations returns the number of (tag, key) pairs.
func (m *KeyedMultimap[K]) Associations() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.associations()
}

func (m *KeyedMultimap[K]) associations() int {
	total := 0
	for _, keys := range m.tagToKeys {
		total += len(keys)
	}
	return total
}

// Stats returns tag, association and key counts from one consistent read.
func (m *KeyedMultimap[K]) Stats() entities.Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return entities.Stats{
		Tags:         len(m.tagToKeys),
		Associations: m.associations(),
		Keys:         len(m.keyToTags),
	}
}

// Each calls fn for every association in a snapshot taken under the read
// lock, so fn may call back into the multimap. Iteration stops when fn
// returns false.
func (m *KeyedMultimap[K]) Each(fn func(tag string, key K) bool) {
	type pair struct {
		tag string
		key K
	}

	m.mu.RLock()
	pairs := make([]pair, 0, m.associations())
	for tag, keys := range m.tagToKeys {
		for k := range keys {
			pairs = append(pairs, pair{tag: tag, key: k})
		}
	}
	m.mu.RUnlock()

	for _, p := range pairs {
		if !fn(p.tag, p.key) {
			return
		}
	}
}

// Clear removes everything.
func (m *KeyedMultimap[K]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tagToKeys = make(map[string]map[K]struct{})
	m.keyToTags = make(map[K]map[string]struct{})
}

func sortedNames(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
