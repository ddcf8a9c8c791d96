package multimap

import (
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/tag-core/internal/domain/entities"
)

type testKey struct {
	id   string
	meta int
}

var (
	ironOre = testKey{id: "minecraft:iron_ore"}
	goldOre = testKey{id: "minecraft:gold_ore"}
	oakLog  = testKey{id: "minecraft:log", meta: 0}
)

// requireConsistent checks the symmetry and no-empty-set invariants.
func requireConsistent[K comparable](t require.TestingT, m *KeyedMultimap[K]) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fromTags := 0
	for tag, keys := range m.tagToKeys {
		require.NotEmpty(t, keys, "tag %q has an empty key set", tag)
		for k := range keys {
			_, ok := m.keyToTags[k][tag]
			require.True(t, ok, "tag %q lists key %v but key does not list tag", tag, k)
		}
		fromTags += len(keys)
	}

	fromKeys := 0
	for k, tags := range m.keyToTags {
		require.NotEmpty(t, tags, "key %v has an empty tag set", k)
		for tag := range tags {
			_, ok := m.tagToKeys[tag][k]
			require.True(t, ok, "key %v lists tag %q but tag does not list key", k, tag)
		}
		fromKeys += len(tags)
	}

	require.Equal(t, fromTags, fromKeys)
}

func TestKeyedMultimap_RoundTrip(t *testing.T) {
	m := New[testKey]()

	m.Add("minecraft:logs", oakLog)

	assert.Contains(t, m.Keys("minecraft:logs"), oakLog)
	assert.Contains(t, m.Tags(oakLog), "minecraft:logs")
	assert.True(t, m.HasTag(oakLog, "minecraft:logs"))
	assert.True(t, m.ContainsKey(oakLog))
	assert.True(t, m.TagExists("minecraft:logs"))
	requireConsistent(t, m)
}

func TestKeyedMultimap_UnknownLookupsAreEmpty(t *testing.T) {
	m := New[testKey]()

	assert.Empty(t, m.Keys("missing"))
	assert.Empty(t, m.Tags(ironOre))
	assert.False(t, m.HasTag(ironOre, "missing"))
	assert.False(t, m.HasAnyTag(ironOre, "missing"))
	assert.False(t, m.ContainsKey(ironOre))
	assert.False(t, m.TagExists("missing"))
	assert.Empty(t, m.AllTags())
	assert.Equal(t, entities.Stats{}, m.Stats())
}

func TestKeyedMultimap_AddIsIdempotent(t *testing.T) {
	m := New[testKey]()

	m.Add("forge:ores", ironOre)
	before := m.Stats()
	m.Add("forge:ores", ironOre)

	assert.Equal(t, before, m.Stats())
	assert.Equal(t, entities.Stats{Tags: 1, Associations: 1, Keys: 1}, m.Stats())
	requireConsistent(t, m)
}

func TestKeyedMultimap_AddAllMatchesSequentialAdds(t *testing.T) {
	batched := New[testKey]()
	batched.AddAll([]string{"a", "b"}, ironOre)

	sequential := New[testKey]()
	sequential.Add("a", ironOre)
	sequential.Add("b", ironOre)

	assert.Equal(t, sequential.tagToKeys, batched.tagToKeys)
	assert.Equal(t, sequential.keyToTags, batched.keyToTags)
	requireConsistent(t, batched)
}

func TestKeyedMultimap_RemoveTag(t *testing.T) {
	m := New[testKey]()
	m.Add("a", ironOre)
	m.Add("b", ironOre)

	m.RemoveTag("a")

	assert.Equal(t, []string{"b"}, m.Tags(ironOre))
	assert.False(t, m.TagExists("a"))
	requireConsistent(t, m)
}

func TestKeyedMultimap_RemoveTag_PrunesOrphanedKeys(t *testing.T) {
	m := New[testKey]()
	m.Add("a", ironOre)
	m.Add("a", goldOre)
	m.Add("b", goldOre)

	m.RemoveTag("a")

	assert.False(t, m.ContainsKey(ironOre))
	assert.True(t, m.ContainsKey(goldOre))
	assert.Equal(t, 1, m.KeyCount())
	requireConsistent(t, m)
}

func TestKeyedMultimap_RemoveTag_Unknown(t *testing.T) {
	m := New[testKey]()
	m.Add("a", ironOre)

	m.RemoveTag("missing")

	assert.Equal(t, 1, m.Associations())
}

func TestKeyedMultimap_RemoveTags(t *testing.T) {
	m := New[testKey]()
	m.Add("a", ironOre)
	m.Add("b", ironOre)
	m.Add("c", ironOre)
	m.Add("a", goldOre)

	m.RemoveTags([]string{"a", "b", "missing", "a"})

	assert.Equal(t, []string{"c"}, m.Tags(ironOre))
	assert.False(t, m.ContainsKey(goldOre))
	assert.Equal(t, []string{"c"}, m.AllTags())
	requireConsistent(t, m)
}

func TestKeyedMultimap_RemoveKey(t *testing.T) {
	m := New[testKey]()
	m.Add("forge:ores", ironOre)
	m.Add("forge:ores", goldOre)

	m.RemoveKey("forge:ores", ironOre)

	assert.Equal(t, []testKey{goldOre}, m.Keys("forge:ores"))
	assert.False(t, m.ContainsKey(ironOre))
	assert.Equal(t, 1, m.Associations())
	requireConsistent(t, m)
}

func TestKeyedMultimap_RemoveKey_PrunesEmptyTag(t *testing.T) {
	m := New[testKey]()
	m.Add("forge:ores", ironOre)

	m.RemoveKey("forge:ores", ironOre)

	assert.False(t, m.TagExists("forge:ores"))
	assert.Equal(t, entities.Stats{}, m.Stats())
	requireConsistent(t, m)
}

func TestKeyedMultimap_RemoveKey_NotAssociated(t *testing.T) {
	m := New[testKey]()
	m.Add("a", ironOre)
	m.Add("b", goldOre)

	m.RemoveKey("a", goldOre)
	m.RemoveKey("missing", ironOre)

	assert.Equal(t, 2, m.Associations())
	requireConsistent(t, m)
}

func TestKeyedMultimap_RemoveKeyFromAll(t *testing.T) {
	m := New[testKey]()
	m.AddAll([]string{"a", "b", "c"}, ironOre)
	m.Add("a", goldOre)

	m.RemoveKeyFromAll([]string{"a", "b"}, ironOre)

	assert.Equal(t, []string{"c"}, m.Tags(ironOre))
	assert.Equal(t, []testKey{goldOre}, m.Keys("a"))
	assert.False(t, m.TagExists("b"))
	requireConsistent(t, m)
}

func TestKeyedMultimap_HasAnyTag(t *testing.T) {
	m := New[testKey]()
	m.AddAll([]string{"a", "b"}, ironOre)

	assert.True(t, m.HasAnyTag(ironOre, "x", "b"))
	assert.False(t, m.HasAnyTag(ironOre, "x", "y"))
	assert.False(t, m.HasAnyTag(ironOre))
}

func TestKeyedMultimap_Scenario(t *testing.T) {
	m := New[testKey]()

	m.Add("forge:ores", ironOre)
	m.Add("forge:ores", goldOre)

	assert.Equal(t, 1, m.TagCount())
	assert.Equal(t, 2, m.Associations())
	assert.Equal(t, 2, m.KeyCount())

	m.RemoveKey("forge:ores", ironOre)

	assert.Equal(t, []testKey{goldOre}, m.Keys("forge:ores"))
	assert.Equal(t, 1, m.Associations())
}

func TestKeyedMultimap_KeysReturnsCopy(t *testing.T) {
	m := New[testKey]()
	m.Add("a", ironOre)

	keys := m.Keys("a")
	keys[0] = goldOre

	assert.Equal(t, []testKey{ironOre}, m.Keys("a"))
}

func TestKeyedMultimap_AllTagsSorted(t *testing.T) {
	m := New[testKey]()
	m.Add("c", ironOre)
	m.Add("a", ironOre)
	m.Add("b", goldOre)

	assert.Equal(t, []string{"a", "b", "c"}, m.AllTags())
}

func TestKeyedMultimap_Each(t *testing.T) {
	m := New[testKey]()
	m.AddAll([]string{"a", "b"}, ironOre)
	m.Add("a", goldOre)

	var seen []string
	m.Each(func(tag string, key testKey) bool {
		seen = append(seen, tag+"="+key.id)
		return true
	})
	sort.Strings(seen)

	assert.Equal(t, []string{
		"a=minecraft:gold_ore",
		"a=minecraft:iron_ore",
		"b=minecraft:iron_ore",
	}, seen)
}

func TestKeyedMultimap_Each_StopsEarly(t *testing.T) {
	m := New[testKey]()
	m.AddAll([]string{"a", "b", "c"}, ironOre)

	calls := 0
	m.Each(func(string, testKey) bool {
		calls++
		return false
	})

	assert.Equal(t, 1, calls)
}

func TestKeyedMultimap_Each_AllowsMutationFromCallback(t *testing.T) {
	m := New[testKey]()
	m.AddAll([]string{"a", "b"}, ironOre)

	m.Each(func(tag string, key testKey) bool {
		m.RemoveKey(tag, key)
		return true
	})

	assert.Equal(t, entities.Stats{}, m.Stats())
}

func TestKeyedMultimap_Clear(t *testing.T) {
	m := New[testKey]()
	m.AddAll([]string{"a", "b"}, ironOre)

	m.Clear()

	assert.Equal(t, entities.Stats{}, m.Stats())
	assert.Empty(t, m.AllTags())

	m.Add("a", goldOre)
	assert.Equal(t, 1, m.Associations())
}

func TestKeyedMultimap_EmptyTagPanics(t *testing.T) {
	m := New[testKey]()

	assert.Panics(t, func() { m.Add("", ironOre) })
	assert.Panics(t, func() { m.AddAll([]string{"ok", ""}, ironOre) })
	assert.False(t, m.TagExists("ok"), "a rejected batch must not be partially applied")
}

func TestKeyedMultimap_ConcurrentAccess(t *testing.T) {
	m := New[testKey]()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := testKey{id: fmt.Sprintf("item_%d", i%20)}
				tag := fmt.Sprintf("tag_%d", (i+w)%7)
				m.Add(tag, key)
				_ = m.Tags(key)
				_ = m.Stats()
				if i%3 == 0 {
					m.RemoveKey(tag, key)
				}
				if i%50 == 0 {
					m.RemoveTag(tag)
				}
			}
		}(w)
	}
	wg.Wait()

	requireConsistent(t, m)
}
