package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPacks_MissingFileIsEmpty(t *testing.T) {
	packs, err := LoadPacks(t.TempDir())

	require.NoError(t, err)
	assert.NotNil(t, packs.Packs)
	assert.Empty(t, packs.Names())
}

func TestPacksConfig_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	packs := &PacksConfig{}
	packs.Add("vanilla", PackEntry{Description: "Plain game"})
	packs.Add("modded", PackEntry{})

	require.NoError(t, packs.Save(dir))

	loaded, err := LoadPacks(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"modded", "vanilla"}, loaded.Names())
	assert.True(t, loaded.Exists("vanilla"))

	entry, err := loaded.Get("vanilla")
	require.NoError(t, err)
	assert.Equal(t, "Plain game", entry.Description)
}

func TestPacksConfig_Get(t *testing.T) {
	t.Run("no packs", func(t *testing.T) {
		_, err := (&PacksConfig{}).Get("x")
		require.EqualError(t, err, "no packs configured")
	})

	t.Run("lists available packs", func(t *testing.T) {
		packs := &PacksConfig{}
		for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
			packs.Add(name, PackEntry{})
		}

		_, err := packs.Get("zzz")

		require.EqualError(t, err, `pack "zzz" not found (available: a, b, c, d, e, ...)`)
	})
}

func TestPacksConfig_Remove(t *testing.T) {
	packs := &PacksConfig{}
	packs.Add("a", PackEntry{})

	packs.Remove("a")
	packs.Remove("missing")

	assert.False(t, packs.Exists("a"))
	assert.False(t, (&PacksConfig{}).Exists("a"))
}
