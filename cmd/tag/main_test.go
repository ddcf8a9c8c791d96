package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/tag-core/internal/domain/entities"
	"github.com/ersonp/tag-core/internal/infrastructure/config"
	"github.com/ersonp/tag-core/internal/infrastructure/tagstore/sqlite"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func storedAssociations(t *testing.T, dir, pack string) []entities.Association {
	t.Helper()
	cfg, err := config.Load(dir)
	require.NoError(t, err)

	store, err := sqlite.NewRepository(cfg.DatabasePath(dir, pack))
	require.NoError(t, err)
	defer store.Close()

	assocs, err := store.LoadAssociations(context.Background())
	require.NoError(t, err)
	return assocs
}

func TestCLI_PackLifecycle(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, execute(t, "packs", "create", "vanilla", "-d", "Base game"))
	assert.FileExists(t, config.ConfigFilePath(dir))
	assert.FileExists(t, config.PacksFilePath(dir))

	err := execute(t, "packs", "create", "vanilla")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, execute(t, "-p", "vanilla", "add", "forge:ores", "forge:ores/iron",
		"--key", "minecraft:iron_ore"))
	require.NoError(t, execute(t, "-p", "vanilla", "add", "forge:water", "-k", "fluid",
		"--key", "minecraft:water"))

	assocs := storedAssociations(t, dir, "vanilla")
	assert.Len(t, assocs, 3)

	require.NoError(t, execute(t, "-p", "vanilla", "query", "tags", "minecraft:iron_ore"))
	require.NoError(t, execute(t, "-p", "vanilla", "query", "keys", "forge:ores"))
	require.NoError(t, execute(t, "-p", "vanilla", "list"))
	require.NoError(t, execute(t, "-p", "vanilla", "inspect", "minecraft:iron_ore", "minecraft:stone"))
	require.NoError(t, execute(t, "-p", "vanilla", "info"))

	require.NoError(t, execute(t, "-p", "vanilla", "remove", "forge:ores/iron"))
	assert.Len(t, storedAssociations(t, dir, "vanilla"), 2)

	require.NoError(t, execute(t, "-p", "vanilla", "remove", "forge:ores", "--key", "minecraft:iron_ore"))
	assert.Equal(t, []entities.Association{
		{Kind: entities.KindFluid, Tag: "forge:water", Key: entities.FluidKey("minecraft:water")},
	}, storedAssociations(t, dir, "vanilla"))

	err = execute(t, "packs", "delete", "vanilla")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	require.NoError(t, execute(t, "packs", "delete", "vanilla", "--force"))
	packs, err := config.LoadPacks(dir)
	require.NoError(t, err)
	assert.False(t, packs.Exists("vanilla"))
}

func TestCLI_RequiresPack(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, execute(t, "init"))

	err := execute(t, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--pack")

	err = execute(t, "-p", "missing", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no packs configured")
}

func TestCLI_AddRejectsInvalidInput(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, execute(t, "packs", "create", "p"))

	err := execute(t, "-p", "p", "add", "forge:ores")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--key")

	err = execute(t, "-p", "p", "add", "-k", "entity", "forge:ores", "--key", "minecraft:stone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid kind")

	err = execute(t, "-p", "p", "add", "bad name!", "--key", "minecraft:stone")
	require.Error(t, err)
}

func TestCLI_ImportAndExport(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, execute(t, "packs", "create", "modded"))

	ores := `[[ore]]
name = "ingotCopper"
entries = ["thermal:material@128", "mekanism:ingot@5"]

[[ore]]
name = "blockWool"
entries = ["minecraft:wool@*"]

[[subtypes]]
id = "minecraft:wool"
metas = [0, 14]
`
	orePath := filepath.Join(dir, "ores.toml")
	require.NoError(t, os.WriteFile(orePath, []byte(ores), 0600))

	require.NoError(t, execute(t, "-p", "modded", "import", orePath, "--dry-run"))
	assert.Empty(t, storedAssociations(t, dir, "modded"))

	require.NoError(t, execute(t, "-p", "modded", "import", orePath))
	assert.Len(t, storedAssociations(t, dir, "modded"), 4)

	out := filepath.Join(dir, "export.csv")
	require.NoError(t, execute(t, "-p", "modded", "export", "-f", "csv", "-o", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "item,blockWool,minecraft:wool@14")
	assert.Contains(t, string(data), "item,ingotCopper,thermal:material@128")

	err = execute(t, "-p", "modded", "export", "-f", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestCLI_ImportClosesRegistrationForLaterRuns(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, execute(t, "packs", "create", "vanilla"))

	orePath := filepath.Join(dir, "ores.json")
	require.NoError(t, os.WriteFile(orePath,
		[]byte(`{"ores": [{"name": "oreIron", "entries": ["minecraft:iron_ore"]}]}`), 0600))

	require.NoError(t, execute(t, "-p", "vanilla", "import", orePath, "--close-registration"))

	err := execute(t, "-p", "vanilla", "add", "forge:late", "--key", "minecraft:stone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tag registration is closed")

	err = execute(t, "-p", "vanilla", "import", orePath, "--replace")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tag registration is closed")

	assert.Equal(t, []entities.Association{
		{Kind: entities.KindItem, Tag: "oreIron", Key: entities.ItemKey("minecraft:iron_ore", 0)},
	}, storedAssociations(t, dir, "vanilla"))

	require.NoError(t, execute(t, "-p", "vanilla", "query", "tags", "minecraft:iron_ore"))
}

func TestCLI_ImportCanLeaveRegistrationOpen(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, execute(t, "packs", "create", "vanilla"))

	orePath := filepath.Join(dir, "ores.json")
	require.NoError(t, os.WriteFile(orePath,
		[]byte(`{"ores": [{"name": "oreIron", "entries": ["minecraft:iron_ore"]}]}`), 0600))

	require.NoError(t, execute(t, "-p", "vanilla", "import", orePath, "--close-registration=false"))
	require.NoError(t, execute(t, "-p", "vanilla", "add", "forge:late", "--key", "minecraft:stone"))

	assert.Len(t, storedAssociations(t, dir, "vanilla"), 2)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores the previous one when the test ends.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
