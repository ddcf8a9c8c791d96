package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expectedOres = []RawOre{
	{Name: "oreIron", Entries: []string{"minecraft:iron_ore"}, LineNum: 1},
	{Name: "blockWool", Entries: []string{"minecraft:wool@*", "minecraft:carpet@3"}, LineNum: 2},
}

var expectedSubtypes = []RawSubtype{
	{ID: "minecraft:wool", Metas: []int{0, 1, 2}},
}

func TestJSONParser_Parse(t *testing.T) {
	input := `{
		"ores": [
			{"name": "oreIron", "entries": ["minecraft:iron_ore"]},
			{"name": "blockWool", "entries": ["minecraft:wool@*", "minecraft:carpet@3"]}
		],
		"subtypes": [{"id": "minecraft:wool", "metas": [0, 1, 2]}]
	}`

	f, err := (&JSONParser{}).Parse(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, expectedOres, f.Ores)
	assert.Equal(t, expectedSubtypes, f.Subtypes)
}

func TestJSONParser_Parse_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "not json"},
		{"unknown field", `{"ores": [], "extra": true}`},
		{"wrong shape", `[{"name": "oreIron"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&JSONParser{}).Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "parsing JSON")
		})
	}
}

func TestYAMLParser_Parse(t *testing.T) {
	input := `
ores:
  - name: oreIron
    entries: [minecraft:iron_ore]
  - name: blockWool
    entries:
      - minecraft:wool@*
      - minecraft:carpet@3
subtypes:
  - id: minecraft:wool
    metas: [0, 1, 2]
`

	f, err := (&YAMLParser{}).Parse(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, expectedOres, f.Ores)
	assert.Equal(t, expectedSubtypes, f.Subtypes)
}

func TestYAMLParser_Parse_Empty(t *testing.T) {
	f, err := (&YAMLParser{}).Parse(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, f.Ores)
}

func TestYAMLParser_Parse_UnknownField(t *testing.T) {
	_, err := (&YAMLParser{}).Parse(strings.NewReader("ores: []\ncolour: red\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing YAML")
}

func TestTOMLParser_Parse(t *testing.T) {
	input := `
[[ore]]
name = "oreIron"
entries = ["minecraft:iron_ore"]

[[ore]]
name = "blockWool"
entries = ["minecraft:wool@*", "minecraft:carpet@3"]

[[subtypes]]
id = "minecraft:wool"
metas = [0, 1, 2]
`

	f, err := (&TOMLParser{}).Parse(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, expectedOres, f.Ores)
	assert.Equal(t, expectedSubtypes, f.Subtypes)
}

func TestTOMLParser_Parse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"syntax", "[[ore]\nname = ", "parsing TOML"},
		{"unknown key", "[[ore]]\nname = \"a\"\ncolour = \"red\"\n", "unknown keys: ore.colour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&TOMLParser{}).Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestCSVParser_Parse(t *testing.T) {
	input := "name,entry,subtypes\n" +
		"oreIron,minecraft:iron_ore,\n" +
		"blockWool,minecraft:wool@*,0;1\n" +
		"blockWool,minecraft:carpet@3,\n" +
		"dyeWhite,minecraft:wool@0,2\n"

	f, err := (&CSVParser{}).Parse(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []RawOre{
		{Name: "oreIron", Entries: []string{"minecraft:iron_ore"}, LineNum: 2},
		{Name: "blockWool", Entries: []string{"minecraft:wool@*", "minecraft:carpet@3"}, LineNum: 3},
		{Name: "dyeWhite", Entries: []string{"minecraft:wool@0"}, LineNum: 5},
	}, f.Ores)
	assert.Equal(t, expectedSubtypes, f.Subtypes)
}

func TestCSVParser_Parse_MissingColumn(t *testing.T) {
	_, err := (&CSVParser{}).Parse(strings.NewReader("name,item\noreIron,minecraft:iron_ore\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column: entry")
}

func TestCSVParser_Parse_InvalidSubtype(t *testing.T) {
	_, err := (&CSVParser{}).Parse(strings.NewReader("name,entry,subtypes\nblockWool,minecraft:wool@*,x\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), `invalid subtype value "x"`)
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format   string
		expected Parser
	}{
		{"json", &JSONParser{}},
		{"JSON", &JSONParser{}},
		{"csv", &CSVParser{}},
		{"yaml", &YAMLParser{}},
		{"yml", &YAMLParser{}},
		{"toml", &TOMLParser{}},
		{"xml", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			assert.Equal(t, tt.expected, ForFormat(tt.format))
		})
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		expected Parser
	}{
		{"ores.json", &JSONParser{}},
		{"/path/to/ores.CSV", &CSVParser{}},
		{"ores.yaml", &YAMLParser{}},
		{"ores.toml", &TOMLParser{}},
		{"ores.txt", nil},
		{"noextension", nil},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, ForFile(tt.filename))
		})
	}
}
