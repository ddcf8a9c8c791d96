package parsers

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// TOMLParser parses ore dictionaries from TOML format, one [[ore]] table
// per name and one [[subtypes]] table per item.
type TOMLParser struct{}

// Parse reads TOML from the reader and returns the parsed ore file.
func (p *TOMLParser) Parse(r io.Reader) (*OreFile, error) {
	var f OreFile

	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parsing TOML: unknown keys: %s", strings.Join(keys, ", "))
	}

	return numberOres(&f), nil
}
