package parsers

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLParser parses ore dictionaries from YAML format.
type YAMLParser struct{}

// Parse reads YAML from the reader and returns the parsed ore file.
func (p *YAMLParser) Parse(r io.Reader) (*OreFile, error) {
	var f OreFile

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return numberOres(&f), nil
}
