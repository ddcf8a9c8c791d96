package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses ore dictionaries from JSON format.
type JSONParser struct{}

// Parse reads JSON from the reader and returns the parsed ore file.
func (p *JSONParser) Parse(r io.Reader) (*OreFile, error) {
	var f OreFile

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	return numberOres(&f), nil
}
