// Package parsers provides parsers for importing ore dictionaries from various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// OreFile is an ore dictionary as read from a file, before validation.
type OreFile struct {
	Ores     []RawOre     `json:"ores" yaml:"ores" toml:"ore"`
	Subtypes []RawSubtype `json:"subtypes,omitempty" yaml:"subtypes,omitempty" toml:"subtypes"`
}

// RawOre is one ore name and its entries. Entries use the key syntax
// "id", "id@meta" or "id@*" for every sub-type.
type RawOre struct {
	Name    string   `json:"name" yaml:"name" toml:"name"`
	Entries []string `json:"entries" yaml:"entries" toml:"entries"`
	LineNum int      `json:"-" yaml:"-" toml:"-"` // Position in source file (set by parser)
}

// RawSubtype lists the sub-types that exist for an item.
type RawSubtype struct {
	ID    string `json:"id" yaml:"id" toml:"id"`
	Metas []int  `json:"metas" yaml:"metas" toml:"metas"`
}

// Parser defines the interface for parsing ore dictionaries from various formats.
type Parser interface {
	Parse(r io.Reader) (*OreFile, error)
}

// Formats lists the supported format names.
var Formats = []string{"json", "csv", "yaml", "toml"}

// ForFormat returns the appropriate parser for the given format.
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	case "yaml", "yml":
		return &YAMLParser{}
	case "toml":
		return &TOMLParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return nil
	}
	return ForFormat(ext)
}

// numberOres sets LineNum to the 1-indexed position of each ore.
func numberOres(f *OreFile) *OreFile {
	for i := range f.Ores {
		f.Ores[i].LineNum = i + 1
	}
	return f
}
