// Package oredict provides an in-memory ore dictionary built from parsed files.
package oredict

import (
	"fmt"

	"github.com/ersonp/tag-core/internal/domain/entities"
	"github.com/ersonp/tag-core/internal/infrastructure/parsers"
)

// EntryError describes an ore entry that could not be read.
type EntryError struct {
	Line    int    // Position of the ore in the source file (0 if unknown)
	Ore     string // Ore name the entry is listed under
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e EntryError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Ore, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Ore, e.Message)
}

// Dictionary implements ports.OreDictionary and ports.SubtypeResolver.
type Dictionary struct {
	names    []string
	entries  map[string][]entities.OreEntry
	subtypes map[string]map[int]struct{}
}

// New creates an empty dictionary.
func New() *Dictionary {
	return &Dictionary{
		entries:  make(map[string][]entities.OreEntry),
		subtypes: make(map[string]map[int]struct{}),
	}
}

// FromFile builds a dictionary from a parsed ore file. Entries that do not
// parse as keys are reported and left out; ore names are kept as-is.
func FromFile(f *parsers.OreFile) (*Dictionary, []EntryError) {
	d := New()
	var errs []EntryError

	for _, ore := range f.Ores {
		for _, raw := range ore.Entries {
			key, err := entities.ParseKey(raw)
			if err != nil {
				errs = append(errs, EntryError{
					Line:    ore.LineNum,
					Ore:     ore.Name,
					Value:   raw,
					Message: err.Error(),
				})
				continue
			}
			d.Register(ore.Name, entities.OreEntry{ID: key.ID, Meta: key.Meta})
		}
	}

	for _, st := range f.Subtypes {
		d.AddSubtypes(st.ID, st.Metas...)
	}

	return d, errs
}

// Register lists entries under name. Names keep first-registration order.
func (d *Dictionary) Register(name string, entries ...entities.OreEntry) {
	if _, ok := d.entries[name]; !ok {
		d.names = append(d.names, name)
		d.entries[name] = nil
	}
	d.entries[name] = append(d.entries[name], entries...)
}

// AddSubtypes marks id as an item with sub-types and records metas as existing.
func (d *Dictionary) AddSubtypes(id string, metas ...int) {
	set, ok := d.subtypes[id]
	if !ok {
		set = make(map[int]struct{}, len(metas))
		d.subtypes[id] = set
	}
	for _, m := range metas {
		set[m] = struct{}{}
	}
}

// Names returns every ore name in registration order.
func (d *Dictionary) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Entries returns the stacks listed under name.
func (d *Dictionary) Entries(name string) []entities.OreEntry {
	src := d.entries[name]
	if len(src) == 0 {
		return nil
	}
	out := make([]entities.OreEntry, len(src))
	copy(out, src)
	return out
}

// Len returns the total number of entries across all names.
func (d *Dictionary) Len() int {
	n := 0
	for _, e := range d.entries {
		n += len(e)
	}
	return n
}

// HasSubtypes reports whether id was declared with sub-types.
func (d *Dictionary) HasSubtypes(id string) bool {
	_, ok := d.subtypes[id]
	return ok
}

// Resolve reports whether meta is a declared sub-type of id.
func (d *Dictionary) Resolve(id string, meta int) bool {
	_, ok := d.subtypes[id][meta]
	return ok
}
