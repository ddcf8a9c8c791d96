package ports

import "github.com/ersonp/tag-core/internal/domain/entities"

// OreDictionary is a read-only source of named item groups imported as tags.
type OreDictionary interface {
	// Names returns every ore name in registration order.
	Names() []string

	// Entries returns the stacks listed under name.
	Entries(name string) []entities.OreEntry
}

// SubtypeResolver answers which sub-types of an item actually exist.
type SubtypeResolver interface {
	// HasSubtypes reports whether the item distinguishes sub-types at all.
	HasSubtypes(id string) bool

	// Resolve reports whether meta is a concrete sub-type of the item.
	Resolve(id string, meta int) bool
}
