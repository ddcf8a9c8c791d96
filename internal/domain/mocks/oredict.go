package mocks

import "github.com/ersonp/tag-core/internal/domain/entities"

// OreDictionary is a mock implementation of ports.OreDictionary.
type OreDictionary struct {
	Order []string
	Lists map[string][]entities.OreEntry
}

// NewOreDictionary creates an empty mock OreDictionary.
func NewOreDictionary() *OreDictionary {
	return &OreDictionary{Lists: make(map[string][]entities.OreEntry)}
}

// Register appends entries under name.
func (m *OreDictionary) Register(name string, entries ...entities.OreEntry) *OreDictionary {
	if _, ok := m.Lists[name]; !ok {
		m.Order = append(m.Order, name)
	}
	m.Lists[name] = append(m.Lists[name], entries...)
	return m
}

// Names returns every ore name in registration order.
func (m *OreDictionary) Names() []string {
	return m.Order
}

// Entries returns the stacks listed under name.
func (m *OreDictionary) Entries(name string) []entities.OreEntry {
	return m.Lists[name]
}

// SubtypeResolver is a mock implementation of ports.SubtypeResolver.
// Subtypes maps an item ID to the metas that exist for it.
type SubtypeResolver struct {
	Subtypes map[string][]int
}

// HasSubtypes reports whether id has an entry in Subtypes.
func (m *SubtypeResolver) HasSubtypes(id string) bool {
	_, ok := m.Subtypes[id]
	return ok
}

// Resolve reports whether meta is listed for id.
func (m *SubtypeResolver) Resolve(id string, meta int) bool {
	for _, v := range m.Subtypes[id] {
		if v == meta {
			return true
		}
	}
	return false
}
