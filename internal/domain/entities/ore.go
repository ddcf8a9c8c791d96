package entities

// OreEntry is one stack listed under an ore dictionary name.
// Meta may be WildcardMeta to mean every sub-type of the item.
type OreEntry struct {
	ID   string `json:"id"`
	Meta int    `json:"meta"`
}

// Key converts the entry to an item key as-is.
func (e OreEntry) Key() Key {
	return ItemKey(e.ID, e.Meta)
}

// IsWildcard reports whether the entry covers every sub-type.
func (e OreEntry) IsWildcard() bool {
	return e.Meta == WildcardMeta
}
