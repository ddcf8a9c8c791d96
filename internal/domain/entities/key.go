package entities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// WildcardMeta is the sub-type value ore dictionaries use for "any sub-type".
const WildcardMeta = 32767

// MaxExpandedMeta bounds the sub-types tried when a wildcard entry is expanded.
const MaxExpandedMeta = 16

// Key identifies one taggable object within a kind.
// ID is the registry name fixed when the object was registered (for example
// "minecraft:iron_ore"); Meta is the sub-type and is 0 for kinds without one.
type Key struct {
	ID   string `json:"id" yaml:"id"`
	Meta int    `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// ItemKey returns the key of an item with the given metadata.
func ItemKey(id string, meta int) Key {
	return Key{ID: id, Meta: meta}
}

// FluidKey returns the key of a fluid.
func FluidKey(id string) Key {
	return Key{ID: id}
}

// BlockKey returns the key of a block.
func BlockKey(id string) Key {
	return Key{ID: id}
}

// BlockStateKey returns the key of one state of a block.
func BlockStateKey(id string, state int) Key {
	return Key{ID: id, Meta: state}
}

// IsZero reports whether the key has no identity.
func (k Key) IsZero() bool {
	return k.ID == ""
}

// IsValid reports whether the key has an ID and a non-negative Meta.
// Only valid keys survive a String/ParseKey round trip.
func (k Key) IsValid() bool {
	return k.ID != "" && k.Meta >= 0
}

// IsWildcard reports whether the key stands for every sub-type of its ID.
func (k Key) IsWildcard() bool {
	return k.Meta == WildcardMeta
}

// String renders the key as "id" or "id@meta"; wildcards render as "id@*".
func (k Key) String() string {
	switch {
	case k.Meta == 0:
		return k.ID
	case k.IsWildcard():
		return k.ID + "@*"
	default:
		return k.ID + "@" + strconv.Itoa(k.Meta)
	}
}

// ParseKey is the inverse of Key.String for valid keys. A negative Meta is
// rejected, so String output of an invalid key does not parse.
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Key{}, errors.New("key cannot be empty")
	}

	id, metaStr, found := strings.Cut(s, "@")
	if id == "" {
		return Key{}, fmt.Errorf("key %q has no id", s)
	}
	if !found {
		return Key{ID: id}, nil
	}
	if metaStr == "*" {
		return Key{ID: id, Meta: WildcardMeta}, nil
	}

	meta, err := strconv.Atoi(metaStr)
	if err != nil {
		return Key{}, fmt.Errorf("key %q has invalid meta: %w", s, err)
	}
	if meta < 0 {
		return Key{}, fmt.Errorf("key %q has negative meta", s)
	}
	return Key{ID: id, Meta: meta}, nil
}

// NormalizeKey drops the sub-type for kinds that have none.
func NormalizeKey(kind Kind, k Key) Key {
	if !kind.HasSubtypes() {
		k.Meta = 0
	}
	return k
}
