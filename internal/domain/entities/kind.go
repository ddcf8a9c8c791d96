package entities

import (
	"fmt"
	"strings"
)

// Kind identifies which family of game objects a key belongs to.
// Every kind has its own independent tag index.
type Kind string

const (
	KindItem       Kind = "item"
	KindFluid      Kind = "fluid"
	KindBlock      Kind = "block"
	KindBlockState Kind = "block_state"
)

// AllKinds lists every kind in display order.
var AllKinds = []Kind{KindItem, KindFluid, KindBlock, KindBlockState}

// IsValid reports whether k is one of the known kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindItem, KindFluid, KindBlock, KindBlockState:
		return true
	default:
		return false
	}
}

// HasSubtypes reports whether keys of this kind carry a meaningful Meta value.
func (k Kind) HasSubtypes() bool {
	return k == KindItem || k == KindBlockState
}

// ParseKind converts user input like "Item" or "block-state" to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !k.IsValid() {
		return "", fmt.Errorf("invalid kind %q (valid: item, fluid, block, block_state)", s)
	}
	return k, nil
}
