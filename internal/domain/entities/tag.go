// Package entities contains core domain data structures.
package entities

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// tagNameRegex allows letters, digits, ':', '_' and '/'.
var tagNameRegex = regexp.MustCompile(`^[A-Za-z0-9:_/]+$`)

// ErrEmptyTagName is returned for a missing tag name.
var ErrEmptyTagName = errors.New("tag name cannot be empty")

// ValidateTagName checks tag name syntax.
func ValidateTagName(name string) error {
	if name == "" {
		return ErrEmptyTagName
	}
	if !tagNameRegex.MatchString(name) {
		return fmt.Errorf("invalid tag name %q: only letters, numbers, ':', '_' and '/' are allowed", name)
	}
	return nil
}

// IsValidTagName reports whether name passes ValidateTagName.
func IsValidTagName(name string) bool {
	return ValidateTagName(name) == nil
}

// Association is one (tag, key) pair recorded for a kind.
type Association struct {
	Kind Kind   `json:"kind"`
	Tag  string `json:"tag"`
	Key  Key    `json:"key"`
}

// Stats summarizes one tag index or the sum of several.
type Stats struct {
	Tags         int `json:"tags"`
	Associations int `json:"associations"`
	Keys         int `json:"keys"`
}

// Add returns the element-wise sum of two stats.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Tags:         s.Tags + o.Tags,
		Associations: s.Associations + o.Associations,
		Keys:         s.Keys + o.Keys,
	}
}

// AuditEntry represents a logged action in the system.
type AuditEntry struct {
	ID        int64          `json:"id"`
	Action    string         `json:"action"`
	RunID     string         `json:"run_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
