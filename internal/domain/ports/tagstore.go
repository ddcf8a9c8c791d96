// Package ports defines interfaces for external service communication.
package ports

import (
	"context"

	"github.com/ersonp/tag-core/internal/domain/entities"
)

// TagStore defines the interface for persisting tag associations.
// The in-memory registry is the source of truth while a process runs; the
// store keeps it across runs.
type TagStore interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// ApplyChanges applies a journal of builder mutations atomically.
	ApplyChanges(ctx context.Context, changes []entities.Change) error

	// SaveAssociations inserts associations, ignoring ones already stored.
	SaveAssociations(ctx context.Context, assocs []entities.Association) error

	// LoadAssociations returns every stored association.
	LoadAssociations(ctx context.Context) ([]entities.Association, error)

	// CountAssociations returns the number of stored associations per kind.
	CountAssociations(ctx context.Context) (map[entities.Kind]int, error)

	// ReplaceAssociations atomically swaps the stored associations for assocs.
	// On error the previous contents are kept.
	ReplaceAssociations(ctx context.Context, assocs []entities.Association) error

	// MarkRegistrationClosed records that the pack accepts no new tags.
	MarkRegistrationClosed(ctx context.Context) error

	// RegistrationClosed reports whether MarkRegistrationClosed was called.
	RegistrationClosed(ctx context.Context) (bool, error)

	// LogAction logs an action to the audit log.
	LogAction(ctx context.Context, action string, runID string, details map[string]any) error

	// FindAuditLog finds the most recent audit log entries.
	FindAuditLog(ctx context.Context, limit int) ([]entities.AuditEntry, error)
}
