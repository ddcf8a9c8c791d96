package mocks

import (
	"context"
	"sort"

	"github.com/ersonp/tag-core/internal/domain/entities"
)

// TagStore is a mock implementation of ports.TagStore.
type TagStore struct {
	Assocs map[entities.Association]struct{}
	Audit  []entities.AuditEntry
	Err    error

	// LoadErr, when set, is returned by LoadAssociations only.
	LoadErr error
	// SaveErr, when set, fails SaveAssociations and ReplaceAssociations
	// without touching stored rows.
	SaveErr error

	RegistrationIsClosed bool

	EnsureSchemaCallCount int
	ApplyChangesCallCount int
	LogActionCallCount    int
	Closed                bool
}

// NewTagStore creates a new mock TagStore.
func NewTagStore() *TagStore {
	return &TagStore{
		Assocs: make(map[entities.Association]struct{}),
	}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *TagStore) EnsureSchema(_ context.Context) error {
	m.EnsureSchemaCallCount++
	return m.Err
}

// Close closes the database connection.
func (m *TagStore) Close() error {
	m.Closed = true
	return nil
}

// ApplyChanges applies a journal of builder mutations.
func (m *TagStore) ApplyChanges(_ context.Context, changes []entities.Change) error {
	m.ApplyChangesCallCount++
	if m.Err != nil {
		return m.Err
	}
	for _, c := range changes {
		switch c.Op {
		case entities.ChangeAdd:
			m.Assocs[entities.Association{Kind: c.Kind, Tag: c.Tag, Key: c.Key}] = struct{}{}
		case entities.ChangeRemoveKey:
			delete(m.Assocs, entities.Association{Kind: c.Kind, Tag: c.Tag, Key: c.Key})
		case entities.ChangeRemoveTag:
			for a := range m.Assocs {
				if a.Kind == c.Kind && a.Tag == c.Tag {
					delete(m.Assocs, a)
				}
			}
		}
	}
	return nil
}

// SaveAssociations inserts associations.
func (m *TagStore) SaveAssociations(_ context.Context, assocs []entities.Association) error {
	if m.Err != nil {
		return m.Err
	}
	if m.SaveErr != nil {
		return m.SaveErr
	}
	for _, a := range assocs {
		m.Assocs[a] = struct{}{}
	}
	return nil
}

// LoadAssociations returns every stored association.
func (m *TagStore) LoadAssociations(_ context.Context) ([]entities.Association, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Association, 0, len(m.Assocs))
	for a := range m.Assocs {
		result = append(result, a)
	}
	// Sort for deterministic test results
	sort.Slice(result, func(i, j int) bool {
		if result[i].Kind != result[j].Kind {
			return result[i].Kind < result[j].Kind
		}
		if result[i].Tag != result[j].Tag {
			return result[i].Tag < result[j].Tag
		}
		return result[i].Key.String() < result[j].Key.String()
	})
	return result, nil
}

// CountAssociations returns the number of stored associations per kind.
func (m *TagStore) CountAssociations(_ context.Context) (map[entities.Kind]int, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	counts := make(map[entities.Kind]int)
	for a := range m.Assocs {
		counts[a.Kind]++
	}
	return counts, nil
}

// ReplaceAssociations swaps the stored associations for assocs.
func (m *TagStore) ReplaceAssociations(_ context.Context, assocs []entities.Association) error {
	if m.Err != nil {
		return m.Err
	}
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Assocs = make(map[entities.Association]struct{}, len(assocs))
	for _, a := range assocs {
		m.Assocs[a] = struct{}{}
	}
	return nil
}

// MarkRegistrationClosed records the closed registration.
func (m *TagStore) MarkRegistrationClosed(_ context.Context) error {
	if m.Err != nil {
		return m.Err
	}
	m.RegistrationIsClosed = true
	return nil
}

// RegistrationClosed reports whether MarkRegistrationClosed was called.
func (m *TagStore) RegistrationClosed(_ context.Context) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	return m.RegistrationIsClosed, nil
}

// LogAction logs an action to the audit log.
func (m *TagStore) LogAction(_ context.Context, action string, runID string, details map[string]any) error {
	m.LogActionCallCount++
	if m.Err != nil {
		return m.Err
	}
	m.Audit = append(m.Audit, entities.AuditEntry{
		ID:      int64(len(m.Audit) + 1),
		Action:  action,
		RunID:   runID,
		Details: details,
	})
	return nil
}

// FindAuditLog returns the most recent audit entries, newest first.
func (m *TagStore) FindAuditLog(_ context.Context, limit int) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.AuditEntry, 0, len(m.Audit))
	for i := len(m.Audit) - 1; i >= 0; i-- {
		result = append(result, m.Audit[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}
