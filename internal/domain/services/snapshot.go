package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ersonp/tag-core/internal/domain/entities"
	"github.com/ersonp/tag-core/internal/domain/ports"
	"github.com/ersonp/tag-core/internal/domain/registry"
)

// Audit actions written by SnapshotService.
const (
	ActionPersist           = "persist"
	ActionSnapshot          = "snapshot"
	ActionCloseRegistration = "close_registration"
)

// SnapshotService moves registry contents between memory and a TagStore.
type SnapshotService struct {
	registry *registry.Registry
	store    ports.TagStore
	logger   *zap.Logger
}

// NewSnapshotService creates a new snapshot service.
func NewSnapshotService(reg *registry.Registry, store ports.TagStore, logger *zap.Logger) *SnapshotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotService{
		registry: reg,
		store:    store,
		logger:   logger.Named("snapshot"),
	}
}

// Load adds every stored association to the registry and returns how many
// were loaded. Rows with an unknown kind, invalid tag or invalid key are skipped.
func (s *SnapshotService) Load(ctx context.Context) (int, error) {
	assocs, err := s.store.LoadAssociations(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading associations: %w", err)
	}

	loaded := 0
	for _, a := range assocs {
		if !a.Kind.IsValid() || !entities.IsValidTagName(a.Tag) || !a.Key.IsValid() {
			s.logger.Warn("Skipping stored association",
				zap.String("kind", string(a.Kind)),
				zap.String("tag", a.Tag),
				zap.Stringer("key", a.Key))
			continue
		}
		s.registry.Add(a.Kind, a.Tag, a.Key)
		loaded++
	}

	s.logger.Debug("Loaded associations", zap.Int("count", loaded))
	return loaded, nil
}

// Persist writes a change journal to the store and records it in the audit log.
// An empty journal is a no-op.
func (s *SnapshotService) Persist(ctx context.Context, changes []entities.Change) error {
	if len(changes) == 0 {
		return nil
	}

	if err := s.store.ApplyChanges(ctx, changes); err != nil {
		return fmt.Errorf("applying changes: %w", err)
	}

	counts := make(map[string]any, 3)
	for _, c := range changes {
		n, _ := counts[string(c.Op)].(int)
		counts[string(c.Op)] = n + 1
	}
	s.audit(ctx, ActionPersist, counts)
	return nil
}

// Save replaces the stored associations with the registry's current contents.
// A failed save leaves the stored associations untouched.
func (s *SnapshotService) Save(ctx context.Context) (int, error) {
	assocs := s.registry.Associations()

	if err := s.store.ReplaceAssociations(ctx, assocs); err != nil {
		return 0, fmt.Errorf("replacing associations: %w", err)
	}

	s.audit(ctx, ActionSnapshot, map[string]any{"associations": len(assocs)})
	return len(assocs), nil
}

// CloseRegistration closes tags and records it in the store, so later runs
// over the same store start closed.
func (s *SnapshotService) CloseRegistration(ctx context.Context, tags *TagService) error {
	if err := s.store.MarkRegistrationClosed(ctx); err != nil {
		return fmt.Errorf("recording closed registration: %w", err)
	}
	tags.CloseRegistration()
	s.audit(ctx, ActionCloseRegistration, nil)
	return nil
}

// RestoreRegistration closes tags when the store says an earlier run closed
// registration.
func (s *SnapshotService) RestoreRegistration(ctx context.Context, tags *TagService) error {
	closed, err := s.store.RegistrationClosed(ctx)
	if err != nil {
		return fmt.Errorf("reading registration state: %w", err)
	}
	if closed {
		tags.restoreClosed()
	}
	return nil
}

// audit failures are logged, not returned: the data is already written.
func (s *SnapshotService) audit(ctx context.Context, action string, details map[string]any) {
	runID := uuid.New().String()
	if err := s.store.LogAction(ctx, action, runID, details); err != nil {
		s.logger.Warn("Failed to write audit log",
			zap.String("action", action),
			zap.Error(err))
	}
}
