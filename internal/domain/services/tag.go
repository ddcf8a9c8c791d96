package services

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ersonp/tag-core/internal/domain/entities"
	"github.com/ersonp/tag-core/internal/domain/registry"
)

// BeforeAddHook is consulted before each association is added.
// Returning false skips that association.
type BeforeAddHook func(kind entities.Kind, tag string, key entities.Key) bool

// BeforeRemoveHook is consulted before a whole tag is removed.
// Returning false keeps the tag.
type BeforeRemoveHook func(kind entities.Kind, tag string) bool

// TagServiceOption configures a TagService.
type TagServiceOption func(*TagService)

// WithBeforeAdd installs a hook that can veto additions.
func WithBeforeAdd(hook BeforeAddHook) TagServiceOption {
	return func(s *TagService) {
		s.beforeAdd = hook
	}
}

// WithBeforeRemove installs a hook that can veto tag removal.
func WithBeforeRemove(hook BeforeRemoveHook) TagServiceOption {
	return func(s *TagService) {
		s.beforeRemove = hook
	}
}

// TagService is the write path into the registry. It validates tag names,
// enforces the registration window and records every applied change.
type TagService struct {
	registry     *registry.Registry
	logger       *zap.Logger
	beforeAdd    BeforeAddHook
	beforeRemove BeforeRemoveHook
	closed       atomic.Bool

	changesMu sync.Mutex
	changes   []entities.Change
}

// NewTagService creates a new TagService.
func NewTagService(reg *registry.Registry, logger *zap.Logger, opts ...TagServiceOption) *TagService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &TagService{
		registry: reg,
		logger:   logger.Named("builder"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CloseRegistration rejects every builder created afterwards.
func (s *TagService) CloseRegistration() {
	if !s.closed.Swap(true) {
		s.logger.Info("Tag registration closed")
	}
}

// restoreClosed closes registration that an earlier run already closed.
func (s *TagService) restoreClosed() {
	if !s.closed.Swap(true) {
		s.logger.Debug("Tag registration closed by an earlier run")
	}
}

// RegistrationClosed reports whether CloseRegistration was called.
func (s *TagService) RegistrationClosed() bool {
	return s.closed.Load()
}

// Tag starts a builder for one or more tag names of kind.
// Invalid names are dropped with a warning; if none remain, or registration
// is closed, the builder is invalid and ignores every call.
func (s *TagService) Tag(kind entities.Kind, names ...string) *TagBuilder {
	b := &TagBuilder{svc: s, kind: kind, state: StateInvalid}

	if !kind.IsValid() {
		s.logger.Warn("Unknown tag kind", zap.String("kind", string(kind)))
		return b
	}

	valid := s.validNames(names)
	if len(valid) == 0 {
		return b
	}

	if s.RegistrationClosed() {
		s.logger.Warn("Tag registration is closed, tags will not be registered",
			zap.Strings("tags", valid))
		return b
	}

	b.names = valid
	b.state = StateInitial
	return b
}

// validNames filters names to valid, distinct entries in input order.
func (s *TagService) validNames(names []string) []string {
	if len(names) == 0 {
		s.logger.Warn("Tag names cannot be empty")
		return nil
	}

	seen := make(map[string]struct{}, len(names))
	valid := make([]string, 0, len(names))
	for _, name := range names {
		if err := entities.ValidateTagName(name); err != nil {
			s.logger.Warn("Invalid tag name", zap.String("tag", name), zap.Error(err))
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		valid = append(valid, name)
	}

	if len(valid) < len(names) && len(valid) > 0 {
		s.logger.Info("Tag names filtered",
			zap.Int("total", len(names)),
			zap.Int("valid", len(valid)))
	}
	return valid
}

// Changes returns a copy of the changes applied since the last reset.
func (s *TagService) Changes() []entities.Change {
	s.changesMu.Lock()
	defer s.changesMu.Unlock()

	out := make([]entities.Change, len(s.changes))
	copy(out, s.changes)
	return out
}

// ResetChanges clears the change journal.
func (s *TagService) ResetChanges() {
	s.changesMu.Lock()
	s.changes = nil
	s.changesMu.Unlock()
}

func (s *TagService) record(changes ...entities.Change) {
	if len(changes) == 0 {
		return
	}
	s.changesMu.Lock()
	s.changes = append(s.changes, changes...)
	s.changesMu.Unlock()
}

func (s *TagService) allowAdd(kind entities.Kind, tag string, key entities.Key) bool {
	return s.beforeAdd == nil || s.beforeAdd(kind, tag, key)
}

func (s *TagService) allowRemove(kind entities.Kind, tag string) bool {
	return s.beforeRemove == nil || s.beforeRemove(kind, tag)
}
