package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ersonp/tag-core/internal/domain/entities"
	"github.com/ersonp/tag-core/internal/domain/ports"
)

// SyncResult reports the outcome of an ore dictionary sync.
type SyncResult struct {
	Categories int // non-empty ore names processed
	Synced     int // item keys passed to the builder
	Failed     int // entries that could not be tagged, including every entry of a rejected ore name
}

// SyncService mirrors an ore dictionary into item tags. Each ore name
// becomes a tag; wildcard entries of items with sub-types are expanded to
// the concrete sub-types that exist.
type SyncService struct {
	tags     *TagService
	dict     ports.OreDictionary
	resolver ports.SubtypeResolver
	logger   *zap.Logger
}

// NewSyncService creates a new sync service.
func NewSyncService(tags *TagService, dict ports.OreDictionary, resolver ports.SubtypeResolver, logger *zap.Logger) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		tags:     tags,
		dict:     dict,
		resolver: resolver,
		logger:   logger.Named("sync"),
	}
}

// Sync tags every ore dictionary entry with its ore name.
func (s *SyncService) Sync(ctx context.Context) (*SyncResult, error) {
	names := s.dict.Names()
	result := &SyncResult{}

	s.logger.Info("Starting ore dictionary sync", zap.Int("categories", len(names)))

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("syncing ore dictionary: %w", err)
		}
		if name == "" {
			continue
		}
		result.Categories++

		entries := s.dict.Entries(name)
		if !entities.IsValidTagName(name) {
			s.logger.Warn("Ore name is not a valid tag name",
				zap.String("ore", name),
				zap.Int("entries", len(entries)))
			result.Failed += len(entries)
			continue
		}

		b := s.tags.Tag(entities.KindItem, name)
		if b.State() == StateInvalid {
			result.Failed += len(entries)
			continue
		}

		for _, entry := range entries {
			if entry.ID == "" {
				result.Failed++
				s.logger.Debug("Sync failed: empty entry", zap.String("ore", name))
				continue
			}
			result.Synced += s.syncEntry(b, entry)
		}
	}

	s.logger.Info("Ore dictionary sync completed",
		zap.Int("synced", result.Synced),
		zap.Int("failed", result.Failed))

	return result, nil
}

func (s *SyncService) syncEntry(b *TagBuilder, entry entities.OreEntry) int {
	if entry.IsWildcard() && s.resolver != nil && s.resolver.HasSubtypes(entry.ID) {
		return s.syncWildcard(b, entry.ID)
	}
	b.Add(entry.Key())
	return 1
}

// syncWildcard adds every resolvable sub-type below MaxExpandedMeta and
// falls back to the wildcard key itself when none resolve.
func (s *SyncService) syncWildcard(b *TagBuilder, id string) int {
	keys := make([]entities.Key, 0, entities.MaxExpandedMeta)
	for meta := 0; meta < entities.MaxExpandedMeta; meta++ {
		if s.resolver.Resolve(id, meta) {
			keys = append(keys, entities.ItemKey(id, meta))
		}
	}
	if len(keys) == 0 {
		keys = append(keys, entities.ItemKey(id, entities.WildcardMeta))
	}

	b.Add(keys...)
	return len(keys)
}
