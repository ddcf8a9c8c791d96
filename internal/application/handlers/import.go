package handlers

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ersonp/tag-core/internal/domain/registry"
	"github.com/ersonp/tag-core/internal/domain/services"
	"github.com/ersonp/tag-core/internal/infrastructure/oredict"
	"github.com/ersonp/tag-core/internal/infrastructure/parsers"
)

// ImportHandler imports ore dictionary files as item tags.
type ImportHandler struct {
	registry *registry.Registry
	tags     *services.TagService
	snapshot *services.SnapshotService
	logger   *zap.Logger
}

// NewImportHandler creates a new import handler.
func NewImportHandler(
	reg *registry.Registry,
	tags *services.TagService,
	snapshot *services.SnapshotService,
	logger *zap.Logger,
) *ImportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportHandler{
		registry: reg,
		tags:     tags,
		snapshot: snapshot,
		logger:   logger,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format            string // "json", "csv", "yaml", "toml", or "auto"
	DryRun            bool   // Sync into a scratch registry and save nothing
	Replace           bool   // Clear the pack before importing
	CloseRegistration bool   // Close the builder once the sync finishes
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Categories int
	Synced     int
	Failed     int
	Persisted  int
	Errors     []oredict.EntryError
}

// Handle parses an ore dictionary file and syncs it into the registry.
func (h *ImportHandler) Handle(ctx context.Context, filePath string, opts ImportOptions) (*ImportResult, error) {
	if !opts.DryRun && h.tags.RegistrationClosed() {
		return nil, ErrRegistrationClosed
	}

	var parser parsers.Parser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(opts.Format)
	}

	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	oreFile, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	dict, entryErrs := oredict.FromFile(oreFile)
	for _, e := range entryErrs {
		h.logger.Warn("Skipping ore entry", zap.Error(e))
	}
	h.logger.Info("Parsed ore dictionary",
		zap.String("file", filePath),
		zap.Int("ores", len(dict.Names())),
		zap.Int("entries", dict.Len()),
		zap.Int("invalid_entries", len(entryErrs)))

	tags := h.tags
	if opts.DryRun {
		tags = services.NewTagService(registry.New(), h.logger)
	} else if opts.Replace {
		h.registry.ClearAll()
	}

	tags.ResetChanges()
	syncResult, err := services.NewSyncService(tags, dict, dict, h.logger).Sync(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Categories: syncResult.Categories,
		Synced:     syncResult.Synced,
		Failed:     syncResult.Failed + len(entryErrs),
		Errors:     entryErrs,
	}

	if opts.DryRun {
		return result, nil
	}

	if opts.Replace {
		saved, err := h.snapshot.Save(ctx)
		if err != nil {
			return nil, fmt.Errorf("saving snapshot: %w", err)
		}
		result.Persisted = saved
	} else {
		changes := tags.Changes()
		if err := h.snapshot.Persist(ctx, changes); err != nil {
			return nil, fmt.Errorf("persisting changes: %w", err)
		}
		result.Persisted = len(changes)
	}
	tags.ResetChanges()

	if opts.CloseRegistration {
		if err := h.snapshot.CloseRegistration(ctx, tags); err != nil {
			return nil, err
		}
	}

	return result, nil
}
