package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ersonp/tag-core/internal/application/handlers"
	"github.com/ersonp/tag-core/internal/domain/registry"
	"github.com/ersonp/tag-core/internal/domain/services"
	"github.com/ersonp/tag-core/internal/infrastructure/config"
	"github.com/ersonp/tag-core/internal/infrastructure/tagstore/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config        *config.Config
	Packs         *config.PacksConfig
	Logger        *zap.Logger
	TagHandler    *handlers.TagHandler
	QueryHandler  *handlers.QueryHandler
	ImportHandler *handlers.ImportHandler
}

// internalDeps holds all dependencies including low-level components.
type internalDeps struct {
	Deps
	store *sqlite.Repository
}

// withDeps loads config, opens the pack database and fills the registry from
// it, then calls the provided function. It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including low-level components.
func withInternalDeps(ctx context.Context, fn func(*internalDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	packs, err := config.LoadPacks(cwd)
	if err != nil {
		return fmt.Errorf("loading packs: %w", err)
	}

	if globalPack == "" {
		return errors.New("pack is required (use --pack flag)")
	}

	if _, err := packs.Get(globalPack); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log, globalDebug)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer syncLogger(logger)
	logger = logger.With(zap.String("pack", globalPack))

	store, err := openStore(ctx, cfg, cwd, globalPack)
	if err != nil {
		return err
	}
	defer store.Close()

	reg := registry.New()
	tagService := services.NewTagService(reg, logger)
	snapshot := services.NewSnapshotService(reg, store, logger)
	queryService := services.NewQueryService(reg)

	loaded, err := snapshot.Load(ctx)
	if err != nil {
		return err
	}
	logger.Debug("Registry loaded", zap.Int("associations", loaded))

	if err := snapshot.RestoreRegistration(ctx, tagService); err != nil {
		return err
	}

	deps := &internalDeps{
		Deps: Deps{
			Config:        cfg,
			Packs:         packs,
			Logger:        logger,
			TagHandler:    handlers.NewTagHandler(tagService, snapshot),
			QueryHandler:  handlers.NewQueryHandler(queryService, store),
			ImportHandler: handlers.NewImportHandler(reg, tagService, snapshot, logger),
		},
		store: store,
	}

	return fn(deps)
}

// openStore opens a pack database, creating its directory and schema.
func openStore(ctx context.Context, cfg *config.Config, basePath, pack string) (*sqlite.Repository, error) {
	if err := os.MkdirAll(cfg.PackDir(basePath, pack), 0755); err != nil {
		return nil, fmt.Errorf("creating pack directory: %w", err)
	}

	store, err := sqlite.NewRepository(cfg.DatabasePath(basePath, pack))
	if err != nil {
		return nil, fmt.Errorf("creating sqlite repository: %w", err)
	}

	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	return store, nil
}
