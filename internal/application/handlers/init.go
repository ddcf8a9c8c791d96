// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/tag-core/internal/domain/ports"
	"github.com/ersonp/tag-core/internal/infrastructure/config"
)

// InitHandler handles project initialization.
type InitHandler struct {
	store ports.TagStore
}

// NewInitHandler creates a new init handler. store may be nil when no pack
// database should be prepared.
func NewInitHandler(store ports.TagStore) *InitHandler {
	return &InitHandler{
		store: store,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath string
}

// Handle writes the default configuration and prepares the store schema.
func (h *InitHandler) Handle(ctx context.Context, basePath string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("tag already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	if h.store != nil {
		if err := h.store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &InitResult{
		ConfigPath: config.ConfigFilePath(basePath),
	}, nil
}
