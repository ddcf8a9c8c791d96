package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/ersonp/tag-core/internal/domain/entities"
	"github.com/ersonp/tag-core/internal/domain/services"
)

var (
	// ErrNoValidTags is returned when a mutation names no usable tag.
	ErrNoValidTags = errors.New("no valid tag names (allowed: letters, digits, ':', '_', '/')")

	// ErrRegistrationClosed is returned for writes after registration closed.
	ErrRegistrationClosed = errors.New("tag registration is closed")
)

// TagHandler handles tag mutations and persists them.
type TagHandler struct {
	tags     *services.TagService
	snapshot *services.SnapshotService
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(tags *services.TagService, snapshot *services.SnapshotService) *TagHandler {
	return &TagHandler{
		tags:     tags,
		snapshot: snapshot,
	}
}

// MutationResult contains the result of a tag mutation.
type MutationResult struct {
	Kind    entities.Kind
	Tags    []string
	Keys    []entities.Key
	Changes int
}

// HandleAdd tags every key with every tag name.
func (h *TagHandler) HandleAdd(ctx context.Context, kind string, tags, keys []string) (*MutationResult, error) {
	return h.mutate(ctx, kind, tags, keys, func(b *services.TagBuilder, ks []entities.Key) {
		b.Add(ks...)
	})
}

// HandleRemoveKeys removes every key from every tag name.
func (h *TagHandler) HandleRemoveKeys(ctx context.Context, kind string, tags, keys []string) (*MutationResult, error) {
	return h.mutate(ctx, kind, tags, keys, func(b *services.TagBuilder, ks []entities.Key) {
		b.RemoveKey(ks...)
	})
}

// HandleRemoveTags deletes the named tags with all their keys.
func (h *TagHandler) HandleRemoveTags(ctx context.Context, kind string, tags []string) (*MutationResult, error) {
	return h.mutate(ctx, kind, tags, nil, func(b *services.TagBuilder, _ []entities.Key) {
		b.Remove()
	})
}

func (h *TagHandler) mutate(
	ctx context.Context,
	kindStr string,
	tags []string,
	keyStrs []string,
	apply func(*services.TagBuilder, []entities.Key),
) (*MutationResult, error) {
	kind, err := entities.ParseKind(kindStr)
	if err != nil {
		return nil, err
	}

	keys, err := ParseKeys(keyStrs)
	if err != nil {
		return nil, err
	}

	b := h.tags.Tag(kind, tags...)
	if b.State() == services.StateInvalid {
		if h.tags.RegistrationClosed() {
			return nil, ErrRegistrationClosed
		}
		return nil, ErrNoValidTags
	}

	h.tags.ResetChanges()
	apply(b, keys)
	changes := h.tags.Changes()

	if err := h.snapshot.Persist(ctx, changes); err != nil {
		return nil, fmt.Errorf("persisting changes: %w", err)
	}
	h.tags.ResetChanges()

	return &MutationResult{
		Kind:    kind,
		Tags:    b.Names(),
		Keys:    keys,
		Changes: len(changes),
	}, nil
}

// ParseKeys parses key strings of the form "id", "id@meta" or "id@*".
func ParseKeys(raw []string) ([]entities.Key, error) {
	keys := make([]entities.Key, 0, len(raw))
	for _, s := range raw {
		key, err := entities.ParseKey(s)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}
