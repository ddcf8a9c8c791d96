package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/tag-core/internal/domain/entities"
	"github.com/ersonp/tag-core/internal/domain/ports"
	"github.com/ersonp/tag-core/internal/domain/services"
)

// DefaultAuditLimit is the number of audit entries shown by info.
const DefaultAuditLimit = 5

// QueryHandler handles read-only tag queries.
type QueryHandler struct {
	query *services.QueryService
	store ports.TagStore
}

// NewQueryHandler creates a new query handler. store may be nil, in which
// case HandleInfo reports only in-memory statistics.
func NewQueryHandler(query *services.QueryService, store ports.TagStore) *QueryHandler {
	return &QueryHandler{
		query: query,
		store: store,
	}
}

// TagsResult lists the tags of one key.
type TagsResult struct {
	Kind entities.Kind `json:"kind"`
	Key  entities.Key  `json:"key"`
	Tags []string      `json:"tags"`
}

// KeysResult lists the keys of one tag.
type KeysResult struct {
	Kind entities.Kind  `json:"kind"`
	Tag  string         `json:"tag"`
	Keys []entities.Key `json:"keys"`
}

// InfoResult summarizes the registry and its store.
type InfoResult struct {
	Report services.Report       `json:"report"`
	Stored map[entities.Kind]int `json:"stored,omitempty"`
	Recent []entities.AuditEntry `json:"recent,omitempty"`
}

// HandleTags returns the tags of a key.
func (h *QueryHandler) HandleTags(kindStr, keyStr string) (*TagsResult, error) {
	kind, err := entities.ParseKind(kindStr)
	if err != nil {
		return nil, err
	}
	key, err := entities.ParseKey(keyStr)
	if err != nil {
		return nil, err
	}

	key = entities.NormalizeKey(kind, key)
	return &TagsResult{Kind: kind, Key: key, Tags: h.query.Tags(kind, key)}, nil
}

// HandleKeys returns the keys of a tag.
func (h *QueryHandler) HandleKeys(kindStr, tag string) (*KeysResult, error) {
	kind, err := entities.ParseKind(kindStr)
	if err != nil {
		return nil, err
	}
	if err := entities.ValidateTagName(tag); err != nil {
		return nil, err
	}

	return &KeysResult{Kind: kind, Tag: tag, Keys: h.query.Keys(kind, tag)}, nil
}

// HandleList returns tag names per kind. An empty kind lists every kind.
func (h *QueryHandler) HandleList(kindStr string) (map[entities.Kind][]string, error) {
	if kindStr == "" {
		return h.query.AllTagsByKind(), nil
	}

	kind, err := entities.ParseKind(kindStr)
	if err != nil {
		return nil, err
	}

	result := make(map[entities.Kind][]string, 1)
	if tags := h.query.AllTags(kind); len(tags) > 0 {
		result[kind] = tags
	}
	return result, nil
}

// HandleInspect returns the tags of several keys of one kind.
func (h *QueryHandler) HandleInspect(kindStr string, keyStrs []string) ([]services.KeyTags, error) {
	kind, err := entities.ParseKind(kindStr)
	if err != nil {
		return nil, err
	}
	keys, err := ParseKeys(keyStrs)
	if err != nil {
		return nil, err
	}

	return h.query.Inspect(kind, keys...), nil
}

// HandleInfo returns registry statistics with stored counts and recent writes.
func (h *QueryHandler) HandleInfo(ctx context.Context) (*InfoResult, error) {
	result := &InfoResult{Report: h.query.Report()}
	if h.store == nil {
		return result, nil
	}

	stored, err := h.store.CountAssociations(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting stored associations: %w", err)
	}
	result.Stored = stored

	recent, err := h.store.FindAuditLog(ctx, DefaultAuditLimit)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	result.Recent = recent

	return result, nil
}

// HandleExport returns the associations to export. An empty kind exports all.
func (h *QueryHandler) HandleExport(kindStr string) ([]entities.Association, error) {
	var kind entities.Kind
	if kindStr != "" {
		k, err := entities.ParseKind(kindStr)
		if err != nil {
			return nil, err
		}
		kind = k
	}
	return h.query.Associations(kind), nil
}
