package services

import (
	"go.uber.org/zap"

	"github.com/ersonp/tag-core/internal/domain/entities"
)

// BuilderState tracks what a TagBuilder may still do.
type BuilderState int

const (
	// StateInitial accepts Add, RemoveKey and Remove.
	StateInitial BuilderState = iota
	// StateAdding accepts further Add calls only.
	StateAdding
	// StateRemoving accepts further RemoveKey calls only.
	StateRemoving
	// StateInvalid ignores every call.
	StateInvalid
	// StateDone is reached after Remove and ignores every call.
	StateDone
)

func (s BuilderState) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateAdding:
		return "adding"
	case StateRemoving:
		return "removing"
	case StateInvalid:
		return "invalid"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// TagBuilder applies additions or removals for a fixed set of tag names.
type TagBuilder struct {
	svc   *TagService
	kind  entities.Kind
	names []string
	state BuilderState
}

// State returns the current builder state.
func (b *TagBuilder) State() BuilderState {
	return b.state
}

// Names returns the validated tag names the builder writes to.
func (b *TagBuilder) Names() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Kind returns the kind the builder writes to.
func (b *TagBuilder) Kind() entities.Kind {
	return b.kind
}

// Add tags each key with every builder name. Invalid keys (no ID or a
// negative Meta) are skipped.
func (b *TagBuilder) Add(keys ...entities.Key) *TagBuilder {
	switch b.state {
	case StateInitial:
		b.state = StateAdding
	case StateAdding:
	default:
		b.rejected("add")
		return b
	}

	reg := b.svc.registry
	for _, key := range keys {
		if !key.IsValid() {
			continue
		}
		key = entities.NormalizeKey(b.kind, key)

		allowed := b.names
		if b.svc.beforeAdd != nil {
			allowed = make([]string, 0, len(b.names))
			for _, name := range b.names {
				if b.svc.allowAdd(b.kind, name, key) {
					allowed = append(allowed, name)
				}
			}
		}

		switch len(allowed) {
		case 0:
			continue
		case 1:
			reg.Add(b.kind, allowed[0], key)
		default:
			reg.AddAll(b.kind, allowed, key)
		}

		changes := make([]entities.Change, 0, len(allowed))
		for _, name := range allowed {
			changes = append(changes, entities.Change{Op: entities.ChangeAdd, Kind: b.kind, Tag: name, Key: key})
		}
		b.svc.record(changes...)
	}
	return b
}

// RemoveKey removes each key from every builder name.
func (b *TagBuilder) RemoveKey(keys ...entities.Key) *TagBuilder {
	switch b.state {
	case StateInitial:
		b.state = StateRemoving
	case StateRemoving:
	default:
		b.rejected("remove key")
		return b
	}

	reg := b.svc.registry
	for _, key := range keys {
		if !key.IsValid() {
			continue
		}
		key = entities.NormalizeKey(b.kind, key)

		if len(b.names) == 1 {
			reg.RemoveKey(b.kind, b.names[0], key)
		} else {
			reg.RemoveKeyFromAll(b.kind, b.names, key)
		}

		changes := make([]entities.Change, 0, len(b.names))
		for _, name := range b.names {
			changes = append(changes, entities.Change{Op: entities.ChangeRemoveKey, Kind: b.kind, Tag: name, Key: key})
		}
		b.svc.record(changes...)
	}
	return b
}

// Remove deletes every builder name with all its associations.
// It is only honored as the first call on a builder.
func (b *TagBuilder) Remove() {
	if b.state != StateInitial {
		b.rejected("remove")
		return
	}
	b.state = StateDone

	allowed := make([]string, 0, len(b.names))
	for _, name := range b.names {
		if b.svc.allowRemove(b.kind, name) {
			allowed = append(allowed, name)
		}
	}
	if len(allowed) == 0 {
		return
	}

	reg := b.svc.registry
	if len(allowed) == 1 {
		reg.RemoveTag(b.kind, allowed[0])
	} else {
		reg.RemoveTags(b.kind, allowed)
	}

	changes := make([]entities.Change, 0, len(allowed))
	for _, name := range allowed {
		changes = append(changes, entities.Change{Op: entities.ChangeRemoveTag, Kind: b.kind, Tag: name})
	}
	b.svc.record(changes...)
}

func (b *TagBuilder) rejected(op string) {
	if b.state == StateInvalid {
		return
	}
	b.svc.logger.Debug("Builder call ignored",
		zap.String("op", op),
		zap.Stringer("state", b.state),
		zap.Strings("tags", b.names))
}
