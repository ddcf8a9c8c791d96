package a

import "context"

type Change struct {
	Tag string
	Key string
}

type TagStore interface {
	ApplyChanges(ctx context.Context, changes []Change) error
	SaveAssociations(ctx context.Context, tags []string) error
	LogAction(ctx context.Context, action string) error
}

func bad(ctx context.Context, changes []Change, store TagStore) {
	for _, c := range changes {
		store.ApplyChanges(ctx, []Change{c})         // want "ApplyChanges called inside loop"
		store.SaveAssociations(ctx, []string{c.Tag}) // want "SaveAssociations called inside loop"
	}

	for i := 0; i < 3; i++ {
		store.LogAction(ctx, "persist") // want "LogAction called inside loop"
	}
}

func good(ctx context.Context, changes []Change, store TagStore) error {
	var batch []Change
	for _, c := range changes {
		if c.Tag != "" {
			batch = append(batch, c)
		}
	}
	return store.ApplyChanges(ctx, batch)
}

func goodDeferred(ctx context.Context, changes []Change, store TagStore) []func() error {
	var fns []func() error
	for range changes {
		fns = append(fns, func() error {
			return store.LogAction(ctx, "persist")
		})
	}
	return fns
}
