package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mindbuilders/dtmms/internal/store"
)

type identified interface {
	Identifier() string
}

// collection implements the read-modify-write cycle shared by every
// repository. Methods suffixed Locked expect the caller to hold the store
// lock.
type collection[T identified] struct {
	store *store.Store
	key   store.Key
}

func newCollection[T identified](st *store.Store, key store.Key) collection[T] {
	return collection[T]{store: st, key: key}
}

func (c collection[T]) all(ctx context.Context) ([]T, error) {
	return store.ReadAll[T](ctx, c.store, c.key)
}

func (c collection[T]) find(ctx context.Context, id string) (*T, error) {
	items, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Identifier() == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (c collection[T]) filter(ctx context.Context, keep func(T) bool) ([]T, error) {
	items, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (c collection[T]) insert(ctx context.Context, item T) (*T, error) {
	err := c.store.Locked(func() error {
		return c.insertLocked(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (c collection[T]) insertLocked(ctx context.Context, item T) error {
	items, err := c.all(ctx)
	if err != nil {
		return err
	}
	return store.WriteAll(ctx, c.store, c.key, append(items, item))
}

// modify applies fn to the record with the given id and persists the
// collection. It returns nil without writing when the id is unknown.
func (c collection[T]) modify(ctx context.Context, id string, fn func(*T)) (*T, error) {
	var updated *T
	err := c.store.Locked(func() error {
		var err error
		updated, err = c.modifyLocked(ctx, id, fn)
		return err
	})
	return updated, err
}

func (c collection[T]) modifyLocked(ctx context.Context, id string, fn func(*T)) (*T, error) {
	items, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Identifier() != id {
			continue
		}
		fn(&items[i])
		if err := store.WriteAll(ctx, c.store, c.key, items); err != nil {
			return nil, err
		}
		result := items[i]
		return &result, nil
	}
	return nil, nil
}

// remove drops the record with the given id. It reports false without
// writing when the id is unknown.
func (c collection[T]) remove(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := c.store.Locked(func() error {
		items, err := c.all(ctx)
		if err != nil {
			return err
		}
		kept := make([]T, 0, len(items))
		for _, item := range items {
			if item.Identifier() == id {
				removed = true
				continue
			}
			kept = append(kept, item)
		}
		if !removed {
			return nil
		}
		return store.WriteAll(ctx, c.store, c.key, kept)
	})
	return removed, err
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
