package views

import (
	"context"

	"github.com/Ragnerd/Kontrib/internal/models"
	"github.com/Ragnerd/Kontrib/internal/storage"
)

// lookupCache memoizes lookups for the duration of one view, absent
// records included.
type lookupCache[T any] struct {
	load func(ctx context.Context, id string) (*T, error)
	seen map[string]*T
}

func (c *lookupCache[T]) get(ctx context.Context, id string) (*T, error) {
	if v, ok := c.seen[id]; ok {
		return v, nil
	}
	v, err := c.load(ctx, id)
	if err != nil {
		return nil, err
	}
	c.seen[id] = v
	return v, nil
}

func newUserCache(store storage.UserReader) *lookupCache[models.User] {
	return &lookupCache[models.User]{load: store.GetUser, seen: make(map[string]*models.User)}
}

func newGroupCache(store storage.GroupReader) *lookupCache[models.Group] {
	return &lookupCache[models.Group]{load: store.GetGroup, seen: make(map[string]*models.Group)}
}
