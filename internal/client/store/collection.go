// Package store keeps client-side copies of remote collections. Local state
// changes only after the server confirms an operation.
package store

import (
	"context"
	"slices"
	"sync"

	"github.com/heartmarshall/donorbase/internal/client/remote"
	dto "github.com/heartmarshall/donorbase/pkg/api"
)

// Remote is a REST collection endpoint.
type Remote[T dto.Record, C, U any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, input C) (T, error)
	Update(ctx context.Context, id string, patch U) (T, error)
	Delete(ctx context.Context, id string) error
}

// Collection is an ordered local list of records of one type.
type Collection[T dto.Record, C, U any] struct {
	remote Remote[T, C, U]

	mu       sync.RWMutex
	items    []T
	err      string
	inflight int
}

// NewCollection creates an empty collection backed by r.
func NewCollection[T dto.Record, C, U any](r Remote[T, C, U]) *Collection[T, C, U] {
	return &Collection[T, C, U]{remote: r}
}

// List fetches the collection and replaces local state in server order.
func (c *Collection[T, C, U]) List(ctx context.Context) error {
	items, err := run(c, ctx, c.remote.List)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

// Create posts input and prepends the record returned by the server.
func (c *Collection[T, C, U]) Create(ctx context.Context, input C) (T, error) {
	rec, err := run(c, ctx, func(ctx context.Context) (T, error) {
		return c.remote.Create(ctx, input)
	})
	if err != nil {
		return rec, err
	}
	c.mu.Lock()
	c.items = slices.Insert(c.items, 0, rec)
	c.mu.Unlock()
	return rec, nil
}

// Update posts a partial update and replaces the matching local entry.
func (c *Collection[T, C, U]) Update(ctx context.Context, id string, patch U) (T, error) {
	rec, err := run(c, ctx, func(ctx context.Context) (T, error) {
		return c.remote.Update(ctx, id, patch)
	})
	if err != nil {
		return rec, err
	}
	c.mu.Lock()
	if i := c.indexOf(id); i >= 0 {
		c.items[i] = rec
	}
	c.mu.Unlock()
	return rec, nil
}

// Delete removes the record on the server, then locally.
func (c *Collection[T, C, U]) Delete(ctx context.Context, id string) error {
	_, err := run(c, ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.remote.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	c.mu.Lock()
	if i := c.indexOf(id); i >= 0 {
		c.items = slices.Delete(c.items, i, i+1)
	}
	c.mu.Unlock()
	return nil
}

// Items returns a copy of the local list.
func (c *Collection[T, C, U]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Get returns the local record with the given id.
func (c *Collection[T, C, U]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Filter returns the local records accepted by keep, in order.
func (c *Collection[T, C, U]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []T
	for _, it := range c.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Err is the message of the last failed operation; "" after a success.
func (c *Collection[T, C, U]) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Loading reports whether any operation is in flight.
func (c *Collection[T, C, U]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inflight > 0
}

// indexOf must be called with mu held.
func (c *Collection[T, C, U]) indexOf(id string) int {
	return slices.IndexFunc(c.items, func(it T) bool { return it.GetID() == id })
}

// run executes fn through a remote.Call and records the outcome message.
func run[R any, T dto.Record, C, U any](c *Collection[T, C, U], ctx context.Context, fn func(context.Context) (R, error)) (R, error) {
	c.mu.Lock()
	c.inflight++
	c.mu.Unlock()

	call := remote.New(fn)
	res, err := call.Run(ctx)

	c.mu.Lock()
	c.inflight--
	c.err = call.Err()
	c.mu.Unlock()
	return res, err
}
