// Package remote wraps single API invocations, tracking loading, result and
// a display-ready error message.
package remote

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/heartmarshall/donorbase/internal/client/api"
)

// Call runs one caller-supplied remote function and records its outcome.
type Call[T any] struct {
	fn func(ctx context.Context) (T, error)

	mu      sync.RWMutex
	loading bool
	result  T
	hasData bool
	err     string
}

// New creates a Call around fn. Nothing runs until Run.
func New[T any](fn func(ctx context.Context) (T, error)) *Call[T] {
	return &Call[T]{fn: fn}
}

// Run invokes the function. On failure the previous result is kept and the
// error message replaces the last one; on success the message is cleared.
func (c *Call[T]) Run(ctx context.Context) (T, error) {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	res, err := c.fn(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.err = Message(err)
		return res, err
	}
	c.result, c.hasData, c.err = res, true, ""
	return res, nil
}

func (c *Call[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Result returns the last successful result.
func (c *Call[T]) Result() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.result, c.hasData
}

// Err returns the message of the last failure, or "" after a success.
func (c *Call[T]) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Do runs fn once and returns its result with a display message for any error.
func Do[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) (T, string) {
	c := New(fn)
	res, _ := c.Run(ctx)
	return res, c.Err()
}

// Message turns an error into a human-readable string: the API error body
// message, else the HTTP status text, else a network error description.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			if len(apiErr.Fields) > 0 {
				return apiErr.Message + ": " + joinFields(apiErr.Fields)
			}
			return apiErr.Message
		}
		if text := http.StatusText(apiErr.StatusCode); text != "" {
			return text
		}
	}
	return "network error: " + err.Error()
}
