// Package events publishes domain events to the message broker.
package events

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/donorbase/internal/domain"
)

// Publisher sends domain events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, event domain.Event) error
	Close() error
}

// Noop discards every event. Used when no broker is configured.
type Noop struct {
	log *slog.Logger
}

// NewNoop returns a publisher that only logs at debug level.
func NewNoop(logger *slog.Logger) *Noop {
	return &Noop{log: logger.With("component", "events")}
}

func (n *Noop) Publish(ctx context.Context, event domain.Event) error {
	n.log.DebugContext(ctx, "event dropped, no broker configured",
		slog.String("type", string(event.Type)),
		slog.String("entity_id", event.EntityID.String()),
	)
	return nil
}

func (n *Noop) Close() error { return nil }
