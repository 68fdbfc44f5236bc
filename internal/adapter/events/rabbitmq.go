package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/heartmarshall/donorbase/internal/domain"
)

const publishTimeout = 5 * time.Second

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQ publishes events to a durable topic exchange. The routing key is
// the event type, e.g. "donor.created".
type RabbitMQ struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       channel
	exchange string
	log      *slog.Logger
}

// NewRabbitMQ dials the broker and declares the exchange.
func NewRabbitMQ(url, exchange string, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	p := newRabbitMQ(ch, exchange, logger)
	p.conn = conn
	p.log.Info("rabbitmq publisher initialized", slog.String("exchange", exchange))
	return p, nil
}

func newRabbitMQ(ch channel, exchange string, logger *slog.Logger) *RabbitMQ {
	return &RabbitMQ{
		ch:       ch,
		exchange: exchange,
		log:      logger.With("component", "events"),
	}
}

func (p *RabbitMQ) Publish(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		p.exchange,         // exchange
		string(event.Type), // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID.String(),
			Timestamp:    event.OccurredAt,
			Type:         string(event.Type),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	p.log.DebugContext(ctx, "event published",
		slog.String("type", string(event.Type)),
		slog.String("entity_id", event.EntityID.String()),
		slog.Int("body_size", len(body)),
	)
	return nil
}

// Close closes the channel and the connection.
func (p *RabbitMQ) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			p.log.Error("close rabbitmq channel", slog.String("error", err.Error()))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %w", err)
		}
	}
	return nil
}
