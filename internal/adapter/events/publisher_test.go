package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/donorbase/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRabbitMQ_Publish(t *testing.T) {
	ch := &channelMock{}
	p := newRabbitMQ(ch, "donorbase.events", discardLogger())

	donorID := uuid.New()
	ev := domain.NewEvent(domain.EventDonorCreated, donorID, map[string]any{"unique_donor_id": "DN-001"})

	require.NoError(t, p.Publish(context.Background(), ev))

	calls := ch.PublishCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "donorbase.events", calls[0].Exchange)
	assert.Equal(t, "donor.created", calls[0].Key)
	assert.Equal(t, amqp.Persistent, calls[0].Msg.DeliveryMode)
	assert.Equal(t, "application/json", calls[0].Msg.ContentType)
	assert.Equal(t, ev.ID.String(), calls[0].Msg.MessageId)

	var decoded domain.Event
	require.NoError(t, json.Unmarshal(calls[0].Msg.Body, &decoded))
	assert.Equal(t, donorID, decoded.EntityID)
	assert.Equal(t, "DN-001", decoded.Payload["unique_donor_id"])
}

func TestRabbitMQ_PublishError(t *testing.T) {
	ch := &channelMock{
		PublishWithContextFunc: func(context.Context, string, string, bool, bool, amqp.Publishing) error {
			return amqp.ErrClosed
		},
	}
	p := newRabbitMQ(ch, "donorbase.events", discardLogger())

	err := p.Publish(context.Background(), domain.NewEvent(domain.EventDonorDeleted, uuid.New(), nil))
	assert.True(t, errors.Is(err, amqp.ErrClosed), "got %v", err)
}

func TestNoop_Publish(t *testing.T) {
	p := NewNoop(discardLogger())
	assert.NoError(t, p.Publish(context.Background(), domain.NewEvent(domain.EventDocumentUploaded, uuid.New(), nil)))
	assert.NoError(t, p.Close())
}
