package events

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

type publishCall struct {
	Exchange string
	Key      string
	Msg      amqp.Publishing
}

type channelMock struct {
	PublishWithContextFunc func(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	CloseFunc              func() error

	mu      sync.RWMutex
	publish []publishCall
}

func (m *channelMock) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	m.mu.Lock()
	m.publish = append(m.publish, publishCall{Exchange: exchange, Key: key, Msg: msg})
	m.mu.Unlock()
	if m.PublishWithContextFunc == nil {
		return nil
	}
	return m.PublishWithContextFunc(ctx, exchange, key, mandatory, immediate, msg)
}

func (m *channelMock) PublishCalls() []publishCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]publishCall(nil), m.publish...)
}

func (m *channelMock) Close() error {
	if m.CloseFunc == nil {
		return nil
	}
	return m.CloseFunc()
}
