package donor

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
)

var (
	_ documentRepo   = &documentRepoMock{}
	_ blobStore      = &blobStoreMock{}
	_ eventPublisher = &eventPublisherMock{}
	_ txManager      = &txManagerMock{}
)

type documentRepoMock struct {
	ObjectKeysByDonorFunc func(ctx context.Context, donorID uuid.UUID) ([]string, error)
}

func (mock *documentRepoMock) ObjectKeysByDonor(ctx context.Context, donorID uuid.UUID) ([]string, error) {
	if mock.ObjectKeysByDonorFunc == nil {
		panic("documentRepoMock.ObjectKeysByDonorFunc: method is nil but documentRepo.ObjectKeysByDonor was just called")
	}
	return mock.ObjectKeysByDonorFunc(ctx, donorID)
}

type blobStoreMock struct {
	DeleteFunc func(ctx context.Context, key string) error

	lock    sync.RWMutex
	deleted []string
}

func (mock *blobStoreMock) Delete(ctx context.Context, key string) error {
	mock.lock.Lock()
	mock.deleted = append(mock.deleted, key)
	mock.lock.Unlock()
	if mock.DeleteFunc == nil {
		return nil
	}
	return mock.DeleteFunc(ctx, key)
}

func (mock *blobStoreMock) DeleteCalls() []string {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.deleted
}

type eventPublisherMock struct {
	PublishFunc func(ctx context.Context, event domain.Event) error

	lock   sync.RWMutex
	events []domain.Event
}

func (mock *eventPublisherMock) Publish(ctx context.Context, event domain.Event) error {
	mock.lock.Lock()
	mock.events = append(mock.events, event)
	mock.lock.Unlock()
	if mock.PublishFunc == nil {
		return nil
	}
	return mock.PublishFunc(ctx, event)
}

func (mock *eventPublisherMock) PublishCalls() []domain.Event {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.events
}

// txManagerMock runs fn inline, like a transaction that always commits.
type txManagerMock struct {
	lock  sync.RWMutex
	calls int
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	mock.lock.Lock()
	mock.calls++
	mock.lock.Unlock()
	return fn(ctx)
}

func (mock *txManagerMock) RunInTxCalls() int {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls
}
