package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/adapter/blob"
	"github.com/heartmarshall/donorbase/internal/domain"
)

var (
	_ documentRepo   = &documentRepoMock{}
	_ donorRepo      = &donorRepoMock{}
	_ blobStore      = &blobStoreMock{}
	_ eventPublisher = &eventPublisherMock{}
)

type documentRepoMock struct {
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	ListByDonorFunc   func(ctx context.Context, donorID uuid.UUID) ([]domain.Document, error)
	CountByDonorsFunc func(ctx context.Context, donorIDs []uuid.UUID) ([]domain.DocumentCount, error)
	CreateFunc        func(ctx context.Context, d domain.Document) (*domain.Document, error)
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error

	lock          sync.RWMutex
	countByDonors [][]uuid.UUID
	deleted       []uuid.UUID
}

func (mock *documentRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	if mock.GetByIDFunc == nil {
		panic("documentRepoMock.GetByIDFunc: method is nil but documentRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

func (mock *documentRepoMock) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]domain.Document, error) {
	if mock.ListByDonorFunc == nil {
		panic("documentRepoMock.ListByDonorFunc: method is nil but documentRepo.ListByDonor was just called")
	}
	return mock.ListByDonorFunc(ctx, donorID)
}

func (mock *documentRepoMock) CountByDonors(ctx context.Context, donorIDs []uuid.UUID) ([]domain.DocumentCount, error) {
	if mock.CountByDonorsFunc == nil {
		panic("documentRepoMock.CountByDonorsFunc: method is nil but documentRepo.CountByDonors was just called")
	}
	mock.lock.Lock()
	mock.countByDonors = append(mock.countByDonors, donorIDs)
	mock.lock.Unlock()
	return mock.CountByDonorsFunc(ctx, donorIDs)
}

func (mock *documentRepoMock) CountByDonorsCalls() [][]uuid.UUID {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.countByDonors
}

func (mock *documentRepoMock) Create(ctx context.Context, d domain.Document) (*domain.Document, error) {
	if mock.CreateFunc == nil {
		panic("documentRepoMock.CreateFunc: method is nil but documentRepo.Create was just called")
	}
	return mock.CreateFunc(ctx, d)
}

func (mock *documentRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("documentRepoMock.DeleteFunc: method is nil but documentRepo.Delete was just called")
	}
	mock.lock.Lock()
	mock.deleted = append(mock.deleted, id)
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *documentRepoMock) DeleteCalls() []uuid.UUID {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.deleted
}

type donorRepoMock struct {
	ExistsFunc func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (mock *donorRepoMock) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if mock.ExistsFunc == nil {
		return true, nil
	}
	return mock.ExistsFunc(ctx, id)
}

// blobStoreMock keeps objects in memory.
type blobStoreMock struct {
	PutErr error

	lock    sync.RWMutex
	objects map[string][]byte
	deleted []string
}

func (mock *blobStoreMock) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if mock.PutErr != nil {
		return mock.PutErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	mock.lock.Lock()
	defer mock.lock.Unlock()
	if mock.objects == nil {
		mock.objects = make(map[string][]byte)
	}
	mock.objects[key] = data
	return nil
}

func (mock *blobStoreMock) Get(ctx context.Context, key string) (io.ReadCloser, blob.Object, error) {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	data, ok := mock.objects[key]
	if !ok {
		return nil, blob.Object{}, fmt.Errorf("blob %s: %w", key, domain.ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), blob.Object{Key: key, Size: int64(len(data))}, nil
}

func (mock *blobStoreMock) Delete(ctx context.Context, key string) error {
	mock.lock.Lock()
	defer mock.lock.Unlock()
	mock.deleted = append(mock.deleted, key)
	delete(mock.objects, key)
	return nil
}

func (mock *blobStoreMock) DeleteCalls() []string {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.deleted
}

type eventPublisherMock struct {
	lock   sync.RWMutex
	events []domain.Event
}

func (mock *eventPublisherMock) Publish(ctx context.Context, event domain.Event) error {
	mock.lock.Lock()
	defer mock.lock.Unlock()
	mock.events = append(mock.events, event)
	return nil
}

func (mock *eventPublisherMock) PublishCalls() []domain.Event {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.events
}
