package donor

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
)

var _ donorRepo = &donorRepoMock{}

type donorRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Donor, error)
	ListFunc    func(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error)
	CreateFunc  func(ctx context.Context, d domain.Donor) (*domain.Donor, error)
	UpdateFunc  func(ctx context.Context, d domain.Donor) (*domain.Donor, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error

	calls struct {
		GetByID []uuid.UUID
		List    []domain.DonorFilter
		Create  []domain.Donor
		Update  []domain.Donor
		Delete  []uuid.UUID
	}
	lock sync.RWMutex
}

func (mock *donorRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Donor, error) {
	if mock.GetByIDFunc == nil {
		panic("donorRepoMock.GetByIDFunc: method is nil but donorRepo.GetByID was just called")
	}
	mock.lock.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, id)
	mock.lock.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *donorRepoMock) GetByIDCalls() []uuid.UUID {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.GetByID
}

func (mock *donorRepoMock) List(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error) {
	if mock.ListFunc == nil {
		panic("donorRepoMock.ListFunc: method is nil but donorRepo.List was just called")
	}
	mock.lock.Lock()
	mock.calls.List = append(mock.calls.List, filter)
	mock.lock.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *donorRepoMock) ListCalls() []domain.DonorFilter {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.List
}

func (mock *donorRepoMock) Create(ctx context.Context, d domain.Donor) (*domain.Donor, error) {
	if mock.CreateFunc == nil {
		panic("donorRepoMock.CreateFunc: method is nil but donorRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, d)
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, d)
}

func (mock *donorRepoMock) CreateCalls() []domain.Donor {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *donorRepoMock) Update(ctx context.Context, d domain.Donor) (*domain.Donor, error) {
	if mock.UpdateFunc == nil {
		panic("donorRepoMock.UpdateFunc: method is nil but donorRepo.Update was just called")
	}
	mock.lock.Lock()
	mock.calls.Update = append(mock.calls.Update, d)
	mock.lock.Unlock()
	return mock.UpdateFunc(ctx, d)
}

func (mock *donorRepoMock) UpdateCalls() []domain.Donor {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Update
}

func (mock *donorRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("donorRepoMock.DeleteFunc: method is nil but donorRepo.Delete was just called")
	}
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, id)
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *donorRepoMock) DeleteCalls() []uuid.UUID {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Delete
}
