package finding

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
)

var (
	_ findingRepo  = &findingRepoMock{}
	_ donorRepo    = &donorRepoMock{}
	_ documentRepo = &documentRepoMock{}
)

type findingRepoMock struct {
	ListByDonorFunc func(ctx context.Context, donorID uuid.UUID) ([]domain.Finding, error)
	ListFunc        func(ctx context.Context, severity *domain.Severity) ([]domain.Finding, error)
	CreateFunc      func(ctx context.Context, f domain.Finding) (*domain.Finding, error)

	lock    sync.RWMutex
	created []domain.Finding
}

func (mock *findingRepoMock) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]domain.Finding, error) {
	if mock.ListByDonorFunc == nil {
		panic("findingRepoMock.ListByDonorFunc: method is nil but findingRepo.ListByDonor was just called")
	}
	return mock.ListByDonorFunc(ctx, donorID)
}

func (mock *findingRepoMock) List(ctx context.Context, severity *domain.Severity) ([]domain.Finding, error) {
	if mock.ListFunc == nil {
		panic("findingRepoMock.ListFunc: method is nil but findingRepo.List was just called")
	}
	return mock.ListFunc(ctx, severity)
}

func (mock *findingRepoMock) Create(ctx context.Context, f domain.Finding) (*domain.Finding, error) {
	mock.lock.Lock()
	mock.created = append(mock.created, f)
	mock.lock.Unlock()
	if mock.CreateFunc == nil {
		return &f, nil
	}
	return mock.CreateFunc(ctx, f)
}

func (mock *findingRepoMock) CreateCalls() []domain.Finding {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.created
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

type documentRepoMock struct {
	ListByDonorFunc func(ctx context.Context, donorID uuid.UUID) ([]domain.Document, error)
}

func (mock *documentRepoMock) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]domain.Document, error) {
	if mock.ListByDonorFunc == nil {
		panic("documentRepoMock.ListByDonorFunc: method is nil but documentRepo.ListByDonor was just called")
	}
	return mock.ListByDonorFunc(ctx, donorID)
}
