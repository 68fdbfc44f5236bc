package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListFunc        func(ctx context.Context) ([]domain.User, error)
	CreateFunc      func(ctx context.Context, u domain.User) (*domain.User, error)
	UpdateFunc      func(ctx context.Context, id uuid.UUID, patch domain.UserPatch, now time.Time) (*domain.User, error)
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
	CountAdminsFunc func(ctx context.Context) (int, error)

	calls struct {
		Create []domain.User
		Update []domain.UserPatch
		Delete []uuid.UUID
	}
	lock sync.RWMutex
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

func (mock *userRepoMock) List(ctx context.Context) ([]domain.User, error) {
	if mock.ListFunc == nil {
		panic("userRepoMock.ListFunc: method is nil but userRepo.List was just called")
	}
	return mock.ListFunc(ctx)
}

func (mock *userRepoMock) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, u)
	mock.lock.Unlock()
	if mock.CreateFunc == nil {
		return &u, nil
	}
	return mock.CreateFunc(ctx, u)
}

func (mock *userRepoMock) CreateCalls() []domain.User {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *userRepoMock) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch, now time.Time) (*domain.User, error) {
	mock.lock.Lock()
	mock.calls.Update = append(mock.calls.Update, patch)
	mock.lock.Unlock()
	if mock.UpdateFunc == nil {
		panic("userRepoMock.UpdateFunc: method is nil but userRepo.Update was just called")
	}
	return mock.UpdateFunc(ctx, id, patch, now)
}

func (mock *userRepoMock) UpdateCalls() []domain.UserPatch {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Update
}

func (mock *userRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, id)
	mock.lock.Unlock()
	if mock.DeleteFunc == nil {
		return nil
	}
	return mock.DeleteFunc(ctx, id)
}

func (mock *userRepoMock) DeleteCalls() []uuid.UUID {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Delete
}

func (mock *userRepoMock) CountAdmins(ctx context.Context) (int, error) {
	if mock.CountAdminsFunc == nil {
		panic("userRepoMock.CountAdminsFunc: method is nil but userRepo.CountAdmins was just called")
	}
	return mock.CountAdminsFunc(ctx)
}
