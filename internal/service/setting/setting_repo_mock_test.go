package setting

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
)

var _ settingRepo = &settingRepoMock{}

type settingRepoMock struct {
	ListFunc   func(ctx context.Context) ([]domain.Setting, error)
	CreateFunc func(ctx context.Context, s domain.Setting) (*domain.Setting, error)
	UpdateFunc func(ctx context.Context, id uuid.UUID, patch domain.SettingPatch, now time.Time) (*domain.Setting, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error

	calls struct {
		Create []domain.Setting
		Delete []uuid.UUID
	}
	lock sync.RWMutex
}

func (mock *settingRepoMock) List(ctx context.Context) ([]domain.Setting, error) {
	if mock.ListFunc == nil {
		panic("settingRepoMock.ListFunc: method is nil but settingRepo.List was just called")
	}
	return mock.ListFunc(ctx)
}

func (mock *settingRepoMock) Create(ctx context.Context, s domain.Setting) (*domain.Setting, error) {
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, s)
	mock.lock.Unlock()
	if mock.CreateFunc == nil {
		return &s, nil
	}
	return mock.CreateFunc(ctx, s)
}

func (mock *settingRepoMock) CreateCalls() []domain.Setting {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *settingRepoMock) Update(ctx context.Context, id uuid.UUID, patch domain.SettingPatch, now time.Time) (*domain.Setting, error) {
	if mock.UpdateFunc == nil {
		panic("settingRepoMock.UpdateFunc: method is nil but settingRepo.Update was just called")
	}
	return mock.UpdateFunc(ctx, id, patch, now)
}

func (mock *settingRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, id)
	mock.lock.Unlock()
	if mock.DeleteFunc == nil {
		return nil
	}
	return mock.DeleteFunc(ctx, id)
}

func (mock *settingRepoMock) DeleteCalls() []uuid.UUID {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Delete
}
