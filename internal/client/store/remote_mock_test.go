package store

import (
	"context"
	"sync"

	dto "github.com/heartmarshall/donorbase/pkg/api"
)

var _ Remote[dto.Donor, dto.DonorInput, dto.DonorPatch] = &donorRemoteMock{}

type donorRemoteMock struct {
	ListFunc   func(ctx context.Context) ([]dto.Donor, error)
	CreateFunc func(ctx context.Context, input dto.DonorInput) (dto.Donor, error)
	UpdateFunc func(ctx context.Context, id string, patch dto.DonorPatch) (dto.Donor, error)
	DeleteFunc func(ctx context.Context, id string) error

	lock        sync.RWMutex
	deleteCalls []string
}

func (m *donorRemoteMock) List(ctx context.Context) ([]dto.Donor, error) {
	if m.ListFunc == nil {
		panic("donorRemoteMock.ListFunc: method is nil but Remote.List was just called")
	}
	return m.ListFunc(ctx)
}

func (m *donorRemoteMock) Create(ctx context.Context, input dto.DonorInput) (dto.Donor, error) {
	if m.CreateFunc == nil {
		panic("donorRemoteMock.CreateFunc: method is nil but Remote.Create was just called")
	}
	return m.CreateFunc(ctx, input)
}

func (m *donorRemoteMock) Update(ctx context.Context, id string, patch dto.DonorPatch) (dto.Donor, error) {
	if m.UpdateFunc == nil {
		panic("donorRemoteMock.UpdateFunc: method is nil but Remote.Update was just called")
	}
	return m.UpdateFunc(ctx, id, patch)
}

func (m *donorRemoteMock) Delete(ctx context.Context, id string) error {
	m.lock.Lock()
	m.deleteCalls = append(m.deleteCalls, id)
	m.lock.Unlock()
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, id)
}

func (m *donorRemoteMock) DeleteCalls() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.deleteCalls
}
