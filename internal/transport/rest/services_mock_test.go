package rest

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
	"github.com/heartmarshall/donorbase/internal/service/auth"
	"github.com/heartmarshall/donorbase/internal/service/document"
	"github.com/heartmarshall/donorbase/internal/service/donor"
	"github.com/heartmarshall/donorbase/internal/service/finding"
	"github.com/heartmarshall/donorbase/internal/service/setting"
	"github.com/heartmarshall/donorbase/internal/service/user"
)

var (
	_ authService     = &authServiceMock{}
	_ donorService    = &donorServiceMock{}
	_ documentService = &documentServiceMock{}
	_ findingService  = &findingServiceMock{}
	_ userService     = &userServiceMock{}
	_ settingService  = &settingServiceMock{}
)

type authServiceMock struct {
	LoginFunc func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	MeFunc    func(ctx context.Context) (*domain.User, error)
}

func (m *authServiceMock) Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
	if m.LoginFunc == nil {
		panic("authServiceMock.LoginFunc: method is nil but authService.Login was just called")
	}
	return m.LoginFunc(ctx, input)
}

func (m *authServiceMock) Me(ctx context.Context) (*domain.User, error) {
	if m.MeFunc == nil {
		panic("authServiceMock.MeFunc: method is nil but authService.Me was just called")
	}
	return m.MeFunc(ctx)
}

type donorServiceMock struct {
	ListFunc   func(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error)
	GetFunc    func(ctx context.Context, id uuid.UUID) (*domain.Donor, error)
	CreateFunc func(ctx context.Context, input donor.CreateInput) (*domain.Donor, error)
	UpdateFunc func(ctx context.Context, id uuid.UUID, patch domain.DonorPatch) (*domain.Donor, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error

	lock      sync.RWMutex
	listCalls []domain.DonorFilter
}

func (m *donorServiceMock) List(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error) {
	if m.ListFunc == nil {
		panic("donorServiceMock.ListFunc: method is nil but donorService.List was just called")
	}
	m.lock.Lock()
	m.listCalls = append(m.listCalls, filter)
	m.lock.Unlock()
	return m.ListFunc(ctx, filter)
}

func (m *donorServiceMock) ListCalls() []domain.DonorFilter {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.listCalls
}

func (m *donorServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Donor, error) {
	if m.GetFunc == nil {
		panic("donorServiceMock.GetFunc: method is nil but donorService.Get was just called")
	}
	return m.GetFunc(ctx, id)
}

func (m *donorServiceMock) Create(ctx context.Context, input donor.CreateInput) (*domain.Donor, error) {
	if m.CreateFunc == nil {
		panic("donorServiceMock.CreateFunc: method is nil but donorService.Create was just called")
	}
	return m.CreateFunc(ctx, input)
}

func (m *donorServiceMock) Update(ctx context.Context, id uuid.UUID, patch domain.DonorPatch) (*domain.Donor, error) {
	if m.UpdateFunc == nil {
		panic("donorServiceMock.UpdateFunc: method is nil but donorService.Update was just called")
	}
	return m.UpdateFunc(ctx, id, patch)
}

func (m *donorServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("donorServiceMock.DeleteFunc: method is nil but donorService.Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

type documentServiceMock struct {
	ListByDonorFunc func(ctx context.Context, donorID uuid.UUID) ([]domain.Document, error)
	CountsFunc      func(ctx context.Context, donorIDs []uuid.UUID) ([]domain.DocumentCount, error)
	UploadFunc      func(ctx context.Context, input document.UploadInput) (*domain.Document, error)
	OpenFunc        func(ctx context.Context, id uuid.UUID) (*domain.Document, io.ReadCloser, error)
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
}

func (m *documentServiceMock) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]domain.Document, error) {
	if m.ListByDonorFunc == nil {
		panic("documentServiceMock.ListByDonorFunc: method is nil but documentService.ListByDonor was just called")
	}
	return m.ListByDonorFunc(ctx, donorID)
}

func (m *documentServiceMock) Counts(ctx context.Context, donorIDs []uuid.UUID) ([]domain.DocumentCount, error) {
	if m.CountsFunc == nil {
		panic("documentServiceMock.CountsFunc: method is nil but documentService.Counts was just called")
	}
	return m.CountsFunc(ctx, donorIDs)
}

func (m *documentServiceMock) Upload(ctx context.Context, input document.UploadInput) (*domain.Document, error) {
	if m.UploadFunc == nil {
		panic("documentServiceMock.UploadFunc: method is nil but documentService.Upload was just called")
	}
	return m.UploadFunc(ctx, input)
}

func (m *documentServiceMock) Open(ctx context.Context, id uuid.UUID) (*domain.Document, io.ReadCloser, error) {
	if m.OpenFunc == nil {
		panic("documentServiceMock.OpenFunc: method is nil but documentService.Open was just called")
	}
	return m.OpenFunc(ctx, id)
}

func (m *documentServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("documentServiceMock.DeleteFunc: method is nil but documentService.Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

type findingServiceMock struct {
	ListByDonorFunc func(ctx context.Context, donorID uuid.UUID) ([]domain.Finding, error)
	ListFunc        func(ctx context.Context, severity *domain.Severity) ([]domain.Finding, error)
	CreateFunc      func(ctx context.Context, donorID uuid.UUID, input finding.CreateInput) (*domain.Finding, error)
}

func (m *findingServiceMock) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]domain.Finding, error) {
	if m.ListByDonorFunc == nil {
		panic("findingServiceMock.ListByDonorFunc: method is nil but findingService.ListByDonor was just called")
	}
	return m.ListByDonorFunc(ctx, donorID)
}

func (m *findingServiceMock) List(ctx context.Context, severity *domain.Severity) ([]domain.Finding, error) {
	if m.ListFunc == nil {
		panic("findingServiceMock.ListFunc: method is nil but findingService.List was just called")
	}
	return m.ListFunc(ctx, severity)
}

func (m *findingServiceMock) Create(ctx context.Context, donorID uuid.UUID, input finding.CreateInput) (*domain.Finding, error) {
	if m.CreateFunc == nil {
		panic("findingServiceMock.CreateFunc: method is nil but findingService.Create was just called")
	}
	return m.CreateFunc(ctx, donorID, input)
}

type userServiceMock struct {
	ListFunc   func(ctx context.Context) ([]domain.User, error)
	CreateFunc func(ctx context.Context, input user.CreateInput) (*domain.User, error)
	UpdateFunc func(ctx context.Context, id uuid.UUID, input user.UpdateInput) (*domain.User, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *userServiceMock) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFunc == nil {
		panic("userServiceMock.ListFunc: method is nil but userService.List was just called")
	}
	return m.ListFunc(ctx)
}

func (m *userServiceMock) Create(ctx context.Context, input user.CreateInput) (*domain.User, error) {
	if m.CreateFunc == nil {
		panic("userServiceMock.CreateFunc: method is nil but userService.Create was just called")
	}
	return m.CreateFunc(ctx, input)
}

func (m *userServiceMock) Update(ctx context.Context, id uuid.UUID, input user.UpdateInput) (*domain.User, error) {
	if m.UpdateFunc == nil {
		panic("userServiceMock.UpdateFunc: method is nil but userService.Update was just called")
	}
	return m.UpdateFunc(ctx, id, input)
}

func (m *userServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("userServiceMock.DeleteFunc: method is nil but userService.Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

type settingServiceMock struct {
	ListFunc   func(ctx context.Context) ([]domain.Setting, error)
	CreateFunc func(ctx context.Context, input setting.CreateInput) (*domain.Setting, error)
	UpdateFunc func(ctx context.Context, id uuid.UUID, input setting.UpdateInput) (*domain.Setting, error)
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *settingServiceMock) List(ctx context.Context) ([]domain.Setting, error) {
	if m.ListFunc == nil {
		panic("settingServiceMock.ListFunc: method is nil but settingService.List was just called")
	}
	return m.ListFunc(ctx)
}

func (m *settingServiceMock) Create(ctx context.Context, input setting.CreateInput) (*domain.Setting, error) {
	if m.CreateFunc == nil {
		panic("settingServiceMock.CreateFunc: method is nil but settingService.Create was just called")
	}
	return m.CreateFunc(ctx, input)
}

func (m *settingServiceMock) Update(ctx context.Context, id uuid.UUID, input setting.UpdateInput) (*domain.Setting, error) {
	if m.UpdateFunc == nil {
		panic("settingServiceMock.UpdateFunc: method is nil but settingService.Update was just called")
	}
	return m.UpdateFunc(ctx, id, input)
}

func (m *settingServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("settingServiceMock.DeleteFunc: method is nil but settingService.Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}
