package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
)

var (
	_ userRepo   = &userRepoMock{}
	_ jwtManager = &jwtManagerMock{}
)

type userRepoMock struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc  func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc      func(ctx context.Context, u domain.User) (*domain.User, error)
	CountAdminsFunc func(ctx context.Context) (int, error)

	lock    sync.RWMutex
	created []domain.User
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

func (mock *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if mock.GetByEmailFunc == nil {
		panic("userRepoMock.GetByEmailFunc: method is nil but userRepo.GetByEmail was just called")
	}
	return mock.GetByEmailFunc(ctx, email)
}

func (mock *userRepoMock) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	mock.lock.Lock()
	mock.created = append(mock.created, u)
	mock.lock.Unlock()
	if mock.CreateFunc == nil {
		return &u, nil
	}
	return mock.CreateFunc(ctx, u)
}

func (mock *userRepoMock) CreateCalls() []domain.User {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.created
}

func (mock *userRepoMock) CountAdmins(ctx context.Context) (int, error) {
	if mock.CountAdminsFunc == nil {
		panic("userRepoMock.CountAdminsFunc: method is nil but userRepo.CountAdmins was just called")
	}
	return mock.CountAdminsFunc(ctx)
}

type jwtManagerMock struct {
	GenerateAccessTokenFunc func(userID uuid.UUID, role string) (string, time.Time, error)
	ValidateAccessTokenFunc func(token string) (uuid.UUID, string, error)

	calls struct {
		GenerateAccessToken []struct {
			UserID uuid.UUID
			Role   string
		}
	}
	lockGenerateAccessToken sync.RWMutex
}

func (mock *jwtManagerMock) GenerateAccessToken(userID uuid.UUID, role string) (string, time.Time, error) {
	if mock.GenerateAccessTokenFunc == nil {
		panic("jwtManagerMock.GenerateAccessTokenFunc: method is nil but jwtManager.GenerateAccessToken was just called")
	}
	mock.lockGenerateAccessToken.Lock()
	mock.calls.GenerateAccessToken = append(mock.calls.GenerateAccessToken, struct {
		UserID uuid.UUID
		Role   string
	}{UserID: userID, Role: role})
	mock.lockGenerateAccessToken.Unlock()
	return mock.GenerateAccessTokenFunc(userID, role)
}

func (mock *jwtManagerMock) GenerateAccessTokenCalls() []struct {
	UserID uuid.UUID
	Role   string
} {
	mock.lockGenerateAccessToken.RLock()
	defer mock.lockGenerateAccessToken.RUnlock()
	return mock.calls.GenerateAccessToken
}

func (mock *jwtManagerMock) ValidateAccessToken(token string) (uuid.UUID, string, error) {
	if mock.ValidateAccessTokenFunc == nil {
		panic("jwtManagerMock.ValidateAccessTokenFunc: method is nil but jwtManager.ValidateAccessToken was just called")
	}
	return mock.ValidateAccessTokenFunc(token)
}
