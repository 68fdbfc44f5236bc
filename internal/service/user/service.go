// Package user implements administrator-only management of operator accounts.
package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch, now time.Time) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountAdmins(ctx context.Context) (int, error)
}

// txManager defines the transaction manager interface needed by user service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements user administration.
type Service struct {
	log   *slog.Logger
	users userRepo
	tx    txManager
	now   func() time.Time
}

// NewService creates a new user service instance.
func NewService(logger *slog.Logger, users userRepo, tx txManager) *Service {
	return &Service{
		log:   logger.With("service", "user"),
		users: users,
		tx:    tx,
		now:   func() time.Time { return time.Now().UTC() },
	}
}
