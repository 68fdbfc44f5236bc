// Package auth implements password login, access-token verification and the
// initial administrator bootstrap.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
)

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	CountAdmins(ctx context.Context) (int, error)
}

// jwtManager defines the JWT token management interface needed by auth service.
type jwtManager interface {
	GenerateAccessToken(userID uuid.UUID, role string) (string, time.Time, error)
	ValidateAccessToken(token string) (uuid.UUID, string, error)
}

// Service implements auth operations.
type Service struct {
	log   *slog.Logger
	users userRepo
	jwt   jwtManager
	now   func() time.Time
}

// NewService creates a new auth service instance.
func NewService(logger *slog.Logger, users userRepo, jwt jwtManager) *Service {
	return &Service{
		log:   logger.With("service", "auth"),
		users: users,
		jwt:   jwt,
		now:   func() time.Time { return time.Now().UTC() },
	}
}
