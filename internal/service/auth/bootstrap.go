package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/auth"
	"github.com/heartmarshall/donorbase/internal/domain"
)

// BootstrapAdminInput describes the administrator created on first start.
type BootstrapAdminInput struct {
	Email    string
	Password string
	Name     string
}

// BootstrapAdmin creates the initial administrator when no admin exists yet.
// It is a no-op once any administrator is present.
func (s *Service) BootstrapAdmin(ctx context.Context, input BootstrapAdminInput) error {
	n, err := s.users.CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("auth.BootstrapAdmin: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("auth.BootstrapAdmin: %w", err)
	}

	now := s.now()
	admin := domain.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Name:         strings.TrimSpace(input.Name),
		Role:         domain.UserRoleAdmin,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, admin)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			s.log.WarnContext(ctx, "bootstrap admin email belongs to a non-admin user",
				slog.String("email", admin.Email))
			return nil
		}
		return fmt.Errorf("auth.BootstrapAdmin: %w", err)
	}

	s.log.InfoContext(ctx, "bootstrap admin created", slog.String("user_id", created.ID.String()))
	return nil
}
