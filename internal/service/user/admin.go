package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/auth"
	"github.com/heartmarshall/donorbase/internal/domain"
	"github.com/heartmarshall/donorbase/pkg/ctxutil"
)

// List returns all users (admin only).
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("user.List: %w", err)
	}
	return users, nil
}

// Create adds a new user account (admin only).
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.User, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("user.Create hash password: %w", err)
	}

	now := s.now()
	created, err := s.users.Create(ctx, domain.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Name:         strings.TrimSpace(input.Name),
		Role:         input.Role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.NewValidationError("email", "is already in use")
		}
		return nil, fmt.Errorf("user.Create: %w", err)
	}

	s.log.InfoContext(ctx, "user created",
		slog.String("user_id", created.ID.String()),
		slog.String("role", created.Role.String()),
	)
	return created, nil
}

// Update applies a partial update to a user (admin only).
// An admin cannot demote themselves and the last admin cannot be demoted.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.User, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	demoting := input.Role != nil && !input.Role.IsAdmin()
	if demoting && callerID == id {
		return nil, domain.NewValidationError("role", "cannot demote yourself")
	}

	var patch domain.UserPatch
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		patch.Name = &name
	}
	patch.Role = input.Role
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("user.Update hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	if input.IsEmpty() {
		u, err := s.users.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("user.Update: %w", err)
		}
		return u, nil
	}

	var updated *domain.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.users.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if demoting && current.Role.IsAdmin() {
			if err := s.ensureAnotherAdmin(txCtx); err != nil {
				return err
			}
		}

		updated, err = s.users.Update(txCtx, id, patch, s.now())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("user.Update: %w", err)
	}

	s.log.InfoContext(ctx, "user updated", slog.String("user_id", id.String()))
	return updated, nil
}

// Delete removes a user account (admin only). Admins cannot delete themselves.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}

	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if callerID == id {
		return domain.NewValidationError("id", "cannot delete yourself")
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.users.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if current.Role.IsAdmin() {
			if err := s.ensureAnotherAdmin(txCtx); err != nil {
				return err
			}
		}
		return s.users.Delete(txCtx, id)
	})
	if err != nil {
		return fmt.Errorf("user.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "user deleted", slog.String("user_id", id.String()))
	return nil
}

// ensureAnotherAdmin fails when removing admin rights would leave no administrator.
func (s *Service) ensureAnotherAdmin(ctx context.Context) error {
	n, err := s.users.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if n <= 1 {
		return domain.NewValidationError("role", "at least one admin is required")
	}
	return nil
}
