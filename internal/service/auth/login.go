package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/auth"
	"github.com/heartmarshall/donorbase/internal/domain"
	"github.com/heartmarshall/donorbase/pkg/ctxutil"
)

// Login exchanges operator credentials for an access token. An unknown
// email and a wrong password both yield ErrUnauthorized so the response does
// not reveal which operators exist.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	input.Email = domain.NormalizeText(input.Email)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.log.WarnContext(ctx, "login for unknown operator")
		return nil, domain.ErrUnauthorized
	case err != nil:
		return nil, fmt.Errorf("auth.Login: %w", err)
	}

	if err := auth.ComparePassword(user.PasswordHash, input.Password); err != nil {
		s.log.WarnContext(ctx, "login with wrong password", slog.String("user_id", user.ID.String()))
		return nil, domain.ErrUnauthorized
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(user.ID, user.Role.String())
	if err != nil {
		return nil, fmt.Errorf("auth.Login generate access token: %w", err)
	}

	s.log.InfoContext(ctx, "operator logged in", slog.String("user_id", user.ID.String()), slog.String("role", user.Role.String()))

	return &AuthResult{AccessToken: token, ExpiresAt: expiresAt, User: user}, nil
}

// ValidateToken verifies an access token and returns the user id and role.
func (s *Service) ValidateToken(_ context.Context, token string) (uuid.UUID, string, error) {
	userID, role, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("auth.ValidateToken: %w", domain.ErrUnauthorized)
	}
	return userID, role, nil
}

// Me returns the user behind the request context.
func (s *Service) Me(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Me: %w", err)
	}
	return user, nil
}
