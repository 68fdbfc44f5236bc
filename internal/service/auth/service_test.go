package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/donorbase/internal/auth"
	"github.com/heartmarshall/donorbase/internal/domain"
	"github.com/heartmarshall/donorbase/pkg/ctxutil"
)

func newTestService(users *userRepoMock, jwt *jwtManagerMock) *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), users, jwt)
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := auth.HashPassword(pw)
	require.NoError(t, err)
	return h
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestService_Login_Success(t *testing.T) {
	t.Parallel()

	user := &domain.User{ID: uuid.New(), Email: "ops@example.com", Role: domain.UserRoleAdmin, PasswordHash: hashed(t, "correct horse")}
	expires := time.Now().Add(time.Hour)

	users := &userRepoMock{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			assert.Equal(t, "ops@example.com", email)
			return user, nil
		},
	}
	jwt := &jwtManagerMock{
		GenerateAccessTokenFunc: func(userID uuid.UUID, role string) (string, time.Time, error) {
			return "token-123", expires, nil
		},
	}
	svc := newTestService(users, jwt)

	res, err := svc.Login(context.Background(), LoginInput{Email: "  Ops@Example.com ", Password: "correct horse"})
	require.NoError(t, err)

	assert.Equal(t, "token-123", res.AccessToken)
	assert.Equal(t, expires, res.ExpiresAt)
	assert.Equal(t, user, res.User)
	calls := jwt.GenerateAccessTokenCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "admin", calls[0].Role)
}

func TestService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), PasswordHash: hashed(t, "correct horse")}, nil
		},
	}
	jwt := &jwtManagerMock{}
	svc := newTestService(users, jwt)

	_, err := svc.Login(context.Background(), LoginInput{Email: "ops@example.com", Password: "battery staple"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, jwt.GenerateAccessTokenCalls())
}

func TestService_Login_UnknownEmail(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(users, &jwtManagerMock{})

	_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestService_Login_InvalidInput(t *testing.T) {
	t.Parallel()

	svc := newTestService(&userRepoMock{}, &jwtManagerMock{})

	_, err := svc.Login(context.Background(), LoginInput{Email: "not-an-email"})

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields(), "email")
	assert.Contains(t, ve.Fields(), "password")
}

// ---------------------------------------------------------------------------
// ValidateToken / Me
// ---------------------------------------------------------------------------

func TestService_ValidateToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	jwt := &jwtManagerMock{
		ValidateAccessTokenFunc: func(token string) (uuid.UUID, string, error) {
			if token == "good" {
				return userID, "user", nil
			}
			return uuid.Nil, "", errors.New("bad signature")
		},
	}
	svc := newTestService(&userRepoMock{}, jwt)

	id, role, err := svc.ValidateToken(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, userID, id)
	assert.Equal(t, "user", role)

	_, _, err = svc.ValidateToken(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestService_Me(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	users := &userRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id}, nil
		},
	}
	svc := newTestService(users, &jwtManagerMock{})

	_, err := svc.Me(context.Background())
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	got, err := svc.Me(ctxutil.WithUserID(context.Background(), userID))
	require.NoError(t, err)
	assert.Equal(t, userID, got.ID)
}

// ---------------------------------------------------------------------------
// BootstrapAdmin
// ---------------------------------------------------------------------------

func TestService_BootstrapAdmin(t *testing.T) {
	t.Parallel()

	t.Run("creates admin when none exists", func(t *testing.T) {
		users := &userRepoMock{CountAdminsFunc: func(context.Context) (int, error) { return 0, nil }}
		svc := newTestService(users, &jwtManagerMock{})

		err := svc.BootstrapAdmin(context.Background(), BootstrapAdminInput{
			Email: " Admin@Example.com ", Password: "s3cret-pass", Name: "Administrator",
		})
		require.NoError(t, err)

		created := users.CreateCalls()
		require.Len(t, created, 1)
		assert.Equal(t, "admin@example.com", created[0].Email)
		assert.Equal(t, domain.UserRoleAdmin, created[0].Role)
		assert.NoError(t, auth.ComparePassword(created[0].PasswordHash, "s3cret-pass"))
	})

	t.Run("no-op when an admin exists", func(t *testing.T) {
		users := &userRepoMock{CountAdminsFunc: func(context.Context) (int, error) { return 1, nil }}
		svc := newTestService(users, &jwtManagerMock{})

		require.NoError(t, svc.BootstrapAdmin(context.Background(), BootstrapAdminInput{Email: "a@b.c", Password: "x"}))
		assert.Empty(t, users.CreateCalls())
	})

	t.Run("email taken is tolerated", func(t *testing.T) {
		users := &userRepoMock{
			CountAdminsFunc: func(context.Context) (int, error) { return 0, nil },
			CreateFunc: func(context.Context, domain.User) (*domain.User, error) {
				return nil, domain.ErrAlreadyExists
			},
		}
		svc := newTestService(users, &jwtManagerMock{})

		assert.NoError(t, svc.BootstrapAdmin(context.Background(), BootstrapAdminInput{Email: "a@b.c", Password: "password1"}))
	})
}
