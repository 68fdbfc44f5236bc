package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/donorbase/internal/domain"
	"github.com/heartmarshall/donorbase/internal/service/auth"
	"github.com/heartmarshall/donorbase/internal/transport/middleware"
	"github.com/heartmarshall/donorbase/pkg/api"
)

//go:generate moq -out services_mock_test.go -pkg rest . authService donorService documentService findingService userService settingService

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

var (
	testAdminID = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	testUserID  = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
)

// staticTokens accepts "admin-token" and "user-token".
type staticTokens struct{}

func (staticTokens) ValidateToken(_ context.Context, token string) (uuid.UUID, string, error) {
	switch token {
	case "admin-token":
		return testAdminID, "admin", nil
	case "user-token":
		return testUserID, "user", nil
	}
	return uuid.Nil, "", domain.ErrUnauthorized
}

type testServices struct {
	auth     *authServiceMock
	donor    *donorServiceMock
	document *documentServiceMock
	finding  *findingServiceMock
	user     *userServiceMock
	setting  *settingServiceMock
}

func newTestServices() *testServices {
	return &testServices{
		auth:     &authServiceMock{},
		donor:    &donorServiceMock{},
		document: &documentServiceMock{},
		finding:  &findingServiceMock{},
		user:     &userServiceMock{},
		setting:  &settingServiceMock{},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *testServices) router() http.Handler {
	log := testLogger()
	return NewRouter(Handlers{
		Health:   NewHealthHandler(stubPinger{}, "test"),
		Auth:     NewAuthHandler(s.auth, log),
		Donor:    NewDonorHandler(s.donor, log),
		Document: NewDocumentHandler(s.document, 1<<20, log),
		Finding:  NewFindingHandler(s.finding, log),
		User:     NewUserHandler(s.user, log),
		Setting:  NewSettingHandler(s.setting, log),
	}, RouterConfig{
		Middleware: []middleware.Middleware{middleware.Auth(staticTokens{})},
	})
}

func do(t *testing.T, h http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

// ---------------------------------------------------------------------------
// Routing and access control
// ---------------------------------------------------------------------------

func TestRouter_RequiresToken(t *testing.T) {
	t.Parallel()

	h := newTestServices().router()

	rec := do(t, h, http.MethodGet, "/donors", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/donors", "forged", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_PublicRoutes(t *testing.T) {
	t.Parallel()

	h := newTestServices().router()

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/live", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/ready", "", nil).Code)
}

func TestRouter_UsersAdminOnly(t *testing.T) {
	t.Parallel()

	svcs := newTestServices()
	svcs.user.ListFunc = func(context.Context) ([]domain.User, error) {
		return []domain.User{{ID: testAdminID, Email: "admin@example.com", Role: domain.UserRoleAdmin}}, nil
	}
	h := svcs.router()

	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodGet, "/users", "user-token", nil).Code)

	rec := do(t, h, http.MethodGet, "/users", "admin-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decodeBody[[]api.User](t, rec)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Role)
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestServices().router(), http.MethodGet, "/nope", "user-token", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	svcs := newTestServices()
	svcs.auth.LoginFunc = func(_ context.Context, in auth.LoginInput) (*auth.AuthResult, error) {
		if in.Password != "secret-pass" {
			return nil, domain.ErrUnauthorized
		}
		return &auth.AuthResult{AccessToken: "tok", User: &domain.User{ID: testUserID, Role: domain.UserRoleUser}}, nil
	}
	h := svcs.router()

	rec := do(t, h, http.MethodPost, "/auth/login", "", api.LoginRequest{Email: "a@b.c", Password: "secret-pass"})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[api.LoginResponse](t, rec)
	assert.Equal(t, "tok", resp.AccessToken)
	assert.Equal(t, testUserID.String(), resp.User.ID)

	rec = do(t, h, http.MethodPost, "/auth/login", "", api.LoginRequest{Email: "a@b.c", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidationError("name", "required"), http.StatusBadRequest},
		{"wrapped validation", errors.Join(errors.New("ctx"), domain.NewValidationError("x", "y")), http.StatusBadRequest},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"already exists", domain.ErrAlreadyExists, http.StatusConflict},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			handleError(testLogger(), rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			assert.Equal(t, tt.want, rec.Code)

			body := decodeBody[api.ErrorResponse](t, rec)
			assert.NotEmpty(t, body.Error)
			if tt.want == http.StatusInternalServerError {
				assert.Equal(t, "internal server error", body.Error)
			}
		})
	}
}
