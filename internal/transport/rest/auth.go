package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/donorbase/internal/domain"
	"github.com/heartmarshall/donorbase/internal/service/auth"
	"github.com/heartmarshall/donorbase/pkg/api"
)

// authService defines the minimal interface needed by AuthHandler.
type authService interface {
	Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	Me(ctx context.Context) (*domain.User, error)
}

// AuthHandler serves auth REST endpoints.
type AuthHandler struct {
	svc authService
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: logger.With("handler", "auth")}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Login(r.Context(), auth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.LoginResponse{
		AccessToken: result.AccessToken,
		ExpiresAt:   result.ExpiresAt,
		User:        toAPIUser(result.User),
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Me(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAPIUser(user))
}
