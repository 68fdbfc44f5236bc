package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
	"github.com/heartmarshall/donorbase/internal/service/user"
	"github.com/heartmarshall/donorbase/pkg/api"
)

type userService interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, input user.CreateInput) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, input user.UpdateInput) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserHandler serves user administration endpoints.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "user")}
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]api.User, len(users))
	for i := range users {
		out[i] = toAPIUser(&users[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req api.UserInput
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.svc.Create(r.Context(), user.CreateInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     domain.UserRole(req.Role),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAPIUser(u))
}

// Update handles PATCH /users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req api.UserPatch
	if !decodeJSON(w, r, &req) {
		return
	}

	input := user.UpdateInput{Name: req.Name, Password: req.Password}
	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		input.Role = &role
	}

	u, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAPIUser(u))
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
