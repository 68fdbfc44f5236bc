package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
	"github.com/heartmarshall/donorbase/internal/service/setting"
	"github.com/heartmarshall/donorbase/pkg/api"
)

type settingService interface {
	List(ctx context.Context) ([]domain.Setting, error)
	Create(ctx context.Context, input setting.CreateInput) (*domain.Setting, error)
	Update(ctx context.Context, id uuid.UUID, input setting.UpdateInput) (*domain.Setting, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SettingHandler serves the settings collection.
type SettingHandler struct {
	svc settingService
	log *slog.Logger
}

// NewSettingHandler creates a SettingHandler.
func NewSettingHandler(svc settingService, logger *slog.Logger) *SettingHandler {
	return &SettingHandler{svc: svc, log: logger.With("handler", "setting")}
}

// List handles GET /settings.
func (h *SettingHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]api.Setting, len(settings))
	for i := range settings {
		out[i] = toAPISetting(&settings[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /settings.
func (h *SettingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req api.SettingInput
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := h.svc.Create(r.Context(), setting.CreateInput{
		Key:         req.Key,
		Value:       req.Value,
		Description: req.Description,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAPISetting(s))
}

// Update handles PATCH /settings/{id}.
func (h *SettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req api.SettingPatch
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := h.svc.Update(r.Context(), id, setting.UpdateInput{Value: req.Value, Description: req.Description})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAPISetting(s))
}

// Delete handles DELETE /settings/{id}.
func (h *SettingHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
