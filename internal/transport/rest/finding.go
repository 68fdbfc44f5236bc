package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
	"github.com/heartmarshall/donorbase/internal/service/finding"
	"github.com/heartmarshall/donorbase/pkg/api"
)

type findingService interface {
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]domain.Finding, error)
	List(ctx context.Context, severity *domain.Severity) ([]domain.Finding, error)
	Create(ctx context.Context, donorID uuid.UUID, input finding.CreateInput) (*domain.Finding, error)
}

// FindingHandler serves analysis findings.
type FindingHandler struct {
	svc findingService
	log *slog.Logger
}

// NewFindingHandler creates a FindingHandler.
func NewFindingHandler(svc findingService, logger *slog.Logger) *FindingHandler {
	return &FindingHandler{svc: svc, log: logger.With("handler", "finding")}
}

// List handles GET /findings?severity=.
func (h *FindingHandler) List(w http.ResponseWriter, r *http.Request) {
	var severity *domain.Severity
	if s := r.URL.Query().Get("severity"); s != "" {
		sev := domain.Severity(s)
		severity = &sev
	}

	findings, err := h.svc.List(r.Context(), severity)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAPIFindings(findings))
}

// ListByDonor handles GET /donors/{id}/findings.
func (h *FindingHandler) ListByDonor(w http.ResponseWriter, r *http.Request) {
	donorID, ok := pathID(w, r)
	if !ok {
		return
	}

	findings, err := h.svc.ListByDonor(r.Context(), donorID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAPIFindings(findings))
}

// Create handles POST /donors/{id}/findings.
func (h *FindingHandler) Create(w http.ResponseWriter, r *http.Request) {
	donorID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req api.FindingInput
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := toCreateFindingInput(req)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	f, err := h.svc.Create(r.Context(), donorID, input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAPIFinding(f))
}
