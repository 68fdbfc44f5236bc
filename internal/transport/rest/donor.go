package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
	"github.com/heartmarshall/donorbase/internal/service/donor"
	"github.com/heartmarshall/donorbase/pkg/api"
)

type donorService interface {
	List(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Donor, error)
	Create(ctx context.Context, input donor.CreateInput) (*domain.Donor, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.DonorPatch) (*domain.Donor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DonorHandler serves the donor collection.
type DonorHandler struct {
	svc donorService
	log *slog.Logger
}

// NewDonorHandler creates a DonorHandler.
func NewDonorHandler(svc donorService, logger *slog.Logger) *DonorHandler {
	return &DonorHandler{svc: svc, log: logger.With("handler", "donor")}
}

// List handles GET /donors?search=&gender=&priority=&limit=&offset=.
func (h *DonorHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseDonorFilter(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	donors, err := h.svc.List(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAPIDonors(donors))
}

// Get handles GET /donors/{id}.
func (h *DonorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAPIDonor(d))
}

// Create handles POST /donors.
func (h *DonorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req api.DonorInput
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := toCreateDonorInput(req)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	d, err := h.svc.Create(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAPIDonor(d))
}

// Update handles PATCH /donors/{id}.
func (h *DonorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req api.DonorPatch
	if !decodeJSON(w, r, &req) {
		return
	}

	patch, err := toDonorPatch(req)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	d, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAPIDonor(d))
}

// Delete handles DELETE /donors/{id}.
func (h *DonorHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func parseDonorFilter(r *http.Request) (domain.DonorFilter, error) {
	q := r.URL.Query()
	var (
		f    domain.DonorFilter
		errs []domain.FieldError
	)

	if s := q.Get("search"); s != "" {
		f.Search = &s
	}
	if g := q.Get("gender"); g != "" {
		gender := domain.Gender(g)
		if !gender.IsValid() {
			errs = append(errs, domain.FieldError{Field: "gender", Message: "must be one of male, female, other"})
		}
		f.Gender = &gender
	}
	if p := q.Get("priority"); p != "" {
		b, err := strconv.ParseBool(p)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "priority", Message: "must be a boolean"})
		}
		f.Priority = &b
	}
	f.Limit, errs = intParam(q.Get("limit"), "limit", errs)
	f.Offset, errs = intParam(q.Get("offset"), "offset", errs)

	if len(errs) > 0 {
		return f, domain.NewValidationErrors(errs)
	}
	return f, nil
}

func intParam(raw, field string, errs []domain.FieldError) (int, []domain.FieldError) {
	if raw == "" {
		return 0, errs
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, append(errs, domain.FieldError{Field: field, Message: "must be a non-negative integer"})
	}
	return n, errs
}
