package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
	"github.com/heartmarshall/donorbase/internal/service/document"
	"github.com/heartmarshall/donorbase/pkg/api"
)

// multipartMemory is the part of an upload kept in memory; the rest spills
// to temporary files.
const multipartMemory = 8 << 20

type documentService interface {
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]domain.Document, error)
	Counts(ctx context.Context, donorIDs []uuid.UUID) ([]domain.DocumentCount, error)
	Upload(ctx context.Context, input document.UploadInput) (*domain.Document, error)
	Open(ctx context.Context, id uuid.UUID) (*domain.Document, io.ReadCloser, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DocumentHandler serves donor documents and their content.
type DocumentHandler struct {
	svc            documentService
	log            *slog.Logger
	maxUploadBytes int64
}

// NewDocumentHandler creates a DocumentHandler.
func NewDocumentHandler(svc documentService, maxUploadBytes int64, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{svc: svc, log: logger.With("handler", "document"), maxUploadBytes: maxUploadBytes}
}

// ListByDonor handles GET /donors/{id}/documents.
func (h *DocumentHandler) ListByDonor(w http.ResponseWriter, r *http.Request) {
	donorID, ok := pathID(w, r)
	if !ok {
		return
	}

	docs, err := h.svc.ListByDonor(r.Context(), donorID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]api.Document, len(docs))
	for i := range docs {
		out[i] = toAPIDocument(&docs[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// Counts handles GET /documents/counts?donor_id=a&donor_id=b. Comma separated
// ids are accepted as well.
func (h *DocumentHandler) Counts(w http.ResponseWriter, r *http.Request) {
	var raw []string
	for _, v := range r.URL.Query()["donor_id"] {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				raw = append(raw, s)
			}
		}
	}

	ids, err := parseUUIDs("donor_id", raw)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	counts, err := h.svc.Counts(r.Context(), ids)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]api.DocumentCount, len(counts))
	for i, c := range counts {
		out[i] = api.DocumentCount{DonorID: c.DonorID.String(), Count: c.Count}
	}
	writeJSON(w, http.StatusOK, out)
}

// Upload handles POST /donors/{id}/documents as multipart/form-data with a
// "file" part and an optional "page_count" field.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	donorID, ok := pathID(w, r)
	if !ok {
		return
	}

	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartMemory)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handleError(h.log, w, r, domain.NewValidationError("file", "exceeds the upload size limit"))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(h.log, w, r, domain.NewValidationError("file", "required"))
		return
	}
	defer file.Close()

	pageCount := 0
	if pc := r.FormValue("page_count"); pc != "" {
		pageCount, err = strconv.Atoi(pc)
		if err != nil {
			handleError(h.log, w, r, domain.NewValidationError("page_count", "must be an integer"))
			return
		}
	}

	doc, err := h.svc.Upload(r.Context(), document.UploadInput{
		DonorID:     donorID,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		PageCount:   pageCount,
		Body:        file,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAPIDocument(doc))
}

// Content handles GET /documents/{id}/content by streaming the stored bytes.
func (h *DocumentHandler) Content(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	doc, body, err := h.svc.Open(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(doc.Size, 10))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": doc.FileName}))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		h.log.WarnContext(r.Context(), "stream document content",
			slog.String("document_id", id.String()),
			slog.String("error", err.Error()),
		)
	}
}

// Delete handles DELETE /documents/{id}.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
