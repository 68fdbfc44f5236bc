package document

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/adapter/blob"
	"github.com/heartmarshall/donorbase/internal/domain"
)

// ListByDonor returns the documents of an existing donor.
func (s *Service) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]domain.Document, error) {
	if err := s.ensureDonor(ctx, donorID); err != nil {
		return nil, fmt.Errorf("document.ListByDonor: %w", err)
	}

	docs, err := s.documents.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("document.ListByDonor: %w", err)
	}
	return docs, nil
}

// Counts returns one count per requested donor, in request order. Donors
// without documents, including unknown ids, get zero.
func (s *Service) Counts(ctx context.Context, donorIDs []uuid.UUID) ([]domain.DocumentCount, error) {
	if len(donorIDs) > MaxCountBatch {
		return nil, domain.NewValidationError("donor_id", fmt.Sprintf("at most %d ids per request", MaxCountBatch))
	}

	ids := dedupe(donorIDs)
	counts, err := s.documents.CountByDonors(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("document.Counts: %w", err)
	}

	byDonor := make(map[uuid.UUID]int, len(counts))
	for _, c := range counts {
		byDonor[c.DonorID] = c.Count
	}

	out := make([]domain.DocumentCount, len(ids))
	for i, id := range ids {
		out[i] = domain.DocumentCount{DonorID: id, Count: byDonor[id]}
	}
	return out, nil
}

// Upload stores the content and then the metadata. If the metadata insert
// fails the stored content is removed again.
func (s *Service) Upload(ctx context.Context, input UploadInput) (*domain.Document, error) {
	if err := input.Validate(s.maxUploadBytes); err != nil {
		return nil, err
	}
	if err := s.ensureDonor(ctx, input.DonorID); err != nil {
		return nil, fmt.Errorf("document.Upload: %w", err)
	}

	doc := domain.Document{
		ID:          uuid.New(),
		DonorID:     input.DonorID,
		FileName:    cleanFileName(input.FileName),
		ContentType: contentTypeOrDefault(input.ContentType),
		Size:        input.Size,
		PageCount:   input.PageCount,
		CreatedAt:   s.now(),
	}
	doc.ObjectKey = blob.ObjectKey(doc.DonorID, doc.ID, doc.FileName)

	if err := s.blobs.Put(ctx, doc.ObjectKey, input.Body, doc.Size, doc.ContentType); err != nil {
		return nil, fmt.Errorf("document.Upload put content: %w", err)
	}

	created, err := s.documents.Create(ctx, doc)
	if err != nil {
		s.removeContent(ctx, doc.ObjectKey)
		return nil, fmt.Errorf("document.Upload: %w", err)
	}

	s.log.InfoContext(ctx, "document uploaded",
		slog.String("document_id", created.ID.String()),
		slog.String("donor_id", created.DonorID.String()),
		slog.Int64("size", created.Size),
	)

	ev := domain.NewEvent(domain.EventDocumentUploaded, created.ID, map[string]any{
		"donor_id":     created.DonorID.String(),
		"file_name":    created.FileName,
		"content_type": created.ContentType,
		"object_key":   created.ObjectKey,
	})
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.WarnContext(ctx, "publish event failed",
			slog.String("type", string(ev.Type)),
			slog.String("error", err.Error()),
		)
	}

	return created, nil
}

// Open returns the metadata and a reader over the stored content.
// The caller closes the reader.
func (s *Service) Open(ctx context.Context, id uuid.UUID) (*domain.Document, io.ReadCloser, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("document.Open: %w", err)
	}

	body, _, err := s.blobs.Get(ctx, doc.ObjectKey)
	if err != nil {
		return nil, nil, fmt.Errorf("document.Open: %w", err)
	}
	return doc, body, nil
}

// Delete removes the metadata and then the content.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("document.Delete: %w", err)
	}

	if err := s.documents.Delete(ctx, id); err != nil {
		return fmt.Errorf("document.Delete: %w", err)
	}
	s.removeContent(ctx, doc.ObjectKey)

	s.log.InfoContext(ctx, "document deleted", slog.String("document_id", id.String()))
	return nil
}

func (s *Service) ensureDonor(ctx context.Context, donorID uuid.UUID) error {
	ok, err := s.donors.Exists(ctx, donorID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("donor %s: %w", donorID, domain.ErrNotFound)
	}
	return nil
}

func (s *Service) removeContent(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.log.WarnContext(ctx, "delete document content failed",
			slog.String("object_key", key),
			slog.String("error", err.Error()),
		)
	}
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
