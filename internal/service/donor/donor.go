package donor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
)

const msgUniqueDonorIDTaken = "is already in use"

// List returns donors matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error) {
	filter.Normalize()

	donors, err := s.donors.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("donor.List: %w", err)
	}
	return donors, nil
}

// Get returns a single donor.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Donor, error) {
	d, err := s.donors.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("donor.Get: %w", err)
	}
	return d, nil
}

// Create validates and stores a new donor.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Donor, error) {
	now := s.now()
	if err := input.Validate(now); err != nil {
		return nil, err
	}

	d := input.toDonor(now)
	d.ID = uuid.New()

	created, err := s.donors.Create(ctx, d)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.NewValidationError(domain.FieldUniqueDonorID, msgUniqueDonorIDTaken)
		}
		return nil, fmt.Errorf("donor.Create: %w", err)
	}

	s.log.InfoContext(ctx, "donor created",
		slog.String("donor_id", created.ID.String()),
		slog.String("unique_donor_id", created.UniqueDonorID),
	)
	s.publish(ctx, domain.EventDonorCreated, created)

	return created, nil
}

// Update applies a partial update. Only the fields present in the patch are
// validated and changed.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch domain.DonorPatch) (*domain.Donor, error) {
	now := s.now()
	if errs := domain.ValidateDonorPatch(patch, now); len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	if patch.IsEmpty() {
		return s.Get(ctx, id)
	}

	var updated *domain.Donor
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.donors.GetByID(ctx, id)
		if err != nil {
			return err
		}

		next := patch.Apply(*current)
		next.Ethnicity = trimOptional(next.Ethnicity)
		next.Notes = trimOptional(next.Notes)
		next.UpdatedAt = now

		updated, err = s.donors.Update(ctx, next)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.NewValidationError(domain.FieldUniqueDonorID, msgUniqueDonorIDTaken)
		}
		return nil, fmt.Errorf("donor.Update: %w", err)
	}

	s.log.InfoContext(ctx, "donor updated", slog.String("donor_id", id.String()))
	s.publish(ctx, domain.EventDonorUpdated, updated)

	return updated, nil
}

// Delete removes a donor with its documents and findings. Stored document
// contents are removed after the database commit; blob failures are logged.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	var (
		removed *domain.Donor
		keys    []string
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		d, err := s.donors.GetByID(ctx, id)
		if err != nil {
			return err
		}
		removed = d

		keys, err = s.documents.ObjectKeysByDonor(ctx, id)
		if err != nil {
			return err
		}
		return s.donors.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("donor.Delete: %w", err)
	}

	for _, key := range keys {
		if err := s.blobs.Delete(ctx, key); err != nil {
			s.log.WarnContext(ctx, "delete document content failed",
				slog.String("donor_id", id.String()),
				slog.String("object_key", key),
				slog.String("error", err.Error()),
			)
		}
	}

	s.log.InfoContext(ctx, "donor deleted",
		slog.String("donor_id", id.String()),
		slog.Int("documents", len(keys)),
	)
	s.publish(ctx, domain.EventDonorDeleted, removed)

	return nil
}
