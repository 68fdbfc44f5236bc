// Package finding records and serves analysis findings for donors. Findings
// are produced by an external analyzer and stored as reported.
package finding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
)

type findingRepo interface {
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]domain.Finding, error)
	List(ctx context.Context, severity *domain.Severity) ([]domain.Finding, error)
	Create(ctx context.Context, f domain.Finding) (*domain.Finding, error)
}

type donorRepo interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type documentRepo interface {
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]domain.Document, error)
}

// Service implements finding operations.
type Service struct {
	log       *slog.Logger
	findings  findingRepo
	donors    donorRepo
	documents documentRepo
	now       func() time.Time
}

// NewService creates a new finding service instance.
func NewService(logger *slog.Logger, findings findingRepo, donors donorRepo, documents documentRepo) *Service {
	return &Service{
		log:       logger.With("service", "finding"),
		findings:  findings,
		donors:    donors,
		documents: documents,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateInput is a finding reported for a donor.
type CreateInput struct {
	Category  string
	Summary   string
	Severity  domain.Severity
	Citations []domain.Citation
}

// Validate checks the finding fields. Citation ownership is checked by Create.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Category) == "" {
		errs = append(errs, domain.FieldError{Field: "category", Message: "required"})
	}
	if strings.TrimSpace(i.Summary) == "" {
		errs = append(errs, domain.FieldError{Field: "summary", Message: "required"})
	}
	if !i.Severity.IsValid() {
		errs = append(errs, domain.FieldError{Field: "severity", Message: "must be one of info, warning, critical"})
	}
	for n, c := range i.Citations {
		if c.DocumentID == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("citations[%d].document_id", n), Message: "required"})
		}
		if c.Page < 1 {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("citations[%d].page", n), Message: "must be at least 1"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListByDonor returns the findings of an existing donor.
func (s *Service) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]domain.Finding, error) {
	if err := s.ensureDonor(ctx, donorID); err != nil {
		return nil, fmt.Errorf("finding.ListByDonor: %w", err)
	}

	out, err := s.findings.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, fmt.Errorf("finding.ListByDonor: %w", err)
	}
	return out, nil
}

// List returns findings across all donors, optionally by severity.
func (s *Service) List(ctx context.Context, severity *domain.Severity) ([]domain.Finding, error) {
	if severity != nil && !severity.IsValid() {
		return nil, domain.NewValidationError("severity", "must be one of info, warning, critical")
	}

	out, err := s.findings.List(ctx, severity)
	if err != nil {
		return nil, fmt.Errorf("finding.List: %w", err)
	}
	return out, nil
}

// Create records a finding. Every citation must point at a document of the
// same donor.
func (s *Service) Create(ctx context.Context, donorID uuid.UUID, input CreateInput) (*domain.Finding, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureDonor(ctx, donorID); err != nil {
		return nil, fmt.Errorf("finding.Create: %w", err)
	}

	if len(input.Citations) > 0 {
		docs, err := s.documents.ListByDonor(ctx, donorID)
		if err != nil {
			return nil, fmt.Errorf("finding.Create list documents: %w", err)
		}
		owned := make(map[uuid.UUID]struct{}, len(docs))
		for _, d := range docs {
			owned[d.ID] = struct{}{}
		}
		for n, c := range input.Citations {
			if _, ok := owned[c.DocumentID]; !ok {
				return nil, domain.NewValidationError(
					fmt.Sprintf("citations[%d].document_id", n), "not a document of this donor")
			}
		}
	}

	f := domain.Finding{
		ID:        uuid.New(),
		DonorID:   donorID,
		Category:  strings.TrimSpace(input.Category),
		Summary:   strings.TrimSpace(input.Summary),
		Severity:  input.Severity,
		Citations: input.Citations,
		CreatedAt: s.now(),
	}

	created, err := s.findings.Create(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("finding.Create: %w", err)
	}

	s.log.InfoContext(ctx, "finding recorded",
		slog.String("finding_id", created.ID.String()),
		slog.String("donor_id", donorID.String()),
		slog.String("severity", string(created.Severity)),
	)
	return created, nil
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
