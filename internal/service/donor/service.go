// Package donor implements donor record management: listing with filters,
// intake validation, partial updates and deletion with blob cleanup.
package donor

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/domain"
)

type donorRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Donor, error)
	List(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error)
	Create(ctx context.Context, d domain.Donor) (*domain.Donor, error)
	Update(ctx context.Context, d domain.Donor) (*domain.Donor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentRepo interface {
	ObjectKeysByDonor(ctx context.Context, donorID uuid.UUID) ([]string, error)
}

type blobStore interface {
	Delete(ctx context.Context, key string) error
}

type eventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements donor operations.
type Service struct {
	log       *slog.Logger
	donors    donorRepo
	documents documentRepo
	blobs     blobStore
	events    eventPublisher
	tx        txManager
	now       func() time.Time
}

// NewService creates a new donor service instance.
func NewService(
	logger *slog.Logger,
	donors donorRepo,
	documents documentRepo,
	blobs blobStore,
	events eventPublisher,
	tx txManager,
) *Service {
	return &Service{
		log:       logger.With("service", "donor"),
		donors:    donors,
		documents: documents,
		blobs:     blobs,
		events:    events,
		tx:        tx,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// publish sends an event after the change is committed. Failures are logged
// and never reach the caller.
func (s *Service) publish(ctx context.Context, t domain.EventType, d *domain.Donor) {
	ev := domain.NewEvent(t, d.ID, map[string]any{
		"unique_donor_id": d.UniqueDonorID,
		"is_priority":     d.IsPriority,
	})
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.WarnContext(ctx, "publish event failed",
			slog.String("type", string(t)),
			slog.String("donor_id", d.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}
