// Package document manages donor source documents: metadata in PostgreSQL,
// contents in the blob store.
package document

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/adapter/blob"
	"github.com/heartmarshall/donorbase/internal/domain"
)

// MaxCountBatch bounds the number of donors in one counts request.
const MaxCountBatch = 100

type documentRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]domain.Document, error)
	CountByDonors(ctx context.Context, donorIDs []uuid.UUID) ([]domain.DocumentCount, error)
	Create(ctx context.Context, d domain.Document) (*domain.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type donorRepo interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type blobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, blob.Object, error)
	Delete(ctx context.Context, key string) error
}

type eventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// Service implements document operations.
type Service struct {
	log            *slog.Logger
	documents      documentRepo
	donors         donorRepo
	blobs          blobStore
	events         eventPublisher
	maxUploadBytes int64
	now            func() time.Time
}

// NewService creates a new document service instance.
func NewService(
	logger *slog.Logger,
	documents documentRepo,
	donors donorRepo,
	blobs blobStore,
	events eventPublisher,
	maxUploadBytes int64,
) *Service {
	return &Service{
		log:            logger.With("service", "document"),
		documents:      documents,
		donors:         donors,
		blobs:          blobs,
		events:         events,
		maxUploadBytes: maxUploadBytes,
		now:            func() time.Time { return time.Now().UTC() },
	}
}
