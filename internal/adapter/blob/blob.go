// Package blob stores document contents in an S3-compatible object store.
// Two drivers are provided: MinIO (minio-go) and AWS S3 (aws-sdk-go-v2).
package blob

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/config"
)

// Object describes a stored blob.
type Object struct {
	Key         string
	ContentType string
	Size        int64
}

// Store is the object storage used for document contents.
// Missing objects are reported with an error wrapping domain.ErrNotFound.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, Object, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// New builds the store selected by cfg.Driver and makes sure the bucket exists.
func New(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (Store, error) {
	switch cfg.Driver {
	case config.StorageDriverMinIO:
		return NewMinIO(ctx, cfg, logger)
	case config.StorageDriverS3:
		return NewS3(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("blob: unknown storage driver %q", cfg.Driver)
	}
}

// ObjectKey returns the key under which a document's content is stored.
// The original extension is kept so downloads stay recognisable.
func ObjectKey(donorID, documentID uuid.UUID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("donors/%s/%s%s", donorID, documentID, ext)
}
