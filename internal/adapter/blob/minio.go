package blob

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/heartmarshall/donorbase/internal/config"
	"github.com/heartmarshall/donorbase/internal/domain"
)

// MinIOStore implements Store on top of minio-go.
type MinIOStore struct {
	client *minio.Client
	bucket string
	log    *slog.Logger
}

// NewMinIO creates a MinIO-backed store. A missing bucket is created; failure
// to reach the endpoint at startup is logged and not fatal.
func NewMinIO(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	s := &MinIOStore{
		client: client,
		bucket: cfg.Bucket,
		log:    logger.With("component", "blob", "driver", config.StorageDriverMinIO),
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	switch {
	case err != nil:
		s.log.Warn("bucket existence check failed", slog.String("bucket", cfg.Bucket), slog.String("error", err.Error()))
	case !exists:
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		s.log.Info("bucket created", slog.String("bucket", cfg.Bucket))
	}

	s.log.Info("minio storage initialized", slog.String("endpoint", cfg.Endpoint), slog.String("bucket", cfg.Bucket))
	return s, nil
}

func (s *MinIOStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("blob put %s: %w", key, err)
	}
	return nil
}

func (s *MinIOStore) Get(ctx context.Context, key string) (io.ReadCloser, Object, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, Object{}, s.mapError(key, err)
	}

	// GetObject is lazy; Stat surfaces a missing key.
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, Object{}, s.mapError(key, err)
	}

	return obj, Object{Key: key, ContentType: info.ContentType, Size: info.Size}, nil
}

func (s *MinIOStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return s.mapError(key, err)
	}
	return nil
}

func (s *MinIOStore) Ping(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("minio health check: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist", s.bucket)
	}
	return nil
}

func (s *MinIOStore) mapError(key string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("blob %s: %w", key, domain.ErrNotFound)
	}
	return fmt.Errorf("blob %s: %w", key, err)
}
