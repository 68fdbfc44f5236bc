// Package document implements the document metadata repository using PostgreSQL.
// File contents live in the blob store; only metadata is kept here.
package document

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/adapter/postgres"
	"github.com/heartmarshall/donorbase/internal/domain"
)

const entity = "document"

var columns = []string{
	"id", "donor_id", "file_name", "content_type", "size", "object_key", "page_count", "created_at",
}

// Repo provides document persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new document repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID          uuid.UUID `db:"id"`
	DonorID     uuid.UUID `db:"donor_id"`
	FileName    string    `db:"file_name"`
	ContentType string    `db:"content_type"`
	Size        int64     `db:"size"`
	ObjectKey   string    `db:"object_key"`
	PageCount   int       `db:"page_count"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r row) toDomain() domain.Document {
	return domain.Document(r)
}

func toDomainList(rows []row) []domain.Document {
	out := make([]domain.Document, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out
}

// GetByID returns document metadata by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	query, args, err := postgres.Psql.
		Select(columns...).
		From("documents").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("document build query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	d := dst.toDomain()
	return &d, nil
}

// ListByDonor returns the documents of one donor, newest first.
func (r *Repo) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]domain.Document, error) {
	query, args, err := postgres.Psql.
		Select(columns...).
		From("documents").
		Where(squirrel.Eq{"donor_id": donorID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("document build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, donorID)
	}
	return toDomainList(rows), nil
}

// CountByDonors returns document counts for the given donors. Donors without
// documents are absent from the result.
func (r *Repo) CountByDonors(ctx context.Context, donorIDs []uuid.UUID) ([]domain.DocumentCount, error) {
	if len(donorIDs) == 0 {
		return nil, nil
	}

	query, args, err := postgres.Psql.
		Select("donor_id", "COUNT(*) AS count").
		From("documents").
		Where("donor_id = ANY(?)", donorIDs).
		GroupBy("donor_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("document build query: %w", err)
	}

	var rows []struct {
		DonorID uuid.UUID `db:"donor_id"`
		Count   int       `db:"count"`
	}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("document count: %w", err)
	}

	out := make([]domain.DocumentCount, len(rows))
	for i, rw := range rows {
		out[i] = domain.DocumentCount{DonorID: rw.DonorID, Count: rw.Count}
	}
	return out, nil
}

// ObjectKeysByDonor returns the blob keys of every document of a donor.
func (r *Repo) ObjectKeysByDonor(ctx context.Context, donorID uuid.UUID) ([]string, error) {
	query, args, err := postgres.Psql.
		Select("object_key").
		From("documents").
		Where(squirrel.Eq{"donor_id": donorID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("document build query: %w", err)
	}

	var keys []string
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &keys, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, donorID)
	}
	return keys, nil
}

// Create inserts document metadata.
func (r *Repo) Create(ctx context.Context, d domain.Document) (*domain.Document, error) {
	query, args, err := postgres.Psql.
		Insert("documents").
		Columns(columns...).
		Values(d.ID, d.DonorID, d.FileName, d.ContentType, d.Size, d.ObjectKey, d.PageCount, d.CreatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("document build query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, d.ID)
	}

	out := dst.toDomain()
	return &out, nil
}

// Delete removes document metadata.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Psql.
		Delete("documents").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("document build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}
