// Package donor implements the donor repository using PostgreSQL.
package donor

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

const entity = "donor"

var columns = []string{
	"id", "unique_donor_id", "name", "gender", "age", "date_of_birth",
	"ethnicity", "is_priority", "notes", "created_at", "updated_at",
}

// Repo provides donor persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new donor repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID            uuid.UUID  `db:"id"`
	UniqueDonorID string     `db:"unique_donor_id"`
	Name          string     `db:"name"`
	Gender        string     `db:"gender"`
	Age           *int       `db:"age"`
	DateOfBirth   *time.Time `db:"date_of_birth"`
	Ethnicity     *string    `db:"ethnicity"`
	IsPriority    bool       `db:"is_priority"`
	Notes         *string    `db:"notes"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

func (r row) toDomain() domain.Donor {
	return domain.Donor{
		ID:            r.ID,
		UniqueDonorID: r.UniqueDonorID,
		Name:          r.Name,
		Gender:        domain.Gender(r.Gender),
		Age:           r.Age,
		DateOfBirth:   r.DateOfBirth,
		Ethnicity:     r.Ethnicity,
		IsPriority:    r.IsPriority,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a donor by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Donor, error) {
	query, args, err := postgres.Psql.
		Select(columns...).
		From("donors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("donor build query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	d := dst.toDomain()
	return &d, nil
}

// List returns donors matching the filter, newest first.
// The filter is expected to be normalized by the caller.
func (r *Repo) List(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error) {
	q := postgres.Psql.
		Select(columns...).
		From("donors").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	if filter.Search != nil {
		pattern := "%" + escapeLike(*filter.Search) + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"unique_donor_id": pattern},
		})
	}
	if filter.Gender != nil {
		q = q.Where(squirrel.Eq{"gender": string(*filter.Gender)})
	}
	if filter.Priority != nil {
		q = q.Where(squirrel.Eq{"is_priority": *filter.Priority})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("donor build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("donor list: %w", err)
	}

	out := make([]domain.Donor, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a donor and returns the persisted row.
func (r *Repo) Create(ctx context.Context, d domain.Donor) (*domain.Donor, error) {
	query, args, err := postgres.Psql.
		Insert("donors").
		Columns(columns...).
		Values(d.ID, d.UniqueDonorID, d.Name, string(d.Gender), d.Age, d.DateOfBirth,
			d.Ethnicity, d.IsPriority, d.Notes, d.CreatedAt, d.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("donor build query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, d.ID)
	}

	out := dst.toDomain()
	return &out, nil
}

// Update overwrites every mutable column of the donor.
func (r *Repo) Update(ctx context.Context, d domain.Donor) (*domain.Donor, error) {
	query, args, err := postgres.Psql.
		Update("donors").
		SetMap(map[string]any{
			"unique_donor_id": d.UniqueDonorID,
			"name":            d.Name,
			"gender":          string(d.Gender),
			"age":             d.Age,
			"date_of_birth":   d.DateOfBirth,
			"ethnicity":       d.Ethnicity,
			"is_priority":     d.IsPriority,
			"notes":           d.Notes,
			"updated_at":      d.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": d.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("donor build query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, d.ID)
	}

	out := dst.toDomain()
	return &out, nil
}

// Delete removes a donor. Documents and findings cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Psql.
		Delete("donors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("donor build query: %w", err)
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

// Exists reports whether a donor with the given id exists.
func (r *Repo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM donors WHERE id = $1)`, id).
		Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, entity, id)
	}
	return exists, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
