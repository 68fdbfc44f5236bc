// Package finding implements the finding repository using PostgreSQL.
package finding

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/donorbase/internal/adapter/postgres"
	"github.com/heartmarshall/donorbase/internal/domain"
)

const entity = "finding"

var columns = []string{"id", "donor_id", "category", "summary", "severity", "citations", "created_at"}

// Repo provides finding persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new finding repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID        uuid.UUID `db:"id"`
	DonorID   uuid.UUID `db:"donor_id"`
	Category  string    `db:"category"`
	Summary   string    `db:"summary"`
	Severity  string    `db:"severity"`
	Citations []byte    `db:"citations"`
	CreatedAt time.Time `db:"created_at"`
}

func (r row) toDomain() (domain.Finding, error) {
	f := domain.Finding{
		ID:        r.ID,
		DonorID:   r.DonorID,
		Category:  r.Category,
		Summary:   r.Summary,
		Severity:  domain.Severity(r.Severity),
		CreatedAt: r.CreatedAt,
	}
	if len(r.Citations) > 0 {
		if err := json.Unmarshal(r.Citations, &f.Citations); err != nil {
			return domain.Finding{}, fmt.Errorf("finding %s unmarshal citations: %w", r.ID, err)
		}
	}
	return f, nil
}

func toDomainList(rows []row) ([]domain.Finding, error) {
	out := make([]domain.Finding, 0, len(rows))
	for _, rw := range rows {
		f, err := rw.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// ListByDonor returns the findings of one donor, newest first.
func (r *Repo) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]domain.Finding, error) {
	return r.list(ctx, squirrel.Eq{"donor_id": donorID})
}

// List returns all findings, optionally restricted to one severity.
func (r *Repo) List(ctx context.Context, severity *domain.Severity) ([]domain.Finding, error) {
	if severity == nil {
		return r.list(ctx, nil)
	}
	return r.list(ctx, squirrel.Eq{"severity": string(*severity)})
}

func (r *Repo) list(ctx context.Context, where squirrel.Sqlizer) ([]domain.Finding, error) {
	q := postgres.Psql.
		Select(columns...).
		From("findings").
		OrderBy("created_at DESC", "id DESC")
	if where != nil {
		q = q.Where(where)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("finding build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("finding list: %w", err)
	}
	return toDomainList(rows)
}

// Create inserts a finding.
func (r *Repo) Create(ctx context.Context, f domain.Finding) (*domain.Finding, error) {
	citations := f.Citations
	if citations == nil {
		citations = []domain.Citation{}
	}
	citationsJSON, err := json.Marshal(citations)
	if err != nil {
		return nil, fmt.Errorf("finding marshal citations: %w", err)
	}

	query, args, err := postgres.Psql.
		Insert("findings").
		Columns(columns...).
		Values(f.ID, f.DonorID, f.Category, f.Summary, string(f.Severity), citationsJSON, f.CreatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("finding build query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, f.ID)
	}

	out, err := dst.toDomain()
	if err != nil {
		return nil, err
	}
	return &out, nil
}
