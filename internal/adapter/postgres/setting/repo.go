// Package setting implements the application settings repository.
package setting

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

const entity = "setting"

var columns = []string{"id", "key", "value", "description", "updated_at"}

// Repo provides settings persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new settings repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID          uuid.UUID `db:"id"`
	Key         string    `db:"key"`
	Value       string    `db:"value"`
	Description *string   `db:"description"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// List returns all settings ordered by key.
func (r *Repo) List(ctx context.Context) ([]domain.Setting, error) {
	query, args, err := postgres.Psql.Select(columns...).From("settings").OrderBy("key").ToSql()
	if err != nil {
		return nil, fmt.Errorf("setting build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("setting list: %w", err)
	}

	out := make([]domain.Setting, len(rows))
	for i := range rows {
		out[i] = domain.Setting(rows[i])
	}
	return out, nil
}

// Create inserts a setting.
func (r *Repo) Create(ctx context.Context, s domain.Setting) (*domain.Setting, error) {
	query, args, err := postgres.Psql.
		Insert("settings").
		Columns(columns...).
		Values(s.ID, s.Key, s.Value, s.Description, s.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("setting build query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, s.ID)
	}

	out := domain.Setting(dst)
	return &out, nil
}

// Update applies the non-nil fields of the patch.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch domain.SettingPatch, now time.Time) (*domain.Setting, error) {
	set := map[string]any{"updated_at": now}
	if patch.Value != nil {
		set["value"] = *patch.Value
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}

	query, args, err := postgres.Psql.
		Update("settings").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("setting build query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	out := domain.Setting(dst)
	return &out, nil
}

// Delete removes a setting.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, `DELETE FROM settings WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}
