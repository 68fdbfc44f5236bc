// Package user implements the user repository using PostgreSQL.
package user

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

const entity = "user"

var columns = []string{"id", "email", "name", "role", "password_hash", "created_at", "updated_at"}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	Role         string    `db:"role"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		Email:        r.Email,
		Name:         r.Name,
		Role:         domain.UserRole(r.Role),
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Sqlizer, id uuid.UUID) (*domain.User, error) {
	query, args, err := postgres.Psql.
		Select(columns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("user build query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	u := dst.toDomain()
	return &u, nil
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, id)
}

// GetByEmail returns a user by email (case-insensitive).
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"lower(email)": strings.ToLower(email)}, uuid.Nil)
}

// List returns all users ordered by creation time, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.User, error) {
	query, args, err := postgres.Psql.
		Select(columns...).
		From("users").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("user build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("user list: %w", err)
	}

	out := make([]domain.User, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

// CountAdmins returns the number of users with the admin role.
func (r *Repo) CountAdmins(ctx context.Context) (int, error) {
	var n int
	err := postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, string(domain.UserRoleAdmin)).
		Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("user count admins: %w", err)
	}
	return n, nil
}

// Create inserts a user.
func (r *Repo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	query, args, err := postgres.Psql.
		Insert("users").
		Columns(columns...).
		Values(u.ID, u.Email, u.Name, string(u.Role), u.PasswordHash, u.CreatedAt, u.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("user build query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, u.ID)
	}

	out := dst.toDomain()
	return &out, nil
}

// Update applies the non-nil fields of the patch.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch, now time.Time) (*domain.User, error) {
	set := map[string]any{"updated_at": now}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Role != nil {
		set["role"] = string(*patch.Role)
	}
	if patch.PasswordHash != nil {
		set["password_hash"] = *patch.PasswordHash
	}

	query, args, err := postgres.Psql.
		Update("users").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("user build query: %w", err)
	}

	var dst row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &dst, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	out := dst.toDomain()
	return &out, nil
}

// Delete removes a user.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}
