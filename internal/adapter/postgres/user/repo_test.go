package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/donorbase/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/donorbase/internal/domain"
)

func userRows(id uuid.UUID, role string) *pgxmock.Rows {
	now := time.Now().UTC()
	return pgxmock.NewRows(columns).AddRow(id, "ops@example.com", "Ops", role, "$2a$hash", now, now)
}

func TestRepo_GetByEmail(t *testing.T) {
	t.Run("lowercases the lookup", func(t *testing.T) {
		mock := testhelper.NewMockQuerier(t)
		id := uuid.New()

		mock.ExpectQuery(`SELECT .* FROM users WHERE lower\(email\) = \$1`).
			WithArgs("ops@example.com").
			WillReturnRows(userRows(id, "admin"))

		got, err := New(mock).GetByEmail(context.Background(), "Ops@Example.com")
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.True(t, got.Role.IsAdmin())
		testhelper.ExpectationsWereMet(t, mock)
	})

	t.Run("not found", func(t *testing.T) {
		mock := testhelper.NewMockQuerier(t)
		mock.ExpectQuery(`FROM users`).
			WithArgs("nobody@example.com").
			WillReturnError(pgx.ErrNoRows)

		_, err := New(mock).GetByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		testhelper.ExpectationsWereMet(t, mock)
	})
}

func TestRepo_Create_DuplicateEmail(t *testing.T) {
	mock := testhelper.NewMockQuerier(t)
	u := domain.User{ID: uuid.New(), Email: "ops@example.com", Role: domain.UserRoleUser}

	args := make([]any, len(columns))
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(args...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := New(mock).Create(context.Background(), u)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	testhelper.ExpectationsWereMet(t, mock)
}

func TestRepo_Update_OnlyPatchedColumns(t *testing.T) {
	mock := testhelper.NewMockQuerier(t)
	id := uuid.New()
	role := domain.UserRoleAdmin
	now := time.Now().UTC()

	mock.ExpectQuery(`UPDATE users SET role = \$1, updated_at = \$2 WHERE id = \$3 RETURNING`).
		WithArgs("admin", now, id.String()).
		WillReturnRows(userRows(id, "admin"))

	got, err := New(mock).Update(context.Background(), id, domain.UserPatch{Role: &role}, now)
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleAdmin, got.Role)
	testhelper.ExpectationsWereMet(t, mock)
}

func TestRepo_CountAdmins(t *testing.T) {
	mock := testhelper.NewMockQuerier(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE role = \$1`).
		WithArgs("admin").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	n, err := New(mock).CountAdmins(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	testhelper.ExpectationsWereMet(t, mock)
}
