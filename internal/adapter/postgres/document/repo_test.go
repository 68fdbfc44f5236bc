package document

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/donorbase/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/donorbase/internal/domain"
)

func TestRepo_ListByDonor(t *testing.T) {
	mock := testhelper.NewMockQuerier(t)
	donorID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .* FROM documents WHERE donor_id = \$1 ORDER BY created_at DESC`).
		WithArgs(donorID.String()).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(uuid.New(), donorID, "intake.pdf", "application/pdf", int64(2048), "donors/x/intake.pdf", 3, now).
			AddRow(uuid.New(), donorID, "labs.pdf", "application/pdf", int64(1024), "donors/x/labs.pdf", 1, now))

	got, err := New(mock).ListByDonor(context.Background(), donorID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "intake.pdf", got[0].FileName)
	assert.Equal(t, int64(2048), got[0].Size)
	testhelper.ExpectationsWereMet(t, mock)
}

func TestRepo_CountByDonors(t *testing.T) {
	t.Run("empty input skips the query", func(t *testing.T) {
		mock := testhelper.NewMockQuerier(t)

		got, err := New(mock).CountByDonors(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, got)
		testhelper.ExpectationsWereMet(t, mock)
	})

	t.Run("grouped counts", func(t *testing.T) {
		mock := testhelper.NewMockQuerier(t)
		a, b := uuid.New(), uuid.New()

		mock.ExpectQuery(`SELECT donor_id, COUNT\(\*\) AS count FROM documents WHERE donor_id = ANY\(\$1\) GROUP BY donor_id`).
			WithArgs([]uuid.UUID{a, b}).
			WillReturnRows(pgxmock.NewRows([]string{"donor_id", "count"}).AddRow(a, 4))

		got, err := New(mock).CountByDonors(context.Background(), []uuid.UUID{a, b})
		require.NoError(t, err)
		assert.Equal(t, []domain.DocumentCount{{DonorID: a, Count: 4}}, got)
		testhelper.ExpectationsWereMet(t, mock)
	})
}

func TestRepo_Create_UnknownDonor(t *testing.T) {
	mock := testhelper.NewMockQuerier(t)
	doc := domain.Document{ID: uuid.New(), DonorID: uuid.New(), FileName: "a.pdf"}

	args := make([]any, len(columns))
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	mock.ExpectQuery(`INSERT INTO documents`).
		WithArgs(args...).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := New(mock).Create(context.Background(), doc)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
	testhelper.ExpectationsWereMet(t, mock)
}

func TestRepo_Delete(t *testing.T) {
	mock := testhelper.NewMockQuerier(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM documents WHERE id = \$1`).
		WithArgs(id.String()).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := New(mock).Delete(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	testhelper.ExpectationsWereMet(t, mock)
}
