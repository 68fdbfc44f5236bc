package testhelper

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"
)

// NewMockQuerier returns a pgxmock pool usable wherever a postgres.Querier
// or postgres.Beginner is expected. The mock is closed via t.Cleanup.
func NewMockQuerier(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("testhelper: create pgxmock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	return mock
}

// ExpectationsWereMet fails the test if any queued expectation was not consumed.
func ExpectationsWereMet(t *testing.T, mock pgxmock.PgxPoolIface) {
	t.Helper()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled pgxmock expectations: %v", err)
	}
}
