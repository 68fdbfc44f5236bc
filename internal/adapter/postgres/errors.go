package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/donorbase/internal/domain"
)

// MapError translates driver errors into domain sentinels, prefixed with the
// entity and id for the log. Context cancellation is wrapped as is.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	wrap := func(target error) error { return fmt.Errorf("%s %s: %w", entity, id, target) }

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return wrap(err)
	case errors.Is(err, pgx.ErrNoRows), pgxscan.NotFound(err):
		return wrap(domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return wrap(domain.ErrAlreadyExists)
		case pgerrcode.ForeignKeyViolation:
			// A document or finding pointing at a donor that is gone.
			return wrap(domain.ErrNotFound)
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.InvalidTextRepresentation:
			return wrap(domain.ErrValidation)
		}
	}
	return wrap(err)
}

// IsUniqueViolation reports whether err violated the named unique constraint.
// An empty name matches any unique constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
