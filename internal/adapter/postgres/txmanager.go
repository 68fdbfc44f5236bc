package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Beginner is satisfied by *pgxpool.Pool and the pgxmock pool.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxManager runs service operations atomically. Repositories pick the
// transaction up from the context through QuerierFromCtx.
type TxManager struct {
	db Beginner
}

func NewTxManager(db Beginner) *TxManager {
	return &TxManager{db: db}
}

// RunInTx commits when fn returns nil and rolls back otherwise, including on
// panic. A call made inside an outer RunInTx joins the outer transaction, so
// a donor delete can reuse the document repository without a second tx.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres.RunInTx: begin: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) && err != nil {
			err = errors.Join(err, fmt.Errorf("postgres.RunInTx: rollback: %w", rbErr))
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres.RunInTx: commit: %w", err)
	}
	committed = true
	return nil
}
