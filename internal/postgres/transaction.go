package postgres

import (
	"context"
	"database/sql"
	"fmt"

	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/fakturo/fakturo/internal/types"
)

// TxKey is the context key type for storing transaction
type TxKey struct{}

// Tx wraps sqlx.Tx to support nested transactions using savepoints
type Tx struct {
	Tx          txQuerier
	savepointID int
	ID          string // Unique ID for tracing
}

type txQuerier interface {
	Querier
	Commit() error
	Rollback() error
}

// GetTx retrieves a transaction from the context if it exists
func GetTx(ctx context.Context) (*Tx, bool) {
	tx, ok := ctx.Value(TxKey{}).(*Tx)
	return tx, ok
}

// WithTx runs fn inside a transaction. If the context already carries a
// transaction a savepoint is created instead, so a failing inner block rolls
// back only its own writes.
func (c *Client) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := GetTx(ctx); ok {
		return c.withSavepoint(ctx, tx, fn)
	}

	sqlxTx, err := c.db.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to begin transaction").
			Mark(ierr.ErrDatabase)
	}

	tx := &Tx{
		Tx: sqlxTx,
		ID: types.GenerateUUID(),
	}
	txCtx := context.WithValue(ctx, TxKey{}, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Tx.Rollback(); rbErr != nil {
			c.logger.Errorw("failed to rollback transaction",
				"tx_id", tx.ID,
				"error", rbErr,
			)
		}
		return err
	}

	if err := tx.Tx.Commit(); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to commit transaction").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (c *Client) withSavepoint(ctx context.Context, tx *Tx, fn func(ctx context.Context) error) error {
	tx.savepointID++
	savepoint := fmt.Sprintf("sp_%d", tx.savepointID)

	if _, err := tx.Tx.ExecContext(ctx, fmt.Sprintf("SAVEPOINT %s", savepoint)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create savepoint").
			Mark(ierr.ErrDatabase)
	}

	if err := fn(ctx); err != nil {
		if _, rbErr := tx.Tx.ExecContext(ctx, fmt.Sprintf("ROLLBACK TO SAVEPOINT %s", savepoint)); rbErr != nil {
			c.logger.Errorw("failed to rollback to savepoint",
				"tx_id", tx.ID,
				"savepoint", savepoint,
				"error", rbErr,
			)
		}
		return err
	}

	if _, err := tx.Tx.ExecContext(ctx, fmt.Sprintf("RELEASE SAVEPOINT %s", savepoint)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to release savepoint").
			Mark(ierr.ErrDatabase)
	}

	return nil
}
