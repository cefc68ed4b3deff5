package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Querier is satisfied by *DB, *sqlx.DB and *sqlx.Tx, so the same query code
// runs inside and outside a transaction.
type Querier interface {
	sqlx.ExtContext
}

// WithTx runs fn in a transaction, committing when it returns nil and rolling
// back on error or panic.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(q Querier) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("commit transaction: %w", cErr)
		}
	}()

	return fn(tx)
}
