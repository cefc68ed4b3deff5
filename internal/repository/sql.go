package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/EATMove/CDT-sub001/internal/database"
	"github.com/EATMove/CDT-sub001/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type sqlRepo struct {
	db    *database.DB
	clock clockwork.Clock
	log   *zap.Logger
}

type Params struct {
	fx.In

	DB    *database.DB
	Clock clockwork.Clock
	Log   *zap.Logger
}

func NewSQL(p Params) (Repository, error) {
	return &sqlRepo{
		db:    p.DB,
		clock: p.Clock,
		log:   p.Log,
	}, nil
}

func (r *sqlRepo) now() time.Time {
	return r.clock.Now().UTC()
}

// The helpers take a Querier so the same statements run against the pool or
// inside database.WithTx.

func exec(ctx context.Context, q database.Querier, query string, args ...any) (sql.Result, error) {
	return q.ExecContext(ctx, q.Rebind(query), args...)
}

func get(ctx context.Context, q database.Querier, dest any, query string, args ...any) error {
	return sqlx.GetContext(ctx, q, dest, q.Rebind(query), args...)
}

func selectAll(ctx context.Context, q database.Querier, dest any, query string, args ...any) error {
	return sqlx.SelectContext(ctx, q, dest, q.Rebind(query), args...)
}

// execOne runs a statement that must touch exactly one row.
func execOne(ctx context.Context, q database.Querier, what, query string, args ...any) error {
	res, err := exec(ctx, q, query, args...)
	if err != nil {
		return mapError(what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", model.ErrNotFound, what)
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}

func mapError(what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", model.ErrNotFound, what)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", model.ErrConflict, what)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s references a missing row", model.ErrNotFound, what)
		}
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := liteErr.Error()
		switch {
		case liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY || strings.Contains(msg, "FOREIGN KEY"):
			return fmt.Errorf("%w: %s references a missing row", model.ErrNotFound, what)
		case liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || strings.Contains(msg, "UNIQUE"):
			return fmt.Errorf("%w: %s", model.ErrConflict, what)
		}
	}

	return fmt.Errorf("%s: %w", what, err)
}
