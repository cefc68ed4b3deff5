package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/EATMove/CDT-sub001/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

type dialect struct {
	// driver is the database/sql driver name
	driver string
	// bind selects the placeholder style sqlx rebinds to
	bind  string
	goose goose.Dialect
}

var dialects = map[string]dialect{
	config.DriverSQLite:   {driver: "sqlite", bind: "sqlite3", goose: goose.DialectSQLite3},
	config.DriverPostgres: {driver: "pgx", bind: "pgx", goose: goose.DialectPostgres},
}

// DB is the shared connection pool. Queries are written with ? placeholders
// and rebound for the dialect.
type DB struct {
	*sqlx.DB
	Dialect string
}

type Params struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Log    *zap.Logger
}

func New(p Params) (*DB, error) {
	db, err := Open(context.Background(), p.Config.Database.Driver, p.Config.Database.DSN, p.Log)
	if err != nil {
		return nil, err
	}

	p.LC.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return db.Close()
		},
	})
	return db, nil
}

// Open connects, pings and applies any pending migrations.
func Open(ctx context.Context, name, dsn string, log *zap.Logger) (*DB, error) {
	d, ok := dialects[name]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", name)
	}

	conn, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if name == config.DriverSQLite {
		// one writer, and every connection to :memory: would be its own database
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := &DB{DB: sqlx.NewDb(conn, d.bind), Dialect: name}
	if err := db.migrate(ctx, log); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) migrate(ctx context.Context, log *zap.Logger) error {
	dir, err := fs.Sub(migrations, "migrations/"+db.Dialect)
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(dialects[db.Dialect].goose, db.DB.DB, dir)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	for _, r := range results {
		log.Info("migration applied",
			zap.String("file", r.Source.Path),
			zap.Int64("version", r.Source.Version),
			zap.Duration("took", r.Duration),
			zap.String("dialect", db.Dialect))
	}
	return nil
}
