package introspect

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver

	"github.com/conduit-lang/modeltypes/internal/orm/schema"
)

// Source is a live column source that owns its connection
type Source interface {
	LookupTable(ctx context.Context, name string) (*schema.Table, bool, error)
	Close() error
}

type dbSource struct {
	lookup interface {
		LookupTable(ctx context.Context, name string) (*schema.Table, bool, error)
	}
	db *sql.DB
}

func (s *dbSource) LookupTable(ctx context.Context, name string) (*schema.Table, bool, error) {
	return s.lookup.LookupTable(ctx, name)
}

func (s *dbSource) Close() error {
	return s.db.Close()
}

// DialectFor returns the storage dialect a driver speaks
func DialectFor(driver string) (string, error) {
	switch driver {
	case "pgx", "postgres":
		return "pgsql", nil
	case "sqlite3", "sqlite":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported driver: %s", driver)
	}
}

// Open connects to the database and returns the matching source
func Open(ctx context.Context, driver, dsn string) (Source, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}

	sqlDriver := driver
	switch driver {
	case "postgres":
		sqlDriver = "pgx"
	case "sqlite":
		sqlDriver = "sqlite3"
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return wrap(db, dialect), nil
}

func wrap(db *sql.DB, dialect string) Source {
	if dialect == "sqlite" {
		return &dbSource{lookup: NewSQLiteSource(db), db: db}
	}
	return &dbSource{lookup: NewPostgresSource(db, ""), db: db}
}
