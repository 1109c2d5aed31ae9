package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// DB wraps sql.DB together with the dialect it was opened with. The web
// server runs against Postgres via pgx; the desktop app and the tests run
// against a local sqlite file.
type DB struct {
	Client  *sql.DB
	Dialect string
}

// Open connects to the store named by url. Anything that does not look like
// a Postgres URL is treated as a sqlite file path.
func Open(url string) (*DB, error) {
	driver, dialect := "sqlite", DialectSQLite
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		driver, dialect = "pgx", DialectPostgres
	}

	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, err
	}
	if dialect == DialectSQLite {
		// sqlite allows one writer; a single connection keeps the driver
		// from ever seeing SQLITE_BUSY under concurrent handlers.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Hour)
	}
	return &DB{Client: db, Dialect: dialect}, db.PingContext(context.Background())
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Close()
}
