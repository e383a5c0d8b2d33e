// Package database owns the SQLite store: opening the single shared handle,
// creating the schema and running composite writes in a transaction.
package database

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/FACorreiaa/gonext/internal/app/models"
	"github.com/FACorreiaa/gonext/internal/pkg/config"
)

//go:embed schema.sql
var Schema string

const driverName = "sqlite"

// TimestampLayout matches the created_at default written by the schema.
const TimestampLayout = "2006-01-02 15:04:05.000"

// DSN builds the modernc connection string. Pragmas are applied on every new
// connection, which is what makes foreign_keys stick.
func DSN(cfg config.SQLiteConfig) string {
	query := url.Values{}
	query.Add("_pragma", "foreign_keys(1)")
	query.Add("_pragma", "journal_mode(WAL)")
	query.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeout.Milliseconds()))
	return "file:" + cfg.Path + "?" + query.Encode()
}

// Open opens the store file, limits it to one connection and creates the
// schema. The returned handle is meant to be shared for the process lifetime.
func Open(ctx context.Context, cfg config.SQLiteConfig, logger *zap.Logger) (*sqlx.DB, error) {
	logger.Info("Opening database", zap.String("path", cfg.Path))

	db, err := sqlx.Open(driverName, DSN(cfg))
	if err != nil {
		logger.Error("Failed to open database", zap.Error(err))
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		logger.Error("Database ping failed", zap.Error(err))
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := InitSchema(ctx, db); err != nil {
		_ = db.Close()
		logger.Error("Failed to create schema", zap.Error(err))
		return nil, err
	}

	logger.Info("Database ready")
	return db, nil
}

// InitSchema creates tables and indexes that do not exist yet. Safe to call
// on every start.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// WithTx runs fn in a transaction, committing when fn returns nil.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ClassifyError tags SQLite constraint failures with models.ErrConstraint.
// Other errors are returned unchanged.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return fmt.Errorf("%w: %w", models.ErrConstraint, err)
	}
	return err
}

// ParseTimestamp reads a TEXT timestamp written by SQLite. Unknown formats
// give the zero time.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{TimestampLayout, time.DateTime, time.RFC3339Nano} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}

// RequireAffected turns a write that matched no row into models.ErrNotFound.
func RequireAffected(result sql.Result, entity string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no %s found with ID %d: %w", entity, id, models.ErrNotFound)
	}
	return nil
}
