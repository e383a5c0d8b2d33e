// Package dbtest opens throwaway stores for repository tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	database "github.com/FACorreiaa/gonext/internal/db"
	"github.com/FACorreiaa/gonext/internal/pkg/config"
)

// New opens a fresh store file under t.TempDir and closes it on cleanup.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	cfg := config.SQLiteConfig{
		Path:        filepath.Join(t.TempDir(), "gonext_test.db"),
		BusyTimeout: time.Second,
	}
	db, err := database.Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// Count returns the number of rows in table. Test-only; the table name is
// not escaped.
func Count(t testing.TB, db *sqlx.DB, table string) int {
	t.Helper()

	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

// InsertPlace adds a bare place and returns its id.
func InsertPlace(t testing.TB, db *sqlx.DB, name string) int64 {
	t.Helper()
	return insert(t, db, `INSERT INTO places (name) VALUES (?)`, name)
}

// InsertTrip adds a one-week trip starting on start.
func InsertTrip(t testing.TB, db *sqlx.DB, title, start string, current bool) int64 {
	t.Helper()
	return insert(t, db,
		`INSERT INTO trips (title, start_date, end_date, current) VALUES (?, ?, date(?, '+7 days'), ?)`,
		title, start, start, current)
}

func InsertTripPlace(t testing.TB, db *sqlx.DB, tripID, placeID int64, order int, visited bool) int64 {
	t.Helper()
	return insert(t, db,
		`INSERT INTO trip_places (trip_id, place_id, "order", visited) VALUES (?, ?, ?, ?)`,
		tripID, placeID, order, visited)
}

func insert(t testing.TB, db *sqlx.DB, query string, args ...any) int64 {
	t.Helper()

	result, err := db.Exec(query, args...)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return id
}
