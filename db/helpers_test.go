// ABOUTME: Shared test helpers for the db package
// ABOUTME: Provides in-memory databases and a controllable clock
package db

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test db: %v", err)
	}
	// A second pooled connection would see a different :memory: database.
	database.SetMaxOpenConns(1)

	if err := InitSchema(database); err != nil {
		t.Fatalf("Failed to init schema: %v", err)
	}

	t.Cleanup(func() { _ = database.Close() })
	return database
}

// testClock stands in for time.Now so tests can observe updated_at
// bumps deterministically.
type testClock struct {
	current time.Time
}

func newTestClock(epochMillis int64) *testClock {
	return &testClock{current: time.UnixMilli(epochMillis)}
}

func (c *testClock) Now() time.Time { return c.current }

func (c *testClock) Advance(d time.Duration) { c.current = c.current.Add(d) }
