// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation and legacy interactions migration
package db

import (
	"database/sql"
)

const peopleSchema = `
CREATE TABLE IF NOT EXISTS people (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	nickname TEXT,
	notes TEXT,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_people_last_first ON people(last_name, first_name);
`

const interactionsSchema = `
CREATE TABLE IF NOT EXISTS interactions (
	id TEXT PRIMARY KEY,
	person_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
	happened_at TEXT NOT NULL,
	channel TEXT NOT NULL CHECK(channel IN ('note', 'call', 'text', 'meet')),
	summary TEXT NOT NULL
);
`

const interactionsIndex = `
CREATE INDEX IF NOT EXISTS idx_interactions_person_time ON interactions(person_id, happened_at DESC);
`

const remindersSchema = `
CREATE TABLE IF NOT EXISTS reminders (
	id TEXT PRIMARY KEY,
	person_id TEXT NOT NULL REFERENCES people(id) ON DELETE CASCADE,
	due_at TEXT NOT NULL,
	title TEXT NOT NULL,
	notes TEXT,
	done INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_reminders_due ON reminders(due_at);
CREATE INDEX IF NOT EXISTS idx_reminders_person_due ON reminders(person_id, due_at);
`

// InitSchema idempotently brings the on-disk schema to the current
// version. It must run before any store operation; calling it again on
// an already-current database is a no-op. A database created under the
// legacy numeric interactions scheme is migrated in place, see
// migrateLegacyInteractions.
func InitSchema(db *sql.DB) error {
	// Tests open :memory: databases directly, bypassing the DSN flags
	// set by OpenDatabase.
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return err
	}

	if _, err := db.Exec(peopleSchema); err != nil {
		return err
	}

	if err := ensureInteractionsTable(db); err != nil {
		return err
	}

	if _, err := db.Exec(remindersSchema); err != nil {
		return err
	}

	return nil
}
