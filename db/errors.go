// ABOUTME: Error taxonomy for the persistence layer
// ABOUTME: Maps raw sqlite3 driver errors onto package sentinels
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when an update or delete targets a row
	// that does not exist. Lookups signal absence with a nil result
	// instead of this error.
	ErrNotFound = errors.New("orbit/db: record not found")

	// ErrForeignKeyViolation is returned when a write references a
	// nonexistent person.
	ErrForeignKeyViolation = errors.New("orbit/db: foreign key violation")

	// ErrConstraintViolation is returned for not-null, check, and
	// unique constraint failures.
	ErrConstraintViolation = errors.New("orbit/db: constraint violation")
)

// MigrationError wraps any failure while bringing the schema up to
// date. The copy-and-swap migration runs in one transaction, so the
// legacy table is intact whenever this error is returned.
type MigrationError struct {
	Step string
	Err  error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("orbit/db: migration failed at %s: %v", e.Step, e.Err)
}

func (e *MigrationError) Unwrap() error { return e.Err }

// mapError translates sqlite3 driver errors to package sentinels.
// go-sqlite3 does not export typed errors for constraint failures, so
// matching is by message.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	s := err.Error()
	switch {
	case strings.Contains(s, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %v", ErrForeignKeyViolation, err)
	case strings.Contains(s, "UNIQUE constraint failed"),
		strings.Contains(s, "NOT NULL constraint failed"),
		strings.Contains(s, "CHECK constraint failed"):
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	}
	return err
}
