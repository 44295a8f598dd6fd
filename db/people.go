// ABOUTME: Person database operations
// ABOUTME: Owns created_at/updated_at semantics including child-write bumps
package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/harperreed/orbit/models"
)

// PeopleRepository provides person storage. Construct one per database
// handle; instances are cheap and share the underlying pool.
type PeopleRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewPeopleRepository creates a people repository.
func NewPeopleRepository(db *sql.DB) *PeopleRepository {
	return &PeopleRepository{db: db, now: time.Now}
}

// Insert creates a person and returns its assigned row id. created_at
// and updated_at are stamped with the same instant.
func (r *PeopleRepository) Insert(ctx context.Context, p models.NewPerson) (int64, error) {
	now := r.now().UnixMilli()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO people (first_name, last_name, nickname, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.FirstName, p.LastName, nullString(p.Nickname), nullString(p.Notes), now, now)
	if err != nil {
		return 0, mapError(err)
	}

	return res.LastInsertId()
}

// List returns all people, most recently added first.
func (r *PeopleRepository) List(ctx context.Context) ([]models.Person, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, nickname, notes, created_at, updated_at
		FROM people
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var people []models.Person
	for rows.Next() {
		p, err := scanPerson(rows.Scan)
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

// Get looks up a person by id. A missing person is (nil, nil), not an
// error.
func (r *PeopleRepository) Get(ctx context.Context, id int64) (*models.Person, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, nickname, notes, created_at, updated_at
		FROM people WHERE id = ?
	`, id)

	p, err := scanPerson(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPerson(scan func(...any) error) (models.Person, error) {
	var p models.Person
	var nickname, notes sql.NullString
	err := scan(&p.ID, &p.FirstName, &p.LastName, &nickname, &notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Person{}, err
	}
	p.Nickname = nickname.String
	p.Notes = notes.String
	return p, nil
}

// bumpPersonUpdatedAt advances the person's updated_at inside the
// caller's transaction. Every interaction or reminder write goes
// through this so the person's "last touched" signal can never lag its
// actual content.
func bumpPersonUpdatedAt(ctx context.Context, tx *sql.Tx, personID string, nowMillis int64) error {
	_, err := tx.ExecContext(ctx, `UPDATE people SET updated_at = ? WHERE id = ?`, nowMillis, personID)
	return mapError(err)
}

// nullString stores empty strings as NULL, matching the rows the
// original client wrote.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
