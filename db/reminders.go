// ABOUTME: Reminder database operations
// ABOUTME: Covers insert/update/mark-done/delete plus upcoming queries
package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/orbit/models"
)

// RemindersRepository provides storage for dated follow-ups.
type RemindersRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewRemindersRepository creates a reminders repository.
func NewRemindersRepository(db *sql.DB) *RemindersRepository {
	return &RemindersRepository{db: db, now: time.Now}
}

// Insert creates a reminder (done = false) and bumps the owning
// person's updated_at in the same transaction. Returns the generated
// reminder id.
func (r *RemindersRepository) Insert(ctx context.Context, in models.NewReminder) (string, error) {
	id := uuid.New().String()
	now := r.now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reminders (id, person_id, due_at, title, notes, done)
		VALUES (?, ?, ?, ?, ?, 0)
	`, id, in.PersonID, in.DueAt, in.Title, nullString(in.Notes))
	if err != nil {
		return "", mapError(err)
	}

	if err := bumpPersonUpdatedAt(ctx, tx, in.PersonID, now.UnixMilli()); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// Update replaces title, due_at, notes, and person_id unconditionally.
// Done is only written when upd.Done is non-nil; a nil Done leaves the
// stored flag alone. This partial contract is deliberate and differs
// from InteractionsRepository.Update's full replace.
func (r *RemindersRepository) Update(ctx context.Context, id string, upd models.ReminderUpdate) error {
	now := r.now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var res sql.Result
	if upd.Done != nil {
		res, err = tx.ExecContext(ctx, `
			UPDATE reminders
			SET title = ?, due_at = ?, notes = ?, person_id = ?, done = ?
			WHERE id = ?
		`, upd.Title, upd.DueAt, nullString(upd.Notes), upd.PersonID, boolToInt(*upd.Done), id)
	} else {
		res, err = tx.ExecContext(ctx, `
			UPDATE reminders
			SET title = ?, due_at = ?, notes = ?, person_id = ?
			WHERE id = ?
		`, upd.Title, upd.DueAt, nullString(upd.Notes), upd.PersonID, id)
	}
	if err != nil {
		return mapError(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}

	if err := bumpPersonUpdatedAt(ctx, tx, upd.PersonID, now.UnixMilli()); err != nil {
		return err
	}

	return tx.Commit()
}

// MarkDone sets done = true and nothing else, bumping the owner in the
// same transaction.
func (r *RemindersRepository) MarkDone(ctx context.Context, id, personID string) error {
	now := r.now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, `UPDATE reminders SET done = 1 WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}

	if err := bumpPersonUpdatedAt(ctx, tx, personID, now.UnixMilli()); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a reminder, bumping the explicitly supplied owner.
func (r *RemindersRepository) Delete(ctx context.Context, id, personID string) error {
	now := r.now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return mapError(err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}

	if err := bumpPersonUpdatedAt(ctx, tx, personID, now.UnixMilli()); err != nil {
		return err
	}

	return tx.Commit()
}

// ListUpcomingByPerson returns a person's open reminders, soonest due
// first, truncated to limit rows. Done reminders are excluded
// regardless of due date.
func (r *RemindersRepository) ListUpcomingByPerson(ctx context.Context, personID string, limit int) ([]models.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, person_id, due_at, title, notes, done
		FROM reminders
		WHERE person_id = ? AND done = 0
		ORDER BY due_at ASC
		LIMIT ?
	`, personID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var reminders []models.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows.Scan)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

// Get looks up a reminder by id. A missing row is (nil, nil).
func (r *RemindersRepository) Get(ctx context.Context, id string) (*models.Reminder, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, person_id, due_at, title, notes, done
		FROM reminders WHERE id = ?
	`, id)

	rem, err := scanReminder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rem, nil
}

func scanReminder(scan func(...any) error) (models.Reminder, error) {
	var rem models.Reminder
	var notes sql.NullString
	var done int
	err := scan(&rem.ID, &rem.PersonID, &rem.DueAt, &rem.Title, &notes, &done)
	if err != nil {
		return models.Reminder{}, err
	}
	rem.Notes = notes.String
	rem.Done = done != 0
	return rem, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
