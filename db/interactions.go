// ABOUTME: Interaction database operations
// ABOUTME: Every write is transactional with the owner's updated_at bump
package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/orbit/models"
)

// InteractionsRepository provides storage for logged contact events.
type InteractionsRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewInteractionsRepository creates an interactions repository.
func NewInteractionsRepository(db *sql.DB) *InteractionsRepository {
	return &InteractionsRepository{db: db, now: time.Now}
}

// Insert logs an interaction and bumps the owning person's updated_at
// in the same transaction. HappenedAt defaults to now when empty.
// Returns the generated interaction id.
func (r *InteractionsRepository) Insert(ctx context.Context, in models.NewInteraction) (string, error) {
	id := uuid.New().String()
	now := r.now()

	happenedAt := in.HappenedAt
	if happenedAt == "" {
		happenedAt = models.FormatTime(now)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO interactions (id, person_id, happened_at, channel, summary)
		VALUES (?, ?, ?, ?, ?)
	`, id, in.PersonID, happenedAt, in.Channel, in.Summary)
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

// Update replaces all four mutable fields of an interaction by id and
// bumps the person named in the update (the caller passes the current
// owner). Returns ErrNotFound when no row matches.
func (r *InteractionsRepository) Update(ctx context.Context, id string, upd models.InteractionUpdate) error {
	now := r.now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE interactions
		SET summary = ?, channel = ?, happened_at = ?, person_id = ?
		WHERE id = ?
	`, upd.Summary, upd.Channel, upd.HappenedAt, upd.PersonID, id)
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

// Delete removes an interaction. The owner's id is passed explicitly
// since the row can no longer self-report it after deletion.
func (r *InteractionsRepository) Delete(ctx context.Context, id, personID string) error {
	now := r.now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM interactions WHERE id = ?`, id)
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

// ListByPerson returns a person's interactions, most recent first.
func (r *InteractionsRepository) ListByPerson(ctx context.Context, personID string) ([]models.Interaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, person_id, happened_at, channel, summary
		FROM interactions
		WHERE person_id = ?
		ORDER BY happened_at DESC
	`, personID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var interactions []models.Interaction
	for rows.Next() {
		var it models.Interaction
		if err := rows.Scan(&it.ID, &it.PersonID, &it.HappenedAt, &it.Channel, &it.Summary); err != nil {
			return nil, err
		}
		interactions = append(interactions, it)
	}
	return interactions, rows.Err()
}

// Get looks up an interaction by id. A missing row is (nil, nil).
func (r *InteractionsRepository) Get(ctx context.Context, id string) (*models.Interaction, error) {
	var it models.Interaction
	err := r.db.QueryRowContext(ctx, `
		SELECT id, person_id, happened_at, channel, summary
		FROM interactions WHERE id = ?
	`, id).Scan(&it.ID, &it.PersonID, &it.HappenedAt, &it.Channel, &it.Summary)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}
