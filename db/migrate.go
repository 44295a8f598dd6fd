// ABOUTME: In-place migration of the legacy interactions table
// ABOUTME: Detects numeric-id schemas and copy-and-swaps to the string scheme
package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/harperreed/orbit/models"
)

// tableState describes what ensureInteractionsTable found on disk.
type tableState int

const (
	tableMissing tableState = iota // no interactions table
	tableLegacy                    // numeric id/person_id/happened_at scheme
	tableCurrent                   // string scheme already in place
)

// columnInfo is one row of PRAGMA table_info output.
type columnInfo struct {
	Name string
	Type string
}

// ensureInteractionsTable creates, migrates, or leaves alone the
// interactions table depending on its on-disk state.
func ensureInteractionsTable(db *sql.DB) error {
	state, cols, err := interactionsTableState(db)
	if err != nil {
		return &MigrationError{Step: "inspect", Err: err}
	}

	switch state {
	case tableMissing:
		if _, err := db.Exec(interactionsSchema); err != nil {
			return &MigrationError{Step: "create", Err: err}
		}
	case tableLegacy:
		if err := migrateLegacyInteractions(db, cols); err != nil {
			return err
		}
	case tableCurrent:
		// fall through to index creation
	}

	if _, err := db.Exec(interactionsIndex); err != nil {
		return &MigrationError{Step: "index", Err: err}
	}
	return nil
}

// interactionsTableState inspects sqlite_master and the declared column
// types to classify the existing table, returning its columns so a
// migration does not need a second inspection pass.
func interactionsTableState(db *sql.DB) (tableState, []columnInfo, error) {
	var name string
	err := db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'interactions'`,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return tableMissing, nil, nil
	}
	if err != nil {
		return tableMissing, nil, err
	}

	cols, err := tableColumns(db, "interactions")
	if err != nil {
		return tableMissing, nil, err
	}

	for _, col := range cols {
		switch col.Name {
		case "id", "person_id", "happened_at":
			if !isTextType(col.Type) {
				return tableLegacy, cols, nil
			}
		}
	}
	return tableCurrent, cols, nil
}

func tableColumns(db *sql.DB, table string) ([]columnInfo, error) {
	rows, err := db.Query(fmt.Sprintf(`PRAGMA table_info(%s)`, table))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var cols []columnInfo
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			dfltValue  sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &primaryKey); err != nil {
			return nil, err
		}
		cols = append(cols, columnInfo{Name: name, Type: typ})
	}
	return cols, rows.Err()
}

// isTextType reports whether a declared column type has TEXT affinity.
func isTextType(declared string) bool {
	u := strings.ToUpper(declared)
	return strings.Contains(u, "TEXT") ||
		strings.Contains(u, "CHAR") ||
		strings.Contains(u, "CLOB")
}

// migrateLegacyInteractions rebuilds the interactions table under the
// current string-id schema, copying every legacy row across:
//
//   - a numeric id becomes a freshly generated ULID
//   - a numeric person_id becomes its decimal string rendering
//   - a numeric happened_at (epoch ms) becomes an ISO-8601 string,
//     defaulting to now when null
//   - missing channel defaults to "note", missing summary to ""
//
// The copy and the table swap run in one transaction; any failure rolls
// everything back and leaves the legacy table untouched.
func migrateLegacyInteractions(db *sql.DB, cols []columnInfo) error {
	byName := make(map[string]columnInfo, len(cols))
	for _, c := range cols {
		byName[c.Name] = c
	}

	tx, err := db.Begin()
	if err != nil {
		return &MigrationError{Step: "begin", Err: err}
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	newTable := strings.Replace(interactionsSchema, "IF NOT EXISTS interactions", "interactions_new", 1)
	if _, err := tx.Exec(newTable); err != nil {
		return &MigrationError{Step: "create new table", Err: err}
	}

	// Select only the columns the legacy table actually has; anything
	// missing is selected as NULL and defaulted below.
	selects := make([]string, 0, 5)
	for _, name := range []string{"id", "person_id", "happened_at", "channel", "summary"} {
		if _, ok := byName[name]; ok {
			selects = append(selects, name)
		} else {
			selects = append(selects, "NULL AS "+name)
		}
	}

	rows, err := tx.Query(`SELECT ` + strings.Join(selects, ", ") + ` FROM interactions`)
	if err != nil {
		return &MigrationError{Step: "read legacy rows", Err: err}
	}

	type migratedRow struct {
		id, personID, happenedAt, channel, summary string
	}

	var migrated []migratedRow
	idIsText := isTextType(byName["id"].Type)
	timeIsText := isTextType(byName["happened_at"].Type)

	for rows.Next() {
		var (
			id, personID, channel, summary sql.NullString
			happenedAtText                 sql.NullString
			happenedAtMillis               sql.NullInt64
		)

		dests := []any{&id, &personID, nil, &channel, &summary}
		if timeIsText {
			dests[2] = &happenedAtText
		} else {
			dests[2] = &happenedAtMillis
		}

		if err := rows.Scan(dests...); err != nil {
			_ = rows.Close()
			return &MigrationError{Step: "scan legacy row", Err: err}
		}

		out := migratedRow{
			personID: personID.String,
			channel:  channel.String,
			summary:  summary.String,
		}

		// Legacy numeric ids cannot be carried over as primary keys in
		// the string scheme; each gets a generated sortable id.
		if idIsText && id.Valid {
			out.id = id.String
		} else {
			out.id = ulid.Make().String()
		}

		switch {
		case timeIsText && happenedAtText.Valid:
			out.happenedAt = happenedAtText.String
		case !timeIsText && happenedAtMillis.Valid:
			out.happenedAt = models.FormatTime(time.UnixMilli(happenedAtMillis.Int64))
		default:
			out.happenedAt = models.FormatTime(time.Now())
		}

		if out.channel == "" {
			out.channel = models.ChannelNote
		}

		migrated = append(migrated, out)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return &MigrationError{Step: "read legacy rows", Err: err}
	}
	_ = rows.Close()

	for _, row := range migrated {
		_, err := tx.Exec(`
			INSERT INTO interactions_new (id, person_id, happened_at, channel, summary)
			VALUES (?, ?, ?, ?, ?)
		`, row.id, row.personID, row.happenedAt, row.channel, row.summary)
		if err != nil {
			return &MigrationError{Step: "copy row", Err: mapError(err)}
		}
	}

	if _, err := tx.Exec(`DROP TABLE interactions`); err != nil {
		return &MigrationError{Step: "drop legacy table", Err: err}
	}
	if _, err := tx.Exec(`ALTER TABLE interactions_new RENAME TO interactions`); err != nil {
		return &MigrationError{Step: "rename new table", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &MigrationError{Step: "commit", Err: err}
	}
	return nil
}
