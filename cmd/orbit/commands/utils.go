// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Database path resolution and flexible due-time parsing
package commands

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/harperreed/orbit/db"
)

// databasePath resolves the database location: --db flag, then ORBIT_DB
// from the environment (a .env file is honored), then the XDG data dir.
func databasePath() string {
	if dbPathFlag != "" {
		return dbPathFlag
	}

	_ = godotenv.Load()
	if fromEnv := os.Getenv("ORBIT_DB"); fromEnv != "" {
		return fromEnv
	}

	return filepath.Join(xdg.DataHome, "orbit", "crm-orbit.db")
}

// openDatabase opens and initializes the store for a command run.
func openDatabase() (*sql.DB, error) {
	path := databasePath()
	database, err := db.OpenDatabase(path)
	if err != nil {
		return nil, fmt.Errorf("opening database at %s: %w", path, err)
	}
	return database, nil
}

// parseDue accepts an absolute RFC 3339 timestamp or a relative
// duration offset from now ("48h", "30m").
func parseDue(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return time.Now().Add(d), nil
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a time or duration", s)
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}
