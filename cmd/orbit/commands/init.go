// ABOUTME: CLI command for explicit database initialization
// ABOUTME: Runs the schema/migration manager and reports the outcome
package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/orbit/db"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize (or migrate) the database and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := databasePath()
			database, err := db.OpenDatabase(path)
			if err != nil {
				var migErr *db.MigrationError
				if errors.As(err, &migErr) {
					// The rollback left the old schema queryable; reads
					// still work, writes must wait for a successful init.
					logger.Error("migration failed, database left on legacy schema", "step", migErr.Step, "err", migErr.Err)
				}
				return err
			}
			defer func() { _ = database.Close() }()

			fmt.Fprintf(cmd.OutOrStdout(), "Database ready at %s\n", path)
			return nil
		},
	}
}
