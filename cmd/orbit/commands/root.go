// ABOUTME: Root CLI command and global flags
// ABOUTME: Wires subcommands and shared database path handling
package commands

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	dbPathFlag string

	logger = log.New(os.Stderr)
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orbit",
		Short: "Keep track of the people in your orbit",
		Long: `orbit is a local-first personal relationship manager.

Record people, log interactions with them, and set reminders. Everything
lives in a local SQLite database; nothing leaves your machine.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "Database path (default: $ORBIT_DB or XDG data dir)")

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewPersonCmd())
	cmd.AddCommand(NewLogCmd())
	cmd.AddCommand(NewRemindCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}
