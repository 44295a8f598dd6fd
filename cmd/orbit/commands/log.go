// ABOUTME: CLI command for logging interactions with a person
// ABOUTME: Inserting through the store bumps the person's recency signal
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harperreed/orbit/db"
	"github.com/harperreed/orbit/models"
)

var (
	logChannel string
	logAt      string
)

// NewLogCmd creates the log command.
func NewLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <person-id> <summary>",
		Short: "Log an interaction with a person",
		Long: `Log an interaction with a person.

Examples:
  orbit log 3 "Caught up over coffee" --channel meet
  orbit log 3 "Asked about the move" --channel text --at 2024-06-01T18:30:00Z`,
		Args: cobra.ExactArgs(2),
		RunE: runLog,
	}

	cmd.Flags().StringVar(&logChannel, "channel", models.ChannelNote, "Channel: "+strings.Join(models.Channels, ", "))
	cmd.Flags().StringVar(&logAt, "at", "", "When it happened (RFC 3339, default now)")

	return cmd
}

func runLog(cmd *cobra.Command, args []string) error {
	if !models.ValidChannel(logChannel) {
		return fmt.Errorf("unknown channel %q (want one of %s)", logChannel, strings.Join(models.Channels, ", "))
	}

	var happenedAt string
	if logAt != "" {
		t, err := parseDue(logAt)
		if err != nil {
			return fmt.Errorf("invalid --at value: %w", err)
		}
		happenedAt = models.FormatTime(t)
	}

	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	id, err := db.NewInteractionsRepository(database).Insert(cmd.Context(), models.NewInteraction{
		PersonID:   args[0],
		Channel:    logChannel,
		Summary:    args[1],
		HappenedAt: happenedAt,
	})
	if err != nil {
		return fmt.Errorf("logging interaction: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged %s interaction %s\n", logChannel, id)
	return nil
}
