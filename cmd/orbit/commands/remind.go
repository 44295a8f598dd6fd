// ABOUTME: CLI commands for reminders
// ABOUTME: Pairs each store write with a schedule or cancel on the alert scheduler
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/orbit/db"
	"github.com/harperreed/orbit/models"
	"github.com/harperreed/orbit/notify"
)

var (
	remindDue    string
	remindNotes  string
	remindPerson string
	remindLimit  int

	// Swapped for a platform scheduler when one exists; the pairing with
	// store writes is best-effort either way.
	scheduler notify.Scheduler
)

func getScheduler() notify.Scheduler {
	if scheduler == nil {
		scheduler = notify.NewLogScheduler(logger)
	}
	return scheduler
}

// NewRemindCmd creates the remind command group.
func NewRemindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Manage reminders",
	}

	addCmd := &cobra.Command{
		Use:   "add <person-id> <title>",
		Short: "Add a reminder for a person",
		Long: `Add a reminder for a person.

Examples:
  orbit remind add 3 "Send birthday card" --due 2024-07-01T09:00:00Z
  orbit remind add 3 "Check in" --due 168h`,
		Args: cobra.ExactArgs(2),
		RunE: runRemindAdd,
	}
	addCmd.Flags().StringVar(&remindDue, "due", "", "When the reminder is due (RFC 3339 or duration from now)")
	addCmd.Flags().StringVar(&remindNotes, "notes", "", "Freeform notes")
	_ = addCmd.MarkFlagRequired("due")

	listCmd := &cobra.Command{
		Use:   "list <person-id>",
		Short: "List a person's upcoming reminders, soonest first",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemindList,
	}
	listCmd.Flags().IntVar(&remindLimit, "limit", 5, "Maximum reminders to show")

	doneCmd := &cobra.Command{
		Use:   "done <reminder-id>",
		Short: "Mark a reminder done",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemindDone,
	}
	doneCmd.Flags().StringVar(&remindPerson, "person", "", "Owning person id")
	_ = doneCmd.MarkFlagRequired("person")

	rmCmd := &cobra.Command{
		Use:   "rm <reminder-id>",
		Short: "Delete a reminder",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemindRm,
	}
	rmCmd.Flags().StringVar(&remindPerson, "person", "", "Owning person id")
	_ = rmCmd.MarkFlagRequired("person")

	cmd.AddCommand(addCmd, listCmd, doneCmd, rmCmd)
	return cmd
}

func runRemindAdd(cmd *cobra.Command, args []string) error {
	due, err := parseDue(remindDue)
	if err != nil {
		return fmt.Errorf("invalid --due value: %w", err)
	}

	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	id, err := db.NewRemindersRepository(database).Insert(cmd.Context(), models.NewReminder{
		PersonID: args[0],
		Title:    args[1],
		DueAt:    models.FormatTime(due),
		Notes:    remindNotes,
	})
	if err != nil {
		return fmt.Errorf("adding reminder: %w", err)
	}

	// Not transactional with the insert: a crash here leaves the row
	// without an alert, which the next edit re-schedules.
	if _, err := getScheduler().Schedule(cmd.Context(), notify.Alert{
		ReminderID: id,
		PersonID:   args[0],
		Title:      args[1],
		Due:        due,
	}); err != nil {
		logger.Warn("could not schedule alert", "reminder", id, "err", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added reminder %s due %s\n", id, due.Local().Format(time.RFC1123))
	return nil
}

func runRemindList(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	reminders, err := db.NewRemindersRepository(database).ListUpcomingByPerson(cmd.Context(), args[0], remindLimit)
	if err != nil {
		return fmt.Errorf("listing reminders: %w", err)
	}

	if len(reminders) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No upcoming reminders.")
		return nil
	}
	for _, r := range reminders {
		fmt.Fprintf(cmd.OutOrStdout(), "%-36s  %s  %s\n", r.ID, r.DueAt, truncate(r.Title, 40))
	}
	return nil
}

func runRemindDone(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	if err := db.NewRemindersRepository(database).MarkDone(cmd.Context(), args[0], remindPerson); err != nil {
		return fmt.Errorf("marking reminder done: %w", err)
	}

	getScheduler().CancelByReminder(cmd.Context(), args[0])

	fmt.Fprintf(cmd.OutOrStdout(), "Done: %s\n", args[0])
	return nil
}

func runRemindRm(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	if err := db.NewRemindersRepository(database).Delete(cmd.Context(), args[0], remindPerson); err != nil {
		return fmt.Errorf("deleting reminder: %w", err)
	}

	getScheduler().CancelByReminder(cmd.Context(), args[0])

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", args[0])
	return nil
}
