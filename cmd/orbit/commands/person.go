// ABOUTME: CLI commands for managing people
// ABOUTME: Covers person add, list, and show
package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/orbit/db"
	"github.com/harperreed/orbit/models"
)

var (
	personNickname string
	personNotes    string
)

// NewPersonCmd creates the person command group.
func NewPersonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage people",
	}

	addCmd := &cobra.Command{
		Use:   "add <first-name> <last-name>",
		Short: "Add a person",
		Args:  cobra.ExactArgs(2),
		RunE:  runPersonAdd,
	}
	addCmd.Flags().StringVar(&personNickname, "nickname", "", "Nickname")
	addCmd.Flags().StringVar(&personNotes, "notes", "", "Freeform notes")

	cmd.AddCommand(addCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List people, most recently added first",
		Args:  cobra.NoArgs,
		RunE:  runPersonList,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a person with upcoming reminders and recent interactions",
		Args:  cobra.ExactArgs(1),
		RunE:  runPersonShow,
	})

	return cmd
}

func runPersonAdd(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	people := db.NewPeopleRepository(database)
	id, err := people.Insert(cmd.Context(), models.NewPerson{
		FirstName: args[0],
		LastName:  args[1],
		Nickname:  personNickname,
		Notes:     personNotes,
	})
	if err != nil {
		return fmt.Errorf("adding person: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added person %d: %s %s\n", id, args[0], args[1])
	return nil
}

func runPersonList(cmd *cobra.Command, args []string) error {
	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	people, err := db.NewPeopleRepository(database).List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing people: %w", err)
	}

	if len(people) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No people yet. Add one with: orbit person add")
		return nil
	}

	for _, p := range people {
		name := p.FirstName + " " + p.LastName
		if p.Nickname != "" {
			name += " (" + p.Nickname + ")"
		}
		updated := time.UnixMilli(p.UpdatedAt).Format("2006-01-02 15:04")
		fmt.Fprintf(cmd.OutOrStdout(), "%4d  %-30s  updated %s\n", p.ID, truncate(name, 30), updated)
	}
	return nil
}

func runPersonShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid person id %q", args[0])
	}

	database, err := openDatabase()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	person, err := db.NewPeopleRepository(database).Get(ctx, id)
	if err != nil {
		return fmt.Errorf("looking up person: %w", err)
	}
	if person == nil {
		return fmt.Errorf("person %d not found", id)
	}

	fmt.Fprintf(out, "%s %s\n", person.FirstName, person.LastName)
	if person.Nickname != "" {
		fmt.Fprintf(out, "Nickname: %s\n", person.Nickname)
	}
	if person.Notes != "" {
		fmt.Fprintf(out, "Notes: %s\n", person.Notes)
	}
	fmt.Fprintf(out, "Created: %s\n", time.UnixMilli(person.CreatedAt).Format(time.RFC1123))
	fmt.Fprintf(out, "Updated: %s\n", time.UnixMilli(person.UpdatedAt).Format(time.RFC1123))

	personID := strconv.FormatInt(id, 10)
	if err := printUpcoming(ctx, out, database, personID); err != nil {
		return err
	}
	return printInteractions(ctx, out, database, personID)
}

func printUpcoming(ctx context.Context, out io.Writer, database *sql.DB, personID string) error {
	reminders, err := db.NewRemindersRepository(database).ListUpcomingByPerson(ctx, personID, 5)
	if err != nil {
		return fmt.Errorf("listing reminders: %w", err)
	}

	fmt.Fprintln(out, "\nUpcoming reminders:")
	if len(reminders) == 0 {
		fmt.Fprintln(out, "  (none)")
		return nil
	}
	for _, r := range reminders {
		due := r.DueAt
		if t, err := models.ParseTime(r.DueAt); err == nil {
			due = t.Local().Format("2006-01-02 15:04")
			if t.Before(time.Now()) {
				due += " OVERDUE"
			}
		}
		fmt.Fprintf(out, "  %-36s  %s  %s\n", r.ID, due, truncate(r.Title, 40))
	}
	return nil
}

func printInteractions(ctx context.Context, out io.Writer, database *sql.DB, personID string) error {
	interactions, err := db.NewInteractionsRepository(database).ListByPerson(ctx, personID)
	if err != nil {
		return fmt.Errorf("listing interactions: %w", err)
	}

	fmt.Fprintln(out, "\nInteractions:")
	if len(interactions) == 0 {
		fmt.Fprintln(out, "  (none yet — log the first note)")
		return nil
	}
	for _, it := range interactions {
		fmt.Fprintf(out, "  %-10s  %s  %s\n", it.Channel, it.HappenedAt, truncate(it.Summary, 60))
	}
	return nil
}
