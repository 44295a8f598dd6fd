// ABOUTME: Tests for reminder CRUD, mark-done, and upcoming queries
// ABOUTME: Verifies due-date ordering, done filtering, and owner bumps
package db

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/orbit/models"
)

func setupReminderFixture(t *testing.T) (ctx context.Context, clock *testClock, people *PeopleRepository, reminders *RemindersRepository, rowID int64, personID string) {
	t.Helper()
	db := setupTestDB(t)
	ctx = context.Background()

	clock = newTestClock(1_700_000_000_000)
	people = NewPeopleRepository(db)
	people.now = clock.Now
	reminders = NewRemindersRepository(db)
	reminders.now = clock.Now

	var err error
	rowID, err = people.Insert(ctx, models.NewPerson{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)
	personID = strconv.FormatInt(rowID, 10)
	return
}

func TestUpcomingRemindersSortedByDueDate(t *testing.T) {
	ctx, _, _, reminders, _, personID := setupReminderFixture(t)

	// Inserted out of due-date order on purpose.
	r1, err := reminders.Insert(ctx, models.NewReminder{PersonID: personID, Title: "Second", DueAt: "2024-01-02T10:00:00.000Z"})
	require.NoError(t, err)
	r2, err := reminders.Insert(ctx, models.NewReminder{PersonID: personID, Title: "First", DueAt: "2024-01-01T10:00:00.000Z"})
	require.NoError(t, err)
	r3, err := reminders.Insert(ctx, models.NewReminder{PersonID: personID, Title: "Third", DueAt: "2024-01-03T10:00:00.000Z"})
	require.NoError(t, err)

	list, err := reminders.ListUpcomingByPerson(ctx, personID, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{r2, r1, r3}, reminderIDs(list), "sorted by due date, not insertion order")
	assert.Equal(t, []string{"First", "Second", "Third"}, reminderTitles(list))
}

func TestMarkDoneHidesFromUpcoming(t *testing.T) {
	ctx, clock, people, reminders, rowID, personID := setupReminderFixture(t)

	_, err := reminders.Insert(ctx, models.NewReminder{PersonID: personID, Title: "First", DueAt: "2024-01-01T10:00:00.000Z"})
	require.NoError(t, err)
	mid, err := reminders.Insert(ctx, models.NewReminder{PersonID: personID, Title: "Second", DueAt: "2024-01-02T10:00:00.000Z"})
	require.NoError(t, err)
	_, err = reminders.Insert(ctx, models.NewReminder{PersonID: personID, Title: "Third", DueAt: "2024-01-03T10:00:00.000Z"})
	require.NoError(t, err)

	before, err := people.Get(ctx, rowID)
	require.NoError(t, err)

	clock.Advance(5 * time.Second)
	require.NoError(t, reminders.MarkDone(ctx, mid, personID))

	after, err := people.Get(ctx, rowID)
	require.NoError(t, err)
	assert.Greater(t, after.UpdatedAt, before.UpdatedAt, "mark-done must bump owner updated_at")

	list, err := reminders.ListUpcomingByPerson(ctx, personID, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Third"}, reminderTitles(list), "done reminder hidden, order unaffected")

	// The row itself survives with done set.
	rem, err := reminders.Get(ctx, mid)
	require.NoError(t, err)
	require.NotNil(t, rem)
	assert.True(t, rem.Done)
	assert.Equal(t, "Second", rem.Title, "mark-done touches nothing else")
}

func TestReminderLifecycleBumpsOwner(t *testing.T) {
	ctx, clock, people, reminders, rowID, personID := setupReminderFixture(t)

	p0, err := people.Get(ctx, rowID)
	require.NoError(t, err)

	clock.Advance(5 * time.Second)
	rid, err := reminders.Insert(ctx, models.NewReminder{PersonID: personID, Title: "Ping", DueAt: "2024-01-01T10:00:00.000Z"})
	require.NoError(t, err)
	p1, err := people.Get(ctx, rowID)
	require.NoError(t, err)
	assert.Greater(t, p1.UpdatedAt, p0.UpdatedAt)

	clock.Advance(5 * time.Second)
	err = reminders.Update(ctx, rid, models.ReminderUpdate{
		Title: "Ping updated", DueAt: "2024-01-02T10:00:00.000Z", PersonID: personID,
	})
	require.NoError(t, err)
	p2, err := people.Get(ctx, rowID)
	require.NoError(t, err)
	assert.Greater(t, p2.UpdatedAt, p1.UpdatedAt)

	clock.Advance(5 * time.Second)
	require.NoError(t, reminders.MarkDone(ctx, rid, personID))
	p3, err := people.Get(ctx, rowID)
	require.NoError(t, err)
	assert.Greater(t, p3.UpdatedAt, p2.UpdatedAt)

	clock.Advance(5 * time.Second)
	require.NoError(t, reminders.Delete(ctx, rid, personID))
	p4, err := people.Get(ctx, rowID)
	require.NoError(t, err)
	assert.Greater(t, p4.UpdatedAt, p3.UpdatedAt)

	rem, err := reminders.Get(ctx, rid)
	require.NoError(t, err)
	assert.Nil(t, rem)
}

func TestReminderUpdatePartialDone(t *testing.T) {
	ctx, _, _, reminders, _, personID := setupReminderFixture(t)

	rid, err := reminders.Insert(ctx, models.NewReminder{PersonID: personID, Title: "Ping", DueAt: "2024-01-01T10:00:00.000Z"})
	require.NoError(t, err)
	require.NoError(t, reminders.MarkDone(ctx, rid, personID))

	// Omitting Done leaves the stored flag alone.
	err = reminders.Update(ctx, rid, models.ReminderUpdate{
		Title: "Renamed", DueAt: "2024-01-05T10:00:00.000Z", Notes: "soon", PersonID: personID,
	})
	require.NoError(t, err)

	rem, err := reminders.Get(ctx, rid)
	require.NoError(t, err)
	require.NotNil(t, rem)
	assert.True(t, rem.Done, "nil Done must not reset the flag")
	assert.Equal(t, "Renamed", rem.Title)
	assert.Equal(t, "soon", rem.Notes)

	// An explicit Done=false reopens the reminder.
	reopen := false
	err = reminders.Update(ctx, rid, models.ReminderUpdate{
		Title: "Renamed", DueAt: "2024-01-05T10:00:00.000Z", Notes: "soon", PersonID: personID, Done: &reopen,
	})
	require.NoError(t, err)

	rem, err = reminders.Get(ctx, rid)
	require.NoError(t, err)
	assert.False(t, rem.Done)

	list, err := reminders.ListUpcomingByPerson(ctx, personID, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Renamed"}, reminderTitles(list))
}

func TestUpcomingLimitTruncates(t *testing.T) {
	ctx, _, _, reminders, _, personID := setupReminderFixture(t)

	for i := 0; i < 4; i++ {
		day := strconv.Itoa(i + 1)
		_, err := reminders.Insert(ctx, models.NewReminder{
			PersonID: personID,
			Title:    "R" + day,
			DueAt:    "2024-01-0" + day + "T10:00:00.000Z",
		})
		require.NoError(t, err)
	}

	list, err := reminders.ListUpcomingByPerson(ctx, personID, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"R1", "R2"}, reminderTitles(list), "soonest due within the limit")
}

func TestReminderOperationsOnMissingRow(t *testing.T) {
	ctx, _, _, reminders, _, personID := setupReminderFixture(t)

	assert.ErrorIs(t, reminders.MarkDone(ctx, "nope", personID), ErrNotFound)
	assert.ErrorIs(t, reminders.Delete(ctx, "nope", personID), ErrNotFound)
	assert.ErrorIs(t, reminders.Update(ctx, "nope", models.ReminderUpdate{
		Title: "x", DueAt: "2024-01-01T10:00:00.000Z", PersonID: personID,
	}), ErrNotFound)

	rem, err := reminders.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, rem)
}

func TestInsertReminderUnknownPerson(t *testing.T) {
	db := setupTestDB(t)
	reminders := NewRemindersRepository(db)

	_, err := reminders.Insert(context.Background(), models.NewReminder{
		PersonID: "999", Title: "Orphan", DueAt: "2024-01-01T10:00:00.000Z",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForeignKeyViolation)
}

func reminderIDs(list []models.Reminder) []string {
	ids := make([]string, len(list))
	for i, r := range list {
		ids[i] = r.ID
	}
	return ids
}

func reminderTitles(list []models.Reminder) []string {
	titles := make([]string, len(list))
	for i, r := range list {
		titles[i] = r.Title
	}
	return titles
}
