// ABOUTME: Data models for orbit entities
// ABOUTME: Defines Person, Interaction, and Reminder structs plus input shapes
package models

import "time"

// TimeLayout is the on-disk rendering of interaction and reminder
// timestamps: ISO-8601 with millisecond precision in UTC. It matches the
// strings the original mobile client wrote, so it sorts lexicographically.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// FormatTime renders t in the canonical sortable form.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a timestamp previously produced by FormatTime.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}

// Person is a tracked contact. People keep the original integer row ids;
// interactions and reminders use generated string ids (the two schemes
// are deliberately distinct, people predate the string-id scheme).
type Person struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Nickname  string `json:"nickname,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt int64  `json:"created_at"` // epoch ms
	UpdatedAt int64  `json:"updated_at"` // epoch ms
}

// NewPerson is the input shape for creating a person.
type NewPerson struct {
	FirstName string
	LastName  string
	Nickname  string
	Notes     string
}

// Interaction is a logged contact event with a person.
type Interaction struct {
	ID         string `json:"id"`
	PersonID   string `json:"person_id"`
	HappenedAt string `json:"happened_at"` // ISO-8601, sortable
	Channel    string `json:"channel"`
	Summary    string `json:"summary"`
}

// Channel constants for Interaction.Channel.
const (
	ChannelNote = "note"
	ChannelCall = "call"
	ChannelText = "text"
	ChannelMeet = "meet"
)

// Channels lists every valid interaction channel.
var Channels = []string{ChannelNote, ChannelCall, ChannelText, ChannelMeet}

// ValidChannel reports whether s is a known interaction channel.
func ValidChannel(s string) bool {
	for _, c := range Channels {
		if s == c {
			return true
		}
	}
	return false
}

// NewInteraction is the input shape for logging an interaction.
// HappenedAt defaults to the current time when empty.
type NewInteraction struct {
	PersonID   string
	Channel    string
	Summary    string
	HappenedAt string
}

// InteractionUpdate is a full replace of an interaction's mutable fields.
// Unlike ReminderUpdate there are no optional fields: every value is
// written as given.
type InteractionUpdate struct {
	Summary    string
	Channel    string
	HappenedAt string
	PersonID   string
}

// Reminder is a dated follow-up tied to a person.
type Reminder struct {
	ID       string `json:"id"`
	PersonID string `json:"person_id"`
	DueAt    string `json:"due_at"` // ISO-8601, sortable
	Title    string `json:"title"`
	Notes    string `json:"notes,omitempty"`
	Done     bool   `json:"done"`
}

// NewReminder is the input shape for creating a reminder.
type NewReminder struct {
	PersonID string
	Title    string
	DueAt    string
	Notes    string
}

// ReminderUpdate replaces Title, DueAt, Notes, and PersonID
// unconditionally. Done is only written when non-nil; leaving it nil
// keeps the stored value. This partial contract is intentional and
// distinct from InteractionUpdate's full replace.
type ReminderUpdate struct {
	Title    string
	DueAt    string
	Notes    string
	PersonID string
	Done     *bool
}
