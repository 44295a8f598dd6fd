// ABOUTME: Reminder notification scheduling interface
// ABOUTME: Platform alert delivery is a collaborator; this package defines the contract
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Alert describes a device-local notification for a reminder.
type Alert struct {
	ReminderID string
	PersonID   string
	Title      string
	Due        time.Time
}

// Scheduler schedules and cancels reminder alerts. Callers pair each
// reminder store write with the matching Schedule/CancelByReminder
// call; the pairing is not transactional with the database write.
type Scheduler interface {
	// Schedule registers an alert and returns an opaque handle.
	Schedule(ctx context.Context, alert Alert) (string, error)

	// CancelByReminder drops any pending alerts for a reminder.
	// Cancellation is best-effort: a stale alert is an annoyance, not a
	// data integrity problem, so implementations swallow errors.
	CancelByReminder(ctx context.Context, reminderID string)
}

// LogScheduler is the scheduler used outside a mobile shell: it logs
// what a platform scheduler would do and tracks pending alerts in
// memory so cancellation behaves observably.
type LogScheduler struct {
	logger *log.Logger

	mu      sync.Mutex
	pending map[string]Alert // handle -> alert
}

// NewLogScheduler creates a LogScheduler writing through logger.
func NewLogScheduler(logger *log.Logger) *LogScheduler {
	return &LogScheduler{
		logger:  logger,
		pending: make(map[string]Alert),
	}
}

func (s *LogScheduler) Schedule(_ context.Context, alert Alert) (string, error) {
	handle := uuid.New().String()

	s.mu.Lock()
	s.pending[handle] = alert
	s.mu.Unlock()

	s.logger.Info("scheduled reminder alert",
		"reminder", alert.ReminderID,
		"person", alert.PersonID,
		"due", alert.Due.Format(time.RFC3339),
	)
	return handle, nil
}

func (s *LogScheduler) CancelByReminder(_ context.Context, reminderID string) {
	s.mu.Lock()
	var cancelled int
	for handle, alert := range s.pending {
		if alert.ReminderID == reminderID {
			delete(s.pending, handle)
			cancelled++
		}
	}
	s.mu.Unlock()

	if cancelled > 0 {
		s.logger.Info("cancelled reminder alerts", "reminder", reminderID, "count", cancelled)
	}
}

// Pending returns the number of alerts currently scheduled.
func (s *LogScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
