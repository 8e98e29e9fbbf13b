package out

import (
	"context"
	"time"

	"quill/internal/modules/reminder/domain"
)

type ReminderStore interface {
	List(ctx context.Context) ([]domain.Reminder, error)
	// Update replaces the stored reminders with the result of fn in one
	// read-modify-write.
	Update(ctx context.Context, fn func([]domain.Reminder) ([]domain.Reminder, error)) error
}

type Timer interface {
	Stop()
}

// Timers runs fn once after d. Callbacks must be serialized with every other
// call into the scheduler.
type Timers interface {
	After(d time.Duration, fn func()) Timer
}

// ActivityChecker reports whether a qualifying session finished at or after t.
type ActivityChecker interface {
	CompletedSince(ctx context.Context, t time.Time) (bool, error)
}

// NoteStarter creates a note from a template and starts a session on it.
type NoteStarter interface {
	StartFromTemplate(ctx context.Context, templateID string) (string, error)
}
