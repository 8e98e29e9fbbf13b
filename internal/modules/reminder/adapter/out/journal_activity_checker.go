package out

import (
	"context"
	"time"

	journalin "quill/internal/modules/journal/port/in"
	reminderout "quill/internal/modules/reminder/port/out"
)

type JournalActivityChecker struct {
	journal journalin.Usecase
}

func NewJournalActivityChecker(journal journalin.Usecase) reminderout.ActivityChecker {
	return JournalActivityChecker{journal: journal}
}

func (c JournalActivityChecker) CompletedSince(ctx context.Context, t time.Time) (bool, error) {
	return c.journal.CompletedSince(ctx, t)
}
