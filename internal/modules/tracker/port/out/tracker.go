package out

import (
	"context"
	"time"

	"quill/internal/modules/tracker/domain"
)

type ActiveSessionStore interface {
	SaveActive(ctx context.Context, session domain.ActiveSession) error
	LoadActive(ctx context.Context) (domain.ActiveSession, error)
	ClearActive(ctx context.Context) error
}

type ContentReader interface {
	Read(ctx context.Context, path string) (string, error)
}

// TargetSource resolves the active profile's target and the unit used to
// count text. It returns apperrors.ErrNoActiveProfile before onboarding.
type TargetSource interface {
	Target(ctx context.Context) (domain.Target, domain.Unit, error)
}

type Recorded struct {
	NotePath      string
	StreakCurrent int
}

// SessionRecorder hands finished sessions and lifecycle events to the
// journal.
type SessionRecorder interface {
	Record(ctx context.Context, session domain.Finished) (Recorded, error)
	Log(ctx context.Context, sessionID, event, detail string) error
}

// PollScheduler arms the repeating measurement tick. Stop must cancel any
// pending tick before it returns.
type PollScheduler interface {
	Start(interval time.Duration, tick func())
	Stop()
}
