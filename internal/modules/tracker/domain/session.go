package domain

import (
	"fmt"
	"math"
	"time"

	apperrors "quill/internal/platform/errors"
)

type State string

const (
	StateIdle    State = "idle"
	StateOngoing State = "ongoing"
	StatePaused  State = "paused"
)

type TargetUnit string

const (
	TargetWords      TargetUnit = "words"
	TargetCharacters TargetUnit = "characters"
	TargetMinutes    TargetUnit = "minutes"
)

type Target struct {
	Unit  TargetUnit `json:"unit"`
	Value int        `json:"value"`
}

func (t Target) IsTime() bool { return t.Unit == TargetMinutes }

// Milestones are progress percentages that raise a notice once per session.
var Milestones = []int{50, 75, 90}

type TrackedFile struct {
	Path     string `json:"path"`
	Baseline int    `json:"baseline"`
	Delta    int    `json:"delta"`
}

// ActiveSession is the in-flight session. It is persisted between ticks so
// separate CLI invocations observe the same state.
type ActiveSession struct {
	SessionID   string        `json:"session_id"`
	State       State         `json:"state"`
	StartedAt   time.Time     `json:"started_at"`
	CountUnit   Unit          `json:"count_unit"`
	Target      Target        `json:"target"`
	Files       []TrackedFile `json:"files"`
	Count       int           `json:"count"`
	PausedAt    *time.Time    `json:"paused_at,omitempty"`
	PausedTotal time.Duration `json:"paused_total"`
	Fired       []int         `json:"milestones_fired,omitempty"`
}

// ActiveElapsed is wall-clock time since start minus every paused interval,
// including the current one.
func (a ActiveSession) ActiveElapsed(now time.Time) time.Duration {
	elapsed := now.Sub(a.StartedAt) - a.PausedTotal
	if a.PausedAt != nil {
		elapsed -= now.Sub(*a.PausedAt)
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Progress is the fraction of the target reached, not capped at 1.
func (a ActiveSession) Progress(now time.Time) float64 {
	if a.Target.Value <= 0 {
		return 0
	}
	if a.Target.IsTime() {
		return a.ActiveElapsed(now).Minutes() / float64(a.Target.Value)
	}
	return float64(a.Count) / float64(a.Target.Value)
}

// Measure updates per-file deltas from fresh counts. Files missing from
// counts keep their previous delta; shrinking files contribute zero.
func (a *ActiveSession) Measure(counts map[string]int) {
	total := 0
	for i := range a.Files {
		f := &a.Files[i]
		if n, ok := counts[f.Path]; ok {
			f.Delta = max(0, n-f.Baseline)
		}
		total += f.Delta
	}
	a.Count = total
}

// NextMilestone returns the highest milestone newly reached at progress and
// marks every milestone at or below it as fired.
func (a *ActiveSession) NextMilestone(progress float64) (int, bool) {
	percent := int(math.Floor(progress * 100))
	reached := 0
	for _, m := range Milestones {
		if percent >= m && !a.hasFired(m) {
			reached = m
		}
	}
	if reached == 0 {
		return 0, false
	}
	for _, m := range Milestones {
		if m <= reached && !a.hasFired(m) {
			a.Fired = append(a.Fired, m)
		}
	}
	return reached, true
}

func (a ActiveSession) hasFired(m int) bool {
	for _, f := range a.Fired {
		if f == m {
			return true
		}
	}
	return false
}

func (a *ActiveSession) Pause(now time.Time) error {
	switch a.State {
	case StatePaused:
		return apperrors.ErrSessionPaused
	case StateOngoing:
	default:
		return apperrors.ErrNoActiveSession
	}
	at := now
	a.PausedAt = &at
	a.State = StatePaused
	return nil
}

func (a *ActiveSession) Resume(now time.Time) error {
	if a.State != StatePaused || a.PausedAt == nil {
		return apperrors.ErrSessionNotPaused
	}
	a.PausedTotal += now.Sub(*a.PausedAt)
	a.PausedAt = nil
	a.State = StateOngoing
	return nil
}

type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeSkipped   Outcome = "skipped"
)

// Finished is the copy of a session handed to the journal.
type Finished struct {
	ID            string
	StartedAt     time.Time
	EndedAt       time.Time
	Count         int
	CountUnit     Unit
	Target        Target
	ActiveMinutes int
	Outcome       Outcome
	Files         []string
}

// Finish closes the session. A paused session is resumed at now first so the
// open pause is not counted as active time.
func (a ActiveSession) Finish(now time.Time, outcome Outcome) (Finished, error) {
	if outcome != OutcomeCompleted && outcome != OutcomeSkipped {
		return Finished{}, fmt.Errorf("%w: unknown outcome %q", apperrors.ErrInvalidInput, outcome)
	}
	if a.State == StatePaused {
		_ = a.Resume(now)
	}
	files := make([]string, 0, len(a.Files))
	for _, f := range a.Files {
		files = append(files, f.Path)
	}
	return Finished{
		ID:            a.SessionID,
		StartedAt:     a.StartedAt,
		EndedAt:       now,
		Count:         a.Count,
		CountUnit:     a.CountUnit,
		Target:        a.Target,
		ActiveMinutes: int(a.ActiveElapsed(now).Minutes()),
		Outcome:       outcome,
		Files:         files,
	}, nil
}

// Snapshot is a read-only view of the tracker for status displays.
type Snapshot struct {
	State         State
	SessionID     string
	StartedAt     time.Time
	Count         int
	CountUnit     Unit
	Target        Target
	Progress      float64
	ActiveElapsed time.Duration
	Files         []string
}

func (a ActiveSession) Snapshot(now time.Time) Snapshot {
	files := make([]string, 0, len(a.Files))
	for _, f := range a.Files {
		files = append(files, f.Path)
	}
	return Snapshot{
		State:         a.State,
		SessionID:     a.SessionID,
		StartedAt:     a.StartedAt,
		Count:         a.Count,
		CountUnit:     a.CountUnit,
		Target:        a.Target,
		Progress:      a.Progress(now),
		ActiveElapsed: a.ActiveElapsed(now),
		Files:         files,
	}
}
