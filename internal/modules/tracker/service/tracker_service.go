package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"quill/internal/modules/tracker/domain"
	trackerout "quill/internal/modules/tracker/port/out"
	"quill/internal/platform/clock"
	apperrors "quill/internal/platform/errors"
	"quill/internal/platform/id"
	"quill/internal/platform/notify"
)

const (
	eventStart     = "start"
	eventPause     = "pause"
	eventResume    = "resume"
	eventMilestone = "milestone"
	eventComplete  = "complete"
	eventSkip      = "skip"
)

// TrackerService drives one writing session at a time. Every transition
// reloads the persisted active session, so it is safe to call from separate
// processes as long as calls inside one process run on the same loop.
type TrackerService struct {
	clock     clock.Clock
	ids       id.Generator
	reader    trackerout.ContentReader
	active    trackerout.ActiveSessionStore
	targets   trackerout.TargetSource
	recorder  trackerout.SessionRecorder
	scheduler trackerout.PollScheduler
	notifier  notify.Notifier
	logger    hclog.Logger
	interval  time.Duration
}

type Deps struct {
	Clock     clock.Clock
	IDs       id.Generator
	Reader    trackerout.ContentReader
	Active    trackerout.ActiveSessionStore
	Targets   trackerout.TargetSource
	Recorder  trackerout.SessionRecorder
	Scheduler trackerout.PollScheduler
	Notifier  notify.Notifier
	Logger    hclog.Logger
	Interval  time.Duration
}

func NewTrackerService(deps Deps) *TrackerService {
	return &TrackerService{
		clock:     deps.Clock,
		ids:       deps.IDs,
		reader:    deps.Reader,
		active:    deps.Active,
		targets:   deps.Targets,
		recorder:  deps.Recorder,
		scheduler: deps.Scheduler,
		notifier:  deps.Notifier,
		logger:    deps.Logger,
		interval:  deps.Interval,
	}
}

func (s *TrackerService) Start(ctx context.Context, files []string) (domain.Snapshot, error) {
	target, unit, err := s.targets.Target(ctx)
	if errors.Is(err, apperrors.ErrNoActiveProfile) {
		s.notifier.Notify(notify.Notice{
			Kind:    notify.KindWarning,
			Title:   "No writing profile",
			Message: "run onboarding to set a goal before starting a session",
		})
		return domain.Snapshot{State: domain.StateIdle}, err
	}
	if err != nil {
		return domain.Snapshot{}, err
	}
	if _, err := s.active.LoadActive(ctx); err == nil {
		return domain.Snapshot{}, apperrors.ErrActiveSessionExists
	} else if !errors.Is(err, apperrors.ErrNoActiveSession) {
		return domain.Snapshot{}, err
	}

	tracked := make([]domain.TrackedFile, 0, len(files))
	seen := map[string]struct{}{}
	for _, path := range files {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		baseline := 0
		if text, err := s.reader.Read(ctx, path); err != nil {
			s.logger.Debug("baseline read failed, starting from zero", "path", path, "error", err)
		} else {
			baseline = domain.Count(text, unit)
		}
		tracked = append(tracked, domain.TrackedFile{Path: path, Baseline: baseline})
	}
	if len(tracked) == 0 {
		return domain.Snapshot{}, fmt.Errorf("%w: at least one file is required", apperrors.ErrInvalidInput)
	}

	now := s.clock.Now()
	active := domain.ActiveSession{
		SessionID: s.ids.New(),
		State:     domain.StateOngoing,
		StartedAt: now,
		CountUnit: unit,
		Target:    target,
		Files:     tracked,
	}
	if err := s.active.SaveActive(ctx, active); err != nil {
		return domain.Snapshot{}, err
	}
	s.log(ctx, active.SessionID, eventStart, fmt.Sprintf("target %d %s", target.Value, target.Unit))
	s.arm()
	s.notifier.Notify(notify.Notice{
		Kind:    notify.KindInfo,
		Title:   "Session started",
		Message: fmt.Sprintf("goal: %d %s", target.Value, target.Unit),
	})
	return active.Snapshot(now), nil
}

func (s *TrackerService) Pause(ctx context.Context) (domain.Snapshot, error) {
	active, err := s.active.LoadActive(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	s.scheduler.Stop()
	now := s.clock.Now()
	if err := active.Pause(now); err != nil {
		if active.State == domain.StateOngoing {
			s.arm()
		}
		return domain.Snapshot{}, err
	}
	if err := s.active.SaveActive(ctx, active); err != nil {
		return domain.Snapshot{}, err
	}
	s.log(ctx, active.SessionID, eventPause, "")
	return active.Snapshot(now), nil
}

func (s *TrackerService) Resume(ctx context.Context) (domain.Snapshot, error) {
	active, err := s.active.LoadActive(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	now := s.clock.Now()
	if err := active.Resume(now); err != nil {
		return domain.Snapshot{}, err
	}
	if err := s.active.SaveActive(ctx, active); err != nil {
		return domain.Snapshot{}, err
	}
	s.log(ctx, active.SessionID, eventResume, "")
	s.arm()
	return active.Snapshot(now), nil
}

// Poll re-measures every tracked file, raises milestone notices and
// completes the session once the target is reached. It is a no-op when no
// session is ongoing.
func (s *TrackerService) Poll(ctx context.Context) (domain.Snapshot, error) {
	active, err := s.active.LoadActive(ctx)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		s.scheduler.Stop()
		return domain.Snapshot{State: domain.StateIdle}, nil
	}
	if err != nil {
		return domain.Snapshot{}, err
	}
	now := s.clock.Now()
	if active.State != domain.StateOngoing {
		return active.Snapshot(now), nil
	}

	s.measure(ctx, &active)
	progress := active.Progress(now)
	if milestone, ok := active.NextMilestone(progress); ok && progress < 1 {
		s.log(ctx, active.SessionID, eventMilestone, fmt.Sprintf("%d%%", milestone))
		s.notifier.Notify(notify.Notice{
			Kind:    notify.KindMilestone,
			Title:   fmt.Sprintf("%d%% there", milestone),
			Message: fmt.Sprintf("%d of %d %s", s.progressValue(active, now), active.Target.Value, active.Target.Unit),
		})
	}
	if active.Target.Value > 0 && progress >= 1 {
		done, err := s.finish(ctx, active, domain.OutcomeCompleted)
		if err != nil {
			return domain.Snapshot{}, err
		}
		return done, nil
	}
	if err := s.active.SaveActive(ctx, active); err != nil {
		return domain.Snapshot{}, err
	}
	return active.Snapshot(now), nil
}

func (s *TrackerService) Complete(ctx context.Context) (domain.Snapshot, error) {
	active, err := s.active.LoadActive(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if active.State == domain.StateOngoing {
		s.measure(ctx, &active)
	}
	return s.finish(ctx, active, domain.OutcomeCompleted)
}

func (s *TrackerService) Skip(ctx context.Context) (domain.Snapshot, error) {
	active, err := s.active.LoadActive(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return s.finish(ctx, active, domain.OutcomeSkipped)
}

func (s *TrackerService) Status(ctx context.Context) (domain.Snapshot, error) {
	active, err := s.active.LoadActive(ctx)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		return domain.Snapshot{State: domain.StateIdle}, nil
	}
	if err != nil {
		return domain.Snapshot{}, err
	}
	return active.Snapshot(s.clock.Now()), nil
}

// Recover re-arms polling for a session left ongoing by an earlier process.
func (s *TrackerService) Recover(ctx context.Context) (domain.Snapshot, error) {
	snap, err := s.Status(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if snap.State == domain.StateOngoing {
		s.arm()
	}
	return snap, nil
}

// Shutdown cancels polling without touching the persisted session.
func (s *TrackerService) Shutdown() {
	s.scheduler.Stop()
}

func (s *TrackerService) finish(ctx context.Context, active domain.ActiveSession, outcome domain.Outcome) (domain.Snapshot, error) {
	s.scheduler.Stop()
	now := s.clock.Now()
	done, err := active.Finish(now, outcome)
	if err != nil {
		return domain.Snapshot{}, err
	}
	recorded, err := s.recorder.Record(ctx, done)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("record session: %w", err)
	}
	if err := s.active.ClearActive(ctx); err != nil {
		return domain.Snapshot{}, err
	}

	event, kind, title := eventComplete, notify.KindSuccess, "Session complete"
	if outcome == domain.OutcomeSkipped {
		event, kind, title = eventSkip, notify.KindInfo, "Session skipped"
	}
	detail := fmt.Sprintf("%d %s in %d min", done.Count, done.CountUnit, done.ActiveMinutes)
	s.log(ctx, done.ID, event, detail)
	message := detail
	if outcome == domain.OutcomeCompleted {
		message = fmt.Sprintf("%s, streak %d", detail, recorded.StreakCurrent)
	}
	s.notifier.Notify(notify.Notice{Kind: kind, Title: title, Message: message})

	snap := active.Snapshot(now)
	snap.State = domain.StateIdle
	return snap, nil
}

func (s *TrackerService) measure(ctx context.Context, active *domain.ActiveSession) {
	counts := make(map[string]int, len(active.Files))
	for _, f := range active.Files {
		text, err := s.reader.Read(ctx, f.Path)
		if err != nil {
			s.logger.Warn("poll read failed, keeping previous count", "path", f.Path, "error", err)
			continue
		}
		counts[f.Path] = domain.Count(text, active.CountUnit)
	}
	active.Measure(counts)
}

func (s *TrackerService) progressValue(active domain.ActiveSession, now time.Time) int {
	if active.Target.IsTime() {
		return int(active.ActiveElapsed(now).Minutes())
	}
	return active.Count
}

func (s *TrackerService) arm() {
	s.scheduler.Start(s.interval, func() {
		if _, err := s.Poll(context.Background()); err != nil {
			s.logger.Warn("poll failed", "error", err)
		}
	})
}

func (s *TrackerService) log(ctx context.Context, sessionID, event, detail string) {
	if err := s.recorder.Log(ctx, sessionID, event, detail); err != nil {
		s.logger.Warn("append session log", "event", event, "error", err)
	}
}
