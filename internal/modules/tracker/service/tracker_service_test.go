package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"quill/internal/modules/tracker/domain"
	trackerout "quill/internal/modules/tracker/port/out"
	"quill/internal/modules/tracker/service"
	apperrors "quill/internal/platform/errors"
	"quill/internal/platform/logging"
	"quill/internal/platform/notify"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time          { return c.now }
func (c *stepClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type fixedID struct{}

func (fixedID) New() string { return "sess-1" }

type fakeReader struct {
	files  map[string]string
	broken map[string]bool
}

func (r *fakeReader) set(path string, n int)    { r.files[path] = strings.Repeat("word ", n) }
func (r *fakeReader) fail(path string, on bool) { r.broken[path] = on }

func (r *fakeReader) Read(_ context.Context, path string) (string, error) {
	if r.broken[path] {
		return "", fmt.Errorf("disk on fire")
	}
	text, ok := r.files[path]
	if !ok {
		return "", fmt.Errorf("missing %s", path)
	}
	return text, nil
}

type memoryActive struct {
	session *domain.ActiveSession
}

func (m *memoryActive) SaveActive(_ context.Context, s domain.ActiveSession) error {
	m.session = &s
	return nil
}

func (m *memoryActive) LoadActive(context.Context) (domain.ActiveSession, error) {
	if m.session == nil {
		return domain.ActiveSession{}, apperrors.ErrNoActiveSession
	}
	s := *m.session
	s.Files = append([]domain.TrackedFile(nil), m.session.Files...)
	s.Fired = append([]int(nil), m.session.Fired...)
	return s, nil
}

func (m *memoryActive) ClearActive(context.Context) error {
	m.session = nil
	return nil
}

type fakeTargets struct {
	target domain.Target
	err    error
}

func (f fakeTargets) Target(context.Context) (domain.Target, domain.Unit, error) {
	return f.target, domain.UnitWords, f.err
}

type fakeRecorder struct {
	sessions []domain.Finished
	events   []string
}

func (f *fakeRecorder) Record(_ context.Context, s domain.Finished) (trackerout.Recorded, error) {
	f.sessions = append(f.sessions, s)
	return trackerout.Recorded{StreakCurrent: len(f.sessions)}, nil
}

func (f *fakeRecorder) Log(_ context.Context, _ string, event, _ string) error {
	f.events = append(f.events, event)
	return nil
}

type fakeScheduler struct {
	armed bool
}

func (f *fakeScheduler) Start(time.Duration, func()) { f.armed = true }
func (f *fakeScheduler) Stop()                       { f.armed = false }

type recordingNotifier struct {
	mu      sync.Mutex
	notices []notify.Notice
}

func (r *recordingNotifier) Notify(n notify.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recordingNotifier) kinds(kind notify.Kind) []notify.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notify.Notice
	for _, n := range r.notices {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

type harness struct {
	svc       *service.TrackerService
	clock     *stepClock
	reader    *fakeReader
	active    *memoryActive
	recorder  *fakeRecorder
	scheduler *fakeScheduler
	notifier  *recordingNotifier
}

func newHarness(target domain.Target, targetErr error) *harness {
	h := &harness{
		clock:     &stepClock{now: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)},
		reader:    &fakeReader{files: map[string]string{}, broken: map[string]bool{}},
		active:    &memoryActive{},
		recorder:  &fakeRecorder{},
		scheduler: &fakeScheduler{},
		notifier:  &recordingNotifier{},
	}
	h.svc = service.NewTrackerService(service.Deps{
		Clock:     h.clock,
		IDs:       fixedID{},
		Reader:    h.reader,
		Active:    h.active,
		Targets:   fakeTargets{target: target, err: targetErr},
		Recorder:  h.recorder,
		Scheduler: h.scheduler,
		Notifier:  h.notifier,
		Logger:    logging.Discard(),
		Interval:  2 * time.Second,
	})
	return h
}

func TestStartWithoutProfileIsRejectedWithNotice(t *testing.T) {
	t.Parallel()
	h := newHarness(domain.Target{}, apperrors.ErrNoActiveProfile)
	snap, err := h.svc.Start(context.Background(), []string{"draft.md"})
	if !errors.Is(err, apperrors.ErrNoActiveProfile) {
		t.Fatalf("expected no active profile, got %v", err)
	}
	if snap.State != domain.StateIdle || h.active.session != nil || h.scheduler.armed {
		t.Fatalf("no state may change without a profile")
	}
	if len(h.notifier.kinds(notify.KindWarning)) != 1 {
		t.Fatalf("expected a warning notice, got %+v", h.notifier.notices)
	}
}

func TestPollFiresMilestonesAndCompletesOnce(t *testing.T) {
	t.Parallel()
	h := newHarness(domain.Target{Unit: domain.TargetWords, Value: 100}, nil)
	ctx := context.Background()
	h.reader.set("draft.md", 100)

	if _, err := h.svc.Start(ctx, []string{"draft.md", "draft.md", "new.md"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !h.scheduler.armed {
		t.Fatalf("start must arm polling")
	}
	if _, err := h.svc.Start(ctx, []string{"draft.md"}); !errors.Is(err, apperrors.ErrActiveSessionExists) {
		t.Fatalf("expected active session exists, got %v", err)
	}
	if got := len(h.active.session.Files); got != 2 {
		t.Fatalf("duplicate files must collapse, got %d", got)
	}

	h.reader.set("draft.md", 160)
	if snap, err := h.svc.Poll(ctx); err != nil || snap.Count != 60 {
		t.Fatalf("poll: %+v %v", snap, err)
	}
	h.reader.set("new.md", 35)
	if _, err := h.svc.Poll(ctx); err != nil {
		t.Fatalf("poll: %v", err)
	}
	milestones := h.notifier.kinds(notify.KindMilestone)
	if len(milestones) != 2 || !strings.HasPrefix(milestones[0].Title, "50%") || !strings.HasPrefix(milestones[1].Title, "90%") {
		t.Fatalf("expected 50%% then 90%% notices, got %+v", milestones)
	}

	h.reader.set("draft.md", 190)
	snap, err := h.svc.Poll(ctx)
	if err != nil {
		t.Fatalf("completing poll: %v", err)
	}
	if snap.State != domain.StateIdle || len(h.recorder.sessions) != 1 {
		t.Fatalf("expected auto completion, got %+v", snap)
	}
	done := h.recorder.sessions[0]
	if done.Count != 125 || done.Outcome != domain.OutcomeCompleted || done.Target.Value != 100 {
		t.Fatalf("unexpected recorded session %+v", done)
	}
	if h.scheduler.armed {
		t.Fatalf("completion must cancel polling")
	}

	for i := 0; i < 3; i++ {
		snap, err := h.svc.Poll(ctx)
		if err != nil || snap.State != domain.StateIdle {
			t.Fatalf("later ticks must find the tracker idle: %+v %v", snap, err)
		}
	}
	if len(h.recorder.sessions) != 1 {
		t.Fatalf("completion must happen exactly once, got %d", len(h.recorder.sessions))
	}
	if got := len(h.notifier.kinds(notify.KindMilestone)); got != 2 {
		t.Fatalf("no milestone after completion, got %d", got)
	}
}

func TestPauseResumeExcludesPausedTimeFromTimeTarget(t *testing.T) {
	t.Parallel()
	h := newHarness(domain.Target{Unit: domain.TargetMinutes, Value: 10}, nil)
	ctx := context.Background()
	h.reader.set("draft.md", 0)

	if _, err := h.svc.Start(ctx, []string{"draft.md"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.clock.advance(4 * time.Minute)
	if _, err := h.svc.Pause(ctx); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if h.scheduler.armed {
		t.Fatalf("pause must cancel polling")
	}
	h.clock.advance(30 * time.Minute)
	if snap, err := h.svc.Poll(ctx); err != nil || snap.State != domain.StatePaused {
		t.Fatalf("paused poll must not progress: %+v %v", snap, err)
	}
	if _, err := h.svc.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if !h.scheduler.armed {
		t.Fatalf("resume must re-arm polling")
	}
	h.clock.advance(5 * time.Minute)
	if snap, err := h.svc.Poll(ctx); err != nil || snap.State != domain.StateOngoing {
		t.Fatalf("nine active minutes must not complete: %+v %v", snap, err)
	}
	h.clock.advance(time.Minute)
	if snap, err := h.svc.Poll(ctx); err != nil || snap.State != domain.StateIdle {
		t.Fatalf("ten active minutes must complete: %+v %v", snap, err)
	}
	if got := h.recorder.sessions[0].ActiveMinutes; got != 10 {
		t.Fatalf("expected 10 active minutes, got %d", got)
	}
}

func TestPollReadErrorKeepsCount(t *testing.T) {
	t.Parallel()
	h := newHarness(domain.Target{Unit: domain.TargetWords, Value: 500}, nil)
	ctx := context.Background()
	h.reader.set("draft.md", 10)
	if _, err := h.svc.Start(ctx, []string{"draft.md"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.reader.set("draft.md", 50)
	if _, err := h.svc.Poll(ctx); err != nil {
		t.Fatalf("poll: %v", err)
	}
	h.reader.fail("draft.md", true)
	snap, err := h.svc.Poll(ctx)
	if err != nil {
		t.Fatalf("read errors must be swallowed: %v", err)
	}
	if snap.Count != 40 || snap.State != domain.StateOngoing {
		t.Fatalf("count must survive a failed read: %+v", snap)
	}
}

func TestSkipAndManualComplete(t *testing.T) {
	t.Parallel()
	h := newHarness(domain.Target{Unit: domain.TargetWords, Value: 500}, nil)
	ctx := context.Background()
	h.reader.set("draft.md", 0)

	if _, err := h.svc.Start(ctx, []string{"draft.md"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := h.svc.Pause(ctx); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if _, err := h.svc.Skip(ctx); err != nil {
		t.Fatalf("skip from paused: %v", err)
	}
	if h.recorder.sessions[0].Outcome != domain.OutcomeSkipped {
		t.Fatalf("expected skipped, got %+v", h.recorder.sessions[0])
	}
	if _, err := h.svc.Complete(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("complete while idle: %v", err)
	}

	if _, err := h.svc.Start(ctx, []string{"draft.md"}); err != nil {
		t.Fatalf("restart: %v", err)
	}
	h.reader.set("draft.md", 42)
	if _, err := h.svc.Complete(ctx); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got := h.recorder.sessions[1]; got.Count != 42 || got.Outcome != domain.OutcomeCompleted {
		t.Fatalf("manual completion must measure first, got %+v", got)
	}
	want := []string{"start", "pause", "skip", "start", "complete"}
	if strings.Join(h.recorder.events, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected lifecycle log %v", h.recorder.events)
	}
}
