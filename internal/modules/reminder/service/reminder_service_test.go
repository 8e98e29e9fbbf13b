package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"quill/internal/modules/reminder/domain"
	reminderout "quill/internal/modules/reminder/port/out"
	"quill/internal/platform/civil"
	apperrors "quill/internal/platform/errors"
	"quill/internal/platform/logging"
	"quill/internal/platform/notify"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() { t.stopped = true }

// run fires the timer the way the loop would, once.
func (t *fakeTimer) run() {
	t.stopped = true
	t.fn()
}

type fakeTimers struct {
	armed []*fakeTimer
}

func (f *fakeTimers) After(d time.Duration, fn func()) reminderout.Timer {
	t := &fakeTimer{delay: d, fn: fn}
	f.armed = append(f.armed, t)
	return t
}

func (f *fakeTimers) live() []*fakeTimer {
	var out []*fakeTimer
	for _, t := range f.armed {
		if !t.stopped {
			out = append(out, t)
		}
	}
	return out
}

type memoryStore struct {
	reminders []domain.Reminder
}

func (m *memoryStore) List(context.Context) ([]domain.Reminder, error) {
	return append([]domain.Reminder(nil), m.reminders...), nil
}

func (m *memoryStore) Update(_ context.Context, fn func([]domain.Reminder) ([]domain.Reminder, error)) error {
	next, err := fn(append([]domain.Reminder(nil), m.reminders...))
	if err != nil {
		return err
	}
	m.reminders = next
	return nil
}

type fakeActivity struct{ wrote bool }

func (f *fakeActivity) CompletedSince(context.Context, time.Time) (bool, error) { return f.wrote, nil }

type fakeNotes struct{ started []string }

func (f *fakeNotes) StartFromTemplate(_ context.Context, templateID string) (string, error) {
	f.started = append(f.started, templateID)
	return "/vault/Writing/" + templateID + ".md", nil
}

type sequentialIDs struct{ n int }

func (s *sequentialIDs) New() string {
	s.n++
	return "r" + string(rune('0'+s.n))
}

type harness struct {
	svc      *ReminderService
	clock    *manualClock
	timers   *fakeTimers
	activity *fakeActivity
	notes    *fakeNotes
	notices  *[]notify.Notice
}

func newHarness(now time.Time) harness {
	h := harness{
		clock:    &manualClock{now: now},
		timers:   &fakeTimers{},
		activity: &fakeActivity{},
		notes:    &fakeNotes{},
		notices:  &[]notify.Notice{},
	}
	notices := h.notices
	h.svc = NewReminderService(h.clock, &sequentialIDs{}, &memoryStore{}, h.timers, h.activity, h.notes,
		notify.Func(func(n notify.Notice) { *notices = append(*notices, n) }), logging.Discard())
	return h
}

func daily(at civil.TimeOfDay, offset int) domain.Reminder {
	return domain.Reminder{
		Label:               "Evening pages",
		Days:                []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday},
		At:                  at,
		SecondOffsetMinutes: offset,
		Enabled:             true,
	}
}

func TestAddValidatesAndSchedulesWhenRunning(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC))
	if err := h.svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := h.svc.Add(ctx, domain.Reminder{Label: "no days", Enabled: true}); !errors.Is(err, apperrors.ErrInvalidSettings) {
		t.Fatalf("expected invalid settings, got %v", err)
	}
	r, err := h.svc.Add(ctx, daily(civil.TimeOfDay{Hour: 21}, 0))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	live := h.timers.live()
	if len(live) != 1 || live[0].delay != time.Hour {
		t.Fatalf("expected one timer in 1h, got %+v", live)
	}
	if _, err := h.svc.SetEnabled(ctx, r.ID, false); err != nil {
		t.Fatalf("disable: %v", err)
	}
	if len(h.timers.live()) != 0 {
		t.Fatalf("disabled reminder must not stay scheduled")
	}
	if err := h.svc.Remove(ctx, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFireNotifiesArmsSecondNudgeAndNextOccurrence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC))
	if _, err := h.svc.Add(ctx, daily(civil.TimeOfDay{Hour: 21}, 30)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := h.svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	first := h.timers.live()[0]
	h.clock.Set(time.Date(2026, 10, 16, 21, 0, 0, 0, time.UTC))
	first.run()

	if len(*h.notices) != 1 || !(*h.notices)[0].Persistent || len((*h.notices)[0].Actions) != 2 {
		t.Fatalf("expected persistent reminder notice, got %+v", *h.notices)
	}
	var nudge, next *fakeTimer
	for _, tm := range h.timers.live() {
		switch tm.delay {
		case 30 * time.Minute:
			nudge = tm
		case 24 * time.Hour:
			next = tm
		}
	}
	if nudge == nil || next == nil {
		t.Fatalf("expected second nudge and next occurrence, got %+v", h.timers.live())
	}

	h.clock.Set(time.Date(2026, 10, 16, 21, 30, 0, 0, time.UTC))
	nudge.run()
	if len(*h.notices) != 2 {
		t.Fatalf("expected second nudge notice when nothing was written, got %d", len(*h.notices))
	}
}

func TestSecondNudgeSuppressedAfterWriting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC))
	if _, err := h.svc.Add(ctx, daily(civil.TimeOfDay{Hour: 21}, 15)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := h.svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.clock.Set(time.Date(2026, 10, 16, 21, 0, 0, 0, time.UTC))
	h.timers.live()[0].run()
	h.activity.wrote = true
	for _, tm := range h.timers.live() {
		if tm.delay == 15*time.Minute {
			tm.run()
		}
	}
	if len(*h.notices) != 1 {
		t.Fatalf("second nudge must be suppressed, got %d notices", len(*h.notices))
	}
}

func TestReminderInsideDoNotDisturbIsNotScheduled(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC))
	r := daily(civil.TimeOfDay{Hour: 23, Minute: 45}, 0)
	r.DND = &domain.Window{Start: civil.TimeOfDay{Hour: 23, Minute: 30}, End: civil.TimeOfDay{Hour: 7}}
	if _, err := h.svc.Add(ctx, r); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := h.svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if h.svc.Pending() != 0 {
		t.Fatalf("expected nothing scheduled, got %d", h.svc.Pending())
	}
}

func TestSnoozeAndAcknowledgeActions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC))
	r := daily(civil.TimeOfDay{Hour: 21}, 20)
	r.TemplateID = "morning-pages"
	added, err := h.svc.Add(ctx, r)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := h.svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := h.svc.HandleAction(ctx, ActionSnooze+added.ID); err != nil {
		t.Fatalf("snooze: %v", err)
	}
	var snooze *fakeTimer
	for _, tm := range h.timers.live() {
		if tm.delay == domain.DefaultSnoozeMinutes*time.Minute {
			snooze = tm
		}
	}
	if snooze == nil {
		t.Fatalf("expected snooze timer")
	}
	snooze.run()
	if len(*h.notices) != 1 {
		t.Fatalf("expected snoozed reminder to show again")
	}

	msg, err := h.svc.HandleAction(ctx, ActionAcknowledge+added.ID)
	if err != nil {
		t.Fatalf("acknowledge: %v", err)
	}
	if len(h.notes.started) != 1 || h.notes.started[0] != "morning-pages" || msg == "" {
		t.Fatalf("expected note from reminder template, got %v %q", h.notes.started, msg)
	}
	if _, err := h.svc.HandleAction(ctx, "bogus"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown action, got %v", err)
	}

	h.svc.Stop()
	if h.svc.Pending() != 0 || len(h.timers.live()) != 0 {
		t.Fatalf("stop must cancel every timer")
	}
}

func TestSnoozedReminderArmsSecondNudge(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC))
	added, err := h.svc.Add(ctx, daily(civil.TimeOfDay{Hour: 21}, 25))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := h.svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := h.svc.Snooze(ctx, added.ID, 5); err != nil {
		t.Fatalf("snooze: %v", err)
	}
	var snooze *fakeTimer
	for _, tm := range h.timers.live() {
		if tm.delay == 5*time.Minute {
			snooze = tm
		}
	}
	if snooze == nil {
		t.Fatalf("expected snooze timer, got %+v", h.timers.live())
	}
	h.clock.Set(time.Date(2026, 10, 16, 20, 5, 0, 0, time.UTC))
	snooze.run()

	var nudge *fakeTimer
	for _, tm := range h.timers.live() {
		if tm.delay == 25*time.Minute {
			nudge = tm
		}
	}
	if nudge == nil {
		t.Fatalf("snoozed reminder must arm its second nudge, got %+v", h.timers.live())
	}
	h.clock.Set(time.Date(2026, 10, 16, 20, 30, 0, 0, time.UTC))
	nudge.run()
	if len(*h.notices) != 2 {
		t.Fatalf("expected snoozed notice and second nudge, got %d", len(*h.notices))
	}
}
