package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"quill/internal/modules/reminder/domain"
	reminderout "quill/internal/modules/reminder/port/out"
	"quill/internal/platform/clock"
	apperrors "quill/internal/platform/errors"
	"quill/internal/platform/id"
	"quill/internal/platform/notify"
)

// Notice action prefixes. The reminder id follows the colon.
const (
	ActionSnooze      = "reminder-snooze:"
	ActionAcknowledge = "reminder-ack:"
)

type Upcoming struct {
	Reminder domain.Reminder
	At       time.Time
	OK       bool
}

type ReminderService struct {
	clock    clock.Clock
	ids      id.Generator
	store    reminderout.ReminderStore
	timers   reminderout.Timers
	activity reminderout.ActivityChecker
	notes    reminderout.NoteStarter
	notifier notify.Notifier
	logger   hclog.Logger

	mu      sync.Mutex
	running bool
	ctx     context.Context
	fires   map[string]reminderout.Timer
	snoozes map[string]reminderout.Timer
	nudges  map[string]reminderout.Timer
}

func NewReminderService(
	clock clock.Clock,
	ids id.Generator,
	store reminderout.ReminderStore,
	timers reminderout.Timers,
	activity reminderout.ActivityChecker,
	notes reminderout.NoteStarter,
	notifier notify.Notifier,
	logger hclog.Logger,
) *ReminderService {
	return &ReminderService{
		clock:    clock,
		ids:      ids,
		store:    store,
		timers:   timers,
		activity: activity,
		notes:    notes,
		notifier: notifier,
		logger:   logger,
		fires:    map[string]reminderout.Timer{},
		snoozes:  map[string]reminderout.Timer{},
		nudges:   map[string]reminderout.Timer{},
	}
}

func (s *ReminderService) List(ctx context.Context) ([]domain.Reminder, error) {
	return s.store.List(ctx)
}

func (s *ReminderService) Get(ctx context.Context, reminderID string) (domain.Reminder, error) {
	reminders, err := s.store.List(ctx)
	if err != nil {
		return domain.Reminder{}, err
	}
	for _, r := range reminders {
		if r.ID == reminderID {
			return r, nil
		}
	}
	return domain.Reminder{}, fmt.Errorf("%w: reminder %s", apperrors.ErrNotFound, reminderID)
}

func (s *ReminderService) Add(ctx context.Context, r domain.Reminder) (domain.Reminder, error) {
	if r.ID == "" {
		r.ID = s.ids.New()
	}
	if err := r.Validate(); err != nil {
		return domain.Reminder{}, err
	}
	err := s.store.Update(ctx, func(reminders []domain.Reminder) ([]domain.Reminder, error) {
		for _, existing := range reminders {
			if existing.ID == r.ID {
				return nil, fmt.Errorf("%w: reminder %s already exists", apperrors.ErrInvalidSettings, r.ID)
			}
		}
		return append(reminders, r), nil
	})
	if err != nil {
		return domain.Reminder{}, err
	}
	return r, s.rescheduleIfRunning(ctx)
}

func (s *ReminderService) Remove(ctx context.Context, reminderID string) error {
	err := s.store.Update(ctx, func(reminders []domain.Reminder) ([]domain.Reminder, error) {
		for i, r := range reminders {
			if r.ID == reminderID {
				return append(reminders[:i], reminders[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%w: reminder %s", apperrors.ErrNotFound, reminderID)
	})
	if err != nil {
		return err
	}
	return s.rescheduleIfRunning(ctx)
}

func (s *ReminderService) SetEnabled(ctx context.Context, reminderID string, enabled bool) (domain.Reminder, error) {
	var out domain.Reminder
	err := s.store.Update(ctx, func(reminders []domain.Reminder) ([]domain.Reminder, error) {
		for i := range reminders {
			if reminders[i].ID == reminderID {
				reminders[i].Enabled = enabled
				out = reminders[i]
				return reminders, nil
			}
		}
		return nil, fmt.Errorf("%w: reminder %s", apperrors.ErrNotFound, reminderID)
	})
	if err != nil {
		return domain.Reminder{}, err
	}
	return out, s.rescheduleIfRunning(ctx)
}

// Upcoming lists every reminder with its next fire time, soonest first.
// Reminders that will not fire sort last.
func (s *ReminderService) Upcoming(ctx context.Context) ([]Upcoming, error) {
	reminders, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	out := make([]Upcoming, 0, len(reminders))
	for _, r := range reminders {
		at, ok := domain.NextFire(r, now)
		out = append(out, Upcoming{Reminder: r, At: at, OK: ok})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OK != out[j].OK {
			return out[i].OK
		}
		return out[i].At.Before(out[j].At)
	})
	return out, nil
}

// Start arms a fire timer for every enabled reminder. ctx is used by timer
// callbacks until Stop.
func (s *ReminderService) Start(ctx context.Context) error {
	s.mu.Lock()
	s.running = true
	s.ctx = ctx
	s.mu.Unlock()
	return s.Reschedule(ctx)
}

// Stop cancels every pending fire, snooze and second nudge.
func (s *ReminderService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	for _, group := range []map[string]reminderout.Timer{s.fires, s.snoozes, s.nudges} {
		for key, t := range group {
			t.Stop()
			delete(group, key)
		}
	}
}

func (s *ReminderService) rescheduleIfRunning(ctx context.Context) error {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if !running {
		return nil
	}
	return s.Reschedule(ctx)
}

// Reschedule re-arms fire timers from the stored reminders. Pending snoozes
// and second nudges survive only for reminders that are still enabled.
func (s *ReminderService) Reschedule(ctx context.Context) error {
	reminders, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	for key, t := range s.fires {
		t.Stop()
		delete(s.fires, key)
	}
	enabled := map[string]struct{}{}
	now := s.clock.Now()
	for _, r := range reminders {
		if !r.Enabled {
			continue
		}
		enabled[r.ID] = struct{}{}
		s.armLocked(r, now)
	}
	for _, group := range []map[string]reminderout.Timer{s.snoozes, s.nudges} {
		for key, t := range group {
			if _, ok := enabled[key]; !ok {
				t.Stop()
				delete(group, key)
			}
		}
	}
	return nil
}

func (s *ReminderService) armLocked(r domain.Reminder, after time.Time) {
	at, ok := domain.NextFire(r, after)
	if !ok {
		s.logger.Debug("reminder not scheduled", "reminder", r.ID)
		return
	}
	reminderID := r.ID
	s.fires[reminderID] = s.timers.After(at.Sub(s.clock.Now()), func() { s.fire(reminderID) })
	s.logger.Debug("reminder scheduled", "reminder", reminderID, "at", at)
}

func (s *ReminderService) callbackContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

func (s *ReminderService) fire(reminderID string) {
	ctx := s.callbackContext()
	s.mu.Lock()
	delete(s.fires, reminderID)
	running := s.running
	s.mu.Unlock()
	if !running {
		return
	}
	r, err := s.Get(ctx, reminderID)
	if err != nil || !r.Enabled {
		return
	}
	firedAt := s.deliver(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	// Skip the occurrence that just fired.
	s.armLocked(r, firedAt.Add(time.Minute))
}

// deliver shows the reminder and arms its second nudge. Scheduled fires and
// snoozed reminders both go through here.
func (s *ReminderService) deliver(r domain.Reminder) time.Time {
	firedAt := s.clock.Now()
	s.notifier.Notify(reminderNotice(r, r.Label))
	if r.SecondOffsetMinutes <= 0 {
		return firedAt
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return firedAt
	}
	if t, ok := s.nudges[r.ID]; ok {
		t.Stop()
	}
	reminderID := r.ID
	offset := time.Duration(r.SecondOffsetMinutes) * time.Minute
	s.nudges[reminderID] = s.timers.After(offset, func() { s.secondNudge(reminderID, firedAt) })
	return firedAt
}

func (s *ReminderService) secondNudge(reminderID string, firedAt time.Time) {
	ctx := s.callbackContext()
	s.mu.Lock()
	delete(s.nudges, reminderID)
	running := s.running
	s.mu.Unlock()
	if !running {
		return
	}
	wrote, err := s.activity.CompletedSince(ctx, firedAt)
	if err != nil {
		s.logger.Warn("check activity for second reminder", "reminder", reminderID, "error", err)
		return
	}
	if wrote {
		return
	}
	r, err := s.Get(ctx, reminderID)
	if err != nil || !r.Enabled {
		return
	}
	s.notifier.Notify(reminderNotice(r, "still time for "+strings.ToLower(r.Label)))
}

// Snooze re-shows the reminder after minutes (DefaultSnoozeMinutes when not
// positive) and returns when it will fire.
func (s *ReminderService) Snooze(ctx context.Context, reminderID string, minutes int) (time.Time, error) {
	if minutes <= 0 {
		minutes = domain.DefaultSnoozeMinutes
	}
	r, err := s.Get(ctx, reminderID)
	if err != nil {
		return time.Time{}, err
	}
	delay := time.Duration(minutes) * time.Minute
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.snoozes[r.ID]; ok {
		t.Stop()
	}
	s.snoozes[r.ID] = s.timers.After(delay, func() { s.snoozed(reminderID) })
	return s.clock.Now().Add(delay), nil
}

func (s *ReminderService) snoozed(reminderID string) {
	ctx := s.callbackContext()
	s.mu.Lock()
	delete(s.snoozes, reminderID)
	s.mu.Unlock()
	r, err := s.Get(ctx, reminderID)
	if err != nil {
		return
	}
	s.deliver(r)
}

// Acknowledge cancels pending follow-ups for the reminder, creates a note from
// its template and starts a session on it.
func (s *ReminderService) Acknowledge(ctx context.Context, reminderID string) (string, error) {
	r, err := s.Get(ctx, reminderID)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	for _, group := range []map[string]reminderout.Timer{s.snoozes, s.nudges} {
		if t, ok := group[r.ID]; ok {
			t.Stop()
			delete(group, r.ID)
		}
	}
	s.mu.Unlock()
	return s.notes.StartFromTemplate(ctx, r.Template())
}

// HandleAction dispatches a notice action id produced by reminderNotice.
func (s *ReminderService) HandleAction(ctx context.Context, action string) (string, error) {
	switch {
	case strings.HasPrefix(action, ActionSnooze):
		reminderID := strings.TrimPrefix(action, ActionSnooze)
		at, err := s.Snooze(ctx, reminderID, 0)
		if err != nil {
			return "", err
		}
		return "snoozed until " + at.Format("15:04"), nil
	case strings.HasPrefix(action, ActionAcknowledge):
		path, err := s.Acknowledge(ctx, strings.TrimPrefix(action, ActionAcknowledge))
		if err != nil {
			return "", err
		}
		return "writing in " + path, nil
	}
	return "", fmt.Errorf("%w: unknown reminder action %q", apperrors.ErrInvalidInput, action)
}

// Pending reports how many timers are armed, for status output.
func (s *ReminderService) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fires) + len(s.snoozes) + len(s.nudges)
}

func reminderNotice(r domain.Reminder, message string) notify.Notice {
	return notify.Notice{
		Kind:       notify.KindReminder,
		Title:      "Writing reminder",
		Message:    message,
		Persistent: true,
		Actions: []notify.Action{
			{ID: ActionAcknowledge + r.ID, Label: "Write now"},
			{ID: ActionSnooze + r.ID, Label: fmt.Sprintf("Snooze %dm", domain.DefaultSnoozeMinutes)},
		},
	}
}
