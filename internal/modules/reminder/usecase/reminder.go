package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quill/internal/modules/reminder/domain"
	"quill/internal/modules/reminder/dto"
	reminderin "quill/internal/modules/reminder/port/in"
	"quill/internal/modules/reminder/service"
	"quill/internal/platform/civil"
	apperrors "quill/internal/platform/errors"
)

type Interactor struct {
	svc *service.ReminderService
}

func NewInteractor(svc *service.ReminderService) reminderin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Add(ctx context.Context, input dto.ReminderInput) (dto.ReminderOutput, error) {
	r, err := parseReminder(input)
	if err != nil {
		return dto.ReminderOutput{}, err
	}
	added, err := i.svc.Add(ctx, r)
	if err != nil {
		return dto.ReminderOutput{}, err
	}
	return toReminderOutput(added, nil), nil
}

func (i *Interactor) Remove(ctx context.Context, reminderID string) error {
	if strings.TrimSpace(reminderID) == "" {
		return fmt.Errorf("%w: reminder id is required", apperrors.ErrInvalidInput)
	}
	return i.svc.Remove(ctx, reminderID)
}

func (i *Interactor) SetEnabled(ctx context.Context, reminderID string, enabled bool) (dto.ReminderOutput, error) {
	r, err := i.svc.SetEnabled(ctx, reminderID, enabled)
	if err != nil {
		return dto.ReminderOutput{}, err
	}
	return toReminderOutput(r, nil), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.ReminderOutput, error) {
	reminders, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReminderOutput, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, toReminderOutput(r, nil))
	}
	return out, nil
}

func (i *Interactor) Upcoming(ctx context.Context) ([]dto.ReminderOutput, error) {
	upcoming, err := i.svc.Upcoming(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReminderOutput, 0, len(upcoming))
	for _, u := range upcoming {
		var next *time.Time
		if u.OK {
			at := u.At
			next = &at
		}
		out = append(out, toReminderOutput(u.Reminder, next))
	}
	return out, nil
}

func (i *Interactor) Start(ctx context.Context) error { return i.svc.Start(ctx) }

func (i *Interactor) Stop() { i.svc.Stop() }

func (i *Interactor) Reschedule(ctx context.Context) error { return i.svc.Reschedule(ctx) }

func (i *Interactor) Snooze(ctx context.Context, reminderID string, minutes int) (dto.SnoozeOutput, error) {
	until, err := i.svc.Snooze(ctx, reminderID, minutes)
	if err != nil {
		return dto.SnoozeOutput{}, err
	}
	return dto.SnoozeOutput{ReminderID: reminderID, Until: until}, nil
}

func (i *Interactor) Acknowledge(ctx context.Context, reminderID string) (string, error) {
	return i.svc.Acknowledge(ctx, reminderID)
}

func (i *Interactor) HandleAction(ctx context.Context, action string) (string, error) {
	return i.svc.HandleAction(ctx, action)
}

func parseReminder(input dto.ReminderInput) (domain.Reminder, error) {
	days, err := civil.ParseWeekdays(input.Days)
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidSettings, err)
	}
	at, err := civil.ParseTimeOfDay(input.At)
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidSettings, err)
	}
	r := domain.Reminder{
		ID:                  strings.TrimSpace(input.ID),
		Label:               strings.TrimSpace(input.Label),
		Days:                days,
		At:                  at,
		SecondOffsetMinutes: input.SecondOffsetMinutes,
		Enabled:             input.Enabled,
		TemplateID:          strings.TrimSpace(input.TemplateID),
	}
	if strings.TrimSpace(input.DND) != "" {
		window, err := domain.ParseWindow(input.DND)
		if err != nil {
			return domain.Reminder{}, err
		}
		r.DND = &window
	}
	return r, nil
}

func toReminderOutput(r domain.Reminder, next *time.Time) dto.ReminderOutput {
	days := make([]string, 0, len(r.Days))
	for _, d := range r.Days {
		days = append(days, strings.ToLower(d.String()[:3]))
	}
	out := dto.ReminderOutput{
		ID:                  r.ID,
		Label:               r.Label,
		Days:                days,
		At:                  r.At.String(),
		SecondOffsetMinutes: r.SecondOffsetMinutes,
		Enabled:             r.Enabled,
		TemplateID:          r.Template(),
		NextFire:            next,
	}
	if r.DND != nil {
		out.DND = r.DND.String()
	}
	return out
}
