package in

import (
	"context"

	"quill/internal/modules/reminder/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.ReminderInput) (dto.ReminderOutput, error)
	Remove(ctx context.Context, reminderID string) error
	SetEnabled(ctx context.Context, reminderID string, enabled bool) (dto.ReminderOutput, error)
	List(ctx context.Context) ([]dto.ReminderOutput, error)
	Upcoming(ctx context.Context) ([]dto.ReminderOutput, error)
	Start(ctx context.Context) error
	Stop()
	Reschedule(ctx context.Context) error
	Snooze(ctx context.Context, reminderID string, minutes int) (dto.SnoozeOutput, error)
	Acknowledge(ctx context.Context, reminderID string) (string, error)
	HandleAction(ctx context.Context, action string) (string, error)
}
