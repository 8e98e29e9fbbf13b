package in

import (
	"context"

	reminderdto "quill/internal/modules/reminder/dto"
	reminderin "quill/internal/modules/reminder/port/in"
)

type CLIHandler struct {
	usecase reminderin.Usecase
}

func NewCLIHandler(usecase reminderin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, input reminderdto.ReminderInput) (reminderdto.ReminderOutput, error) {
	return h.usecase.Add(ctx, input)
}

func (h CLIHandler) List(ctx context.Context) ([]reminderdto.ReminderOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Next(ctx context.Context) ([]reminderdto.ReminderOutput, error) {
	return h.usecase.Upcoming(ctx)
}

func (h CLIHandler) Remove(ctx context.Context, reminderID string) error {
	return h.usecase.Remove(ctx, reminderID)
}

func (h CLIHandler) SetEnabled(ctx context.Context, reminderID string, enabled bool) (reminderdto.ReminderOutput, error) {
	return h.usecase.SetEnabled(ctx, reminderID, enabled)
}
