package out

import (
	"context"

	"quill/internal/modules/command/domain"
	commandout "quill/internal/modules/command/port/out"
)

// Interactive wires terminal-only commands to host callbacks. A nil callback
// reports domain.ErrNotInteractive.
type Interactive struct {
	Dashboard  func(ctx context.Context) error
	Onboarding func(ctx context.Context) error
}

var _ commandout.Interactive = (*Interactive)(nil)

func (i *Interactive) OpenDashboard(ctx context.Context) error {
	if i == nil || i.Dashboard == nil {
		return domain.ErrNotInteractive
	}
	return i.Dashboard(ctx)
}

func (i *Interactive) Onboard(ctx context.Context) error {
	if i == nil || i.Onboarding == nil {
		return domain.ErrNotInteractive
	}
	return i.Onboarding(ctx)
}
