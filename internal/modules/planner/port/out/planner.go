package out

import (
	"context"

	"quill/internal/modules/planner/domain"
	"quill/internal/platform/civil"
)

type ActivitySource interface {
	Between(ctx context.Context, from, to civil.Date) ([]domain.Activity, error)
	Unit(ctx context.Context) (string, error)
}

// GoalSource returns apperrors.ErrNoActiveProfile before onboarding.
type GoalSource interface {
	Goal(ctx context.Context) (domain.Goal, error)
}

type ReviewWriter interface {
	Write(ctx context.Context, summary domain.Summary) (string, error)
}
