package in

import (
	"context"

	"quill/internal/modules/planner/dto"
)

type Usecase interface {
	ShouldNudge(ctx context.Context) (dto.NudgeOutput, error)
	ShowNudge(ctx context.Context) (bool, error)
	WeeklySummary(ctx context.Context) (dto.SummaryOutput, error)
	ShowWeeklySummary(ctx context.Context) (dto.SummaryOutput, error)
	WriteReview(ctx context.Context) (dto.SummaryOutput, error)
}
