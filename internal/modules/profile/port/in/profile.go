package in

import (
	"context"

	"quill/internal/modules/profile/dto"
)

type Usecase interface {
	Estimate(ctx context.Context, input dto.AnswersInput) (dto.RecommendationOutput, error)
	Save(ctx context.Context, input dto.SaveInput) (dto.ProfileOutput, error)
	Active(ctx context.Context) (dto.ProfileOutput, error)
	Override(ctx context.Context, input dto.OverrideInput) (dto.ProfileOutput, error)
	Recalculate(ctx context.Context, force bool) (dto.RecalculateOutput, error)
	Reset(ctx context.Context) error
}
