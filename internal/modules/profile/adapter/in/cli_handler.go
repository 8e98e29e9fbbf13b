package in

import (
	"context"

	profiledto "quill/internal/modules/profile/dto"
	profilein "quill/internal/modules/profile/port/in"
)

type CLIHandler struct {
	usecase profilein.Usecase
}

func NewCLIHandler(usecase profilein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Estimate(ctx context.Context, input profiledto.AnswersInput) (profiledto.RecommendationOutput, error) {
	return h.usecase.Estimate(ctx, input)
}

func (h CLIHandler) Onboard(ctx context.Context, input profiledto.SaveInput) (profiledto.ProfileOutput, error) {
	return h.usecase.Save(ctx, input)
}

func (h CLIHandler) Show(ctx context.Context) (profiledto.ProfileOutput, error) {
	return h.usecase.Active(ctx)
}

func (h CLIHandler) Set(ctx context.Context, input profiledto.OverrideInput) (profiledto.ProfileOutput, error) {
	return h.usecase.Override(ctx, input)
}

func (h CLIHandler) Recalculate(ctx context.Context, force bool) (profiledto.RecalculateOutput, error) {
	return h.usecase.Recalculate(ctx, force)
}

func (h CLIHandler) Reset(ctx context.Context) error {
	return h.usecase.Reset(ctx)
}
