package in

import (
	"context"

	plannerdto "quill/internal/modules/planner/dto"
	plannerin "quill/internal/modules/planner/port/in"
)

type CLIHandler struct {
	usecase plannerin.Usecase
}

func NewCLIHandler(usecase plannerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Check(ctx context.Context) (plannerdto.NudgeOutput, error) {
	return h.usecase.ShouldNudge(ctx)
}

func (h CLIHandler) Summary(ctx context.Context, writeReview bool) (plannerdto.SummaryOutput, error) {
	if writeReview {
		return h.usecase.WriteReview(ctx)
	}
	return h.usecase.WeeklySummary(ctx)
}
