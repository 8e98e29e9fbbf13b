package in

import (
	"context"

	journaldto "quill/internal/modules/journal/dto"
	journalin "quill/internal/modules/journal/port/in"
	"quill/internal/platform/civil"
)

type CLIHandler struct {
	usecase journalin.Usecase
}

func NewCLIHandler(usecase journalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Stats(ctx context.Context) (journaldto.StatsOutput, error) {
	return h.usecase.DashboardStats(ctx)
}

func (h CLIHandler) Streak(ctx context.Context) (journaldto.StreakOutput, error) {
	return h.usecase.Streak(ctx)
}

func (h CLIHandler) RebuildStreak(ctx context.Context) (journaldto.StreakOutput, error) {
	return h.usecase.RebuildStreak(ctx)
}

func (h CLIHandler) Log(ctx context.Context, from, to civil.Date) ([]journaldto.SessionOutput, error) {
	return h.usecase.Sessions(ctx, journaldto.SessionRangeInput{From: from, To: to})
}

func (h CLIHandler) Settings(ctx context.Context) (journaldto.SettingsOutput, error) {
	return h.usecase.Settings(ctx)
}

func (h CLIHandler) UpdateSettings(ctx context.Context, input journaldto.UpdateSettingsInput) (journaldto.SettingsOutput, error) {
	return h.usecase.UpdateSettings(ctx, input)
}

func (h CLIHandler) Export(ctx context.Context) ([]byte, error) {
	return h.usecase.Export(ctx)
}

func (h CLIHandler) Import(ctx context.Context, raw []byte) (journaldto.ImportOutput, error) {
	return h.usecase.Import(ctx, raw)
}

func (h CLIHandler) Reindex(ctx context.Context) (int, error) {
	return h.usecase.Reindex(ctx)
}
