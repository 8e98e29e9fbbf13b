package in

import (
	"context"
	"time"

	"quill/internal/modules/journal/domain"
	"quill/internal/modules/journal/dto"
	"quill/internal/platform/civil"
)

type Usecase interface {
	AddSession(ctx context.Context, input dto.AddSessionInput) (dto.AddSessionOutput, error)
	UpdateStreak(ctx context.Context, date civil.Date) (dto.StreakOutput, error)
	Streak(ctx context.Context) (dto.StreakOutput, error)
	RebuildStreak(ctx context.Context) (dto.StreakOutput, error)
	DashboardStats(ctx context.Context) (dto.StatsOutput, error)
	Sessions(ctx context.Context, input dto.SessionRangeInput) ([]dto.SessionOutput, error)
	CompletedSince(ctx context.Context, since time.Time) (bool, error)
	AppendLog(ctx context.Context, input dto.LogInput) error
	Settings(ctx context.Context) (dto.SettingsOutput, error)
	UpdateSettings(ctx context.Context, input dto.UpdateSettingsInput) (dto.SettingsOutput, error)
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, raw []byte) (dto.ImportOutput, error)
	Reindex(ctx context.Context) (int, error)
}

// Documents gives sibling modules serialized access to their slice of the
// persisted document. fn runs under the journal lock; Update saves only when
// fn returns nil.
type Documents interface {
	Update(ctx context.Context, fn func(*domain.Document) error) error
	View(ctx context.Context, fn func(domain.Document) error) error
}
