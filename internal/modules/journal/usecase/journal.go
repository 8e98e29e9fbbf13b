package usecase

import (
	"context"
	"fmt"
	"time"

	"quill/internal/modules/journal/domain"
	"quill/internal/modules/journal/dto"
	journalin "quill/internal/modules/journal/port/in"
	"quill/internal/modules/journal/service"
	"quill/internal/platform/civil"
	apperrors "quill/internal/platform/errors"
)

type Interactor struct {
	svc *service.JournalService
}

func NewInteractor(svc *service.JournalService) journalin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) AddSession(ctx context.Context, input dto.AddSessionInput) (dto.AddSessionOutput, error) {
	if input.EndedAt.Before(input.StartedAt) {
		return dto.AddSessionOutput{}, fmt.Errorf("%w: session ends before it starts", apperrors.ErrInvalidInput)
	}
	countUnit := domain.Unit(input.CountUnit)
	if err := countUnit.Validate(); err != nil {
		return dto.AddSessionOutput{}, err
	}
	if input.TargetUnit != "" {
		if err := domain.Unit(input.TargetUnit).Validate(); err != nil {
			return dto.AddSessionOutput{}, err
		}
	}
	ended := input.EndedAt
	session := domain.Session{
		ID:            input.ID,
		StartedAt:     input.StartedAt,
		EndedAt:       &ended,
		Count:         input.Count,
		CountUnit:     countUnit,
		TargetUnit:    domain.Unit(input.TargetUnit),
		TargetValue:   input.TargetValue,
		ActiveMinutes: input.ActiveMinutes,
		Status:        domain.Status(input.Status),
		Files:         input.Files,
		Date:          civil.DateOf(input.StartedAt),
	}
	saved, path, err := i.svc.AddSession(ctx, session)
	if err != nil {
		return dto.AddSessionOutput{}, err
	}
	streak, err := i.Streak(ctx)
	if err != nil {
		return dto.AddSessionOutput{}, err
	}
	return dto.AddSessionOutput{Session: toSessionOutput(saved), NotePath: path, Streak: streak}, nil
}

func (i *Interactor) UpdateStreak(ctx context.Context, date civil.Date) (dto.StreakOutput, error) {
	if _, err := i.svc.UpdateStreak(ctx, date); err != nil {
		return dto.StreakOutput{}, err
	}
	return i.Streak(ctx)
}

func (i *Interactor) Streak(ctx context.Context) (dto.StreakOutput, error) {
	streak, err := i.svc.Streak(ctx)
	if err != nil {
		return dto.StreakOutput{}, err
	}
	settings, err := i.svc.Settings(ctx)
	if err != nil {
		return dto.StreakOutput{}, err
	}
	return toStreakOutput(streak, settings), nil
}

func (i *Interactor) RebuildStreak(ctx context.Context) (dto.StreakOutput, error) {
	if _, err := i.svc.RebuildStreak(ctx); err != nil {
		return dto.StreakOutput{}, err
	}
	return i.Streak(ctx)
}

func (i *Interactor) DashboardStats(ctx context.Context) (dto.StatsOutput, error) {
	stats, unit, err := i.svc.DashboardStats(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	settings, err := i.svc.Settings(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	out := dto.StatsOutput{
		Unit:             string(unit),
		Today:            stats.Today,
		Week:             stats.Week,
		Month:            stats.Month,
		Streak:           toStreakOutput(stats.Streak, settings),
		SessionsLastWeek: stats.SessionsLastWeek,
		CompletionRate:   stats.CompletionRate,
		Recent:           make([]dto.SessionOutput, 0, len(stats.Recent)),
	}
	for _, s := range stats.Recent {
		out.Recent = append(out.Recent, toSessionOutput(s))
	}
	return out, nil
}

func (i *Interactor) Sessions(ctx context.Context, input dto.SessionRangeInput) ([]dto.SessionOutput, error) {
	if !input.From.IsZero() && !input.To.IsZero() && input.To.Before(input.From) {
		return nil, fmt.Errorf("%w: range ends before it starts", apperrors.ErrInvalidInput)
	}
	to := input.To
	if to.IsZero() {
		to = civil.Date{Year: 9999, Month: time.December, Day: 31}
	}
	sessions, err := i.svc.Sessions(ctx, input.From, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionOutput(s))
	}
	return out, nil
}

func (i *Interactor) CompletedSince(ctx context.Context, since time.Time) (bool, error) {
	return i.svc.CompletedSince(ctx, since)
}

func (i *Interactor) AppendLog(ctx context.Context, input dto.LogInput) error {
	if input.SessionID == "" || input.Event == "" {
		return fmt.Errorf("%w: log entries need a session and an event", apperrors.ErrInvalidInput)
	}
	return i.svc.AppendLog(ctx, domain.LogEntry{
		SessionID: input.SessionID,
		Event:     domain.LogEvent(input.Event),
		Detail:    input.Detail,
	})
}

func (i *Interactor) Settings(ctx context.Context) (dto.SettingsOutput, error) {
	settings, err := i.svc.Settings(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toSettingsOutput(settings), nil
}

func (i *Interactor) UpdateSettings(ctx context.Context, input dto.UpdateSettingsInput) (dto.SettingsOutput, error) {
	settings, err := i.svc.UpdateSettings(ctx, func(s *domain.Settings) {
		if input.StreakMode != nil {
			s.StreakMode = domain.Mode(*input.StreakMode)
		}
		if input.GraceDays != nil {
			s.GraceDays = *input.GraceDays
		}
		if input.WeeklyTarget != nil {
			s.WeeklyTarget = *input.WeeklyTarget
		}
		if input.Unit != nil {
			s.Unit = domain.Unit(*input.Unit)
		}
		if input.NotesFolder != nil {
			s.NotesFolder = *input.NotesFolder
		}
		if input.VaultName != nil {
			s.VaultName = *input.VaultName
		}
	})
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toSettingsOutput(settings), nil
}

func (i *Interactor) Export(ctx context.Context) ([]byte, error) {
	return i.svc.Export(ctx)
}

func (i *Interactor) Import(ctx context.Context, raw []byte) (dto.ImportOutput, error) {
	result, err := i.svc.Import(ctx, raw)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	settings, err := i.svc.Settings(ctx)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	return dto.ImportOutput{
		Added:   result.Added,
		Skipped: result.Skipped,
		Streak:  toStreakOutput(result.Streak, settings),
	}, nil
}

func (i *Interactor) Reindex(ctx context.Context) (int, error) {
	return i.svc.Reindex(ctx)
}

func toSessionOutput(s domain.Session) dto.SessionOutput {
	return dto.SessionOutput{
		ID:            s.ID,
		StartedAt:     s.StartedAt,
		EndedAt:       s.EndedAt,
		Date:          s.Date,
		Count:         s.Count,
		CountUnit:     string(s.CountUnit),
		TargetUnit:    string(s.TargetUnit),
		TargetValue:   s.TargetValue,
		ActiveMinutes: s.ActiveMinutes,
		Status:        string(s.Status),
		Files:         append([]string(nil), s.Files...),
		MetTarget:     s.MetTarget(),
	}
}

func toStreakOutput(s domain.Streak, settings domain.Settings) dto.StreakOutput {
	days := 0
	for _, wrote := range s.Week {
		if wrote {
			days++
		}
	}
	return dto.StreakOutput{
		Mode:         string(settings.StreakMode),
		Current:      s.Current,
		Longest:      s.Longest,
		LastDate:     s.LastDate,
		GraceUsed:    s.GraceUsed,
		GraceLimit:   settings.GraceDays,
		WeeklyTarget: settings.WeeklyTarget,
		Week:         s.Week,
		DaysThisWeek: days,
	}
}

func toSettingsOutput(s domain.Settings) dto.SettingsOutput {
	return dto.SettingsOutput{
		StreakMode:   string(s.StreakMode),
		GraceDays:    s.GraceDays,
		WeeklyTarget: s.WeeklyTarget,
		Unit:         string(s.Unit),
		NotesFolder:  s.NotesFolder,
		VaultName:    s.VaultName,
	}
}
