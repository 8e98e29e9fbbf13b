package usecase

import (
	"context"

	"quill/internal/modules/planner/domain"
	"quill/internal/modules/planner/dto"
	plannerin "quill/internal/modules/planner/port/in"
	"quill/internal/modules/planner/service"
)

type Interactor struct {
	svc *service.PlannerService
}

func NewInteractor(svc *service.PlannerService) plannerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ShouldNudge(ctx context.Context) (dto.NudgeOutput, error) {
	ok, reason, err := i.svc.ShouldNudge(ctx)
	if err != nil {
		return dto.NudgeOutput{}, err
	}
	return dto.NudgeOutput{Nudge: ok, Reason: string(reason)}, nil
}

func (i *Interactor) ShowNudge(ctx context.Context) (bool, error) {
	return i.svc.ShowNudge(ctx)
}

func (i *Interactor) WeeklySummary(ctx context.Context) (dto.SummaryOutput, error) {
	summary, err := i.svc.WeeklySummary(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return toSummaryOutput(summary, ""), nil
}

func (i *Interactor) ShowWeeklySummary(ctx context.Context) (dto.SummaryOutput, error) {
	summary, err := i.svc.ShowWeeklySummary(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return toSummaryOutput(summary, ""), nil
}

func (i *Interactor) WriteReview(ctx context.Context) (dto.SummaryOutput, error) {
	path, summary, err := i.svc.WriteReview(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return toSummaryOutput(summary, path), nil
}

func toSummaryOutput(s domain.Summary, path string) dto.SummaryOutput {
	return dto.SummaryOutput{
		WeekStart:    s.WeekStart.String(),
		Sessions:     s.Sessions,
		Goal:         s.Goal,
		SessionsLeft: s.SessionsLeft,
		Total:        s.Total,
		Unit:         s.Unit,
		TargetsMet:   s.TargetsMet,
		PerDay:       s.PerDay,
		DaysWritten:  s.DaysWritten,
		Met:          s.Met,
		Headline:     s.Headline(),
		ReviewPath:   path,
	}
}
