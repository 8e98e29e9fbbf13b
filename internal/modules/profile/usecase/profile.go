package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quill/internal/modules/profile/domain"
	"quill/internal/modules/profile/dto"
	profilein "quill/internal/modules/profile/port/in"
	"quill/internal/modules/profile/service"
	"quill/internal/platform/civil"
	apperrors "quill/internal/platform/errors"
)

type Interactor struct {
	svc *service.ProfileService
}

func NewInteractor(svc *service.ProfileService) profilein.Usecase {
	return &Interactor{svc: svc}
}

func parseAnswers(input dto.AnswersInput) (domain.Answers, error) {
	answers := domain.Answers{
		Purpose:     domain.Purpose(strings.ToLower(strings.TrimSpace(input.Purpose))),
		Outcome:     input.Outcome,
		Feasibility: domain.Feasibility(strings.ToLower(strings.TrimSpace(input.Feasibility))),
		Hint:        input.Hint,
		HintUnit:    domain.HintUnit(strings.ToLower(strings.TrimSpace(input.HintUnit))),
	}
	switch answers.Feasibility {
	case "":
		answers.Feasibility = domain.FeasibilityNormal
	case domain.FeasibilityBusy, domain.FeasibilityNormal, domain.FeasibilityFree:
	default:
		return domain.Answers{}, fmt.Errorf("%w: feasibility must be busy, normal or free", apperrors.ErrInvalidInput)
	}
	if answers.Hint < 0 {
		return domain.Answers{}, fmt.Errorf("%w: hint must be non-negative", apperrors.ErrInvalidInput)
	}
	switch answers.HintUnit {
	case "":
		if answers.Hint > 0 {
			answers.HintUnit = domain.HintWords
		}
	case domain.HintWords, domain.HintMinutes:
	default:
		return domain.Answers{}, fmt.Errorf("%w: hint unit must be words or minutes", apperrors.ErrInvalidInput)
	}
	return answers, nil
}

func (i *Interactor) Estimate(_ context.Context, input dto.AnswersInput) (dto.RecommendationOutput, error) {
	answers, err := parseAnswers(input)
	if err != nil {
		return dto.RecommendationOutput{}, err
	}
	return toRecommendationOutput(i.svc.Estimate(answers)), nil
}

func (i *Interactor) Save(ctx context.Context, input dto.SaveInput) (dto.ProfileOutput, error) {
	answers, err := parseAnswers(input.Answers)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	var days []time.Weekday
	if len(input.PreferredDays) > 0 {
		if days, err = civil.ParseWeekdays(input.PreferredDays); err != nil {
			return dto.ProfileOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
	}
	var at *civil.TimeOfDay
	if strings.TrimSpace(input.PreferredTime) != "" {
		parsed, err := civil.ParseTimeOfDay(input.PreferredTime)
		if err != nil {
			return dto.ProfileOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		at = &parsed
	}
	profile, err := i.svc.Save(ctx, answers, days, at)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toProfileOutput(profile), nil
}

func (i *Interactor) Active(ctx context.Context) (dto.ProfileOutput, error) {
	profile, err := i.svc.Active(ctx)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toProfileOutput(profile), nil
}

func (i *Interactor) Override(ctx context.Context, input dto.OverrideInput) (dto.ProfileOutput, error) {
	var (
		days []time.Weekday
		at   *civil.TimeOfDay
		err  error
	)
	if input.PreferredDays != nil {
		if days, err = civil.ParseWeekdays(input.PreferredDays); err != nil {
			return dto.ProfileOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
	}
	if input.PreferredTime != nil && strings.TrimSpace(*input.PreferredTime) != "" {
		parsed, err := civil.ParseTimeOfDay(*input.PreferredTime)
		if err != nil {
			return dto.ProfileOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		at = &parsed
	}
	profile, err := i.svc.Override(ctx, func(p *domain.Profile) {
		if input.TargetValue != nil {
			p.Overrides.TargetValue = *input.TargetValue
		}
		if input.TargetUnit != nil {
			p.Overrides.TargetUnit = domain.TargetUnit(*input.TargetUnit)
		}
		if input.SessionMinutes != nil {
			p.Overrides.SessionMinutes = *input.SessionMinutes
		}
		if input.SessionsPerWeek != nil {
			p.Overrides.SessionsPerWeek = *input.SessionsPerWeek
		}
		if input.PreferredDays != nil {
			p.PreferredDays = days
		}
		if input.PreferredTime != nil {
			p.PreferredTime = at
		}
	})
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toProfileOutput(profile), nil
}

func (i *Interactor) Recalculate(ctx context.Context, force bool) (dto.RecalculateOutput, error) {
	profile, changed, err := i.svc.Recalculate(ctx, force)
	if err != nil {
		return dto.RecalculateOutput{}, err
	}
	return dto.RecalculateOutput{Profile: toProfileOutput(profile), Changed: changed}, nil
}

func (i *Interactor) Reset(ctx context.Context) error {
	return i.svc.Reset(ctx)
}

func toRecommendationOutput(r domain.Recommendation) dto.RecommendationOutput {
	return dto.RecommendationOutput{
		SessionMinutes:  r.SessionMinutes,
		TargetWords:     r.TargetWords,
		SessionsPerWeek: r.SessionsPerWeek,
		RuleVersion:     r.RuleVersion,
		CalculatedAt:    r.CalculatedAt,
		Stale:           domain.IsStale(r),
	}
}

func toProfileOutput(p domain.Profile) dto.ProfileOutput {
	target := p.Target()
	out := dto.ProfileOutput{
		Purpose:         string(p.Answers.Purpose),
		Outcome:         p.Answers.Outcome,
		Feasibility:     string(p.Answers.Feasibility),
		Recommendation:  toRecommendationOutput(p.Recommendation),
		TargetUnit:      string(target.Unit),
		TargetValue:     target.Value,
		SessionMinutes:  p.SessionMinutes(),
		SessionsPerWeek: p.SessionsPerWeek(),
		Active:          p.Active,
		UpdatedAt:       p.UpdatedAt,
	}
	for _, d := range p.PreferredDays {
		out.PreferredDays = append(out.PreferredDays, d.String())
	}
	if p.PreferredTime != nil {
		out.PreferredTime = p.PreferredTime.String()
	}
	return out
}
