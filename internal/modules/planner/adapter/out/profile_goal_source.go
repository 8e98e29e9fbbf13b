package out

import (
	"context"
	"fmt"

	"quill/internal/modules/planner/domain"
	plannerout "quill/internal/modules/planner/port/out"
	profilein "quill/internal/modules/profile/port/in"
	"quill/internal/platform/civil"
)

type ProfileGoalSource struct {
	profiles profilein.Usecase
}

func NewProfileGoalSource(profiles profilein.Usecase) plannerout.GoalSource {
	return &ProfileGoalSource{profiles: profiles}
}

func (s *ProfileGoalSource) Goal(ctx context.Context) (domain.Goal, error) {
	profile, err := s.profiles.Active(ctx)
	if err != nil {
		return domain.Goal{}, err
	}
	goal := domain.Goal{
		SessionsPerWeek: profile.SessionsPerWeek,
		Target:          profile.TargetValue,
		TargetUnit:      profile.TargetUnit,
	}
	if len(profile.PreferredDays) > 0 {
		days, err := civil.ParseWeekdays(profile.PreferredDays)
		if err != nil {
			return domain.Goal{}, fmt.Errorf("stored preferred days: %w", err)
		}
		goal.PreferredDays = days
	}
	if profile.PreferredTime != "" {
		at, err := civil.ParseTimeOfDay(profile.PreferredTime)
		if err != nil {
			return domain.Goal{}, fmt.Errorf("stored preferred time: %w", err)
		}
		goal.PreferredTime = &at
	}
	return goal, nil
}
