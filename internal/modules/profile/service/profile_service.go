package service

import (
	"context"
	"fmt"
	"time"

	"quill/internal/modules/profile/domain"
	profileout "quill/internal/modules/profile/port/out"
	"quill/internal/platform/civil"
	"quill/internal/platform/clock"
	apperrors "quill/internal/platform/errors"
)

type ProfileService struct {
	clock clock.Clock
	store profileout.ProfileStore
}

func NewProfileService(clock clock.Clock, store profileout.ProfileStore) *ProfileService {
	return &ProfileService{clock: clock, store: store}
}

func (s *ProfileService) Estimate(answers domain.Answers) domain.Recommendation {
	return domain.Estimate(answers, s.clock.Now())
}

// Save stores a fresh recommendation for answers and activates the profile.
// Existing preferences survive a re-run of onboarding unless replaced.
func (s *ProfileService) Save(ctx context.Context, answers domain.Answers, days []time.Weekday, at *civil.TimeOfDay) (domain.Profile, error) {
	now := s.clock.Now()
	profile := domain.Profile{}
	if existing, err := s.store.Load(ctx); err != nil {
		return domain.Profile{}, err
	} else if existing != nil {
		profile = *existing
	}
	profile.Answers = answers
	profile.Recommendation = domain.Estimate(answers, now)
	profile.Overrides = domain.Overrides{}
	if days != nil {
		profile.PreferredDays = days
	}
	if at != nil {
		profile.PreferredTime = at
	}
	profile.Active = true
	profile.UpdatedAt = now
	if err := profile.Validate(); err != nil {
		return domain.Profile{}, err
	}
	if err := s.store.Save(ctx, profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

func (s *ProfileService) Active(ctx context.Context) (domain.Profile, error) {
	profile, err := s.store.Load(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	if profile == nil || !profile.Active {
		return domain.Profile{}, apperrors.ErrNoActiveProfile
	}
	return *profile, nil
}

// Override applies explicit edits on top of the active profile.
func (s *ProfileService) Override(ctx context.Context, edit func(*domain.Profile)) (domain.Profile, error) {
	profile, err := s.Active(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	edit(&profile)
	if err := profile.Validate(); err != nil {
		return domain.Profile{}, err
	}
	profile.UpdatedAt = s.clock.Now()
	if err := s.store.Save(ctx, profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

// Recalculate re-runs the estimate over the stored answers when the stored
// recommendation predates the current rule version, or always when forced.
// Overrides are kept.
func (s *ProfileService) Recalculate(ctx context.Context, force bool) (domain.Profile, bool, error) {
	profile, err := s.Active(ctx)
	if err != nil {
		return domain.Profile{}, false, err
	}
	if !force && !domain.IsStale(profile.Recommendation) {
		return profile, false, nil
	}
	now := s.clock.Now()
	profile.Recommendation = domain.Estimate(profile.Answers, now)
	profile.UpdatedAt = now
	if err := s.store.Save(ctx, profile); err != nil {
		return domain.Profile{}, false, err
	}
	return profile, true, nil
}

// Reset deactivates the profile so the next session start asks for
// onboarding again.
func (s *ProfileService) Reset(ctx context.Context) error {
	profile, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if profile == nil {
		return nil
	}
	profile.Active = false
	profile.UpdatedAt = s.clock.Now()
	if err := s.store.Save(ctx, *profile); err != nil {
		return fmt.Errorf("reset profile: %w", err)
	}
	return nil
}
