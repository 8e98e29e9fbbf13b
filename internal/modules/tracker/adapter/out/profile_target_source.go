package out

import (
	"context"

	journalin "quill/internal/modules/journal/port/in"
	profilein "quill/internal/modules/profile/port/in"
	"quill/internal/modules/tracker/domain"
	trackerout "quill/internal/modules/tracker/port/out"
)

// ProfileTargetSource takes the goal from the active profile and the counting
// unit from settings. A words or characters target counts in its own unit.
type ProfileTargetSource struct {
	profiles profilein.Usecase
	journal  journalin.Usecase
}

func NewProfileTargetSource(profiles profilein.Usecase, journal journalin.Usecase) trackerout.TargetSource {
	return &ProfileTargetSource{profiles: profiles, journal: journal}
}

func (s *ProfileTargetSource) Target(ctx context.Context) (domain.Target, domain.Unit, error) {
	profile, err := s.profiles.Active(ctx)
	if err != nil {
		return domain.Target{}, "", err
	}
	target := domain.Target{Unit: domain.TargetUnit(profile.TargetUnit), Value: profile.TargetValue}
	switch target.Unit {
	case domain.TargetWords:
		return target, domain.UnitWords, nil
	case domain.TargetCharacters:
		return target, domain.UnitCharacters, nil
	}
	settings, err := s.journal.Settings(ctx)
	if err != nil {
		return domain.Target{}, "", err
	}
	return target, domain.Unit(settings.Unit), nil
}
