package domain

import (
	"fmt"
	"time"

	"quill/internal/platform/civil"
	apperrors "quill/internal/platform/errors"
)

type TargetUnit string

const (
	TargetWords      TargetUnit = "words"
	TargetCharacters TargetUnit = "characters"
	TargetMinutes    TargetUnit = "minutes"
)

type Target struct {
	Unit  TargetUnit
	Value int
}

// Overrides are explicit user edits. Zero values fall back to the
// recommendation.
type Overrides struct {
	TargetValue     int        `json:"target_value,omitempty"`
	TargetUnit      TargetUnit `json:"target_unit,omitempty"`
	SessionMinutes  int        `json:"session_minutes,omitempty"`
	SessionsPerWeek int        `json:"sessions_per_week,omitempty"`
}

type Profile struct {
	Answers        Answers          `json:"answers"`
	Recommendation Recommendation   `json:"recommendation"`
	Overrides      Overrides        `json:"overrides"`
	PreferredDays  []time.Weekday   `json:"preferred_days,omitempty"`
	PreferredTime  *civil.TimeOfDay `json:"preferred_time,omitempty"`
	Active         bool             `json:"active"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func (p Profile) Target() Target {
	if p.Overrides.TargetValue > 0 {
		unit := p.Overrides.TargetUnit
		if unit == "" {
			unit = TargetWords
		}
		return Target{Unit: unit, Value: p.Overrides.TargetValue}
	}
	return Target{Unit: TargetWords, Value: p.Recommendation.TargetWords}
}

func (p Profile) SessionMinutes() int {
	if p.Overrides.SessionMinutes > 0 {
		return p.Overrides.SessionMinutes
	}
	return p.Recommendation.SessionMinutes
}

func (p Profile) SessionsPerWeek() int {
	if p.Overrides.SessionsPerWeek > 0 {
		return p.Overrides.SessionsPerWeek
	}
	return p.Recommendation.SessionsPerWeek
}

func (p Profile) PrefersDay(day time.Weekday) bool {
	if len(p.PreferredDays) == 0 {
		return true
	}
	for _, d := range p.PreferredDays {
		if d == day {
			return true
		}
	}
	return false
}

func (o Overrides) Validate() error {
	switch o.TargetUnit {
	case "", TargetWords, TargetCharacters, TargetMinutes:
	default:
		return fmt.Errorf("%w: unknown target unit %q", apperrors.ErrInvalidSettings, o.TargetUnit)
	}
	if o.TargetValue < 0 || o.SessionMinutes < 0 || o.SessionsPerWeek < 0 {
		return fmt.Errorf("%w: overrides must be non-negative", apperrors.ErrInvalidSettings)
	}
	if o.SessionsPerWeek > 7 {
		return fmt.Errorf("%w: sessions per week must be at most 7", apperrors.ErrInvalidSettings)
	}
	return nil
}

func (p Profile) Validate() error {
	if err := p.Overrides.Validate(); err != nil {
		return err
	}
	seen := map[time.Weekday]struct{}{}
	for _, d := range p.PreferredDays {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: invalid weekday %d", apperrors.ErrInvalidSettings, d)
		}
		if _, ok := seen[d]; ok {
			return fmt.Errorf("%w: duplicate weekday %s", apperrors.ErrInvalidSettings, d)
		}
		seen[d] = struct{}{}
	}
	return nil
}
