package domain

import (
	"fmt"
	"time"

	"quill/internal/platform/civil"
	apperrors "quill/internal/platform/errors"
)

const SchemaVersion = 1

type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
)

// Unit names what a count or a target measures.
type Unit string

const (
	UnitWords      Unit = "words"
	UnitCharacters Unit = "characters"
	UnitMinutes    Unit = "minutes"
)

func (u Unit) Validate() error {
	switch u {
	case UnitWords, UnitCharacters, UnitMinutes:
		return nil
	default:
		return fmt.Errorf("%w: unknown unit %q", apperrors.ErrInvalidInput, u)
	}
}

// Session is a finalized writing session as stored in the log.
type Session struct {
	ID            string     `json:"id"`
	StartedAt     time.Time  `json:"started_at"`
	EndedAt       *time.Time `json:"ended_at,omitempty"`
	Count         int        `json:"count"`
	CountUnit     Unit       `json:"count_unit"`
	TargetUnit    Unit       `json:"target_unit,omitempty"`
	TargetValue   int        `json:"target_value,omitempty"`
	ActiveMinutes int        `json:"active_minutes"`
	Status        Status     `json:"status"`
	Files         []string   `json:"files"`
	Date          civil.Date `json:"date"`
}

func (s Session) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	if s.Status != StatusCompleted && s.Status != StatusSkipped {
		return fmt.Errorf("%w: session must be completed or skipped, got %q", apperrors.ErrInvalidInput, s.Status)
	}
	if s.Date.IsZero() {
		return fmt.Errorf("%w: session date is required", apperrors.ErrInvalidInput)
	}
	if s.Count < 0 || s.ActiveMinutes < 0 {
		return fmt.Errorf("%w: session counts must be non-negative", apperrors.ErrInvalidInput)
	}
	return nil
}

// Qualifies reports whether the session counts toward streaks and goals.
func (s Session) Qualifies() bool {
	return s.Status == StatusCompleted && s.Count > 0
}

func (s Session) HasTarget() bool {
	return s.TargetValue > 0
}

// MetTarget compares the session against its own target. Minute targets use
// active time; other targets use the count.
func (s Session) MetTarget() bool {
	if !s.HasTarget() {
		return false
	}
	if s.TargetUnit == UnitMinutes {
		return s.ActiveMinutes >= s.TargetValue
	}
	return s.Count >= s.TargetValue
}
