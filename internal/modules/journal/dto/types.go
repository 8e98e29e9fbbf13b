package dto

import (
	"time"

	"quill/internal/platform/civil"
)

type SessionOutput struct {
	ID            string
	StartedAt     time.Time
	EndedAt       *time.Time
	Date          civil.Date
	Count         int
	CountUnit     string
	TargetUnit    string
	TargetValue   int
	ActiveMinutes int
	Status        string
	Files         []string
	MetTarget     bool
}

type AddSessionInput struct {
	ID            string
	StartedAt     time.Time
	EndedAt       time.Time
	Count         int
	CountUnit     string
	TargetUnit    string
	TargetValue   int
	ActiveMinutes int
	Status        string
	Files         []string
}

type AddSessionOutput struct {
	Session  SessionOutput
	NotePath string
	Streak   StreakOutput
}

type StreakOutput struct {
	Mode         string
	Current      int
	Longest      int
	LastDate     civil.Date
	GraceUsed    int
	GraceLimit   int
	WeeklyTarget int
	Week         [7]bool
	DaysThisWeek int
}

type StatsOutput struct {
	Unit             string
	Today            int
	Week             int
	Month            int
	Streak           StreakOutput
	SessionsLastWeek int
	CompletionRate   float64
	Recent           []SessionOutput
}

type SessionRangeInput struct {
	From civil.Date
	To   civil.Date
}

type LogInput struct {
	SessionID string
	Event     string
	Detail    string
}

type SettingsOutput struct {
	StreakMode   string
	GraceDays    int
	WeeklyTarget int
	Unit         string
	NotesFolder  string
	VaultName    string
}

// UpdateSettingsInput carries only the fields to change.
type UpdateSettingsInput struct {
	StreakMode   *string
	GraceDays    *int
	WeeklyTarget *int
	Unit         *string
	NotesFolder  *string
	VaultName    *string
}

type ImportOutput struct {
	Added   int
	Skipped int
	Streak  StreakOutput
}
