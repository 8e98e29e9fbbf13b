package dto

import "time"

type StartInput struct {
	Files []string
}

type StatusOutput struct {
	State         string
	SessionID     string
	StartedAt     time.Time
	Count         int
	CountUnit     string
	TargetUnit    string
	TargetValue   int
	Percent       float64
	ActiveMinutes int
	Files         []string
}
