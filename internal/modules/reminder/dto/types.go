package dto

import "time"

type ReminderInput struct {
	ID                  string
	Label               string
	Days                []string
	At                  string
	SecondOffsetMinutes int
	DND                 string
	Enabled             bool
	TemplateID          string
}

type ReminderOutput struct {
	ID                  string
	Label               string
	Days                []string
	At                  string
	SecondOffsetMinutes int
	DND                 string
	Enabled             bool
	TemplateID          string
	NextFire            *time.Time
}

type SnoozeOutput struct {
	ReminderID string
	Until      time.Time
}
