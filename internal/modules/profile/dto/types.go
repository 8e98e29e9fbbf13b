package dto

import "time"

type AnswersInput struct {
	Purpose     string
	Outcome     string
	Feasibility string
	Hint        int
	HintUnit    string
}

type RecommendationOutput struct {
	SessionMinutes  int
	TargetWords     int
	SessionsPerWeek int
	RuleVersion     string
	CalculatedAt    time.Time
	Stale           bool
}

type SaveInput struct {
	Answers       AnswersInput
	PreferredDays []string
	PreferredTime string
}

type OverrideInput struct {
	TargetValue     *int
	TargetUnit      *string
	SessionMinutes  *int
	SessionsPerWeek *int
	PreferredDays   []string
	PreferredTime   *string
}

type ProfileOutput struct {
	Purpose         string
	Outcome         string
	Feasibility     string
	Recommendation  RecommendationOutput
	TargetUnit      string
	TargetValue     int
	SessionMinutes  int
	SessionsPerWeek int
	PreferredDays   []string
	PreferredTime   string
	Active          bool
	UpdatedAt       time.Time
}

type RecalculateOutput struct {
	Profile ProfileOutput
	Changed bool
}
