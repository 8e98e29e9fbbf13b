package dto

type NudgeOutput struct {
	Nudge  bool
	Reason string
}

type SummaryOutput struct {
	WeekStart    string
	Sessions     int
	Goal         int
	SessionsLeft int
	Total        int
	Unit         string
	TargetsMet   int
	PerDay       [7]int
	DaysWritten  [7]bool
	Met          bool
	Headline     string
	ReviewPath   string
}
