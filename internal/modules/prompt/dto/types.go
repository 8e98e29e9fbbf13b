package dto

import "time"

type PromptsOutput struct {
	Prompts []string
	Source  string
}

type RefreshOutput struct {
	Count     int
	FetchedAt time.Time
}
