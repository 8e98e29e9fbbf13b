package domain

import (
	"sort"

	"quill/internal/platform/civil"
)

const RecentLimit = 7

type Stats struct {
	Today            int
	Week             int
	Month            int
	Streak           Streak
	SessionsLastWeek int
	CompletionRate   float64
	Recent           []Session
}

// ComputeStats aggregates completed sessions relative to today. Weeks are
// Sunday-aligned; "last week" is the trailing seven days including today.
func ComputeStats(sessions []Session, streak Streak, today civil.Date) Stats {
	weekStart := civil.WeekStart(today)
	monthStart := civil.MonthStart(today)
	trailingStart := today.AddDays(-6)

	stats := Stats{Streak: streak}
	completed := make([]Session, 0, len(sessions))
	withTarget, metTarget := 0, 0
	for _, s := range sessions {
		if s.Status != StatusCompleted {
			continue
		}
		completed = append(completed, s)
		if s.Date == today {
			stats.Today += s.Count
		}
		if s.Date.Between(weekStart, today) {
			stats.Week += s.Count
		}
		if s.Date.Between(monthStart, today) {
			stats.Month += s.Count
		}
		if s.Date.Between(trailingStart, today) {
			stats.SessionsLastWeek++
		}
		if s.HasTarget() {
			withTarget++
			if s.MetTarget() {
				metTarget++
			}
		}
	}
	if withTarget > 0 {
		stats.CompletionRate = float64(metTarget) / float64(withTarget)
	}

	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].StartedAt.After(completed[j].StartedAt)
	})
	if len(completed) > RecentLimit {
		completed = completed[:RecentLimit]
	}
	stats.Recent = completed
	return stats
}
