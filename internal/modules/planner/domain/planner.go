package domain

import (
	"fmt"
	"strings"
	"time"

	"quill/internal/platform/civil"
)

// NudgeWindow is how far from the preferred time a nudge may fire.
const NudgeWindow = 30 * time.Minute

const (
	ReviewStart = "<!-- quill:review:start -->"
	ReviewEnd   = "<!-- quill:review:end -->"
)

// Goal is the slice of the writing profile the planner reads.
type Goal struct {
	SessionsPerWeek int
	PreferredDays   []time.Weekday
	PreferredTime   *civil.TimeOfDay
	Target          int
	TargetUnit      string
}

func (g Goal) prefersDay(d time.Weekday) bool {
	if len(g.PreferredDays) == 0 {
		return true
	}
	for _, p := range g.PreferredDays {
		if p == d {
			return true
		}
	}
	return false
}

// Activity is one logged session as the planner sees it.
type Activity struct {
	Date      civil.Date
	Count     int
	Unit      string
	Qualifies bool
	MetTarget bool
}

type Reason string

const (
	ReasonNudge           Reason = "time to write"
	ReasonNotPreferredDay Reason = "not a preferred writing day"
	ReasonWroteToday      Reason = "already wrote today"
	ReasonWeekDone        Reason = "weekly goal already met"
	ReasonOutsideWindow   Reason = "outside the preferred time window"
)

// ShouldNudge decides whether to suggest a session at now. activity must
// cover at least the current week.
func ShouldNudge(goal Goal, activity []Activity, now time.Time) (bool, Reason) {
	today := civil.DateOf(now)
	if !goal.prefersDay(today.Weekday()) {
		return false, ReasonNotPreferredDay
	}
	weekStart := civil.WeekStart(today)
	done := 0
	for _, a := range activity {
		if !a.Qualifies {
			continue
		}
		if a.Date == today {
			return false, ReasonWroteToday
		}
		if a.Date.Between(weekStart, today) {
			done++
		}
	}
	if goal.SessionsPerWeek > 0 && done >= goal.SessionsPerWeek {
		return false, ReasonWeekDone
	}
	if goal.PreferredTime != nil {
		at := goal.PreferredTime.On(today, now.Location())
		diff := now.Sub(at)
		if diff < 0 {
			diff = -diff
		}
		if diff > NudgeWindow {
			return false, ReasonOutsideWindow
		}
	}
	return true, ReasonNudge
}

type Summary struct {
	WeekStart    civil.Date
	Today        civil.Date
	Sessions     int
	Goal         int
	Total        int
	Unit         string
	TargetsMet   int
	PerDay       [7]int
	DaysWritten  [7]bool
	Met          bool
	SessionsLeft int
}

// WeeklySummary aggregates qualifying sessions of the Sunday-aligned week
// containing today.
func WeeklySummary(goal Goal, activity []Activity, today civil.Date, unit string) Summary {
	weekStart := civil.WeekStart(today)
	s := Summary{WeekStart: weekStart, Today: today, Goal: goal.SessionsPerWeek, Unit: unit}
	for _, a := range activity {
		if !a.Qualifies || !a.Date.Between(weekStart, today) {
			continue
		}
		offset := a.Date.DaysSince(weekStart)
		s.Sessions++
		s.Total += a.Count
		s.PerDay[offset] += a.Count
		s.DaysWritten[offset] = true
		if a.MetTarget {
			s.TargetsMet++
		}
	}
	s.Met = s.Goal > 0 && s.Sessions >= s.Goal
	s.SessionsLeft = max(0, s.Goal-s.Sessions)
	return s
}

// Headline is the one-line notice text for a summary.
func (s Summary) Headline() string {
	if s.Goal == 0 {
		return fmt.Sprintf("%d sessions, %d %s this week", s.Sessions, s.Total, s.Unit)
	}
	if s.Met {
		return fmt.Sprintf("goal met: %d of %d sessions, %d %s", s.Sessions, s.Goal, s.Total, s.Unit)
	}
	return fmt.Sprintf("%d of %d sessions, %d to go, %d %s so far", s.Sessions, s.Goal, s.SessionsLeft, s.Total, s.Unit)
}

// Markdown renders the summary as the body of a managed review block.
func (s Summary) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Week of %s\n\n", s.WeekStart)
	fmt.Fprintf(&b, "- Sessions: %d", s.Sessions)
	if s.Goal > 0 {
		fmt.Fprintf(&b, " of %d", s.Goal)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "- Written: %d %s\n", s.Total, s.Unit)
	fmt.Fprintf(&b, "- Targets met: %d\n\n", s.TargetsMet)
	b.WriteString("| Day | Written |\n|---|---|\n")
	for i := 0; i < 7; i++ {
		d := s.WeekStart.AddDays(i)
		if d.After(s.Today) {
			break
		}
		fmt.Fprintf(&b, "| %s %s | %d |\n", d.Weekday().String()[:3], d, s.PerDay[i])
	}
	return strings.TrimRight(b.String(), "\n")
}
