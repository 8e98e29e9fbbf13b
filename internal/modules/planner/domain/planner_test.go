package domain

import (
	"strings"
	"testing"
	"time"

	"quill/internal/platform/civil"
)

// 2026-10-11 is a Sunday.
func day(d int) civil.Date { return civil.Date{Year: 2026, Month: time.October, Day: d} }

func at(d, hour, minute int) time.Time {
	return time.Date(2026, 10, d, hour, minute, 0, 0, time.UTC)
}

func wrote(d, count int) Activity {
	return Activity{Date: day(d), Count: count, Unit: "words", Qualifies: true}
}

func TestShouldNudgeOnlyOnPreferredDays(t *testing.T) {
	t.Parallel()
	goal := Goal{SessionsPerWeek: 3, PreferredDays: []time.Weekday{time.Monday, time.Wednesday}}
	if ok, reason := ShouldNudge(goal, nil, at(13, 9, 0)); ok || reason != ReasonNotPreferredDay {
		t.Fatalf("tuesday: expected %q, got %t %q", ReasonNotPreferredDay, ok, reason)
	}
	if ok, reason := ShouldNudge(goal, nil, at(14, 9, 0)); !ok || reason != ReasonNudge {
		t.Fatalf("wednesday: expected nudge, got %t %q", ok, reason)
	}
}

func TestShouldNudgeSkipsWhenAlreadyWrittenOrWeekDone(t *testing.T) {
	t.Parallel()
	goal := Goal{SessionsPerWeek: 2}
	if ok, reason := ShouldNudge(goal, []Activity{wrote(14, 300)}, at(14, 18, 0)); ok || reason != ReasonWroteToday {
		t.Fatalf("expected %q, got %t %q", ReasonWroteToday, ok, reason)
	}
	done := []Activity{wrote(12, 200), wrote(13, 150)}
	if ok, reason := ShouldNudge(goal, done, at(14, 18, 0)); ok || reason != ReasonWeekDone {
		t.Fatalf("expected %q, got %t %q", ReasonWeekDone, ok, reason)
	}
	lastWeek := []Activity{wrote(9, 200), wrote(10, 150)}
	if ok, _ := ShouldNudge(goal, lastWeek, at(14, 18, 0)); !ok {
		t.Fatalf("sessions from the previous week must not count")
	}
	skipped := []Activity{{Date: day(14), Qualifies: false}}
	if ok, _ := ShouldNudge(goal, skipped, at(14, 18, 0)); !ok {
		t.Fatalf("non-qualifying session must not suppress the nudge")
	}
}

func TestShouldNudgeRespectsPreferredTimeWindow(t *testing.T) {
	t.Parallel()
	pref := civil.TimeOfDay{Hour: 20}
	goal := Goal{SessionsPerWeek: 3, PreferredTime: &pref}
	cases := []struct {
		now  time.Time
		want bool
	}{
		{at(14, 19, 30), true},
		{at(14, 20, 30), true},
		{at(14, 19, 29), false},
		{at(14, 20, 31), false},
		{at(14, 8, 0), false},
	}
	for _, tc := range cases {
		ok, reason := ShouldNudge(goal, nil, tc.now)
		if ok != tc.want {
			t.Fatalf("%s: expected %t, got %t (%s)", tc.now.Format("15:04"), tc.want, ok, reason)
		}
		if !ok && reason != ReasonOutsideWindow {
			t.Fatalf("%s: unexpected reason %q", tc.now.Format("15:04"), reason)
		}
	}
}

func TestWeeklySummaryAggregatesCurrentWeek(t *testing.T) {
	t.Parallel()
	activity := []Activity{
		wrote(10, 999),
		wrote(11, 200),
		{Date: day(12), Count: 500, Unit: "words", Qualifies: true, MetTarget: true},
		wrote(12, 100),
		{Date: day(13), Count: 40, Qualifies: false},
		wrote(14, 300),
	}
	s := WeeklySummary(Goal{SessionsPerWeek: 3}, activity, day(14), "words")
	if s.WeekStart != day(11) {
		t.Fatalf("expected week start %s, got %s", day(11), s.WeekStart)
	}
	if s.Sessions != 4 || s.Total != 1100 || s.TargetsMet != 1 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if s.PerDay[1] != 600 || !s.DaysWritten[0] || s.DaysWritten[2] {
		t.Fatalf("unexpected per-day breakdown: %v %v", s.PerDay, s.DaysWritten)
	}
	if !s.Met || s.SessionsLeft != 0 {
		t.Fatalf("expected goal met, got %+v", s)
	}
	if !strings.HasPrefix(s.Headline(), "goal met") {
		t.Fatalf("unexpected headline %q", s.Headline())
	}

	short := WeeklySummary(Goal{SessionsPerWeek: 5}, activity, day(14), "words")
	if short.Met || short.SessionsLeft != 1 {
		t.Fatalf("expected one session left, got %+v", short)
	}
}

func TestSummaryMarkdownStopsAtToday(t *testing.T) {
	t.Parallel()
	s := WeeklySummary(Goal{SessionsPerWeek: 2}, []Activity{wrote(12, 250)}, day(13), "words")
	md := s.Markdown()
	for _, want := range []string{"## Week of 2026-10-11", "- Sessions: 1 of 2", "| Mon 2026-10-12 | 250 |", "| Tue 2026-10-13 | 0 |"} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "2026-10-14") {
		t.Fatalf("markdown must not include future days:\n%s", md)
	}
}
