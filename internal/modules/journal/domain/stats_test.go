package domain

import (
	"testing"
	"time"
)

func completed(id string, d int, count int, targetUnit Unit, target, minutes int) Session {
	return Session{
		ID:            id,
		StartedAt:     time.Date(2026, 10, d, 9, 0, 0, 0, time.UTC),
		Status:        StatusCompleted,
		Count:         count,
		CountUnit:     UnitWords,
		TargetUnit:    targetUnit,
		TargetValue:   target,
		ActiveMinutes: minutes,
		Date:          day(d),
	}
}

func TestComputeStatsBuckets(t *testing.T) {
	t.Parallel()
	sessions := []Session{
		completed("s1", 16, 300, UnitWords, 250, 20),
		completed("s2", 16, 100, UnitWords, 250, 10),
		completed("s3", 12, 400, UnitMinutes, 30, 45),
		completed("s4", 3, 200, "", 0, 15),
		completed("s5", 9, 50, UnitWords, 100, 5),
		{ID: "skip", Status: StatusSkipped, Count: 999, Date: day(16)},
	}
	stats := ComputeStats(sessions, Streak{Current: 2}, day(16))
	if stats.Today != 400 {
		t.Fatalf("today: expected 400, got %d", stats.Today)
	}
	// Week starts Sunday 2026-10-11.
	if stats.Week != 800 {
		t.Fatalf("week: expected 800, got %d", stats.Week)
	}
	if stats.Month != 1050 {
		t.Fatalf("month: expected 1050, got %d", stats.Month)
	}
	if stats.SessionsLastWeek != 3 {
		t.Fatalf("trailing sessions: expected 3, got %d", stats.SessionsLastWeek)
	}
	if stats.CompletionRate != 0.5 {
		t.Fatalf("completion rate: expected 0.5, got %f", stats.CompletionRate)
	}
	if len(stats.Recent) != 5 || stats.Recent[0].ID != "s1" {
		t.Fatalf("unexpected recent list %+v", stats.Recent)
	}
	if stats.Recent[len(stats.Recent)-1].ID != "s4" {
		t.Fatalf("oldest recent should be s4, got %s", stats.Recent[len(stats.Recent)-1].ID)
	}
}

func TestComputeStatsCapsRecent(t *testing.T) {
	t.Parallel()
	var sessions []Session
	for d := 1; d <= 10; d++ {
		sessions = append(sessions, completed("s", d, 10, "", 0, 1))
	}
	stats := ComputeStats(sessions, Streak{}, day(10))
	if len(stats.Recent) != RecentLimit {
		t.Fatalf("expected %d recent sessions, got %d", RecentLimit, len(stats.Recent))
	}
	if stats.Recent[0].Date != day(10) {
		t.Fatalf("recent must be newest first, got %s", stats.Recent[0].Date)
	}
	if stats.CompletionRate != 0 {
		t.Fatalf("no targets means zero completion rate, got %f", stats.CompletionRate)
	}
}

func TestAppendLogKeepsNewestEntries(t *testing.T) {
	t.Parallel()
	doc := NewDocument(DefaultSettings("vault", "Writing"))
	for i := 0; i < MaxLogEntries+5; i++ {
		doc.AppendLog(LogEntry{SessionID: "s", Event: EventStart, Detail: string(rune('a' + i%26))})
	}
	if len(doc.SessionLogs) != MaxLogEntries {
		t.Fatalf("expected %d entries, got %d", MaxLogEntries, len(doc.SessionLogs))
	}
	if doc.SessionLogs[0].Detail != string(rune('a'+5)) {
		t.Fatalf("oldest entries must be dropped first, got %q", doc.SessionLogs[0].Detail)
	}
}
