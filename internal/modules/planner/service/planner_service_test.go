package service

import (
	"context"
	"testing"
	"time"

	"quill/internal/modules/planner/domain"
	"quill/internal/platform/civil"
	apperrors "quill/internal/platform/errors"
	"quill/internal/platform/logging"
	"quill/internal/platform/notify"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

type fakeActivity struct {
	items []domain.Activity
}

func (f *fakeActivity) Between(_ context.Context, from, to civil.Date) ([]domain.Activity, error) {
	var out []domain.Activity
	for _, a := range f.items {
		if a.Date.Between(from, to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeActivity) Unit(context.Context) (string, error) { return "words", nil }

type fakeGoals struct {
	goal domain.Goal
	err  error
}

func (f fakeGoals) Goal(context.Context) (domain.Goal, error) { return f.goal, f.err }

type fakeReviews struct {
	written []domain.Summary
}

func (f *fakeReviews) Write(_ context.Context, s domain.Summary) (string, error) {
	f.written = append(f.written, s)
	return "/vault/review.md", nil
}

func newPlanner(now time.Time, goals fakeGoals, activity ...domain.Activity) (*PlannerService, *fakeReviews, *[]notify.Notice) {
	notices := &[]notify.Notice{}
	reviews := &fakeReviews{}
	svc := NewPlannerService(
		fixedClock(now),
		&fakeActivity{items: activity},
		goals,
		reviews,
		notify.Func(func(n notify.Notice) { *notices = append(*notices, n) }),
		logging.Discard(),
	)
	return svc, reviews, notices
}

func TestShowNudgeOffersSessionStart(t *testing.T) {
	t.Parallel()
	svc, _, notices := newPlanner(time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC), fakeGoals{goal: domain.Goal{SessionsPerWeek: 3, Target: 500, TargetUnit: "words"}})
	shown, err := svc.ShowNudge(context.Background())
	if err != nil || !shown {
		t.Fatalf("expected nudge, got %t %v", shown, err)
	}
	if len(*notices) != 1 {
		t.Fatalf("expected one notice, got %d", len(*notices))
	}
	n := (*notices)[0]
	if n.Kind != notify.KindReminder || len(n.Actions) != 1 || n.Actions[0].ID != "session-start" {
		t.Fatalf("unexpected notice %+v", n)
	}
}

func TestNoNudgeWithoutProfile(t *testing.T) {
	t.Parallel()
	svc, _, notices := newPlanner(time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC), fakeGoals{err: apperrors.ErrNoActiveProfile})
	ok, reason, err := svc.ShouldNudge(context.Background())
	if err != nil || ok || reason == "" {
		t.Fatalf("expected silent refusal, got %t %q %v", ok, reason, err)
	}
	if shown, _ := svc.ShowNudge(context.Background()); shown || len(*notices) != 0 {
		t.Fatalf("no notice expected without a profile")
	}
	summary, err := svc.WeeklySummary(context.Background())
	if err != nil || summary.Goal != 0 {
		t.Fatalf("summary without profile: %+v %v", summary, err)
	}
}

func TestWriteReviewUsesCurrentWeek(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	svc, reviews, notices := newPlanner(now, fakeGoals{goal: domain.Goal{SessionsPerWeek: 1}},
		domain.Activity{Date: civil.Date{Year: 2026, Month: time.October, Day: 12}, Count: 420, Qualifies: true},
	)
	path, summary, err := svc.WriteReview(context.Background())
	if err != nil {
		t.Fatalf("write review: %v", err)
	}
	if path == "" || len(reviews.written) != 1 || summary.Total != 420 || !summary.Met {
		t.Fatalf("unexpected review result %q %+v", path, summary)
	}
	if _, err := svc.ShowWeeklySummary(context.Background()); err != nil {
		t.Fatalf("show summary: %v", err)
	}
	if len(*notices) != 1 || (*notices)[0].Kind != notify.KindSuccess {
		t.Fatalf("expected success notice, got %+v", *notices)
	}
}
