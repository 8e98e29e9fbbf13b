package service

import (
	"context"
	"errors"
	"strconv"

	hclog "github.com/hashicorp/go-hclog"

	"quill/internal/modules/planner/domain"
	plannerout "quill/internal/modules/planner/port/out"
	"quill/internal/platform/civil"
	"quill/internal/platform/clock"
	apperrors "quill/internal/platform/errors"
	"quill/internal/platform/notify"
)

type PlannerService struct {
	clock    clock.Clock
	activity plannerout.ActivitySource
	goals    plannerout.GoalSource
	reviews  plannerout.ReviewWriter
	notifier notify.Notifier
	logger   hclog.Logger
}

func NewPlannerService(
	clock clock.Clock,
	activity plannerout.ActivitySource,
	goals plannerout.GoalSource,
	reviews plannerout.ReviewWriter,
	notifier notify.Notifier,
	logger hclog.Logger,
) *PlannerService {
	return &PlannerService{clock: clock, activity: activity, goals: goals, reviews: reviews, notifier: notifier, logger: logger}
}

func (s *PlannerService) weekActivity(ctx context.Context) ([]domain.Activity, civil.Date, error) {
	today := civil.DateOf(s.clock.Now())
	activity, err := s.activity.Between(ctx, civil.WeekStart(today), today)
	return activity, today, err
}

// ShouldNudge never nudges without an active profile.
func (s *PlannerService) ShouldNudge(ctx context.Context) (bool, domain.Reason, error) {
	goal, err := s.goals.Goal(ctx)
	if errors.Is(err, apperrors.ErrNoActiveProfile) {
		return false, domain.Reason("no active profile"), nil
	}
	if err != nil {
		return false, "", err
	}
	activity, _, err := s.weekActivity(ctx)
	if err != nil {
		return false, "", err
	}
	ok, reason := domain.ShouldNudge(goal, activity, s.clock.Now())
	return ok, reason, nil
}

// ShowNudge notifies when a nudge is due and reports whether it did.
func (s *PlannerService) ShowNudge(ctx context.Context) (bool, error) {
	ok, reason, err := s.ShouldNudge(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		s.logger.Debug("nudge suppressed", "reason", string(reason))
		return false, nil
	}
	goal, err := s.goals.Goal(ctx)
	if err != nil {
		return false, err
	}
	s.notifier.Notify(notify.Notice{
		Kind:    notify.KindReminder,
		Title:   "Time to write",
		Message: nudgeMessage(goal),
		Actions: []notify.Action{{ID: "session-start", Label: "Start session"}},
	})
	return true, nil
}

func nudgeMessage(goal domain.Goal) string {
	if goal.Target > 0 {
		return "a short session toward today's " + strconv.Itoa(goal.Target) + " " + goal.TargetUnit
	}
	return "a short session keeps the streak alive"
}

func (s *PlannerService) WeeklySummary(ctx context.Context) (domain.Summary, error) {
	goal, err := s.goals.Goal(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNoActiveProfile) {
		return domain.Summary{}, err
	}
	activity, today, err := s.weekActivity(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	unit, err := s.activity.Unit(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.WeeklySummary(goal, activity, today, unit), nil
}

func (s *PlannerService) ShowWeeklySummary(ctx context.Context) (domain.Summary, error) {
	summary, err := s.WeeklySummary(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	kind := notify.KindInfo
	if summary.Met {
		kind = notify.KindSuccess
	}
	s.notifier.Notify(notify.Notice{Kind: kind, Title: "Weekly summary", Message: summary.Headline()})
	return summary, nil
}

// WriteReview refreshes the managed block of this week's review note.
func (s *PlannerService) WriteReview(ctx context.Context) (string, domain.Summary, error) {
	summary, err := s.WeeklySummary(ctx)
	if err != nil {
		return "", domain.Summary{}, err
	}
	path, err := s.reviews.Write(ctx, summary)
	if err != nil {
		return "", domain.Summary{}, err
	}
	return path, summary, nil
}
