package out

import (
	"context"

	journaldto "quill/internal/modules/journal/dto"
	journalin "quill/internal/modules/journal/port/in"
	"quill/internal/modules/planner/domain"
	plannerout "quill/internal/modules/planner/port/out"
	"quill/internal/platform/civil"
)

type JournalActivitySource struct {
	journal journalin.Usecase
}

func NewJournalActivitySource(journal journalin.Usecase) plannerout.ActivitySource {
	return &JournalActivitySource{journal: journal}
}

func (s *JournalActivitySource) Between(ctx context.Context, from, to civil.Date) ([]domain.Activity, error) {
	sessions, err := s.journal.Sessions(ctx, journaldto.SessionRangeInput{From: from, To: to})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Activity, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, domain.Activity{
			Date:      session.Date,
			Count:     session.Count,
			Unit:      session.CountUnit,
			Qualifies: session.Status == "completed" && session.Count > 0,
			MetTarget: session.MetTarget,
		})
	}
	return out, nil
}

func (s *JournalActivitySource) Unit(ctx context.Context) (string, error) {
	settings, err := s.journal.Settings(ctx)
	if err != nil {
		return "", err
	}
	return settings.Unit, nil
}
