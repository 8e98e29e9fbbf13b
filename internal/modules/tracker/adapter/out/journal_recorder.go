package out

import (
	"context"

	journaldto "quill/internal/modules/journal/dto"
	journalin "quill/internal/modules/journal/port/in"
	"quill/internal/modules/tracker/domain"
	trackerout "quill/internal/modules/tracker/port/out"
)

// JournalRecorder transfers finished sessions to the journal by copy.
type JournalRecorder struct {
	journal journalin.Usecase
}

func NewJournalRecorder(journal journalin.Usecase) trackerout.SessionRecorder {
	return &JournalRecorder{journal: journal}
}

func (r *JournalRecorder) Record(ctx context.Context, session domain.Finished) (trackerout.Recorded, error) {
	out, err := r.journal.AddSession(ctx, journaldto.AddSessionInput{
		ID:            session.ID,
		StartedAt:     session.StartedAt,
		EndedAt:       session.EndedAt,
		Count:         session.Count,
		CountUnit:     string(session.CountUnit),
		TargetUnit:    string(session.Target.Unit),
		TargetValue:   session.Target.Value,
		ActiveMinutes: session.ActiveMinutes,
		Status:        string(session.Outcome),
		Files:         append([]string(nil), session.Files...),
	})
	if err != nil {
		return trackerout.Recorded{}, err
	}
	return trackerout.Recorded{NotePath: out.NotePath, StreakCurrent: out.Streak.Current}, nil
}

func (r *JournalRecorder) Log(ctx context.Context, sessionID, event, detail string) error {
	return r.journal.AppendLog(ctx, journaldto.LogInput{SessionID: sessionID, Event: event, Detail: detail})
}
