package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"quill/internal/modules/journal/domain"
	journalout "quill/internal/modules/journal/port/out"
	"quill/internal/platform/civil"
	"quill/internal/platform/clock"
	apperrors "quill/internal/platform/errors"
)

// JournalService owns the data document. Every read-modify-write goes
// through Update, which holds the lock across load and save.
type JournalService struct {
	clock     clock.Clock
	store     journalout.DocumentStore
	projector journalout.SessionProjector
	notes     journalout.SessionNoteWriter
	defaults  domain.Settings
	logger    hclog.Logger

	mu sync.Mutex
}

func NewJournalService(
	clock clock.Clock,
	store journalout.DocumentStore,
	projector journalout.SessionProjector,
	notes journalout.SessionNoteWriter,
	defaults domain.Settings,
	logger hclog.Logger,
) *JournalService {
	return &JournalService{
		clock:     clock,
		store:     store,
		projector: projector,
		notes:     notes,
		defaults:  defaults,
		logger:    logger,
	}
}

func (s *JournalService) today() civil.Date {
	return civil.DateOf(s.clock.Now())
}

func (s *JournalService) load(ctx context.Context) (domain.Document, error) {
	doc, err := s.store.Load(ctx, domain.NewDocument(s.defaults))
	if err != nil {
		return domain.Document{}, err
	}
	if doc.SchemaVersion == 0 {
		doc.SchemaVersion = domain.SchemaVersion
	}
	return doc, nil
}

func (s *JournalService) Update(ctx context.Context, fn func(*domain.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return s.store.Save(ctx, doc)
}

func (s *JournalService) View(ctx context.Context, fn func(domain.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	return fn(doc)
}

// AddSession appends a finalized session, credits the streak when the
// session qualifies, then projects it and writes its note. Projection and
// note failures are logged; the session is already persisted.
func (s *JournalService) AddSession(ctx context.Context, session domain.Session) (domain.Session, string, error) {
	if err := session.Validate(); err != nil {
		return domain.Session{}, "", err
	}
	session.Files = append([]string(nil), session.Files...)
	err := s.Update(ctx, func(doc *domain.Document) error {
		if _, exists := doc.FindSession(session.ID); exists {
			return fmt.Errorf("%w: session %s already logged", apperrors.ErrInvalidInput, session.ID)
		}
		doc.Sessions = append(doc.Sessions, session)
		if session.Qualifies() {
			s.applyStreak(doc, session.Date)
		}
		return nil
	})
	if err != nil {
		return domain.Session{}, "", err
	}

	if s.projector != nil {
		if err := s.projector.UpsertSession(ctx, session); err != nil {
			s.logger.Warn("project session", "session", session.ID, "error", err)
		}
	}
	notePath := ""
	if s.notes != nil && session.Status == domain.StatusCompleted {
		path, err := s.notes.Write(ctx, session)
		if err != nil {
			s.logger.Warn("write session note", "session", session.ID, "error", err)
		} else {
			notePath = path
		}
	}
	return session, notePath, nil
}

func (s *JournalService) applyStreak(doc *domain.Document, date civil.Date) {
	settings := doc.Settings
	if settings.StreakMode == domain.ModeWeekly {
		doc.Streak = doc.Streak.ApplyWeekly(domain.QualifyingDates(doc.Sessions), date, settings.WeeklyTarget, settings.GraceDays)
		return
	}
	doc.Streak = doc.Streak.ApplyDaily(date, settings.GraceDays)
}

// UpdateStreak credits date against the configured streak rule.
func (s *JournalService) UpdateStreak(ctx context.Context, date civil.Date) (domain.Streak, error) {
	if date.IsZero() {
		return domain.Streak{}, fmt.Errorf("%w: date is required", apperrors.ErrInvalidInput)
	}
	var out domain.Streak
	err := s.Update(ctx, func(doc *domain.Document) error {
		s.applyStreak(doc, date)
		out = doc.Streak
		return nil
	})
	return out, err
}

// Streak returns the stored streak with the week vector refreshed for the
// current week.
func (s *JournalService) Streak(ctx context.Context) (domain.Streak, error) {
	var out domain.Streak
	err := s.View(ctx, func(doc domain.Document) error {
		out = doc.Streak
		out.Week = domain.WeekVector(domain.QualifyingDates(doc.Sessions), civil.WeekStart(s.today()))
		return nil
	})
	return out, err
}

func (s *JournalService) RebuildStreak(ctx context.Context) (domain.Streak, error) {
	var out domain.Streak
	err := s.Update(ctx, func(doc *domain.Document) error {
		doc.Streak = domain.Replay(doc.Sessions, doc.Settings, s.today(), doc.Streak.Longest)
		out = doc.Streak
		return nil
	})
	return out, err
}

func (s *JournalService) DashboardStats(ctx context.Context) (domain.Stats, domain.Unit, error) {
	var (
		stats domain.Stats
		unit  domain.Unit
	)
	today := s.today()
	err := s.View(ctx, func(doc domain.Document) error {
		streak := doc.Streak
		streak.Week = domain.WeekVector(domain.QualifyingDates(doc.Sessions), civil.WeekStart(today))
		stats = domain.ComputeStats(doc.Sessions, streak, today)
		unit = doc.Settings.Unit
		return nil
	})
	return stats, unit, err
}

// Sessions lists logged sessions in [from, to], newest first. The SQLite
// projection serves the query when configured.
func (s *JournalService) Sessions(ctx context.Context, from, to civil.Date) ([]domain.Session, error) {
	if s.projector != nil {
		sessions, err := s.projector.ListBetween(ctx, from, to)
		if err == nil {
			return sessions, nil
		}
		s.logger.Warn("query session projection, falling back to document", "error", err)
	}
	var out []domain.Session
	err := s.View(ctx, func(doc domain.Document) error {
		for _, session := range doc.Sessions {
			if session.Date.Between(from, to) {
				out = append(out, session)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, err
}

// CompletedSince reports whether a qualifying session ended at or after t.
func (s *JournalService) CompletedSince(ctx context.Context, t time.Time) (bool, error) {
	found := false
	err := s.View(ctx, func(doc domain.Document) error {
		for _, session := range doc.Sessions {
			if session.Qualifies() && session.EndedAt != nil && !session.EndedAt.Before(t) {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (s *JournalService) AppendLog(ctx context.Context, entry domain.LogEntry) error {
	if entry.At.IsZero() {
		entry.At = s.clock.Now()
	}
	return s.Update(ctx, func(doc *domain.Document) error {
		doc.AppendLog(entry)
		return nil
	})
}

func (s *JournalService) Settings(ctx context.Context) (domain.Settings, error) {
	var out domain.Settings
	err := s.View(ctx, func(doc domain.Document) error {
		out = doc.Settings
		return nil
	})
	return out, err
}

// UpdateSettings validates before persisting. Changing streak mode or grace
// rebuilds the streak from the log.
func (s *JournalService) UpdateSettings(ctx context.Context, edit func(*domain.Settings)) (domain.Settings, error) {
	var out domain.Settings
	err := s.Update(ctx, func(doc *domain.Document) error {
		next := doc.Settings
		edit(&next)
		if err := next.Validate(); err != nil {
			return err
		}
		rebuild := next.StreakMode != doc.Settings.StreakMode ||
			next.GraceDays != doc.Settings.GraceDays ||
			next.WeeklyTarget != doc.Settings.WeeklyTarget
		doc.Settings = next
		if rebuild {
			doc.Streak = domain.Replay(doc.Sessions, doc.Settings, s.today(), doc.Streak.Longest)
		}
		out = next
		return nil
	})
	return out, err
}

func (s *JournalService) Export(ctx context.Context) ([]byte, error) {
	var raw []byte
	err := s.View(ctx, func(doc domain.Document) error {
		var err error
		raw, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal export: %w", err)
		}
		return nil
	})
	return raw, err
}

type ImportResult struct {
	Added   int
	Skipped int
	Streak  domain.Streak
}

// Import merges an exported document. Sessions, reminders and user
// templates merge by id and the profile is adopted only when none exists.
// Local settings win unless the local log is empty, in which case the
// exported settings are adopted. The streak is replayed with longest = max
// of both sides.
func (s *JournalService) Import(ctx context.Context, raw []byte) (ImportResult, error) {
	incoming := domain.NewDocument(s.defaults)
	if err := json.Unmarshal(raw, &incoming); err != nil {
		return ImportResult{}, fmt.Errorf("%w: decode import: %v", apperrors.ErrInvalidInput, err)
	}
	result := ImportResult{}
	err := s.Update(ctx, func(doc *domain.Document) error {
		if len(doc.Sessions) == 0 {
			adoptSettings(doc, incoming.Settings)
		}
		known := map[string]struct{}{}
		for _, session := range doc.Sessions {
			known[session.ID] = struct{}{}
		}
		for _, session := range incoming.Sessions {
			if _, ok := known[session.ID]; ok || session.Validate() != nil {
				result.Skipped++
				continue
			}
			known[session.ID] = struct{}{}
			doc.Sessions = append(doc.Sessions, session)
			result.Added++
		}
		sort.SliceStable(doc.Sessions, func(i, j int) bool {
			return doc.Sessions[i].StartedAt.Before(doc.Sessions[j].StartedAt)
		})

		reminderIDs := map[string]struct{}{}
		for _, r := range doc.Reminders {
			reminderIDs[r.ID] = struct{}{}
		}
		for _, r := range incoming.Reminders {
			if _, ok := reminderIDs[r.ID]; !ok && r.Validate() == nil {
				doc.Reminders = append(doc.Reminders, r)
			}
		}
		templateIDs := map[string]struct{}{}
		for _, t := range doc.Templates {
			templateIDs[t.ID] = struct{}{}
		}
		for _, t := range incoming.Templates {
			if _, ok := templateIDs[t.ID]; !ok && !t.BuiltIn && t.Validate() == nil {
				doc.Templates = append(doc.Templates, t)
			}
		}
		if doc.Profile == nil && incoming.Profile != nil {
			p := *incoming.Profile
			doc.Profile = &p
		}
		for _, entry := range incoming.SessionLogs {
			doc.AppendLog(entry)
		}

		floor := max(doc.Streak.Longest, incoming.Streak.Longest)
		doc.Streak = domain.Replay(doc.Sessions, doc.Settings, s.today(), floor)
		result.Streak = doc.Streak
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	if _, err := s.Reindex(ctx); err != nil {
		s.logger.Warn("reindex after import", "error", err)
	}
	return result, nil
}

// adoptSettings takes the exported streak and counting settings. The vault
// name stays local, and invalid incoming settings are ignored.
func adoptSettings(doc *domain.Document, incoming domain.Settings) {
	next := incoming
	next.VaultName = doc.Settings.VaultName
	if next.NotesFolder == "" {
		next.NotesFolder = doc.Settings.NotesFolder
	}
	if next.Validate() != nil {
		return
	}
	doc.Settings = next
}

// Reindex rebuilds the SQLite projection from the document.
func (s *JournalService) Reindex(ctx context.Context) (int, error) {
	if s.projector == nil {
		return 0, nil
	}
	var sessions []domain.Session
	if err := s.View(ctx, func(doc domain.Document) error {
		sessions = append(sessions, doc.Sessions...)
		return nil
	}); err != nil {
		return 0, err
	}
	if err := s.projector.Reset(ctx); err != nil {
		return 0, err
	}
	for _, session := range sessions {
		if err := s.projector.UpsertSession(ctx, session); err != nil {
			return 0, err
		}
	}
	return len(sessions), nil
}
