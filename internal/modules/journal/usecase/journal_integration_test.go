package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	journalout "quill/internal/modules/journal/adapter/out"
	"quill/internal/modules/journal/domain"
	"quill/internal/modules/journal/dto"
	journalin "quill/internal/modules/journal/port/in"
	"quill/internal/modules/journal/service"
	"quill/internal/modules/journal/usecase"
	"quill/internal/platform/civil"
	apperrors "quill/internal/platform/errors"
	"quill/internal/platform/logging"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func newJournal(t *testing.T, vault string, clk *fixedClock) (journalin.Usecase, *service.JournalService) {
	t.Helper()
	dataDir := filepath.Join(vault, ".quill")
	projector, err := journalout.NewSQLiteSessionProjector(filepath.Join(dataDir, "quill.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	t.Cleanup(func() { _ = projector.Close() })
	svc := service.NewJournalService(
		clk,
		journalout.NewFileDocumentStore(filepath.Join(dataDir, "data.json")),
		projector,
		journalout.NewVaultSessionNoteWriter(vault, "Writing"),
		domain.DefaultSettings("vault", "Writing"),
		logging.Discard(),
	)
	return usecase.NewInteractor(svc), svc
}

func session(id string, start time.Time, count int) dto.AddSessionInput {
	return dto.AddSessionInput{
		ID:            id,
		StartedAt:     start,
		EndedAt:       start.Add(30 * time.Minute),
		Count:         count,
		CountUnit:     "words",
		TargetUnit:    "words",
		TargetValue:   250,
		ActiveMinutes: 30,
		Status:        "completed",
		Files:         []string{"Writing/draft.md"},
	}
}

func TestAddSessionUpdatesStreakStatsAndProjection(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	clk := &fixedClock{now: time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC)}
	uc, _ := newJournal(t, vault, clk)
	ctx := context.Background()

	for i, count := range []int{300, 120, 0} {
		start := time.Date(2026, 10, 14+i, 9, 0, 0, 0, time.UTC)
		out, err := uc.AddSession(ctx, session(string(rune('a'+i)), start, count))
		if err != nil {
			t.Fatalf("add session %d: %v", i, err)
		}
		if count > 0 && out.NotePath == "" {
			t.Fatalf("expected a session note for session %d", i)
		}
	}

	streak, err := uc.Streak(ctx)
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if streak.Current != 2 || streak.Longest != 2 {
		t.Fatalf("zero-count session must not extend the streak: %+v", streak)
	}
	if !streak.Week[3] || !streak.Week[4] || streak.Week[5] {
		t.Fatalf("unexpected week vector %v", streak.Week)
	}

	stats, err := uc.DashboardStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Week != 420 || stats.Today != 0 || stats.SessionsLastWeek != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.CompletionRate < 0.33 || stats.CompletionRate > 0.34 {
		t.Fatalf("expected one of three targets met, got %f", stats.CompletionRate)
	}

	listed, err := uc.Sessions(ctx, dto.SessionRangeInput{From: civil.Date{Year: 2026, Month: 10, Day: 15}})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(listed) != 2 || listed[0].ID != "c" {
		t.Fatalf("expected sessions c and b newest first, got %+v", listed)
	}

	if _, err := uc.AddSession(ctx, session("a", time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC), 10)); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("duplicate session id must be rejected, got %v", err)
	}
}

func TestExportImportMergesByID(t *testing.T) {
	t.Parallel()
	clk := &fixedClock{now: time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC)}
	ctx := context.Background()

	source, _ := newJournal(t, t.TempDir(), clk)
	for i := 0; i < 3; i++ {
		start := time.Date(2026, 10, 10+i, 9, 0, 0, 0, time.UTC)
		if _, err := source.AddSession(ctx, session("shared-"+string(rune('a'+i)), start, 200)); err != nil {
			t.Fatalf("seed source: %v", err)
		}
	}
	raw, err := source.Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(string(raw), `"schema_version": 1`) {
		t.Fatalf("export should carry the document: %s", raw)
	}

	target, targetSvc := newJournal(t, t.TempDir(), clk)
	if _, err := target.AddSession(ctx, session("shared-a", time.Date(2026, 10, 10, 9, 0, 0, 0, time.UTC), 200)); err != nil {
		t.Fatalf("seed target: %v", err)
	}
	if _, err := target.UpdateSettings(ctx, dto.UpdateSettingsInput{GraceDays: intPtr(0)}); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	result, err := target.Import(ctx, raw)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Added != 2 || result.Skipped != 1 {
		t.Fatalf("unexpected import result %+v", result)
	}
	if result.Streak.Longest != 3 {
		t.Fatalf("expected replayed longest 3, got %+v", result.Streak)
	}
	if !result.Streak.Week[0] || !result.Streak.Week[1] || result.Streak.DaysThisWeek != 2 {
		t.Fatalf("import result must carry this week's days, got %+v", result.Streak)
	}
	settings, err := targetSvc.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if settings.GraceDays != 0 {
		t.Fatalf("local settings must win on import, got %+v", settings)
	}

	n, err := target.Reindex(ctx)
	if err != nil || n != 3 {
		t.Fatalf("reindex: %d %v", n, err)
	}

	if _, err := target.Import(ctx, []byte("{not json")); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("malformed import must be rejected, got %v", err)
	}
}

func TestImportIntoEmptyStoreAdoptsExportedSettings(t *testing.T) {
	t.Parallel()
	clk := &fixedClock{now: time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC)}
	ctx := context.Background()

	source, _ := newJournal(t, t.TempDir(), clk)
	weekly := "weekly"
	if _, err := source.UpdateSettings(ctx, dto.UpdateSettingsInput{StreakMode: &weekly, WeeklyTarget: intPtr(2), GraceDays: intPtr(2)}); err != nil {
		t.Fatalf("configure source: %v", err)
	}
	for _, d := range []int{4, 5, 11, 12, 13} {
		start := time.Date(2026, 10, d, 9, 0, 0, 0, time.UTC)
		if _, err := source.AddSession(ctx, session(start.Format("0102"), start, 200)); err != nil {
			t.Fatalf("seed source: %v", err)
		}
	}
	want, err := source.Streak(ctx)
	if err != nil {
		t.Fatalf("source streak: %v", err)
	}
	if want.Mode != "weekly" || want.Current != 2 {
		t.Fatalf("unexpected source streak %+v", want)
	}
	raw, err := source.Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	target, targetSvc := newJournal(t, t.TempDir(), clk)
	result, err := target.Import(ctx, raw)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Added != 5 {
		t.Fatalf("unexpected import result %+v", result)
	}
	if result.Streak.Mode != "weekly" || result.Streak.Current != want.Current || result.Streak.Longest != want.Longest {
		t.Fatalf("streak changed on import: want %+v, got %+v", want, result.Streak)
	}
	settings, err := targetSvc.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if settings.StreakMode != domain.ModeWeekly || settings.WeeklyTarget != 2 || settings.GraceDays != 2 {
		t.Fatalf("exported settings not adopted: %+v", settings)
	}
	if settings.VaultName != "vault" {
		t.Fatalf("vault name must stay local, got %q", settings.VaultName)
	}
}

func TestUpdateSettingsValidatesAndRebuildsStreak(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	clk := &fixedClock{now: time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC)}
	uc, _ := newJournal(t, vault, clk)
	ctx := context.Background()

	if _, err := uc.UpdateSettings(ctx, dto.UpdateSettingsInput{GraceDays: intPtr(9)}); !errors.Is(err, apperrors.ErrInvalidSettings) {
		t.Fatalf("expected invalid settings, got %v", err)
	}
	for _, d := range []int{11, 12, 14} {
		if _, err := uc.AddSession(ctx, session(time.Date(2026, 10, d, 0, 0, 0, 0, time.UTC).Format("0102"), time.Date(2026, 10, d, 9, 0, 0, 0, time.UTC), 100)); err != nil {
			t.Fatalf("add session: %v", err)
		}
	}
	weekly := "weekly"
	settings, err := uc.UpdateSettings(ctx, dto.UpdateSettingsInput{StreakMode: &weekly})
	if err != nil {
		t.Fatalf("switch to weekly: %v", err)
	}
	if settings.StreakMode != "weekly" {
		t.Fatalf("mode not saved: %+v", settings)
	}
	got, err := uc.Streak(ctx)
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if got.Current != 1 || got.DaysThisWeek != 3 {
		t.Fatalf("expected one credited week with three days, got %+v", got)
	}

	if _, err := os.Stat(filepath.Join(vault, ".quill", "data.json")); err != nil {
		t.Fatalf("data document missing: %v", err)
	}
}

func intPtr(v int) *int { return &v }
