package out

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"quill/internal/modules/tracker/domain"
	apperrors "quill/internal/platform/errors"
	"quill/internal/platform/loop"
)

func TestLoopSchedulerKeepsOneTimerAndStops(t *testing.T) {
	t.Parallel()
	l := loop.New(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx) }()

	s := NewLoopScheduler(l)
	var first, second atomic.Int32
	s.Start(5*time.Millisecond, func() { first.Add(1) })
	s.Start(5*time.Millisecond, func() { second.Add(1) })
	if got := l.Pending(); got != 1 {
		t.Fatalf("expected one armed timer, got %d", got)
	}
	deadline := time.Now().Add(time.Second)
	for second.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	if second.Load() < 2 {
		t.Fatalf("replacement timer never ticked")
	}
	s.Stop()
	if s.Armed() || l.Pending() != 0 {
		t.Fatalf("stop must cancel the timer")
	}
	ticks := second.Load()
	time.Sleep(30 * time.Millisecond)
	if second.Load() > ticks+1 {
		t.Fatalf("stopped timer kept ticking")
	}
	if first.Load() > 1 {
		t.Fatalf("replaced timer kept ticking: %d", first.Load())
	}
}

func TestFileActiveSessionStoreRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".quill", "active-session.json")
	store := NewFileActiveSessionStore(path)
	ctx := context.Background()

	if _, err := store.LoadActive(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected no active session, got %v", err)
	}
	paused := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	want := domain.ActiveSession{
		SessionID:   "s1",
		State:       domain.StatePaused,
		StartedAt:   time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
		CountUnit:   domain.UnitWords,
		Target:      domain.Target{Unit: domain.TargetWords, Value: 300},
		Files:       []domain.TrackedFile{{Path: "Writing/a.md", Baseline: 12, Delta: 5}},
		Count:       5,
		PausedAt:    &paused,
		PausedTotal: 3 * time.Minute,
		Fired:       []int{50},
	}
	if err := store.SaveActive(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.LoadActive(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.SessionID != want.SessionID || got.PausedTotal != want.PausedTotal || !got.PausedAt.Equal(paused) || got.Files[0] != want.Files[0] {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if err := store.ClearActive(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.ClearActive(ctx); err != nil {
		t.Fatalf("second clear must be a no-op: %v", err)
	}
}

func TestVaultContentReaderResolvesRelativePaths(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	if err := os.MkdirAll(filepath.Join(vault, "Writing"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(vault, "Writing", "a.md"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	r := NewVaultContentReader(vault)
	if text, err := r.Read(context.Background(), "Writing/a.md"); err != nil || text != "hello" {
		t.Fatalf("relative read: %q %v", text, err)
	}
	if _, err := r.Read(context.Background(), "Writing/missing.md"); err == nil {
		t.Fatalf("expected error for missing note")
	}
}
