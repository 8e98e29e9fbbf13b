package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"quill/internal/modules/command/domain"
	"quill/internal/platform/logging"
)

type fakeSessions struct {
	started []string
	active  string
	calls   []string
}

func (f *fakeSessions) Start(_ context.Context, rel string) (string, error) {
	f.started = append(f.started, rel)
	return "started " + rel, nil
}

func (f *fakeSessions) Pause(context.Context) (string, error) {
	f.calls = append(f.calls, "pause")
	return "paused", nil
}

func (f *fakeSessions) Resume(context.Context) (string, error) {
	f.calls = append(f.calls, "resume")
	return "resumed", nil
}

func (f *fakeSessions) Complete(context.Context) (string, error) {
	f.calls = append(f.calls, "complete")
	return "completed", nil
}

func (f *fakeSessions) Skip(context.Context) (string, error) {
	f.calls = append(f.calls, "skip")
	return "skipped", nil
}

func (f *fakeSessions) ActiveFile(context.Context) (string, bool, error) {
	return f.active, f.active != "", nil
}

type fakeNotes struct{ created int }

func (f *fakeNotes) QuickNote(context.Context) (string, error) {
	f.created++
	return "Writing/Quick note.md", nil
}

type fakeLocator struct {
	latest   string
	appended map[string]string
}

func (f *fakeLocator) Latest(context.Context) (string, bool, error) {
	return f.latest, f.latest != "", nil
}

func (f *fakeLocator) Append(_ context.Context, rel, text string) error {
	if f.appended == nil {
		f.appended = map[string]string{}
	}
	f.appended[rel] += text
	return nil
}

type fixedPrompt string

func (p fixedPrompt) Random(context.Context) (string, error) { return string(p), nil }

type fixedSummary string

func (s fixedSummary) WeeklySummary(context.Context) (string, error) { return string(s), nil }

type noTerminal struct{}

func (noTerminal) OpenDashboard(context.Context) error { return domain.ErrNotInteractive }
func (noTerminal) Onboard(context.Context) error       { return domain.ErrNotInteractive }

func newCommands(sessions *fakeSessions, notes *fakeNotes, locator *fakeLocator) *CommandService {
	return NewCommandService(Deps{
		Sessions:    sessions,
		Notes:       notes,
		Locator:     locator,
		Prompts:     fixedPrompt("Describe a window at dusk."),
		Summaries:   fixedSummary("2 of 3 sessions"),
		Interactive: noTerminal{},
		Logger:      logging.Discard(),
	})
}

func TestSessionStartTargetsLatestNoteOrCreatesQuickNote(t *testing.T) {
	t.Parallel()
	sessions := &fakeSessions{}
	notes := &fakeNotes{}
	locator := &fakeLocator{latest: "Writing/Chapter 3.md"}
	svc := newCommands(sessions, notes, locator)

	if _, err := svc.Execute(context.Background(), domain.SessionStart); err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(sessions.started) != 1 || sessions.started[0] != "Writing/Chapter 3.md" {
		t.Fatalf("expected session on latest note, got %v", sessions.started)
	}

	locator.latest = ""
	result, err := svc.Execute(context.Background(), domain.SessionStart)
	if err != nil {
		t.Fatalf("start without notes: %v", err)
	}
	if notes.created != 1 || !strings.Contains(result.Message, "Quick note") {
		t.Fatalf("expected quick note fallback, got %+v", result)
	}
	if !strings.Contains(result.OutputJSON, `"command":"session-start"`) {
		t.Fatalf("unexpected output json %s", result.OutputJSON)
	}
}

func TestInsertPromptPrefersActiveSessionFile(t *testing.T) {
	t.Parallel()
	sessions := &fakeSessions{active: "Writing/Draft.md"}
	locator := &fakeLocator{latest: "Writing/Other.md"}
	svc := newCommands(sessions, &fakeNotes{}, locator)

	if _, err := svc.Execute(context.Background(), domain.InsertPrompt); err != nil {
		t.Fatalf("insert prompt: %v", err)
	}
	if got := locator.appended["Writing/Draft.md"]; got != "\n> Describe a window at dusk.\n" {
		t.Fatalf("unexpected append %q", got)
	}
	if _, ok := locator.appended["Writing/Other.md"]; ok {
		t.Fatalf("latest note must not be touched while a session is active")
	}

	bare := newCommands(&fakeSessions{}, &fakeNotes{}, &fakeLocator{})
	result, err := bare.Execute(context.Background(), domain.InsertPrompt)
	if err != nil || result.Message != "Describe a window at dusk." {
		t.Fatalf("expected bare prompt, got %+v %v", result, err)
	}
}

func TestExecuteRoutesSessionCommandsAndRejectsUnknown(t *testing.T) {
	t.Parallel()
	sessions := &fakeSessions{}
	svc := newCommands(sessions, &fakeNotes{}, &fakeLocator{})
	for _, id := range []string{domain.SessionPause, domain.SessionResume, domain.SessionComplete, domain.SessionSkip} {
		if _, err := svc.Execute(context.Background(), id); err != nil {
			t.Fatalf("%s: %v", id, err)
		}
	}
	if strings.Join(sessions.calls, ",") != "pause,resume,complete,skip" {
		t.Fatalf("unexpected routing %v", sessions.calls)
	}
	if r, err := svc.Execute(context.Background(), domain.WeeklySummary); err != nil || r.Message != "2 of 3 sessions" {
		t.Fatalf("weekly summary: %+v %v", r, err)
	}
	if _, err := svc.Execute(context.Background(), domain.Onboarding); !errors.Is(err, domain.ErrNotInteractive) {
		t.Fatalf("expected not interactive, got %v", err)
	}
	if _, err := svc.Execute(context.Background(), "format-disk"); !errors.Is(err, domain.ErrCommandNotFound) {
		t.Fatalf("expected command not found, got %v", err)
	}
}
