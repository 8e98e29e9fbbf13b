package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	journaldto "quill/internal/modules/journal/dto"
	reminderdto "quill/internal/modules/reminder/dto"
	templatedto "quill/internal/modules/template/dto"
	trackerdto "quill/internal/modules/tracker/dto"
	"quill/internal/platform/notify"
	"quill/internal/ui/components"
)

type fakePorts struct {
	commands []string
	actions  []string
	notes    []string
}

func (f *fakePorts) Status(context.Context) (trackerdto.StatusOutput, error) {
	return trackerdto.StatusOutput{State: "idle"}, nil
}

func (f *fakePorts) Stats(context.Context) (journaldto.StatsOutput, error) {
	return journaldto.StatsOutput{Unit: "words"}, nil
}

func (f *fakePorts) Upcoming(context.Context) ([]reminderdto.ReminderOutput, error) { return nil, nil }

func (f *fakePorts) RecentSessions(context.Context) ([]journaldto.SessionOutput, error) {
	return nil, nil
}

func (f *fakePorts) Templates(context.Context) ([]templatedto.TemplateOutput, error) {
	return nil, nil
}

func (f *fakePorts) Reminders(context.Context) ([]reminderdto.ReminderOutput, error) { return nil, nil }

func (f *fakePorts) RunCommand(_ context.Context, id string) (string, error) {
	f.commands = append(f.commands, id)
	return "ran " + id, nil
}

func (f *fakePorts) HandleNoticeAction(_ context.Context, id string) (string, error) {
	f.actions = append(f.actions, id)
	return "handled " + id, nil
}

func (f *fakePorts) NewNote(_ context.Context, id string) (string, error) {
	f.notes = append(f.notes, id)
	return "created", nil
}

func (f *fakePorts) SetReminderEnabled(context.Context, string, bool) error { return nil }

func newTestModel(f *fakePorts) Model {
	ports := Ports{Dashboard: f, Sessions: f, Templates: f, Reminders: f, Actions: f}
	return NewModel("Notebook", ports, []components.Hint{{ID: "quick-note", Title: "Quick note"}}, nil)
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	return cmd()
}

func TestPersistentNoticeActionsAreInvokedByKey(t *testing.T) {
	t.Parallel()
	f := &fakePorts{}
	m := newTestModel(f)

	next, _ := m.Update(noticeMsg(notify.Notice{
		Kind:       notify.KindReminder,
		Title:      "Evening writing",
		Persistent: true,
		Actions:    []notify.Action{{ID: "reminder-ack:r1", Label: "Write now"}, {ID: "reminder-snooze:r1", Label: "Snooze"}},
	}))
	m = next.(Model)
	if m.notice == nil {
		t.Fatalf("expected persistent notice to be held")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	m = next.(Model)
	if m.notice != nil {
		t.Fatalf("expected notice cleared after action")
	}
	done, ok := runCmd(t, cmd).(actionDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("unexpected action result: %#v", done)
	}
	if len(f.actions) != 1 || f.actions[0] != "reminder-snooze:r1" {
		t.Fatalf("expected snooze action, got %v", f.actions)
	}

	next, _ = m.Update(done)
	if got := next.(Model).status; got != "handled reminder-snooze:r1" {
		t.Fatalf("unexpected status: %q", got)
	}
}

func TestTransientNoticeGoesToStatus(t *testing.T) {
	t.Parallel()
	m := newTestModel(&fakePorts{})
	next, _ := m.Update(noticeMsg(notify.Notice{Kind: notify.KindSuccess, Title: "Target reached"}))
	m = next.(Model)
	if m.notice != nil || m.status != "Target reached" {
		t.Fatalf("expected status notice, got %q (%v)", m.status, m.notice)
	}
}

func TestPaletteRoutesCommands(t *testing.T) {
	t.Parallel()
	f := &fakePorts{}
	m := newTestModel(f)
	m.activeTab = tabReminders

	next, _ := m.executePalette("open-dashboard")
	if next.(Model).activeTab != tabDashboard {
		t.Fatalf("expected dashboard tab")
	}
	next, cmd := m.executePalette("session-complete")
	runCmd(t, cmd)
	if len(f.commands) != 1 || f.commands[0] != "session-complete" {
		t.Fatalf("expected command to run, got %v", f.commands)
	}
	next, cmd = next.(Model).executePalette("onboarding")
	if cmd != nil || len(f.commands) != 1 {
		t.Fatalf("onboarding must not run inside the dashboard")
	}
}

func TestQuickNoteKey(t *testing.T) {
	t.Parallel()
	f := &fakePorts{}
	m := newTestModel(f)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	runCmd(t, cmd)
	if len(f.commands) != 1 || f.commands[0] != "quick-note" {
		t.Fatalf("expected quick-note, got %v", f.commands)
	}
}
