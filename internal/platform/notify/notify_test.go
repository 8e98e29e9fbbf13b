package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestTerminalPrintsNoticeAndActions(t *testing.T) {
	color.NoColor = true
	buf := &bytes.Buffer{}
	NewTerminal(buf).Notify(Notice{
		Kind:    KindReminder,
		Title:   "Time to write",
		Message: "evening pages",
		Actions: []Action{{ID: "snooze", Label: "Snooze 10m"}},
	})
	out := buf.String()
	if !strings.Contains(out, "[reminder] Time to write: evening pages") {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "Snooze 10m (snooze)") {
		t.Fatalf("expected actions in output: %q", out)
	}
}

func TestChannelDropsWhenFull(t *testing.T) {
	t.Parallel()
	ch := NewChannel(1)
	ch.Notify(Notice{Message: "first"})
	ch.Notify(Notice{Message: "second"})
	got := <-ch.C()
	if got.Message != "first" {
		t.Fatalf("expected first notice, got %q", got.Message)
	}
	select {
	case extra := <-ch.C():
		t.Fatalf("expected dropped notice, got %q", extra.Message)
	default:
	}
}

func TestMultiSkipsNil(t *testing.T) {
	t.Parallel()
	var seen []string
	n := Multi(nil, Func(func(n Notice) { seen = append(seen, n.String()) }))
	n.Notify(Notice{Title: "Done"})
	if len(seen) != 1 || seen[0] != "Done" {
		t.Fatalf("unexpected notices: %v", seen)
	}
}
