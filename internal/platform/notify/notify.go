package notify

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type Kind string

const (
	KindInfo      Kind = "info"
	KindSuccess   Kind = "success"
	KindWarning   Kind = "warning"
	KindMilestone Kind = "milestone"
	KindReminder  Kind = "reminder"
)

// Action is an inline control attached to a persistent notice, for example
// snoozing a reminder.
type Action struct {
	ID    string
	Label string
}

type Notice struct {
	Kind       Kind
	Title      string
	Message    string
	Persistent bool
	Actions    []Action
}

func (n Notice) String() string {
	if n.Title == "" {
		return n.Message
	}
	if n.Message == "" {
		return n.Title
	}
	return n.Title + ": " + n.Message
}

// Notifier shows user-visible notices. Implementations must not block.
type Notifier interface {
	Notify(n Notice)
}

type Func func(Notice)

func (f Func) Notify(n Notice) { f(n) }

type multi []Notifier

// Multi fans a notice out to every non-nil notifier.
func Multi(notifiers ...Notifier) Notifier {
	out := make(multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (m multi) Notify(n Notice) {
	for _, target := range m {
		target.Notify(n)
	}
}

// Terminal prints notices as colored lines.
type Terminal struct {
	w io.Writer
}

func NewTerminal(w io.Writer) *Terminal {
	if w == nil {
		w = color.Output
	}
	return &Terminal{w: w}
}

func (t *Terminal) Notify(n Notice) {
	prefix := kindColor(n.Kind).Sprintf("[%s]", n.Kind)
	line := prefix + " " + n.String()
	if len(n.Actions) > 0 {
		labels := make([]string, 0, len(n.Actions))
		for _, a := range n.Actions {
			labels = append(labels, fmt.Sprintf("%s (%s)", a.Label, a.ID))
		}
		line += color.New(color.Faint).Sprint("  actions: " + strings.Join(labels, ", "))
	}
	_, _ = fmt.Fprintln(t.w, line)
}

func kindColor(k Kind) *color.Color {
	switch k {
	case KindSuccess:
		return color.New(color.FgGreen, color.Bold)
	case KindWarning:
		return color.New(color.FgYellow, color.Bold)
	case KindMilestone:
		return color.New(color.FgMagenta, color.Bold)
	case KindReminder:
		return color.New(color.FgCyan, color.Bold)
	default:
		return color.New(color.FgBlue)
	}
}

// Channel buffers notices for a consumer such as the dashboard. When the
// buffer is full the notice is dropped.
type Channel struct {
	ch chan Notice
}

func NewChannel(size int) *Channel {
	if size <= 0 {
		size = 16
	}
	return &Channel{ch: make(chan Notice, size)}
}

func (c *Channel) Notify(n Notice) {
	select {
	case c.ch <- n:
	default:
	}
}

func (c *Channel) C() <-chan Notice {
	return c.ch
}
