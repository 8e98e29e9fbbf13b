package out

import (
	"context"

	"quill/internal/modules/command/domain"
)

// SessionControl drives the writing session tracker. Each call returns a
// one-line status for the user.
type SessionControl interface {
	Start(ctx context.Context, relPath string) (string, error)
	Pause(ctx context.Context) (string, error)
	Resume(ctx context.Context) (string, error)
	Complete(ctx context.Context) (string, error)
	Skip(ctx context.Context) (string, error)
	// ActiveFile is the first tracked file of the active session.
	ActiveFile(ctx context.Context) (string, bool, error)
}

type NoteCreator interface {
	// QuickNote creates a note from the quick-note template and starts a
	// session on it.
	QuickNote(ctx context.Context) (string, error)
}

// NoteLocator finds and edits notes inside the vault by vault-relative path.
type NoteLocator interface {
	Latest(ctx context.Context) (string, bool, error)
	Append(ctx context.Context, relPath, text string) error
}

type PromptSource interface {
	Random(ctx context.Context) (string, error)
}

type Summaries interface {
	WeeklySummary(ctx context.Context) (string, error)
}

// Interactive runs commands that need a terminal. Hosts without one return
// domain.ErrNotInteractive.
type Interactive interface {
	OpenDashboard(ctx context.Context) error
	Onboard(ctx context.Context) error
}

type PluginHost interface {
	List(ctx context.Context, ref domain.PluginRef) ([]domain.Descriptor, error)
	Execute(ctx context.Context, ref domain.PluginRef, commandID string) (domain.Result, error)
}
