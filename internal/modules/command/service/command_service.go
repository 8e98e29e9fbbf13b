package service

import (
	"context"
	"encoding/json"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"quill/internal/modules/command/domain"
	commandout "quill/internal/modules/command/port/out"
)

type Deps struct {
	Sessions    commandout.SessionControl
	Notes       commandout.NoteCreator
	Locator     commandout.NoteLocator
	Prompts     commandout.PromptSource
	Summaries   commandout.Summaries
	Interactive commandout.Interactive
	Plugins     commandout.PluginHost
	Logger      hclog.Logger
}

type CommandService struct {
	deps Deps
}

func NewCommandService(deps Deps) *CommandService {
	return &CommandService{deps: deps}
}

func (s *CommandService) List() []domain.Descriptor {
	return domain.Catalog()
}

// Execute runs a zero-argument command by id.
func (s *CommandService) Execute(ctx context.Context, commandID string) (domain.Result, error) {
	if _, ok := domain.Lookup(commandID); !ok {
		return domain.Result{}, fmt.Errorf("%w: %s", domain.ErrCommandNotFound, commandID)
	}
	message, err := s.run(ctx, commandID)
	if err != nil {
		s.deps.Logger.Debug("command failed", "command", commandID, "error", err)
		return domain.Result{}, err
	}
	raw, err := json.Marshal(map[string]string{"command": commandID, "message": message})
	if err != nil {
		return domain.Result{}, fmt.Errorf("encode command output: %w", err)
	}
	return domain.Result{Message: message, OutputJSON: string(raw)}, nil
}

func (s *CommandService) run(ctx context.Context, commandID string) (string, error) {
	switch commandID {
	case domain.OpenDashboard:
		if err := s.deps.Interactive.OpenDashboard(ctx); err != nil {
			return "", err
		}
		return "dashboard closed", nil
	case domain.SessionStart:
		return s.startOnLatest(ctx)
	case domain.SessionPause:
		return s.deps.Sessions.Pause(ctx)
	case domain.SessionResume:
		return s.deps.Sessions.Resume(ctx)
	case domain.SessionComplete:
		return s.deps.Sessions.Complete(ctx)
	case domain.SessionSkip:
		return s.deps.Sessions.Skip(ctx)
	case domain.QuickNote:
		path, err := s.deps.Notes.QuickNote(ctx)
		if err != nil {
			return "", err
		}
		return "created " + path, nil
	case domain.InsertPrompt:
		return s.insertPrompt(ctx)
	case domain.WeeklySummary:
		return s.deps.Summaries.WeeklySummary(ctx)
	case domain.Onboarding:
		if err := s.deps.Interactive.Onboard(ctx); err != nil {
			return "", err
		}
		return "profile saved", nil
	}
	return "", fmt.Errorf("%w: %s", domain.ErrCommandNotFound, commandID)
}

// startOnLatest tracks the most recently modified note in the notes folder,
// or creates a quick note when the folder has none.
func (s *CommandService) startOnLatest(ctx context.Context) (string, error) {
	latest, ok, err := s.deps.Locator.Latest(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		path, err := s.deps.Notes.QuickNote(ctx)
		if err != nil {
			return "", err
		}
		return "created " + path + " and started a session", nil
	}
	return s.deps.Sessions.Start(ctx, latest)
}

// insertPrompt appends a prompt to the note being written: the active
// session's file, else the latest note. Without either it only returns the
// prompt.
func (s *CommandService) insertPrompt(ctx context.Context) (string, error) {
	prompt, err := s.deps.Prompts.Random(ctx)
	if err != nil {
		return "", err
	}
	target, ok, err := s.deps.Sessions.ActiveFile(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		target, ok, err = s.deps.Locator.Latest(ctx)
		if err != nil {
			return "", err
		}
	}
	if !ok {
		return prompt, nil
	}
	if err := s.deps.Locator.Append(ctx, target, "\n> "+prompt+"\n"); err != nil {
		return "", err
	}
	return "inserted into " + target + ": " + prompt, nil
}

func (s *CommandService) ListPlugin(ctx context.Context, ref domain.PluginRef) ([]domain.Descriptor, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return s.deps.Plugins.List(ctx, ref)
}

func (s *CommandService) CallPlugin(ctx context.Context, ref domain.PluginRef, commandID string) (domain.Result, error) {
	if err := ref.Validate(); err != nil {
		return domain.Result{}, err
	}
	if commandID == "" {
		return domain.Result{}, fmt.Errorf("%w: empty id", domain.ErrCommandNotFound)
	}
	return s.deps.Plugins.Execute(ctx, ref, commandID)
}
