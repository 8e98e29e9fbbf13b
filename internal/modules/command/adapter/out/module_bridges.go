package out

import (
	"context"
	"fmt"

	commandout "quill/internal/modules/command/port/out"
	plannerin "quill/internal/modules/planner/port/in"
	promptin "quill/internal/modules/prompt/port/in"
	templatedto "quill/internal/modules/template/dto"
	templatein "quill/internal/modules/template/port/in"
	trackerdto "quill/internal/modules/tracker/dto"
	trackerin "quill/internal/modules/tracker/port/in"
)

type TrackerSessionControl struct {
	tracker trackerin.Usecase
}

func NewTrackerSessionControl(tracker trackerin.Usecase) commandout.SessionControl {
	return TrackerSessionControl{tracker: tracker}
}

func (c TrackerSessionControl) Start(ctx context.Context, relPath string) (string, error) {
	return describe(c.tracker.Start(ctx, trackerdto.StartInput{Files: []string{relPath}}))
}

func (c TrackerSessionControl) Pause(ctx context.Context) (string, error) {
	return describe(c.tracker.Pause(ctx))
}

func (c TrackerSessionControl) Resume(ctx context.Context) (string, error) {
	return describe(c.tracker.Resume(ctx))
}

func (c TrackerSessionControl) Complete(ctx context.Context) (string, error) {
	return describe(c.tracker.Complete(ctx))
}

func (c TrackerSessionControl) Skip(ctx context.Context) (string, error) {
	return describe(c.tracker.Skip(ctx))
}

func (c TrackerSessionControl) ActiveFile(ctx context.Context) (string, bool, error) {
	status, err := c.tracker.Status(ctx)
	if err != nil {
		return "", false, err
	}
	if status.State == "idle" || len(status.Files) == 0 {
		return "", false, nil
	}
	return status.Files[0], true, nil
}

func describe(status trackerdto.StatusOutput, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if status.State == "idle" {
		return fmt.Sprintf("session %s logged: %d %s", status.SessionID, status.Count, status.CountUnit), nil
	}
	return fmt.Sprintf("session %s %s: %d %s, %.1f%%", status.SessionID, status.State, status.Count, status.CountUnit, status.Percent), nil
}

type TemplateNoteCreator struct {
	templates templatein.Usecase
}

func NewTemplateNoteCreator(templates templatein.Usecase) commandout.NoteCreator {
	return TemplateNoteCreator{templates: templates}
}

func (c TemplateNoteCreator) QuickNote(ctx context.Context) (string, error) {
	out, err := c.templates.CreateNote(ctx, templatedto.CreateNoteInput{TemplateID: "quick-note", StartSession: true})
	if err != nil {
		return "", err
	}
	if out.SessionError != "" {
		return out.RelPath, fmt.Errorf("note %s created, session not started: %s", out.RelPath, out.SessionError)
	}
	return out.RelPath, nil
}

type PromptBridge struct {
	prompts promptin.Usecase
}

func NewPromptBridge(prompts promptin.Usecase) commandout.PromptSource {
	return PromptBridge{prompts: prompts}
}

func (b PromptBridge) Random(ctx context.Context) (string, error) {
	return b.prompts.Random(ctx)
}

type PlannerSummaries struct {
	planner plannerin.Usecase
}

func NewPlannerSummaries(planner plannerin.Usecase) commandout.Summaries {
	return PlannerSummaries{planner: planner}
}

func (p PlannerSummaries) WeeklySummary(ctx context.Context) (string, error) {
	out, err := p.planner.ShowWeeklySummary(ctx)
	if err != nil {
		return "", err
	}
	return out.Headline, nil
}
