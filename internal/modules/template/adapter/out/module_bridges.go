package out

import (
	"context"

	journalin "quill/internal/modules/journal/port/in"
	promptin "quill/internal/modules/prompt/port/in"
	templateout "quill/internal/modules/template/port/out"
	trackerdto "quill/internal/modules/tracker/dto"
	trackerin "quill/internal/modules/tracker/port/in"
)

type PromptBridge struct {
	prompts promptin.Usecase
}

func NewPromptBridge(prompts promptin.Usecase) templateout.PromptSource {
	return PromptBridge{prompts: prompts}
}

func (b PromptBridge) Random(ctx context.Context) (string, error) {
	return b.prompts.Random(ctx)
}

type TrackerSessionStarter struct {
	tracker trackerin.Usecase
}

func NewTrackerSessionStarter(tracker trackerin.Usecase) templateout.SessionStarter {
	return TrackerSessionStarter{tracker: tracker}
}

func (s TrackerSessionStarter) Start(ctx context.Context, relPath string) error {
	_, err := s.tracker.Start(ctx, trackerdto.StartInput{Files: []string{relPath}})
	return err
}

type JournalNoteSettings struct {
	journal journalin.Usecase
}

func NewJournalNoteSettings(journal journalin.Usecase) templateout.NoteSettings {
	return JournalNoteSettings{journal: journal}
}

func (s JournalNoteSettings) NoteSettings(ctx context.Context) (string, string, error) {
	settings, err := s.journal.Settings(ctx)
	if err != nil {
		return "", "", err
	}
	return settings.NotesFolder, settings.VaultName, nil
}
