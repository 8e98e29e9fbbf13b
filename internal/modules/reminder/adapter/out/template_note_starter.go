package out

import (
	"context"
	"fmt"

	reminderout "quill/internal/modules/reminder/port/out"
	templatedto "quill/internal/modules/template/dto"
	templatein "quill/internal/modules/template/port/in"
)

type TemplateNoteStarter struct {
	templates templatein.Usecase
}

func NewTemplateNoteStarter(templates templatein.Usecase) reminderout.NoteStarter {
	return TemplateNoteStarter{templates: templates}
}

// StartFromTemplate returns the note path even when the session could not be
// started; the error then names the path that was kept.
func (s TemplateNoteStarter) StartFromTemplate(ctx context.Context, templateID string) (string, error) {
	out, err := s.templates.CreateNote(ctx, templatedto.CreateNoteInput{TemplateID: templateID, StartSession: true})
	if err != nil {
		return "", err
	}
	if out.SessionError != "" {
		return out.Path, fmt.Errorf("note %s created, session not started: %s", out.Path, out.SessionError)
	}
	return out.Path, nil
}
