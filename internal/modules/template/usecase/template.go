package usecase

import (
	"context"
	"fmt"
	"strings"

	"quill/internal/modules/template/domain"
	"quill/internal/modules/template/dto"
	templatein "quill/internal/modules/template/port/in"
	"quill/internal/modules/template/service"
	apperrors "quill/internal/platform/errors"
)

type Interactor struct {
	svc *service.TemplateService
}

func NewInteractor(svc *service.TemplateService) templatein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.TemplateOutput, error) {
	templates, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TemplateOutput, 0, len(templates))
	for _, t := range templates {
		out = append(out, toTemplateOutput(t))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, templateID string) (dto.TemplateOutput, error) {
	t, err := i.svc.Get(ctx, strings.TrimSpace(templateID))
	if err != nil {
		return dto.TemplateOutput{}, err
	}
	return toTemplateOutput(t), nil
}

func (i *Interactor) Add(ctx context.Context, input dto.TemplateInput) (dto.TemplateOutput, error) {
	t, err := i.svc.Add(ctx, domain.Template{
		ID:           strings.TrimSpace(input.ID),
		Name:         strings.TrimSpace(input.Name),
		TitlePattern: input.TitlePattern,
		Body:         input.Body,
	})
	if err != nil {
		return dto.TemplateOutput{}, err
	}
	return toTemplateOutput(t), nil
}

func (i *Interactor) Remove(ctx context.Context, templateID string) error {
	return i.svc.Remove(ctx, strings.TrimSpace(templateID))
}

func (i *Interactor) CreateNote(ctx context.Context, input dto.CreateNoteInput) (dto.CreateNoteOutput, error) {
	templateID := strings.TrimSpace(input.TemplateID)
	if templateID == "" {
		return dto.CreateNoteOutput{}, fmt.Errorf("%w: template id is required", apperrors.ErrInvalidInput)
	}
	note, err := i.svc.CreateNote(ctx, templateID, input.Overrides, input.StartSession)
	if err != nil {
		return dto.CreateNoteOutput{}, err
	}
	out := dto.CreateNoteOutput{
		Path:           note.Path,
		RelPath:        note.RelPath,
		Title:          note.Title,
		SessionStarted: note.Started,
	}
	if note.SessionErr != nil {
		out.SessionError = note.SessionErr.Error()
	}
	return out, nil
}

func toTemplateOutput(t domain.Template) dto.TemplateOutput {
	return dto.TemplateOutput{
		ID:           t.ID,
		Name:         t.Name,
		TitlePattern: t.TitlePattern,
		Body:         t.Body,
		BuiltIn:      t.BuiltIn,
		Variables:    t.Variables(),
	}
}
