package in

import (
	"context"

	templatedto "quill/internal/modules/template/dto"
	templatein "quill/internal/modules/template/port/in"
)

type CLIHandler struct {
	usecase templatein.Usecase
}

func NewCLIHandler(usecase templatein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]templatedto.TemplateOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Show(ctx context.Context, templateID string) (templatedto.TemplateOutput, error) {
	return h.usecase.Get(ctx, templateID)
}

func (h CLIHandler) Add(ctx context.Context, input templatedto.TemplateInput) (templatedto.TemplateOutput, error) {
	return h.usecase.Add(ctx, input)
}

func (h CLIHandler) Remove(ctx context.Context, templateID string) error {
	return h.usecase.Remove(ctx, templateID)
}

func (h CLIHandler) NewNote(ctx context.Context, templateID string, vars map[string]string, track bool) (templatedto.CreateNoteOutput, error) {
	return h.usecase.CreateNote(ctx, templatedto.CreateNoteInput{TemplateID: templateID, Overrides: vars, StartSession: track})
}
