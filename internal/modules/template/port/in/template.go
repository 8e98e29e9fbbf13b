package in

import (
	"context"

	"quill/internal/modules/template/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.TemplateOutput, error)
	Get(ctx context.Context, templateID string) (dto.TemplateOutput, error)
	Add(ctx context.Context, input dto.TemplateInput) (dto.TemplateOutput, error)
	Remove(ctx context.Context, templateID string) error
	CreateNote(ctx context.Context, input dto.CreateNoteInput) (dto.CreateNoteOutput, error)
}
