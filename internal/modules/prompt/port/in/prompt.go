package in

import (
	"context"

	"quill/internal/modules/prompt/dto"
)

type Usecase interface {
	Prompts(ctx context.Context) (dto.PromptsOutput, error)
	Random(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (dto.RefreshOutput, error)
}
