package in

import (
	"context"

	promptdto "quill/internal/modules/prompt/dto"
	promptin "quill/internal/modules/prompt/port/in"
)

type CLIHandler struct {
	usecase promptin.Usecase
}

func NewCLIHandler(usecase promptin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Random(ctx context.Context) (string, error) {
	return h.usecase.Random(ctx)
}

func (h CLIHandler) List(ctx context.Context) (promptdto.PromptsOutput, error) {
	return h.usecase.Prompts(ctx)
}

func (h CLIHandler) Refresh(ctx context.Context) (promptdto.RefreshOutput, error) {
	return h.usecase.Refresh(ctx)
}
