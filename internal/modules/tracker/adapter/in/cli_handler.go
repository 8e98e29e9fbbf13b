package in

import (
	"context"

	trackerdto "quill/internal/modules/tracker/dto"
	trackerin "quill/internal/modules/tracker/port/in"
)

type CLIHandler struct {
	usecase trackerin.Usecase
}

func NewCLIHandler(usecase trackerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, files []string) (trackerdto.StatusOutput, error) {
	return h.usecase.Start(ctx, trackerdto.StartInput{Files: files})
}

func (h CLIHandler) Pause(ctx context.Context) (trackerdto.StatusOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (trackerdto.StatusOutput, error) {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) Complete(ctx context.Context) (trackerdto.StatusOutput, error) {
	return h.usecase.Complete(ctx)
}

func (h CLIHandler) Skip(ctx context.Context) (trackerdto.StatusOutput, error) {
	return h.usecase.Skip(ctx)
}

func (h CLIHandler) Poll(ctx context.Context) (trackerdto.StatusOutput, error) {
	return h.usecase.Poll(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (trackerdto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}
