package in

import (
	"context"

	"quill/internal/modules/tracker/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StatusOutput, error)
	Pause(ctx context.Context) (dto.StatusOutput, error)
	Resume(ctx context.Context) (dto.StatusOutput, error)
	Complete(ctx context.Context) (dto.StatusOutput, error)
	Skip(ctx context.Context) (dto.StatusOutput, error)
	Poll(ctx context.Context) (dto.StatusOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Recover(ctx context.Context) (dto.StatusOutput, error)
	Shutdown()
}
