package in

import (
	"context"

	"quill/internal/modules/command/dto"
)

type Usecase interface {
	List() []dto.DescriptorOutput
	Execute(ctx context.Context, commandID string) (dto.ResultOutput, error)
	ListPlugin(ctx context.Context, input dto.PluginInput) ([]dto.DescriptorOutput, error)
	CallPlugin(ctx context.Context, input dto.PluginInput) (dto.ResultOutput, error)
}
