package usecase

import (
	"context"
	"strings"

	"quill/internal/modules/command/domain"
	"quill/internal/modules/command/dto"
	commandin "quill/internal/modules/command/port/in"
	"quill/internal/modules/command/service"
)

type Interactor struct {
	svc *service.CommandService
}

func NewInteractor(svc *service.CommandService) commandin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List() []dto.DescriptorOutput {
	return toDescriptors(i.svc.List())
}

func (i *Interactor) Execute(ctx context.Context, commandID string) (dto.ResultOutput, error) {
	commandID = strings.TrimSpace(commandID)
	result, err := i.svc.Execute(ctx, commandID)
	if err != nil {
		return dto.ResultOutput{}, err
	}
	return dto.ResultOutput{CommandID: commandID, Message: result.Message, OutputJSON: result.OutputJSON}, nil
}

func (i *Interactor) ListPlugin(ctx context.Context, input dto.PluginInput) ([]dto.DescriptorOutput, error) {
	commands, err := i.svc.ListPlugin(ctx, pluginRef(input))
	if err != nil {
		return nil, err
	}
	return toDescriptors(commands), nil
}

func (i *Interactor) CallPlugin(ctx context.Context, input dto.PluginInput) (dto.ResultOutput, error) {
	commandID := strings.TrimSpace(input.CommandID)
	result, err := i.svc.CallPlugin(ctx, pluginRef(input), commandID)
	if err != nil {
		return dto.ResultOutput{}, err
	}
	return dto.ResultOutput{CommandID: commandID, Message: result.Message, OutputJSON: result.OutputJSON}, nil
}

func pluginRef(input dto.PluginInput) domain.PluginRef {
	return domain.PluginRef{Binary: strings.TrimSpace(input.Binary), SHA256: strings.ToLower(strings.TrimSpace(input.SHA256))}
}

func toDescriptors(in []domain.Descriptor) []dto.DescriptorOutput {
	out := make([]dto.DescriptorOutput, 0, len(in))
	for _, d := range in {
		out = append(out, dto.DescriptorOutput{ID: d.ID, Title: d.Title, Description: d.Description})
	}
	return out
}
