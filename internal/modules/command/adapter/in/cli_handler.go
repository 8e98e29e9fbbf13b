package in

import (
	"context"

	commanddto "quill/internal/modules/command/dto"
	commandin "quill/internal/modules/command/port/in"
)

type CLIHandler struct {
	usecase commandin.Usecase
}

func NewCLIHandler(usecase commandin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List() []commanddto.DescriptorOutput {
	return h.usecase.List()
}

func (h CLIHandler) Run(ctx context.Context, commandID string) (commanddto.ResultOutput, error) {
	return h.usecase.Execute(ctx, commandID)
}

func (h CLIHandler) PluginCommands(ctx context.Context, binary, sha string) ([]commanddto.DescriptorOutput, error) {
	return h.usecase.ListPlugin(ctx, commanddto.PluginInput{Binary: binary, SHA256: sha})
}

func (h CLIHandler) PluginCall(ctx context.Context, binary, sha, commandID string) (commanddto.ResultOutput, error) {
	return h.usecase.CallPlugin(ctx, commanddto.PluginInput{Binary: binary, SHA256: sha, CommandID: commandID})
}
