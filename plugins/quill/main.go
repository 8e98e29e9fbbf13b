package main

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-plugin"

	"quill/internal/bootstrap"
	"quill/internal/modules/command/adapter/out/rpc"
	"quill/internal/modules/command/domain"
	"quill/internal/platform/config"
	"quill/internal/platform/notify"
)

var version = "dev"

// server exposes the non-interactive command catalog to plugin hosts. Each
// call opens the vault it is given and closes it before returning.
type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *rpc.Empty) (*rpc.Metadata, error) {
	return &rpc.Metadata{Name: "quill", Version: version}, nil
}

func (s *server) ListCommands(_ context.Context, _ *rpc.Empty) (*rpc.ListCommandsResponse, error) {
	out := &rpc.ListCommandsResponse{}
	for _, d := range domain.Catalog() {
		if interactiveOnly(d.ID) {
			continue
		}
		out.Commands = append(out.Commands, rpc.CommandDescriptor{ID: d.ID, Title: d.Title, Description: d.Description})
	}
	return out, nil
}

func (s *server) Execute(ctx context.Context, in *rpc.ExecuteRequest) (*rpc.ExecuteResponse, error) {
	if interactiveOnly(in.CommandID) {
		return &rpc.ExecuteResponse{Error: domain.ErrNotInteractive.Error()}, nil
	}
	cfg, err := config.Load(in.VaultPath)
	if err != nil {
		return &rpc.ExecuteResponse{Error: fmt.Sprintf("load config: %v", err)}, nil
	}
	app, err := bootstrap.New(cfg, bootstrap.Options{
		Notifier:  notify.Func(func(notify.Notice) {}),
		LogOutput: io.Discard,
		Version:   version,
	})
	if err != nil {
		return &rpc.ExecuteResponse{Error: err.Error()}, nil
	}
	defer app.Close()

	result, err := app.CommandCLI.Run(ctx, in.CommandID)
	if err != nil {
		return &rpc.ExecuteResponse{Error: err.Error()}, nil
	}
	return &rpc.ExecuteResponse{Message: result.Message, OutputJSON: result.OutputJSON}, nil
}

func interactiveOnly(id string) bool {
	return id == domain.OpenDashboard || id == domain.Onboarding
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: rpc.HandshakeConfig,
		Plugins:         rpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
