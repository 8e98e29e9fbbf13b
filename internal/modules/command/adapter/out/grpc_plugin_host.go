package out

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"quill/internal/modules/command/adapter/out/rpc"
	"quill/internal/modules/command/domain"
	commandout "quill/internal/modules/command/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 10 * time.Second
)

// GRPCPluginHost starts a plugin binary per call over go-plugin and kills it
// when the call returns.
type GRPCPluginHost struct {
	vaultPath string
	logger    hclog.Logger
}

func NewGRPCPluginHost(vaultPath string, logger hclog.Logger) commandout.PluginHost {
	if logger == nil {
		logger = hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel})
	}
	return &GRPCPluginHost{vaultPath: vaultPath, logger: logger}
}

func (h *GRPCPluginHost) List(ctx context.Context, ref domain.PluginRef) ([]domain.Descriptor, error) {
	client, closeFn, err := h.connect(ref)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	if _, err := client.GetMetadata(callCtx); err != nil {
		return nil, fmt.Errorf("get metadata: %w", err)
	}
	response, err := client.ListCommands(callCtx)
	if err != nil {
		return nil, fmt.Errorf("list commands: %w", err)
	}
	out := make([]domain.Descriptor, 0, len(response.Commands))
	for _, cmd := range response.Commands {
		out = append(out, domain.Descriptor{ID: cmd.ID, Title: cmd.Title, Description: cmd.Description})
	}
	return out, nil
}

func (h *GRPCPluginHost) Execute(ctx context.Context, ref domain.PluginRef, commandID string) (domain.Result, error) {
	client, closeFn, err := h.connect(ref)
	if err != nil {
		return domain.Result{}, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	response, err := client.Execute(callCtx, &rpc.ExecuteRequest{CommandID: commandID, VaultPath: h.vaultPath})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return domain.Result{}, fmt.Errorf("%w: command %s", domain.ErrPluginTimeout, commandID)
		}
		return domain.Result{}, fmt.Errorf("execute command: %w", err)
	}
	if response.Error != "" {
		return domain.Result{}, fmt.Errorf("plugin command %s: %s", commandID, response.Error)
	}
	return domain.Result{Message: response.Message, OutputJSON: response.OutputJSON}, nil
}

func (h *GRPCPluginHost) connect(ref domain.PluginRef) (rpc.CommandSurfaceClient, func(), error) {
	if ref.SHA256 != "" {
		if err := verifyChecksum(ref); err != nil {
			return nil, nil, err
		}
	}
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  rpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          rpc.PluginMap(nil),
		Cmd:              exec.Command(ref.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           h.logger.Named("plugin"),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(rpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(rpc.CommandSurfaceClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func verifyChecksum(ref domain.PluginRef) error {
	payload, err := os.ReadFile(ref.Binary)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	sum := sha256.Sum256(payload)
	if hex.EncodeToString(sum[:]) != ref.SHA256 {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, ref.Binary)
	}
	return nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
