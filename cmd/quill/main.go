package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"

	"quill/internal/bootstrap"
	"quill/internal/platform/config"
	"quill/internal/platform/notify"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	vaultPath string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "quill",
		Short:         "Writing sessions, streaks and reminders for a markdown vault",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.vaultPath, "vault", ".", "vault path")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "write logs to stderr")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newSessionCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newStreakCmd(opts))
	root.AddCommand(newLogCmd(opts))
	root.AddCommand(newProfileCmd(opts))
	root.AddCommand(newOnboardCmd(opts))
	root.AddCommand(newPlannerCmd(opts))
	root.AddCommand(newReminderCmd(opts))
	root.AddCommand(newTemplateCmd(opts))
	root.AddCommand(newNoteCmd(opts))
	root.AddCommand(newPromptCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newImportCmd(opts))
	root.AddCommand(newReindexCmd(opts))
	root.AddCommand(newSettingsCmd(opts))
	root.AddCommand(newCommandCmd(opts))
	root.AddCommand(newPluginCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

// loadApp opens the vault for a one-shot command. Notices print to stderr.
func loadApp(cmd *cobra.Command, opts *rootOptions) (*bootstrap.App, error) {
	return openApp(cmd, opts, false, notify.NewTerminal(cmd.ErrOrStderr()))
}

func openApp(cmd *cobra.Command, opts *rootOptions, live bool, notifier notify.Notifier) (*bootstrap.App, error) {
	cfg, err := config.Load(opts.vaultPath)
	if err != nil {
		return nil, err
	}
	var logOut io.Writer = io.Discard
	if opts.verbose {
		logOut = cmd.ErrOrStderr()
	}
	app, err := bootstrap.New(cfg, bootstrap.Options{
		Live:      live,
		Notifier:  notifier,
		LogOutput: logOut,
		Version:   version,
	})
	if err != nil {
		return nil, err
	}
	app.Interactive.Dashboard = func(ctx context.Context) error {
		return runDashboard(ctx, cmd, opts)
	}
	app.Interactive.Onboarding = func(ctx context.Context) error {
		return runOnboarding(ctx, cmd, app)
	}
	return app, nil
}

func runDashboard(ctx context.Context, cmd *cobra.Command, opts *rootOptions) error {
	notices := notify.NewChannel(32)
	app, err := openApp(cmd, opts, true, notices)
	if err != nil {
		return err
	}
	defer app.Close()
	return bootstrap.RunTUI(ctx, app, notices)
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd.Context(), cmd, opts)
		},
	}
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Track sessions and fire reminders without a dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := openApp(cmd, opts, true, notify.NewTerminal(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			defer app.Close()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "watching %s, ctrl+c to stop\n", app.Config.VaultPath)
			return app.RunHeadless(cmd.Context())
		},
	}
}

func newVersionCmd() *cobra.Command {
	shortened := false
	output := "json"
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the quill version",
		Run: func(cmd *cobra.Command, _ []string) {
			resp := goversion.FuncWithOutput(shortened, version, commit, date, output)
			_, _ = fmt.Fprint(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "print just the version number")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json|yaml")
	return cmd
}
