package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"quill/internal/bootstrap"
	journaldto "quill/internal/modules/journal/dto"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the data document as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				raw, err := app.JournalCLI.Export(cmd.Context())
				if err != nil {
					return err
				}
				if outPath == "" || outPath == "-" {
					_, err := cmd.OutOrStdout().Write(append(raw, '\n'))
					return err
				}
				if err := os.WriteFile(outPath, raw, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s\n", outPath)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file, stdout when empty")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Merge an exported document into this vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.JournalCLI.Import(cmd.Context(), raw)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d sessions, skipped %d; streak %d (longest %d)\n",
					out.Added, out.Skipped, out.Streak.Current, out.Streak.Longest)
				return nil
			})
		},
	}
}

func newReindexCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite session index from the data document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				n, err := app.JournalCLI.Reindex(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "indexed %d sessions\n", n)
				return nil
			})
		},
	}
}

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Streak and note settings"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print settings as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				s, err := app.JournalCLI.Settings(cmd.Context())
				if err != nil {
					return err
				}
				return printYAML(cmd.OutOrStdout(), settingsDocument(s))
			})
		},
	})

	var (
		mode, unit, folder, vaultName string
		grace, weekly                 int
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Change settings; streak changes replay the log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := journaldto.UpdateSettingsInput{}
			flags := cmd.Flags()
			if flags.Changed("streak-mode") {
				input.StreakMode = &mode
			}
			if flags.Changed("grace") {
				input.GraceDays = &grace
			}
			if flags.Changed("weekly-target") {
				input.WeeklyTarget = &weekly
			}
			if flags.Changed("unit") {
				input.Unit = &unit
			}
			if flags.Changed("notes-folder") {
				trimmed := strings.Trim(strings.TrimSpace(folder), "/")
				input.NotesFolder = &trimmed
			}
			if flags.Changed("vault-name") {
				input.VaultName = &vaultName
			}
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				s, err := app.JournalCLI.UpdateSettings(cmd.Context(), input)
				if err != nil {
					return err
				}
				return printYAML(cmd.OutOrStdout(), settingsDocument(s))
			})
		},
	}
	set.Flags().StringVar(&mode, "streak-mode", "daily", "daily|weekly")
	set.Flags().IntVar(&grace, "grace", 1, "missed days or weeks forgiven")
	set.Flags().IntVar(&weekly, "weekly-target", 3, "writing days per week in weekly mode")
	set.Flags().StringVar(&unit, "unit", "words", "words|characters")
	set.Flags().StringVar(&folder, "notes-folder", "Writing", "vault folder for notes and reviews")
	set.Flags().StringVar(&vaultName, "vault-name", "", "name used in templates")
	settings.AddCommand(set)
	return settings
}

func settingsDocument(s journaldto.SettingsOutput) map[string]any {
	return map[string]any{
		"streak_mode":   s.StreakMode,
		"grace_days":    s.GraceDays,
		"weekly_target": s.WeeklyTarget,
		"unit":          s.Unit,
		"notes_folder":  s.NotesFolder,
		"vault_name":    s.VaultName,
	}
}

func newCommandCmd(opts *rootOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   "cmd [id]",
		Short: "Run a palette command, or list them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				if len(args) == 0 {
					tbl := newTable("ID", "TITLE", "DESCRIPTION")
					for _, d := range app.CommandCLI.List() {
						tbl.AddRow(d.ID, d.Title, d.Description)
					}
					printTable(cmd.OutOrStdout(), tbl)
					return nil
				}
				out, err := app.CommandCLI.Run(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if out.Message != "" {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Message)
				}
				return nil
			})
		},
	}
	return command
}

func newPluginCmd(opts *rootOptions) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Drive commands through a plugin binary"}

	var binary, sha string
	list := &cobra.Command{
		Use:   "commands",
		Short: "List the commands a plugin offers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				items, err := app.CommandCLI.PluginCommands(cmd.Context(), binary, sha)
				if err != nil {
					return err
				}
				tbl := newTable("ID", "TITLE", "DESCRIPTION")
				for _, d := range items {
					tbl.AddRow(d.ID, d.Title, d.Description)
				}
				printTable(cmd.OutOrStdout(), tbl)
				return nil
			})
		},
	}
	call := &cobra.Command{
		Use:   "call <command-id>",
		Short: "Run one command through a plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.CommandCLI.PluginCall(cmd.Context(), binary, sha, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Message)
				if out.OutputJSON != "" {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), faint(out.OutputJSON))
				}
				return nil
			})
		},
	}
	for _, c := range []*cobra.Command{list, call} {
		c.Flags().StringVar(&binary, "binary", "", "plugin binary path")
		c.Flags().StringVar(&sha, "sha256", "", "expected binary checksum")
		_ = c.MarkFlagRequired("binary")
	}
	plugin.AddCommand(list, call)
	return plugin
}
