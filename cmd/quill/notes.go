package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"quill/internal/bootstrap"
	templatedto "quill/internal/modules/template/dto"
)

func newTemplateCmd(opts *rootOptions) *cobra.Command {
	tpl := &cobra.Command{Use: "template", Short: "Note templates"}

	tpl.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List built-in and user templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				items, err := app.TemplateCLI.List(cmd.Context())
				if err != nil {
					return err
				}
				tbl := newTable("ID", "NAME", "TITLE", "BUILT-IN")
				for _, t := range items {
					tbl.AddRow(t.ID, t.Name, t.TitlePattern, check(t.BuiltIn))
				}
				printTable(cmd.OutOrStdout(), tbl)
				return nil
			})
		},
	})

	tpl.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				t, err := app.TemplateCLI.Show(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "%s (%s)\ntitle: %s\nvariables: %s\n\n%s\n", bold(t.Name), t.ID, t.TitlePattern, strings.Join(t.Variables, ", "), t.Body)
				return nil
			})
		},
	})

	var input templatedto.TemplateInput
	var bodyFile string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a user template",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if bodyFile != "" {
				raw, err := os.ReadFile(bodyFile)
				if err != nil {
					return fmt.Errorf("read body file: %w", err)
				}
				input.Body = string(raw)
			}
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				t, err := app.TemplateCLI.Add(cmd.Context(), input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added template %s\n", t.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&input.ID, "id", "", "template id (derived from name when empty)")
	add.Flags().StringVar(&input.Name, "name", "", "template name")
	add.Flags().StringVar(&input.TitlePattern, "title", "{{date}}", "note title pattern")
	add.Flags().StringVar(&input.Body, "body", "", "note body")
	add.Flags().StringVar(&bodyFile, "body-file", "", "read the body from a file")
	_ = add.MarkFlagRequired("name")

	tpl.AddCommand(add, &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a user template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				if err := app.TemplateCLI.Remove(cmd.Context(), args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed template %s\n", args[0])
				return nil
			})
		},
	})
	return tpl
}

func newNoteCmd(opts *rootOptions) *cobra.Command {
	note := &cobra.Command{Use: "note", Short: "Create notes from templates"}

	var (
		vars  []string
		track bool
	)
	create := &cobra.Command{
		Use:   "new <template-id>",
		Short: "Create a note from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]string{}
			for _, kv := range vars {
				key, value, ok := strings.Cut(kv, "=")
				if !ok || strings.TrimSpace(key) == "" {
					return fmt.Errorf("--var must be key=value, got %q", kv)
				}
				overrides[strings.TrimSpace(key)] = value
			}
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.TemplateCLI.NewNote(cmd.Context(), args[0], overrides, track)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "created %s\n", out.RelPath)
				switch {
				case out.SessionStarted:
					_, _ = fmt.Fprintln(w, "session started")
				case out.SessionError != "":
					_, _ = fmt.Fprintf(w, "session not started: %s\n", out.SessionError)
				}
				return nil
			})
		},
	}
	create.Flags().StringArrayVar(&vars, "var", nil, "template variable, key=value (repeatable)")
	create.Flags().BoolVar(&track, "track", true, "start a session on the new note")
	note.AddCommand(create)
	return note
}

func newPromptCmd(opts *rootOptions) *cobra.Command {
	prompt := &cobra.Command{Use: "prompt", Short: "Writing prompts"}

	prompt.AddCommand(&cobra.Command{
		Use:   "random",
		Short: "Print one random prompt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				p, err := app.PromptCLI.Random(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
				return nil
			})
		},
	})

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List available prompts and where they came from",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.PromptCLI.List(cmd.Context())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "%s (%d prompts)\n", faint("source: "+out.Source), len(out.Prompts))
				for i, p := range out.Prompts {
					if limit > 0 && i == limit {
						break
					}
					_, _ = fmt.Fprintf(w, "- %s\n", p)
				}
				return nil
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "maximum prompts to print, 0 for all")

	prompt.AddCommand(list, &cobra.Command{
		Use:   "refresh",
		Short: "Fetch the prompt feed now and update the cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.PromptCLI.Refresh(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cached %d prompts at %s\n", out.Count, out.FetchedAt.Format("2006-01-02 15:04"))
				return nil
			})
		},
	})
	return prompt
}
