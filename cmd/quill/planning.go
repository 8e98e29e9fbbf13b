package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"quill/internal/bootstrap"
	reminderdto "quill/internal/modules/reminder/dto"
)

func newPlannerCmd(opts *rootOptions) *cobra.Command {
	planner := &cobra.Command{Use: "planner", Short: "Weekly goal and nudges"}

	planner.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Report whether a nudge is due now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.PlannerCLI.Check(cmd.Context())
				if err != nil {
					return err
				}
				if out.Nudge {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nudge due")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no nudge: %s\n", out.Reason)
				return nil
			})
		},
	})

	var review bool
	summary := &cobra.Command{
		Use:   "summary",
		Short: "Summarize this week against the goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				s, err := app.PlannerCLI.Summary(cmd.Context(), review)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintln(w, bold(s.Headline))
				tbl := newTable()
				tbl.AddRow("week of", s.WeekStart)
				tbl.AddRow("sessions", fmt.Sprintf("%d / %d", s.Sessions, s.Goal))
				tbl.AddRow("total", fmt.Sprintf("%d %s", s.Total, s.Unit))
				tbl.AddRow("targets met", s.TargetsMet)
				tbl.AddRow("days", weekString(s.DaysWritten))
				if s.ReviewPath != "" {
					tbl.AddRow("review", s.ReviewPath)
				}
				printTable(w, tbl)
				return nil
			})
		},
	}
	summary.Flags().BoolVar(&review, "review", false, "write or refresh the weekly review note")

	planner.AddCommand(summary)
	return planner
}

func newReminderCmd(opts *rootOptions) *cobra.Command {
	reminder := &cobra.Command{Use: "reminder", Short: "Scheduled writing reminders"}

	input := reminderdto.ReminderInput{}
	var disabled bool
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a reminder",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input.Enabled = !disabled
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.ReminderCLI.Add(cmd.Context(), input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added reminder %s, next %s\n", out.ID, formatTime(out.NextFire))
				return nil
			})
		},
	}
	add.Flags().StringVar(&input.ID, "id", "", "reminder id (generated when empty)")
	add.Flags().StringVar(&input.Label, "label", "Time to write", "notice title")
	add.Flags().StringSliceVar(&input.Days, "days", []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}, "days to fire")
	add.Flags().StringVar(&input.At, "at", "", "time of day, HH:MM")
	add.Flags().IntVar(&input.SecondOffsetMinutes, "second-nudge", 0, "minutes after firing to nudge again if nothing was written")
	add.Flags().StringVar(&input.DND, "dnd", "", "quiet window, e.g. 23:00-07:00")
	add.Flags().StringVar(&input.TemplateID, "template", "", "template used by Write now")
	add.Flags().BoolVar(&disabled, "disabled", false, "add without scheduling")
	_ = add.MarkFlagRequired("at")

	list := &cobra.Command{
		Use:   "list",
		Short: "List reminders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				items, err := app.ReminderCLI.List(cmd.Context())
				if err != nil {
					return err
				}
				printReminders(cmd, items)
				return nil
			})
		},
	}

	next := &cobra.Command{
		Use:   "next",
		Short: "List upcoming fires in order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				items, err := app.ReminderCLI.Next(cmd.Context())
				if err != nil {
					return err
				}
				printReminders(cmd, items)
				return nil
			})
		},
	}

	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				if err := app.ReminderCLI.Remove(cmd.Context(), args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
				return nil
			})
		},
	}

	toggle := func(use string, enabled bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: strings.ToUpper(use[:1]) + use[1:] + " a reminder",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, func(app *bootstrap.App) error {
					out, err := app.ReminderCLI.SetEnabled(cmd.Context(), args[0], enabled)
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %sd, next %s\n", out.ID, use, formatTime(out.NextFire))
					return nil
				})
			},
		}
	}

	reminder.AddCommand(add, list, next, remove, toggle("enable", true), toggle("disable", false))
	return reminder
}

func printReminders(cmd *cobra.Command, items []reminderdto.ReminderOutput) {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no reminders")
		return
	}
	tbl := newTable("ID", "LABEL", "AT", "DAYS", "DND", "ON", "NEXT")
	for _, r := range items {
		dnd := r.DND
		if dnd == "" {
			dnd = "-"
		}
		tbl.AddRow(r.ID, r.Label, r.At, strings.Join(r.Days, ","), dnd, check(r.Enabled), formatTime(r.NextFire))
	}
	printTable(cmd.OutOrStdout(), tbl)
}
