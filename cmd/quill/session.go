package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"quill/internal/bootstrap"
	trackerdto "quill/internal/modules/tracker/dto"
	"quill/internal/platform/civil"
)

func newSessionCmd(opts *rootOptions) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Writing session lifecycle"}

	session.AddCommand(&cobra.Command{
		Use:   "start <note.md>...",
		Short: "Start tracking one or more notes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.TrackerCLI.Start(cmd.Context(), args)
				if err != nil {
					return err
				}
				printStatus(cmd.OutOrStdout(), out, time.Now())
				return nil
			})
		},
	})

	type transition struct {
		use, short string
		run        func(app *bootstrap.App, cmd *cobra.Command) (trackerdto.StatusOutput, error)
	}
	for _, t := range []transition{
		{"pause", "Pause the active session", func(app *bootstrap.App, cmd *cobra.Command) (trackerdto.StatusOutput, error) {
			return app.TrackerCLI.Pause(cmd.Context())
		}},
		{"resume", "Resume a paused session", func(app *bootstrap.App, cmd *cobra.Command) (trackerdto.StatusOutput, error) {
			return app.TrackerCLI.Resume(cmd.Context())
		}},
		{"complete", "Finish and log the active session", func(app *bootstrap.App, cmd *cobra.Command) (trackerdto.StatusOutput, error) {
			return app.TrackerCLI.Complete(cmd.Context())
		}},
		{"skip", "Log the active session as skipped", func(app *bootstrap.App, cmd *cobra.Command) (trackerdto.StatusOutput, error) {
			return app.TrackerCLI.Skip(cmd.Context())
		}},
		{"status", "Show the active session", func(app *bootstrap.App, cmd *cobra.Command) (trackerdto.StatusOutput, error) {
			return app.TrackerCLI.Status(cmd.Context())
		}},
		{"poll", "Recount the tracked notes once", func(app *bootstrap.App, cmd *cobra.Command) (trackerdto.StatusOutput, error) {
			return app.TrackerCLI.Poll(cmd.Context())
		}},
	} {
		session.AddCommand(&cobra.Command{
			Use:   t.use,
			Short: t.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd, opts, func(app *bootstrap.App) error {
					out, err := t.run(app, cmd)
					if err != nil {
						return err
					}
					printStatus(cmd.OutOrStdout(), out, time.Now())
					return nil
				})
			},
		})
	}
	return session
}

func printStatus(w io.Writer, s trackerdto.StatusOutput, now time.Time) {
	if s.State == "idle" || s.State == "" {
		_, _ = fmt.Fprintln(w, "no active session")
		return
	}
	_, _ = fmt.Fprintf(w, "%s %s  started %s (%s ago)\n", bold(s.State), s.SessionID, s.StartedAt.Format("15:04"), now.Sub(s.StartedAt).Round(time.Minute))
	if s.TargetValue > 0 {
		_, _ = fmt.Fprintf(w, "progress: %d %s / %d %s (%.0f%%)\n", s.Count, s.CountUnit, s.TargetValue, s.TargetUnit, s.Percent)
	} else {
		_, _ = fmt.Fprintf(w, "progress: %d %s\n", s.Count, s.CountUnit)
	}
	_, _ = fmt.Fprintf(w, "active: %d min\nfiles: %s\n", s.ActiveMinutes, strings.Join(s.Files, ", "))
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show totals, streak and completion rate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				s, err := app.JournalCLI.Stats(cmd.Context())
				if err != nil {
					return err
				}
				tbl := newTable()
				tbl.AddRow("today", fmt.Sprintf("%d %s", s.Today, s.Unit))
				tbl.AddRow("this week", fmt.Sprintf("%d %s", s.Week, s.Unit))
				tbl.AddRow("this month", fmt.Sprintf("%d %s", s.Month, s.Unit))
				tbl.AddRow("sessions (7 days)", s.SessionsLastWeek)
				tbl.AddRow("targets met", fmt.Sprintf("%.0f%%", s.CompletionRate*100))
				tbl.AddRow("streak", fmt.Sprintf("%d (best %d, %s)", s.Streak.Current, s.Streak.Longest, s.Streak.Mode))
				tbl.AddRow("week", weekString(s.Streak.Week))
				printTable(cmd.OutOrStdout(), tbl)
				return nil
			})
		},
	}
}

func newStreakCmd(opts *rootOptions) *cobra.Command {
	streak := &cobra.Command{
		Use:   "streak",
		Short: "Show the current streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				s, err := app.JournalCLI.Streak(cmd.Context())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "%s streak: %d, longest %d\n", s.Mode, s.Current, s.Longest)
				if !s.LastDate.IsZero() {
					_, _ = fmt.Fprintf(w, "last writing day: %s\n", s.LastDate)
				}
				_, _ = fmt.Fprintf(w, "grace used: %d/%d\n", s.GraceUsed, s.GraceLimit)
				if s.Mode == "weekly" {
					_, _ = fmt.Fprintf(w, "this week: %d/%d days\n", s.DaysThisWeek, s.WeeklyTarget)
				}
				_, _ = fmt.Fprintln(w, weekString(s.Week))
				return nil
			})
		},
	}
	streak.AddCommand(&cobra.Command{
		Use:   "rebuild",
		Short: "Recompute the streak from the session log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				s, err := app.JournalCLI.RebuildStreak(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "streak rebuilt: %d (longest %d)\n", s.Current, s.Longest)
				return nil
			})
		},
	})
	return streak
}

func newLogCmd(opts *rootOptions) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "log",
		Short: "List logged sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				today := civil.DateOf(time.Now().In(app.Config.Location))
				sessions, err := app.JournalCLI.Log(cmd.Context(), today.AddDays(1-days), today)
				if err != nil {
					return err
				}
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				tbl := newTable("DATE", "START", "STATUS", "COUNT", "TARGET", "MIN", "MET", "FILES")
				for _, s := range sessions {
					target := "-"
					if s.TargetValue > 0 {
						target = fmt.Sprintf("%d %s", s.TargetValue, s.TargetUnit)
					}
					tbl.AddRow(s.Date, s.StartedAt.Format("15:04"), s.Status, fmt.Sprintf("%d %s", s.Count, s.CountUnit),
						target, s.ActiveMinutes, check(s.MetTarget), strings.Join(s.Files, ", "))
				}
				printTable(cmd.OutOrStdout(), tbl)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "how many days back to list")
	return cmd
}

// withApp opens the vault, runs fn and closes the vault.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(cmd, opts)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}
