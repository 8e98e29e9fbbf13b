package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"quill/internal/bootstrap"
	profiledto "quill/internal/modules/profile/dto"
)

var (
	purposes      = []string{"express", "monetize", "fun", "skill", "custom"}
	feasibilities = []string{"busy", "normal", "free"}
)

func newProfileCmd(opts *rootOptions) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Writing profile and targets"}

	var answers profiledto.AnswersInput
	estimate := &cobra.Command{
		Use:   "estimate",
		Short: "Show the recommendation for a set of answers without saving",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				rec, err := app.ProfileCLI.Estimate(cmd.Context(), answers)
				if err != nil {
					return err
				}
				printRecommendation(cmd.OutOrStdout(), rec)
				return nil
			})
		},
	}
	estimate.Flags().StringVar(&answers.Purpose, "purpose", "custom", "express|monetize|fun|skill|custom")
	estimate.Flags().StringVar(&answers.Outcome, "outcome", "", "what you want to get out of writing")
	estimate.Flags().StringVar(&answers.Feasibility, "feasibility", "normal", "busy|normal|free")
	estimate.Flags().IntVar(&answers.Hint, "hint", 0, "your own target guess")
	estimate.Flags().StringVar(&answers.HintUnit, "hint-unit", "words", "words|minutes")

	var output string
	show := &cobra.Command{
		Use:   "show",
		Short: "Show the active profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				p, err := app.ProfileCLI.Show(cmd.Context())
				if err != nil {
					return err
				}
				if output == "yaml" {
					return printYAML(cmd.OutOrStdout(), profileDocument(p))
				}
				printProfile(cmd.OutOrStdout(), p)
				return nil
			})
		},
	}
	show.Flags().StringVarP(&output, "output", "o", "table", "output format: table|yaml")

	var (
		target, minutes, perWeek int
		unit, at                 string
		days                     []string
	)
	set := &cobra.Command{
		Use:   "set",
		Short: "Override targets and preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := profiledto.OverrideInput{}
			flags := cmd.Flags()
			if flags.Changed("target") {
				input.TargetValue = &target
			}
			if flags.Changed("unit") {
				input.TargetUnit = &unit
			}
			if flags.Changed("minutes") {
				input.SessionMinutes = &minutes
			}
			if flags.Changed("per-week") {
				input.SessionsPerWeek = &perWeek
			}
			if flags.Changed("days") {
				input.PreferredDays = days
			}
			if flags.Changed("time") {
				input.PreferredTime = &at
			}
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				p, err := app.ProfileCLI.Set(cmd.Context(), input)
				if err != nil {
					return err
				}
				printProfile(cmd.OutOrStdout(), p)
				return nil
			})
		},
	}
	set.Flags().IntVar(&target, "target", 0, "session target value")
	set.Flags().StringVar(&unit, "unit", "words", "words|characters|minutes")
	set.Flags().IntVar(&minutes, "minutes", 0, "session length in minutes")
	set.Flags().IntVar(&perWeek, "per-week", 0, "sessions per week")
	set.Flags().StringSliceVar(&days, "days", nil, "preferred days, e.g. mon,wed,fri")
	set.Flags().StringVar(&at, "time", "", "preferred time, HH:MM")

	var force bool
	recalc := &cobra.Command{
		Use:   "recalc",
		Short: "Re-run the estimate when the rules changed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				out, err := app.ProfileCLI.Recalculate(cmd.Context(), force)
				if err != nil {
					return err
				}
				if !out.Changed {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "recommendation is current")
					return nil
				}
				printProfile(cmd.OutOrStdout(), out.Profile)
				return nil
			})
		},
	}
	recalc.Flags().BoolVar(&force, "force", false, "recalculate even when current")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Remove the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				if err := app.ProfileCLI.Reset(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "profile removed")
				return nil
			})
		},
	}

	profile.AddCommand(estimate, show, set, recalc, reset)
	return profile
}

func newOnboardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "onboard",
		Short: "Answer the questionnaire and save a profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				return runOnboarding(cmd.Context(), cmd, app)
			})
		},
	}
}

// runOnboarding asks the questionnaire on the terminal, previews the
// recommendation and saves it once confirmed.
func runOnboarding(ctx context.Context, cmd *cobra.Command, app *bootstrap.App) error {
	out := cmd.OutOrStdout()
	stdin := io.NopCloser(cmd.InOrStdin())

	_, purpose, err := (&promptui.Select{Label: "Why do you write", Items: purposes, Stdin: stdin, HideHelp: true}).Run()
	if err != nil {
		return promptErr(err)
	}
	outcome, err := (&promptui.Prompt{Label: "What do you want out of it", Stdin: stdin}).Run()
	if err != nil {
		return promptErr(err)
	}
	_, feasibility, err := (&promptui.Select{Label: "How much time do you have", Items: feasibilities, Stdin: stdin, HideHelp: true}).Run()
	if err != nil {
		return promptErr(err)
	}
	hintRaw, err := (&promptui.Prompt{
		Label:    "Your own words-per-session guess (blank to skip)",
		Stdin:    stdin,
		Validate: optionalPositive,
	}).Run()
	if err != nil {
		return promptErr(err)
	}
	answers := profiledto.AnswersInput{Purpose: purpose, Outcome: outcome, Feasibility: feasibility}
	if hint, _ := strconv.Atoi(strings.TrimSpace(hintRaw)); hint > 0 {
		answers.Hint, answers.HintUnit = hint, "words"
	}

	rec, err := app.ProfileCLI.Estimate(ctx, answers)
	if err != nil {
		return err
	}
	printRecommendation(out, rec)

	daysRaw, err := (&promptui.Prompt{Label: "Preferred days (e.g. mon,wed,fri; blank for any)", Stdin: stdin}).Run()
	if err != nil {
		return promptErr(err)
	}
	at, err := (&promptui.Prompt{Label: "Preferred time HH:MM (blank for none)", Stdin: stdin}).Run()
	if err != nil {
		return promptErr(err)
	}
	if _, err := (&promptui.Prompt{Label: "Save this profile", IsConfirm: true, Stdin: stdin}).Run(); err != nil {
		return promptErr(err)
	}

	input := profiledto.SaveInput{Answers: answers, PreferredTime: strings.TrimSpace(at)}
	for _, d := range strings.Split(daysRaw, ",") {
		if d = strings.TrimSpace(d); d != "" {
			input.PreferredDays = append(input.PreferredDays, d)
		}
	}
	p, err := app.ProfileCLI.Onboard(ctx, input)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, green("profile saved"))
	printProfile(out, p)
	return nil
}

func optionalPositive(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	if n, err := strconv.Atoi(input); err != nil || n <= 0 {
		return errors.New("enter a positive number or leave blank")
	}
	return nil
}

func promptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrEOF) {
		return errors.New("onboarding cancelled")
	}
	return err
}

func printRecommendation(w io.Writer, r profiledto.RecommendationOutput) {
	tbl := newTable()
	tbl.AddRow("target", fmt.Sprintf("%d words", r.TargetWords))
	tbl.AddRow("session", fmt.Sprintf("%d min", r.SessionMinutes))
	tbl.AddRow("per week", r.SessionsPerWeek)
	tbl.AddRow("rules", r.RuleVersion)
	if r.Stale {
		tbl.AddRow("", "rules changed since this was calculated; run quill profile recalc")
	}
	printTable(w, tbl)
}

func printProfile(w io.Writer, p profiledto.ProfileOutput) {
	if !p.Active {
		_, _ = fmt.Fprintln(w, "no profile; run quill onboard")
		return
	}
	tbl := newTable()
	tbl.AddRow("purpose", p.Purpose)
	if p.Outcome != "" {
		tbl.AddRow("outcome", p.Outcome)
	}
	tbl.AddRow("feasibility", p.Feasibility)
	tbl.AddRow("target", fmt.Sprintf("%d %s", p.TargetValue, p.TargetUnit))
	tbl.AddRow("session", fmt.Sprintf("%d min", p.SessionMinutes))
	tbl.AddRow("per week", p.SessionsPerWeek)
	if len(p.PreferredDays) > 0 {
		tbl.AddRow("days", strings.Join(p.PreferredDays, ", "))
	}
	if p.PreferredTime != "" {
		tbl.AddRow("time", p.PreferredTime)
	}
	if p.Recommendation.Stale {
		tbl.AddRow("", "recommendation is stale; run quill profile recalc")
	}
	printTable(w, tbl)
}

func profileDocument(p profiledto.ProfileOutput) map[string]any {
	return map[string]any{
		"active":            p.Active,
		"purpose":           p.Purpose,
		"outcome":           p.Outcome,
		"feasibility":       p.Feasibility,
		"target_unit":       p.TargetUnit,
		"target_value":      p.TargetValue,
		"session_minutes":   p.SessionMinutes,
		"sessions_per_week": p.SessionsPerWeek,
		"preferred_days":    p.PreferredDays,
		"preferred_time":    p.PreferredTime,
		"recommendation": map[string]any{
			"target_words":      p.Recommendation.TargetWords,
			"session_minutes":   p.Recommendation.SessionMinutes,
			"sessions_per_week": p.Recommendation.SessionsPerWeek,
			"rule_version":      p.Recommendation.RuleVersion,
			"stale":             p.Recommendation.Stale,
		},
	}
}
