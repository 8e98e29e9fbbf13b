package bootstrap

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"

	commandinadapter "quill/internal/modules/command/adapter/in"
	commandoutadapter "quill/internal/modules/command/adapter/out"
	commandin "quill/internal/modules/command/port/in"
	commandservice "quill/internal/modules/command/service"
	commandusecase "quill/internal/modules/command/usecase"
	journalinadapter "quill/internal/modules/journal/adapter/in"
	journaloutadapter "quill/internal/modules/journal/adapter/out"
	journaldomain "quill/internal/modules/journal/domain"
	journalin "quill/internal/modules/journal/port/in"
	journalout "quill/internal/modules/journal/port/out"
	journalservice "quill/internal/modules/journal/service"
	journalusecase "quill/internal/modules/journal/usecase"
	plannerinadapter "quill/internal/modules/planner/adapter/in"
	planneroutadapter "quill/internal/modules/planner/adapter/out"
	plannerin "quill/internal/modules/planner/port/in"
	plannerservice "quill/internal/modules/planner/service"
	plannerusecase "quill/internal/modules/planner/usecase"
	profileinadapter "quill/internal/modules/profile/adapter/in"
	profileoutadapter "quill/internal/modules/profile/adapter/out"
	profilein "quill/internal/modules/profile/port/in"
	profileservice "quill/internal/modules/profile/service"
	profileusecase "quill/internal/modules/profile/usecase"
	promptinadapter "quill/internal/modules/prompt/adapter/in"
	promptoutadapter "quill/internal/modules/prompt/adapter/out"
	promptin "quill/internal/modules/prompt/port/in"
	promptout "quill/internal/modules/prompt/port/out"
	promptservice "quill/internal/modules/prompt/service"
	promptusecase "quill/internal/modules/prompt/usecase"
	reminderinadapter "quill/internal/modules/reminder/adapter/in"
	reminderoutadapter "quill/internal/modules/reminder/adapter/out"
	reminderin "quill/internal/modules/reminder/port/in"
	reminderservice "quill/internal/modules/reminder/service"
	reminderusecase "quill/internal/modules/reminder/usecase"
	templateinadapter "quill/internal/modules/template/adapter/in"
	templateoutadapter "quill/internal/modules/template/adapter/out"
	templatein "quill/internal/modules/template/port/in"
	templateservice "quill/internal/modules/template/service"
	templateusecase "quill/internal/modules/template/usecase"
	trackerinadapter "quill/internal/modules/tracker/adapter/in"
	trackeroutadapter "quill/internal/modules/tracker/adapter/out"
	trackerin "quill/internal/modules/tracker/port/in"
	trackerout "quill/internal/modules/tracker/port/out"
	trackerservice "quill/internal/modules/tracker/service"
	trackerusecase "quill/internal/modules/tracker/usecase"
	"quill/internal/platform/clock"
	"quill/internal/platform/config"
	"quill/internal/platform/id"
	"quill/internal/platform/logging"
	"quill/internal/platform/loop"
	"quill/internal/platform/notify"
)

// Options selects how the app is driven.
type Options struct {
	// Live arms timers on the loop: session polling, reminders and nudges.
	// One-shot CLI commands leave it off and poll explicitly.
	Live bool
	// Notifier receives user-visible notices. Nil prints to LogOutput.
	Notifier notify.Notifier
	// LogOutput receives structured logs. Nil discards them.
	LogOutput io.Writer
	// Version is sent as the prompt feed user agent.
	Version string
}

type App struct {
	Config config.Config
	Logger hclog.Logger
	Loop   *loop.Loop

	Journal   journalin.Usecase
	Profile   profilein.Usecase
	Tracker   trackerin.Usecase
	Planner   plannerin.Usecase
	Reminders reminderin.Usecase
	Templates templatein.Usecase
	Prompts   promptin.Usecase
	Commands  commandin.Usecase

	JournalCLI  journalinadapter.CLIHandler
	ProfileCLI  profileinadapter.CLIHandler
	TrackerCLI  trackerinadapter.CLIHandler
	PlannerCLI  plannerinadapter.CLIHandler
	ReminderCLI reminderinadapter.CLIHandler
	TemplateCLI templateinadapter.CLIHandler
	PromptCLI   promptinadapter.CLIHandler
	CommandCLI  commandinadapter.CLIHandler

	// Interactive is filled in by hosts with a terminal so the dashboard
	// and onboarding commands can run.
	Interactive *commandoutadapter.Interactive

	closers []func() error
}

func New(cfg config.Config, opts Options) (*App, error) {
	logOut := opts.LogOutput
	if logOut == nil {
		logOut = io.Discard
	}
	logger := logging.New("quill", cfg.LogLevel, cfg.LogFormat, logOut)
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewTerminal(logOut)
	}
	clk := clock.SystemClock{Location: cfg.Location}
	ids := id.UUID{}
	events := loop.New(128)
	app := &App{Config: cfg, Logger: logger, Loop: events}

	// Journal owns the persisted document; every other module reaches it
	// through journalin.Documents.
	projector, err := journaloutadapter.NewSQLiteSessionProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new session projector: %w", err)
	}
	app.closers = append(app.closers, projector.Close)
	var notes journalout.SessionNoteWriter
	if cfg.SessionNotes {
		notes = journaloutadapter.NewVaultSessionNoteWriter(cfg.VaultPath, cfg.NotesFolder)
	}
	journalSvc := journalservice.NewJournalService(
		clk,
		journaloutadapter.NewFileDocumentStore(cfg.DataPath),
		projector,
		notes,
		journaldomain.DefaultSettings(filepath.Base(cfg.VaultPath), cfg.NotesFolder),
		logger.Named("journal"),
	)
	app.Journal = journalusecase.NewInteractor(journalSvc)
	notesFolder := func(ctx context.Context) (string, error) {
		settings, err := app.Journal.Settings(ctx)
		if err != nil {
			return "", err
		}
		return settings.NotesFolder, nil
	}

	app.Profile = profileusecase.NewInteractor(profileservice.NewProfileService(
		clk,
		profileoutadapter.NewDocumentProfileStore(journalSvc),
	))

	var scheduler trackerout.PollScheduler = trackeroutadapter.NopScheduler{}
	if opts.Live {
		scheduler = trackeroutadapter.NewLoopScheduler(events)
	}
	app.Tracker = trackerusecase.NewInteractor(trackerservice.NewTrackerService(trackerservice.Deps{
		Clock:     clk,
		IDs:       ids,
		Reader:    trackeroutadapter.NewVaultContentReader(cfg.VaultPath),
		Active:    trackeroutadapter.NewFileActiveSessionStore(cfg.ActivePath),
		Targets:   trackeroutadapter.NewProfileTargetSource(app.Profile, app.Journal),
		Recorder:  trackeroutadapter.NewJournalRecorder(app.Journal),
		Scheduler: scheduler,
		Notifier:  notifier,
		Logger:    logger.Named("tracker"),
		Interval:  cfg.PollInterval,
	}))

	var fetcher promptout.FeedFetcher
	if cfg.PromptFeedURL != "" {
		fetcher = promptoutadapter.NewHTTPFeedFetcher(cfg.PromptFeedURL, "quill/"+opts.Version)
	}
	app.Prompts = promptusecase.NewInteractor(promptservice.NewPromptService(
		clk,
		fetcher,
		promptoutadapter.NewDiskvFeedCache(cfg.CacheDir),
		nil,
		logger.Named("prompt"),
	))

	app.Templates = templateusecase.NewInteractor(templateservice.NewTemplateService(
		clk,
		templateoutadapter.NewDocumentTemplateStore(journalSvc),
		templateoutadapter.NewVaultNoteFiles(cfg.VaultPath),
		templateoutadapter.NewPromptBridge(app.Prompts),
		templateoutadapter.NewTrackerSessionStarter(app.Tracker),
		templateoutadapter.NewJournalNoteSettings(app.Journal),
		logger.Named("template"),
	))

	app.Planner = plannerusecase.NewInteractor(plannerservice.NewPlannerService(
		clk,
		planneroutadapter.NewJournalActivitySource(app.Journal),
		planneroutadapter.NewProfileGoalSource(app.Profile),
		planneroutadapter.NewVaultReviewWriter(cfg.VaultPath, notesFolder),
		notifier,
		logger.Named("planner"),
	))

	app.Reminders = reminderusecase.NewInteractor(reminderservice.NewReminderService(
		clk,
		id.Short{},
		reminderoutadapter.NewDocumentReminderStore(journalSvc),
		reminderoutadapter.NewLoopTimers(events),
		reminderoutadapter.NewJournalActivityChecker(app.Journal),
		reminderoutadapter.NewTemplateNoteStarter(app.Templates),
		notifier,
		logger.Named("reminder"),
	))

	app.Interactive = &commandoutadapter.Interactive{}
	app.Commands = commandusecase.NewInteractor(commandservice.NewCommandService(commandservice.Deps{
		Sessions:    commandoutadapter.NewTrackerSessionControl(app.Tracker),
		Notes:       commandoutadapter.NewTemplateNoteCreator(app.Templates),
		Locator:     commandoutadapter.NewVaultNoteLocator(cfg.VaultPath, notesFolder),
		Prompts:     commandoutadapter.NewPromptBridge(app.Prompts),
		Summaries:   commandoutadapter.NewPlannerSummaries(app.Planner),
		Interactive: app.Interactive,
		Plugins:     commandoutadapter.NewGRPCPluginHost(cfg.VaultPath, logger.Named("plugin-host")),
		Logger:      logger.Named("command"),
	}))

	app.JournalCLI = journalinadapter.NewCLIHandler(app.Journal)
	app.ProfileCLI = profileinadapter.NewCLIHandler(app.Profile)
	app.TrackerCLI = trackerinadapter.NewCLIHandler(app.Tracker)
	app.PlannerCLI = plannerinadapter.NewCLIHandler(app.Planner)
	app.ReminderCLI = reminderinadapter.NewCLIHandler(app.Reminders)
	app.TemplateCLI = templateinadapter.NewCLIHandler(app.Templates)
	app.PromptCLI = promptinadapter.NewCLIHandler(app.Prompts)
	app.CommandCLI = commandinadapter.NewCLIHandler(app.Commands)
	return app, nil
}

// Close releases the SQLite projection and closes the loop.
func (a *App) Close() error {
	a.Loop.Close()
	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
