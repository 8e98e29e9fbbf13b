package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	commanddomain "quill/internal/modules/command/domain"
	journaldto "quill/internal/modules/journal/dto"
	reminderdto "quill/internal/modules/reminder/dto"
	reminderservice "quill/internal/modules/reminder/service"
	templatedto "quill/internal/modules/template/dto"
	trackerdto "quill/internal/modules/tracker/dto"
	"quill/internal/platform/civil"
	"quill/internal/platform/notify"
	uiapp "quill/internal/ui/app"
	"quill/internal/ui/components"
)

const sessionHistoryDays = 90

// RunTUI starts the runtime and shows the dashboard until the user quits or
// ctx is cancelled. notices must be the channel the App was built with.
func RunTUI(ctx context.Context, app *App, notices *notify.Channel) error {
	rt, err := app.Start(ctx)
	if err != nil {
		return err
	}
	ports := loopPorts{app: app, rt: rt}
	hints := make([]components.Hint, 0, len(commanddomain.Catalog()))
	for _, d := range commanddomain.Catalog() {
		hints = append(hints, components.Hint{ID: d.ID, Title: d.Title})
	}
	var ch <-chan notify.Notice
	if notices != nil {
		ch = notices.C()
	}
	model := uiapp.NewModel(filepath.Base(app.Config.VaultPath), uiapp.Ports{
		Dashboard: ports,
		Sessions:  ports,
		Templates: ports,
		Reminders: ports,
		Actions:   ports,
	}, hints, ch)

	app.Interactive.Dashboard = func(context.Context) error { return nil }
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := program.Run()
	stopErr := rt.Stop(context.Background())
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		runErr = nil
	}
	if runErr != nil {
		return runErr
	}
	return stopErr
}

// loopPorts adapts the App to the dashboard ports. Every call runs on the
// loop so the UI never races the session poller.
type loopPorts struct {
	app *App
	rt  *Runtime
}

func (p loopPorts) Status(ctx context.Context) (out trackerdto.StatusOutput, err error) {
	err = p.rt.Do(ctx, func(ctx context.Context) error {
		out, err = p.app.TrackerCLI.Status(ctx)
		return err
	})
	return out, err
}

func (p loopPorts) Stats(ctx context.Context) (out journaldto.StatsOutput, err error) {
	err = p.rt.Do(ctx, func(ctx context.Context) error {
		out, err = p.app.JournalCLI.Stats(ctx)
		return err
	})
	return out, err
}

func (p loopPorts) Upcoming(ctx context.Context) (out []reminderdto.ReminderOutput, err error) {
	err = p.rt.Do(ctx, func(ctx context.Context) error {
		out, err = p.app.ReminderCLI.Next(ctx)
		return err
	})
	return out, err
}

func (p loopPorts) Reminders(ctx context.Context) (out []reminderdto.ReminderOutput, err error) {
	err = p.rt.Do(ctx, func(ctx context.Context) error {
		out, err = p.app.ReminderCLI.List(ctx)
		return err
	})
	return out, err
}

func (p loopPorts) RecentSessions(ctx context.Context) (out []journaldto.SessionOutput, err error) {
	today := civil.DateOf(time.Now().In(p.app.Config.Location))
	err = p.rt.Do(ctx, func(ctx context.Context) error {
		out, err = p.app.JournalCLI.Log(ctx, today.AddDays(-sessionHistoryDays), today)
		return err
	})
	return out, err
}

func (p loopPorts) Templates(ctx context.Context) (out []templatedto.TemplateOutput, err error) {
	err = p.rt.Do(ctx, func(ctx context.Context) error {
		out, err = p.app.TemplateCLI.List(ctx)
		return err
	})
	return out, err
}

func (p loopPorts) RunCommand(ctx context.Context, commandID string) (message string, err error) {
	err = p.rt.Do(ctx, func(ctx context.Context) error {
		result, err := p.app.CommandCLI.Run(ctx, commandID)
		message = result.Message
		return err
	})
	return message, err
}

// HandleNoticeAction routes reminder actions to the reminder module and
// anything else to the command catalog.
func (p loopPorts) HandleNoticeAction(ctx context.Context, actionID string) (string, error) {
	if strings.HasPrefix(actionID, reminderservice.ActionSnooze) || strings.HasPrefix(actionID, reminderservice.ActionAcknowledge) {
		var message string
		err := p.rt.Do(ctx, func(ctx context.Context) error {
			var err error
			message, err = p.app.Reminders.HandleAction(ctx, actionID)
			return err
		})
		return message, err
	}
	if _, ok := commanddomain.Lookup(actionID); ok {
		return p.RunCommand(ctx, actionID)
	}
	return "", fmt.Errorf("unknown action %q", actionID)
}

func (p loopPorts) NewNote(ctx context.Context, templateID string) (message string, err error) {
	err = p.rt.Do(ctx, func(ctx context.Context) error {
		out, err := p.app.TemplateCLI.NewNote(ctx, templateID, nil, true)
		if err != nil {
			return err
		}
		message = "created " + out.RelPath
		if out.SessionError != "" {
			message += " (session not started: " + out.SessionError + ")"
		}
		return nil
	})
	return message, err
}

func (p loopPorts) SetReminderEnabled(ctx context.Context, reminderID string, enabled bool) error {
	return p.rt.Do(ctx, func(ctx context.Context) error {
		_, err := p.app.ReminderCLI.SetEnabled(ctx, reminderID, enabled)
		return err
	})
}
