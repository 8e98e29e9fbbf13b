package reminders

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	reminderdto "quill/internal/modules/reminder/dto"
	"quill/internal/ui/components"
	"quill/internal/ui/theme"
)

type Port interface {
	Reminders(ctx context.Context) ([]reminderdto.ReminderOutput, error)
}

type LoadedMsg struct {
	Reminders []reminderdto.ReminderOutput
	Err       error
}

type Model struct {
	port    Port
	pane    components.ListPane
	enabled map[string]bool
}

func New(port Port) Model {
	return Model{port: port, pane: components.NewListPane("Reminders", "No reminders. Add one with quill reminder add."), enabled: map[string]bool{}}
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		list, err := m.port.Reminders(context.Background())
		return LoadedMsg{Reminders: list, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.pane.SetSize(msg.Width, msg.Height)
		return m, nil
	case LoadedMsg:
		if msg.Err != nil {
			m.pane.SetTitle("Reminders: " + msg.Err.Error())
			return m, nil
		}
		m.pane.SetTitle("Reminders")
		m.enabled = make(map[string]bool, len(msg.Reminders))
		items := make([]components.Item, len(msg.Reminders))
		for i, r := range msg.Reminders {
			m.enabled[r.ID] = r.Enabled
			items[i] = toItem(r)
		}
		return m, m.pane.SetItems(items)
	}
	var cmd tea.Cmd
	m.pane, cmd = m.pane.Update(msg)
	return m, cmd
}

func (m Model) View() string    { return m.pane.View() }
func (m Model) Filtering() bool { return m.pane.Filtering() }

// Selected returns the highlighted reminder id and whether it is enabled.
func (m Model) Selected() (string, bool, bool) {
	item, ok := m.pane.Selected()
	if !ok {
		return "", false, false
	}
	return item.ID, m.enabled[item.ID], true
}

func toItem(r reminderdto.ReminderOutput) components.Item {
	state := "off"
	if r.Enabled {
		state = "on"
	}
	return components.Item{
		ID:     r.ID,
		Label:  fmt.Sprintf("%s  %s", r.At, r.Label),
		Desc:   fmt.Sprintf("%s  %s", state, strings.Join(r.Days, " ")),
		Detail: renderDetail(r),
	}
}

func renderDetail(r reminderdto.ReminderOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(r.Label) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:       ") + r.ID + "\n")
	sb.WriteString(theme.Muted.Render("at:       ") + r.At + "\n")
	sb.WriteString(theme.Muted.Render("days:     ") + strings.Join(r.Days, ", ") + "\n")
	if r.DND != "" {
		sb.WriteString(theme.Muted.Render("quiet:    ") + r.DND + "\n")
	}
	if r.SecondOffsetMinutes > 0 {
		sb.WriteString(fmt.Sprintf("%s%d min later\n", theme.Muted.Render("nudge:    "), r.SecondOffsetMinutes))
	}
	if r.TemplateID != "" {
		sb.WriteString(theme.Muted.Render("template: ") + r.TemplateID + "\n")
	}
	switch {
	case !r.Enabled:
		sb.WriteString("\n" + theme.Warn.Render("disabled"))
	case r.NextFire != nil:
		sb.WriteString("\n" + theme.Good.Render("next: "+r.NextFire.Format("Mon Jan 2 15:04")))
	default:
		sb.WriteString("\n" + theme.Muted.Render("no upcoming fire"))
	}
	sb.WriteString("\n\n" + theme.Muted.Render("space: enable/disable"))
	return sb.String()
}
