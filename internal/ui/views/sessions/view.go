package sessions

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	journaldto "quill/internal/modules/journal/dto"
	"quill/internal/ui/components"
	"quill/internal/ui/theme"
)

type Port interface {
	RecentSessions(ctx context.Context) ([]journaldto.SessionOutput, error)
}

type LoadedMsg struct {
	Sessions []journaldto.SessionOutput
	Err      error
}

type Model struct {
	port Port
	pane components.ListPane
}

func New(port Port) Model {
	return Model{port: port, pane: components.NewListPane("Sessions", "No sessions logged yet")}
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		sessions, err := m.port.RecentSessions(context.Background())
		return LoadedMsg{Sessions: sessions, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.pane.SetSize(msg.Width, msg.Height)
		return m, nil
	case LoadedMsg:
		if msg.Err != nil {
			m.pane.SetTitle("Sessions: " + msg.Err.Error())
			return m, nil
		}
		m.pane.SetTitle("Sessions")
		items := make([]components.Item, len(msg.Sessions))
		for i, s := range msg.Sessions {
			items[i] = toItem(s)
		}
		return m, m.pane.SetItems(items)
	}
	var cmd tea.Cmd
	m.pane, cmd = m.pane.Update(msg)
	return m, cmd
}

func (m Model) View() string    { return m.pane.View() }
func (m Model) Filtering() bool { return m.pane.Filtering() }

func toItem(s journaldto.SessionOutput) components.Item {
	mark := "·"
	if s.MetTarget {
		mark = "✓"
	}
	return components.Item{
		ID:     s.ID,
		Label:  fmt.Sprintf("%s %s  %s", mark, s.Date, s.StartedAt.Format("15:04")),
		Desc:   fmt.Sprintf("%s, %d %s", s.Status, s.Count, s.CountUnit),
		Detail: renderDetail(s),
	}
}

func renderDetail(s journaldto.SessionOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Session "+s.Date.String()) + "\n\n")
	sb.WriteString(theme.Muted.Render("status:  ") + s.Status + "\n")
	sb.WriteString(theme.Muted.Render("started: ") + s.StartedAt.Format("2006-01-02 15:04") + "\n")
	if s.EndedAt != nil {
		sb.WriteString(theme.Muted.Render("ended:   ") + s.EndedAt.Format("2006-01-02 15:04") + "\n")
	}
	sb.WriteString(fmt.Sprintf("%s%d %s\n", theme.Muted.Render("count:   "), s.Count, s.CountUnit))
	sb.WriteString(fmt.Sprintf("%s%d min\n", theme.Muted.Render("active:  "), s.ActiveMinutes))
	if s.TargetValue > 0 {
		met := theme.Bad.Render("missed")
		if s.MetTarget {
			met = theme.Good.Render("met")
		}
		sb.WriteString(fmt.Sprintf("%s%d %s (%s)\n", theme.Muted.Render("target:  "), s.TargetValue, s.TargetUnit, met))
	}
	if len(s.Files) > 0 {
		sb.WriteString("\n" + theme.Muted.Render("files") + "\n")
		for _, f := range s.Files {
			sb.WriteString("  " + f + "\n")
		}
	}
	return sb.String()
}
