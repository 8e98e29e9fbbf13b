package templates

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	templatedto "quill/internal/modules/template/dto"
	"quill/internal/ui/components"
	"quill/internal/ui/theme"
)

type Port interface {
	Templates(ctx context.Context) ([]templatedto.TemplateOutput, error)
}

type LoadedMsg struct {
	Templates []templatedto.TemplateOutput
	Err       error
}

type Model struct {
	port Port
	pane components.ListPane
}

func New(port Port) Model {
	return Model{port: port, pane: components.NewListPane("Templates", "No templates")}
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		list, err := m.port.Templates(context.Background())
		return LoadedMsg{Templates: list, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.pane.SetSize(msg.Width, msg.Height)
		return m, nil
	case LoadedMsg:
		if msg.Err != nil {
			m.pane.SetTitle("Templates: " + msg.Err.Error())
			return m, nil
		}
		m.pane.SetTitle("Templates")
		items := make([]components.Item, len(msg.Templates))
		for i, t := range msg.Templates {
			desc := t.TitlePattern
			if t.BuiltIn {
				desc = "built-in  " + desc
			}
			items[i] = components.Item{ID: t.ID, Label: t.Name, Desc: desc, Detail: renderDetail(t)}
		}
		return m, m.pane.SetItems(items)
	}
	var cmd tea.Cmd
	m.pane, cmd = m.pane.Update(msg)
	return m, cmd
}

func (m Model) View() string    { return m.pane.View() }
func (m Model) Filtering() bool { return m.pane.Filtering() }

// SelectedTemplateID returns the highlighted template, if any.
func (m Model) SelectedTemplateID() (string, bool) {
	item, ok := m.pane.Selected()
	return item.ID, ok
}

func renderDetail(t templatedto.TemplateOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(t.Name) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:    ") + t.ID + "\n")
	sb.WriteString(theme.Muted.Render("title: ") + t.TitlePattern + "\n")
	if len(t.Variables) > 0 {
		sb.WriteString(theme.Muted.Render("vars:  ") + strings.Join(t.Variables, ", ") + "\n")
	}
	sb.WriteString("\n" + t.Body + "\n")
	sb.WriteString("\n" + theme.Muted.Render("enter: create note and start a session"))
	return sb.String()
}
