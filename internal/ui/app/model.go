package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quill/internal/platform/notify"
	"quill/internal/ui/components"
	"quill/internal/ui/theme"
	dashboardview "quill/internal/ui/views/dashboard"
	remindersview "quill/internal/ui/views/reminders"
	sessionsview "quill/internal/ui/views/sessions"
	templatesview "quill/internal/ui/views/templates"
)

// ActionPort runs everything that changes state. Implementations serialize
// calls with the session poller.
type ActionPort interface {
	RunCommand(ctx context.Context, commandID string) (string, error)
	HandleNoticeAction(ctx context.Context, actionID string) (string, error)
	NewNote(ctx context.Context, templateID string) (string, error)
	SetReminderEnabled(ctx context.Context, reminderID string, enabled bool) error
}

type Ports struct {
	Dashboard dashboardview.Port
	Sessions  sessionsview.Port
	Templates templatesview.Port
	Reminders remindersview.Port
	Actions   ActionPort
}

const (
	cmdOpenDashboard = "open-dashboard"
	cmdOnboarding    = "onboarding"
	cmdQuickNote     = "quick-note"
	cmdPause         = "session-pause"
	cmdResume        = "session-resume"
	cmdComplete      = "session-complete"
	cmdSkip          = "session-skip"
)

type tabID int

const (
	tabDashboard tabID = iota
	tabSessions
	tabTemplates
	tabReminders
	tabCount
)

var tabLabels = [tabCount]string{"Dashboard", "Sessions", "Templates", "Reminders"}

type noticeMsg notify.Notice

type actionDoneMsg struct {
	message string
	err     error
}

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Pause    key.Binding
	Complete key.Binding
	Skip     key.Binding
	Quick    key.Binding
	Enter    key.Binding
	Toggle   key.Binding
	Accept   key.Binding
	Snooze   key.Binding
	Dismiss  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Pause:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause/resume")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete session")),
		Skip:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "skip session")),
		Quick:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "quick note")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "new note from template")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle reminder")),
		Accept:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "notice: first action")),
		Snooze:   key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "notice: second action")),
		Dismiss:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss notice")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Palette, k.Help, k.Quit},
		{k.Quick, k.Pause, k.Complete, k.Skip},
		{k.Enter, k.Toggle},
		{k.Accept, k.Snooze, k.Dismiss},
	}
}

// Model is the root Bubble Tea model. It owns tab routing, the help overlay,
// the command palette and the notice bar. Rendering is delegated to views.
type Model struct {
	title   string
	actions ActionPort
	notices <-chan notify.Notice

	dashView     dashboardview.Model
	sessionView  sessionsview.Model
	templateView templatesview.Model
	reminderView remindersview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	notice    *notify.Notice
	status    string
	width     int
	height    int
}

func NewModel(title string, ports Ports, commands []components.Hint, notices <-chan notify.Notice) Model {
	return Model{
		title:        title,
		actions:      ports.Actions,
		notices:      notices,
		dashView:     dashboardview.New(ports.Dashboard, nil),
		sessionView:  sessionsview.New(ports.Sessions),
		templateView: templatesview.New(ports.Templates),
		reminderView: remindersview.New(ports.Reminders),
		activeTab:    tabDashboard,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(commands),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dashView.Init(),
		m.sessionView.Init(),
		m.templateView.Init(),
		m.reminderView.Init(),
		m.waitNotice(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case noticeMsg:
		n := notify.Notice(msg)
		if n.Persistent || len(n.Actions) > 0 {
			m.notice = &n
		} else {
			m.status = n.String()
		}
		return m, tea.Batch(m.waitNotice(), m.dashView.Refresh(), m.sessionView.Refresh())

	case actionDoneMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
		} else if msg.message != "" {
			m.status = msg.message
		}
		return m, m.refreshAll()

	case dashboardview.LoadedMsg:
		m.dashView, _ = m.dashView.Update(msg)
		return m, nil
	case sessionsview.LoadedMsg:
		var cmd tea.Cmd
		m.sessionView, cmd = m.sessionView.Update(msg)
		return m, cmd
	case templatesview.LoadedMsg:
		var cmd tea.Cmd
		m.templateView, cmd = m.templateView.Update(msg)
		return m, cmd
	case remindersview.LoadedMsg:
		var cmd tea.Cmd
		m.reminderView, cmd = m.reminderView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.subViewFiltering() {
			break
		}
		if handled, next, cmd := m.handleKey(msg); handled {
			return next, cmd
		}
	}

	// Ticks and keys the root did not consume go to the dashboard (always, so
	// it keeps refreshing) and to the active tab.
	var cmd tea.Cmd
	m.dashView, cmd = m.dashView.Update(msg)
	cmds = append(cmds, cmd)
	switch m.activeTab {
	case tabSessions:
		m.sessionView, cmd = m.sessionView.Update(msg)
	case tabTemplates:
		m.templateView, cmd = m.templateView.Update(msg)
	case tabReminders:
		m.reminderView, cmd = m.reminderView.Update(msg)
	default:
		cmd = nil
	}
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return true, m, tea.Quit
	case "tab":
		m.activeTab = (m.activeTab + 1) % tabCount
		return true, m, nil
	case "shift+tab":
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		return true, m, nil
	case "?":
		m.showHelp = !m.showHelp
		return true, m, nil
	case ":":
		return true, m, m.palette.Open()
	case "n":
		return true, m, m.runCommand(cmdQuickNote)
	case "p":
		if m.dashView.Active().State == "paused" {
			return true, m, m.runCommand(cmdResume)
		}
		return true, m, m.runCommand(cmdPause)
	case "c":
		return true, m, m.runCommand(cmdComplete)
	case "x":
		return true, m, m.runCommand(cmdSkip)
	case "w", "z":
		if m.notice == nil {
			return false, m, nil
		}
		idx := 0
		if msg.String() == "z" {
			idx = 1
		}
		if idx >= len(m.notice.Actions) {
			return true, m, nil
		}
		action := m.notice.Actions[idx].ID
		m.notice = nil
		return true, m, m.noticeAction(action)
	case "esc":
		if m.notice != nil {
			m.notice = nil
			return true, m, nil
		}
	case "enter":
		if m.activeTab == tabTemplates {
			if id, ok := m.templateView.SelectedTemplateID(); ok {
				return true, m, m.newNote(id)
			}
		}
	case " ":
		if m.activeTab == tabReminders {
			if id, enabled, ok := m.reminderView.Selected(); ok {
				return true, m, m.setReminderEnabled(id, !enabled)
			}
		}
	}
	return false, m, nil
}

func (m Model) View() string {
	tabBar := m.renderTabBar()
	noticeBar := m.renderNotice()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar)-lipgloss.Height(noticeBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	parts := []string{tabBar, content}
	if noticeBar != "" {
		parts = append(parts, noticeBar)
	}
	parts = append(parts, statusBar)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabSessions:
		return m.sessionView.View()
	case tabTemplates:
		return m.templateView.View()
	case tabReminders:
		return m.reminderView.View()
	}
	return m.dashView.View()
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "quill · " + m.title + "  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderNotice() string {
	if m.notice == nil {
		return ""
	}
	line := theme.NoticeStyle(string(m.notice.Kind)).Render(m.notice.String())
	keys := []string{"w", "z"}
	for i, a := range m.notice.Actions {
		if i == len(keys) {
			break
		}
		line += theme.Muted.Render(fmt.Sprintf("  [%s] %s", keys[i], a.Label))
	}
	line += theme.Muted.Render("  [esc] dismiss")
	return theme.PaneActive.Width(max(m.width-2, 10)).Render(line)
}

func (m Model) renderStatusBar() string {
	left := m.status
	if s := m.dashView.Active(); s.State == "ongoing" || s.State == "paused" {
		marker := theme.Good.Render("● ")
		if s.State == "paused" {
			marker = theme.Warn.Render("❚❚ ")
		}
		left = marker + fmt.Sprintf("%d %s", s.Count, s.CountUnit) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	id := strings.TrimSpace(input)
	switch id {
	case "":
		return m, nil
	case cmdOpenDashboard:
		m.activeTab = tabDashboard
		m.status = "dashboard"
		return m, m.dashView.Refresh()
	case cmdOnboarding:
		m.status = "run `quill onboard` in a shell to answer the questionnaire"
		return m, nil
	}
	m.status = "running " + id + "…"
	return m, m.runCommand(id)
}

func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabSessions:
		return m.sessionView.Filtering()
	case tabTemplates:
		return m.templateView.Filtering()
	case tabReminders:
		return m.reminderView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: max(m.height-4, 1)}
	m.dashView, _ = m.dashView.Update(sz)
	m.sessionView, _ = m.sessionView.Update(sz)
	m.templateView, _ = m.templateView.Update(sz)
	m.reminderView, _ = m.reminderView.Update(sz)
}

func (m Model) refreshAll() tea.Cmd {
	return tea.Batch(m.dashView.Refresh(), m.sessionView.Refresh(), m.reminderView.Refresh())
}

func (m Model) waitNotice() tea.Cmd {
	if m.notices == nil {
		return nil
	}
	ch := m.notices
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return noticeMsg(n)
	}
}

func (m Model) runCommand(id string) tea.Cmd {
	return m.action(func(ctx context.Context) (string, error) { return m.actions.RunCommand(ctx, id) })
}

func (m Model) noticeAction(id string) tea.Cmd {
	return m.action(func(ctx context.Context) (string, error) { return m.actions.HandleNoticeAction(ctx, id) })
}

func (m Model) newNote(templateID string) tea.Cmd {
	return m.action(func(ctx context.Context) (string, error) { return m.actions.NewNote(ctx, templateID) })
}

func (m Model) setReminderEnabled(id string, enabled bool) tea.Cmd {
	return m.action(func(ctx context.Context) (string, error) {
		if err := m.actions.SetReminderEnabled(ctx, id, enabled); err != nil {
			return "", err
		}
		if enabled {
			return "reminder " + id + " enabled", nil
		}
		return "reminder " + id + " disabled", nil
	})
}

const actionTimeout = 30 * time.Second

func (m Model) action(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		message, err := fn(ctx)
		return actionDoneMsg{message: message, err: err}
	}
}
