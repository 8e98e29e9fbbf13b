package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	journaldto "quill/internal/modules/journal/dto"
	reminderdto "quill/internal/modules/reminder/dto"
	trackerdto "quill/internal/modules/tracker/dto"
	"quill/internal/ui/theme"
)

const refreshEvery = 2 * time.Second

type Port interface {
	Status(ctx context.Context) (trackerdto.StatusOutput, error)
	Stats(ctx context.Context) (journaldto.StatsOutput, error)
	Upcoming(ctx context.Context) ([]reminderdto.ReminderOutput, error)
}

type LoadedMsg struct {
	Status   trackerdto.StatusOutput
	Stats    journaldto.StatsOutput
	Upcoming []reminderdto.ReminderOutput
	Err      error
}

type tickMsg time.Time

type Model struct {
	port     Port
	now      func() time.Time
	status   trackerdto.StatusOutput
	stats    journaldto.StatsOutput
	upcoming []reminderdto.ReminderOutput
	err      error
	loaded   bool
	width    int
	height   int
}

func New(port Port, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	return Model{port: port, now: now}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), tick())
}

// Refresh reloads the session, stats and reminders in one round trip.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		out := LoadedMsg{}
		if out.Status, out.Err = m.port.Status(ctx); out.Err != nil {
			return out
		}
		if out.Stats, out.Err = m.port.Stats(ctx); out.Err != nil {
			return out
		}
		out.Upcoming, out.Err = m.port.Upcoming(ctx)
		return out
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.loaded = true
			m.status = msg.Status
			m.stats = msg.Stats
			m.upcoming = msg.Upcoming
		}
	case tickMsg:
		return m, tea.Batch(m.Refresh(), tick())
	}
	return m, nil
}

// Active reports the current session state, "idle" when none.
func (m Model) Active() trackerdto.StatusOutput { return m.status }

func (m Model) View() string {
	if !m.loaded {
		if m.err != nil {
			return theme.Bad.Render("dashboard: " + m.err.Error())
		}
		return theme.Muted.Render("Loading…")
	}
	half := max(m.width/2-2, 24)
	left := lipgloss.JoinVertical(lipgloss.Left,
		theme.Pane.Width(half).Render(RenderSession(m.status, m.now(), half-4)),
		theme.Pane.Width(half).Render(RenderReminders(m.upcoming, m.now())),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		theme.Pane.Width(half).Render(RenderStats(m.stats)),
		theme.Pane.Width(half).Render(RenderRecent(m.stats.Recent, 5)),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	if m.err != nil {
		body += "\n" + theme.Bad.Render(m.err.Error())
	}
	return body
}

func RenderSession(s trackerdto.StatusOutput, now time.Time, width int) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Session") + "\n\n")
	if s.State == "" || s.State == "idle" {
		sb.WriteString(theme.Muted.Render("No active session. Press n for a quick note or : for commands."))
		return sb.String()
	}
	state := theme.Good.Render("● writing")
	if s.State == "paused" {
		state = theme.Warn.Render("❚❚ paused")
	}
	sb.WriteString(state + theme.Muted.Render(fmt.Sprintf("  started %s ago", Elapsed(now.Sub(s.StartedAt)))) + "\n")
	if s.TargetValue > 0 {
		sb.WriteString(fmt.Sprintf("%d %s of %d %s\n", s.Count, s.CountUnit, s.TargetValue, s.TargetUnit))
		sb.WriteString(ProgressBar(s.Percent, max(width-8, 10)) + fmt.Sprintf(" %3.0f%%\n", s.Percent))
	} else {
		sb.WriteString(fmt.Sprintf("%d %s, no target\n", s.Count, s.CountUnit))
	}
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d active minutes", s.ActiveMinutes)) + "\n")
	for _, f := range s.Files {
		sb.WriteString(theme.Muted.Render("  "+f) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func RenderStats(s journaldto.StatsOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Progress") + "\n\n")
	sb.WriteString(fmt.Sprintf("%s %d %s\n", theme.Muted.Render("today:"), s.Today, s.Unit))
	sb.WriteString(fmt.Sprintf("%s %d %s\n", theme.Muted.Render("week: "), s.Week, s.Unit))
	sb.WriteString(fmt.Sprintf("%s %d %s\n", theme.Muted.Render("month:"), s.Month, s.Unit))
	sb.WriteString(fmt.Sprintf("%s %.0f%% of targets met\n\n", theme.Muted.Render("rate: "), s.CompletionRate*100))

	streak := s.Streak
	label := "day"
	if streak.Mode == "weekly" {
		label = "week"
	}
	sb.WriteString(theme.Hot.Render(fmt.Sprintf("🔥 %d %s streak", streak.Current, plural(label, streak.Current))))
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("  best %d", streak.Longest)) + "\n")
	sb.WriteString(WeekStrip(streak.Week))
	if streak.Mode == "weekly" && streak.WeeklyTarget > 0 {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("  %d/%d days", streak.DaysThisWeek, streak.WeeklyTarget)))
	}
	return sb.String()
}

func RenderReminders(upcoming []reminderdto.ReminderOutput, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Next reminders") + "\n\n")
	shown := 0
	for _, r := range upcoming {
		if r.NextFire == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s  %s\n", r.NextFire.Format("Mon 15:04"), r.Label))
		shown++
		if shown == 3 {
			break
		}
	}
	if shown == 0 {
		sb.WriteString(theme.Muted.Render("none scheduled"))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func RenderRecent(sessions []journaldto.SessionOutput, limit int) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Recent") + "\n\n")
	if len(sessions) == 0 {
		sb.WriteString(theme.Muted.Render("no sessions yet"))
		return sb.String()
	}
	for i, s := range sessions {
		if i == limit {
			break
		}
		mark := theme.Muted.Render("·")
		if s.MetTarget {
			mark = theme.Good.Render("✓")
		}
		sb.WriteString(fmt.Sprintf("%s %s  %d %s  %s\n", mark, s.Date, s.Count, s.CountUnit, theme.Muted.Render(s.Status)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ProgressBar draws percent (0-100, clamped) as a bar of width cells.
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	percent = min(max(percent, 0), 100)
	filled := int(percent / 100 * float64(width))
	return theme.BarFilled.Render(strings.Repeat("█", filled)) + theme.BarEmpty.Render(strings.Repeat("░", width-filled))
}

// WeekStrip renders Sunday through Saturday with written days highlighted.
func WeekStrip(week [7]bool) string {
	days := [7]string{"S", "M", "T", "W", "T", "F", "S"}
	parts := make([]string, len(days))
	for i, d := range days {
		if week[i] {
			parts[i] = theme.Good.Render(d)
		} else {
			parts[i] = theme.BarEmpty.Render(d)
		}
	}
	return strings.Join(parts, " ")
}

// Elapsed formats d as "1h05m" or "12m".
func Elapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
