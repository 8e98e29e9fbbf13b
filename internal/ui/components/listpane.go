package components

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quill/internal/ui/theme"
)

// Item is one row of a ListPane. Detail is rendered in the preview pane when
// the row is selected.
type Item struct {
	ID     string
	Label  string
	Desc   string
	Detail string
}

func (i Item) Title() string       { return i.Label }
func (i Item) Description() string { return i.Desc }
func (i Item) FilterValue() string { return i.Label }

// ListPane is a filterable list on the left with a preview of the selected
// item on the right.
type ListPane struct {
	list    list.Model
	preview viewport.Model
	empty   string
	width   int
	height  int
}

func NewListPane(title, empty string) ListPane {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = title
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)

	pane := ListPane{list: l, preview: vp, empty: empty}
	pane.preview.SetContent(theme.Muted.Render(empty))
	return pane
}

// SetItems replaces the rows and keeps the selection index when possible.
func (p *ListPane) SetItems(items []Item) tea.Cmd {
	rows := make([]list.Item, len(items))
	for i, item := range items {
		rows[i] = item
	}
	cmd := p.list.SetItems(rows)
	p.refreshPreview()
	return cmd
}

func (p *ListPane) SetTitle(title string) { p.list.Title = title }

func (p *ListPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	listW := width * 4 / 10
	p.list.SetSize(listW, height)
	p.preview.Width = width - listW - 4
	p.preview.Height = height - 4
}

func (p ListPane) Update(msg tea.Msg) (ListPane, tea.Cmd) {
	var cmds []tea.Cmd
	prev := p.list.Index()
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	cmds = append(cmds, cmd)
	if p.list.Index() != prev {
		p.refreshPreview()
	}
	p.preview, cmd = p.preview.Update(msg)
	cmds = append(cmds, cmd)
	return p, tea.Batch(cmds...)
}

func (p ListPane) View() string {
	listW := p.width * 4 / 10
	detailW := p.width - listW
	listPane := lipgloss.NewStyle().Width(listW).Height(p.height).Render(p.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(max(detailW-2, 1)).
		Height(max(p.height-2, 1)).
		Render(p.preview.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (p ListPane) Selected() (Item, bool) {
	item, ok := p.list.SelectedItem().(Item)
	return item, ok
}

// Filtering reports whether the search filter is open, in which case global
// keys must yield to typing.
func (p ListPane) Filtering() bool {
	return p.list.FilterState() == list.Filtering
}

func (p *ListPane) refreshPreview() {
	if item, ok := p.Selected(); ok {
		p.preview.SetContent(item.Detail)
		return
	}
	p.preview.SetContent(theme.Muted.Render(p.empty))
}
