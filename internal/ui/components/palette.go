package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quill/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

// Hint is one palette entry: an id to type and a title to show beside it.
type Hint struct {
	ID    string
	Title string
}

const maxHints = 6

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle     = lipgloss.NewStyle().Foreground(theme.Subtext0)
	hintHighlight = lipgloss.NewStyle().Foreground(theme.Lavender).Bold(true)
)

// Palette is a command-palette overlay backed by bubbles/textinput. Tab
// completes the first matching hint.
type Palette struct {
	input   textinput.Model
	hints   []Hint
	visible bool
	width   int
}

func NewPalette(hints []Hint) Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 256
	return Palette{input: ti, hints: hints}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

// Matching returns hints whose id or title contains the typed text.
func (p Palette) Matching() []Hint {
	query := strings.ToLower(strings.TrimSpace(p.input.Value()))
	var out []Hint
	for _, h := range p.hints {
		if query == "" || strings.Contains(h.ID, query) || strings.Contains(strings.ToLower(h.Title), query) {
			out = append(out, h)
			if len(out) == maxHints {
				break
			}
		}
	}
	return out
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "tab":
			if matching := p.Matching(); len(matching) > 0 {
				p.input.SetValue(matching[0].ID)
				p.input.CursorEnd()
			}
			return p, nil
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			if matching := p.Matching(); len(matching) == 1 {
				val = matching[0].ID
			}
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	matching := p.Matching()
	if len(matching) > 0 {
		sb.WriteString("\n")
		for i, h := range matching {
			id := hintStyle.Render("  " + h.ID)
			if i == 0 {
				id = hintHighlight.Render("› " + h.ID)
			}
			sb.WriteString(id + hintStyle.Render("  "+h.Title) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
