package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"wikitrail/internal/ui/theme"
)

// PickerSubmitMsg is emitted when the user confirms a starting topic.
type PickerSubmitMsg struct{ Topic string }

// PickerCancelMsg is emitted when the user presses esc.
type PickerCancelMsg struct{}

const pickerRows = 5

var (
	pickerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle     = lipgloss.NewStyle().Foreground(theme.Subtext0)
	selectedStyle = lipgloss.NewStyle().Foreground(theme.Lavender).Bold(true)
)

// Picker chooses the starting topic. With an empty query it offers a fixed
// set of suggestions; typing fuzzy-filters every candidate.
type Picker struct {
	input       textinput.Model
	candidates  []string
	suggestions []string
	matches     []string
	selected    int
	visible     bool
	width       int
}

func NewPicker() Picker {
	ti := textinput.New()
	ti.Placeholder = "type to search, or pick a suggestion…"
	ti.CharLimit = 256
	return Picker{input: ti}
}

func (p Picker) Visible() bool { return p.visible }

// Open shows the picker over the given candidates and returns the focus command.
func (p *Picker) Open(candidates, suggestions []string) tea.Cmd {
	p.visible = true
	p.candidates = candidates
	p.suggestions = suggestions
	p.selected = 0
	p.input.SetValue("")
	p.refresh()
	return p.input.Focus()
}

func (p *Picker) Close() {
	p.visible = false
	p.input.Blur()
}

func (p *Picker) SetWidth(w int) { p.width = w }

// Matches returns the rows currently on offer.
func (p Picker) Matches() []string { return p.matches }

func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.Close()
			return p, func() tea.Msg { return PickerCancelMsg{} }
		case "up", "ctrl+p":
			p.selected = max(0, p.selected-1)
			return p, nil
		case "down", "ctrl+n":
			p.selected = max(0, min(len(p.matches)-1, p.selected+1))
			return p, nil
		case "enter":
			topic := p.choice()
			if topic == "" {
				return p, nil
			}
			p.Close()
			return p, func() tea.Msg { return PickerSubmitMsg{Topic: topic} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.refresh()
	return p, cmd
}

// choice prefers the highlighted match and falls back to the typed title.
func (p Picker) choice() string {
	if p.selected < len(p.matches) {
		return p.matches[p.selected]
	}
	return strings.TrimSpace(p.input.Value())
}

func (p *Picker) refresh() {
	query := strings.TrimSpace(p.input.Value())
	if query == "" {
		p.matches = p.suggestions
	} else {
		found := fuzzy.Find(query, p.candidates)
		p.matches = nil
		for i := 0; i < len(found) && i < pickerRows; i++ {
			p.matches = append(p.matches, found[i].Str)
		}
	}
	p.selected = max(0, min(len(p.matches)-1, p.selected))
}

func (p Picker) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Choose a starting topic") + "\n")
	sb.WriteString("> " + p.input.View() + "\n")
	if len(p.matches) > 0 {
		sb.WriteString("\n")
		for i, m := range p.matches {
			if i == p.selected {
				sb.WriteString(selectedStyle.Render("› "+m) + "\n")
				continue
			}
			sb.WriteString(hintStyle.Render("  "+m) + "\n")
		}
	} else if strings.TrimSpace(p.input.Value()) != "" {
		sb.WriteString("\n" + hintStyle.Render("  no match, enter starts from the typed title") + "\n")
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return pickerStyle.Width(w - 2).Render(sb.String())
}
