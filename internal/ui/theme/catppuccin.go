package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Blue     = lipgloss.Color("#89b4fa")
	Green    = lipgloss.Color("#a6e3a1")
	Red      = lipgloss.Color("#f38ba8")
	Mauve    = lipgloss.Color("#cba6f7")
	Peach    = lipgloss.Color("#fab387")

	App = lipgloss.NewStyle().
		Foreground(Text).
		Padding(1, 2)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)

	// Grid cells.
	Chosen   = lipgloss.NewStyle().Foreground(Blue).Bold(true)
	Option   = lipgloss.NewStyle().Foreground(Text)
	Selected = lipgloss.NewStyle().Foreground(Base).Background(Lavender).Bold(true)
	Target   = lipgloss.NewStyle().Foreground(Mauve).Bold(true)

	Correct   = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Red).Bold(true)
)
