package rules

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

const rulesMarkdown = `# How to play

A hidden chain of Wikipedia links leads from **%s** to the target on the far
right. Every column holds the links of the topic before it.

- **↑ / ↓** move between the links on offer
- **→** follows the highlighted link
- **←** steps back one topic
- **n** starts a new game, **q** quits

The chain is %d links deep. Once the path is complete the last topic joins
the target and the game is scored.

%s
`

const (
	hintsOn  = "Hints are **on**: topics are green up to your first wrong turn."
	hintsOff = "Hints are **off**: the path is green only if every topic is right."
)

// Markdown returns the rules text for one game.
func Markdown(start string, depth int, hints bool) string {
	note := hintsOff
	if hints {
		note = hintsOn
	}
	if start == "" {
		start = "the starting topic"
	}
	return fmt.Sprintf(rulesMarkdown, start, depth, note)
}

// Render styles the rules for the terminal, falling back to the raw markdown
// if the renderer cannot be built.
func Render(start string, depth int, hints bool, width int) string {
	md := Markdown(start, depth, hints)
	if width < 20 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
