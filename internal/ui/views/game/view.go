package game

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	gamedto "wikitrail/internal/modules/game/dto"
	"wikitrail/internal/ui/theme"
)

const (
	pathSep   = " -> "
	columnGap = "    "
)

// Render draws the board for an in-progress game and the coloured final path
// for a finished one.
func Render(v gamedto.ViewOutput) string {
	if v.Finished() {
		return RenderOutcome(v.Outcome)
	}
	return RenderGrid(v.Grid)
}

// RenderGrid pads every column to its widest title so options line up under
// the chosen path. Row 0 is joined with arrows, the rest with blank gaps of
// the same width.
func RenderGrid(grid [][]gamedto.CellOutput) string {
	if len(grid) == 0 {
		return ""
	}
	widths := columnWidths(grid)
	lines := make([]string, len(grid))
	for r, row := range grid {
		cells := make([]string, len(row))
		for c, cell := range row {
			padded := runewidth.FillRight(cell.Text, widths[c])
			cells[c] = cellStyle(cell.Kind).Render(padded)
		}
		sep := columnGap
		if r == 0 {
			sep = theme.Muted.Render(pathSep)
		}
		lines[r] = strings.TrimRight(strings.Join(cells, sep), " ")
	}
	return strings.Join(lines, "\n")
}

func RenderOutcome(marks []gamedto.MarkOutput) string {
	parts := make([]string, len(marks))
	for i, mark := range marks {
		style := theme.Incorrect
		if mark.Correct {
			style = theme.Correct
		}
		parts[i] = style.Render(mark.Topic)
	}
	return strings.Join(parts, columnGap)
}

// Summary is the one-line verdict shown under a finished game.
func Summary(v gamedto.ViewOutput) string {
	if !v.Finished() {
		return ""
	}
	if v.Solved {
		return theme.Correct.Render("You found the path to " + v.Target + ".")
	}
	if v.Hints {
		return theme.Incorrect.Render("Not quite. Green topics were on the path.")
	}
	return theme.Incorrect.Render("Not quite.")
}

func columnWidths(grid [][]gamedto.CellOutput) []int {
	widths := make([]int, len(grid[0]))
	for _, row := range grid {
		for c, cell := range row {
			if c < len(widths) {
				widths[c] = max(widths[c], runewidth.StringWidth(cell.Text))
			}
		}
	}
	return widths
}

func cellStyle(kind string) lipgloss.Style {
	switch kind {
	case gamedto.CellChosen:
		return theme.Chosen
	case gamedto.CellOption:
		return theme.Option
	case gamedto.CellSelected:
		return theme.Selected
	case gamedto.CellTarget:
		return theme.Target
	default:
		return lipgloss.NewStyle()
	}
}
