package game_test

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	gamedto "wikitrail/internal/modules/game/dto"
	gameview "wikitrail/internal/ui/views/game"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestRenderGridAlignsOptionsUnderPath(t *testing.T) {
	t.Parallel()
	grid := [][]gamedto.CellOutput{
		{
			{Text: "Jazz", Kind: gamedto.CellChosen},
			{Text: "Saxophone", Kind: gamedto.CellSelected},
			{},
			{Text: "Count Basie", Kind: gamedto.CellTarget},
		},
		{{}, {Text: "Swing", Kind: gamedto.CellOption}, {}, {}},
	}
	lines := strings.Split(gameview.RenderGrid(grid), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != "Jazz -> Saxophone ->  -> Count Basie" {
		t.Fatalf("unexpected path row: %q", lines[0])
	}
	if lines[1] != "        Swing" {
		t.Fatalf("unexpected option row: %q", lines[1])
	}
	if strings.Index(lines[0], "Saxophone") != strings.Index(lines[1], "Swing") {
		t.Fatalf("options not aligned:\n%s\n%s", lines[0], lines[1])
	}
}

func TestRenderGridPadsWideTitles(t *testing.T) {
	t.Parallel()
	grid := [][]gamedto.CellOutput{
		{{Text: "東京", Kind: gamedto.CellChosen}, {Text: "A", Kind: gamedto.CellSelected}, {Text: "Z", Kind: gamedto.CellTarget}},
		{{}, {Text: "B", Kind: gamedto.CellOption}, {}},
	}
	lines := strings.Split(gameview.RenderGrid(grid), "\n")
	if lines[1] != "        B" {
		t.Fatalf("wide title should occupy 4 cells, got %q", lines[1])
	}
}

func TestRenderFinishedShowsOutcome(t *testing.T) {
	t.Parallel()
	v := gamedto.ViewOutput{
		Mode: "finished",
		Outcome: []gamedto.MarkOutput{
			{Topic: "Jazz", Correct: true},
			{Topic: "Blues", Correct: false},
			{Topic: "Count Basie", Correct: false},
		},
		Target: "Count Basie",
		Hints:  true,
	}
	if got := gameview.Render(v); got != "Jazz    Blues    Count Basie" {
		t.Fatalf("unexpected outcome: %q", got)
	}
	if got := gameview.Summary(v); !strings.Contains(got, "Not quite") {
		t.Fatalf("unexpected summary: %q", got)
	}
	v.Solved = true
	if got := gameview.Summary(v); !strings.Contains(got, "Count Basie") {
		t.Fatalf("unexpected solved summary: %q", got)
	}
}

func TestSummaryEmptyWhileInProgress(t *testing.T) {
	t.Parallel()
	if got := gameview.Summary(gamedto.ViewOutput{Mode: "in_progress"}); got != "" {
		t.Fatalf("expected no summary, got %q", got)
	}
}
