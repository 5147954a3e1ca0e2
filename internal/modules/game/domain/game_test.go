package domain_test

import (
	"testing"

	crawldomain "wikitrail/internal/modules/crawl/domain"
	"wikitrail/internal/modules/game/domain"
)

// A -> {B -> {C, X}, E -> {F, G}}, answer A B C D.
func newTestGame(t *testing.T, hints bool) *domain.Game {
	t.Helper()
	root := crawldomain.NewNode("A")
	b := crawldomain.NewNode("B")
	b.AddChild(crawldomain.NewNode("C"))
	b.AddChild(crawldomain.NewNode("X"))
	e := crawldomain.NewNode("E")
	e.AddChild(crawldomain.NewNode("F"))
	e.AddChild(crawldomain.NewNode("G"))
	root.AddChild(b)
	root.AddChild(e)
	g, err := domain.New(root, crawldomain.AnswerPath{"A", "B", "C", "D"}, 2, 2, hints)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return g
}

func apply(g *domain.Game, dirs ...domain.Direction) domain.View {
	v := g.View()
	for _, d := range dirs {
		v = g.Apply(d)
	}
	return v
}

func TestInitialGrid(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, true)
	v := g.View()
	if v.Mode != domain.ModeInProgress {
		t.Fatalf("expected in progress, got %s", v.Mode)
	}
	if len(v.Grid) != 2 || len(v.Grid[0]) != 4 {
		t.Fatalf("expected 2x4 grid, got %dx%d", len(v.Grid), len(v.Grid[0]))
	}
	row0, row1 := v.Grid[0], v.Grid[1]
	if row0[0] != (domain.Cell{Text: "A", Kind: domain.CellChosen}) {
		t.Fatalf("row0 col0: %+v", row0[0])
	}
	if row0[1] != (domain.Cell{Text: "B", Kind: domain.CellSelected}) {
		t.Fatalf("row0 col1: %+v", row0[1])
	}
	if row1[1] != (domain.Cell{Text: "E", Kind: domain.CellOption}) {
		t.Fatalf("row1 col1: %+v", row1[1])
	}
	if row0[2].Kind != domain.CellEmpty || row1[0].Kind != domain.CellEmpty {
		t.Fatalf("unused cells should be empty: %+v %+v", row0[2], row1[0])
	}
	if row0[3] != (domain.Cell{Text: "D", Kind: domain.CellTarget}) {
		t.Fatalf("target cell: %+v", row0[3])
	}
}

func TestRightThenLeftReturnsToRoot(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, true)
	v := apply(g, domain.Right)
	if len(v.Chosen) != 2 || v.Chosen[1] != "B" || v.Mode != domain.ModeInProgress {
		t.Fatalf("after right: %+v", v)
	}
	v = apply(g, domain.Left)
	if len(v.Chosen) != 1 || v.Chosen[0] != "A" || v.Mode != domain.ModeInProgress {
		t.Fatalf("after left: %+v", v)
	}
	v = apply(g, domain.Left)
	if len(v.Chosen) != 1 {
		t.Fatalf("left at root must keep the start topic: %v", v.Chosen)
	}
}

func TestCursorClamps(t *testing.T) {
	t.Parallel()
	root := crawldomain.NewNode("R")
	for _, topic := range []string{"a", "b", "c"} {
		root.AddChild(crawldomain.NewNode(topic))
	}
	g, err := domain.New(root, crawldomain.AnswerPath{"R", "b", "z"}, 3, 1, true)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	for i := 0; i < 5; i++ {
		if v := g.Apply(domain.Down); v.Cursor > 2 {
			t.Fatalf("cursor exceeded siblings: %d", v.Cursor)
		}
	}
	if g.Cursor() != 2 {
		t.Fatalf("expected cursor 2, got %d", g.Cursor())
	}
	for i := 0; i < 5; i++ {
		if v := g.Apply(domain.Up); v.Cursor < 0 {
			t.Fatalf("cursor below zero: %d", v.Cursor)
		}
	}
	if g.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", g.Cursor())
	}
}

func TestLeftDoesNotRestoreCursor(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, true)
	v := apply(g, domain.Down, domain.Right)
	if v.Chosen[1] != "E" || v.Cursor != 1 {
		t.Fatalf("expected E chosen with cursor kept at 1, got %+v", v)
	}
	v = apply(g, domain.Up, domain.Left)
	if len(v.Chosen) != 1 || v.Cursor != 0 {
		t.Fatalf("cursor should stay where it was moved, got %+v", v)
	}
}

func TestHintsFullMatch(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, true)
	v := apply(g, domain.Right, domain.Right)
	if v.Mode != domain.ModeFinished || !v.Solved {
		t.Fatalf("expected solved finish, got %+v", v)
	}
	want := []string{"A", "B", "C", "D"}
	for i, m := range v.Outcome {
		if m.Topic != want[i] || !m.Correct {
			t.Fatalf("mark %d: %+v", i, m)
		}
	}
}

func TestHintsPartialMatch(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, true)
	v := apply(g, domain.Right, domain.Down, domain.Right)
	if v.Mode != domain.ModeFinished || v.Solved {
		t.Fatalf("expected unsolved finish, got %+v", v)
	}
	want := []domain.Mark{
		{Topic: "A", Correct: true},
		{Topic: "B", Correct: true},
		{Topic: "X", Correct: false},
		{Topic: "D", Correct: false},
	}
	for i := range want {
		if v.Outcome[i] != want[i] {
			t.Fatalf("mark %d: got %+v want %+v", i, v.Outcome[i], want[i])
		}
	}
}

func TestNoHintsAllOrNothing(t *testing.T) {
	t.Parallel()
	exact := newTestGame(t, false)
	v := apply(exact, domain.Right, domain.Right)
	for _, m := range v.Outcome {
		if !m.Correct {
			t.Fatalf("exact match should be all correct: %+v", v.Outcome)
		}
	}
	wrong := newTestGame(t, false)
	v = apply(wrong, domain.Right, domain.Down, domain.Right)
	for _, m := range v.Outcome {
		if m.Correct {
			t.Fatalf("any mismatch should be all incorrect: %+v", v.Outcome)
		}
	}
}

func TestFinishedIgnoresNavigation(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, true)
	apply(g, domain.Right, domain.Right)
	v := apply(g, domain.Left, domain.Up, domain.Right)
	if len(v.Chosen) != 3 || v.Mode != domain.ModeFinished {
		t.Fatalf("finished game must ignore input, got %+v", v)
	}
}

func TestDepthZeroStartsFinished(t *testing.T) {
	t.Parallel()
	root := crawldomain.NewNode("Solo")
	g, err := domain.New(root, crawldomain.AnswerPath{"Solo", "Far"}, 1, 0, true)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	v := g.View()
	if v.Mode != domain.ModeFinished || !v.Solved || len(v.Outcome) != 2 {
		t.Fatalf("depth 0 should be finished and solved: %+v", v)
	}
}

func TestNewRejectsInconsistentAnswer(t *testing.T) {
	t.Parallel()
	root := crawldomain.NewNode("A")
	root.AddChild(crawldomain.NewNode("B"))
	if _, err := domain.New(root, crawldomain.AnswerPath{"A", "Q", "Z"}, 1, 1, true); err == nil {
		t.Fatalf("answer through a missing child should be rejected")
	}
	if _, err := domain.New(root, crawldomain.AnswerPath{"A", "B", "Z"}, 0, 1, true); err == nil {
		t.Fatalf("zero width should be rejected")
	}
}

func TestParseDirection(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"up", "down", "left", "right"} {
		if _, err := domain.ParseDirection(s); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
	}
	if _, err := domain.ParseDirection("sideways"); err == nil {
		t.Fatalf("unknown direction should fail")
	}
}
