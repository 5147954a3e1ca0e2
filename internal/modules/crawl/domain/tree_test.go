package domain_test

import (
	"testing"

	"wikitrail/internal/modules/crawl/domain"
)

func sampleTree() *domain.Node {
	root := domain.NewNode("Go")
	lang := domain.NewNode("Programming language")
	lang.AddChild(domain.NewNode("Compiler"))
	lang.AddChild(domain.NewNode("Syntax"))
	game := domain.NewNode("Go (game)")
	game.AddChild(domain.NewNode("Board game"))
	root.AddChild(lang)
	root.AddChild(game)
	return root
}

func TestNodeKeepsInsertionOrderAndRejectsDuplicates(t *testing.T) {
	t.Parallel()
	root := sampleTree()
	got := root.ChildTopics()
	if len(got) != 2 || got[0] != "Programming language" || got[1] != "Go (game)" {
		t.Fatalf("unexpected child order: %v", got)
	}
	if root.AddChild(domain.NewNode("Go (game)")) {
		t.Fatalf("duplicate sibling must be rejected")
	}
	if root.Count() != 6 {
		t.Fatalf("expected 6 nodes, got %d", root.Count())
	}
	if root.Height() != 2 {
		t.Fatalf("expected height 2, got %d", root.Height())
	}
}

func TestWalk(t *testing.T) {
	t.Parallel()
	root := sampleTree()
	node, ok := root.Walk([]domain.Topic{"Go", "Programming language", "Syntax"})
	if !ok || node.Topic != "Syntax" || !node.IsLeaf() {
		t.Fatalf("walk to Syntax failed: %v %v", node, ok)
	}
	if _, ok := root.Walk([]domain.Topic{"Go", "Syntax"}); ok {
		t.Fatalf("walk through missing child should fail")
	}
	if _, ok := root.Walk([]domain.Topic{"Chess"}); ok {
		t.Fatalf("walk must start at root topic")
	}
}

func TestAnswerPathValidate(t *testing.T) {
	t.Parallel()
	root := sampleTree()
	good := domain.AnswerPath{"Go", "Go (game)", "Board game", "Chess"}
	if err := good.Validate(root, 2); err != nil {
		t.Fatalf("valid path rejected: %v", err)
	}
	if good.Target() != "Chess" {
		t.Fatalf("target: got %q", good.Target())
	}
	short := domain.AnswerPath{"Go", "Go (game)", "Chess"}
	if err := short.Validate(root, 2); err == nil {
		t.Fatalf("short path should fail")
	}
	broken := domain.AnswerPath{"Go", "Go (game)", "Syntax", "Chess"}
	if err := broken.Validate(root, 2); err == nil {
		t.Fatalf("path through a non-child should fail")
	}
}

func TestFilterTopics(t *testing.T) {
	t.Parallel()
	in := []domain.Topic{"Physics", "Wikipedia:About", "Template:Cite", "User talk:Bob", "Help:Contents", "Portal:Science", "", "Chemistry"}
	got := domain.FilterTopics(in, []string{"Wikipedia", "Template", "User", "Help", "Portal"})
	if len(got) != 2 || got[0] != "Physics" || got[1] != "Chemistry" {
		t.Fatalf("unexpected filtered topics: %v", got)
	}
}

func TestNodeBudget(t *testing.T) {
	t.Parallel()
	cases := []struct {
		width, depth, want int
	}{
		{3, 3, 41},
		{2, 0, 2},
		{1, 4, 6},
		{4, 2, 22},
	}
	for _, tc := range cases {
		if got := domain.NodeBudget(tc.width, tc.depth, 800); got != tc.want {
			t.Fatalf("budget(%d,%d): got %d want %d", tc.width, tc.depth, got, tc.want)
		}
	}
	spec := domain.BuildSpec{Width: 3, Depth: 6, MaxNodes: 800}
	if spec.WithinBudget() {
		t.Fatalf("3x6 must exceed the 800 ceiling")
	}
	if !(domain.BuildSpec{Width: 3, Depth: 5, MaxNodes: 800}).WithinBudget() {
		t.Fatalf("3x5 (365 nodes) should fit")
	}
}

func TestBuildSpecValidate(t *testing.T) {
	t.Parallel()
	if err := (domain.BuildSpec{Width: 0, Depth: 1, MaxNodes: 10}).Validate(); err == nil {
		t.Fatalf("zero width should fail")
	}
	if err := (domain.BuildSpec{Width: 1, Depth: -1, MaxNodes: 10}).Validate(); err == nil {
		t.Fatalf("negative depth should fail")
	}
	if err := (domain.BuildSpec{Width: 1, Depth: 0, MaxNodes: 10}).Validate(); err != nil {
		t.Fatalf("depth 0 is valid: %v", err)
	}
}
