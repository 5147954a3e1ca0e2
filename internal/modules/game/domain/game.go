package domain

import (
	"fmt"

	crawldomain "wikitrail/internal/modules/crawl/domain"
)

type Topic = crawldomain.Topic

type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Up, Down, Left, Right:
		return d, nil
	default:
		return "", fmt.Errorf("unknown direction %q", s)
	}
}

type Mode string

const (
	ModeInProgress Mode = "in_progress"
	ModeFinished   Mode = "finished"
)

// Game is the navigation state over one generated tree. The tree and answer
// are fixed at construction; only the chosen path and cursor move.
type Game struct {
	root   *crawldomain.Node
	answer crawldomain.AnswerPath
	width  int
	depth  int
	hints  bool
	chosen []Topic
	cursor int
}

func New(root *crawldomain.Node, answer crawldomain.AnswerPath, width, depth int, hints bool) (*Game, error) {
	if width < 1 {
		return nil, fmt.Errorf("width must be at least 1, got %d", width)
	}
	if err := answer.Validate(root, depth); err != nil {
		return nil, fmt.Errorf("answer path: %w", err)
	}
	return &Game{
		root:   root,
		answer: append(crawldomain.AnswerPath(nil), answer...),
		width:  width,
		depth:  depth,
		hints:  hints,
		chosen: []Topic{root.Topic},
	}, nil
}

func (g *Game) Mode() Mode {
	if len(g.chosen) >= len(g.answer)-1 {
		return ModeFinished
	}
	return ModeInProgress
}

func (g *Game) Chosen() []Topic {
	return append([]Topic(nil), g.chosen...)
}

func (g *Game) Cursor() int { return g.cursor }

func (g *Game) Target() Topic { return g.answer.Target() }

func (g *Game) Hints() bool { return g.hints }

// Siblings lists the options below the last chosen topic.
func (g *Game) Siblings() []Topic {
	node, ok := g.root.Walk(g.chosen)
	if !ok {
		return nil
	}
	return node.ChildTopics()
}

// Solved reports whether the finished path matches the answer exactly.
func (g *Game) Solved() bool {
	if g.Mode() != ModeFinished {
		return false
	}
	for i, topic := range g.finalPath() {
		if topic != g.answer[i] {
			return false
		}
	}
	return true
}

// Apply performs one transition and returns the view to render. Finished
// games ignore navigation.
func (g *Game) Apply(d Direction) View {
	if g.Mode() == ModeFinished {
		return g.View()
	}
	siblings := g.Siblings()
	switch d {
	case Up:
		g.cursor = max(0, g.cursor-1)
	case Down:
		g.cursor = max(0, min(len(siblings)-1, g.cursor+1))
	case Left:
		if len(g.chosen) > 1 {
			g.chosen = g.chosen[:len(g.chosen)-1]
		}
	case Right:
		if len(siblings) > 0 {
			g.chosen = append(g.chosen, siblings[g.cursor])
		}
	}
	g.clampCursor()
	return g.View()
}

func (g *Game) clampCursor() {
	n := len(g.Siblings())
	if g.cursor > n-1 {
		g.cursor = n - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
}

func (g *Game) finalPath() []Topic {
	out := make([]Topic, 0, len(g.chosen)+1)
	out = append(out, g.chosen...)
	return append(out, g.answer.Target())
}
