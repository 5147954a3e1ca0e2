package domain

type CellKind int

const (
	CellEmpty CellKind = iota
	CellChosen
	CellOption
	CellSelected
	CellTarget
)

type Cell struct {
	Text string
	Kind CellKind
}

// Mark is one topic of a finished path with its verdict.
type Mark struct {
	Topic   Topic
	Correct bool
}

type View struct {
	Mode    Mode
	Grid    [][]Cell
	Outcome []Mark
	Chosen  []Topic
	Cursor  int
	Target  Topic
	Solved  bool
}

func (g *Game) View() View {
	v := View{
		Mode:   g.Mode(),
		Chosen: g.Chosen(),
		Cursor: g.cursor,
		Target: g.Target(),
	}
	if v.Mode == ModeFinished {
		v.Outcome = g.outcome()
		v.Solved = g.Solved()
		return v
	}
	v.Grid = g.grid()
	return v
}

// grid lays out width rows by depth+2 columns: chosen topics along row 0, the
// current options in column len(chosen), the target in the last column of row 0.
func (g *Game) grid() [][]Cell {
	siblings := g.Siblings()
	rows := max(g.width, len(siblings))
	cols := g.depth + 2
	grid := make([][]Cell, rows)
	for r := range grid {
		grid[r] = make([]Cell, cols)
	}
	for col, topic := range g.chosen {
		grid[0][col] = Cell{Text: topic, Kind: CellChosen}
	}
	col := len(g.chosen)
	for row, topic := range siblings {
		kind := CellOption
		if row == g.cursor {
			kind = CellSelected
		}
		grid[row][col] = Cell{Text: topic, Kind: kind}
	}
	grid[0][cols-1] = Cell{Text: g.Target(), Kind: CellTarget}
	return grid
}

func (g *Game) outcome() []Mark {
	final := g.finalPath()
	marks := make([]Mark, len(final))
	if g.hints {
		mistake := false
		for i, topic := range final {
			if !mistake && i < len(g.answer) && topic == g.answer[i] {
				marks[i] = Mark{Topic: topic, Correct: true}
				continue
			}
			mistake = true
			marks[i] = Mark{Topic: topic}
		}
		return marks
	}
	solved := g.Solved()
	for i, topic := range final {
		marks[i] = Mark{Topic: topic, Correct: solved}
	}
	return marks
}
