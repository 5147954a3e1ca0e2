package dto

import crawldto "wikitrail/internal/modules/crawl/dto"

type StartInput struct {
	Tree       crawldto.NodeOutput
	AnswerPath []string
	Width      int
	Depth      int
	Hints      bool
}

const (
	CellEmpty    = "empty"
	CellChosen   = "chosen"
	CellOption   = "option"
	CellSelected = "selected"
	CellTarget   = "target"
)

type CellOutput struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
}

type MarkOutput struct {
	Topic   string `json:"topic"`
	Correct bool   `json:"correct"`
}

type ViewOutput struct {
	GameID  string         `json:"game_id"`
	Mode    string         `json:"mode"`
	Grid    [][]CellOutput `json:"grid,omitempty"`
	Outcome []MarkOutput   `json:"outcome,omitempty"`
	Chosen  []string       `json:"chosen"`
	Cursor  int            `json:"cursor"`
	Target  string         `json:"target"`
	Solved  bool           `json:"solved"`
	Hints   bool           `json:"hints"`
}

func (v ViewOutput) Finished() bool {
	return v.Mode == "finished"
}
