package usecase

import (
	"fmt"

	"github.com/charmbracelet/log"

	crawldomain "wikitrail/internal/modules/crawl/domain"
	crawldto "wikitrail/internal/modules/crawl/dto"
	"wikitrail/internal/modules/game/domain"
	"wikitrail/internal/modules/game/dto"
	gamein "wikitrail/internal/modules/game/port/in"
	apperrors "wikitrail/internal/platform/errors"
	"wikitrail/internal/platform/id"
	"wikitrail/internal/platform/logging"
)

// Interactor is not safe for concurrent use; the UI calls it from its update loop.
type Interactor struct {
	ids    id.Generator
	logger *log.Logger
	game   *domain.Game
	gameID string
}

func NewInteractor(ids id.Generator, logger *log.Logger) gamein.Usecase {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Interactor{ids: ids, logger: logger}
}

func (i *Interactor) Start(input dto.StartInput) (dto.ViewOutput, error) {
	root := toNode(input.Tree)
	game, err := domain.New(root, crawldomain.AnswerPath(input.AnswerPath), input.Width, input.Depth, input.Hints)
	if err != nil {
		return dto.ViewOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	i.game = game
	i.gameID = i.ids.New()
	i.logger.Info("game started", "game", i.gameID, "start", root.Topic, "width", input.Width, "depth", input.Depth, "hints", input.Hints)
	return i.output(game.View()), nil
}

func (i *Interactor) Apply(direction string) (dto.ViewOutput, error) {
	if i.game == nil {
		return dto.ViewOutput{}, apperrors.ErrNoActiveGame
	}
	d, err := domain.ParseDirection(direction)
	if err != nil {
		return dto.ViewOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	before := i.game.Mode()
	view := i.game.Apply(d)
	if before != domain.ModeFinished && view.Mode == domain.ModeFinished {
		i.logger.Info("game finished", "game", i.gameID, "solved", view.Solved, "path", view.Chosen)
	}
	return i.output(view), nil
}

func (i *Interactor) Current() (dto.ViewOutput, error) {
	if i.game == nil {
		return dto.ViewOutput{}, apperrors.ErrNoActiveGame
	}
	return i.output(i.game.View()), nil
}

func (i *Interactor) output(v domain.View) dto.ViewOutput {
	out := dto.ViewOutput{
		GameID: i.gameID,
		Mode:   string(v.Mode),
		Chosen: v.Chosen,
		Cursor: v.Cursor,
		Target: v.Target,
		Solved: v.Solved,
		Hints:  i.game.Hints(),
	}
	for _, row := range v.Grid {
		cells := make([]dto.CellOutput, 0, len(row))
		for _, cell := range row {
			cells = append(cells, dto.CellOutput{Text: cell.Text, Kind: cellKind(cell.Kind)})
		}
		out.Grid = append(out.Grid, cells)
	}
	for _, mark := range v.Outcome {
		out.Outcome = append(out.Outcome, dto.MarkOutput{Topic: mark.Topic, Correct: mark.Correct})
	}
	return out
}

func cellKind(kind domain.CellKind) string {
	switch kind {
	case domain.CellChosen:
		return dto.CellChosen
	case domain.CellOption:
		return dto.CellOption
	case domain.CellSelected:
		return dto.CellSelected
	case domain.CellTarget:
		return dto.CellTarget
	default:
		return dto.CellEmpty
	}
}

func toNode(in crawldto.NodeOutput) *crawldomain.Node {
	node := crawldomain.NewNode(in.Topic)
	for _, child := range in.Children {
		node.AddChild(toNode(child))
	}
	return node
}
