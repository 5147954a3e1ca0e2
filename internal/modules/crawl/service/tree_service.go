package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"wikitrail/internal/modules/crawl/domain"
	crawlout "wikitrail/internal/modules/crawl/port/out"
	apperrors "wikitrail/internal/platform/errors"
	"wikitrail/internal/platform/logging"
	"wikitrail/internal/platform/random"
)

// MainPage is the page whose links seed the starting-topic choice.
const MainPage domain.Topic = "Main Page"

type TreeService struct {
	source   crawlout.LinkSource
	rng      random.Source
	logger   *log.Logger
	maxNodes int
}

func NewTreeService(source crawlout.LinkSource, rng random.Source, logger *log.Logger, maxNodes int) *TreeService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &TreeService{source: source, rng: rng, logger: logger, maxNodes: maxNodes}
}

type BuildResult struct {
	Root    *domain.Node
	Path    domain.AnswerPath
	Visited int
}

func (s *TreeService) Spec(width, depth int) domain.BuildSpec {
	return domain.BuildSpec{Width: width, Depth: depth, MaxNodes: s.maxNodes}
}

// Build grows a random tree below start and the hidden answer path through it.
// The node budget is checked before the first fetch.
func (s *TreeService) Build(ctx context.Context, start domain.Topic, width, depth int, progress crawlout.ProgressReporter) (BuildResult, error) {
	start = strings.TrimSpace(start)
	if start == "" {
		return BuildResult{}, fmt.Errorf("%w: start topic is required", apperrors.ErrInvalidInput)
	}
	spec := s.Spec(width, depth)
	if err := spec.Validate(); err != nil {
		return BuildResult{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if !spec.WithinBudget() {
		return BuildResult{}, fmt.Errorf("%w: width %d depth %d needs more than %d nodes", apperrors.ErrNodeBudget, width, depth, s.maxNodes)
	}

	g := &grower{svc: s, width: width, progress: progress}
	root, extension, err := g.grow(ctx, start, depth, true)
	if err != nil {
		return BuildResult{}, err
	}
	path := append(domain.AnswerPath{start}, extension...)
	path, err = s.extendFinalHop(ctx, path, width, g.visit)
	if err != nil {
		return BuildResult{}, err
	}
	if err := path.Validate(root, depth); err != nil {
		return BuildResult{}, fmt.Errorf("build produced inconsistent answer path: %w", err)
	}
	s.logger.Debug("tree built", "start", start, "nodes", root.Count(), "visited", g.visited)
	return BuildResult{Root: root, Path: path, Visited: g.visited}, nil
}

// ExtendFinalHop appends one random link of the path's last topic. The hop is
// not added to any tree.
func (s *TreeService) ExtendFinalHop(ctx context.Context, path domain.AnswerPath, width int, progress crawlout.ProgressReporter) (domain.AnswerPath, error) {
	visit := func() {}
	if progress != nil {
		visit = progress.Visit
	}
	return s.extendFinalHop(ctx, path, width, visit)
}

func (s *TreeService) extendFinalHop(ctx context.Context, path domain.AnswerPath, width int, visit func()) (domain.AnswerPath, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty answer path", apperrors.ErrInvalidInput)
	}
	visit()
	last := path[len(path)-1]
	candidates, err := s.candidates(ctx, last)
	if err != nil {
		return nil, err
	}
	final, ok := Pick(s.rng, SelectN(s.rng, candidates, width))
	if !ok {
		return nil, fmt.Errorf("%w: final hop from %q", apperrors.ErrDegenerateBranch, last)
	}
	out := make(domain.AnswerPath, 0, len(path)+1)
	out = append(out, path...)
	return append(out, final), nil
}

// StartingCandidates lists the article links of the main page.
func (s *TreeService) StartingCandidates(ctx context.Context) ([]domain.Topic, error) {
	links, err := s.source.Links(ctx, MainPage)
	if err != nil {
		return nil, fmt.Errorf("load starting topics: %w", err)
	}
	if len(links) == 0 {
		return nil, fmt.Errorf("load starting topics: %w", apperrors.ErrNotFound)
	}
	return links, nil
}

func (s *TreeService) Suggest(candidates []domain.Topic, n int) []domain.Topic {
	return SelectN(s.rng, candidates, n)
}

func (s *TreeService) Links(ctx context.Context, topic domain.Topic) ([]domain.Topic, error) {
	return s.source.Links(ctx, topic)
}

// candidates recovers source failures as "no links"; only context cancellation aborts.
func (s *TreeService) candidates(ctx context.Context, topic domain.Topic) ([]domain.Topic, error) {
	links, err := s.source.Links(ctx, topic)
	if err == nil {
		return links, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if !errors.Is(err, apperrors.ErrSourceUnavailable) {
		err = fmt.Errorf("%w: %v", apperrors.ErrSourceUnavailable, err)
	}
	s.logger.Warn("fetch links failed, treating as leaf", "topic", topic, "err", err)
	return nil, nil
}

type grower struct {
	svc      *TreeService
	width    int
	progress crawlout.ProgressReporter
	visited  int
}

func (g *grower) visit() {
	g.visited++
	if g.progress != nil {
		g.progress.Visit()
	}
}

// grow returns the subtree for topic and, when onPath, the answer hops below it.
func (g *grower) grow(ctx context.Context, topic domain.Topic, depth int, onPath bool) (*domain.Node, []domain.Topic, error) {
	g.visit()
	node := domain.NewNode(topic)
	if depth < 1 {
		return node, nil, nil
	}

	candidates, err := g.svc.candidates(ctx, topic)
	if err != nil {
		return nil, nil, err
	}
	selected := SelectN(g.svc.rng, candidates, g.width)
	next, ok := Pick(g.svc.rng, selected)
	if !ok {
		if onPath {
			return nil, nil, fmt.Errorf("%w: %q has no links with %d hops left", apperrors.ErrDegenerateBranch, topic, depth)
		}
		return node, nil, nil
	}

	var extension []domain.Topic
	for _, childTopic := range selected {
		childOnPath := onPath && childTopic == next
		child, below, err := g.grow(ctx, childTopic, depth-1, childOnPath)
		if err != nil {
			return nil, nil, err
		}
		node.AddChild(child)
		if childOnPath {
			extension = append([]domain.Topic{next}, below...)
		}
	}
	return node, extension, nil
}
