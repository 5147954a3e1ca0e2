package usecase

import (
	"context"
	"fmt"

	"wikitrail/internal/modules/crawl/domain"
	"wikitrail/internal/modules/crawl/dto"
	crawlin "wikitrail/internal/modules/crawl/port/in"
	crawlout "wikitrail/internal/modules/crawl/port/out"
	"wikitrail/internal/modules/crawl/service"
	apperrors "wikitrail/internal/platform/errors"
)

type Interactor struct {
	svc   *service.TreeService
	cache crawlout.LinkCache
}

// NewInteractor wires the tree service; cache may be nil when caching is off.
func NewInteractor(svc *service.TreeService, cache crawlout.LinkCache) crawlin.Usecase {
	return &Interactor{svc: svc, cache: cache}
}

func (i *Interactor) Build(ctx context.Context, input dto.BuildInput, progress crawlout.ProgressReporter) (dto.BuildOutput, error) {
	res, err := i.svc.Build(ctx, input.StartTopic, input.Width, input.Depth, progress)
	if err != nil {
		return dto.BuildOutput{}, err
	}
	return dto.BuildOutput{
		Tree:       mapNode(res.Root),
		AnswerPath: append([]string(nil), res.Path...),
		Width:      input.Width,
		Depth:      input.Depth,
		Nodes:      res.Root.Count(),
		Visited:    res.Visited,
	}, nil
}

func (i *Interactor) Budget(width, depth int) dto.BudgetOutput {
	spec := i.svc.Spec(width, depth)
	return dto.BudgetOutput{
		Width:    width,
		Depth:    depth,
		Nodes:    spec.Budget(),
		MaxNodes: spec.MaxNodes,
		Allowed:  spec.Validate() == nil && spec.WithinBudget(),
	}
}

func (i *Interactor) Links(ctx context.Context, topic string) ([]string, error) {
	return i.svc.Links(ctx, topic)
}

func (i *Interactor) StartingCandidates(ctx context.Context) ([]string, error) {
	return i.svc.StartingCandidates(ctx)
}

func (i *Interactor) SuggestStarts(candidates []string, n int) []string {
	return i.svc.Suggest(candidates, n)
}

func (i *Interactor) CacheStats(ctx context.Context) (dto.CacheStatsOutput, error) {
	if i.cache == nil {
		return dto.CacheStatsOutput{}, nil
	}
	topics, links, err := i.cache.Stats(ctx)
	if err != nil {
		return dto.CacheStatsOutput{}, err
	}
	return dto.CacheStatsOutput{Enabled: true, Topics: topics, Links: links}, nil
}

func (i *Interactor) ClearCache(ctx context.Context) error {
	if i.cache == nil {
		return fmt.Errorf("%w: link cache is disabled", apperrors.ErrNotFound)
	}
	return i.cache.Reset(ctx)
}

func mapNode(node *domain.Node) dto.NodeOutput {
	out := dto.NodeOutput{Topic: node.Topic}
	for _, child := range node.Children() {
		out.Children = append(out.Children, mapNode(child))
	}
	return out
}
