package in

import (
	"context"

	"wikitrail/internal/modules/crawl/dto"
	crawlin "wikitrail/internal/modules/crawl/port/in"
)

type CLIHandler struct {
	usecase crawlin.Usecase
}

func NewCLIHandler(usecase crawlin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Build(ctx context.Context, startTopic string, width, depth int, progress func()) (dto.BuildOutput, error) {
	return h.usecase.Build(ctx, dto.BuildInput{StartTopic: startTopic, Width: width, Depth: depth}, crawlin.ProgressFunc(progress))
}

func (h CLIHandler) Budget(width, depth int) dto.BudgetOutput {
	return h.usecase.Budget(width, depth)
}

func (h CLIHandler) Links(ctx context.Context, topic string) ([]string, error) {
	return h.usecase.Links(ctx, topic)
}

func (h CLIHandler) StartingCandidates(ctx context.Context) ([]string, error) {
	return h.usecase.StartingCandidates(ctx)
}

func (h CLIHandler) SuggestStarts(candidates []string, n int) []string {
	return h.usecase.SuggestStarts(candidates, n)
}

func (h CLIHandler) CacheStats(ctx context.Context) (dto.CacheStatsOutput, error) {
	return h.usecase.CacheStats(ctx)
}

func (h CLIHandler) ClearCache(ctx context.Context) error {
	return h.usecase.ClearCache(ctx)
}
