package in

import (
	"context"

	"wikitrail/internal/modules/crawl/dto"
	crawlout "wikitrail/internal/modules/crawl/port/out"
)

// Progress reporting types re-exported for inbound adapters.
type (
	ProgressReporter = crawlout.ProgressReporter
	ProgressFunc     = crawlout.ProgressFunc
)

type Usecase interface {
	Build(ctx context.Context, input dto.BuildInput, progress ProgressReporter) (dto.BuildOutput, error)
	Budget(width, depth int) dto.BudgetOutput
	Links(ctx context.Context, topic string) ([]string, error)
	StartingCandidates(ctx context.Context) ([]string, error)
	SuggestStarts(candidates []string, n int) []string
	CacheStats(ctx context.Context) (dto.CacheStatsOutput, error)
	ClearCache(ctx context.Context) error
}
