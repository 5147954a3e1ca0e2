package out

import (
	"context"

	"wikitrail/internal/modules/crawl/domain"
)

// LinkSource returns the filtered outbound topics of a topic. An empty result
// with a nil error means the page has no usable links.
type LinkSource interface {
	Links(ctx context.Context, topic domain.Topic) ([]domain.Topic, error)
}

// ProgressReporter is told once per visited node.
type ProgressReporter interface {
	Visit()
}

type ProgressFunc func()

func (f ProgressFunc) Visit() {
	if f != nil {
		f()
	}
}

// LinkCache is a LinkSource that keeps fetched results.
type LinkCache interface {
	LinkSource
	Stats(ctx context.Context) (topics, links int, err error)
	Reset(ctx context.Context) error
}
