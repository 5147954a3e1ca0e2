package out

import (
	"context"

	"wikitrail/internal/modules/crawl/domain"
	crawlout "wikitrail/internal/modules/crawl/port/out"
)

// FilteredLinkSource drops denylisted topics from another source. It wraps
// the cache, so the cache keeps raw links and a new denylist applies at once.
type FilteredLinkSource struct {
	next     crawlout.LinkSource
	denylist []string
}

func NewFilteredLinkSource(next crawlout.LinkSource, denylist []string) crawlout.LinkSource {
	return &FilteredLinkSource{next: next, denylist: append([]string(nil), denylist...)}
}

func (s *FilteredLinkSource) Links(ctx context.Context, topic domain.Topic) ([]domain.Topic, error) {
	links, err := s.next.Links(ctx, topic)
	if err != nil {
		return nil, err
	}
	return domain.FilterTopics(links, s.denylist), nil
}
