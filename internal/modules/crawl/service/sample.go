package service

import (
	"wikitrail/internal/modules/crawl/domain"
	"wikitrail/internal/platform/random"
)

// SelectN draws up to n distinct topics uniformly without replacement.
// Duplicate candidates count once, so fewer than n unique candidates yields a
// smaller result rather than an error.
func SelectN(rng random.Source, candidates []domain.Topic, n int) []domain.Topic {
	unique := make([]domain.Topic, 0, len(candidates))
	seen := make(map[domain.Topic]struct{}, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		unique = append(unique, c)
	}
	k := min(n, len(unique))
	if k <= 0 {
		return []domain.Topic{}
	}
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(unique)-i)
		unique[i], unique[j] = unique[j], unique[i]
	}
	return unique[:k]
}

// Pick returns one topic chosen uniformly, or false for an empty slice.
func Pick(rng random.Source, topics []domain.Topic) (domain.Topic, bool) {
	if len(topics) == 0 {
		return "", false
	}
	return topics[rng.IntN(len(topics))], true
}
