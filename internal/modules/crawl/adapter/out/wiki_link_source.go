package out

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wikitrail/internal/modules/crawl/domain"
	crawlout "wikitrail/internal/modules/crawl/port/out"
	apperrors "wikitrail/internal/platform/errors"
)

type WikiOptions struct {
	APIURL    string
	LinkLimit string
	UserAgent string
	Timeout   time.Duration
}

// WikiLinkSource reads outbound links from the MediaWiki query API. Results
// are unfiltered; see FilteredLinkSource.
type WikiLinkSource struct {
	client *http.Client
	opts   WikiOptions
}

func NewWikiLinkSource(client *http.Client, opts WikiOptions) crawlout.LinkSource {
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &WikiLinkSource{client: client, opts: opts}
}

type queryResponse struct {
	Query *struct {
		Pages map[string]struct {
			Title   string  `json:"title"`
			Missing *string `json:"missing"`
			Links   []struct {
				NS    int    `json:"ns"`
				Title string `json:"title"`
			} `json:"links"`
		} `json:"pages"`
	} `json:"query"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

func (s *WikiLinkSource) Links(ctx context.Context, topic domain.Topic) ([]domain.Topic, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", apperrors.ErrInvalidInput)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.topicURL(topic), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if s.opts.UserAgent != "" {
		req.Header.Set("User-Agent", s.opts.UserAgent)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %q: %v", apperrors.ErrSourceUnavailable, topic, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: fetch %q: status %d", apperrors.ErrSourceUnavailable, topic, resp.StatusCode)
	}

	var payload queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode %q: %v", apperrors.ErrSourceUnavailable, topic, err)
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("%w: api %s: %s", apperrors.ErrSourceUnavailable, payload.Error.Code, payload.Error.Info)
	}
	if payload.Query == nil {
		return nil, fmt.Errorf("%w: response for %q has no query", apperrors.ErrSourceUnavailable, topic)
	}

	titles := make([]domain.Topic, 0)
	for _, page := range payload.Query.Pages {
		if page.Missing != nil {
			continue
		}
		for _, link := range page.Links {
			titles = append(titles, link.Title)
		}
	}
	return titles, nil
}

func (s *WikiLinkSource) topicURL(topic string) string {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("prop", "links")
	q.Set("format", "json")
	q.Set("redirects", "true")
	q.Set("titles", topic)
	if s.opts.LinkLimit != "" {
		q.Set("pllimit", s.opts.LinkLimit)
	}
	return s.opts.APIURL + "?" + q.Encode()
}
