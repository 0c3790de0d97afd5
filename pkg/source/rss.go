package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"storyscout/pkg/domain"
)

// RSS fetches candidates from a single RSS/Atom feed
type RSS struct {
	name      string
	url       string
	client    *http.Client
	userAgent string
}

// NewRSS creates an RSS source named after its config entry
func NewRSS(name, feedURL string, timeout time.Duration, userAgent string) *RSS {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RSS{
		name: name,
		url:  feedURL,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// Name returns the source id candidates are tagged with
func (r *RSS) Name() string { return r.name }

// Fetch downloads and parses the feed into candidates. The feed position
// becomes the candidate rank, newest entries first as published.
func (r *RSS) Fetch(ctx context.Context) ([]domain.StoryCandidate, error) {
	body, err := r.fetch(ctx, r.url)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", r.name, err)
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", r.name, err)
	}

	candidates := make([]domain.StoryCandidate, 0, len(feed.Items))
	for i, item := range feed.Items {
		if item.Link == "" {
			continue
		}
		cand := domain.StoryCandidate{
			ID:       domain.CandidateID(r.name, item.Link),
			Title:    item.Title,
			URL:      item.Link,
			SourceID: r.name,
			Rank:     i + 1,
		}
		if item.Description != "" || item.Content != "" {
			text := item.Content
			if text == "" {
				text = item.Description
			}
			cand.Signals = &domain.ContentSignals{Title: item.Title, Text: text}
		}
		candidates = append(candidates, cand)
	}
	return candidates, nil
}

// fetch retrieves content from a URL
func (r *RSS) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
