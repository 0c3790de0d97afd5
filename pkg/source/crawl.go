package source

import (
	"context"

	"storyscout/pkg/crawl"
	"storyscout/pkg/domain"
)

// Crawl adapts a crawl controller run over one seed into a candidate source
type Crawl struct {
	name       string
	seedURL    string
	allowlist  []string
	limits     crawl.Limits
	controller *crawl.Controller
}

// NewCrawl creates a crawl-backed source for one seed page
func NewCrawl(name, seedURL string, allowlist []string, limits crawl.Limits, fetcher crawl.Fetcher, oracle crawl.Oracle) *Crawl {
	return &Crawl{
		name:       name,
		seedURL:    seedURL,
		allowlist:  allowlist,
		limits:     limits,
		controller: crawl.NewController(fetcher, oracle, name),
	}
}

// Name returns the source id candidates are tagged with
func (c *Crawl) Name() string { return c.name }

// Fetch runs one bounded exploration from the seed. Crawl runs degrade to
// fewer candidates on failure, so the error is always nil.
func (c *Crawl) Fetch(ctx context.Context) ([]domain.StoryCandidate, error) {
	return c.controller.Explore(ctx, c.seedURL, c.allowlist, c.limits), nil
}
