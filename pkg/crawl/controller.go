package crawl

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"storyscout/pkg/domain"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/oracle.go -pkg mocks -skip-ensure -fmt goimports . Oracle

// Fetcher loads pages. Fetch builds a lightweight snapshot for the decision
// oracle; Signals scrapes full content for a page being extracted.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*domain.Snapshot, error)
	Signals(ctx context.Context, pageURL string) (*domain.ContentSignals, error)
}

// Oracle picks the next browsing action for a snapshot. It returns the raw
// model output; the controller sanitizes it before acting on it.
type Oracle interface {
	Decide(ctx context.Context, snap *domain.Snapshot) (string, error)
}

// Limits bounds a single exploration run. Zero values get safe defaults.
type Limits struct {
	MaxPages        int
	MaxClicks       int
	MaxDepth        int
	MaxCandidates   int
	Timeout         time.Duration // wall-clock budget for the whole run
	NavTimeout      time.Duration // per-page fetch
	DecisionTimeout time.Duration // per-oracle call
}

func (l Limits) withDefaults() Limits {
	if l.MaxPages <= 0 {
		l.MaxPages = 10
	}
	if l.MaxClicks <= 0 {
		l.MaxClicks = 10
	}
	if l.MaxDepth <= 0 {
		l.MaxDepth = 3
	}
	if l.MaxCandidates <= 0 {
		l.MaxCandidates = 5
	}
	if l.Timeout <= 0 {
		l.Timeout = 2 * time.Minute
	}
	if l.NavTimeout <= 0 {
		l.NavTimeout = 15 * time.Second
	}
	if l.DecisionTimeout <= 0 {
		l.DecisionTimeout = 30 * time.Second
	}
	return l
}

// Controller drives a depth, click, page and time bounded BFS whose
// transition function is delegated to the decision oracle. One page at a
// time, never outside the allowlist.
type Controller struct {
	fetcher  Fetcher
	oracle   Oracle
	sourceID string
}

// NewController creates a crawl controller emitting candidates tagged with sourceID.
func NewController(fetcher Fetcher, oracle Oracle, sourceID string) *Controller {
	return &Controller{fetcher: fetcher, oracle: oracle, sourceID: sourceID}
}

type queueItem struct {
	url   string
	depth int
}

// Explore runs one bounded exploration from seedURL and returns the
// accumulated candidates. Ordinary page, network and oracle failures degrade
// to fewer (possibly zero) candidates, never to an error.
func (c *Controller) Explore(ctx context.Context, seedURL string, allowlist []string, limits Limits) []domain.StoryCandidate {
	limits = limits.withDefaults()

	allow := normalizeAllowlist(allowlist, seedURL)
	if len(allow) == 0 {
		lgr.Printf("[ERROR] no usable domain allowlist for seed %s, aborting run", seedURL)
		return nil
	}

	start := time.Now()
	visited := map[string]bool{}
	queue := []queueItem{{url: seedURL, depth: 0}}
	var candidates []domain.StoryCandidate
	pages, clicks := 0, 0

	defer func() {
		lgr.Printf("[INFO] crawl from %s finished: %d pages, %d clicks, %d candidates in %v",
			seedURL, pages, clicks, len(candidates), time.Since(start).Round(time.Millisecond))
	}()

loop:
	for len(queue) > 0 {
		if elapsed := time.Since(start); elapsed >= limits.Timeout {
			lgr.Printf("[INFO] crawl time budget exhausted after %v", elapsed.Round(time.Millisecond))
			break
		}
		if pages >= limits.MaxPages {
			lgr.Printf("[INFO] crawl page budget exhausted (%d pages)", pages)
			break
		}
		if err := ctx.Err(); err != nil {
			lgr.Printf("[WARN] crawl context canceled: %v", err)
			break
		}

		item := queue[0]
		queue = queue[1:]

		if visited[item.url] {
			lgr.Printf("[DEBUG] skip already visited %s", item.url)
			continue
		}
		if !hostAllowed(item.url, allow) {
			lgr.Printf("[WARN] skip %s: host outside allowlist", item.url)
			continue
		}

		visited[item.url] = true
		pages++

		snap, err := c.fetch(ctx, item.url, limits.NavTimeout)
		if err != nil {
			// a single bad page must not abort the run
			lgr.Printf("[WARN] fetch failed for %s: %v", item.url, err)
			continue
		}

		decision := c.decide(ctx, snap, limits.DecisionTimeout)
		switch decision.Action {
		case domain.ActionExtract:
			candidates = append(candidates, c.extract(ctx, snap, limits.NavTimeout))
			if len(candidates) >= limits.MaxCandidates {
				lgr.Printf("[INFO] crawl candidate budget reached (%d)", len(candidates))
				break loop
			}

		case domain.ActionClick:
			if clicks >= limits.MaxClicks {
				lgr.Printf("[INFO] crawl click budget exhausted (%d clicks)", clicks)
				break loop
			}
			link, ok := resolveLink(snap, decision.Target)
			if !ok {
				lgr.Printf("[WARN] oracle asked for unknown link %q on %s, rejecting click", decision.Target, snap.URL)
				continue
			}
			if !hostAllowed(link.Href, allow) {
				lgr.Printf("[WARN] rejecting click to %s: host outside allowlist", link.Href)
				continue
			}
			if visited[link.Href] {
				lgr.Printf("[DEBUG] rejecting click to already visited %s", link.Href)
				continue
			}
			if item.depth+1 > limits.MaxDepth {
				lgr.Printf("[DEBUG] rejecting click to %s: depth %d over budget", link.Href, item.depth+1)
				continue
			}
			queue = append(queue, queueItem{url: link.Href, depth: item.depth + 1})
			clicks++
			lgr.Printf("[DEBUG] queued %s at depth %d (%s)", link.Href, item.depth+1, decision.Reason)

		case domain.ActionStop:
			lgr.Printf("[INFO] oracle stopped crawl on %s: %s", snap.URL, decision.Reason)
			break loop
		}
	}

	return candidates
}

// fetch loads a snapshot within the per-page navigation timeout.
func (c *Controller) fetch(ctx context.Context, pageURL string, navTimeout time.Duration) (*domain.Snapshot, error) {
	navCtx, cancel := context.WithTimeout(ctx, navTimeout)
	defer cancel()
	return c.fetcher.Fetch(navCtx, pageURL)
}

// decide asks the oracle for the next move and sanitizes the answer. An
// oracle failure is treated exactly like an explicit stop.
func (c *Controller) decide(ctx context.Context, snap *domain.Snapshot, timeout time.Duration) domain.BrowsingDecision {
	decCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := c.oracle.Decide(decCtx, snap)
	if err != nil {
		lgr.Printf("[WARN] decision oracle failed for %s, forcing stop: %v", snap.URL, err)
		return domain.BrowsingDecision{Action: domain.ActionStop, Reason: "oracle failure"}
	}
	return SanitizeDecision(raw)
}

// extract turns the current page into a candidate. The id is a deterministic
// function of the URL, so repeated runs converge on the same story.
func (c *Controller) extract(ctx context.Context, snap *domain.Snapshot, navTimeout time.Duration) domain.StoryCandidate {
	cand := domain.StoryCandidate{
		ID:       domain.CandidateID(c.sourceID, snap.URL),
		Title:    snap.Title,
		URL:      snap.URL,
		SourceID: c.sourceID,
	}

	sigCtx, cancel := context.WithTimeout(ctx, navTimeout)
	defer cancel()
	signals, err := c.fetcher.Signals(sigCtx, snap.URL)
	if err != nil {
		lgr.Printf("[WARN] content signals failed for %s: %v", snap.URL, err)
		return cand
	}
	cand.Signals = signals
	if cand.Title == "" {
		cand.Title = signals.Title
	}
	return cand
}

// resolveLink maps an oracle-provided link id back to the snapshot it was
// made against.
func resolveLink(snap *domain.Snapshot, target string) (domain.PageLink, bool) {
	for _, link := range snap.Links {
		if link.ID == target {
			return link, true
		}
	}
	return domain.PageLink{}, false
}

// normalizeAllowlist lowercases the allowlist and falls back to the seed
// URL's host when the list is empty. Returns nil when no host can be derived.
func normalizeAllowlist(allowlist []string, seedURL string) []string {
	var allow []string
	for _, h := range allowlist {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			allow = append(allow, h)
		}
	}
	if len(allow) > 0 {
		return allow
	}

	u, err := url.Parse(seedURL)
	if err != nil || u.Hostname() == "" {
		return nil
	}
	return []string{strings.ToLower(u.Hostname())}
}

// hostAllowed reports whether the URL is an http(s) link whose host matches
// an allowlisted domain or one of its subdomains.
func hostAllowed(rawURL string, allow []string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	for _, domainName := range allow {
		if host == domainName || strings.HasSuffix(host, "."+domainName) {
			return true
		}
	}
	return false
}
