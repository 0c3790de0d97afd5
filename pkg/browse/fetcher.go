package browse

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-trafilatura"
	"github.com/microcosm-cc/bluemonday"

	"storyscout/pkg/domain"
)

// snapshot bounds, keep the oracle prompt small and the crawl polite
const (
	maxHeadings   = 12
	maxSnippets   = 10
	maxLinks      = 40
	snippetChars  = 280
	linkTextChars = 80
	excerptChars  = 300
	maxBodyBytes  = 2 << 20 // 2MB
)

// heavy asset types a snapshot request must never download
var blockedExtensions = map[string]bool{
	".pdf": true, ".zip": true, ".gz": true, ".tar": true, ".rar": true,
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".svg": true,
	".mp3": true, ".mp4": true, ".webm": true, ".avi": true, ".mov": true,
	".exe": true, ".dmg": true, ".iso": true, ".apk": true,
}

// Fetcher is the page fetch capability: it loads a URL and turns it into a
// snapshot for the decision oracle or full content signals for extraction.
type Fetcher struct {
	client    *http.Client
	userAgent string
	sanitizer *bluemonday.Policy
}

// NewFetcher creates a fetcher with a per-request timeout and user agent.
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (compatible; StoryScout/1.0)"
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Fetch loads a page and builds a bounded snapshot: title, headings, text
// snippets and outbound links with run-scoped ids.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*domain.Snapshot, error) {
	body, baseURL, err := f.get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("parse html from %s: %w", pageURL, err)
	}

	snap := &domain.Snapshot{
		URL:   pageURL,
		Title: collapseSpace(doc.Find("title").First().Text()),
	}

	doc.Find("h1, h2, h3").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if text := collapseSpace(sel.Text()); text != "" {
			snap.Headings = append(snap.Headings, text)
		}
		return len(snap.Headings) < maxHeadings
	})

	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if text := truncateRunes(collapseSpace(sel.Text()), snippetChars); text != "" {
			snap.Snippets = append(snap.Snippets, text)
		}
		return len(snap.Snippets) < maxSnippets
	})

	seen := map[string]bool{}
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		resolved, ok := resolveHref(baseURL, href)
		if !ok || seen[resolved] {
			return true
		}
		seen[resolved] = true
		snap.Links = append(snap.Links, domain.PageLink{
			ID:   fmt.Sprintf("link-%d", len(snap.Links)),
			Text: truncateRunes(collapseSpace(sel.Text()), linkTextChars),
			Href: resolved,
		})
		return len(snap.Links) < maxLinks
	})

	return snap, nil
}

// Signals scrapes full content signals for a page being extracted, using
// trafilatura for the main text and a strict sanitizer for the excerpt.
func (f *Fetcher) Signals(ctx context.Context, pageURL string) (*domain.ContentSignals, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}

	body, _, err := f.get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	result, err := trafilatura.Extract(io.LimitReader(body, maxBodyBytes), trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
		OriginalURL:     parsedURL,
	})
	if err != nil {
		return nil, fmt.Errorf("extract content from %s: %w", pageURL, err)
	}
	if result == nil || strings.TrimSpace(result.ContentText) == "" {
		return nil, fmt.Errorf("no text content extracted from %s", pageURL)
	}

	text := strings.TrimSpace(result.ContentText)
	excerpt := collapseSpace(f.sanitizer.Sanitize(result.Metadata.Description))
	if excerpt == "" {
		excerpt = truncateRunes(text, excerptChars)
	}

	return &domain.ContentSignals{
		Title:     strings.TrimSpace(result.Metadata.Title),
		Text:      text,
		Excerpt:   excerpt,
		WordCount: len(strings.Fields(text)),
	}, nil
}

// get performs a bounded GET and verifies the response is an HTML document.
// The returned base URL reflects redirects.
func (f *Fetcher) get(ctx context.Context, pageURL string) (io.ReadCloser, *url.URL, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, nil, fmt.Errorf("invalid URL: %s", pageURL)
	}
	if ext := strings.ToLower(path.Ext(parsedURL.Path)); blockedExtensions[ext] {
		return nil, nil, fmt.Errorf("blocked asset type %s: %s", ext, pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	addBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, pageURL)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "text/html") && !strings.Contains(contentType, "application/xhtml") {
		resp.Body.Close()
		return nil, nil, fmt.Errorf("non-html content type %q for %s", contentType, pageURL)
	}

	base := parsedURL
	if resp.Request != nil && resp.Request.URL != nil {
		base = resp.Request.URL
	}
	return resp.Body, base, nil
}

// resolveHref resolves a raw href against the page base and filters out
// anything that is not a navigable http(s) link.
func resolveHref(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	resolved.Fragment = ""
	return resolved.String(), true
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
