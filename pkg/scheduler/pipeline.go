// Package scheduler orchestrates discovery passes: pull candidates from all
// configured sources, gate them through the relevance oracle, persist matches
// and deliver the top-ranked stories to the notification sink.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"

	"storyscout/pkg/domain"
	"storyscout/pkg/llm"
	"storyscout/pkg/scoring"
	"storyscout/pkg/source"
)

//go:generate moq -out mocks/relevance.go -pkg mocks -skip-ensure -fmt goimports . Relevance
//go:generate moq -out mocks/story_store.go -pkg mocks -skip-ensure -fmt goimports . StoryStore
//go:generate moq -out mocks/topic_store.go -pkg mocks -skip-ensure -fmt goimports . TopicStore
//go:generate moq -out mocks/ranker.go -pkg mocks -skip-ensure -fmt goimports . Ranker
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier
//go:generate moq -out mocks/signals_fetcher.go -pkg mocks -skip-ensure -fmt goimports . SignalsFetcher

// explicit run states for the manual-trigger guard
const (
	stateIdle int32 = iota
	stateRunning
)

// ErrAlreadyRunning is returned when a pass is requested while one is active
var ErrAlreadyRunning = errors.New("discovery pass already running")

// Relevance gates candidates. A nil match means "not relevant".
type Relevance interface {
	Check(ctx context.Context, cand domain.StoryCandidate) (*llm.Match, error)
}

// StoryStore is the story persistence surface the pipeline needs
type StoryStore interface {
	StoryExists(ctx context.Context, id string) (bool, error)
	CreateStory(ctx context.Context, story *domain.Story) error
	MarkNotified(ctx context.Context, id string, at time.Time) error
}

// TopicStore links matched stories to their topics
type TopicStore interface {
	EnsureTopic(ctx context.Context, name string) (*domain.Topic, error)
	LinkStoryTopic(ctx context.Context, storyID string, topicID int64, source string, weight float64) error
}

// Ranker selects the top-ranked unsent stories with fresh scores
type Ranker interface {
	SelectForDelivery(ctx context.Context, limit int) ([]domain.Story, error)
}

// Notifier delivers a digest message to the user
type Notifier interface {
	Enabled() bool
	Send(ctx context.Context, message string) error
}

// SignalsFetcher scrapes content signals for candidates that arrive without them
type SignalsFetcher interface {
	Signals(ctx context.Context, pageURL string) (*domain.ContentSignals, error)
}

// Linker mints signed one-click feedback tokens for delivered stories
type Linker interface {
	Sign(storyID, action string) string
}

// Config holds pipeline configuration
type Config struct {
	ScanInterval    time.Duration
	DeliveryLimit   int
	FeedbackBaseURL string // one-click links are omitted when empty
}

// Pipeline runs the discovery loop
type Pipeline struct {
	sources  []source.Source
	relevant Relevance
	stories  StoryStore
	topics   TopicStore
	ranker   Ranker
	notifier Notifier
	signals  SignalsFetcher
	linker   Linker
	cfg      Config

	state  atomic.Int32
	wg     sync.WaitGroup
	cancel context.CancelFunc
	now    func() time.Time
}

// NewPipeline creates a discovery pipeline. SignalsFetcher and Linker are
// optional; a nil notifier disables delivery.
func NewPipeline(sources []source.Source, relevant Relevance, stories StoryStore, topics TopicStore,
	ranker Ranker, notifier Notifier, signals SignalsFetcher, linker Linker, cfg Config) *Pipeline {
	if cfg.ScanInterval <= 0 {
		cfg.ScanInterval = time.Hour
	}
	if cfg.DeliveryLimit <= 0 {
		cfg.DeliveryLimit = scoring.DefaultDeliveryLimit
	}
	return &Pipeline{
		sources:  sources,
		relevant: relevant,
		stories:  stories,
		topics:   topics,
		ranker:   ranker,
		notifier: notifier,
		signals:  signals,
		linker:   linker,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Start begins periodic discovery passes. The first pass runs immediately.
func (p *Pipeline) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		ticker := time.NewTicker(p.cfg.ScanInterval)
		defer ticker.Stop()

		p.runGuarded(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.runGuarded(ctx)
			}
		}
	}()

	lgr.Printf("[INFO] pipeline started, scan interval %v, delivery limit %d", p.cfg.ScanInterval, p.cfg.DeliveryLimit)
}

// Stop gracefully stops the pipeline
func (p *Pipeline) Stop() {
	lgr.Printf("[INFO] stopping pipeline...")
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	lgr.Printf("[INFO] pipeline stopped")
}

// RunNow triggers a discovery pass immediately. At most one pass runs at a
// time; a second trigger while one is active returns ErrAlreadyRunning
// instead of queueing.
func (p *Pipeline) RunNow(ctx context.Context) error {
	if !p.state.CompareAndSwap(stateIdle, stateRunning) {
		return ErrAlreadyRunning
	}
	defer p.state.Store(stateIdle)

	p.runPass(ctx)
	return nil
}

// runGuarded is the periodic entry point; an overlapping manual run wins
func (p *Pipeline) runGuarded(ctx context.Context) {
	if err := p.RunNow(ctx); err != nil {
		lgr.Printf("[INFO] skipping scheduled pass: %v", err)
	}
}

// runPass ingests every source and then delivers the top stories
func (p *Pipeline) runPass(ctx context.Context) {
	start := p.now()
	lgr.Printf("[INFO] discovery pass started")

	var matched int
	for _, src := range p.sources {
		if ctx.Err() != nil {
			lgr.Printf("[WARN] discovery pass canceled: %v", ctx.Err())
			return
		}
		matched += p.ingestSource(ctx, src)
	}

	p.deliver(ctx)
	lgr.Printf("[INFO] discovery pass finished: %d new stories in %v", matched, time.Since(start).Round(time.Millisecond))
}

// ingestSource pulls candidates from one source and gates each through the
// relevance oracle. A failing source or candidate never aborts the pass.
func (p *Pipeline) ingestSource(ctx context.Context, src source.Source) int {
	candidates, err := src.Fetch(ctx)
	if err != nil {
		lgr.Printf("[ERROR] source %s failed: %v", src.Name(), err)
		return 0
	}
	lgr.Printf("[DEBUG] source %s produced %d candidates", src.Name(), len(candidates))

	matched := 0
	for _, cand := range candidates {
		ok, err := p.ingestCandidate(ctx, cand)
		if err != nil {
			lgr.Printf("[WARN] candidate %s (%s) failed: %v", cand.ID, cand.URL, err)
			continue
		}
		if ok {
			matched++
		}
	}
	return matched
}

// ingestCandidate runs one candidate through dedup, relevance gating and
// persistence. Returns true when a new story was created.
func (p *Pipeline) ingestCandidate(ctx context.Context, cand domain.StoryCandidate) (bool, error) {
	exists, err := p.stories.StoryExists(ctx, cand.ID)
	if err != nil {
		return false, fmt.Errorf("check story exists: %w", err)
	}
	if exists {
		return false, nil
	}

	// candidates from thin sources get content signals scraped on demand
	if cand.Signals == nil && p.signals != nil {
		signals, err := p.signals.Signals(ctx, cand.URL)
		if err != nil {
			lgr.Printf("[DEBUG] no content signals for %s: %v", cand.URL, err)
		} else {
			cand.Signals = signals
		}
	}

	match, err := p.relevant.Check(ctx, cand)
	if err != nil {
		return false, fmt.Errorf("relevance check: %w", err)
	}
	if match == nil {
		lgr.Printf("[DEBUG] candidate %s not relevant, dropped", cand.ID)
		return false, nil
	}

	story := &domain.Story{
		ID:             cand.ID,
		Title:          cand.Title,
		URL:            cand.URL,
		SourceID:       cand.SourceID,
		Score:          cand.Score,
		Rank:           cand.Rank,
		Date:           p.now(),
		Reason:         match.Reason,
		RelevanceScore: scoring.InitialRelevanceScore,
		FirstSeenAt:    p.now(),
	}
	if err := p.stories.CreateStory(ctx, story); err != nil {
		return false, fmt.Errorf("create story: %w", err)
	}

	for _, name := range match.Topics {
		topic, err := p.topics.EnsureTopic(ctx, name)
		if err != nil {
			lgr.Printf("[WARN] ensure topic %q failed: %v", name, err)
			continue
		}
		if err := p.topics.LinkStoryTopic(ctx, story.ID, topic.ID, story.SourceID, 1); err != nil {
			lgr.Printf("[WARN] link story %s to topic %q failed: %v", story.ID, name, err)
		}
	}

	lgr.Printf("[INFO] new story %s from %s: %s", story.ID, story.SourceID, story.Title)
	return true, nil
}

// deliver sends the top-ranked unsent stories to the sink and marks them
// delivered. A send failure leaves the stories unsent for the next pass.
func (p *Pipeline) deliver(ctx context.Context) {
	if p.notifier == nil || !p.notifier.Enabled() {
		return
	}

	stories, err := p.ranker.SelectForDelivery(ctx, p.cfg.DeliveryLimit)
	if err != nil {
		lgr.Printf("[ERROR] delivery selection failed: %v", err)
		return
	}
	if len(stories) == 0 {
		return
	}

	if err := p.notifier.Send(ctx, p.buildDigest(stories)); err != nil {
		lgr.Printf("[ERROR] digest delivery failed, will retry next pass: %v", err)
		return
	}

	now := p.now()
	for _, story := range stories {
		if err := p.stories.MarkNotified(ctx, story.ID, now); err != nil {
			lgr.Printf("[ERROR] failed to mark story %s notified: %v", story.ID, err)
		}
	}
	lgr.Printf("[INFO] delivered %d stories", len(stories))
}

// buildDigest renders the delivery batch as a Telegram HTML message with
// one-click feedback links when a linker is configured.
func (p *Pipeline) buildDigest(stories []domain.Story) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>Top %d stories</b>\n\n", len(stories)))

	for i, story := range stories {
		sb.WriteString(fmt.Sprintf("%d. <a href=\"%s\">%s</a>\n", i+1, story.URL, html.EscapeString(story.Title)))
		if story.Reason != "" {
			sb.WriteString(html.EscapeString(story.Reason))
			sb.WriteString("\n")
		}
		if p.linker != nil && p.cfg.FeedbackBaseURL != "" {
			base := strings.TrimSuffix(p.cfg.FeedbackBaseURL, "/")
			sb.WriteString(fmt.Sprintf("<a href=\"%s/feedback/%s\">like</a> | <a href=\"%s/feedback/%s\">dislike</a> | <a href=\"%s/feedback/%s\">save</a>\n",
				base, p.linker.Sign(story.ID, string(domain.FeedbackLike)),
				base, p.linker.Sign(story.ID, string(domain.FeedbackDislike)),
				base, p.linker.Sign(story.ID, string(domain.FeedbackSave))))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
