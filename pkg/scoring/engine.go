package scoring

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"storyscout/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// scoring constants, fixed-point with two implied decimals (scale 100)
const (
	ScoreScale            = 100
	InitialRelevanceScore = 150 // assigned when a story is first persisted
	HalfLifeHours         = 36.0
	SuppressionThreshold  = -150

	tagAdjustmentFactor    = 0.1  // domain (host) bias
	sourceAdjustmentFactor = 0.05 // feedback-source bias

	topicScaleImplicit = 0.4
	topicScaleExplicit = 0.7

	minSuppression = 6 * time.Hour
	maxSuppression = 48 * time.Hour

	// DefaultDeliveryLimit is how many top-ranked stories a delivery pass takes
	DefaultDeliveryLimit = 5
)

// Store is the persistence surface the engine needs. Topic increments must be
// atomic on the store side since multiple stories can share a topic.
type Store interface {
	GetStory(ctx context.Context, id string) (*domain.Story, error)
	GetUnsentStories(ctx context.Context, now time.Time) ([]domain.Story, error)
	UpdateStoryScore(ctx context.Context, id string, relevance int, suppressedUntil *time.Time) error

	AddEvent(ctx context.Context, ev *domain.FeedbackEvent) error
	GetEvents(ctx context.Context, storyID string) ([]domain.FeedbackEvent, error)

	GetStoryTopics(ctx context.Context, storyID string) ([]domain.Topic, error)
	IncrementTopicScore(ctx context.Context, topicID int64, delta float64) error
}

// Computation is the result of folding a story's feedback history.
type Computation struct {
	RelevanceScore  int
	SuppressedUntil *time.Time
	Reasons         []string
}

// FeedbackRequest is an incoming feedback payload.
type FeedbackRequest struct {
	StoryID    string
	Action     domain.FeedbackAction
	Confidence domain.FeedbackConfidence
	Source     string
	Metadata   string
}

// Engine computes and persists decayed, bias-adjusted relevance scores.
type Engine struct {
	store Store
	now   func() time.Time // injectable clock for tests
}

// NewEngine creates a scoring engine backed by the given store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// eventWeight returns the score weight for an action at a confidence level.
// Zero-weight combinations contribute nothing and are skipped.
func eventWeight(action domain.FeedbackAction, confidence domain.FeedbackConfidence) float64 {
	if confidence == domain.ConfidenceExplicit {
		switch action {
		case domain.FeedbackLike:
			return 1.0
		case domain.FeedbackDislike:
			return -1.0
		case domain.FeedbackSave:
			return 1.5
		}
		return 0
	}
	switch action {
	case domain.FeedbackOpened:
		return 0.3
	case domain.FeedbackIgnored:
		return -0.2
	}
	return 0
}

// topicScale returns the propagation factor for topic aggregates.
func topicScale(confidence domain.FeedbackConfidence) float64 {
	if confidence == domain.ConfidenceExplicit {
		return topicScaleExplicit
	}
	return topicScaleImplicit
}

// decay returns the exponential age factor for a contribution: 1.0 at age 0,
// 0.5 at the half-life.
func decay(hoursAgo float64) float64 {
	return math.Exp(-math.Ln2 / HalfLifeHours * hoursAgo)
}

// storyHost extracts the story URL host with common mobile prefixes stripped.
// Empty when the story has no parseable URL.
func storyHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	for _, prefix := range []string{"www.", "m.", "mobile."} {
		if strings.HasPrefix(host, prefix) {
			host = strings.TrimPrefix(host, prefix)
			break
		}
	}
	return host
}

// suppressionWindow maps how negative a score is to how long the story stays
// out of delivery: two hours per full point, clamped to [6h, 48h].
func suppressionWindow(score int) time.Duration {
	hours := math.Round(math.Abs(float64(score))/ScoreScale) * 2
	d := time.Duration(hours) * time.Hour
	if d < minSuppression {
		return minSuppression
	}
	if d > maxSuppression {
		return maxSuppression
	}
	return d
}

// Compute folds the full feedback history of a story into a relevance score
// and suppression state as of now. It is a pure function of its inputs; both
// the cheap read-time refresh and full replays go through it, which is what
// keeps the two paths equivalent.
func Compute(story *domain.Story, events []domain.FeedbackEvent, now time.Time) Computation {
	aggregate := float64(InitialRelevanceScore)
	hostBuckets := map[string]float64{}
	sourceBuckets := map[string]float64{}
	host := storyHost(story.URL)

	var reasons []string
	for _, ev := range events {
		weight := eventWeight(ev.Action, ev.Confidence)
		if weight == 0 {
			continue
		}

		hoursAgo := now.Sub(ev.CreatedAt).Hours()
		if hoursAgo < 0 {
			// a future timestamp must never inflate decay past 1.0
			lgr.Printf("[WARN] feedback event %d for story %s has future timestamp %s", ev.ID, ev.StoryID, ev.CreatedAt)
			hoursAgo = 0
		}

		contribution := weight * ScoreScale * decay(hoursAgo)
		aggregate += contribution
		if host != "" {
			hostBuckets[host] += contribution
		}
		if ev.Source != "" {
			sourceBuckets[ev.Source] += contribution
		}
		reasons = append(reasons, fmt.Sprintf("%s/%s %+.2f (%.1fh old)", ev.Action, ev.Confidence, contribution, hoursAgo))
	}

	if bias := sumBuckets(hostBuckets) * tagAdjustmentFactor; bias != 0 {
		aggregate += bias
		reasons = append(reasons, fmt.Sprintf("domain bias %+.2f", bias))
	}
	if bias := sumBuckets(sourceBuckets) * sourceAdjustmentFactor; bias != 0 {
		aggregate += bias
		reasons = append(reasons, fmt.Sprintf("source bias %+.2f", bias))
	}

	comp := Computation{
		RelevanceScore: int(math.Round(aggregate)),
		Reasons:        reasons,
	}

	switch {
	case comp.RelevanceScore < SuppressionThreshold:
		until := now.Add(suppressionWindow(comp.RelevanceScore))
		comp.SuppressedUntil = &until
	case comp.RelevanceScore > 0 && story.SuppressedUntil != nil && story.SuppressedUntil.After(now):
		// positive score recovers a suppressed story
		comp.SuppressedUntil = nil
	default:
		comp.SuppressedUntil = story.SuppressedUntil
	}

	return comp
}

func sumBuckets(buckets map[string]float64) float64 {
	var total float64
	for _, v := range buckets {
		total += v
	}
	return total
}

// Refresh recomputes a story's score from its full event history and persists
// the result. The passed story is updated in place on success.
func (e *Engine) Refresh(ctx context.Context, story *domain.Story) (Computation, error) {
	events, err := e.store.GetEvents(ctx, story.ID)
	if err != nil {
		return Computation{}, fmt.Errorf("get events for story %s: %w", story.ID, err)
	}

	comp := Compute(story, events, e.now())
	if err := e.store.UpdateStoryScore(ctx, story.ID, comp.RelevanceScore, comp.SuppressedUntil); err != nil {
		return Computation{}, fmt.Errorf("persist score for story %s: %w", story.ID, err)
	}

	story.RelevanceScore = comp.RelevanceScore
	story.SuppressedUntil = comp.SuppressedUntil
	return comp, nil
}

// RecordFeedback appends a feedback event, recomputes the story's score and
// propagates the event's delta to every linked topic aggregate.
func (e *Engine) RecordFeedback(ctx context.Context, req FeedbackRequest) (*Computation, error) {
	if !req.Action.Valid() {
		return nil, fmt.Errorf("unknown feedback action %q", req.Action)
	}
	if !req.Confidence.Valid() {
		return nil, fmt.Errorf("unknown feedback confidence %q", req.Confidence)
	}

	story, err := e.store.GetStory(ctx, req.StoryID)
	if err != nil {
		return nil, fmt.Errorf("get story %s: %w", req.StoryID, err)
	}

	ev := &domain.FeedbackEvent{
		StoryID:    req.StoryID,
		Action:     req.Action,
		Confidence: req.Confidence,
		Source:     req.Source,
		CreatedAt:  e.now(),
		Metadata:   req.Metadata,
	}
	if err := e.store.AddEvent(ctx, ev); err != nil {
		return nil, fmt.Errorf("append feedback event: %w", err)
	}

	comp, err := e.Refresh(ctx, story)
	if err != nil {
		return nil, err
	}

	e.propagateToTopics(ctx, req)

	lgr.Printf("[INFO] recorded %s/%s feedback for story %s, score %d", req.Action, req.Confidence, req.StoryID, comp.RelevanceScore)
	return &comp, nil
}

// propagateToTopics increments every topic linked to the story by the full
// event delta. Increment failures are isolated per topic.
func (e *Engine) propagateToTopics(ctx context.Context, req FeedbackRequest) {
	weight := eventWeight(req.Action, req.Confidence)
	if weight == 0 {
		return
	}
	delta := weight * ScoreScale * topicScale(req.Confidence)

	topics, err := e.store.GetStoryTopics(ctx, req.StoryID)
	if err != nil {
		lgr.Printf("[WARN] failed to get topics for story %s: %v", req.StoryID, err)
		return
	}

	for _, topic := range topics {
		if err := e.store.IncrementTopicScore(ctx, topic.ID, delta); err != nil {
			lgr.Printf("[WARN] failed to increment topic %q by %.2f: %v", topic.Name, delta, err)
		}
	}
}

// SelectForDelivery returns the top-ranked unsent, unsuppressed stories with
// scores refreshed as of now. Stories are refreshed one at a time: decay is
// wall-clock-dependent and sequential updates avoid read-modify-write races
// on shared rows. A refresh failure skips that story, never the batch.
func (e *Engine) SelectForDelivery(ctx context.Context, limit int) ([]domain.Story, error) {
	if limit <= 0 {
		limit = DefaultDeliveryLimit
	}

	stories, err := e.store.GetUnsentStories(ctx, e.now())
	if err != nil {
		return nil, fmt.Errorf("get unsent stories: %w", err)
	}

	ranked := make([]domain.Story, 0, len(stories))
	for i := range stories {
		comp, err := e.Refresh(ctx, &stories[i])
		if err != nil {
			lgr.Printf("[WARN] score refresh failed for story %s: %v", stories[i].ID, err)
			continue
		}
		if comp.SuppressedUntil != nil && comp.SuppressedUntil.After(e.now()) {
			continue
		}
		ranked = append(ranked, stories[i])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].RelevanceScore != ranked[j].RelevanceScore {
			return ranked[i].RelevanceScore > ranked[j].RelevanceScore
		}
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
