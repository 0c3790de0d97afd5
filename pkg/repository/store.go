package repository

import (
	"context"
	"time"

	"storyscout/pkg/domain"
)

// Store bundles the story, feedback and topic repositories behind the single
// persistence surface the scoring engine consumes.
type Store struct {
	stories  *StoryRepository
	feedback *FeedbackRepository
	topics   *TopicRepository
}

// NewStore creates a combined store over the given repositories
func NewStore(r *Repositories) *Store {
	return &Store{stories: r.Story, feedback: r.Feedback, topics: r.Topic}
}

// GetStory retrieves a story by ID
func (s *Store) GetStory(ctx context.Context, id string) (*domain.Story, error) {
	return s.stories.GetStory(ctx, id)
}

// GetUnsentStories retrieves stories pending delivery as of now
func (s *Store) GetUnsentStories(ctx context.Context, now time.Time) ([]domain.Story, error) {
	return s.stories.GetUnsentStories(ctx, now)
}

// UpdateStoryScore persists a recomputed relevance score and suppression state
func (s *Store) UpdateStoryScore(ctx context.Context, id string, relevance int, suppressedUntil *time.Time) error {
	return s.stories.UpdateStoryScore(ctx, id, relevance, suppressedUntil)
}

// AddEvent appends a feedback event
func (s *Store) AddEvent(ctx context.Context, ev *domain.FeedbackEvent) error {
	return s.feedback.AddEvent(ctx, ev)
}

// GetEvents returns a story's full feedback history, oldest first
func (s *Store) GetEvents(ctx context.Context, storyID string) ([]domain.FeedbackEvent, error) {
	return s.feedback.GetEvents(ctx, storyID)
}

// GetStoryTopics returns all topics linked to a story
func (s *Store) GetStoryTopics(ctx context.Context, storyID string) ([]domain.Topic, error) {
	return s.topics.GetStoryTopics(ctx, storyID)
}

// IncrementTopicScore applies a score delta atomically
func (s *Store) IncrementTopicScore(ctx context.Context, topicID int64, delta float64) error {
	return s.topics.IncrementTopicScore(ctx, topicID, delta)
}
