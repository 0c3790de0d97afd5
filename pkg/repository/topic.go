package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"storyscout/pkg/domain"
)

// TopicRepository handles topic and story-topic link operations
type TopicRepository struct {
	db *sqlx.DB
}

// topicSQL represents a topic for SQL operations
type topicSQL struct {
	ID    int64   `db:"id"`
	Name  string  `db:"name"`
	Score float64 `db:"score"`
}

// NewTopicRepository creates a new topic repository
func NewTopicRepository(database *sqlx.DB) *TopicRepository {
	return &TopicRepository{db: database}
}

// EnsureTopic finds or creates a topic by name and returns it
func (r *TopicRepository) EnsureTopic(ctx context.Context, name string) (*domain.Topic, error) {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO topics (name) VALUES (?) ON CONFLICT(name) DO NOTHING", name)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("ensure topic %q: %w", name, err)}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var row topicSQL
	if err := r.db.GetContext(ctx, &row, "SELECT * FROM topics WHERE name = ?", name); err != nil {
		return nil, fmt.Errorf("get topic %q: %w", name, err)
	}
	return &domain.Topic{ID: row.ID, Name: row.Name, Score: row.Score}, nil
}

// LinkStoryTopic associates a story with a topic. Linking the same pair
// twice is a no-op.
func (r *TopicRepository) LinkStoryTopic(ctx context.Context, storyID string, topicID int64, source string, weight float64) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO story_topics (story_id, topic_id, source, weight) VALUES (?, ?, ?, ?)",
			storyID, topicID, source, weight)
		if err != nil {
			if isUniqueViolation(err) {
				return nil // already linked
			}
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("link story %s to topic %d: %w", storyID, topicID, err)}
		}
		return nil
	})
}

// IncrementTopicScore applies a score delta atomically in the database
func (r *TopicRepository) IncrementTopicScore(ctx context.Context, topicID int64, delta float64) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		res, err := r.db.ExecContext(ctx,
			"UPDATE topics SET score = score + ? WHERE id = ?", delta, topicID)
		if err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("increment topic %d score: %w", topicID, err)}
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return &criticalError{err: fmt.Errorf("increment topic %d score: topic not found", topicID)}
		}
		return nil
	})
}

// GetStoryTopics returns all topics linked to a story
func (r *TopicRepository) GetStoryTopics(ctx context.Context, storyID string) ([]domain.Topic, error) {
	query := `
		SELECT t.id, t.name, t.score FROM topics t
		JOIN story_topics st ON st.topic_id = t.id
		WHERE st.story_id = ?
		ORDER BY t.name
	`
	var rows []topicSQL
	if err := r.db.SelectContext(ctx, &rows, query, storyID); err != nil {
		return nil, fmt.Errorf("get story topics: %w", err)
	}

	topics := make([]domain.Topic, len(rows))
	for i, row := range rows {
		topics[i] = domain.Topic{ID: row.ID, Name: row.Name, Score: row.Score}
	}
	return topics, nil
}

// GetTopics returns all known topics ordered by accumulated score
func (r *TopicRepository) GetTopics(ctx context.Context) ([]domain.Topic, error) {
	var rows []topicSQL
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM topics ORDER BY score DESC, name"); err != nil {
		return nil, fmt.Errorf("get topics: %w", err)
	}

	topics := make([]domain.Topic, len(rows))
	for i, row := range rows {
		topics[i] = domain.Topic{ID: row.ID, Name: row.Name, Score: row.Score}
	}
	return topics, nil
}
