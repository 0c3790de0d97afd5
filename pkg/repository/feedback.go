package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"storyscout/pkg/domain"
)

// FeedbackRepository handles the append-only feedback event log
type FeedbackRepository struct {
	db *sqlx.DB
}

// feedbackSQL represents a feedback event for SQL operations
type feedbackSQL struct {
	ID         int64     `db:"id"`
	StoryID    string    `db:"story_id"`
	Action     string    `db:"action"`
	Confidence string    `db:"confidence"`
	Source     string    `db:"source"`
	CreatedAt  time.Time `db:"created_at"`
	Metadata   string    `db:"metadata"`
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(database *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: database}
}

// AddEvent appends a feedback event. Events are never mutated or deleted.
func (r *FeedbackRepository) AddEvent(ctx context.Context, ev *domain.FeedbackEvent) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO feedback_events (story_id, action, confidence, source, created_at, metadata)
		VALUES (:story_id, :action, :confidence, :source, :created_at, :metadata)
	`
	row := &feedbackSQL{
		StoryID:    ev.StoryID,
		Action:     string(ev.Action),
		Confidence: string(ev.Confidence),
		Source:     ev.Source,
		CreatedAt:  ev.CreatedAt,
		Metadata:   ev.Metadata,
	}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("append feedback event: %w", err)}
		}

		id, err := result.LastInsertId()
		if err != nil {
			return &criticalError{err: fmt.Errorf("get feedback event id: %w", err)}
		}
		ev.ID = id
		return nil
	})
}

// GetEvents returns the full feedback history of a story, oldest first
func (r *FeedbackRepository) GetEvents(ctx context.Context, storyID string) ([]domain.FeedbackEvent, error) {
	query := `
		SELECT * FROM feedback_events
		WHERE story_id = ?
		ORDER BY created_at, id
	`
	var rows []feedbackSQL
	if err := r.db.SelectContext(ctx, &rows, query, storyID); err != nil {
		return nil, fmt.Errorf("get feedback events: %w", err)
	}

	events := make([]domain.FeedbackEvent, len(rows))
	for i, row := range rows {
		events[i] = domain.FeedbackEvent{
			ID:         row.ID,
			StoryID:    row.StoryID,
			Action:     domain.FeedbackAction(row.Action),
			Confidence: domain.FeedbackConfidence(row.Confidence),
			Source:     row.Source,
			CreatedAt:  row.CreatedAt,
			Metadata:   row.Metadata,
		}
	}
	return events, nil
}
