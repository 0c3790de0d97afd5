package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"storyscout/pkg/domain"
)

// ErrStoryNotFound is returned when a story id does not exist
var ErrStoryNotFound = errors.New("story not found")

// StoryRepository handles story-related database operations
type StoryRepository struct {
	db *sqlx.DB
}

// storySQL represents a story for SQL operations
type storySQL struct {
	ID               string     `db:"id"`
	Title            string     `db:"title"`
	URL              string     `db:"url"`
	SourceID         string     `db:"source_id"`
	Score            float64    `db:"score"`
	Rank             int        `db:"rank"`
	Date             time.Time  `db:"date"`
	Reason           string     `db:"reason"`
	RelevanceScore   int        `db:"relevance_score"`
	NotificationSent bool       `db:"notification_sent"`
	FirstSeenAt      time.Time  `db:"first_seen_at"`
	LastNotifiedAt   *time.Time `db:"last_notified_at"`
	SuppressedUntil  *time.Time `db:"suppressed_until"`
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(database *sqlx.DB) *StoryRepository {
	return &StoryRepository{db: database}
}

// CreateStory inserts a new story. The caller sets the initial relevance
// score; a story is created exactly once, on first relevance match.
func (r *StoryRepository) CreateStory(ctx context.Context, story *domain.Story) error {
	if story.FirstSeenAt.IsZero() {
		story.FirstSeenAt = time.Now()
	}
	if story.Date.IsZero() {
		story.Date = story.FirstSeenAt
	}

	query := `
		INSERT INTO stories (
			id, title, url, source_id, score, rank, date, reason,
			relevance_score, notification_sent, first_seen_at
		) VALUES (
			:id, :title, :url, :source_id, :score, :rank, :date, :reason,
			:relevance_score, :notification_sent, :first_seen_at
		)
	`
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		_, err := r.db.NamedExecContext(ctx, query, fromDomainStory(story))
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("create story: %w", err)}
		}
		return nil
	})
}

// GetStory retrieves a story by ID
func (r *StoryRepository) GetStory(ctx context.Context, id string) (*domain.Story, error) {
	var row storySQL
	err := r.db.GetContext(ctx, &row, "SELECT * FROM stories WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get story %s: %w", id, ErrStoryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get story %s: %w", id, err)
	}
	return toDomainStory(&row), nil
}

// StoryExists checks if a story with the given id is already persisted
func (r *StoryRepository) StoryExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM stories WHERE id = ?)", id)
	if err != nil {
		return false, fmt.Errorf("check story exists: %w", err)
	}
	return exists, nil
}

// GetUnsentStories retrieves stories pending delivery: not yet notified and
// not suppressed as of now.
func (r *StoryRepository) GetUnsentStories(ctx context.Context, now time.Time) ([]domain.Story, error) {
	query := `
		SELECT * FROM stories
		WHERE notification_sent = 0
		AND (suppressed_until IS NULL OR suppressed_until <= ?)
		ORDER BY relevance_score DESC, score DESC
	`
	var rows []storySQL
	if err := r.db.SelectContext(ctx, &rows, query, now); err != nil {
		return nil, fmt.Errorf("get unsent stories: %w", err)
	}

	stories := make([]domain.Story, len(rows))
	for i := range rows {
		stories[i] = *toDomainStory(&rows[i])
	}
	return stories, nil
}

// GetTopStories retrieves the highest-ranked stories regardless of delivery state
func (r *StoryRepository) GetTopStories(ctx context.Context, limit int) ([]domain.Story, error) {
	query := `
		SELECT * FROM stories
		ORDER BY relevance_score DESC, score DESC
		LIMIT ?
	`
	var rows []storySQL
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("get top stories: %w", err)
	}

	stories := make([]domain.Story, len(rows))
	for i := range rows {
		stories[i] = *toDomainStory(&rows[i])
	}
	return stories, nil
}

// UpdateStoryScore persists the scoring engine's output for a story
func (r *StoryRepository) UpdateStoryScore(ctx context.Context, id string, relevance int, suppressedUntil *time.Time) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		res, err := r.db.ExecContext(ctx,
			"UPDATE stories SET relevance_score = ?, suppressed_until = ? WHERE id = ?",
			relevance, suppressedUntil, id)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("update story score: %w", err)}
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return &criticalError{err: fmt.Errorf("update story score %s: %w", id, ErrStoryNotFound)}
		}
		return nil
	})
}

// MarkNotified flags a story as delivered
func (r *StoryRepository) MarkNotified(ctx context.Context, id string, at time.Time) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			"UPDATE stories SET notification_sent = 1, last_notified_at = ? WHERE id = ?", at, id)
		if err != nil {
			if isLockError(err) {
				return err
			}
			return &criticalError{err: fmt.Errorf("mark story notified: %w", err)}
		}
		return nil
	})
}

func fromDomainStory(story *domain.Story) *storySQL {
	return &storySQL{
		ID:               story.ID,
		Title:            story.Title,
		URL:              story.URL,
		SourceID:         story.SourceID,
		Score:            story.Score,
		Rank:             story.Rank,
		Date:             story.Date,
		Reason:           story.Reason,
		RelevanceScore:   story.RelevanceScore,
		NotificationSent: story.NotificationSent,
		FirstSeenAt:      story.FirstSeenAt,
		LastNotifiedAt:   story.LastNotifiedAt,
		SuppressedUntil:  story.SuppressedUntil,
	}
}

func toDomainStory(row *storySQL) *domain.Story {
	return &domain.Story{
		ID:               row.ID,
		Title:            row.Title,
		URL:              row.URL,
		SourceID:         row.SourceID,
		Score:            row.Score,
		Rank:             row.Rank,
		Date:             row.Date,
		Reason:           row.Reason,
		RelevanceScore:   row.RelevanceScore,
		NotificationSent: row.NotificationSent,
		FirstSeenAt:      row.FirstSeenAt,
		LastNotifiedAt:   row.LastNotifiedAt,
		SuppressedUntil:  row.SuppressedUntil,
	}
}
