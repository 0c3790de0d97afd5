package scoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyscout/pkg/domain"
	"storyscout/pkg/scoring/mocks"
)

func TestCompute_NoEvents(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	story := &domain.Story{ID: "s1", URL: "https://example.com/post"}

	comp := Compute(story, nil, now)
	assert.Equal(t, InitialRelevanceScore, comp.RelevanceScore)
	assert.Nil(t, comp.SuppressedUntil)
	assert.Empty(t, comp.Reasons)
}

func TestCompute_Decay(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	story := &domain.Story{ID: "s1"} // no URL, no domain bias

	tests := []struct {
		name     string
		age      time.Duration
		expected int
	}{
		{"fresh like counts in full", 0, InitialRelevanceScore + 100},
		{"one half-life halves the contribution", 36 * time.Hour, InitialRelevanceScore + 50},
		{"two half-lives quarter it", 72 * time.Hour, InitialRelevanceScore + 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := []domain.FeedbackEvent{{
				ID:         1,
				StoryID:    "s1",
				Action:     domain.FeedbackLike,
				Confidence: domain.ConfidenceExplicit,
				CreatedAt:  now.Add(-tt.age),
			}}
			comp := Compute(story, events, now)
			assert.Equal(t, tt.expected, comp.RelevanceScore)
		})
	}
}

func TestCompute_EventWeights(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	story := &domain.Story{ID: "s1"}

	tests := []struct {
		action     domain.FeedbackAction
		confidence domain.FeedbackConfidence
		expected   int
	}{
		{domain.FeedbackLike, domain.ConfidenceExplicit, InitialRelevanceScore + 100},
		{domain.FeedbackDislike, domain.ConfidenceExplicit, InitialRelevanceScore - 100},
		{domain.FeedbackSave, domain.ConfidenceExplicit, InitialRelevanceScore + 150},
		{domain.FeedbackOpened, domain.ConfidenceImplicit, InitialRelevanceScore + 30},
		{domain.FeedbackIgnored, domain.ConfidenceImplicit, InitialRelevanceScore - 20},
		// mismatched action/confidence pairs contribute nothing
		{domain.FeedbackLike, domain.ConfidenceImplicit, InitialRelevanceScore},
		{domain.FeedbackOpened, domain.ConfidenceExplicit, InitialRelevanceScore},
	}

	for _, tt := range tests {
		t.Run(string(tt.action)+"/"+string(tt.confidence), func(t *testing.T) {
			events := []domain.FeedbackEvent{{Action: tt.action, Confidence: tt.confidence, CreatedAt: now}}
			comp := Compute(story, events, now)
			assert.Equal(t, tt.expected, comp.RelevanceScore)
		})
	}
}

func TestCompute_DomainAndSourceBias(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	story := &domain.Story{ID: "s1", URL: "https://www.example.com/post"}

	events := []domain.FeedbackEvent{{
		Action:     domain.FeedbackLike,
		Confidence: domain.ConfidenceExplicit,
		Source:     "telegram",
		CreatedAt:  now,
	}}

	// base 150 + 100 contribution + 10 domain bias + 5 source bias
	comp := Compute(story, events, now)
	assert.Equal(t, 265, comp.RelevanceScore)
}

func TestCompute_FutureTimestampClamped(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	story := &domain.Story{ID: "s1"}

	events := []domain.FeedbackEvent{{
		Action:     domain.FeedbackLike,
		Confidence: domain.ConfidenceExplicit,
		CreatedAt:  now.Add(3 * time.Hour), // clock skew, treated as age zero
	}}

	comp := Compute(story, events, now)
	assert.Equal(t, InitialRelevanceScore+100, comp.RelevanceScore)
}

func TestCompute_ReplayIsDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	story := &domain.Story{ID: "s1", URL: "https://example.com/post"}

	events := []domain.FeedbackEvent{
		{Action: domain.FeedbackLike, Confidence: domain.ConfidenceExplicit, CreatedAt: now.Add(-48 * time.Hour)},
		{Action: domain.FeedbackOpened, Confidence: domain.ConfidenceImplicit, CreatedAt: now.Add(-24 * time.Hour)},
		{Action: domain.FeedbackDislike, Confidence: domain.ConfidenceExplicit, CreatedAt: now.Add(-1 * time.Hour)},
	}

	first := Compute(story, events, now)
	second := Compute(story, events, now)
	assert.Equal(t, first.RelevanceScore, second.RelevanceScore)
	assert.Equal(t, first.SuppressedUntil, second.SuppressedUntil)
}

func TestCompute_Suppression(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("deep negative score sets suppression window", func(t *testing.T) {
		story := &domain.Story{ID: "s1"}
		// 4 fresh dislikes: 150 - 400 = -250, window round(2.5)*2h = 6h
		var events []domain.FeedbackEvent
		for i := 0; i < 4; i++ {
			events = append(events, domain.FeedbackEvent{Action: domain.FeedbackDislike, Confidence: domain.ConfidenceExplicit, CreatedAt: now})
		}
		comp := Compute(story, events, now)
		assert.Equal(t, -250, comp.RelevanceScore)
		require.NotNil(t, comp.SuppressedUntil)
		assert.Equal(t, now.Add(6*time.Hour), *comp.SuppressedUntil)
	})

	t.Run("window is clamped to 48h", func(t *testing.T) {
		story := &domain.Story{ID: "s1"}
		var events []domain.FeedbackEvent
		for i := 0; i < 30; i++ { // 150 - 3000 = -2850, raw window 58h
			events = append(events, domain.FeedbackEvent{Action: domain.FeedbackDislike, Confidence: domain.ConfidenceExplicit, CreatedAt: now})
		}
		comp := Compute(story, events, now)
		require.NotNil(t, comp.SuppressedUntil)
		assert.Equal(t, now.Add(48*time.Hour), *comp.SuppressedUntil)
	})

	t.Run("positive score clears active suppression", func(t *testing.T) {
		suppressed := now.Add(10 * time.Hour)
		story := &domain.Story{ID: "s1", SuppressedUntil: &suppressed}
		events := []domain.FeedbackEvent{{Action: domain.FeedbackLike, Confidence: domain.ConfidenceExplicit, CreatedAt: now}}
		comp := Compute(story, events, now)
		assert.Nil(t, comp.SuppressedUntil)
	})

	t.Run("mildly negative score keeps existing suppression", func(t *testing.T) {
		suppressed := now.Add(10 * time.Hour)
		story := &domain.Story{ID: "s1", SuppressedUntil: &suppressed}
		// 150 - 200 = -50, above the suppression threshold but not positive
		events := []domain.FeedbackEvent{
			{Action: domain.FeedbackDislike, Confidence: domain.ConfidenceExplicit, CreatedAt: now},
			{Action: domain.FeedbackDislike, Confidence: domain.ConfidenceExplicit, CreatedAt: now},
		}
		comp := Compute(story, events, now)
		require.NotNil(t, comp.SuppressedUntil)
		assert.Equal(t, suppressed, *comp.SuppressedUntil)
	})
}

func TestEngine_RecordFeedback(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	story := &domain.Story{ID: "s1", URL: "https://example.com/post"}

	var savedEvents []domain.FeedbackEvent
	store := &mocks.StoreMock{
		GetStoryFunc: func(ctx context.Context, id string) (*domain.Story, error) {
			return story, nil
		},
		AddEventFunc: func(ctx context.Context, ev *domain.FeedbackEvent) error {
			ev.ID = int64(len(savedEvents) + 1)
			savedEvents = append(savedEvents, *ev)
			return nil
		},
		GetEventsFunc: func(ctx context.Context, storyID string) ([]domain.FeedbackEvent, error) {
			return savedEvents, nil
		},
		UpdateStoryScoreFunc: func(ctx context.Context, id string, relevance int, suppressedUntil *time.Time) error {
			return nil
		},
		GetStoryTopicsFunc: func(ctx context.Context, storyID string) ([]domain.Topic, error) {
			return []domain.Topic{{ID: 1, Name: "go"}, {ID: 2, Name: "databases"}}, nil
		},
		IncrementTopicScoreFunc: func(ctx context.Context, topicID int64, delta float64) error {
			return nil
		},
	}

	e := NewEngine(store)
	e.now = func() time.Time { return now }

	comp, err := e.RecordFeedback(context.Background(), FeedbackRequest{
		StoryID:    "s1",
		Action:     domain.FeedbackLike,
		Confidence: domain.ConfidenceExplicit,
		Source:     "telegram",
	})
	require.NoError(t, err)
	assert.Equal(t, 265, comp.RelevanceScore)

	require.Len(t, store.AddEventCalls(), 1)
	assert.Equal(t, now, store.AddEventCalls()[0].Ev.CreatedAt)

	// full explicit delta propagated to every linked topic, not split
	calls := store.IncrementTopicScoreCalls()
	require.Len(t, calls, 2)
	assert.InDelta(t, 70.0, calls[0].Delta, 0.001)
	assert.InDelta(t, 70.0, calls[1].Delta, 0.001)
}

func TestEngine_RecordFeedback_Validation(t *testing.T) {
	e := NewEngine(&mocks.StoreMock{})

	_, err := e.RecordFeedback(context.Background(), FeedbackRequest{StoryID: "s1", Action: "UPVOTE", Confidence: domain.ConfidenceExplicit})
	assert.ErrorContains(t, err, "unknown feedback action")

	_, err = e.RecordFeedback(context.Background(), FeedbackRequest{StoryID: "s1", Action: domain.FeedbackLike, Confidence: "certain"})
	assert.ErrorContains(t, err, "unknown feedback confidence")
}

func TestEngine_RecordFeedback_ImplicitTopicDelta(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	story := &domain.Story{ID: "s1"}

	store := &mocks.StoreMock{
		GetStoryFunc:         func(ctx context.Context, id string) (*domain.Story, error) { return story, nil },
		AddEventFunc:         func(ctx context.Context, ev *domain.FeedbackEvent) error { return nil },
		GetEventsFunc:        func(ctx context.Context, storyID string) ([]domain.FeedbackEvent, error) { return nil, nil },
		UpdateStoryScoreFunc: func(ctx context.Context, id string, relevance int, suppressedUntil *time.Time) error { return nil },
		GetStoryTopicsFunc: func(ctx context.Context, storyID string) ([]domain.Topic, error) {
			return []domain.Topic{{ID: 1, Name: "go"}}, nil
		},
		IncrementTopicScoreFunc: func(ctx context.Context, topicID int64, delta float64) error { return nil },
	}

	e := NewEngine(store)
	e.now = func() time.Time { return now }

	_, err := e.RecordFeedback(context.Background(), FeedbackRequest{
		StoryID:    "s1",
		Action:     domain.FeedbackOpened,
		Confidence: domain.ConfidenceImplicit,
	})
	require.NoError(t, err)

	calls := store.IncrementTopicScoreCalls()
	require.Len(t, calls, 1)
	assert.InDelta(t, 12.0, calls[0].Delta, 0.001) // 0.3 * 100 * 0.4
}

func TestEngine_SelectForDelivery(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	eventsByStory := map[string][]domain.FeedbackEvent{
		"s1": {{Action: domain.FeedbackLike, Confidence: domain.ConfidenceExplicit, CreatedAt: now}},
		"s2": {},
		"s3": {{Action: domain.FeedbackSave, Confidence: domain.ConfidenceExplicit, CreatedAt: now}},
	}

	store := &mocks.StoreMock{
		GetUnsentStoriesFunc: func(ctx context.Context, at time.Time) ([]domain.Story, error) {
			return []domain.Story{
				{ID: "s1", Score: 10},
				{ID: "s2", Score: 99},
				{ID: "s3", Score: 1},
			}, nil
		},
		GetEventsFunc: func(ctx context.Context, storyID string) ([]domain.FeedbackEvent, error) {
			return eventsByStory[storyID], nil
		},
		UpdateStoryScoreFunc: func(ctx context.Context, id string, relevance int, suppressedUntil *time.Time) error {
			return nil
		},
	}

	e := NewEngine(store)
	e.now = func() time.Time { return now }

	stories, err := e.SelectForDelivery(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, stories, 2)
	assert.Equal(t, "s3", stories[0].ID) // 300
	assert.Equal(t, "s1", stories[1].ID) // 250
}

func TestEngine_SelectForDelivery_SkipsSuppressedAndFailed(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	store := &mocks.StoreMock{
		GetUnsentStoriesFunc: func(ctx context.Context, at time.Time) ([]domain.Story, error) {
			return []domain.Story{{ID: "bad"}, {ID: "suppressed"}, {ID: "ok"}}, nil
		},
		GetEventsFunc: func(ctx context.Context, storyID string) ([]domain.FeedbackEvent, error) {
			switch storyID {
			case "bad":
				return nil, errors.New("boom")
			case "suppressed":
				// enough dislikes to cross the suppression threshold
				var events []domain.FeedbackEvent
				for i := 0; i < 5; i++ {
					events = append(events, domain.FeedbackEvent{Action: domain.FeedbackDislike, Confidence: domain.ConfidenceExplicit, CreatedAt: now})
				}
				return events, nil
			}
			return nil, nil
		},
		UpdateStoryScoreFunc: func(ctx context.Context, id string, relevance int, suppressedUntil *time.Time) error {
			return nil
		},
	}

	e := NewEngine(store)
	e.now = func() time.Time { return now }

	stories, err := e.SelectForDelivery(context.Background(), 0) // default limit
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, "ok", stories[0].ID)
}

func TestEngine_TieBreakByRawScore(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	store := &mocks.StoreMock{
		GetUnsentStoriesFunc: func(ctx context.Context, at time.Time) ([]domain.Story, error) {
			return []domain.Story{{ID: "low", Score: 5}, {ID: "high", Score: 50}}, nil
		},
		GetEventsFunc: func(ctx context.Context, storyID string) ([]domain.FeedbackEvent, error) {
			return nil, nil // both stay at the initial score
		},
		UpdateStoryScoreFunc: func(ctx context.Context, id string, relevance int, suppressedUntil *time.Time) error {
			return nil
		},
	}

	e := NewEngine(store)
	e.now = func() time.Time { return now }

	stories, err := e.SelectForDelivery(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, stories, 2)
	assert.Equal(t, "high", stories[0].ID)
}

func TestSuppressionWindow(t *testing.T) {
	tests := []struct {
		score    int
		expected time.Duration
	}{
		{-150, 6 * time.Hour},  // round(1.5)*2h = 4h clamps up
		{-400, 8 * time.Hour},  // round(4)*2h
		{-1000, 20 * time.Hour},
		{-5000, 48 * time.Hour}, // clamps down
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, suppressionWindow(tt.score), "score %d", tt.score)
	}
}
