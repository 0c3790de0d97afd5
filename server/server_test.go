package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyscout/pkg/domain"
	"storyscout/pkg/scheduler"
	"storyscout/pkg/scoring"
	"storyscout/server/mocks"
)

func testServer(t *testing.T, stories Stories, topics Topics, feedback Feedback, trigger Trigger, verifier Verifier) *httptest.Server {
	t.Helper()

	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return ":0", time.Second },
	}
	srv := New(cfg, stories, topics, feedback, trigger, verifier, "test", false)
	ts := httptest.NewServer(srv.router)
	t.Cleanup(ts.Close)
	return ts
}

func TestServer_Status(t *testing.T) {
	ts := testServer(t, &mocks.StoriesMock{}, &mocks.TopicsMock{}, &mocks.FeedbackMock{}, &mocks.TriggerMock{}, nil)

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "test", status["version"])
}

func TestServer_Ping(t *testing.T) {
	ts := testServer(t, &mocks.StoriesMock{}, &mocks.TopicsMock{}, &mocks.FeedbackMock{}, &mocks.TriggerMock{}, nil)

	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Stories(t *testing.T) {
	stories := &mocks.StoriesMock{
		GetTopStoriesFunc: func(ctx context.Context, limit int) ([]domain.Story, error) {
			assert.Equal(t, 3, limit)
			return []domain.Story{{ID: "s1", Title: "Story One", RelevanceScore: 250}}, nil
		},
	}
	ts := testServer(t, stories, &mocks.TopicsMock{}, &mocks.FeedbackMock{}, &mocks.TriggerMock{}, nil)

	resp, err := http.Get(ts.URL + "/api/v1/stories?limit=3")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []domain.Story
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].ID)
}

func TestServer_Stories_BadLimit(t *testing.T) {
	ts := testServer(t, &mocks.StoriesMock{}, &mocks.TopicsMock{}, &mocks.FeedbackMock{}, &mocks.TriggerMock{}, nil)

	resp, err := http.Get(ts.URL + "/api/v1/stories?limit=bogus")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Story(t *testing.T) {
	stories := &mocks.StoriesMock{
		GetStoryFunc: func(ctx context.Context, id string) (*domain.Story, error) {
			if id == "s1" {
				return &domain.Story{ID: "s1", Title: "Story One"}, nil
			}
			return nil, errors.New("story not found")
		},
	}
	ts := testServer(t, stories, &mocks.TopicsMock{}, &mocks.FeedbackMock{}, &mocks.TriggerMock{}, nil)

	resp, err := http.Get(ts.URL + "/api/v1/stories/s1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/v1/stories/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Topics(t *testing.T) {
	topics := &mocks.TopicsMock{
		GetTopicsFunc: func(ctx context.Context) ([]domain.Topic, error) {
			return []domain.Topic{{ID: 1, Name: "go", Score: 70}}, nil
		},
	}
	ts := testServer(t, &mocks.StoriesMock{}, topics, &mocks.FeedbackMock{}, &mocks.TriggerMock{}, nil)

	resp, err := http.Get(ts.URL + "/api/v1/topics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []domain.Topic
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "go", got[0].Name)
}

func TestServer_Feedback(t *testing.T) {
	feedback := &mocks.FeedbackMock{
		RecordFeedbackFunc: func(ctx context.Context, req scoring.FeedbackRequest) (*scoring.Computation, error) {
			return &scoring.Computation{RelevanceScore: 250}, nil
		},
	}
	ts := testServer(t, &mocks.StoriesMock{}, &mocks.TopicsMock{}, feedback, &mocks.TriggerMock{}, nil)

	body := `{"story_id": "s1", "action": "LIKE", "source": "web"}`
	resp, err := http.Post(ts.URL+"/api/v1/feedback", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, feedback.RecordFeedbackCalls(), 1)
	req := feedback.RecordFeedbackCalls()[0].Req
	assert.Equal(t, "s1", req.StoryID)
	assert.Equal(t, domain.FeedbackLike, req.Action)
	// confidence defaults from the action when not supplied
	assert.Equal(t, domain.ConfidenceExplicit, req.Confidence)
	assert.Equal(t, "web", req.Source)
}

func TestServer_Feedback_Validation(t *testing.T) {
	ts := testServer(t, &mocks.StoriesMock{}, &mocks.TopicsMock{}, &mocks.FeedbackMock{}, &mocks.TriggerMock{}, nil)

	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{`},
		{"unknown action", `{"story_id": "s1", "action": "UPVOTE"}`},
		{"unknown confidence", `{"story_id": "s1", "action": "LIKE", "confidence": "certain"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/v1/feedback", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestServer_FeedbackLink(t *testing.T) {
	verifier := &mocks.VerifierMock{
		VerifyFunc: func(token string) (string, string, error) {
			if token == "good" {
				return "s1", "LIKE", nil
			}
			return "", "", errors.New("invalid token")
		},
	}
	feedback := &mocks.FeedbackMock{
		RecordFeedbackFunc: func(ctx context.Context, req scoring.FeedbackRequest) (*scoring.Computation, error) {
			return &scoring.Computation{RelevanceScore: 250}, nil
		},
	}
	ts := testServer(t, &mocks.StoriesMock{}, &mocks.TopicsMock{}, feedback, &mocks.TriggerMock{}, verifier)

	resp, err := http.Get(ts.URL + "/feedback/good")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, feedback.RecordFeedbackCalls(), 1)
	req := feedback.RecordFeedbackCalls()[0].Req
	assert.Equal(t, "s1", req.StoryID)
	assert.Equal(t, "link", req.Source)

	resp, err = http.Get(ts.URL + "/feedback/forged")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestServer_FeedbackLink_NotConfigured(t *testing.T) {
	ts := testServer(t, &mocks.StoriesMock{}, &mocks.TopicsMock{}, &mocks.FeedbackMock{}, &mocks.TriggerMock{}, nil)

	resp, err := http.Get(ts.URL + "/feedback/any")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Scan(t *testing.T) {
	t.Run("triggered", func(t *testing.T) {
		trigger := &mocks.TriggerMock{RunNowFunc: func(ctx context.Context) error { return nil }}
		ts := testServer(t, &mocks.StoriesMock{}, &mocks.TopicsMock{}, &mocks.FeedbackMock{}, trigger, nil)

		resp, err := http.Post(ts.URL+"/api/v1/scan", "application/json", http.NoBody)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, trigger.RunNowCalls(), 1)
	})

	t.Run("conflict while running", func(t *testing.T) {
		trigger := &mocks.TriggerMock{RunNowFunc: func(ctx context.Context) error { return scheduler.ErrAlreadyRunning }}
		ts := testServer(t, &mocks.StoriesMock{}, &mocks.TopicsMock{}, &mocks.FeedbackMock{}, trigger, nil)

		resp, err := http.Post(ts.URL+"/api/v1/scan", "application/json", http.NoBody)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}
