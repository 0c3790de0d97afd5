package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyscout/pkg/config"
	"storyscout/pkg/domain"
)

// fakeLLM serves canned chat completion responses, one per request
func fakeLLM(t *testing.T, responses ...string) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(calls.Add(1)) - 1
		require.Less(t, n, len(responses), "more llm calls than canned responses")

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: responses[n]}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

func testLLMConfig(endpoint string) config.LLMConfig {
	return config.LLMConfig{
		Endpoint:    endpoint + "/v1",
		APIKey:      "test-key",
		Model:       "test-model",
		Temperature: 0.3,
		MaxTokens:   200,
	}
}

func TestDecisionOracle_Decide(t *testing.T) {
	ts, calls := fakeLLM(t, `{"action": "click", "target": "link-1", "reason": "listing"}`)

	oracle := NewDecisionOracle(testLLMConfig(ts.URL))
	raw, err := oracle.Decide(context.Background(), &domain.Snapshot{
		URL:   "https://blog.example.com/",
		Title: "Example Blog",
		Links: []domain.PageLink{{ID: "link-1", Text: "A story", Href: "https://blog.example.com/a"}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"action": "click", "target": "link-1", "reason": "listing"}`, raw)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDecisionOracle_Decide_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	oracle := NewDecisionOracle(testLLMConfig(ts.URL))
	_, err := oracle.Decide(context.Background(), &domain.Snapshot{URL: "https://blog.example.com/"})
	assert.ErrorContains(t, err, "decision oracle request failed")
}

func TestRelevanceOracle_Check(t *testing.T) {
	t.Run("relevant with topics", func(t *testing.T) {
		ts, _ := fakeLLM(t, `{"relevant": true, "reason": "about Go internals", "topics": ["Go", "go", "Runtime", "extra", "more"]}`)

		oracle := NewRelevanceOracle(testLLMConfig(ts.URL))
		match, err := oracle.Check(context.Background(), domain.StoryCandidate{Title: "Go story", URL: "https://example.com/go"})
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "about Go internals", match.Reason)
		// topics are lowercased, deduped and capped at three
		assert.Equal(t, []string{"go", "runtime", "extra"}, match.Topics)
	})

	t.Run("not relevant returns nil without error", func(t *testing.T) {
		ts, _ := fakeLLM(t, `{"relevant": false, "reason": "off topic", "topics": ["sports"]}`)

		oracle := NewRelevanceOracle(testLLMConfig(ts.URL))
		match, err := oracle.Check(context.Background(), domain.StoryCandidate{Title: "Off topic"})
		require.NoError(t, err)
		assert.Nil(t, match)
	})

	t.Run("retries on invalid json", func(t *testing.T) {
		ts, calls := fakeLLM(t,
			"no json here at all",
			`{"relevant": true, "reason": "second try worked", "topics": ["go"]}`,
		)

		oracle := NewRelevanceOracle(testLLMConfig(ts.URL))
		match, err := oracle.Check(context.Background(), domain.StoryCandidate{Title: "x"})
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "second try worked", match.Reason)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("gives up after three attempts", func(t *testing.T) {
		ts, calls := fakeLLM(t, "junk", "junk", "junk")

		oracle := NewRelevanceOracle(testLLMConfig(ts.URL))
		_, err := oracle.Check(context.Background(), domain.StoryCandidate{Title: "x"})
		assert.ErrorContains(t, err, "after 3 attempts")
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("reason html is stripped", func(t *testing.T) {
		ts, _ := fakeLLM(t, `{"relevant": true, "reason": "plain <script>alert(1)</script> reason", "topics": ["go"]}`)

		oracle := NewRelevanceOracle(testLLMConfig(ts.URL))
		match, err := oracle.Check(context.Background(), domain.StoryCandidate{Title: "x"})
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.NotContains(t, match.Reason, "<script>")
	})

	t.Run("verdict json embedded in prose", func(t *testing.T) {
		ts, _ := fakeLLM(t, "Here is my verdict:\n```json\n{\"relevant\": true, \"reason\": \"ok\", \"topics\": [\"go\"]}\n```")

		oracle := NewRelevanceOracle(testLLMConfig(ts.URL))
		match, err := oracle.Check(context.Background(), domain.StoryCandidate{Title: "x"})
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "ok", match.Reason)
	})
}

func TestBuildSnapshotPrompt(t *testing.T) {
	snap := &domain.Snapshot{
		URL:      "https://blog.example.com/",
		Title:    "Example Blog",
		Headings: []string{"Latest"},
		Snippets: []string{"Some text"},
		Links: []domain.PageLink{
			{ID: "link-0", Text: "A story", Href: "https://blog.example.com/a"},
			{ID: "link-1", Href: "https://blog.example.com/b"},
		},
	}

	prompt := buildSnapshotPrompt(snap)
	assert.Contains(t, prompt, "Current page: https://blog.example.com/")
	assert.Contains(t, prompt, "Title: Example Blog")
	assert.Contains(t, prompt, "- Latest")
	assert.Contains(t, prompt, "link-0: A story -> https://blog.example.com/a")
	assert.Contains(t, prompt, fmt.Sprintf("%s: (no text) -> %s", "link-1", "https://blog.example.com/b"))
}
