package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sashabaranov/go-openai"

	"storyscout/pkg/config"
	"storyscout/pkg/domain"
)

// Match is a positive relevance verdict. Absence of a match is signaled by a
// nil result, never by an error.
type Match struct {
	Reason string
	Topics []string
}

// RelevanceOracle gates candidates through an LLM: is this story worth
// surfacing to the user at all.
type RelevanceOracle struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
	sanitizer *bluemonday.Policy
}

// NewRelevanceOracle creates a relevance oracle against an OpenAI-compatible endpoint.
func NewRelevanceOracle(cfg config.LLMConfig) *RelevanceOracle {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	systemMsg := cfg.RelevancePrompt
	if systemMsg == "" {
		systemMsg = defaultRelevancePrompt
	}

	return &RelevanceOracle{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// default system prompt for relevance gating
const defaultRelevancePrompt = `You decide whether a story is relevant to the user's interests.
Respond with a single JSON object and nothing else:
{"relevant": true|false, "reason": "one sentence", "topics": ["topic1", "topic2"]}

- "reason" is exactly one sentence explaining the verdict.
- "topics" is 1-3 lowercase keywords describing the story's subject, always present.`

// relevanceResponse is the shape the model is asked to produce.
type relevanceResponse struct {
	Relevant bool     `json:"relevant"`
	Reason   string   `json:"reason"`
	Topics   []string `json:"topics"`
}

// Check asks the model whether a candidate is relevant. A nil result means
// "not relevant"; errors are reserved for transport and parse failures.
func (o *RelevanceOracle) Check(ctx context.Context, cand domain.StoryCandidate) (*Match, error) {
	prompt := o.buildPrompt(cand)

	// retry a couple of times when the model returns invalid JSON
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       o.config.Model,
			Temperature: float32(o.config.Temperature),
			MaxTokens:   o.config.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: o.systemMsg},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("relevance oracle request failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("no response from relevance oracle")
		}

		verdict, err := o.parseResponse(resp.Choices[0].Message.Content)
		if err != nil {
			lastErr = err
			continue
		}

		if !verdict.Relevant {
			return nil, nil
		}
		return &Match{
			Reason: o.sanitizer.Sanitize(strings.TrimSpace(verdict.Reason)),
			Topics: normalizeTopics(verdict.Topics),
		}, nil
	}

	return nil, fmt.Errorf("relevance oracle failed after 3 attempts: %w", lastErr)
}

// buildPrompt renders the candidate and its content signals for the model.
func (o *RelevanceOracle) buildPrompt(cand domain.StoryCandidate) string {
	var sb strings.Builder

	if len(o.config.Interests) > 0 {
		sb.WriteString("User interests:\n")
		sb.WriteString(strings.Join(o.config.Interests, ", "))
		sb.WriteString("\n\n")
	}

	sb.WriteString("Story to evaluate:\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", cand.Title))
	sb.WriteString(fmt.Sprintf("URL: %s\n", cand.URL))
	sb.WriteString(fmt.Sprintf("Source: %s\n", cand.SourceID))
	if cand.Score > 0 {
		sb.WriteString(fmt.Sprintf("Source score: %.0f\n", cand.Score))
	}

	if cand.Signals != nil {
		if cand.Signals.Excerpt != "" {
			sb.WriteString(fmt.Sprintf("Excerpt: %s\n", cand.Signals.Excerpt))
		}
		if cand.Signals.Text != "" {
			text := cand.Signals.Text
			if len(text) > 1000 {
				text = text[:1000] + "..."
			}
			sb.WriteString(fmt.Sprintf("Content: %s\n", text))
		}
	}

	sb.WriteString("\nIs this story relevant? Respond with the JSON object only.")
	return sb.String()
}

// parseResponse extracts the JSON verdict, tolerating surrounding prose.
func (o *RelevanceOracle) parseResponse(content string) (*relevanceResponse, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || start >= end {
		return nil, fmt.Errorf("no json object found in relevance response")
	}

	var verdict relevanceResponse
	if err := json.Unmarshal([]byte(content[start:end+1]), &verdict); err != nil {
		return nil, fmt.Errorf("failed to parse relevance response: %w", err)
	}
	return &verdict, nil
}

// normalizeTopics lowercases, trims and caps the model-provided topics.
func normalizeTopics(topics []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, t := range topics {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == 3 {
			break
		}
	}
	return out
}
