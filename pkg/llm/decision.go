package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"storyscout/pkg/config"
	"storyscout/pkg/domain"
)

// DecisionOracle asks an LLM to pick the next browsing action for a page
// snapshot. It returns the raw model output; the crawl controller owns
// sanitization since the output is untrusted.
type DecisionOracle struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// NewDecisionOracle creates a decision oracle against an OpenAI-compatible endpoint.
func NewDecisionOracle(cfg config.LLMConfig) *DecisionOracle {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	systemMsg := cfg.DecisionPrompt
	if systemMsg == "" {
		systemMsg = defaultDecisionPrompt
	}

	return &DecisionOracle{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
	}
}

// default system prompt for browsing decisions
const defaultDecisionPrompt = `You are browsing a website looking for interesting article pages.
Given a page snapshot, respond with a single JSON object and nothing else:
{"action": "...", "target": "...", "reason": "..."}

Actions:
- "click": follow one of the listed links; "target" must be the link id exactly as listed (e.g. "link-3")
- "extract": the current page itself is an article worth collecting; omit "target"
- "stop": nothing promising here; omit "target"

Rules:
- Prefer "extract" on article pages, "click" on listing/index pages.
- Never invent link ids. If no listed link looks promising, use "stop".
- "reason" is one short sentence.`

// Decide sends the snapshot to the model and returns its raw answer.
func (o *DecisionOracle) Decide(ctx context.Context, snap *domain.Snapshot) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.config.Model,
		Temperature: float32(o.config.Temperature),
		MaxTokens:   o.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: o.systemMsg},
			{Role: openai.ChatMessageRoleUser, Content: buildSnapshotPrompt(snap)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("decision oracle request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from decision oracle")
	}
	return resp.Choices[0].Message.Content, nil
}

// buildSnapshotPrompt renders the snapshot for the model.
func buildSnapshotPrompt(snap *domain.Snapshot) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Current page: %s\n", snap.URL))
	if snap.Title != "" {
		sb.WriteString(fmt.Sprintf("Title: %s\n", snap.Title))
	}

	if len(snap.Headings) > 0 {
		sb.WriteString("\nHeadings:\n")
		for _, h := range snap.Headings {
			sb.WriteString(fmt.Sprintf("- %s\n", h))
		}
	}

	if len(snap.Snippets) > 0 {
		sb.WriteString("\nText snippets:\n")
		for _, s := range snap.Snippets {
			sb.WriteString(fmt.Sprintf("- %s\n", s))
		}
	}

	if len(snap.Links) > 0 {
		sb.WriteString("\nLinks:\n")
		for _, l := range snap.Links {
			text := l.Text
			if text == "" {
				text = "(no text)"
			}
			sb.WriteString(fmt.Sprintf("%s: %s -> %s\n", l.ID, text, l.Href))
		}
	}

	sb.WriteString("\nChoose the next action. Respond with the JSON object only.")
	return sb.String()
}
