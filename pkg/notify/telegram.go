// Package notify delivers story digests to external sinks.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
)

// Telegram posts messages to a chat via the bot API
type Telegram struct {
	token   string
	chatID  string
	baseURL string // overridable for tests
	client  *http.Client
}

// TelegramParams holds Telegram sink configuration
type TelegramParams struct {
	Token   string
	ChatID  string
	Timeout time.Duration
	BaseURL string
}

// NewTelegram creates a Telegram notifier. Timeout of zero defaults to 10s.
func NewTelegram(params TelegramParams) *Telegram {
	if params.Timeout <= 0 {
		params.Timeout = 10 * time.Second
	}
	if params.BaseURL == "" {
		params.BaseURL = "https://api.telegram.org"
	}
	return &Telegram{
		token:   params.Token,
		chatID:  params.ChatID,
		baseURL: strings.TrimSuffix(params.BaseURL, "/"),
		client:  &http.Client{Timeout: params.Timeout},
	}
}

// Enabled reports whether the sink is configured to send anything
func (t *Telegram) Enabled() bool {
	return t.token != "" && t.chatID != ""
}

// Send posts a message to the configured chat. HTML formatting is used so
// story links can be embedded as anchors.
func (t *Telegram) Send(ctx context.Context, message string) error {
	if !t.Enabled() {
		lgr.Printf("[DEBUG] telegram sink not configured, dropping message")
		return nil
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	form := url.Values{}
	form.Set("chat_id", t.chatID)
	form.Set("text", message)
	form.Set("parse_mode", "HTML")
	form.Set("disable_web_page_preview", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram responded %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return nil
}
