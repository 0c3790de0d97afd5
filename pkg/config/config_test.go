package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
llm:
  endpoint: "http://localhost:11434/v1"
  model: "llama3"
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "file:storyscout.db?cache=shared&mode=rwc&_txlock=immediate", cfg.Database.DSN)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.Schedule.ScanInterval)
	assert.Equal(t, 5, cfg.Schedule.DeliveryLimit)
	assert.InDelta(t, 0.3, cfg.LLM.Temperature, 0.001)
	assert.Equal(t, 500, cfg.LLM.MaxTokens)
	assert.Equal(t, 10, cfg.Crawl.MaxPages)
	assert.Equal(t, 10, cfg.Crawl.MaxClicks)
	assert.Equal(t, 3, cfg.Crawl.MaxDepth)
	assert.Equal(t, 5, cfg.Crawl.MaxCandidates)
	assert.Equal(t, 2*time.Minute, cfg.Crawl.Timeout)
	assert.Equal(t, "StoryScout/1.0", cfg.Crawl.UserAgent)
	assert.Equal(t, 10*time.Second, cfg.Telegram.Timeout)
	assert.Equal(t, 7*24*time.Hour, cfg.Feedback.TokenTTL)
}

func TestLoad_FullConfig(t *testing.T) {
	content := `
server:
  listen: ":9090"
  timeout: 45s
schedule:
  scan_interval: 30m
  delivery_limit: 3
llm:
  endpoint: "http://localhost:11434/v1"
  model: "llama3"
  temperature: 0.7
  interests:
    - "go programming"
    - "databases"
crawl:
  max_pages: 20
  seeds:
    - name: "blog"
      url: "https://blog.example.com/"
      allowlist: ["blog.example.com"]
feeds:
  - name: "hn"
    url: "https://news.ycombinator.com/rss"
telegram:
  token: "bot-token"
  chat_id: "12345"
feedback:
  secret: "super-secret"
  base_url: "https://scout.example.com"
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, 30*time.Minute, cfg.Schedule.ScanInterval)
	assert.Equal(t, 3, cfg.Schedule.DeliveryLimit)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.001)
	assert.Equal(t, []string{"go programming", "databases"}, cfg.LLM.Interests)
	assert.Equal(t, 20, cfg.Crawl.MaxPages)
	require.Len(t, cfg.Crawl.Seeds, 1)
	assert.Equal(t, "blog", cfg.Crawl.Seeds[0].Name)
	assert.Equal(t, []string{"blog.example.com"}, cfg.Crawl.Seeds[0].Allowlist)
	require.Len(t, cfg.Feeds, 1)
	assert.Equal(t, "hn", cfg.Feeds[0].Name)
	assert.Equal(t, "bot-token", cfg.Telegram.Token)
	assert.Equal(t, "https://scout.example.com", cfg.Feedback.BaseURL)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_LLM_KEY", "secret-key-from-env")

	content := minimalConfig + `  api_key: "${TEST_LLM_KEY}"
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)
	assert.Equal(t, "secret-key-from-env", cfg.LLM.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "missing llm endpoint",
			content: "llm:\n  model: llama3\n",
			errMsg:  "llm.endpoint is required",
		},
		{
			name:    "missing llm model",
			content: "llm:\n  endpoint: http://localhost/v1\n",
			errMsg:  "llm.model is required",
		},
		{
			name:    "temperature out of range",
			content: minimalConfig + "  temperature: 3.5\n",
			errMsg:  "llm.temperature must be between 0 and 2",
		},
		{
			name:    "crawl timeout too small",
			content: minimalConfig + "crawl:\n  timeout: 100ms\n",
			errMsg:  "crawl.timeout must be at least 1 second",
		},
		{
			name:    "seed without url",
			content: minimalConfig + "crawl:\n  seeds:\n    - name: blog\n",
			errMsg:  "crawl.seeds[0].url is required",
		},
		{
			name:    "feed without name",
			content: minimalConfig + "feeds:\n  - url: https://example.com/rss\n",
			errMsg:  "feeds[0].name is required",
		},
		{
			name:    "feedback base url without secret",
			content: minimalConfig + "feedback:\n  base_url: https://scout.example.com\n",
			errMsg:  "feedback.secret is required",
		},
		{
			name:    "server timeout too small",
			content: minimalConfig + "server:\n  timeout: 10ms\n",
			errMsg:  "server timeout must be at least 1 second",
		},
		{
			name:    "invalid yaml",
			content: "llm: [broken",
			errMsg:  "parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorContains(t, err, "read config file")
}

func TestConfig_Getters(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":8080", listen)
	assert.Equal(t, 30*time.Second, timeout)

	llm := cfg.GetLLMConfig()
	assert.Equal(t, "llama3", llm.Model)

	crawl := cfg.GetCrawlConfig()
	assert.Equal(t, 10, crawl.MaxPages)
}
