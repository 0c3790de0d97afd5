package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:storyscout.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule struct {
		ScanInterval  time.Duration `yaml:"scan_interval" json:"scan_interval" jsonschema:"default=1h,description=Interval between discovery passes"`
		DeliveryLimit int           `yaml:"delivery_limit" json:"delivery_limit" jsonschema:"default=5,description=Stories delivered per pass"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for browsing decisions and relevance gating"`

	Crawl CrawlConfig `yaml:"crawl" json:"crawl" jsonschema:"description=Autonomous crawl configuration"`

	Feeds []FeedConfig `yaml:"feeds" json:"feeds" jsonschema:"description=RSS/Atom ingestion sources"`

	Telegram TelegramConfig `yaml:"telegram" json:"telegram" jsonschema:"description=Telegram notification sink"`

	Feedback FeedbackConfig `yaml:"feedback" json:"feedback" jsonschema:"description=Signed feedback link settings"`
}

// LLMConfig holds settings shared by the decision and relevance oracles
type LLMConfig struct {
	Endpoint        string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,description=OpenAI-compatible API endpoint"`
	APIKey          string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model           string        `yaml:"model" json:"model" jsonschema:"required,description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature     float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens       int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=500,description=Maximum tokens in response"`
	Timeout         time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	DecisionPrompt  string        `yaml:"decision_prompt" json:"decision_prompt" jsonschema:"description=System prompt for the browsing decision oracle (optional)"`
	RelevancePrompt string        `yaml:"relevance_prompt" json:"relevance_prompt" jsonschema:"description=System prompt for the relevance oracle (optional)"`
	Interests       []string      `yaml:"interests" json:"interests" jsonschema:"description=User interests fed to the relevance oracle"`
}

// CrawlConfig holds safety limits and seeds for autonomous exploration
type CrawlConfig struct {
	Seeds           []CrawlSeed   `yaml:"seeds" json:"seeds" jsonschema:"description=Crawl seed pages"`
	MaxPages        int           `yaml:"max_pages" json:"max_pages" jsonschema:"default=10,description=Maximum pages visited per run"`
	MaxClicks       int           `yaml:"max_clicks" json:"max_clicks" jsonschema:"default=10,description=Maximum links followed per run"`
	MaxDepth        int           `yaml:"max_depth" json:"max_depth" jsonschema:"default=3,description=Maximum link depth from the seed"`
	MaxCandidates   int           `yaml:"max_candidates" json:"max_candidates" jsonschema:"default=5,description=Maximum candidates extracted per run"`
	Timeout         time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=2m,description=Wall-clock budget for a whole run"`
	NavTimeout      time.Duration `yaml:"nav_timeout" json:"nav_timeout" jsonschema:"default=15s,description=Per-page fetch timeout"`
	DecisionTimeout time.Duration `yaml:"decision_timeout" json:"decision_timeout" jsonschema:"default=30s,description=Per-oracle-call timeout"`
	UserAgent       string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=StoryScout/1.0,description=User agent for page fetches"`
}

// CrawlSeed is a single crawl entry point with its domain allowlist
type CrawlSeed struct {
	Name      string   `yaml:"name" json:"name" jsonschema:"required,description=Source id for candidates from this seed"`
	URL       string   `yaml:"url" json:"url" jsonschema:"required,description=Seed page URL"`
	Allowlist []string `yaml:"allowlist" json:"allowlist" jsonschema:"description=Hostnames the crawl may navigate within (seed host when empty)"`
}

// FeedConfig is a single RSS/Atom ingestion source
type FeedConfig struct {
	Name string `yaml:"name" json:"name" jsonschema:"required,description=Source id for candidates from this feed"`
	URL  string `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
}

// TelegramConfig holds the notification sink settings
type TelegramConfig struct {
	Token   string        `yaml:"token" json:"token" jsonschema:"description=Bot token (can use environment variable)"`
	ChatID  string        `yaml:"chat_id" json:"chat_id" jsonschema:"description=Destination chat id"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Send timeout"`
}

// FeedbackConfig holds HMAC-signed feedback link settings
type FeedbackConfig struct {
	Secret   string        `yaml:"secret" json:"secret" jsonschema:"description=HMAC secret for one-click feedback links"`
	BaseURL  string        `yaml:"base_url" json:"base_url" jsonschema:"description=Public base URL the links point at"`
	TokenTTL time.Duration `yaml:"token_ttl" json:"token_ttl" jsonschema:"default=168h,description=How long a feedback link stays valid"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:storyscout.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for schedule
	if cfg.Schedule.ScanInterval == 0 {
		cfg.Schedule.ScanInterval = time.Hour
	}
	if cfg.Schedule.DeliveryLimit == 0 {
		cfg.Schedule.DeliveryLimit = 5
	}

	// set defaults for LLM
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.3
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 500
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}

	// set defaults for crawl
	if cfg.Crawl.MaxPages == 0 {
		cfg.Crawl.MaxPages = 10
	}
	if cfg.Crawl.MaxClicks == 0 {
		cfg.Crawl.MaxClicks = 10
	}
	if cfg.Crawl.MaxDepth == 0 {
		cfg.Crawl.MaxDepth = 3
	}
	if cfg.Crawl.MaxCandidates == 0 {
		cfg.Crawl.MaxCandidates = 5
	}
	if cfg.Crawl.Timeout == 0 {
		cfg.Crawl.Timeout = 2 * time.Minute
	}
	if cfg.Crawl.NavTimeout == 0 {
		cfg.Crawl.NavTimeout = 15 * time.Second
	}
	if cfg.Crawl.DecisionTimeout == 0 {
		cfg.Crawl.DecisionTimeout = 30 * time.Second
	}
	if cfg.Crawl.UserAgent == "" {
		cfg.Crawl.UserAgent = "StoryScout/1.0"
	}

	// set defaults for telegram and feedback links
	if cfg.Telegram.Timeout == 0 {
		cfg.Telegram.Timeout = 10 * time.Second
	}
	if cfg.Feedback.TokenTTL == 0 {
		cfg.Feedback.TokenTTL = 7 * 24 * time.Hour
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate LLM config
	if cfg.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}

	// validate crawl config
	if cfg.Crawl.Timeout < time.Second {
		return fmt.Errorf("crawl.timeout must be at least 1 second")
	}
	for i, seed := range cfg.Crawl.Seeds {
		if seed.Name == "" {
			return fmt.Errorf("crawl.seeds[%d].name is required", i)
		}
		if seed.URL == "" {
			return fmt.Errorf("crawl.seeds[%d].url is required", i)
		}
	}

	// validate feeds
	for i, feed := range cfg.Feeds {
		if feed.Name == "" {
			return fmt.Errorf("feeds[%d].name is required", i)
		}
		if feed.URL == "" {
			return fmt.Errorf("feeds[%d].url is required", i)
		}
	}

	// feedback links require a secret once a public base url is set
	if cfg.Feedback.BaseURL != "" && cfg.Feedback.Secret == "" {
		return fmt.Errorf("feedback.secret is required when feedback.base_url is set")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}

// GetCrawlConfig returns crawl configuration
func (c *Config) GetCrawlConfig() CrawlConfig {
	return c.Crawl
}
