package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"storyscout/pkg/browse"
	"storyscout/pkg/config"
	"storyscout/pkg/crawl"
	"storyscout/pkg/llm"
	"storyscout/pkg/notify"
	"storyscout/pkg/repository"
	"storyscout/pkg/scheduler"
	"storyscout/pkg/scoring"
	"storyscout/pkg/sign"
	"storyscout/pkg/source"
	"storyscout/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"config file path"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	// load .env if present, real environment wins
	if err := godotenv.Load(); err == nil {
		fmt.Println("loaded environment from .env")
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	setupLog(opts.Debug, cfg.LLM.APIKey, cfg.Telegram.Token, cfg.Feedback.Secret)

	lgr.Printf("[INFO] starting storyscout version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	err = run(ctx, cfg, opts)
	cancel()

	if err != nil {
		lgr.Printf("[ERROR] storyscout failed: %v", err)
		os.Exit(1)
	}

	lgr.Printf("[INFO] shutdown complete")
}

// run wires all components and blocks until the context is canceled
func run(ctx context.Context, cfg *config.Config, opts Opts) error {
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	engine := scoring.NewEngine(repository.NewStore(repos))

	fetcher := browse.NewFetcher(cfg.Crawl.NavTimeout, cfg.Crawl.UserAgent)
	decisionOracle := llm.NewDecisionOracle(cfg.GetLLMConfig())
	relevanceOracle := llm.NewRelevanceOracle(cfg.GetLLMConfig())

	sources := buildSources(cfg, fetcher, decisionOracle)
	if len(sources) == 0 {
		lgr.Printf("[WARN] no feeds or crawl seeds configured, nothing to discover")
	}

	notifier := notify.NewTelegram(notify.TelegramParams{
		Token:   cfg.Telegram.Token,
		ChatID:  cfg.Telegram.ChatID,
		Timeout: cfg.Telegram.Timeout,
	})

	var linker scheduler.Linker
	var verifier server.Verifier
	if cfg.Feedback.Secret != "" {
		signer := sign.NewSigner(cfg.Feedback.Secret, cfg.Feedback.TokenTTL)
		linker, verifier = signer, signer
	}

	pipeline := scheduler.NewPipeline(sources, relevanceOracle, repos.Story, repos.Topic,
		engine, notifier, fetcher, linker, scheduler.Config{
			ScanInterval:    cfg.Schedule.ScanInterval,
			DeliveryLimit:   cfg.Schedule.DeliveryLimit,
			FeedbackBaseURL: cfg.Feedback.BaseURL,
		})
	pipeline.Start(ctx)
	defer pipeline.Stop()

	srv := server.New(cfg, repos.Story, repos.Topic, engine, pipeline, verifier, revision, opts.Debug)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error { return srv.Run(gctx) })
	return group.Wait()
}

// buildSources assembles candidate sources from configured feeds and crawl seeds
func buildSources(cfg *config.Config, fetcher *browse.Fetcher, oracle crawl.Oracle) []source.Source {
	var sources []source.Source

	for _, f := range cfg.Feeds {
		sources = append(sources, source.NewRSS(f.Name, f.URL, cfg.Crawl.NavTimeout, cfg.Crawl.UserAgent))
	}

	limits := crawl.Limits{
		MaxPages:        cfg.Crawl.MaxPages,
		MaxClicks:       cfg.Crawl.MaxClicks,
		MaxDepth:        cfg.Crawl.MaxDepth,
		MaxCandidates:   cfg.Crawl.MaxCandidates,
		Timeout:         cfg.Crawl.Timeout,
		NavTimeout:      cfg.Crawl.NavTimeout,
		DecisionTimeout: cfg.Crawl.DecisionTimeout,
	}
	for _, seed := range cfg.Crawl.Seeds {
		sources = append(sources, source.NewCrawl(seed.Name, seed.URL, seed.Allowlist, limits, fetcher, oracle))
	}

	return sources
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
