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

	"github.com/newspool/newspool/pkg/config"
	"github.com/newspool/newspool/pkg/content"
	"github.com/newspool/newspool/pkg/dedup"
	"github.com/newspool/newspool/pkg/feed"
	"github.com/newspool/newspool/pkg/quality"
	"github.com/newspool/newspool/pkg/repository"
	"github.com/newspool/newspool/pkg/scheduler"
	"github.com/newspool/newspool/server"
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

	setupLog(opts.Debug, opts.NoColor)

	lgr.Printf("[INFO] starting newspool version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, &opts); err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	lgr.Printf("[INFO] shutdown complete")
}

// run wires the application together and blocks until the context is done
func run(ctx context.Context, opts *Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

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

	fetchCfg := cfg.GetFetchConfig()
	fetcher := feed.NewParser(feed.Config{
		Timeout:       fetchCfg.Timeout,
		UserAgent:     fetchCfg.UserAgent,
		MaxBodySize:   fetchCfg.MaxBodySize,
		SummaryLength: fetchCfg.SummaryLength,
	})

	qualityCfg := cfg.GetQualityConfig()
	validator := quality.New(quality.Config{
		MinScore:     qualityCfg.MinScore,
		SpamKeywords: qualityCfg.SpamKeywords,
		MaxAge:       qualityCfg.MaxAge,
		MaxFuture:    qualityCfg.MaxFutureDrift,
	})

	dedupCfg := cfg.GetDedupConfig()
	deduper := dedup.New(dedupCfg.SimilarityThreshold, dedupCfg.TrackingParams)

	var extractor scheduler.Extractor
	extractionCfg := cfg.GetExtractionConfig()
	if extractionCfg.Enabled {
		extractor = content.NewExtractor(content.Config{
			Timeout:       extractionCfg.Timeout,
			UserAgent:     extractionCfg.UserAgent,
			MinTextLength: extractionCfg.MinTextLength,
		})
		lgr.Printf("[INFO] content extraction enabled")
	}

	scheduleCfg := cfg.GetScheduleConfig()
	sched := scheduler.NewScheduler(scheduler.Params{
		SourceManager:    repos.Source,
		ArticleManager:   repos.Article,
		HealthManager:    repos.Health,
		Fetcher:          fetcher,
		Validator:        validator,
		Deduper:          deduper,
		Extractor:        extractor,
		UpdateInterval:   time.Duration(scheduleCfg.UpdateInterval) * time.Minute,
		Concurrency:      scheduleCfg.Concurrency,
		MaxFailures:      scheduleCfg.MaxFailures,
		ExtractThreshold: extractionCfg.MinTextLength,
	})
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(cfg, repos.Source, repos.Article, repos.Health, sched, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
