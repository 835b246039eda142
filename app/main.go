package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/lysyi3m/catalog-comb/app/catalog"
	"github.com/lysyi3m/catalog-comb/app/cfg"
	"github.com/lysyi3m/catalog-comb/app/metrics"
	"github.com/lysyi3m/catalog-comb/app/pipeline"
	"github.com/lysyi3m/catalog-comb/app/publish"
	"github.com/lysyi3m/catalog-comb/app/source"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// help was shown
		return
	}

	logger := newLogger(appCfg.Debug)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, appCfg, logger); err != nil {
		logger.Error("Run failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run_id", uuid.NewString())
}

func run(ctx context.Context, appCfg *cfg.Cfg, logger *slog.Logger) error {
	started := time.Now()

	logger.Info("Starting catalog run", "version", appCfg.Version)

	files, err := catalog.ReadList(appCfg.InputList)
	if err != nil {
		return fmt.Errorf("failed to read source list %s: %w", appCfg.InputList, err)
	}

	rules, err := loadRules(appCfg)
	if err != nil {
		return err
	}

	fetcher := newFetcher(appCfg)
	defer fetcher.Close()

	recorder := metrics.NewRecorder()
	runner := pipeline.NewRunner(
		fetcher,
		catalog.NewParser(),
		catalog.NewFilterer(rules),
		catalog.NewPricer(appCfg.Pricing),
		rules.MaxProducts,
		recorder,
		logger,
	)

	result := runner.Run(ctx, files)

	publisher := publish.NewPublisher(appCfg.OutDir, appCfg.Pricing.CompareReference)
	paths, err := publisher.Publish(result.Products)
	if err != nil {
		return err
	}

	finished := time.Now()
	if err := publisher.WriteMarkers(finished); err != nil {
		return err
	}

	recorder.Published(len(result.Products), finished)
	if appCfg.MetricsFile != "" {
		if err := recorder.WriteTextfile(appCfg.MetricsFile); err != nil {
			logger.Warn("Failed to write metrics", "path", appCfg.MetricsFile, "error", err)
		}
	}

	logger.Info("Run completed",
		"files", result.FilesDone,
		"listed", len(files),
		"kept", len(result.Products),
		"duration", time.Since(started))
	for _, path := range paths {
		logger.Info("Published", "path", path)
	}

	return nil
}

// loadRules merges the optional list files with the lists of the rules file.
func loadRules(appCfg *cfg.Cfg) (catalog.RuleSet, error) {
	categories, err := catalog.LoadOptionalList(appCfg.AllowCategoriesFile)
	if err != nil {
		return catalog.RuleSet{}, err
	}
	keywords, err := catalog.LoadOptionalList(appCfg.DenyKeywordsFile)
	if err != nil {
		return catalog.RuleSet{}, err
	}
	brands, err := catalog.LoadOptionalList(appCfg.AllowBrandsFile)
	if err != nil {
		return catalog.RuleSet{}, err
	}

	rules := catalog.NewRuleSet(appCfg.Thresholds,
		slices.Concat(categories, appCfg.AllowCategories),
		slices.Concat(keywords, appCfg.DenyKeywords),
		slices.Concat(brands, appCfg.AllowBrands),
	)

	slog.Debug("Rules loaded",
		"categories", len(rules.AllowCategories),
		"keywords", len(rules.DenyKeywords),
		"brands", len(rules.AllowBrands))

	return rules, nil
}

func newFetcher(appCfg *cfg.Cfg) source.Fetcher {
	switch {
	case appCfg.SourceDir != "":
		return source.NewDir(appCfg.SourceDir)
	case appCfg.SourceURL != "":
		client := &http.Client{Timeout: appCfg.FetchTimeout}
		return source.NewHTTP(appCfg.SourceURL, client, appCfg.UserAgent, appCfg.FetchTimeout)
	default:
		return source.NewFTP(appCfg.FTPHost, appCfg.FTPUser, appCfg.FTPPassword, appCfg.FTPDir, appCfg.FetchTimeout)
	}
}
