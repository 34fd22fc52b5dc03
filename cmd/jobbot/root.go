package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kakarot0105/JobBot/internal/config"
	"github.com/kakarot0105/JobBot/internal/deliver"
	"github.com/kakarot0105/JobBot/internal/fetch"
	"github.com/kakarot0105/JobBot/internal/model"
	"github.com/kakarot0105/JobBot/internal/notifier"
	"github.com/kakarot0105/JobBot/internal/pipeline"
	"github.com/kakarot0105/JobBot/internal/ratelimit"
	"github.com/kakarot0105/JobBot/internal/retry"
	"github.com/kakarot0105/JobBot/internal/source"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobbot",
	Short: "Job search radar — aggregate, filter, rank, deliver",
	Long:  "JobBot aggregates postings from several job boards, filters and ranks them against your preferences, and delivers each match at most once.",
	// Default to `start` so that `jobbot` with no args runs the daemon.
	// This keeps systemd/cron wrappers that invoke the binary directly working.
	RunE: runStart,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBBOT_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBBOT_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBBOT_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func setupNotifier(cfg *config.Config, logger *slog.Logger) model.Notifier {
	switch cfg.Notification.Type {
	case "telegram":
		logger.Info("using telegram notifier")
		return notifier.NewTelegramNotifier(cfg.Notification.BotToken, source.NewHTTPClient(), logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

// buildSources constructs one adapter per enabled provider, wrapped with
// retry and rate limiting. Config list order is registration order and is
// preserved all the way through the pipeline's merge and tie-break.
func buildSources(cfg *config.Config, logger *slog.Logger) []model.Source {
	httpClient := source.NewHTTPClient()
	limiter := ratelimit.NewProviderRateLimiter(cfg.RateLimit.MinDelay)

	var sources []model.Source
	for _, p := range cfg.Providers {
		if !p.Enabled {
			continue
		}

		var src model.Source
		switch p.Name {
		case "remoteok":
			src = source.NewRemoteOK(httpClient)
		case "jsearch":
			src = source.NewJSearch(p.APIKey, httpClient)
		case "arbeitnow":
			src = source.NewArbeitnow(httpClient)
		case "linkedin":
			src = source.NewLinkedIn(httpClient)
		case "indeed":
			src = source.NewIndeed(httpClient)
		case "findwork":
			src = source.NewFindWork(httpClient)
		default:
			logger.Warn("unsupported provider, skipping", "provider", p.Name)
			continue
		}

		src = retry.NewSource(src, cfg.Retry.MaxRetries, cfg.Retry.BaseDelay, logger)
		src = ratelimit.NewSource(src, limiter)
		sources = append(sources, src)
		logger.Info("registered provider", "name", p.Name)
	}
	return sources
}

// seedProfiles writes the configured recipient profiles into the store so
// runs read a single authoritative copy.
func seedProfiles(cfg *config.Config, st model.Store, logger *slog.Logger) error {
	for _, r := range cfg.Recipients {
		if err := st.SetProfile(r.ID, r.Profile()); err != nil {
			return fmt.Errorf("seeding profile for %s: %w", r.ID, err)
		}
		logger.Debug("profile seeded", "recipient", r.ID, "keywords", r.Keywords)
	}
	return nil
}

// runAll executes one full cycle: for every recipient, run the pipeline
// against their stored profile and push the results through the delivery
// gate. One recipient's failure is logged and never stops the others.
func runAll(ctx context.Context, cfg *config.Config, st model.Store, n model.Notifier, logger *slog.Logger) error {
	runID := uuid.NewString()[:8]
	logger = logger.With("run_id", runID)

	sources := buildSources(cfg, logger)
	if len(sources) == 0 {
		return fmt.Errorf("no providers to fetch from")
	}

	coordinator := fetch.NewCoordinator(sources, logger)
	pipe := pipeline.New(coordinator, logger)
	tracker := deliver.NewTracker(st, n, cfg.Delivery.MaxPerRun, cfg.Delivery.SendDelay, logger)

	for _, r := range cfg.Recipients {
		profile, err := st.GetProfile(r.ID)
		if err != nil {
			logger.Error("loading profile failed", "recipient", r.ID, "error", err)
			continue
		}
		if profile == nil {
			logger.Warn("no profile for recipient, skipping", "recipient", r.ID)
			continue
		}

		ranked := pipe.Run(ctx, *profile)
		if _, err := tracker.Deliver(ctx, r.ID, ranked); err != nil {
			logger.Error("delivery failed", "recipient", r.ID, "error", err)
		}
	}

	return nil
}
