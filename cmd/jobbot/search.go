package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kakarot0105/JobBot/internal/model"
	"github.com/kakarot0105/JobBot/internal/notifier"
	"github.com/kakarot0105/JobBot/internal/store"
)

var dryRun bool

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one search-and-deliver cycle immediately",
	Long: `Run one full cycle right now, outside the daily schedule. Deliveries
are still recorded, so a later scheduled run will not repeat them. With
--dry-run nothing is recorded and jobs are only printed.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not record deliveries or profiles")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	logger := setupLogger(debug)

	var st model.Store
	if dryRun {
		st = store.NewNopStore()
		logger.Info("dry run: deliveries will not be recorded")
	} else {
		sqlStore, err := store.NewSQLiteStore(cfg.StorePath)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer sqlStore.Close()
		st = sqlStore
	}

	if err := seedProfiles(cfg, st, logger); err != nil {
		return err
	}

	n := setupNotifier(cfg, logger)
	if dryRun {
		// Never hit the real notifier on a dry run.
		n = notifier.NewLogNotifier(logger)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return runAll(ctx, cfg, st, n, logger)
}
