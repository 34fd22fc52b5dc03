package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kakarot0105/JobBot/internal/scheduler"
	"github.com/kakarot0105/JobBot/internal/store"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the daemon: search and deliver on the configured schedule",
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	logger := setupLogger(debug)

	st, err := store.NewSQLiteStore(cfg.StorePath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	if err := seedProfiles(cfg, st, logger); err != nil {
		return err
	}

	n := setupNotifier(cfg, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched, err := scheduler.New(cfg.Schedule, cfg.TaskName, st, func(ctx context.Context) error {
		return runAll(ctx, cfg, st, n, logger)
	}, logger)
	if err != nil {
		return err
	}

	return sched.Run(ctx)
}
