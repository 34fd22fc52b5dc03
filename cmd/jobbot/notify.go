package main

import (
	"github.com/spf13/cobra"

	"github.com/kakarot0105/JobBot/internal/notifier"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Notification subcommands",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test notification",
	Long:  "Sends a test job card to every configured recipient using the configured notifier.",
	RunE:  runNotifyTest,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.AddCommand(notifyTestCmd)
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	logger := setupLogger(debug)
	n := setupNotifier(cfg, logger)

	for _, r := range cfg.Recipients {
		if err := notifier.SendTestMessage(cmd.Context(), n, r.ID); err != nil {
			return err
		}
		logger.Info("test notification sent", "recipient", r.ID)
	}
	return nil
}
