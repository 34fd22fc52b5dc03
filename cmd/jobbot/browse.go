package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kakarot0105/JobBot/internal/browse"
	"github.com/kakarot0105/JobBot/internal/store"
)

var browseRecipient string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse delivered jobs and mark the ones you applied to",
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().StringVarP(&browseRecipient, "recipient", "r", "", "recipient id (defaults to the first configured recipient)")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	recipientID := browseRecipient
	if recipientID == "" {
		recipientID = cfg.Recipients[0].ID
	}

	st, err := store.NewSQLiteStore(cfg.StorePath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	jobs, err := st.ListDeliveries(recipientID)
	if err != nil {
		return fmt.Errorf("loading deliveries: %w", err)
	}

	return browse.Run(recipientID, jobs, st)
}
