package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// providerInfo mirrors the switch in buildSources. Keep the two in sync when
// adding a provider.
var providerInfo = []struct {
	name     string
	needsKey bool
	note     string
}{
	{"remoteok", false, "remote-only board, public API"},
	{"jsearch", true, "RapidAPI aggregator (Indeed, Glassdoor, LinkedIn, ZipRecruiter)"},
	{"arbeitnow", false, "European board, public API"},
	{"linkedin", false, "public job search pages"},
	{"indeed", false, "RSS feed"},
	{"findwork", false, "developer-focused board, public API"},
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported job sources and whether they are enabled",
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	enabled := map[string]bool{}
	if cfg, err := loadConfig(cfgPath); err == nil {
		for _, p := range cfg.Providers {
			enabled[p.Name] = p.Enabled
		}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tENABLED\tAPI KEY\tNOTES")
	for _, p := range providerInfo {
		state := "-"
		if on, ok := enabled[p.name]; ok {
			state = fmt.Sprintf("%v", on)
		}
		key := ""
		if p.needsKey {
			key = "required"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.name, state, key, p.note)
	}
	return w.Flush()
}
