package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/attlookup"
	"github.com/aretw0/attlookup/internal/cli"
	"github.com/aretw0/attlookup/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "attlookup",
	Short: "attlookup applies words to weighted finite-state transducers",
	Long: `attlookup reads transducers in the AT&T tabular format (plain, gzip or zstd)
and enumerates the transductions of input words, cheapest first.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "attlookup.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the automata (.att, .att.gz, .att.zst)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); empty disables logging")
	rootCmd.PersistentFlags().Bool("strict", false, "Reject lines with three fields instead of ignoring them")
	rootCmd.PersistentFlags().Int("max-expansions", attlookup.DefaultMaxExpansions, "Stop a search after this many expansions (0 = unbounded)")
	rootCmd.PersistentFlags().Bool("no-dedup", false, "Do not drop duplicate search nodes")
}

// loadConfig reads the config file and environment, then applies the flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	overrides := map[string]any{}
	search := map[string]any{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "dir":
			overrides["dir"] = f.Value.String()
		case "log-level":
			overrides["log_level"] = f.Value.String()
		case "strict":
			overrides["strict"] = f.Value.String()
		case "max-expansions":
			search["max_expansions"] = f.Value.String()
		case "no-dedup":
			search["dedup"] = f.Value.String() != "true"
		case "port":
			overrides["server"] = map[string]any{"port": f.Value.String()}
		}
	})
	if len(search) > 0 {
		overrides["search"] = search
	}
	if err := cfg.Apply(overrides); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	return cli.CreateLogger(os.Stderr, cfg.LogLevel)
}
