package main

import (
	"fmt"
	"os"

	"github.com/aretw0/attlookup"
	"github.com/aretw0/attlookup/internal/cli"
	"github.com/aretw0/attlookup/internal/config"
	"github.com/aretw0/attlookup/internal/presentation/tui"
	"github.com/aretw0/attlookup/pkg/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <file> [file...]",
	Short: "Apply words from stdin to one or more transducers",
	Long: `Reads one word per line from stdin and prints its transductions.

Words are analysed (applied up) unless -i is given. With several files the
transducers are chained as a composition; with -a they are tried in order
and the first one that answers wins. A word without results prints "+?".`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		automata, err := loadFiles(cfg, args)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		opts := cli.LookupOptions{Search: cfg.SearchDefaults()}
		opts.Inverse, _ = flags.GetBool("inverse")
		opts.Alternates, _ = flags.GetBool("alternates")
		opts.NoEcho, _ = flags.GetBool("no-echo")
		opts.Separator, _ = flags.GetString("separator")
		opts.WordSeparator, _ = flags.GetString("word-separator")
		opts.Unbuffered, _ = flags.GetBool("unbuffered")
		opts.Limit, _ = flags.GetInt("limit")
		opts.Weights, _ = flags.GetBool("weights")

		color, _ := flags.GetBool("color")
		if color && term.IsTerminal(int(os.Stdout.Fd())) {
			opts.Styles = tui.NewStyles()
		}

		logger.Debug("lookup ready", "files", args, "inverse", opts.Inverse, "alternates", opts.Alternates)

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		if err := cli.NewLookup(automata, opts).Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil && ctx.Signal() == nil {
			return err
		}
		return nil
	},
}

// loadFiles reads every table with the configured markers and strictness.
func loadFiles(cfg config.Config, paths []string) ([]*domain.Automaton, error) {
	automata := make([]*domain.Automaton, 0, len(paths))
	for _, path := range paths {
		a, err := attlookup.Load(path,
			attlookup.WithSymbols(cfg.DomainSymbols()),
			attlookup.WithStrict(cfg.Strict),
		)
		if err != nil {
			return nil, fmt.Errorf("file error: %s: %w", path, err)
		}
		automata = append(automata, a)
	}
	return automata, nil
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	f := lookupCmd.Flags()
	f.BoolP("inverse", "i", false, "Inverse application (apply down instead of up)")
	f.BoolP("alternates", "a", false, "Try the transducers in order instead of chaining them")
	f.BoolP("no-echo", "x", false, "Don't echo the input word")
	f.StringP("separator", "s", "\t", "Input/output separator")
	f.StringP("word-separator", "w", "\n", "Separator written after the results of each word")
	f.BoolP("unbuffered", "b", false, "Flush output after each input word")
	f.IntP("limit", "n", 0, "Maximum results per word (0 = all)")
	f.Bool("weights", false, "Print the cost of each result")
	f.Bool("color", true, "Colour output when stdout is a terminal")
}
