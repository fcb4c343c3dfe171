package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/attlookup/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Summarize a transducer",
	Long:  `Prints state, arc and alphabet statistics for a table, rendered as markdown on a terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		automata, err := loadFiles(cfg, args)
		if err != nil {
			return err
		}

		maxSymbols, _ := cmd.Flags().GetInt("max-symbols")
		md := tui.Summary(filepath.Base(args[0]), automata[0], maxSymbols)

		raw, _ := cmd.Flags().GetBool("raw")
		fd := int(os.Stdout.Fd())
		if raw || !term.IsTerminal(fd) {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}

		width, _, err := term.GetSize(fd)
		if err != nil {
			width = 0
		}
		render, err := tui.NewRenderer(width)
		if err != nil {
			return err
		}
		out, err := render(md)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Int("max-symbols", 200, "List at most this many alphabet symbols (0 = all)")
	inspectCmd.Flags().Bool("raw", false, "Print markdown without rendering")
}
