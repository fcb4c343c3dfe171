package main

import (
	"fmt"

	"github.com/aretw0/attlookup/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export the transducer as a diagram",
	Long:  `Outputs a Mermaid flowchart (default) or a Graphviz digraph of the transducer.`,
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

		var opts graph.Options
		opts.MaxStates, _ = cmd.Flags().GetInt("max-states")
		opts.Highlight, _ = cmd.Flags().GetIntSlice("highlight")

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "mermaid":
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(automata[0], opts))
		case "dot":
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateDOT(automata[0], opts))
		default:
			return fmt.Errorf("unknown format %q (want mermaid or dot)", format)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("format", "mermaid", "Output format: mermaid or dot")
	graphCmd.Flags().Int("max-states", 0, "Export at most this many states (0 = all)")
	graphCmd.Flags().IntSlice("highlight", nil, "States to emphasize")
}
