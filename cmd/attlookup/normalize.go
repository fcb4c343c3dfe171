package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/attlookup"
	"github.com/aretw0/attlookup/internal/compiler"
	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <file>",
	Short: "Rewrite a table in canonical AT&T form",
	Long: `Reads a table in any supported framing and writes it back with arcs grouped
by state, final states last, and the epsilon marker spelled out. Use
--compress to write a gzip or zstd framed copy.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		automata, err := loadFiles(cfg, args)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("compress")
		c, err := compiler.ParseCompression(name)
		if err != nil {
			return err
		}

		var out io.Writer = cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("output"); path != "" && path != "-" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create output: %w", err)
			}
			defer func() {
				if cerr := f.Close(); err == nil {
					err = cerr
				}
			}()
			out = f
		}

		zw, err := compiler.Compress(out, c)
		if err != nil {
			return err
		}
		if err := attlookup.Write(zw, automata[0]); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
	normalizeCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	normalizeCmd.Flags().String("compress", "none", "Output framing: none, gzip or zstd")
}
