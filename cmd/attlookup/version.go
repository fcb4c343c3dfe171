package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/attlookup"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of attlookup",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "attlookup version %s\n", strings.TrimSpace(attlookup.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
