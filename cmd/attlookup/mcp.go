package main

import (
	"github.com/aretw0/attlookup/internal/cli"
	"github.com/aretw0/attlookup/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long:  `Exposes apply, tokenize and list_automata as Model Context Protocol tools over stdio (default) or SSE.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		bundle, err := cli.NewEngine(ctx, cfg, logger, nil)
		if err != nil {
			return err
		}
		defer bundle.Close()

		server := mcp.NewServer(bundle.Engine)
		if sse, _ := cmd.Flags().GetBool("sse"); sse {
			return server.ServeSSE(ctx, cfg.Server.Port)
		}
		return server.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Bool("sse", false, "Serve over SSE instead of stdio")
	mcpCmd.Flags().IntP("port", "p", 8080, "Port for SSE mode")
}
