package main

import (
	"fmt"

	"github.com/aretw0/attlookup/internal/cli"
	httpAdapter "github.com/aretw0/attlookup/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP lookup server",
	Long: `Serves every table in --dir over a JSON API, with Prometheus metrics at /metrics.
Results are cached in memory, or in Redis when redis.addr is configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("log-level") && cfg.LogLevel == "warn" {
			cfg.LogLevel = "info"
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		bundle, err := cli.NewEngine(ctx, cfg, logger, reg)
		if err != nil {
			return err
		}
		defer bundle.Close()

		handler := httpAdapter.NewHandler(bundle.Engine,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})),
		)

		logger.Info("serving automata", "dir", cfg.Dir)
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		return httpAdapter.ListenAndServe(ctx, addr, handler, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
}
