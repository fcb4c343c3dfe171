package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/attlookup"
	"github.com/aretw0/attlookup/internal/compiler"
	"github.com/aretw0/attlookup/internal/config"
	"github.com/aretw0/attlookup/pkg/adapters/file"
	"github.com/aretw0/attlookup/pkg/adapters/memory"
	"github.com/aretw0/attlookup/pkg/adapters/redis"
	"github.com/aretw0/attlookup/pkg/observability"
	"github.com/aretw0/attlookup/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// EngineBundle is an Engine plus the resources it owns.
type EngineBundle struct {
	Engine  *attlookup.Engine
	Metrics *observability.Metrics
	close   func() error
}

// Close releases the cache connection, if any.
func (b *EngineBundle) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// NewEngine initializes an Engine with standard CLI conventions:
// a directory loader over cfg.Dir, redis caching when configured (memory otherwise),
// logging hooks, and Prometheus metrics registered on reg (skipped when reg is nil).
func NewEngine(ctx context.Context, cfg config.Config, logger *slog.Logger, reg prometheus.Registerer) (*EngineBundle, error) {
	loader := file.NewLoader(cfg.Dir,
		file.WithLogger(logger),
		file.WithParserOptions(
			compiler.WithSymbols(cfg.DomainSymbols()),
			compiler.WithStrict(cfg.Strict),
			compiler.WithLogger(logger),
		),
	)

	bundle := &EngineBundle{}

	var cache ports.ResultCache = memory.NewCache()
	if cfg.Redis.Addr != "" {
		rc := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithTTL(cfg.Redis.TTL),
			redis.WithPrefix(cfg.Redis.Prefix),
		)
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Redis.Addr, err)
		}
		cache = rc
		bundle.close = rc.Close
		logger.Info("using redis cache", "addr", cfg.Redis.Addr)
	}

	hooks := observability.LoggingHooks(logger)
	if reg != nil {
		bundle.Metrics = observability.NewMetrics(reg)
		hooks = hooks.Merge(bundle.Metrics.Hooks())
	}

	eng, err := attlookup.New(cfg.Dir,
		attlookup.WithLoader(loader),
		attlookup.WithCache(cache),
		attlookup.WithLogger(logger),
		attlookup.WithLifecycleHooks(hooks),
		attlookup.WithSearchDefaults(cfg.SearchDefaults()),
	)
	if err != nil {
		_ = bundle.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	bundle.Engine = eng
	return bundle, nil
}
