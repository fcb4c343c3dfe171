package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/attlookup/pkg/domain"
)

// LoggingHooks logs loads at info and lookups at debug. Failures log at warn.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLoad: func(ctx context.Context, e *domain.LoadEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "automaton_load_failed", "automaton", e.Name, "error", e.Err)
				return
			}
			logger.InfoContext(ctx, "automaton_loaded",
				"automaton", e.Name,
				"states", e.States,
				"arcs", e.Arcs,
				"duration", e.Duration,
			)
		},
		OnLookup: func(ctx context.Context, e *domain.LookupEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "lookup_failed", "automaton", e.Name, "word", e.Word, "error", e.Err)
				return
			}
			logger.DebugContext(ctx, "lookup",
				"automaton", e.Name,
				"word", e.Word,
				"direction", e.Direction.String(),
				"results", e.Results,
				"expansions", e.Expansions,
				"cached", e.CacheHit,
				"truncated", e.Truncated,
				"duration", e.Duration,
			)
		},
	}
}
