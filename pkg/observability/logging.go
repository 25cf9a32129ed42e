package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/formica/pkg/domain"
)

// LogHooks returns lifecycle hooks that write every event to logger.
// Decisions and mutations are logged at debug level, the rest at info.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDecision: func(ctx context.Context, e *domain.DecisionEvent) {
			logger.DebugContext(ctx, "decision",
				"action", e.Action.String(),
				"depth", e.Depth,
				"branch", e.Branch,
			)
		},
		OnMutation: func(ctx context.Context, e *domain.MutationEvent) {
			logger.DebugContext(ctx, "mutation",
				"from", e.From.String(),
				"to", e.To.String(),
			)
		},
		OnCrossover: func(ctx context.Context, e *domain.CrossoverEvent) {
			logger.InfoContext(ctx, "crossover", "side", e.Side, "level", e.Level)
		},
		OnSimplify: func(ctx context.Context, e *domain.SimplifyEvent) {
			logger.InfoContext(ctx, "simplify", "removed", e.Removed, "level", e.Level)
		},
		OnGenerate: func(ctx context.Context, e *domain.GenerateEvent) {
			logger.InfoContext(ctx, "generate",
				"min_level", e.MinLevel,
				"max_level", e.MaxLevel,
				"level", e.Level,
				"size", e.Size,
			)
		},
	}
}
