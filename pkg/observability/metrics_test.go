package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/formica/pkg/domain"
	"github.com/aretw0/formica/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnDecision(ctx, &domain.DecisionEvent{Action: domain.Conditional("food_ahead")})
	hooks.OnDecision(ctx, &domain.DecisionEvent{Action: domain.Terminal("forward")})
	hooks.OnDecision(ctx, &domain.DecisionEvent{Action: domain.Terminal("forward")})
	hooks.OnMutation(ctx, &domain.MutationEvent{From: domain.Terminal("drop"), To: domain.Terminal("pick_up")})
	hooks.OnCrossover(ctx, &domain.CrossoverEvent{Side: domain.SideLeft})
	hooks.OnSimplify(ctx, &domain.SimplifyEvent{Removed: 4})
	hooks.OnSimplify(ctx, &domain.SimplifyEvent{Removed: 2})
	hooks.OnGenerate(ctx, &domain.GenerateEvent{Level: 3})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Decisions.WithLabelValues("forward")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Decisions.WithLabelValues("food_ahead")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Mutations.WithLabelValues(string(domain.RoleTerminal))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Crossovers.WithLabelValues(domain.SideLeft)))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.Simplified))

	expected := `
# HELP formica_simplified_nodes_total Nodes removed by simplification
# TYPE formica_simplified_nodes_total counter
formica_simplified_nodes_total 6
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "formica_simplified_nodes_total"))

	count, err := testutil.GatherAndCount(reg, "formica_tree_level")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewMetrics_NilRegisterer(t *testing.T) {
	assert.NotPanics(t, func() {
		observability.NewMetrics(nil)
		observability.NewMetrics(nil)
	})
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	hooks := observability.LogHooks(logger)
	ctx := context.Background()

	hooks.OnDecision(ctx, &domain.DecisionEvent{Action: domain.Terminal("forward")})
	hooks.OnCrossover(ctx, &domain.CrossoverEvent{Side: domain.SideRight, Level: 2})

	out := buf.String()
	assert.NotContains(t, out, "decision", "decisions are debug records")
	assert.Contains(t, out, "msg=crossover")
	assert.Contains(t, out, "side=right")
}
