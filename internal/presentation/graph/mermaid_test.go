package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/formica/internal/presentation/graph"
	"github.com/aretw0/formica/internal/testutils"
	"github.com/aretw0/formica/pkg/tree"
	"github.com/stretchr/testify/assert"
)

func sample() *tree.Tree {
	return tree.FromRoot(testutils.If("food_ahead",
		testutils.Leaf("forward"),
		testutils.If("carrying_food", testutils.Leaf("pick_up"), testutils.Leaf("drop")),
	))
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "Shapes And Edges",
			contains: []string{
				"graph TD\n",
				`n0{"food_ahead?"}`,
				`n1["forward"]`,
				`n2{"carrying_food?"}`,
				`n3["pick_up"]`,
				`n4["drop"]`,
				`n0 -- "false" --> n1`,
				`n0 -- "true" --> n2`,
				`n2 -- "false" --> n3`,
				`n2 -- "true" --> n4`,
			},
			excludes: []string{"classDef"},
		},
		{
			name:    "Decision Overlay",
			overlay: &graph.GraphOverlay{Branches: []string{tree.BranchRight, tree.BranchLeft}},
			contains: []string{
				"class n0 visited;",
				"class n2 visited;",
				"class n3 current;",
			},
			excludes: []string{"class n1", "class n4"},
		},
		{
			name:    "Overlay Stops At Leaf",
			overlay: &graph.GraphOverlay{Branches: []string{tree.BranchLeft, tree.BranchLeft}},
			contains: []string{
				"class n0 visited;",
				"class n1 current;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(sample(), tt.overlay)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestGenerateMermaid_SingleLeaf(t *testing.T) {
	got := graph.GenerateMermaid(tree.New(), nil)
	assert.Equal(t, "graph TD\n    n0[\"forward\"]\n", got)
	assert.Equal(t, 1, strings.Count(got, "n0"))
}
