package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/formica/internal/presentation/tui"
	"github.com/aretw0/formica/internal/testutils"
	"github.com/aretw0/formica/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	trees := []*tree.Tree{
		tree.New(),
		tree.FromRoot(testutils.If("on_nest", testutils.Leaf("drop"), testutils.Leaf("forward"))),
	}

	got := tui.Report("gen-1", trees)
	assert.Contains(t, got, "# gen-1")
	assert.Contains(t, got, "**2 trees**, mean level 0.50, mean size 2.00")
	assert.Contains(t, got, "| 0 | 0 | 1 | `forward` |")
	assert.Contains(t, got, "| 1 | 1 | 3 | `on_nest?(drop, forward)` |")
}

func TestReport_Empty(t *testing.T) {
	assert.Contains(t, tui.Report("none", nil), "_empty population_")
}

func TestRenderer(t *testing.T) {
	render, err := tui.NewRenderer()
	require.NoError(t, err)

	out, err := render(tui.Report("gen-1", []*tree.Tree{tree.New()}))
	require.NoError(t, err)
	assert.Contains(t, out, "gen-1")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_|")
}
