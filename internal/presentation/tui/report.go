package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/formica/pkg/tree"
)

// Report renders a markdown summary of a population.
func Report(title string, trees []*tree.Tree) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)

	if len(trees) == 0 {
		sb.WriteString("_empty population_\n")
		return sb.String()
	}

	levels, sizes := 0, 0
	for _, t := range trees {
		levels += t.Level()
		sizes += t.Size()
	}
	n := float64(len(trees))
	fmt.Fprintf(&sb, "**%d trees**, mean level %.2f, mean size %.2f\n\n", len(trees), float64(levels)/n, float64(sizes)/n)

	sb.WriteString("| # | Level | Size | Tree |\n")
	sb.WriteString("|---|---|---|---|\n")
	for i, t := range trees {
		fmt.Fprintf(&sb, "| %d | %d | %d | `%s` |\n", i, t.Level(), t.Size(), t)
	}
	return sb.String()
}
