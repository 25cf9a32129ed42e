package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/formica/pkg/tree"
)

// GraphOverlay contains decision data to visualize on the graph.
type GraphOverlay struct {
	// Branches taken from the root, in order ("left" or "right").
	Branches []string
}

// GenerateMermaid produces a Mermaid flowchart for t.
// Nodes are numbered n0, n1, ... in pre-order. It applies semantic styling:
// - Conditional: {Rhombus}
// - Terminal: [Rectangle]
// Left edges are labelled "false" and right edges "true".
// It also highlights the decision path if an overlay is provided.
func GenerateMermaid(t *tree.Tree, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := make(map[*tree.Node]string)
	t.Root().Walk(func(n *tree.Node, _ int) bool {
		id := fmt.Sprintf("n%d", len(ids))
		ids[n] = id

		label := escapeLabel(n.Action().String())
		if n.Action().IsConditional() {
			fmt.Fprintf(&sb, "    %s{\"%s\"}\n", id, label)
		} else {
			fmt.Fprintf(&sb, "    %s[\"%s\"]\n", id, label)
		}

		if p := n.Parent(); p != nil {
			edge := "false"
			if p.Right() == n {
				edge = "true"
			}
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", ids[p], edge, id)
		}
		return true
	})

	if overlay != nil {
		path := decisionPath(t, overlay.Branches)
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high contrast on any theme
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		for i, n := range path {
			class := "visited"
			if i == len(path)-1 {
				class = "current"
			}
			fmt.Fprintf(&sb, "    class %s %s;\n", ids[n], class)
		}
	}

	return sb.String()
}

// decisionPath follows branches from the root, stopping at a leaf or unknown branch.
func decisionPath(t *tree.Tree, branches []string) []*tree.Node {
	n := t.Root()
	path := []*tree.Node{n}
	for _, b := range branches {
		switch b {
		case tree.BranchLeft:
			n = n.Left()
		case tree.BranchRight:
			n = n.Right()
		default:
			n = nil
		}
		if n == nil {
			break
		}
		path = append(path, n)
	}
	return path
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
