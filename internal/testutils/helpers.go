package testutils

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/aretw0/formica/pkg/colony"
	"github.com/aretw0/formica/pkg/domain"
	"github.com/aretw0/formica/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Genetics returns colony genetics drawing from a seeded source.
func Genetics(seed int64) *tree.Genetics {
	return tree.NewGenetics(colony.Catalogue(), rand.New(rand.NewSource(seed)))
}

// Leaf builds a terminal node.
func Leaf(kind string) *tree.Node {
	return tree.NewNode(domain.Terminal(kind))
}

// If builds a conditional node with both branches.
func If(kind string, left, right *tree.Node) *tree.Node {
	return tree.Branch(domain.Conditional(kind), left, right)
}

// RandomTrees grows n unsimplified trees from a seeded source.
func RandomTrees(t *testing.T, seed int64, n, minLevel, maxLevel int) []*tree.Tree {
	t.Helper()
	g := Genetics(seed)
	out := make([]*tree.Tree, 0, n)
	for range n {
		tr, err := g.GrowRandomTree(minLevel, maxLevel)
		require.NoError(t, err)
		out = append(out, tr)
	}
	return out
}

// AssertSameBehaviour executes both trees on a fixed sample of colony situations and
// asserts they leave ant and world in the same state.
func AssertSameBehaviour(t *testing.T, want, got *tree.Tree) {
	t.Helper()
	cat := colony.Catalogue()
	for i, s := range colony.Sample(rand.New(rand.NewSource(7)), 40) {
		s1, s2 := s.Clone(), s.Clone()
		require.NoError(t, want.MakeDecision(cat, s1.Ant, s1.World))
		require.NoError(t, got.MakeDecision(cat, s2.Ant, s2.World))
		assert.Truef(t, s1.Equal(s2), "situation %d diverged:\nwant %s\ngot  %s", i, want, got)
	}
}

// Nodes collects every node pointer of a tree.
func Nodes(tr *tree.Tree) map[*tree.Node]bool {
	set := make(map[*tree.Node]bool)
	tr.Root().Walk(func(n *tree.Node, _ int) bool {
		set[n] = true
		return true
	})
	return set
}

// TempFile returns a path inside a fresh temporary directory.
func TempFile(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}
