package tree

import (
	"github.com/aretw0/formica/pkg/domain"
)

// Tree is one individual of a population: a single-rooted decision tree.
// A Tree is not safe for concurrent use.
type Tree struct {
	root *Node
}

// New creates a tree holding a single default terminal action.
func New() *Tree {
	return &Tree{root: NewNode(domain.DefaultAction)}
}

// FromRoot adopts root as the root of a new tree, detaching it from any parent.
// A nil root yields New().
func FromRoot(root *Node) *Tree {
	if root == nil {
		return New()
	}
	return &Tree{root: root.detach()}
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.root
}

// MakeDecision executes the tree once against agent and world.
func (t *Tree) MakeDecision(cat Catalogue, agent, world any) error {
	return t.root.Execute(cat, agent, world)
}

// Trace executes the tree once, reporting every evaluated action to visit.
func (t *Tree) Trace(cat Catalogue, agent, world any, visit Visit) error {
	return t.root.Trace(cat, agent, world, visit)
}

// Simplify runs the duplicate-condition pass and then the symmetric pass on the
// root. It returns the number of nodes removed.
func (t *Tree) Simplify() int {
	before := t.root.Size()
	root := t.root.SimplifyDuplicateConditions(nil, nil)
	root = root.SimplifySymmetricConditions()
	t.root = root.detach()
	return before - t.root.Size()
}

// Level returns the length of the longest root-to-terminal path.
func (t *Tree) Level() int {
	return t.root.Level()
}

// Size returns the node count.
func (t *Tree) Size() int {
	return t.root.Size()
}

// Clone deep-copies the tree, mutating actions through m at the given rate.
func (t *Tree) Clone(m Mutator, rate float64) *Tree {
	return &Tree{root: t.root.Clone(m, rate)}
}

// Equal reports structural equality.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.root.Equal(other.root)
}

// Validate checks the arity and parent invariants of the whole tree.
func (t *Tree) Validate() error {
	return t.root.Validate()
}

func (t *Tree) String() string {
	return t.root.String()
}
