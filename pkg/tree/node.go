package tree

import (
	"fmt"
	"strings"

	"github.com/aretw0/formica/pkg/domain"
)

// Branch names used in traces and documents.
const (
	BranchLeft  = "left"
	BranchRight = "right"
)

// Node is a binary decision tree node.
// It owns its action and children; parent is a back reference maintained by
// SetLeft and SetRight and never used for ownership.
type Node struct {
	action domain.Action
	left   *Node
	right  *Node
	parent *Node
}

// NewNode creates a detached node without children.
func NewNode(action domain.Action) *Node {
	return &Node{action: action}
}

// Branch creates a conditional node with both children attached.
func Branch(action domain.Action, left, right *Node) *Node {
	n := NewNode(action)
	n.SetLeft(left)
	n.SetRight(right)
	return n
}

func (n *Node) Action() domain.Action { return n.action }
func (n *Node) Left() *Node           { return n.left }
func (n *Node) Right() *Node          { return n.right }
func (n *Node) Parent() *Node         { return n.parent }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return n.left == nil && n.right == nil
}

// SetLeft replaces the left child. The previous child is detached and the new one
// is removed from wherever it was attached before.
func (n *Node) SetLeft(child *Node) {
	if child == n.left {
		return
	}
	if n.left != nil {
		n.left.parent = nil
	}
	if child != nil {
		child.detach()
		child.parent = n
	}
	n.left = child
}

// SetRight replaces the right child, with the same guarantees as SetLeft.
func (n *Node) SetRight(child *Node) {
	if child == n.right {
		return
	}
	if n.right != nil {
		n.right.parent = nil
	}
	if child != nil {
		child.detach()
		child.parent = n
	}
	n.right = child
}

// detach unlinks n from its parent and returns it.
func (n *Node) detach() *Node {
	p := n.parent
	if p == nil {
		return n
	}
	switch n {
	case p.left:
		p.left = nil
	case p.right:
		p.right = nil
	}
	n.parent = nil
	return n
}

// Execute runs the decision rooted at n against agent and world.
func (n *Node) Execute(cat Catalogue, agent, world any) error {
	return n.execute(cat, agent, world, 0, nil)
}

// Visit is called for every action evaluated by Trace.
// branch is empty for terminal actions.
type Visit func(action domain.Action, depth int, branch string)

// Trace is Execute with a callback for each evaluated action.
func (n *Node) Trace(cat Catalogue, agent, world any, visit Visit) error {
	return n.execute(cat, agent, world, 0, visit)
}

func (n *Node) execute(cat Catalogue, agent, world any, depth int, visit Visit) error {
	if !n.action.IsConditional() {
		if visit != nil {
			visit(n.action, depth, "")
		}
		return cat.Perform(n.action, agent, world)
	}

	ok, err := cat.Test(n.action, agent, world)
	if err != nil {
		return err
	}
	next, branch := n.left, BranchLeft
	if ok {
		next, branch = n.right, BranchRight
	}
	if visit != nil {
		visit(n.action, depth, branch)
	}
	if next == nil {
		return fmt.Errorf("conditional %q has no %s child: %w", n.action.Kind, branch, domain.ErrStructure)
	}
	return next.execute(cat, agent, world, depth+1, visit)
}

// Clone deep-copies the subtree in pre-order. Each node's action is passed through
// m.CloneAction independently; children are always cloned, so mutation never
// changes the shape. A nil Mutator copies actions verbatim.
func (n *Node) Clone(m Mutator, rate float64) *Node {
	if n == nil {
		return nil
	}
	action := n.action
	if m != nil {
		action = m.CloneAction(action, rate)
	}
	c := NewNode(action)
	c.SetLeft(n.left.Clone(m, rate))
	c.SetRight(n.right.Clone(m, rate))
	return c
}

// Level is 0 for a terminal node and 1 + max(child levels) for a conditional one.
func (n *Node) Level() int {
	if n == nil {
		return -1
	}
	if !n.action.IsConditional() {
		return 0
	}
	return 1 + max(n.left.Level(), n.right.Level())
}

// Size counts the nodes of the subtree.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	return 1 + n.left.Size() + n.right.Size()
}

// Equal reports structural equality: same actions in the same shape.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.action == other.action &&
		n.left.Equal(other.left) &&
		n.right.Equal(other.right)
}

// Walk visits the subtree in pre-order. Returning false skips the node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if n == nil || !fn(n, depth) {
		return
	}
	n.left.walk(fn, depth+1)
	n.right.walk(fn, depth+1)
}

// Validate checks arity and parent invariants over the subtree.
func (n *Node) Validate() error {
	var err error
	n.Walk(func(node *Node, _ int) bool {
		if err != nil {
			return false
		}
		children := 0
		for _, c := range []*Node{node.left, node.right} {
			if c == nil {
				continue
			}
			children++
			if c.parent != node {
				err = fmt.Errorf("child %q of %q has a stale parent: %w", c.action.Kind, node.action.Kind, domain.ErrStructure)
				return false
			}
		}
		if children != node.action.Arity() {
			err = fmt.Errorf("%s node %q has %d children: %w", node.action.Role, node.action.Kind, children, domain.ErrStructure)
			return false
		}
		return true
	})
	return err
}

// String renders the subtree as kind?(left, right).
func (n *Node) String() string {
	var sb strings.Builder
	n.format(&sb)
	return sb.String()
}

func (n *Node) format(sb *strings.Builder) {
	if n == nil {
		sb.WriteString("_")
		return
	}
	sb.WriteString(n.action.String())
	if n.IsLeaf() {
		return
	}
	sb.WriteString("(")
	n.left.format(sb)
	sb.WriteString(", ")
	n.right.format(sb)
	sb.WriteString(")")
}
