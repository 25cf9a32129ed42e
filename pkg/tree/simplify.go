package tree

import (
	"slices"

	"github.com/aretw0/formica/pkg/domain"
)

// SimplifyDuplicateConditions removes conditionals whose outcome is already decided
// by an ancestor on the current path and returns the replacement subtree.
//
// knownFalse holds conditions passed through their left branch, knownTrue those
// passed through their right branch. Conditions are pure within one decision, so a
// repeated condition always takes the same branch as its ancestor and the other
// branch is unreachable.
func (n *Node) SimplifyDuplicateConditions(knownFalse, knownTrue []domain.Action) *Node {
	if n == nil || !n.action.IsConditional() {
		return n
	}

	switch {
	case n.right != nil && slices.Contains(knownTrue, n.action):
		return n.right.detach().SimplifyDuplicateConditions(knownFalse, knownTrue)
	case n.left != nil && slices.Contains(knownFalse, n.action):
		return n.left.detach().SimplifyDuplicateConditions(knownFalse, knownTrue)
	}

	// Clip capacity so the two branches never share a backing array.
	leftFalse := append(slices.Clip(knownFalse), n.action)
	rightTrue := append(slices.Clip(knownTrue), n.action)

	if n.left != nil {
		n.SetLeft(n.left.SimplifyDuplicateConditions(leftFalse, knownTrue))
	}
	if n.right != nil {
		n.SetRight(n.right.SimplifyDuplicateConditions(knownFalse, rightTrue))
	}
	return n
}

// SimplifySymmetricConditions collapses every conditional whose two subtrees are
// structurally equal into that subtree, bottom-up, and returns the replacement.
func (n *Node) SimplifySymmetricConditions() *Node {
	if n == nil || !n.action.IsConditional() {
		return n
	}
	if n.left != nil {
		n.SetLeft(n.left.SimplifySymmetricConditions())
	}
	if n.right != nil {
		n.SetRight(n.right.SimplifySymmetricConditions())
	}
	if n.left != nil && n.left.Equal(n.right) {
		return n.left.detach()
	}
	return n
}
