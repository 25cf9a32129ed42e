package codec

import (
	"errors"
	"fmt"

	"github.com/aretw0/formica/pkg/domain"
	"github.com/aretw0/formica/pkg/tree"
)

// ErrMalformed is returned when a document does not describe valid trees.
var ErrMalformed = errors.New("malformed tree document")

// Roles used for node elements.
const (
	RoleHead  = "head"
	RoleLeft  = tree.BranchLeft
	RoleRight = tree.BranchRight
)

// nodeElement is the encoding of one node, shared by every format.
type nodeElement struct {
	Role     string        `xml:"role,attr,omitempty" json:"role,omitempty" yaml:"role,omitempty"`
	Index    int           `xml:"index,attr" json:"index" yaml:"index"`
	Action   actionElement `xml:"action" json:"action" yaml:"action"`
	Children []nodeElement `xml:"node" json:"children,omitempty" yaml:"children,omitempty"`
}

type actionElement struct {
	Kind        string `xml:"kind,attr" json:"kind" yaml:"kind"`
	Conditional bool   `xml:"conditional,attr" json:"conditional" yaml:"conditional"`
}

func toElement(n *tree.Node, role string, index int) nodeElement {
	e := nodeElement{
		Role:  role,
		Index: index,
		Action: actionElement{
			Kind:        n.Action().Kind,
			Conditional: n.Action().IsConditional(),
		},
	}
	if l := n.Left(); l != nil {
		e.Children = append(e.Children, toElement(l, RoleLeft, 0))
	}
	if r := n.Right(); r != nil {
		e.Children = append(e.Children, toElement(r, RoleRight, 1))
	}
	return e
}

func fromElement(e nodeElement) (*tree.Node, error) {
	if e.Action.Kind == "" {
		return nil, fmt.Errorf("node without action kind: %w", ErrMalformed)
	}
	action := domain.Terminal(e.Action.Kind)
	if e.Action.Conditional {
		action = domain.Conditional(e.Action.Kind)
	}
	if len(e.Children) != action.Arity() {
		return nil, fmt.Errorf("%s node %q has %d children: %w", action.Role, action.Kind, len(e.Children), ErrMalformed)
	}
	if !action.IsConditional() {
		return tree.NewNode(action), nil
	}

	var slots [2]*nodeElement
	for i := range e.Children {
		child := &e.Children[i]
		slot, err := slotOf(child)
		if err != nil {
			return nil, err
		}
		if slots[slot] != nil {
			return nil, fmt.Errorf("node %q has two %s children: %w", action.Kind, child.Role, ErrMalformed)
		}
		slots[slot] = child
	}

	left, err := fromElement(*slots[0])
	if err != nil {
		return nil, err
	}
	right, err := fromElement(*slots[1])
	if err != nil {
		return nil, err
	}
	return tree.Branch(action, left, right), nil
}

// slotOf resolves a child position from its role, falling back to its index.
func slotOf(e *nodeElement) (int, error) {
	switch e.Role {
	case RoleLeft:
		return 0, nil
	case RoleRight:
		return 1, nil
	case "":
		if e.Index == 0 || e.Index == 1 {
			return e.Index, nil
		}
		return 0, fmt.Errorf("child index %d out of range: %w", e.Index, ErrMalformed)
	default:
		return 0, fmt.Errorf("unknown child role %q: %w", e.Role, ErrMalformed)
	}
}

func rootElement(t *tree.Tree) nodeElement {
	return toElement(t.Root(), RoleHead, 0)
}

func treeFromRoot(e nodeElement) (*tree.Tree, error) {
	root, err := fromElement(e)
	if err != nil {
		return nil, err
	}
	return tree.FromRoot(root), nil
}
