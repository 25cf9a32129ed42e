package tree_test

import (
	"testing"

	"github.com/aretw0/formica/internal/testutils"
	"github.com/aretw0/formica/pkg/colony"
	"github.com/aretw0/formica/pkg/domain"
	"github.com/aretw0/formica/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	leaf = testutils.Leaf
	cond = testutils.If
)

func TestNode_Level(t *testing.T) {
	tests := []struct {
		name string
		node *tree.Node
		want int
	}{
		{"terminal", leaf(colony.KindForward), 0},
		{"single conditional", cond(colony.KindFoodAhead, leaf(colony.KindForward), leaf(colony.KindPickUp)), 1},
		{
			"unbalanced",
			cond(colony.KindFoodAhead,
				leaf(colony.KindForward),
				cond(colony.KindWallAhead,
					leaf(colony.KindTurnLeft),
					cond(colony.KindOnNest, leaf(colony.KindDrop), leaf(colony.KindForward)))),
			3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.Level())
		})
	}
}

func TestNode_LevelFormulaOnRandomTrees(t *testing.T) {
	for _, tr := range testutils.RandomTrees(t, 3, 20, 1, 6) {
		tr.Root().Walk(func(n *tree.Node, _ int) bool {
			if n.Action().IsConditional() {
				assert.Equal(t, 1+max(n.Left().Level(), n.Right().Level()), n.Level())
			} else {
				assert.Equal(t, 0, n.Level())
			}
			return true
		})
	}
}

func TestNode_SetChildrenKeepsParents(t *testing.T) {
	a := leaf(colony.KindForward)
	b := leaf(colony.KindDrop)
	root := cond(colony.KindFoodAhead, a, b)
	require.Same(t, root, a.Parent())
	require.Same(t, root, b.Parent())

	other := cond(colony.KindWallAhead, leaf(colony.KindTurnLeft), leaf(colony.KindTurnRight))
	other.SetLeft(a)

	assert.Same(t, other, a.Parent())
	assert.Nil(t, root.Left(), "moving a node must unlink it from its old parent")

	replaced := other.Right()
	other.SetRight(b)
	assert.Nil(t, replaced.Parent())
	assert.Same(t, other, b.Parent())
	assert.Nil(t, root.Right())
	assert.NoError(t, other.Validate())
}

func TestNode_Execute(t *testing.T) {
	cat := colony.Catalogue()
	// carrying_food? false -> forward, true -> drop
	root := cond(colony.KindCarryingFood, leaf(colony.KindForward), leaf(colony.KindDrop))

	t.Run("false takes the left branch", func(t *testing.T) {
		w := colony.NewWorld(4, 4)
		ant := &colony.Ant{X: 1, Y: 1, Heading: colony.East}
		require.NoError(t, root.Execute(cat, ant, w))
		assert.Equal(t, 2, ant.X)
		assert.Equal(t, 1, ant.Steps)
	})

	t.Run("true takes the right branch", func(t *testing.T) {
		w := colony.NewWorld(4, 4)
		w.Set(1, 1, colony.Nest)
		ant := &colony.Ant{X: 1, Y: 1, Carrying: true}
		require.NoError(t, root.Execute(cat, ant, w))
		assert.False(t, ant.Carrying)
		assert.Equal(t, 1, ant.Delivered)
		assert.Equal(t, 1, ant.X)
	})

	t.Run("trace reports the path", func(t *testing.T) {
		var visited []string
		ant := &colony.Ant{Carrying: true}
		err := root.Trace(cat, ant, colony.NewWorld(3, 3), func(a domain.Action, depth int, branch string) {
			visited = append(visited, a.Kind+":"+branch)
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"carrying_food:right", "drop:"}, visited)
	})

	t.Run("wrong state types", func(t *testing.T) {
		err := root.Execute(cat, "ant", nil)
		assert.ErrorIs(t, err, colony.ErrState)
	})
}

func TestNode_ExecuteMissingChild(t *testing.T) {
	root := tree.NewNode(domain.Conditional(colony.KindCarryingFood))
	root.SetLeft(leaf(colony.KindForward))

	err := root.Execute(colony.Catalogue(), &colony.Ant{Carrying: true}, colony.NewWorld(3, 3))
	assert.ErrorIs(t, err, domain.ErrStructure)
}

func TestNode_Validate(t *testing.T) {
	good := cond(colony.KindFoodAhead, leaf(colony.KindForward), leaf(colony.KindPickUp))
	assert.NoError(t, good.Validate())

	oneChild := tree.NewNode(domain.Conditional(colony.KindFoodAhead))
	oneChild.SetRight(leaf(colony.KindForward))
	assert.ErrorIs(t, oneChild.Validate(), domain.ErrStructure)

	terminalWithChild := tree.NewNode(domain.Terminal(colony.KindForward))
	terminalWithChild.SetLeft(leaf(colony.KindDrop))
	assert.ErrorIs(t, terminalWithChild.Validate(), domain.ErrStructure)
}

func TestNode_CloneWithoutMutation(t *testing.T) {
	g := testutils.Genetics(11)
	for _, original := range testutils.RandomTrees(t, 5, 10, 2, 5) {
		clone := original.Clone(g, 0)

		assert.True(t, original.Equal(clone))
		assert.NoError(t, clone.Validate())
		testutils.AssertSameBehaviour(t, original, clone)

		shared := testutils.Nodes(original)
		for n := range testutils.Nodes(clone) {
			assert.False(t, shared[n], "clone must not alias original nodes")
		}
	}
}

func TestNode_CloneMutationKeepsShapeAndRoles(t *testing.T) {
	g := testutils.Genetics(13)
	mutations := 0
	g.OnMutation = func(from, to domain.Action) {
		mutations++
		assert.Equal(t, from.Role, to.Role)
	}

	original := testutils.RandomTrees(t, 17, 1, 3, 5)[0]
	clone := original.Clone(g, 1)

	assert.Equal(t, original.Size(), mutations, "rate 1 re-rolls every node")
	assert.Equal(t, original.Level(), clone.Level())
	assert.Equal(t, shape(original.Root()), shape(clone.Root()))
	assert.NoError(t, clone.Validate())
}

func shape(n *tree.Node) string {
	if n == nil {
		return "_"
	}
	if n.IsLeaf() {
		return string(n.Action().Role[0])
	}
	return "c(" + shape(n.Left()) + "," + shape(n.Right()) + ")"
}

func TestNode_String(t *testing.T) {
	n := cond(colony.KindFoodAhead, leaf(colony.KindForward), leaf(colony.KindPickUp))
	assert.Equal(t, "food_ahead?(forward, pick_up)", n.String())
}
