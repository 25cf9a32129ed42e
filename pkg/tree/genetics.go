package tree

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/aretw0/formica/pkg/domain"
)

// Genetics bundles the random source and catalogue used by the genetic operators.
// It is not safe for concurrent use.
type Genetics struct {
	Rand      *rand.Rand
	Catalogue Catalogue

	// OnMutation is called whenever CloneAction replaces an action.
	OnMutation func(from, to domain.Action)
	// OnCrossover is called with the replaced side (domain.SideLeft, SideRight or SideNone).
	OnCrossover func(side string)
}

// NewGenetics creates genetics over cat drawing from rng.
func NewGenetics(cat Catalogue, rng *rand.Rand) *Genetics {
	return &Genetics{Rand: rng, Catalogue: cat}
}

// Returned by the operators when Genetics is missing a dependency.
var (
	ErrNoRand      = errors.New("random source is required")
	ErrNoCatalogue = errors.New("catalogue is required")
)

func (g *Genetics) check() error {
	if g == nil || g.Rand == nil {
		return ErrNoRand
	}
	if g.Catalogue == nil {
		return ErrNoCatalogue
	}
	return nil
}

// CloneAction returns action unchanged, or with probability rate a fresh random
// action of the same role. A NaN rate never mutates.
func (g *Genetics) CloneAction(action domain.Action, rate float64) domain.Action {
	if !(rate > 0) || g.Rand.Float64() >= rate {
		return action
	}
	next := g.Catalogue.RandomTerminal(g.Rand)
	if action.IsConditional() {
		next = g.Catalogue.RandomConditional(g.Rand)
	}
	if g.OnMutation != nil {
		g.OnMutation(action, next)
	}
	return next
}

// CrossBreed produces a child from two parents.
//
// When both roots are conditional the child is a mutated clone of t1 in which one
// root branch, chosen by a fair coin, is replaced by a mutated clone of the same
// branch of t2; the child is then simplified. Otherwise the child is a mutated clone
// of t1. The child never shares nodes with either parent.
//
// CrossBreed panics when g has no random source or catalogue.
func (g *Genetics) CrossBreed(t1, t2 *Tree, rate float64) *Tree {
	if err := g.check(); err != nil {
		panic(fmt.Errorf("tree: crossbreed: %w", err))
	}
	side := domain.SideNone
	defer func() {
		if g.OnCrossover != nil {
			g.OnCrossover(side)
		}
	}()

	if !t1.root.action.IsConditional() || !t2.root.action.IsConditional() {
		return FromRoot(t1.root.Clone(g, rate))
	}

	child := t1.root.Clone(g, rate)
	if g.Rand.Intn(2) == 0 {
		if donor := t2.root.left; donor != nil {
			child.SetLeft(donor.Clone(g, rate))
			side = domain.SideLeft
		}
	} else {
		if donor := t2.root.right; donor != nil {
			child.SetRight(donor.Clone(g, rate))
			side = domain.SideRight
		}
	}

	t := FromRoot(child)
	t.Simplify()
	return t
}

// GrowRandomTree builds an unsimplified random tree.
//
// The root is conditional. A child at depth d is forced conditional while
// d < minLevel and forced terminal once d >= maxLevel, so every root-to-terminal
// path has a length in [minLevel, maxLevel]. minLevel is raised to 1 because the
// root is always conditional.
func (g *Genetics) GrowRandomTree(minLevel, maxLevel int) (*Tree, error) {
	if err := g.check(); err != nil {
		return nil, err
	}
	minLevel = max(minLevel, 1)
	if maxLevel < minLevel {
		return nil, fmt.Errorf("min %d, max %d: %w", minLevel, maxLevel, domain.ErrInvalidLevels)
	}

	root := NewNode(g.Catalogue.RandomConditional(g.Rand))
	g.grow(root, 1, minLevel, maxLevel)
	return FromRoot(root), nil
}

// GenerateRandomTree is GrowRandomTree followed by Simplify. The realised level
// may be lower than minLevel after simplification.
func (g *Genetics) GenerateRandomTree(minLevel, maxLevel int) (*Tree, error) {
	t, err := g.GrowRandomTree(minLevel, maxLevel)
	if err != nil {
		return nil, err
	}
	t.Simplify()
	return t, nil
}

// GeneratePopulation generates n simplified random trees.
func (g *Genetics) GeneratePopulation(n, minLevel, maxLevel int) ([]*Tree, error) {
	trees := make([]*Tree, 0, n)
	for range n {
		t, err := g.GenerateRandomTree(minLevel, maxLevel)
		if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
	return trees, nil
}

func (g *Genetics) grow(current *Node, depth, minLevel, maxLevel int) {
	if !current.action.IsConditional() {
		return
	}
	current.SetLeft(NewNode(g.randomAt(depth, minLevel, maxLevel)))
	current.SetRight(NewNode(g.randomAt(depth, minLevel, maxLevel)))

	g.grow(current.right, depth+1, minLevel, maxLevel)
	g.grow(current.left, depth+1, minLevel, maxLevel)
}

func (g *Genetics) randomAt(depth, minLevel, maxLevel int) domain.Action {
	switch {
	case depth < minLevel:
		return g.Catalogue.RandomConditional(g.Rand)
	case depth >= maxLevel:
		return g.Catalogue.RandomTerminal(g.Rand)
	default:
		return g.Catalogue.RandomAny(g.Rand)
	}
}
