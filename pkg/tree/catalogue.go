package tree

import (
	"math/rand"

	"github.com/aretw0/formica/pkg/domain"
)

// Catalogue supplies the behaviours a tree executes and the random actions the
// genetic operators draw. registry.Registry is the standard implementation.
type Catalogue interface {
	// Test evaluates a conditional action. true selects the right child.
	Test(action domain.Action, agent, world any) (bool, error)
	// Perform applies a terminal action to agent and world.
	Perform(action domain.Action, agent, world any) error

	RandomConditional(r *rand.Rand) domain.Action
	RandomTerminal(r *rand.Rand) domain.Action
	RandomAny(r *rand.Rand) domain.Action
}

// Mutator re-rolls an action with a given probability, keeping its role.
type Mutator interface {
	CloneAction(action domain.Action, rate float64) domain.Action
}
