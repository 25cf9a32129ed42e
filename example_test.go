package formica_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/formica"
	"github.com/aretw0/formica/pkg/colony"
	"github.com/aretw0/formica/pkg/domain"
	"github.com/aretw0/formica/pkg/tree"
)

// ExampleEngine_Simplify shows a nested test of the same condition collapsing
// into the branch it would always take.
func ExampleEngine_Simplify() {
	eng := formica.New()

	t := tree.FromRoot(tree.Branch(domain.Conditional(colony.KindFoodAhead),
		tree.Branch(domain.Conditional(colony.KindFoodAhead),
			tree.NewNode(domain.Terminal(colony.KindTurnLeft)),
			tree.NewNode(domain.Terminal(colony.KindDrop)),
		),
		tree.NewNode(domain.Terminal(colony.KindForward)),
	))

	fmt.Println(t)
	fmt.Println("removed:", eng.Simplify(t))
	fmt.Println(t)
	// Output:
	// food_ahead?(food_ahead?(turn_left, drop), forward)
	// removed: 2
	// food_ahead?(turn_left, forward)
}

// ExampleEngine_MakeDecision drives a single ant with a hand-built tree.
func ExampleEngine_MakeDecision() {
	eng := formica.New(formica.WithLifecycleHooks(domain.LifecycleHooks{
		OnDecision: func(_ context.Context, e *domain.DecisionEvent) {
			if e.Branch == "" {
				fmt.Println(e.Depth, e.Action)
				return
			}
			fmt.Println(e.Depth, e.Action, e.Branch)
		},
	}))

	t := tree.FromRoot(tree.Branch(domain.Conditional(colony.KindWallAhead),
		tree.NewNode(domain.Terminal(colony.KindForward)),
		tree.NewNode(domain.Terminal(colony.KindTurnRight)),
	))

	world := colony.NewWorld(5, 5)
	world.Set(2, 1, colony.Wall)
	ant := &colony.Ant{X: 2, Y: 2, Heading: colony.North}

	if err := eng.MakeDecision(context.Background(), t, ant, world); err != nil {
		log.Fatal(err)
	}
	fmt.Println("heading:", ant.Heading)
	// Output:
	// 0 wall_ahead? right
	// 1 turn_right
	// heading: east
}
