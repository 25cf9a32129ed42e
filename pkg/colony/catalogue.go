package colony

import (
	"errors"
	"fmt"

	"github.com/aretw0/formica/pkg/domain"
	"github.com/aretw0/formica/pkg/registry"
)

// Terminal kinds.
const (
	KindForward   = domain.KindForward
	KindTurnLeft  = "turn_left"
	KindTurnRight = "turn_right"
	KindPickUp    = "pick_up"
	KindDrop      = "drop"
)

// Conditional kinds.
const (
	KindFoodAhead    = "food_ahead"
	KindWallAhead    = "wall_ahead"
	KindCarryingFood = "carrying_food"
	KindOnNest       = "on_nest"
)

// ErrState is returned when a behaviour receives something other than *Ant and *World.
var ErrState = errors.New("colony: agent must be *colony.Ant and world *colony.World")

// Catalogue returns a registry holding every colony behaviour.
func Catalogue() *registry.Registry {
	r := registry.NewRegistry()

	r.RegisterEffect(KindForward, effect(func(a *Ant, w *World) {
		x, y := a.Ahead()
		if w.At(x, y) != Wall {
			a.X = ((x % w.Width) + w.Width) % w.Width
			a.Y = ((y % w.Height) + w.Height) % w.Height
		}
	}))
	r.RegisterEffect(KindTurnLeft, effect(func(a *Ant, _ *World) {
		a.Heading = (a.Heading + 3) % 4
	}))
	r.RegisterEffect(KindTurnRight, effect(func(a *Ant, _ *World) {
		a.Heading = (a.Heading + 1) % 4
	}))
	r.RegisterEffect(KindPickUp, effect(func(a *Ant, w *World) {
		if !a.Carrying && w.At(a.X, a.Y) == Food {
			a.Carrying = true
			w.Set(a.X, a.Y, Empty)
		}
	}))
	r.RegisterEffect(KindDrop, effect(func(a *Ant, w *World) {
		if !a.Carrying {
			return
		}
		switch w.At(a.X, a.Y) {
		case Nest:
			a.Carrying = false
			a.Delivered++
		case Empty:
			a.Carrying = false
			w.Set(a.X, a.Y, Food)
		}
	}))

	r.RegisterCondition(KindFoodAhead, condition(func(a *Ant, w *World) bool {
		return w.At(a.Ahead()) == Food
	}))
	r.RegisterCondition(KindWallAhead, condition(func(a *Ant, w *World) bool {
		return w.At(a.Ahead()) == Wall
	}))
	r.RegisterCondition(KindCarryingFood, condition(func(a *Ant, _ *World) bool {
		return a.Carrying
	}))
	r.RegisterCondition(KindOnNest, condition(func(a *Ant, w *World) bool {
		return w.At(a.X, a.Y) == Nest
	}))

	return r
}

func unpack(agent, world any) (*Ant, *World, error) {
	a, ok := agent.(*Ant)
	if !ok || a == nil {
		return nil, nil, fmt.Errorf("%w: got agent %T", ErrState, agent)
	}
	w, ok := world.(*World)
	if !ok || w == nil {
		return nil, nil, fmt.Errorf("%w: got world %T", ErrState, world)
	}
	return a, w, nil
}

func effect(fn func(*Ant, *World)) registry.Effect {
	return func(agent, world any) error {
		a, w, err := unpack(agent, world)
		if err != nil {
			return err
		}
		fn(a, w)
		a.Steps++
		return nil
	}
}

func condition(fn func(*Ant, *World) bool) registry.Condition {
	return func(agent, world any) (bool, error) {
		a, w, err := unpack(agent, world)
		if err != nil {
			return false, err
		}
		return fn(a, w), nil
	}
}
