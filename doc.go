/*
Package formica evolves binary decision trees that drive agents through a world.

A tree is built from two kinds of actions: conditionals, which inspect the agent
and its world and pick one of two children, and terminals, which act on them.
The Engine generates random trees within depth bounds, mutates and crosses them
over, simplifies away redundant conditions, and persists populations as XML
documents or through a PopulationStore.

# Usage

	package main

	import (
		"context"
		"log"
		"math/rand"

		"github.com/aretw0/formica"
		"github.com/aretw0/formica/pkg/colony"
	)

	func main() {
		eng := formica.New(formica.WithSeed(42))

		parents, err := eng.GeneratePopulation(10, 2, 5)
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		children, err := eng.Breed(ctx, parents, 10, 0.05)
		if err != nil {
			log.Fatal(err)
		}

		for _, s := range colony.Sample(rand.New(rand.NewSource(1)), 1) {
			if err := eng.MakeDecision(ctx, children[0], s.Ant, s.World); err != nil {
				log.Fatal(err)
			}
		}

		if err := eng.SaveListToXML("population.xml", children); err != nil {
			log.Fatal(err)
		}
	}

# Observability

Lifecycle hooks receive an event for every decision, mutation, crossover,
simplification and generated tree. See pkg/observability for Prometheus
collectors and log hooks built on them.

# Catalogues

The engine defaults to the ant colony catalogue in pkg/colony. Any type
implementing tree.Catalogue can replace it, usually a registry.Registry.
*/
package formica
