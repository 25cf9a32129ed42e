package ports

import (
	"context"

	"github.com/aretw0/formica/pkg/tree"
)

// PopulationStore persists named populations of trees.
type PopulationStore interface {
	// Save replaces the population stored under name.
	Save(ctx context.Context, name string, trees []*tree.Tree) error

	// Load retrieves a population.
	// Returns domain.ErrPopulationNotFound if the population does not exist.
	Load(ctx context.Context, name string) ([]*tree.Tree, error)

	// Delete removes a population. Deleting a missing population is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored population names.
	List(ctx context.Context) ([]string, error)
}
