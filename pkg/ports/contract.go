package ports

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/aretw0/formica/pkg/colony"
	"github.com/aretw0/formica/pkg/domain"
	"github.com/aretw0/formica/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunPopulationStoreContract runs a suite of tests to verify that a PopulationStore
// implementation adheres to the defined interface contract.
func RunPopulationStoreContract(t *testing.T, store PopulationStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	g := tree.NewGenetics(colony.Catalogue(), rand.New(rand.NewSource(1)))
	population, err := g.GeneratePopulation(4, 2, 4)
	require.NoError(t, err)

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, population), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		require.Len(t, loaded, len(population))
		for i := range population {
			assert.True(t, population[i].Equal(loaded[i]), "tree %d differs", i)
			assert.NoError(t, loaded[i].Validate())
		}
	})

	t.Run("Loaded trees are independent", func(t *testing.T) {
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		loaded[0].Root().SetLeft(tree.NewNode(domain.Terminal(colony.KindDrop)))

		again, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.True(t, population[0].Equal(again[0]), "mutating a loaded tree must not change the store")
	})

	t.Run("Save overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, population[:1]))
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Len(t, loaded, 1)
	})

	t.Run("Empty population", func(t *testing.T) {
		empty := name + "-empty"
		require.NoError(t, store.Save(ctx, empty, nil))
		defer func() { _ = store.Delete(ctx, empty) }()

		loaded, err := store.Load(ctx, empty)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrPopulationNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, population))

		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrPopulationNotFound, "Load after Delete should return ErrPopulationNotFound")
		assert.NoError(t, store.Delete(ctx, name), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		_ = store.Save(ctx, id1, population)
		_ = store.Save(ctx, id2, population)

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
	})
}
