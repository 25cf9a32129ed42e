package memory_test

import (
	"testing"

	"github.com/aretw0/formica/pkg/adapters/memory"
	"github.com/aretw0/formica/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunPopulationStoreContract(t, store)
}
