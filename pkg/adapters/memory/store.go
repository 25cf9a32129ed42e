package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/formica/pkg/domain"
	"github.com/aretw0/formica/pkg/tree"
)

// Store implements ports.PopulationStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]*tree.Tree
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]*tree.Tree),
	}
}

// Save persists deep copies of the trees, so callers keep ownership of theirs.
func (s *Store) Save(ctx context.Context, name string, trees []*tree.Tree) error {
	copied := cloneAll(trees)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load returns deep copies so callers cannot mutate stored trees.
func (s *Store) Load(ctx context.Context, name string) ([]*tree.Tree, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trees, ok := s.data[name]
	if !ok {
		return nil, domain.ErrPopulationNotFound
	}
	return cloneAll(trees), nil
}

// Delete removes the population.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns stored population names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func cloneAll(trees []*tree.Tree) []*tree.Tree {
	out := make([]*tree.Tree, 0, len(trees))
	for _, t := range trees {
		out = append(out, t.Clone(nil, 0))
	}
	return out
}
