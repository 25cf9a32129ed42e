package registry

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/aretw0/formica/pkg/domain"
)

// Condition implements a conditional behaviour.
// It derives a branch choice from agent and world: true selects the right child.
type Condition func(agent, world any) (bool, error)

// Effect implements a terminal behaviour by acting on agent and world.
type Effect func(agent, world any) error

// Registry is the catalogue of available behaviours.
// It evaluates actions by kind and draws random actions for generation and mutation.
type Registry struct {
	mu           sync.RWMutex
	conditions   map[string]Condition
	effects      map[string]Effect
	conditionals []string
	terminals    []string
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		conditions: make(map[string]Condition),
		effects:    make(map[string]Effect),
	}
}

// RegisterCondition adds a conditional behaviour.
// If a behaviour with the same kind exists, it is overwritten.
func (r *Registry) RegisterCondition(kind string, fn Condition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.effects, kind)
	r.conditions[kind] = fn
	r.reindex()
}

// RegisterEffect adds a terminal behaviour.
// If a behaviour with the same kind exists, it is overwritten.
func (r *Registry) RegisterEffect(kind string, fn Effect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conditions, kind)
	r.effects[kind] = fn
	r.reindex()
}

// reindex keeps sorted kind lists so a seeded rand draws the same actions every run.
func (r *Registry) reindex() {
	r.conditionals = sortedKeys(r.conditions)
	r.terminals = sortedKeys(r.effects)
}

// Lookup resolves a kind to its action value.
func (r *Registry) Lookup(kind string) (domain.Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.conditions[kind]; ok {
		return domain.Conditional(kind), true
	}
	if _, ok := r.effects[kind]; ok {
		return domain.Terminal(kind), true
	}
	return domain.Action{}, false
}

// Kinds returns every registered kind of the given role, sorted.
func (r *Registry) Kinds(role domain.Role) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src := r.terminals
	if role == domain.RoleConditional {
		src = r.conditionals
	}
	return append([]string(nil), src...)
}

// Test evaluates a conditional action.
func (r *Registry) Test(action domain.Action, agent, world any) (bool, error) {
	if !action.IsConditional() {
		return false, fmt.Errorf("test %s: %w", action, domain.ErrWrongRole)
	}
	r.mu.RLock()
	fn, ok := r.conditions[action.Kind]
	r.mu.RUnlock()
	if !ok {
		return false, fmt.Errorf("condition %q: %w", action.Kind, domain.ErrUnknownKind)
	}
	return fn(agent, world)
}

// Perform executes a terminal action.
func (r *Registry) Perform(action domain.Action, agent, world any) error {
	if action.IsConditional() {
		return fmt.Errorf("perform %s: %w", action, domain.ErrWrongRole)
	}
	r.mu.RLock()
	fn, ok := r.effects[action.Kind]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("effect %q: %w", action.Kind, domain.ErrUnknownKind)
	}
	return fn(agent, world)
}

// RandomConditional draws a conditional action uniformly.
// It panics if no conditional is registered.
func (r *Registry) RandomConditional(rng *rand.Rand) domain.Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return domain.Conditional(pick(rng, r.conditionals, "conditional"))
}

// RandomTerminal draws a terminal action uniformly.
// It panics if no terminal is registered.
func (r *Registry) RandomTerminal(rng *rand.Rand) domain.Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return domain.Terminal(pick(rng, r.terminals, "terminal"))
}

// RandomAny draws uniformly over every registered kind.
func (r *Registry) RandomAny(rng *rand.Rand) domain.Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := len(r.conditionals) + len(r.terminals)
	if total == 0 {
		panic("registry: no actions registered")
	}
	i := rng.Intn(total)
	if i < len(r.conditionals) {
		return domain.Conditional(r.conditionals[i])
	}
	return domain.Terminal(r.terminals[i-len(r.conditionals)])
}

func pick(rng *rand.Rand, kinds []string, role string) string {
	if len(kinds) == 0 {
		panic("registry: no " + role + " actions registered")
	}
	return kinds[rng.Intn(len(kinds))]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
