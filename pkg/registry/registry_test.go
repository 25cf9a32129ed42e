package registry_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/aretw0/formica/pkg/domain"
	"github.com/aretw0/formica/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry() *registry.Registry {
	r := registry.NewRegistry()
	r.RegisterCondition("even", func(agent, _ any) (bool, error) {
		n, ok := agent.(*int)
		if !ok {
			return false, errors.New("want *int")
		}
		return *n%2 == 0, nil
	})
	r.RegisterEffect("inc", func(agent, _ any) error {
		*agent.(*int)++
		return nil
	})
	r.RegisterEffect("dec", func(agent, _ any) error {
		*agent.(*int)--
		return nil
	})
	return r
}

func TestRegistry_Evaluate(t *testing.T) {
	r := newRegistry()
	n := 4

	ok, err := r.Test(domain.Conditional("even"), &n, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, r.Perform(domain.Terminal("inc"), &n, nil))
	assert.Equal(t, 5, n)
}

func TestRegistry_Errors(t *testing.T) {
	r := newRegistry()
	n := 0

	_, err := r.Test(domain.Conditional("missing"), &n, nil)
	assert.ErrorIs(t, err, domain.ErrUnknownKind)

	err = r.Perform(domain.Terminal("missing"), &n, nil)
	assert.ErrorIs(t, err, domain.ErrUnknownKind)

	_, err = r.Test(domain.Terminal("inc"), &n, nil)
	assert.ErrorIs(t, err, domain.ErrWrongRole)

	err = r.Perform(domain.Conditional("even"), &n, nil)
	assert.ErrorIs(t, err, domain.ErrWrongRole)
}

func TestRegistry_Lookup(t *testing.T) {
	r := newRegistry()

	a, ok := r.Lookup("even")
	assert.True(t, ok)
	assert.Equal(t, domain.Conditional("even"), a)

	a, ok = r.Lookup("dec")
	assert.True(t, ok)
	assert.Equal(t, domain.Terminal("dec"), a)

	_, ok = r.Lookup("nope")
	assert.False(t, ok)

	assert.Equal(t, []string{"dec", "inc"}, r.Kinds(domain.RoleTerminal))
	assert.Equal(t, []string{"even"}, r.Kinds(domain.RoleConditional))
}

func TestRegistry_ReRegisterSwitchesRole(t *testing.T) {
	r := newRegistry()
	r.RegisterCondition("inc", func(_, _ any) (bool, error) { return true, nil })

	a, ok := r.Lookup("inc")
	require.True(t, ok)
	assert.True(t, a.IsConditional())
	assert.Equal(t, []string{"dec"}, r.Kinds(domain.RoleTerminal))
}

func TestRegistry_Random(t *testing.T) {
	r := newRegistry()
	rng := rand.New(rand.NewSource(1))
	seen := map[domain.Action]bool{}

	for range 200 {
		assert.True(t, r.RandomConditional(rng).IsConditional())
		assert.False(t, r.RandomTerminal(rng).IsConditional())
		seen[r.RandomAny(rng)] = true
	}
	assert.Len(t, seen, 3, "RandomAny should reach every kind")
}

func TestRegistry_RandomEmptyPanics(t *testing.T) {
	r := registry.NewRegistry()
	rng := rand.New(rand.NewSource(1))
	assert.Panics(t, func() { r.RandomConditional(rng) })
	assert.Panics(t, func() { r.RandomAny(rng) })
}
