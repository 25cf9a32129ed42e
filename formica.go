package formica

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/aretw0/formica/pkg/adapters/memory"
	"github.com/aretw0/formica/pkg/codec"
	"github.com/aretw0/formica/pkg/colony"
	"github.com/aretw0/formica/pkg/domain"
	"github.com/aretw0/formica/pkg/population"
	"github.com/aretw0/formica/pkg/ports"
	"github.com/aretw0/formica/pkg/tree"
)

// ErrNoParents is returned by Breed when the parent pool is empty.
var ErrNoParents = errors.New("breeding requires at least one parent")

// Engine is the high-level entry point for the formica library.
// It owns the random source and catalogue, reports lifecycle events and
// persists populations through a PopulationStore.
//
// Engine is not safe for concurrent use.
type Engine struct {
	catalogue tree.Catalogue
	rng       *rand.Rand
	genetics  *tree.Genetics
	store     ports.PopulationStore
	locker    ports.DistributedLocker
	pops      *population.Manager
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCatalogue sets the behaviour catalogue. Defaults to the colony catalogue.
func WithCatalogue(cat tree.Catalogue) Option {
	return func(e *Engine) {
		e.catalogue = cat
	}
}

// WithRand sets the random source used by every genetic operator.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithSeed seeds a new random source. Zero keeps the time based default.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		if seed != 0 {
			e.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithStore sets the population store. Defaults to an in-memory store.
func WithStore(store ports.PopulationStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker coordinates population updates with other processes.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	if e.catalogue == nil {
		e.catalogue = colony.Catalogue()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.store == nil {
		e.store = memory.NewStore()
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}

	popOpts := []population.Option{population.WithLogger(e.logger)}
	if e.locker != nil {
		popOpts = append(popOpts, population.WithLocker(e.locker))
	}
	e.pops = population.NewManager(e.store, popOpts...)

	e.genetics = tree.NewGenetics(e.catalogue, e.rng)
	e.genetics.OnMutation = func(from, to domain.Action) {
		if e.hooks.OnMutation != nil {
			e.hooks.OnMutation(context.Background(), &domain.MutationEvent{
				EventBase: domain.NewEventBase(domain.EventMutation),
				From:      from,
				To:        to,
			})
		}
	}
	return e
}

// Catalogue returns the catalogue the engine generates and executes with.
func (e *Engine) Catalogue() tree.Catalogue {
	return e.catalogue
}

// Rand returns the engine's random source.
func (e *Engine) Rand() *rand.Rand {
	return e.rng
}

// Store returns the population store.
func (e *Engine) Store() ports.PopulationStore {
	return e.store
}

// GenerateRandomTree grows a random tree within [minLevel, maxLevel] and simplifies it.
func (e *Engine) GenerateRandomTree(minLevel, maxLevel int) (*tree.Tree, error) {
	t, err := e.genetics.GrowRandomTree(minLevel, maxLevel)
	if err != nil {
		return nil, err
	}
	e.Simplify(t)

	if e.hooks.OnGenerate != nil {
		e.hooks.OnGenerate(context.Background(), &domain.GenerateEvent{
			EventBase: domain.NewEventBase(domain.EventGenerate),
			MinLevel:  minLevel,
			MaxLevel:  maxLevel,
			Level:     t.Level(),
			Size:      t.Size(),
		})
	}
	return t, nil
}

// GeneratePopulation generates n random trees.
func (e *Engine) GeneratePopulation(n, minLevel, maxLevel int) ([]*tree.Tree, error) {
	trees := make([]*tree.Tree, 0, n)
	for range n {
		t, err := e.GenerateRandomTree(minLevel, maxLevel)
		if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
	return trees, nil
}

// CrossBreed produces a child of t1 and t2. See tree.Genetics.CrossBreed.
func (e *Engine) CrossBreed(t1, t2 *tree.Tree, rate float64) *tree.Tree {
	side := domain.SideNone
	e.genetics.OnCrossover = func(s string) { side = s }
	defer func() { e.genetics.OnCrossover = nil }()

	child := e.genetics.CrossBreed(t1, t2, rate)
	if e.hooks.OnCrossover != nil {
		e.hooks.OnCrossover(context.Background(), &domain.CrossoverEvent{
			EventBase: domain.NewEventBase(domain.EventCrossover),
			Side:      side,
			Level:     child.Level(),
		})
	}
	return child
}

// Mutate returns a copy of t in which every action is re-rolled with probability rate.
func (e *Engine) Mutate(t *tree.Tree, rate float64) *tree.Tree {
	return t.Clone(e.genetics, rate)
}

// Simplify simplifies t in place and returns the number of nodes removed.
func (e *Engine) Simplify(t *tree.Tree) int {
	removed := t.Simplify()
	if removed > 0 && e.hooks.OnSimplify != nil {
		e.hooks.OnSimplify(context.Background(), &domain.SimplifyEvent{
			EventBase: domain.NewEventBase(domain.EventSimplify),
			Removed:   removed,
			Level:     t.Level(),
		})
	}
	return removed
}

// MakeDecision executes t once against agent and world, reporting every visited action.
func (e *Engine) MakeDecision(ctx context.Context, t *tree.Tree, agent, world any) error {
	if e.hooks.OnDecision == nil {
		return t.MakeDecision(e.catalogue, agent, world)
	}
	return t.Trace(e.catalogue, agent, world, func(action domain.Action, depth int, branch string) {
		e.hooks.OnDecision(ctx, &domain.DecisionEvent{
			EventBase: domain.NewEventBase(domain.EventDecision),
			Action:    action,
			Depth:     depth,
			Branch:    branch,
		})
	})
}

// Breed produces n offspring, each the crossover of two parents drawn at random
// from parents. The same parent may be drawn twice.
func (e *Engine) Breed(ctx context.Context, parents []*tree.Tree, n int, rate float64) ([]*tree.Tree, error) {
	if len(parents) == 0 {
		return nil, ErrNoParents
	}
	offspring := make([]*tree.Tree, 0, n)
	for range n {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t1 := parents[e.rng.Intn(len(parents))]
		t2 := parents[e.rng.Intn(len(parents))]
		offspring = append(offspring, e.CrossBreed(t1, t2, rate))
	}
	e.logger.DebugContext(ctx, "bred offspring", "parents", len(parents), "offspring", n, "rate", rate)
	return offspring, nil
}

// SaveToXML writes t as a single-tree document.
func (e *Engine) SaveToXML(path string, t *tree.Tree) error {
	if err := codec.SaveToXML(path, t); err != nil {
		e.logger.Error("failed to save tree", "path", path, "err", err)
		return err
	}
	return nil
}

// SaveListToXML writes trees as one document.
func (e *Engine) SaveListToXML(path string, trees []*tree.Tree) error {
	if err := codec.SaveListToXML(path, trees); err != nil {
		e.logger.Error("failed to save trees", "path", path, "err", err)
		return err
	}
	return nil
}

// LoadFromXML reads the first tree of the document at path.
// Missing or malformed documents are logged and yield nil.
func (e *Engine) LoadFromXML(path string) *tree.Tree {
	t, err := codec.LoadFromXML(path)
	if err != nil {
		e.logger.Error("failed to load tree", "path", path, "err", err)
		return nil
	}
	return t
}

// LoadListFromXML reads every tree of the document at path.
// Missing or malformed documents are logged and yield an empty list.
func (e *Engine) LoadListFromXML(path string) []*tree.Tree {
	trees, err := codec.LoadListFromXML(path)
	if err != nil {
		e.logger.Error("failed to load trees", "path", path, "err", err)
		return []*tree.Tree{}
	}
	return trees
}

// SavePopulation stores trees under name.
func (e *Engine) SavePopulation(ctx context.Context, name string, trees []*tree.Tree) error {
	if err := e.pops.Save(ctx, name, trees); err != nil {
		return fmt.Errorf("failed to save population %q: %w", name, err)
	}
	e.logger.InfoContext(ctx, "population saved", "population", name, "size", len(trees))
	return nil
}

// LoadPopulation loads the population stored under name.
func (e *Engine) LoadPopulation(ctx context.Context, name string) ([]*tree.Tree, error) {
	trees, err := e.pops.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load population %q: %w", name, err)
	}
	return trees, nil
}

// ListPopulations returns the names of stored populations.
func (e *Engine) ListPopulations(ctx context.Context) ([]string, error) {
	return e.pops.List(ctx)
}

// DeletePopulation removes the population stored under name.
func (e *Engine) DeletePopulation(ctx context.Context, name string) error {
	if err := e.pops.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete population %q: %w", name, err)
	}
	e.logger.InfoContext(ctx, "population deleted", "population", name)
	return nil
}

// BreedPopulation appends n offspring to the population stored under name and
// returns the updated population. The load, breed and save happen under the
// population's lock.
func (e *Engine) BreedPopulation(ctx context.Context, name string, n int, rate float64) ([]*tree.Tree, error) {
	trees, err := e.pops.Update(ctx, name, false, func(parents []*tree.Tree) ([]*tree.Tree, error) {
		offspring, err := e.Breed(ctx, parents, n, rate)
		if err != nil {
			return nil, err
		}
		return append(parents, offspring...), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to breed population %q: %w", name, err)
	}
	e.logger.InfoContext(ctx, "population bred", "population", name, "size", len(trees), "offspring", n)
	return trees, nil
}
