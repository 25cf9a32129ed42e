package population

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/formica/pkg/domain"
	"github.com/aretw0/formica/pkg/ports"
	"github.com/aretw0/formica/pkg/tree"
)

// DefaultLockTTL bounds how long a distributed lock outlives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates population access so that read-modify-write cycles on
// the same name never interleave. Unused locks are reference counted away.
type Manager struct {
	store ports.PopulationStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the distributed lock expiry.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager over store.
func NewManager(store ports.PopulationStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) acquire(name string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[name]
	if !exists {
		entry = &lockEntry{}
		m.locks[name] = entry
	}
	entry.refs++
	return entry
}

func (m *Manager) release(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[name]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, name)
	}
}

// Store returns the underlying store.
func (m *Manager) Store() ports.PopulationStore {
	return m.store
}

// Load retrieves a population.
func (m *Manager) Load(ctx context.Context, name string) ([]*tree.Tree, error) {
	var trees []*tree.Tree
	err := m.WithLock(ctx, name, func(ctx context.Context) error {
		var err error
		trees, err = m.store.Load(ctx, name)
		return err
	})
	return trees, err
}

// Save replaces a population.
func (m *Manager) Save(ctx context.Context, name string, trees []*tree.Tree) error {
	return m.WithLock(ctx, name, func(ctx context.Context) error {
		return m.store.Save(ctx, name, trees)
	})
}

// Delete removes a population.
func (m *Manager) Delete(ctx context.Context, name string) error {
	return m.WithLock(ctx, name, func(ctx context.Context) error {
		return m.store.Delete(ctx, name)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Update loads the population, passes it to fn and saves what fn returns, all
// under the population's lock. A missing population reaches fn as nil when
// create is true and fails with domain.ErrPopulationNotFound otherwise.
func (m *Manager) Update(ctx context.Context, name string, create bool, fn func([]*tree.Tree) ([]*tree.Tree, error)) ([]*tree.Tree, error) {
	var result []*tree.Tree
	err := m.WithLock(ctx, name, func(ctx context.Context) error {
		current, err := m.store.Load(ctx, name)
		if err != nil && !(create && errors.Is(err, domain.ErrPopulationNotFound)) {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		if err := m.store.Save(ctx, name, next); err != nil {
			return err
		}
		result = next
		return nil
	})
	return result, err
}

// WithLock executes fn while holding the lock for the population.
func (m *Manager) WithLock(ctx context.Context, name string, fn func(context.Context) error) error {
	entry := m.acquire(name)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(name)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, name, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"population", name,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
