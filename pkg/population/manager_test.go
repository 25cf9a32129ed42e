package population

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/formica/pkg/adapters/memory"
	"github.com/aretw0/formica/pkg/domain"
	"github.com/aretw0/formica/pkg/ports"
	"github.com/aretw0/formica/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewStore())
	ctx := context.Background()

	for i := range 1000 {
		name := fmt.Sprintf("gen-%d", i)
		require.NoError(t, mgr.Save(ctx, name, nil))
		require.NoError(t, mgr.Delete(ctx, name))
	}

	assert.Empty(t, mgr.locks, "locks must be released once unused")
}

func TestManager_UpdateIsSerialised(t *testing.T) {
	mgr := NewManager(memory.NewStore())
	ctx := context.Background()
	require.NoError(t, mgr.Save(ctx, "pop", nil))

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := mgr.Update(ctx, "pop", false, func(trees []*tree.Tree) ([]*tree.Tree, error) {
				time.Sleep(time.Millisecond)
				return append(trees, tree.New()), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	trees, err := mgr.Load(ctx, "pop")
	require.NoError(t, err)
	assert.Len(t, trees, 20, "no update may be lost")
}

func TestManager_Update(t *testing.T) {
	mgr := NewManager(memory.NewStore())
	ctx := context.Background()
	grow := func(trees []*tree.Tree) ([]*tree.Tree, error) {
		return append(trees, tree.New()), nil
	}

	_, err := mgr.Update(ctx, "missing", false, grow)
	assert.ErrorIs(t, err, domain.ErrPopulationNotFound)

	created, err := mgr.Update(ctx, "fresh", true, grow)
	require.NoError(t, err)
	assert.Len(t, created, 1)

	boom := errors.New("boom")
	_, err = mgr.Update(ctx, "fresh", false, func([]*tree.Tree) ([]*tree.Tree, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := mgr.Load(ctx, "fresh")
	require.NoError(t, err)
	assert.Len(t, stored, 1, "a failed update leaves the population untouched")
}

type recordingLocker struct {
	mu     sync.Mutex
	locked []string
	fail   error
}

func (l *recordingLocker) Lock(_ context.Context, key string, _ time.Duration) (ports.UnlockFunc, error) {
	if l.fail != nil {
		return nil, l.fail
	}
	l.mu.Lock()
	l.locked = append(l.locked, key)
	l.mu.Unlock()
	return func(context.Context) error { return errors.New("already expired") }, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &recordingLocker{}
	mgr := NewManager(memory.NewStore(), WithLocker(locker), WithLockTTL(time.Second))
	ctx := context.Background()

	require.NoError(t, mgr.Save(ctx, "a", nil), "unlock failures are only logged")
	_, err := mgr.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a"}, locker.locked)

	locker.fail = errors.New("redis down")
	err = mgr.Save(ctx, "a", nil)
	assert.ErrorIs(t, err, locker.fail)
}
