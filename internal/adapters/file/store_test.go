package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/formica/internal/adapters/file"
	"github.com/aretw0/formica/pkg/codec"
	"github.com/aretw0/formica/pkg/domain"
	"github.com/aretw0/formica/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements PopulationStore
var _ ports.PopulationStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunPopulationStoreContract(t, store)
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "gen-1", nil))
	_, err := os.Stat(filepath.Join(dir, "gen-1.xml"))
	assert.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644))
	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"gen-1"}, names)
}

func TestFileStore_InvalidNames(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", "..", ".hidden", "a/b", `a\b`} {
		assert.ErrorIs(t, store.Save(ctx, name, nil), domain.ErrInvalidName, name)
		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrInvalidName, name)
	}
}

func TestFileStore_ListsTmpPrefixedNames(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tmp-x", nil))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".stale.xml"), nil, 0644))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tmp-x"}, names)
}

func TestFileStore_CorruptDocument(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.xml"), []byte("<tree><node>"), 0644))

	_, err := store.Load(context.Background(), "bad")
	assert.ErrorIs(t, err, codec.ErrMalformed)
}

func TestFileStore_ListMissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "missing"))
	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestNew_DefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".formica", "populations"), file.New("").BasePath)
}
