package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/formica/pkg/codec"
	"github.com/aretw0/formica/pkg/domain"
	"github.com/aretw0/formica/pkg/tree"
)

const ext = ".xml"

// Store implements ports.PopulationStore using the local filesystem.
// Each population is an XML document in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".formica/populations".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".formica", "populations")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty name: %w", domain.ErrInvalidName)
	}
	// Leading dots are reserved for hidden and temporary files.
	if strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%q: %w", name, domain.ErrInvalidName)
	}
	return filepath.Join(s.BasePath, name+ext), nil
}

// Save writes the population document atomically.
func (s *Store) Save(ctx context.Context, name string, trees []*tree.Tree) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	return codec.SaveListToXML(path, trees)
}

// Load reads the population document.
func (s *Store) Load(ctx context.Context, name string) ([]*tree.Tree, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	trees, err := codec.LoadListFromXML(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrPopulationNotFound
		}
		return nil, err
	}
	return trees, nil
}

// Delete removes the population document.
func (s *Store) Delete(ctx context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete population file: %w", err)
	}
	return nil
}

// List returns the names of every population document.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list populations: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ext || strings.HasPrefix(name, ".") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ext))
	}
	return names, nil
}
