package codec

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/formica/pkg/tree"
)

// Format identifies a document encoding.
type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension, defaulting to XML.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatXML
	}
}

// SaveToXML writes a single-tree XML document to path.
func SaveToXML(path string, t *tree.Tree) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteXML(w, t)
	})
}

// SaveListToXML writes a multi-tree XML document to path.
func SaveListToXML(path string, trees []*tree.Tree) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteListXML(w, trees)
	})
}

// LoadFromXML reads the first tree of an XML document.
// It returns nil without error when the document holds no tree.
func LoadFromXML(path string) (*tree.Tree, error) {
	trees, err := LoadListFromXML(path)
	if err != nil || len(trees) == 0 {
		return nil, err
	}
	return trees[0], nil
}

// LoadListFromXML reads every tree of an XML document.
func LoadListFromXML(path string) ([]*tree.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tree document: %w", err)
	}
	defer f.Close()

	trees, err := ReadXML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return trees, nil
}

// Save writes trees to path in the format implied by its extension.
func Save(path string, trees []*tree.Tree) error {
	switch FormatOf(path) {
	case FormatJSON:
		return saveBytes(path, trees, EncodeJSON)
	case FormatYAML:
		return saveBytes(path, trees, EncodeYAML)
	default:
		return SaveListToXML(path, trees)
	}
}

// Load reads trees from path in the format implied by its extension.
func Load(path string) ([]*tree.Tree, error) {
	var decode func([]byte) ([]*tree.Tree, error)
	switch FormatOf(path) {
	case FormatJSON:
		decode = DecodeJSON
	case FormatYAML:
		decode = DecodeYAML
	default:
		return LoadListFromXML(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree document: %w", err)
	}
	trees, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return trees, nil
}

func saveBytes(path string, trees []*tree.Tree, encode func([]*tree.Tree) ([]byte, error)) error {
	data, err := encode(trees)
	if err != nil {
		return fmt.Errorf("failed to encode trees: %w", err)
	}
	return writeFile(path, func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(data))
		return err
	})
}

// writeFile writes through a hidden temporary file in the destination directory,
// fsyncs it and renames it over path, so readers never observe a partial document.
func writeFile(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if err := write(tmpFile); err != nil {
		return fmt.Errorf("failed to write tree document: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
