package codec

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/formica/pkg/tree"
	"gopkg.in/yaml.v3"
)

// DocumentVersion is written into JSON and YAML documents.
const DocumentVersion = 1

type document struct {
	Version int            `json:"version" yaml:"version"`
	Trees   []documentTree `json:"trees" yaml:"trees"`
}

type documentTree struct {
	Root *nodeElement `json:"root" yaml:"root"`
}

func newDocument(trees []*tree.Tree) document {
	doc := document{Version: DocumentVersion, Trees: make([]documentTree, 0, len(trees))}
	for _, t := range trees {
		root := rootElement(t)
		doc.Trees = append(doc.Trees, documentTree{Root: &root})
	}
	return doc
}

func (d document) decode() ([]*tree.Tree, error) {
	if d.Version != 0 && d.Version != DocumentVersion {
		return nil, fmt.Errorf("document version %d: %w", d.Version, ErrMalformed)
	}
	trees := make([]*tree.Tree, 0, len(d.Trees))
	for i, dt := range d.Trees {
		if dt.Root == nil {
			return nil, fmt.Errorf("tree %d has no root: %w", i, ErrMalformed)
		}
		t, err := treeFromRoot(*dt.Root)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		trees = append(trees, t)
	}
	return trees, nil
}

// EncodeJSON encodes trees as a JSON document.
func EncodeJSON(trees []*tree.Tree) ([]byte, error) {
	return json.Marshal(newDocument(trees))
}

// DecodeJSON decodes a JSON document produced by EncodeJSON.
func DecodeJSON(data []byte) ([]*tree.Tree, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return doc.decode()
}

// EncodeYAML encodes trees as a YAML document.
func EncodeYAML(trees []*tree.Tree) ([]byte, error) {
	return yaml.Marshal(newDocument(trees))
}

// DecodeYAML decodes a YAML document produced by EncodeYAML.
func DecodeYAML(data []byte) ([]*tree.Tree, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return doc.decode()
}
