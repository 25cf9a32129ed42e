package codec

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/formica/pkg/tree"
)

type xmlTree struct {
	XMLName xml.Name      `xml:"tree"`
	Nodes   []nodeElement `xml:"node"`
}

type xmlPopulation struct {
	XMLName xml.Name  `xml:"population"`
	Trees   []xmlTree `xml:"tree"`
}

func newXMLTree(t *tree.Tree) xmlTree {
	return xmlTree{Nodes: []nodeElement{rootElement(t)}}
}

// WriteXML writes a single-tree document with a <tree> root element.
func WriteXML(w io.Writer, t *tree.Tree) error {
	return encodeXML(w, newXMLTree(t))
}

// WriteListXML writes a <population> document holding one <tree> per tree.
func WriteListXML(w io.Writer, trees []*tree.Tree) error {
	doc := xmlPopulation{Trees: make([]xmlTree, 0, len(trees))}
	for _, t := range trees {
		doc.Trees = append(doc.Trees, newXMLTree(t))
	}
	return encodeXML(w, doc)
}

func encodeXML(w io.Writer, v any) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode xml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// ReadXML decodes every <tree> element of a document, at any depth and in order.
// A document without tree elements yields an empty slice.
func ReadXML(r io.Reader) ([]*tree.Tree, error) {
	dec := xml.NewDecoder(r)
	trees := []*tree.Tree{}
	seenElement := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		seenElement = true
		if se.Name.Local != "tree" {
			continue
		}

		var elem xmlTree
		if err := dec.DecodeElement(&elem, &se); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if len(elem.Nodes) != 1 {
			return nil, fmt.Errorf("tree element has %d nodes: %w", len(elem.Nodes), ErrMalformed)
		}
		t, err := treeFromRoot(elem.Nodes[0])
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", len(trees), err)
		}
		trees = append(trees, t)
	}

	if !seenElement {
		return nil, fmt.Errorf("document has no root element: %w", ErrMalformed)
	}
	return trees, nil
}
