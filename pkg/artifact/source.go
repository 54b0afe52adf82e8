package artifact

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/paramgraph/pkg/errors"
	"github.com/matzehuels/paramgraph/pkg/paramgraph"
)

// ParseSource decodes a source graph document and validates it.
//
// A source document is the human-authored or schema-generated description of
// a graph, using the field names of [paramgraph.Graph]:
//
//	strings: [findMany, where]
//	inputNodes:
//	  - edges: {1: {flags: 1, scalarMask: 1}}
//	roots:
//	  findMany: {argsNodeId: 0}
//
// ParseSource returns an error if:
//   - The document cannot be decoded in format f
//   - A root key is not of the form "action" or "Model.action"
//   - [paramgraph.Graph.Validate] reports dangling references
func ParseSource(data []byte, f Format) (*paramgraph.Graph, error) {
	var g paramgraph.Graph
	if err := unmarshal(data, &g, f); err != nil {
		return nil, err
	}
	for _, k := range g.RootKeys() {
		if err := errors.ValidateRootKey(k); err != nil {
			return nil, err
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// ReadSource reads and parses a source document from r. It does not close r.
func ReadSource(r io.Reader, f Format) (*paramgraph.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return ParseSource(data, f)
}

// ReadSourceFile reads a source document from path in the format implied by
// its extension.
func ReadSourceFile(path string) (*paramgraph.Graph, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	g, err := ParseSource(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// MarshalSource encodes g as a source document.
func MarshalSource(g *paramgraph.Graph, f Format) ([]byte, error) {
	return marshal(g, f)
}

// WriteSource writes g as a source document to w.
func WriteSource(w io.Writer, g *paramgraph.Graph, f Format) error {
	data, err := MarshalSource(g, f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteSourceFile writes g to path in the format implied by its extension.
func WriteSourceFile(path string, g *paramgraph.Graph) error {
	data, err := MarshalSource(g, FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
