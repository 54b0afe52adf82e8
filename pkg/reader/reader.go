// Package reader provides read-only lookups over a decoded param graph.
//
// A [Reader] wraps one [paramgraph.Graph] for the lifetime of a client
// configuration. It resolves field names to string-table indices through a
// reverse index built once at construction. Lookups never fail: a missing
// root, node, edge or enum is reported through the boolean result.
//
//	r, err := reader.FromSerialized(s, enums)
//	root, ok := r.Root("User.findMany")
//	args, ok := r.InputNode(root.ArgsNodeID)
//	where, ok := r.InputEdge(args, "where")
//
// Readers are safe for concurrent use.
package reader

import (
	"github.com/matzehuels/paramgraph/pkg/paramgraph"
)

// EnumLookup resolves an enum name to its ordered values.
// It reports false for unknown enums.
type EnumLookup func(name string) ([]string, bool)

// Reader answers lookups against a decoded graph.
type Reader struct {
	g     *paramgraph.Graph
	index map[string]int
	enums EnumLookup
}

// New wraps g. The graph must not be modified afterwards.
// enums may be nil, in which case [Reader.EnumValues] always reports false.
func New(g *paramgraph.Graph, enums EnumLookup) *Reader {
	return &Reader{
		g:     g,
		index: paramgraph.StringIndex(g.Strings),
		enums: enums,
	}
}

// FromSerialized decodes s and wraps the result.
// Decoding errors are returned unchanged.
func FromSerialized(s paramgraph.Serialized, enums EnumLookup) (*Reader, error) {
	g, err := paramgraph.Deserialize(s)
	if err != nil {
		return nil, err
	}
	return New(g, enums), nil
}

// Graph returns the wrapped graph.
func (r *Reader) Graph() *paramgraph.Graph { return r.g }

// Root returns the entry registered under key.
func (r *Reader) Root(key string) (paramgraph.RootEntry, bool) {
	root, ok := r.g.Roots[key]
	return root, ok
}

// RootKeys returns all root keys in ascending order.
func (r *Reader) RootKeys() []string { return r.g.RootKeys() }

// InputNode returns the input node with the given id.
// A nil, negative or out-of-range id reports false.
func (r *Reader) InputNode(id *int) (*paramgraph.InputNode, bool) {
	if id == nil || *id < 0 || *id >= len(r.g.InputNodes) {
		return nil, false
	}
	return &r.g.InputNodes[*id], true
}

// OutputNode returns the output node with the given id.
// A nil, negative or out-of-range id reports false.
func (r *Reader) OutputNode(id *int) (*paramgraph.OutputNode, bool) {
	if id == nil || *id < 0 || *id >= len(r.g.OutputNodes) {
		return nil, false
	}
	return &r.g.OutputNodes[*id], true
}

// InputEdge returns the edge for field on n.
func (r *Reader) InputEdge(n *paramgraph.InputNode, field string) (paramgraph.InputEdge, bool) {
	if n == nil {
		return paramgraph.InputEdge{}, false
	}
	i, ok := r.index[field]
	if !ok {
		return paramgraph.InputEdge{}, false
	}
	e, ok := n.Edges[i]
	return e, ok
}

// OutputEdge returns the edge for field on n.
func (r *Reader) OutputEdge(n *paramgraph.OutputNode, field string) (paramgraph.OutputEdge, bool) {
	if n == nil {
		return paramgraph.OutputEdge{}, false
	}
	i, ok := r.index[field]
	if !ok {
		return paramgraph.OutputEdge{}, false
	}
	e, ok := n.Edges[i]
	return e, ok
}

// EnumValues returns the values of the enum referenced by e.
func (r *Reader) EnumValues(e paramgraph.InputEdge) ([]string, bool) {
	if e.EnumNameIndex == nil || r.enums == nil {
		return nil, false
	}
	name, ok := r.String(*e.EnumNameIndex)
	if !ok {
		return nil, false
	}
	return r.enums(name)
}

// String returns the string-table entry at i.
func (r *Reader) String(i int) (string, bool) {
	if i < 0 || i >= len(r.g.Strings) {
		return "", false
	}
	return r.g.Strings[i], true
}
