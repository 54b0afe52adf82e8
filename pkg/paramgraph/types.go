package paramgraph

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// =============================================================================
// Flags and Masks
// =============================================================================

// EdgeFlags describes what kind of value an input field accepts.
// Flags combine with bitwise OR.
type EdgeFlags uint8

// Input edge capability flags.
const (
	FlagParamScalar     EdgeFlags = 1 << iota // scalar value may be parameterized
	FlagParamEnum                             // enum value may be parameterized
	FlagParamListScalar                       // list of scalars may be parameterized
	FlagParamListEnum                         // list of enum values may be parameterized
	FlagListObject                            // list of objects, recurse into child node
	FlagObject                                // object, recurse into child node
)

// Has reports whether all bits of f are set.
func (e EdgeFlags) Has(f EdgeFlags) bool { return e&f == f }

var flagNames = []string{"scalar", "enum", "list-scalar", "list-enum", "list-object", "object"}

// String returns the set flags joined by "|", e.g. "scalar|object".
// Unknown bits are printed in hex; zero is "none".
func (e EdgeFlags) String() string {
	return bitNames(uint32(e), flagNames)
}

// ScalarMask is a bitmask over scalar type categories. Zero means the edge
// carries no scalar information.
type ScalarMask uint32

// Scalar type categories.
const (
	ScalarString ScalarMask = 1 << iota
	ScalarInt
	ScalarBigInt
	ScalarFloat
	ScalarDecimal
	ScalarBoolean
	ScalarDateTime
	ScalarJSON
	ScalarBytes
)

// Has reports whether all bits of s are set.
func (m ScalarMask) Has(s ScalarMask) bool { return m&s == s }

var scalarNames = []string{"String", "Int", "BigInt", "Float", "Decimal", "Boolean", "DateTime", "Json", "Bytes"}

// String returns the scalar categories joined by "|", e.g. "String|Int".
func (m ScalarMask) String() string {
	return bitNames(uint32(m), scalarNames)
}

func bitNames(v uint32, names []string) string {
	if v == 0 {
		return "none"
	}
	var parts []string
	for i, name := range names {
		if v&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	if rest := v &^ (1<<len(names) - 1); rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", rest))
	}
	return strings.Join(parts, "|")
}

// =============================================================================
// Graph
// =============================================================================

// Graph is the in-memory param graph.
//
// Nodes are identified by their position in InputNodes and OutputNodes.
// Edge maps are keyed by string-table index (the field name). A Graph is
// built once and treated as read-only afterwards; it may be shared between
// goroutines without locking.
type Graph struct {
	Strings     []string             `json:"strings" yaml:"strings"`
	InputNodes  []InputNode          `json:"inputNodes" yaml:"inputNodes"`
	OutputNodes []OutputNode         `json:"outputNodes" yaml:"outputNodes"`
	Roots       map[string]RootEntry `json:"roots" yaml:"roots"`
}

// InputNode describes one argument object shape.
// Fields absent from Edges cannot be parameterized.
type InputNode struct {
	Edges map[int]InputEdge `json:"edges" yaml:"edges"`
}

// OutputNode describes one selection-set shape.
type OutputNode struct {
	Edges map[int]OutputEdge `json:"edges" yaml:"edges"`
}

// InputEdge describes what one input field accepts.
type InputEdge struct {
	Flags EdgeFlags `json:"flags" yaml:"flags"`
	// ScalarMask validates the runtime type of a candidate value.
	// Zero is indistinguishable from absent once serialized.
	ScalarMask ScalarMask `json:"scalarMask,omitempty" yaml:"scalarMask,omitempty"`
	// ChildNodeID is the input node for nested objects or lists of objects.
	ChildNodeID *int `json:"childNodeId,omitempty" yaml:"childNodeId,omitempty"`
	// EnumNameIndex is the string index of the enum type name.
	EnumNameIndex *int `json:"enumNameIndex,omitempty" yaml:"enumNameIndex,omitempty"`
}

// OutputEdge describes one field in a selection set.
type OutputEdge struct {
	ArgsNodeID   *int `json:"argsNodeId,omitempty" yaml:"argsNodeId,omitempty"`
	OutputNodeID *int `json:"outputNodeId,omitempty" yaml:"outputNodeId,omitempty"`
}

// RootEntry is the entry point for one operation, keyed "Model.action" or "action".
type RootEntry struct {
	ArgsNodeID   *int `json:"argsNodeId,omitempty" yaml:"argsNodeId,omitempty"`
	OutputNodeID *int `json:"outputNodeId,omitempty" yaml:"outputNodeId,omitempty"`
}

// Index returns a pointer to i, for building optional references.
func Index(i int) *int { return &i }

// RootKeys returns the root keys in ascending order.
// This is the order in which roots are serialized.
func (g *Graph) RootKeys() []string {
	return slices.Sorted(maps.Keys(g.Roots))
}

// Stats summarizes the size of a graph.
type Stats struct {
	Strings     int `json:"strings" yaml:"strings"`
	InputNodes  int `json:"inputNodes" yaml:"inputNodes"`
	OutputNodes int `json:"outputNodes" yaml:"outputNodes"`
	InputEdges  int `json:"inputEdges" yaml:"inputEdges"`
	OutputEdges int `json:"outputEdges" yaml:"outputEdges"`
	Roots       int `json:"roots" yaml:"roots"`
}

// Stats counts the strings, nodes, edges and roots of g.
func (g *Graph) Stats() Stats {
	s := Stats{
		Strings:     len(g.Strings),
		InputNodes:  len(g.InputNodes),
		OutputNodes: len(g.OutputNodes),
		Roots:       len(g.Roots),
	}
	for _, n := range g.InputNodes {
		s.InputEdges += len(n.Edges)
	}
	for _, n := range g.OutputNodes {
		s.OutputEdges += len(n.Edges)
	}
	return s
}

// sortedKeys returns the keys of an edge map in ascending order.
func sortedKeys[V any](m map[int]V) []int {
	return slices.Sorted(maps.Keys(m))
}
