package paramgraph

import (
	stderrors "errors"
	"fmt"

	"github.com/matzehuels/paramgraph/pkg/errors"
)

// knownFlags is the union of all defined edge flags.
const knownFlags = FlagParamScalar | FlagParamEnum | FlagParamListScalar |
	FlagParamListEnum | FlagListObject | FlagObject

// Validate checks that every reference in g points inside its target table:
// field and enum indices into Strings, node ids into the node arrays, root
// keys into Strings. It also rejects undefined flag bits.
//
// [Encode] stops at the first bad reference; Validate collects every problem,
// including unknown flags, and reports them together under INVALID_GRAPH.
func (g *Graph) Validate() error {
	var problems []error
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}
	inRange := func(r *int, n int) bool { return r == nil || (*r >= 0 && *r < n) }

	for i, node := range g.InputNodes {
		for _, field := range sortedKeys(node.Edges) {
			edge := node.Edges[field]
			if field < 0 || field >= len(g.Strings) {
				add("input node %d: field index %d out of range", i, field)
			}
			if !inRange(edge.ChildNodeID, len(g.InputNodes)) {
				add("input node %d, field %d: child node %d does not exist", i, field, *edge.ChildNodeID)
			}
			if !inRange(edge.EnumNameIndex, len(g.Strings)) {
				add("input node %d, field %d: enum name index %d out of range", i, field, *edge.EnumNameIndex)
			}
			if edge.Flags&^knownFlags != 0 {
				add("input node %d, field %d: unknown flags %#x", i, field, uint8(edge.Flags&^knownFlags))
			}
		}
	}

	for i, node := range g.OutputNodes {
		for _, field := range sortedKeys(node.Edges) {
			edge := node.Edges[field]
			if field < 0 || field >= len(g.Strings) {
				add("output node %d: field index %d out of range", i, field)
			}
			if !inRange(edge.ArgsNodeID, len(g.InputNodes)) {
				add("output node %d, field %d: args node %d does not exist", i, field, *edge.ArgsNodeID)
			}
			if !inRange(edge.OutputNodeID, len(g.OutputNodes)) {
				add("output node %d, field %d: output node %d does not exist", i, field, *edge.OutputNodeID)
			}
		}
	}

	strIndex := StringIndex(g.Strings)
	for _, k := range g.RootKeys() {
		root := g.Roots[k]
		if _, ok := strIndex[k]; !ok {
			add("root %q: key is not in the string table", k)
		}
		if !inRange(root.ArgsNodeID, len(g.InputNodes)) {
			add("root %q: args node %d does not exist", k, *root.ArgsNodeID)
		}
		if !inRange(root.OutputNodeID, len(g.OutputNodes)) {
			add("root %q: output node %d does not exist", k, *root.OutputNodeID)
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.Wrap(errors.ErrCodeInvalidGraph, stderrors.Join(problems...), "%d invalid references", len(problems))
}
