package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/paramgraph/pkg/paramgraph"
)

// Options configures diagram generation.
type Options struct {
	// Detailed lists fields inside node labels.
	Detailed bool

	// Roots restricts the diagram to what these roots reach.
	// Empty draws the whole graph.
	Roots []string
}

// ToDOT converts a param graph to Graphviz DOT format.
// Unknown root names in opts.Roots are ignored.
func ToDOT(g *paramgraph.Graph, opts Options) string {
	roots := opts.Roots
	if len(roots) == 0 {
		roots = g.RootKeys()
	} else {
		roots = slices.Clone(roots)
		slices.Sort(roots)
	}
	keep := reachable(g, roots, len(opts.Roots) == 0)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, fontname=\"Helvetica\"];\n")
	buf.WriteString("  edge [fontsize=11, fontname=\"Helvetica\"];\n")
	buf.WriteString("\n")

	for _, key := range roots {
		if _, ok := g.Roots[key]; !ok {
			continue
		}
		fmt.Fprintf(&buf, "  %q [shape=ellipse, fillcolor=\"#dbeafe\"];\n", rootID(key))
	}
	for i, n := range g.InputNodes {
		if keep.inputs[i] {
			fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=\"#fef3c7\"];\n", inputID(i), inputLabel(g, i, n, opts.Detailed))
		}
	}
	for i, n := range g.OutputNodes {
		if keep.outputs[i] {
			fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=\"#dcfce7\"];\n", outputID(i), outputLabel(g, i, n, opts.Detailed))
		}
	}

	buf.WriteString("\n")
	for _, key := range roots {
		r, ok := g.Roots[key]
		if !ok {
			continue
		}
		edge(&buf, rootID(key), r.ArgsNodeID, keep.inputs, inputID, "args")
		edge(&buf, rootID(key), r.OutputNodeID, keep.outputs, outputID, "output")
	}
	for i, n := range g.InputNodes {
		if !keep.inputs[i] {
			continue
		}
		for _, field := range sortedFields(n.Edges) {
			edge(&buf, inputID(i), n.Edges[field].ChildNodeID, keep.inputs, inputID, fieldName(g, field))
		}
	}
	for i, n := range g.OutputNodes {
		if !keep.outputs[i] {
			continue
		}
		for _, field := range sortedFields(n.Edges) {
			e := n.Edges[field]
			name := fieldName(g, field)
			edge(&buf, outputID(i), e.ArgsNodeID, keep.inputs, inputID, name+"()")
			edge(&buf, outputID(i), e.OutputNodeID, keep.outputs, outputID, name)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// edge draws from -> to when to is a drawn node. Dangling ids are skipped.
func edge(buf *bytes.Buffer, from string, to *int, drawn map[int]bool, id func(int) string, label string) {
	if to == nil || !drawn[*to] {
		return
	}
	fmt.Fprintf(buf, "  %q -> %q [label=%q];\n", from, id(*to), label)
}

func rootID(key string) string { return "root:" + key }
func inputID(i int) string     { return fmt.Sprintf("in%d", i) }
func outputID(i int) string    { return fmt.Sprintf("out%d", i) }

func fieldName(g *paramgraph.Graph, field int) string {
	if field >= 0 && field < len(g.Strings) {
		return g.Strings[field]
	}
	return fmt.Sprintf("#%d", field)
}

func inputLabel(g *paramgraph.Graph, i int, n paramgraph.InputNode, detailed bool) string {
	if !detailed {
		return inputID(i)
	}
	lines := []string{inputID(i)}
	for _, field := range sortedFields(n.Edges) {
		e := n.Edges[field]
		line := fieldName(g, field) + ": " + e.Flags.String()
		if e.ScalarMask != 0 {
			line += " <" + e.ScalarMask.String() + ">"
		}
		if e.EnumNameIndex != nil {
			line += " of " + fieldName(g, *e.EnumNameIndex)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func outputLabel(g *paramgraph.Graph, i int, n paramgraph.OutputNode, detailed bool) string {
	if !detailed {
		return outputID(i)
	}
	lines := []string{outputID(i)}
	for _, field := range sortedFields(n.Edges) {
		lines = append(lines, fieldName(g, field))
	}
	return strings.Join(lines, "\n")
}

func sortedFields[V any](m map[int]V) []int {
	return slices.Sorted(maps.Keys(m))
}

type nodeSet struct {
	inputs  map[int]bool
	outputs map[int]bool
}

// reachable walks the graph from roots. With all set every node is kept,
// including nodes no root reaches.
func reachable(g *paramgraph.Graph, roots []string, all bool) nodeSet {
	s := nodeSet{inputs: map[int]bool{}, outputs: map[int]bool{}}
	if all {
		for i := range g.InputNodes {
			s.inputs[i] = true
		}
		for i := range g.OutputNodes {
			s.outputs[i] = true
		}
		return s
	}

	var visitIn, visitOut func(id *int)
	visitIn = func(id *int) {
		if id == nil || *id < 0 || *id >= len(g.InputNodes) || s.inputs[*id] {
			return
		}
		s.inputs[*id] = true
		for _, e := range g.InputNodes[*id].Edges {
			visitIn(e.ChildNodeID)
		}
	}
	visitOut = func(id *int) {
		if id == nil || *id < 0 || *id >= len(g.OutputNodes) || s.outputs[*id] {
			return
		}
		s.outputs[*id] = true
		for _, e := range g.OutputNodes[*id].Edges {
			visitIn(e.ArgsNodeID)
			visitOut(e.OutputNodeID)
		}
	}
	for _, key := range roots {
		if r, ok := g.Roots[key]; ok {
			visitIn(r.ArgsNodeID)
			visitOut(r.OutputNodeID)
		}
	}
	return s
}
