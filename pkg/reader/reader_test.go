package reader

import (
	"slices"
	"testing"

	"github.com/matzehuels/paramgraph/pkg/errors"
	"github.com/matzehuels/paramgraph/pkg/paramgraph"
)

func testGraph() *paramgraph.Graph {
	return &paramgraph.Graph{
		Strings: []string{"findMany", "where", "id", "status", "Status", "posts"},
		InputNodes: []paramgraph.InputNode{
			{Edges: map[int]paramgraph.InputEdge{
				1: {Flags: paramgraph.FlagParamScalar, ScalarMask: paramgraph.ScalarString},
				3: {Flags: paramgraph.FlagParamEnum, EnumNameIndex: paramgraph.Index(4)},
				2: {Flags: paramgraph.FlagParamScalar, ScalarMask: paramgraph.ScalarInt},
			}},
		},
		OutputNodes: []paramgraph.OutputNode{
			{Edges: map[int]paramgraph.OutputEdge{
				5: {ArgsNodeID: paramgraph.Index(0), OutputNodeID: paramgraph.Index(0)},
			}},
		},
		Roots: map[string]paramgraph.RootEntry{
			"findMany": {ArgsNodeID: paramgraph.Index(0), OutputNodeID: paramgraph.Index(0)},
		},
	}
}

func enums(name string) ([]string, bool) {
	if name == "Status" {
		return []string{"ACTIVE", "ARCHIVED"}, true
	}
	return nil, false
}

func TestInputEdgeByName(t *testing.T) {
	g := &paramgraph.Graph{
		Strings: []string{"findMany", "where", "id"},
		InputNodes: []paramgraph.InputNode{
			{Edges: map[int]paramgraph.InputEdge{1: {Flags: 1, ScalarMask: 1}}},
		},
	}
	r := New(g, nil)
	node, ok := r.InputNode(paramgraph.Index(0))
	if !ok {
		t.Fatal("InputNode(0) missing")
	}

	e, ok := r.InputEdge(node, "where")
	if !ok || e.Flags != 1 || e.ScalarMask != 1 {
		t.Errorf(`InputEdge("where") = %+v, %v; want flags=1 scalarMask=1`, e, ok)
	}
	if _, ok := r.InputEdge(node, "missingField"); ok {
		t.Error(`InputEdge("missingField") found, want absent`)
	}
	if _, ok := r.InputEdge(node, "id"); ok {
		t.Error(`InputEdge("id") found, want absent (no edge at index)`)
	}
	if _, ok := r.InputEdge(nil, "where"); ok {
		t.Error("InputEdge(nil node) found, want absent")
	}
}

func TestNodeLookupBounds(t *testing.T) {
	r := New(testGraph(), nil)

	tests := []struct {
		name string
		id   *int
		want bool
	}{
		{"nil", nil, false},
		{"negative", paramgraph.Index(-1), false},
		{"zero", paramgraph.Index(0), true},
		{"past end", paramgraph.Index(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := r.InputNode(tt.id); ok != tt.want {
				t.Errorf("InputNode() ok = %v, want %v", ok, tt.want)
			}
			if _, ok := r.OutputNode(tt.id); ok != tt.want {
				t.Errorf("OutputNode() ok = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestWalkFromRoot(t *testing.T) {
	r := New(testGraph(), enums)

	root, ok := r.Root("findMany")
	if !ok {
		t.Fatal(`Root("findMany") missing`)
	}
	if _, ok := r.Root("deleteMany"); ok {
		t.Error(`Root("deleteMany") found, want absent`)
	}

	out, ok := r.OutputNode(root.OutputNodeID)
	if !ok {
		t.Fatal("root output node missing")
	}
	posts, ok := r.OutputEdge(out, "posts")
	if !ok {
		t.Fatal(`OutputEdge("posts") missing`)
	}
	if _, ok := r.OutputEdge(out, "where"); ok {
		t.Error(`OutputEdge("where") found, want absent`)
	}
	if _, ok := r.OutputEdge(nil, "posts"); ok {
		t.Error("OutputEdge(nil node) found, want absent")
	}

	args, ok := r.InputNode(posts.ArgsNodeID)
	if !ok {
		t.Fatal("posts args node missing")
	}
	status, ok := r.InputEdge(args, "status")
	if !ok {
		t.Fatal(`InputEdge("status") missing`)
	}
	values, ok := r.EnumValues(status)
	if !ok || !slices.Equal(values, []string{"ACTIVE", "ARCHIVED"}) {
		t.Errorf("EnumValues(status) = %v, %v; want [ACTIVE ARCHIVED]", values, ok)
	}
}

func TestEnumValues(t *testing.T) {
	g := testGraph()
	node := &g.InputNodes[0]

	tests := []struct {
		name  string
		edge  paramgraph.InputEdge
		enums EnumLookup
		want  bool
	}{
		{"known enum", node.Edges[3], enums, true},
		{"no enum on edge", node.Edges[1], enums, false},
		{"enum index out of range", paramgraph.InputEdge{Flags: paramgraph.FlagParamEnum, EnumNameIndex: paramgraph.Index(40)}, enums, false},
		{"no resolver", node.Edges[3], nil, false},
		{"unknown to resolver", node.Edges[3], func(string) ([]string, bool) { return nil, false }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(g, tt.enums)
			if _, ok := r.EnumValues(tt.edge); ok != tt.want {
				t.Errorf("EnumValues() ok = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	r := New(testGraph(), nil)
	if s, ok := r.String(4); !ok || s != "Status" {
		t.Errorf("String(4) = %q, %v; want Status", s, ok)
	}
	for _, i := range []int{-1, 6} {
		if _, ok := r.String(i); ok {
			t.Errorf("String(%d) found, want absent", i)
		}
	}
}

func TestDuplicateStringsResolveToFirst(t *testing.T) {
	g := &paramgraph.Graph{
		Strings:    []string{"where", "where"},
		InputNodes: []paramgraph.InputNode{{Edges: map[int]paramgraph.InputEdge{0: {Flags: 1}, 1: {Flags: 2}}}},
	}
	r := New(g, nil)
	e, ok := r.InputEdge(&g.InputNodes[0], "where")
	if !ok || e.Flags != 1 {
		t.Errorf(`InputEdge("where") = %+v, %v; want flags=1`, e, ok)
	}
}

func TestFromSerialized(t *testing.T) {
	s, err := paramgraph.Serialize(testGraph())
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	r, err := FromSerialized(s, enums)
	if err != nil {
		t.Fatalf("FromSerialized: %v", err)
	}
	if got := r.RootKeys(); !slices.Equal(got, []string{"findMany"}) {
		t.Errorf("RootKeys() = %v, want [findMany]", got)
	}

	s.Graph = s.Graph[:3]
	if _, err := FromSerialized(s, enums); !errors.Is(err, errors.ErrCodeMalformedGraph) {
		t.Errorf("FromSerialized(truncated) error = %v, want MALFORMED_GRAPH", err)
	}
}
