package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/paramgraph/pkg/paramgraph"
)

func testGraph() *paramgraph.Graph {
	return &paramgraph.Graph{
		Strings: []string{"User.findMany", "where", "id", "posts", "title", "Post.create", "Role", "role"},
		InputNodes: []paramgraph.InputNode{
			{Edges: map[int]paramgraph.InputEdge{
				1: {Flags: paramgraph.FlagObject, ChildNodeID: paramgraph.Index(1)},
			}},
			{Edges: map[int]paramgraph.InputEdge{
				2: {Flags: paramgraph.FlagParamScalar, ScalarMask: paramgraph.ScalarInt},
				7: {Flags: paramgraph.FlagParamEnum, EnumNameIndex: paramgraph.Index(6)},
			}},
			{Edges: map[int]paramgraph.InputEdge{
				4: {Flags: paramgraph.FlagParamScalar, ScalarMask: paramgraph.ScalarString},
			}},
		},
		OutputNodes: []paramgraph.OutputNode{
			{Edges: map[int]paramgraph.OutputEdge{
				3: {ArgsNodeID: paramgraph.Index(0), OutputNodeID: paramgraph.Index(1)},
			}},
			{Edges: map[int]paramgraph.OutputEdge{4: {}}},
		},
		Roots: map[string]paramgraph.RootEntry{
			"User.findMany": {ArgsNodeID: paramgraph.Index(0), OutputNodeID: paramgraph.Index(0)},
			"Post.create":   {ArgsNodeID: paramgraph.Index(2)},
		},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(testGraph(), Options{})

	for _, want := range []string{
		"digraph G",
		`"root:User.findMany" [shape=ellipse`,
		`"root:Post.create" [shape=ellipse`,
		`"in0" [label="in0"`,
		`"out1" [label="out1"`,
		`"root:User.findMany" -> "in0" [label="args"]`,
		`"root:User.findMany" -> "out0" [label="output"]`,
		`"in0" -> "in1" [label="where"]`,
		`"out0" -> "in0" [label="posts()"]`,
		`"out0" -> "out1" [label="posts"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s", want)
		}
	}
	if strings.Contains(dot, `"root:Post.create" -> "out`) {
		t.Error("root without output node should have no output edge")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(testGraph(), Options{Detailed: true})

	for _, want := range []string{
		`id: scalar <Int>`,
		`role: enum of Role`,
		`where: object`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() detailed output missing %q", want)
		}
	}
}

func TestToDOT_Roots(t *testing.T) {
	dot := ToDOT(testGraph(), Options{Roots: []string{"Post.create", "nope"}})

	if !strings.Contains(dot, `"root:Post.create"`) || !strings.Contains(dot, `"in2"`) {
		t.Error("selected root and its args node should be drawn")
	}
	for _, unwanted := range []string{`"root:User.findMany"`, `"in0"`, `"out0"`, `"root:nope"`} {
		if strings.Contains(dot, unwanted) {
			t.Errorf("unreachable %s should not be drawn", unwanted)
		}
	}
}

func TestToDOT_DanglingReferences(t *testing.T) {
	g := &paramgraph.Graph{
		Strings: []string{"findMany", "where", "posts"},
		InputNodes: []paramgraph.InputNode{
			{Edges: map[int]paramgraph.InputEdge{1: {Flags: paramgraph.FlagObject, ChildNodeID: paramgraph.Index(9)}}},
		},
		OutputNodes: []paramgraph.OutputNode{
			{Edges: map[int]paramgraph.OutputEdge{2: {ArgsNodeID: paramgraph.Index(4), OutputNodeID: paramgraph.Index(7)}}},
		},
		Roots: map[string]paramgraph.RootEntry{
			"findMany": {ArgsNodeID: paramgraph.Index(0), OutputNodeID: paramgraph.Index(3)},
		},
	}

	for _, opts := range []Options{{}, {Roots: []string{"findMany"}}} {
		dot := ToDOT(g, opts)
		for _, phantom := range []string{`"in9"`, `"in4"`, `"out7"`, `"out3"`} {
			if strings.Contains(dot, phantom) {
				t.Errorf("ToDOT(%+v) drew dangling node %s:\n%s", opts, phantom, dot)
			}
		}
		if !strings.Contains(dot, `"root:findMany" -> "in0" [label="args"]`) {
			t.Errorf("ToDOT(%+v) dropped the valid args edge", opts)
		}
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	g := testGraph()
	first := ToDOT(g, Options{Detailed: true})
	for range 10 {
		if got := ToDOT(g, Options{Detailed: true}); got != first {
			t.Fatal("ToDOT() output differs between runs")
		}
	}
}

func TestFieldName(t *testing.T) {
	g := testGraph()
	if got := fieldName(g, 1); got != "where" {
		t.Errorf("fieldName(1) = %q, want where", got)
	}
	if got := fieldName(g, 99); got != "#99" {
		t.Errorf("fieldName(99) = %q, want #99", got)
	}
}
