package paramgraph

import (
	"strings"
	"testing"

	"github.com/matzehuels/paramgraph/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		graph   *Graph
		wantErr []string
	}{
		{
			name:  "valid sample",
			graph: sampleGraph(),
		},
		{
			name:  "empty",
			graph: &Graph{},
		},
		{
			name: "dangling references",
			graph: &Graph{
				Strings: []string{"run", "where"},
				InputNodes: []InputNode{{Edges: map[int]InputEdge{
					1: {ChildNodeID: Index(4), EnumNameIndex: Index(9)},
					5: {},
				}}},
				OutputNodes: []OutputNode{{Edges: map[int]OutputEdge{
					1: {ArgsNodeID: Index(2), OutputNodeID: Index(3)},
				}}},
				Roots: map[string]RootEntry{
					"run":  {ArgsNodeID: Index(1)},
					"gone": {OutputNodeID: Index(1)},
				},
			},
			wantErr: []string{
				"child node 4 does not exist",
				"enum name index 9 out of range",
				"input node 0: field index 5 out of range",
				"args node 2 does not exist",
				"output node 3 does not exist",
				`root "gone": key is not in the string table`,
				`root "gone": output node 1 does not exist`,
				`root "run": args node 1 does not exist`,
			},
		},
		{
			name: "unknown flags",
			graph: &Graph{
				Strings:    []string{"a"},
				InputNodes: []InputNode{{Edges: map[int]InputEdge{0: {Flags: 0x80}}}},
			},
			wantErr: []string{"unknown flags 0x80"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.graph.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, errors.ErrCodeInvalidGraph) {
				t.Fatalf("Validate() = %v, want INVALID_GRAPH", err)
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Validate() error missing %q:\n%v", want, err)
				}
			}
		})
	}
}
