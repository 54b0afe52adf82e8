package server

import (
	"maps"
	"slices"

	"github.com/matzehuels/paramgraph/pkg/buildinfo"
	"github.com/matzehuels/paramgraph/pkg/paramgraph"
	"github.com/matzehuels/paramgraph/pkg/reader"
)

// HealthResponse answers /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// RootsResponse lists root keys.
type RootsResponse struct {
	Roots []string `json:"roots"`
}

// StatsResponse describes the served graph.
type StatsResponse struct {
	paramgraph.Stats
	Format   string `json:"format,omitempty"`
	BlobSize int    `json:"blobSize,omitempty"`
	Digest   string `json:"digest,omitempty"`
}

// RootView is one root entry.
type RootView struct {
	Key          string `json:"key"`
	ArgsNodeID   *int   `json:"argsNodeId,omitempty"`
	OutputNodeID *int   `json:"outputNodeId,omitempty"`
}

// InputNodeView is an input node with its edges in field order.
type InputNodeView struct {
	ID    int             `json:"id"`
	Edges []InputEdgeView `json:"edges"`
}

// InputEdgeView is one input edge with names resolved.
type InputEdgeView struct {
	Field       string   `json:"field"`
	Flags       string   `json:"flags"`
	Scalars     string   `json:"scalars,omitempty"`
	ChildNodeID *int     `json:"childNodeId,omitempty"`
	Enum        string   `json:"enum,omitempty"`
	EnumValues  []string `json:"enumValues,omitempty"`
}

// OutputNodeView is an output node with its edges in field order.
type OutputNodeView struct {
	ID    int              `json:"id"`
	Edges []OutputEdgeView `json:"edges"`
}

// OutputEdgeView is one output edge with its field name resolved.
type OutputEdgeView struct {
	Field        string `json:"field"`
	ArgsNodeID   *int   `json:"argsNodeId,omitempty"`
	OutputNodeID *int   `json:"outputNodeId,omitempty"`
}

// NewInputEdgeView resolves the enum name and values of e through r.
func NewInputEdgeView(r *reader.Reader, field string, e paramgraph.InputEdge) InputEdgeView {
	v := InputEdgeView{
		Field:       field,
		Flags:       e.Flags.String(),
		ChildNodeID: e.ChildNodeID,
	}
	if e.ScalarMask != 0 {
		v.Scalars = e.ScalarMask.String()
	}
	if e.EnumNameIndex != nil {
		v.Enum, _ = r.String(*e.EnumNameIndex)
		if values, ok := r.EnumValues(e); ok {
			v.EnumValues = values
		}
	}
	return v
}

func sortedFields[V any](m map[int]V) []int {
	return slices.Sorted(maps.Keys(m))
}
