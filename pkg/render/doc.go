// Package render draws param graphs as node-link diagrams.
//
// # Overview
//
// [ToDOT] converts a graph to Graphviz DOT source: roots are ellipses,
// input nodes and output nodes are boxes, and every edge is labelled with the
// field name it belongs to. [Render] lays the DOT out with the embedded
// Graphviz (go-graphviz, no system install needed) and produces SVG, PNG or
// JPEG.
//
//	dot := render.ToDOT(g, render.Options{Roots: []string{"User.findMany"}})
//	svg, err := render.Render(ctx, dot, render.FormatSVG)
//
// # Options
//
//   - Detailed: list every field with its flags and scalar mask inside the
//     node label instead of showing only the node id
//   - Roots: draw only the subgraph reachable from these roots
//
// Large schemas produce very large diagrams; restricting Roots is the usual
// way to get something readable.
package render
