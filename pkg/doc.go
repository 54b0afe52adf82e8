// Package pkg provides the libraries behind paramgraph.
//
// # Overview
//
// A param graph records, for every operation of a data-access API, which
// input fields may be replaced by placeholders and which output fields can
// be selected. Query engines consult it to give queries that differ only in
// literal values a shared cache key. The graph is generated once, embedded
// as a string table plus a base64url blob, and read at runtime without
// further parsing.
//
// # Architecture
//
//	Source document (JSON / YAML)
//	         ↓
//	    [artifact] ParseSource, Build (digest + envelope)
//	         ↓
//	    [paramgraph] Encode (compact or wide binary) → [base64url]
//	         ↓
//	    Artifact file (JSON / CBOR / YAML)
//	         ↓
//	    [paramgraph] Decode → [reader] lookups → [server] HTTP
//
// # Quick Start
//
// Serialize a graph and read it back:
//
//	s, err := paramgraph.Serialize(g)
//	r, err := reader.FromSerialized(s, nil)
//	root, ok := r.Root("User.findMany")
//	args, ok := r.InputNode(root.ArgsNodeID)
//	edge, ok := r.InputEdge(args, "where")
//
// # Main Packages
//
// [paramgraph] - The graph data model and the binary codec. Picks the compact
// (16-bit) or wide (32-bit) layout from the largest table size.
//
// [base64url] - Unpadded RFC 4648 base64url text for the binary blob.
//
// [reader] - Name-based lookups over a decoded graph, with enum values
// supplied by the caller.
//
// [artifact] - Envelope files carrying the string table, the blob and a
// BLAKE3 digest; source document parsing.
//
// [pipeline] - Cached compilation of source documents into artifacts, one
// file or many in parallel.
//
// [cache] - File, Redis and no-op caches for compiled artifacts.
//
// [render] - Graphviz drawings of a graph (DOT, SVG, PNG, JPG).
//
// [server] - Read-only HTTP API over a reader.
//
// ## Infrastructure
//
// [config] - TOML configuration. [errors] - Coded errors. [observability] -
// Hook registry for codec, pipeline, cache and server events. [httputil] -
// JSON responses and error mapping. [buildinfo] - Version stamped at link time.
//
// [paramgraph]: https://pkg.go.dev/github.com/matzehuels/paramgraph/pkg/paramgraph
// [base64url]: https://pkg.go.dev/github.com/matzehuels/paramgraph/pkg/base64url
// [reader]: https://pkg.go.dev/github.com/matzehuels/paramgraph/pkg/reader
// [artifact]: https://pkg.go.dev/github.com/matzehuels/paramgraph/pkg/artifact
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/paramgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/paramgraph/pkg/cache
// [render]: https://pkg.go.dev/github.com/matzehuels/paramgraph/pkg/render
// [server]: https://pkg.go.dev/github.com/matzehuels/paramgraph/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/paramgraph/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/paramgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/paramgraph/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/paramgraph/pkg/httputil
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/paramgraph/pkg/buildinfo
package pkg
