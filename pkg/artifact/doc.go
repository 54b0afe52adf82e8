// Package artifact reads and writes serialized param graphs and the source
// documents they are compiled from.
//
// # Artifacts
//
// An [Artifact] is what code generators embed: the string table, the
// base64url graph text, an envelope version and a BLAKE3 digest over both.
// Artifacts are stored as JSON, CBOR or YAML:
//
//	{
//	  "version": 1,
//	  "strings": ["findMany", "where"],
//	  "graph": "AAEAAAABAAEAAQABAP__...",
//	  "digest": "5c0f..."
//	}
//
// Use [Build] to create one from a graph and [Artifact.Decode] to get the
// graph back. Decode rejects unknown envelope versions and digest mismatches
// before touching the blob.
//
// # Source Documents
//
// A source document spells out a [paramgraph.Graph] field by field. It is the
// input to compilation and the output of decompilation:
//
//	g, err := artifact.ReadSourceFile("schema.graph.yaml")
//	a, err := artifact.Build(g)
//	err = artifact.WriteFile("schema.artifact.json", a)
//
// # Formats
//
// The format of a file is inferred from its extension: .cbor, .yaml/.yml,
// anything else is JSON. CBOR output uses Core Deterministic Encoding, so
// equal artifacts produce equal bytes in every format.
package artifact
