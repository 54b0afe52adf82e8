// Package paramgraph defines the param graph and its binary serialization.
//
// A param graph describes which fields of a schema-derived API can be
// parameterized and how to walk into nested arguments and selections. It is
// produced once by a schema processor, serialized into generated code, and
// decoded again at program start.
//
// # Core Types
//
//   - [Graph]: string table, input nodes, output nodes and named roots
//   - [InputNode], [InputEdge]: argument shapes and what each field accepts
//   - [OutputNode], [OutputEdge]: selection shapes and their nested args/selections
//   - [RootEntry]: an operation entry point such as "User.findMany"
//
// Edges are sparse maps keyed by string-table index. Optional references are
// *int; use [Index] to build them.
//
// # Serialization
//
// [Serialize] produces a [Serialized] pair: the string table unchanged and a
// base64url blob holding the structure. [Deserialize] reverses it.
//
//	s, err := paramgraph.Serialize(g)
//	// embed s.Strings and s.Graph as literals
//	g2, err := paramgraph.Deserialize(s)
//
// # Binary Layout
//
// All integers are little-endian and one field wide. The field width is
// chosen per blob:
//
//	compact (tag 0x00): 2-byte fields, sentinel 0xFFFF
//	wide    (tag 0x01): 4-byte fields, sentinel 0xFFFFFFFF, 3 pad bytes after the tag
//
// Wide is used only when a string, node or root count exceeds [CompactLimit].
// The blob is laid out as:
//
//	tag [pad]
//	inputCount outputCount rootCount
//	per input node:  edgeCount, edges{field scalarMask childNodeId enumNameIndex flags:1 reserved:1|3}
//	per output node: edgeCount, edges{field argsNodeId outputNodeId}
//	per root:        keyIndex argsNodeId outputNodeId
//
// A sentinel in a node-id or enum field means the reference is absent. The
// scalar mask uses zero instead, so a mask explicitly set to zero reads back
// as absent.
//
// # Errors
//
// Encoding fails with an [errors.InvalidRootKeyError] when a root key is
// missing from the string table. Decoding fails with an
// [errors.MalformedGraphError] for any blob it cannot read completely.
//
// # Concurrency
//
// Encoding and decoding are pure functions over in-memory buffers. Decoded
// graphs are never mutated by this module and may be shared freely.
package paramgraph
