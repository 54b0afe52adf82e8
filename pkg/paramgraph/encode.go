package paramgraph

import (
	"fmt"

	"github.com/matzehuels/paramgraph/pkg/base64url"
	"github.com/matzehuels/paramgraph/pkg/errors"
)

// Serialized is the embeddable form of a graph: the string table as a plain
// list and the structure as base64url text.
type Serialized struct {
	Strings []string `json:"strings" yaml:"strings"`
	Graph   string   `json:"graph" yaml:"graph"`
}

// Serialize packs g into its embeddable form.
// The string table is passed through unchanged.
func Serialize(g *Graph) (Serialized, error) {
	blob, err := Encode(g)
	if err != nil {
		return Serialized{}, err
	}
	return Serialized{Strings: g.Strings, Graph: base64url.Encode(blob)}, nil
}

// Encode packs the nodes, edges and roots of g into a binary blob.
//
// The blob starts with a format tag. Compact format (2-byte fields) is used
// unless a string, node or root count exceeds [CompactLimit], in which case
// every field is 4 bytes wide. Edges are written in ascending field order and
// roots in ascending key order, so equal graphs produce equal blobs.
//
// Every root key must appear in g.Strings; otherwise Encode returns an
// [errors.InvalidRootKeyError]. Field and enum indices outside g.Strings and
// node ids outside their node arrays are rejected with INVALID_GRAPH, so
// every blob Encode produces also passes [Decode].
func Encode(g *Graph) ([]byte, error) {
	w := selectWidth(g)
	if n := maxIndex(g); uint64(n) >= uint64(w.sentinel) {
		return nil, errors.New(errors.ErrCodeCapacityExceeded, "graph holds %d entries, format %s supports %d", n, w.format, w.sentinel-1)
	}
	return encode(g, w)
}

func encode(g *Graph, w *width) ([]byte, error) {
	keys := g.RootKeys()
	strIndex := StringIndex(g.Strings)
	keyIndex := make([]int, len(keys))
	for i, k := range keys {
		j, ok := strIndex[k]
		if !ok {
			return nil, &errors.InvalidRootKeyError{Key: k}
		}
		keyIndex[i] = j
	}

	e := &writer{buf: make([]byte, w.encodedSize(g)), w: w}
	e.byte(byte(w.format))
	e.skip(w.pad)
	e.uint(uint32(len(g.InputNodes)))
	e.uint(uint32(len(g.OutputNodes)))
	e.uint(uint32(len(g.Roots)))

	for i, node := range g.InputNodes {
		e.uint(uint32(len(node.Edges)))
		for _, field := range sortedKeys(node.Edges) {
			edge := node.Edges[field]
			if !e.fits(field, len(g.Strings)) {
				return nil, errors.New(errors.ErrCodeInvalidGraph, "input node %d: field index %d out of range", i, field)
			}
			if uint64(edge.ScalarMask) > uint64(w.sentinel) {
				return nil, errors.New(errors.ErrCodeInvalidInput, "input node %d, field %d: scalar mask %#x does not fit %s format", i, field, edge.ScalarMask, w.format)
			}
			if !e.fitsRef(edge.ChildNodeID, len(g.InputNodes)) || !e.fitsRef(edge.EnumNameIndex, len(g.Strings)) {
				return nil, errors.New(errors.ErrCodeInvalidGraph, "input node %d, field %d: reference out of range", i, field)
			}
			e.uint(uint32(field))
			e.uint(uint32(edge.ScalarMask))
			e.ref(edge.ChildNodeID)
			e.ref(edge.EnumNameIndex)
			e.byte(byte(edge.Flags))
			e.skip(w.reserved)
		}
	}

	for i, node := range g.OutputNodes {
		e.uint(uint32(len(node.Edges)))
		for _, field := range sortedKeys(node.Edges) {
			edge := node.Edges[field]
			if !e.fits(field, len(g.Strings)) || !e.fitsRef(edge.ArgsNodeID, len(g.InputNodes)) || !e.fitsRef(edge.OutputNodeID, len(g.OutputNodes)) {
				return nil, errors.New(errors.ErrCodeInvalidGraph, "output node %d, field %d: reference out of range", i, field)
			}
			e.uint(uint32(field))
			e.ref(edge.ArgsNodeID)
			e.ref(edge.OutputNodeID)
		}
	}

	for i, k := range keys {
		root := g.Roots[k]
		if !e.fitsRef(root.ArgsNodeID, len(g.InputNodes)) || !e.fitsRef(root.OutputNodeID, len(g.OutputNodes)) {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "root %q: reference out of range", k)
		}
		e.uint(uint32(keyIndex[i]))
		e.ref(root.ArgsNodeID)
		e.ref(root.OutputNodeID)
	}

	if e.off != len(e.buf) {
		panic(fmt.Sprintf("paramgraph: wrote %d bytes, sized %d", e.off, len(e.buf)))
	}
	return e.buf, nil
}

// StringIndex maps each string to its first position in strs.
func StringIndex(strs []string) map[string]int {
	index := make(map[string]int, len(strs))
	for i, s := range strs {
		if _, ok := index[s]; !ok {
			index[s] = i
		}
	}
	return index
}

// writer fills a pre-sized buffer. The buffer starts zeroed, so padding and
// reserved bytes are skipped rather than written.
type writer struct {
	buf []byte
	off int
	w   *width
}

// fits reports whether v indexes a table of n entries and is representable
// at this width.
func (e *writer) fits(v, n int) bool {
	return v >= 0 && v < n && uint64(v) < uint64(e.w.sentinel)
}

func (e *writer) fitsRef(r *int, n int) bool {
	return r == nil || e.fits(*r, n)
}

func (e *writer) uint(v uint32) {
	e.w.put(e.buf[e.off:], v)
	e.off += e.w.size
}

func (e *writer) ref(r *int) {
	if r == nil {
		e.uint(e.w.sentinel)
		return
	}
	e.uint(uint32(*r))
}

func (e *writer) byte(b byte) {
	e.buf[e.off] = b
	e.off++
}

func (e *writer) skip(n int) {
	e.off += n
}
