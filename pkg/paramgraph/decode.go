package paramgraph

import (
	"fmt"

	"github.com/matzehuels/paramgraph/pkg/base64url"
	"github.com/matzehuels/paramgraph/pkg/errors"
)

// Deserialize reverses [Serialize].
// Invalid base64url text and malformed blobs both yield an
// [errors.MalformedGraphError].
func Deserialize(s Serialized) (*Graph, error) {
	blob, err := base64url.Decode(s.Graph)
	if err != nil {
		return nil, &errors.MalformedGraphError{Offset: -1, Reason: "invalid base64url text", Cause: err}
	}
	return Decode(s.Strings, blob)
}

// Decode rebuilds a graph from the string table and a blob produced by [Encode].
//
// Every read is bounds-checked. Truncated input, unknown format tags,
// duplicate edges or roots, field, enum and root key indices outside the
// string table, node ids outside the node arrays and trailing bytes are
// reported as an [errors.MalformedGraphError] carrying the offset
// of the failed read. Sentinel references decode as nil and a zero scalar
// mask decodes as absent.
//
// The returned graph shares strs; callers must not modify it afterwards.
func Decode(strs []string, blob []byte) (*Graph, error) {
	if len(blob) == 0 {
		return nil, &errors.MalformedGraphError{Offset: 0, Reason: "empty blob"}
	}
	w := widthFor(Format(blob[0]))
	if w == nil {
		return nil, &errors.MalformedGraphError{Offset: 0, Reason: fmt.Sprintf("unknown format tag %#02x", blob[0])}
	}

	d := &reader{buf: blob, off: 1, w: w, nStrings: len(strs)}
	if err := d.skip(w.pad); err != nil {
		return nil, err
	}
	nIn, err := d.count(w.size)
	if err != nil {
		return nil, err
	}
	nOut, err := d.count(w.size)
	if err != nil {
		return nil, err
	}
	nRoots, err := d.count(w.rootSize())
	if err != nil {
		return nil, err
	}
	d.nIn, d.nOut = nIn, nOut

	g := &Graph{
		Strings:     strs,
		InputNodes:  make([]InputNode, nIn),
		OutputNodes: make([]OutputNode, nOut),
		Roots:       make(map[string]RootEntry, nRoots),
	}

	for i := range g.InputNodes {
		edges, err := d.inputEdges()
		if err != nil {
			return nil, err
		}
		g.InputNodes[i].Edges = edges
	}
	for i := range g.OutputNodes {
		edges, err := d.outputEdges()
		if err != nil {
			return nil, err
		}
		g.OutputNodes[i].Edges = edges
	}

	for range nRoots {
		at := d.off
		key, err := d.stringIndex("root key")
		if err != nil {
			return nil, err
		}
		var root RootEntry
		if root.ArgsNodeID, err = d.refIn(d.nIn, "args node"); err != nil {
			return nil, err
		}
		if root.OutputNodeID, err = d.refIn(d.nOut, "output node"); err != nil {
			return nil, err
		}
		k := strs[key]
		if _, dup := g.Roots[k]; dup {
			return nil, d.failAt(at, "duplicate root %q", k)
		}
		g.Roots[k] = root
	}

	if rest := len(d.buf) - d.off; rest != 0 {
		return nil, d.fail("%d trailing bytes", rest)
	}
	return g, nil
}

// reader consumes a blob field by field at a fixed width. The table sizes
// bound every index it reads.
type reader struct {
	buf []byte
	off int
	w   *width

	nStrings, nIn, nOut int
}

func (d *reader) fail(format string, args ...any) error {
	return d.failAt(d.off, format, args...)
}

func (d *reader) failAt(off int, format string, args ...any) error {
	return &errors.MalformedGraphError{Offset: off, Reason: fmt.Sprintf(format, args...)}
}

func (d *reader) need(n int) error {
	if have := len(d.buf) - d.off; have < n {
		return d.fail("unexpected end of data: need %d bytes, have %d", n, have)
	}
	return nil
}

func (d *reader) skip(n int) error {
	if err := d.need(n); err != nil {
		return err
	}
	d.off += n
	return nil
}

func (d *reader) uint() (uint32, error) {
	if err := d.need(d.w.size); err != nil {
		return 0, err
	}
	v := d.w.get(d.buf[d.off:])
	d.off += d.w.size
	return v, nil
}

func (d *reader) byte() (byte, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	b := d.buf[d.off]
	d.off++
	return b, nil
}

// ref reads an optional index; the sentinel decodes as nil.
func (d *reader) ref() (*int, error) {
	v, err := d.uint()
	if err != nil || v == d.w.sentinel {
		return nil, err
	}
	return Index(int(v)), nil
}

// refIn reads an optional index that must be below n.
func (d *reader) refIn(n int, what string) (*int, error) {
	at := d.off
	r, err := d.ref()
	if err != nil || r == nil {
		return r, err
	}
	if *r >= n {
		return nil, d.failAt(at, "%s %d out of range (%d)", what, *r, n)
	}
	return r, nil
}

// stringIndex reads a required index into the string table.
func (d *reader) stringIndex(what string) (int, error) {
	at := d.off
	v, err := d.uint()
	if err != nil {
		return 0, err
	}
	if uint64(v) >= uint64(d.nStrings) {
		return 0, d.failAt(at, "%s index %d out of range (%d strings)", what, v, d.nStrings)
	}
	return int(v), nil
}

// count reads a record count and rejects counts whose records cannot fit in
// the remaining data, so corrupt headers never drive large allocations.
func (d *reader) count(recordSize int) (int, error) {
	at := d.off
	v, err := d.uint()
	if err != nil {
		return 0, err
	}
	if rest := len(d.buf) - d.off; uint64(v)*uint64(recordSize) > uint64(rest) {
		return 0, d.failAt(at, "count %d exceeds remaining %d bytes", v, rest)
	}
	return int(v), nil
}

func (d *reader) inputEdges() (map[int]InputEdge, error) {
	n, err := d.count(d.w.inputEdgeSize())
	if err != nil {
		return nil, err
	}
	edges := make(map[int]InputEdge, n)
	for range n {
		at := d.off
		field, err := d.stringIndex("field")
		if err != nil {
			return nil, err
		}
		mask, err := d.uint()
		if err != nil {
			return nil, err
		}
		var edge InputEdge
		edge.ScalarMask = ScalarMask(mask)
		if edge.ChildNodeID, err = d.refIn(d.nIn, "child node"); err != nil {
			return nil, err
		}
		if edge.EnumNameIndex, err = d.refIn(d.nStrings, "enum name"); err != nil {
			return nil, err
		}
		flags, err := d.byte()
		if err != nil {
			return nil, err
		}
		edge.Flags = EdgeFlags(flags)
		if err := d.skip(d.w.reserved); err != nil {
			return nil, err
		}
		if _, dup := edges[field]; dup {
			return nil, d.failAt(at, "duplicate input edge for field %d", field)
		}
		edges[field] = edge
	}
	return edges, nil
}

func (d *reader) outputEdges() (map[int]OutputEdge, error) {
	n, err := d.count(d.w.outputEdgeSize())
	if err != nil {
		return nil, err
	}
	edges := make(map[int]OutputEdge, n)
	for range n {
		at := d.off
		field, err := d.stringIndex("field")
		if err != nil {
			return nil, err
		}
		var edge OutputEdge
		if edge.ArgsNodeID, err = d.refIn(d.nIn, "args node"); err != nil {
			return nil, err
		}
		if edge.OutputNodeID, err = d.refIn(d.nOut, "output node"); err != nil {
			return nil, err
		}
		if _, dup := edges[field]; dup {
			return nil, d.failAt(at, "duplicate output edge for field %d", field)
		}
		edges[field] = edge
	}
	return edges, nil
}
