package paramgraph

import "encoding/binary"

// Format is the leading tag byte of a serialized graph blob.
//
// Only compact and wide exist today; the tag is a full byte so later
// revisions can add values without changing how older ones are read.
type Format byte

// Known formats.
const (
	FormatCompact Format = 0x00
	FormatWide    Format = 0x01
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatCompact:
		return "compact"
	case FormatWide:
		return "wide"
	default:
		return "unknown"
	}
}

// CompactLimit is the largest count or index the compact format can hold.
// One more would collide with the compact sentinel.
const CompactLimit = 0xFFFF - 1

// width is the field-width strategy shared by the writer and the reader.
// Every count, index and mask in a blob is one field wide.
type width struct {
	format   Format
	size     int    // bytes per field
	sentinel uint32 // field value meaning "absent"
	pad      int    // bytes after the tag so fields stay aligned
	reserved int    // bytes after the flags byte of an input edge
	put      func(b []byte, v uint32)
	get      func(b []byte) uint32
}

var (
	compactWidth = &width{
		format:   FormatCompact,
		size:     2,
		sentinel: 0xFFFF,
		pad:      0,
		reserved: 1,
		put:      func(b []byte, v uint32) { binary.LittleEndian.PutUint16(b, uint16(v)) },
		get:      func(b []byte) uint32 { return uint32(binary.LittleEndian.Uint16(b)) },
	}
	wideWidth = &width{
		format:   FormatWide,
		size:     4,
		sentinel: 0xFFFFFFFF,
		pad:      3,
		reserved: 3,
		put:      binary.LittleEndian.PutUint32,
		get:      binary.LittleEndian.Uint32,
	}
)

// widthFor returns the strategy for a format tag, or nil for unknown tags.
func widthFor(f Format) *width {
	switch f {
	case FormatCompact:
		return compactWidth
	case FormatWide:
		return wideWidth
	default:
		return nil
	}
}

// selectWidth picks compact unless any count exceeds CompactLimit.
func selectWidth(g *Graph) *width {
	if maxIndex(g) > CompactLimit {
		return wideWidth
	}
	return compactWidth
}

func maxIndex(g *Graph) int {
	return max(len(g.Strings), len(g.InputNodes), len(g.OutputNodes), len(g.Roots))
}

// Record sizes in bytes.

func (w *width) headerSize() int { return 1 + w.pad + 3*w.size }

// inputEdgeSize: field, scalarMask, childNodeId, enumNameIndex, flags, reserved.
func (w *width) inputEdgeSize() int { return 4*w.size + 1 + w.reserved }

// outputEdgeSize: field, argsNodeId, outputNodeId.
func (w *width) outputEdgeSize() int { return 3 * w.size }

// rootSize: key, argsNodeId, outputNodeId.
func (w *width) rootSize() int { return 3 * w.size }

// encodedSize returns the exact blob size for g.
func (w *width) encodedSize(g *Graph) int {
	n := w.headerSize()
	for _, node := range g.InputNodes {
		n += w.size + len(node.Edges)*w.inputEdgeSize()
	}
	for _, node := range g.OutputNodes {
		n += w.size + len(node.Edges)*w.outputEdgeSize()
	}
	return n + len(g.Roots)*w.rootSize()
}
