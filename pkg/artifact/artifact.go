package artifact

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/matzehuels/paramgraph/pkg/base64url"
	"github.com/matzehuels/paramgraph/pkg/errors"
	"github.com/matzehuels/paramgraph/pkg/paramgraph"
)

// Version is the artifact envelope version written by [Build].
const Version = 1

// Artifact is the embeddable form of a param graph: the string table, the
// base64url graph blob, and a digest binding the two together.
type Artifact struct {
	Version int      `json:"version" yaml:"version"`
	Strings []string `json:"strings" yaml:"strings"`
	Graph   string   `json:"graph" yaml:"graph"`
	Digest  string   `json:"digest,omitempty" yaml:"digest,omitempty"`
}

// Info summarizes an artifact without exposing its graph.
type Info struct {
	Format   paramgraph.Format
	BlobSize int
	TextSize int
	Digest   string
	Stats    paramgraph.Stats
}

// digestKey is the BLAKE3 key for artifact digests, ASCII zero-padded to 32 bytes.
var digestKey = [32]byte{
	'p', 'a', 'r', 'a', 'm', 'g', 'r', 'a', 'p', 'h', '.', 'a', 'r', 't', 'i', 'f',
	'a', 'c', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Build serializes g into a new artifact.
func Build(g *paramgraph.Graph) (*Artifact, error) {
	blob, err := paramgraph.Encode(g)
	if err != nil {
		return nil, err
	}
	return &Artifact{
		Version: Version,
		Strings: g.Strings,
		Graph:   base64url.Encode(blob),
		Digest:  Digest(g.Strings, blob),
	}, nil
}

// Digest returns the hex BLAKE3 keyed hash over the blob and the string
// table. Strings are length-prefixed so boundaries cannot shift.
func Digest(strs []string, blob []byte) string {
	h, err := blake3.NewKeyed(digestKey[:])
	if err != nil {
		panic("artifact: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	var lenBuf [binary.MaxVarintLen64]byte
	h.Write(lenBuf[:binary.PutUvarint(lenBuf[:], uint64(len(blob)))])
	h.Write(blob)
	for _, s := range strs {
		h.Write(lenBuf[:binary.PutUvarint(lenBuf[:], uint64(len(s)))])
		h.Write([]byte(s))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Serialized returns the string table and graph text as a codec pair.
func (a *Artifact) Serialized() paramgraph.Serialized {
	return paramgraph.Serialized{Strings: a.Strings, Graph: a.Graph}
}

// Decode verifies the envelope version and digest, then decodes the graph.
// An empty digest skips verification.
func (a *Artifact) Decode() (*paramgraph.Graph, error) {
	blob, err := a.blob()
	if err != nil {
		return nil, err
	}
	return paramgraph.Decode(a.Strings, blob)
}

// Inspect decodes the artifact and reports its format and size.
func (a *Artifact) Inspect() (Info, error) {
	blob, err := a.blob()
	if err != nil {
		return Info{}, err
	}
	g, err := paramgraph.Decode(a.Strings, blob)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Format:   paramgraph.Format(blob[0]),
		BlobSize: len(blob),
		TextSize: len(a.Graph),
		Digest:   a.Digest,
		Stats:    g.Stats(),
	}, nil
}

// Header reports the blob format and decoded blob size without decoding the
// graph or verifying the digest.
func (a *Artifact) Header() (paramgraph.Format, int, error) {
	if len(a.Graph) < 2 {
		return 0, 0, &errors.MalformedGraphError{Offset: 0, Reason: "graph text too short"}
	}
	head, err := base64url.Decode(a.Graph[:min(4, len(a.Graph))])
	if err != nil {
		return 0, 0, &errors.MalformedGraphError{Offset: -1, Reason: "invalid base64url text", Cause: err}
	}
	return paramgraph.Format(head[0]), base64url.DecodedLen(len(a.Graph)), nil
}

func (a *Artifact) blob() ([]byte, error) {
	if a.Version != Version {
		return nil, errors.New(errors.ErrCodeUnsupported, "artifact version %d (supported: %d)", a.Version, Version)
	}
	blob, err := base64url.Decode(a.Graph)
	if err != nil {
		return nil, &errors.MalformedGraphError{Offset: -1, Reason: "invalid base64url text", Cause: err}
	}
	if a.Digest != "" {
		if got := Digest(a.Strings, blob); got != a.Digest {
			return nil, errors.New(errors.ErrCodeDigestMismatch, "digest %s does not match contents (%s)", a.Digest, got)
		}
	}
	return blob, nil
}
