// Package pipeline compiles source graph documents into artifacts.
//
// Both the CLI and the lookup server go through a [Runner], so caching,
// logging and observability hooks behave the same everywhere.
//
// # Stages
//
//  1. Hash: the raw source bytes are hashed into a cache key
//  2. Parse: the document is decoded and validated ([artifact.ParseSource])
//  3. Encode: the graph is serialized and wrapped in an envelope ([artifact.Build])
//
// A cache hit skips stages 2 and 3; the cached envelope is still decoded and
// its digest verified, so a corrupt entry is recompiled instead of served.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Compile(ctx, src, pipeline.Options{
//	    Name:         "schema.yaml",
//	    SourceFormat: artifact.FormatYAML,
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("schema.json", res.Encoded, 0644)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paramgraph/pkg/artifact"
	"github.com/matzehuels/paramgraph/pkg/errors"
	"github.com/matzehuels/paramgraph/pkg/paramgraph"
)

// DefaultWorkers is the number of files compiled concurrently by CompileFiles.
const DefaultWorkers = 4

// Options configures a single compilation.
type Options struct {
	// Name identifies the source in logs and hooks (usually its path).
	Name string

	// SourceFormat is the encoding of the source document (json or yaml).
	SourceFormat artifact.Format

	// Envelope is the encoding of the produced artifact. Empty means json.
	Envelope artifact.Format

	// Refresh bypasses cache reads; the result is still stored.
	Refresh bool

	// Logger overrides the runner's logger for this call.
	Logger *log.Logger
}

// ValidateAndSetDefaults fills in defaults and rejects unusable options.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Envelope == "" {
		o.Envelope = artifact.FormatJSON
	}
	if _, err := artifact.ParseFormat(string(o.Envelope)); err != nil {
		return err
	}
	if o.SourceFormat == "" {
		o.SourceFormat = artifact.FormatJSON
	}
	if o.SourceFormat == artifact.FormatCBOR {
		return errors.New(errors.ErrCodeInvalidFormat, "source documents must be json or yaml")
	}
	if _, err := artifact.ParseFormat(string(o.SourceFormat)); err != nil {
		return err
	}
	if o.Name == "" {
		o.Name = "<stdin>"
	}
	return nil
}

// Result contains the outputs of a compilation.
type Result struct {
	// Artifact is the compiled envelope.
	Artifact *artifact.Artifact

	// Encoded is Artifact marshaled in the requested envelope format.
	Encoded []byte

	// Graph is the decoded graph.
	Graph *paramgraph.Graph

	// SourceHash is the content hash of the source document.
	SourceHash string

	// CacheHit reports whether the artifact came from the cache.
	CacheHit bool

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains compilation statistics.
type Stats struct {
	paramgraph.Stats
	Format   paramgraph.Format
	BlobSize int
	Duration time.Duration
}
