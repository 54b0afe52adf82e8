package pipeline

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/paramgraph/pkg/artifact"
	"github.com/matzehuels/paramgraph/pkg/cache"
	"github.com/matzehuels/paramgraph/pkg/errors"
	"github.com/matzehuels/paramgraph/pkg/observability"
	"github.com/matzehuels/paramgraph/pkg/paramgraph"
)

const sourceYAML = `
strings: [findMany, where, id, User.findUnique, name]
inputNodes:
  - edges:
      1: {flags: 32, childNodeId: 1}
  - edges:
      2: {flags: 1, scalarMask: 2}
outputNodes:
  - edges:
      4: {}
roots:
  findMany: {argsNodeId: 0, outputNodeId: 0}
  User.findUnique: {argsNodeId: 0}
`

// memCache is an in-memory cache.Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func quietLogger() *log.Logger { return log.New(io.Discard) }

func TestCompile(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, quietLogger())

	res, err := runner.Compile(ctx, []byte(sourceYAML), Options{SourceFormat: artifact.FormatYAML})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Error("NullCache should never hit")
	}
	if res.Stats.Roots != 2 || res.Stats.InputNodes != 2 || res.Stats.OutputNodes != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.Stats.Format != paramgraph.FormatCompact {
		t.Errorf("format = %v, want compact", res.Stats.Format)
	}
	if res.SourceHash != cache.Hash([]byte(sourceYAML)) {
		t.Error("SourceHash should hash the raw source")
	}

	a, err := artifact.Unmarshal(res.Encoded, artifact.FormatJSON)
	if err != nil {
		t.Fatalf("encoded output is not a json envelope: %v", err)
	}
	g, err := a.Decode()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(res.Graph, g, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("decoded graph mismatch (-compiled +decoded):\n%s", diff)
	}
}

func TestCompileCache(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	runner := NewRunner(mc, nil, quietLogger())
	opts := Options{SourceFormat: artifact.FormatYAML, Envelope: artifact.FormatCBOR}

	first, err := runner.Compile(ctx, []byte(sourceYAML), opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := runner.Compile(ctx, []byte(sourceYAML), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit || !second.CacheHit {
		t.Fatalf("hits = %v, %v; want false, true", first.CacheHit, second.CacheHit)
	}
	if diff := cmp.Diff(first.Artifact, second.Artifact); diff != "" {
		t.Errorf("cached artifact differs:\n%s", diff)
	}

	opts.Refresh = true
	third, err := runner.Compile(ctx, []byte(sourceYAML), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHit {
		t.Error("Refresh should bypass the cache")
	}
	if mc.sets != 2 {
		t.Errorf("cache sets = %d, want 2", mc.sets)
	}

	// A different envelope is a different key.
	other, err := runner.Compile(ctx, []byte(sourceYAML), Options{SourceFormat: artifact.FormatYAML})
	if err != nil {
		t.Fatal(err)
	}
	if other.CacheHit {
		t.Error("json envelope should not hit the cbor entry")
	}
}

func TestCompileCorruptCacheEntry(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	runner := NewRunner(mc, nil, quietLogger())
	opts := Options{SourceFormat: artifact.FormatYAML}

	if _, err := runner.Compile(ctx, []byte(sourceYAML), opts); err != nil {
		t.Fatal(err)
	}
	for k, v := range mc.data {
		a, err := artifact.Unmarshal(v, artifact.FormatJSON)
		if err != nil {
			t.Fatal(err)
		}
		a.Digest = artifact.Digest(nil, nil)
		mc.data[k], _ = artifact.Marshal(a, artifact.FormatJSON)
	}

	res, err := runner.Compile(ctx, []byte(sourceYAML), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Error("entry with a bad digest should be recompiled")
	}
}

func TestCompileErrors(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, quietLogger())

	tests := []struct {
		name string
		src  string
		opts Options
		code errors.Code
	}{
		{"unknown envelope", sourceYAML, Options{SourceFormat: artifact.FormatYAML, Envelope: "xml"}, errors.ErrCodeInvalidFormat},
		{"cbor source", sourceYAML, Options{SourceFormat: artifact.FormatCBOR}, errors.ErrCodeInvalidFormat},
		{"syntax error", "{", Options{}, errors.ErrCodeInvalidFormat},
		{"dangling child", `{"strings":["a","b"],"inputNodes":[{"edges":{"1":{"flags":32,"childNodeId":7}}}]}`, Options{}, errors.ErrCodeInvalidGraph},
		{"bad root key", "strings: ['1x']\nroots:\n  '1x': {}\n", Options{SourceFormat: artifact.FormatYAML}, errors.ErrCodeInvalidRootKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.Compile(ctx, []byte(tt.src), tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

type recordingHooks struct {
	observability.NoopCodecHooks
	observability.NoopCacheHooks
	mu      sync.Mutex
	encodes []string
	decodes int
	hits    int
	misses  int
}

func (h *recordingHooks) OnEncode(_ context.Context, format string, size int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err == nil && size > 0 {
		h.encodes = append(h.encodes, format)
	}
}

func (h *recordingHooks) OnDecode(context.Context, string, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.decodes++
}

func (h *recordingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *recordingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func TestCompileHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetCodecHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	runner := NewRunner(newMemCache(), nil, quietLogger())
	opts := Options{SourceFormat: artifact.FormatYAML}
	for range 2 {
		if _, err := runner.Compile(ctx, []byte(sourceYAML), opts); err != nil {
			t.Fatal(err)
		}
	}

	// A refresh skips the lookup, so it is neither a hit nor a miss.
	opts.Refresh = true
	if _, err := runner.Compile(ctx, []byte(sourceYAML), opts); err != nil {
		t.Fatal(err)
	}

	if want := []string{"compact", "compact"}; !cmp.Equal(hooks.encodes, want) {
		t.Errorf("encodes = %v, want %v", hooks.encodes, want)
	}
	if hooks.decodes != 1 || hooks.hits != 1 || hooks.misses != 1 {
		t.Errorf("decodes/hits/misses = %d/%d/%d, want 1/1/1", hooks.decodes, hooks.hits, hooks.misses)
	}
}

func TestScopedKeyerIsolatesProjects(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	a := NewRunner(mc, cache.NewScopedKeyer(nil, "a:"), quietLogger())
	b := NewRunner(mc, cache.NewScopedKeyer(nil, "b:"), quietLogger())
	opts := Options{SourceFormat: artifact.FormatYAML}

	if _, err := a.Compile(ctx, []byte(sourceYAML), opts); err != nil {
		t.Fatal(err)
	}
	res, err := b.Compile(ctx, []byte(sourceYAML), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Error("scoped runners should not share entries")
	}
}
