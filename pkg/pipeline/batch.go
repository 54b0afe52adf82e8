package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/paramgraph/pkg/artifact"
	"github.com/matzehuels/paramgraph/pkg/errors"
)

// FileResult pairs a compiled source file with the artifact path it was
// written to.
type FileResult struct {
	Source string
	Output string
	*Result
}

// CompileFiles compiles each path and writes the artifact into outDir (or
// next to the source when outDir is empty). At most workers files are in
// flight at once; workers <= 0 selects DefaultWorkers.
//
// Sources that would share an output path are rejected with INVALID_INPUT
// before anything is compiled. The first failure cancels the remaining
// compilations. Results are returned in the order of paths.
func (r *Runner) CompileFiles(ctx context.Context, paths []string, outDir string, opts Options, workers int) ([]FileResult, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	outputs, err := outputPaths(paths, outDir, opts.Envelope)
	if err != nil {
		return nil, err
	}
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return nil, err
		}
	}

	results := make([]FileResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.CompileFile(ctx, path, opts)
			if err != nil {
				return err
			}
			out := outputs[i]
			if err := os.WriteFile(out, res.Encoded, 0644); err != nil {
				return err
			}
			results[i] = FileResult{Source: path, Output: out, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// OutputPath returns where the artifact for src is written: the source base
// name with a ".pg" infix and the envelope extension, e.g. schema.yaml
// becomes schema.pg.json.
func OutputPath(src, outDir string, envelope artifact.Format) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + ".pg" + envelope.Ext()
	if outDir == "" {
		outDir = filepath.Dir(src)
	}
	return filepath.Join(outDir, base)
}

// outputPaths maps each source to its artifact path and fails when two
// sources land on the same file.
func outputPaths(paths []string, outDir string, envelope artifact.Format) ([]string, error) {
	outputs := make([]string, len(paths))
	seen := make(map[string]string, len(paths))
	for i, path := range paths {
		out := OutputPath(path, outDir, envelope)
		if prev, dup := seen[out]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s and %s both compile to %s", prev, path, out)
		}
		seen[out] = path
		outputs[i] = out
	}
	return outputs, nil
}

func readSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "source %s", path)
	}
	return data, err
}
