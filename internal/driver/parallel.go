package driver

import (
	"context"
	"runtime"
	"sort"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"openfxc/internal/ir"
)

// BatchResult pairs one input path with its pipeline output. Each
// document owns its own pipeline; nothing is shared across entries.
type BatchResult struct {
	Path   string
	Module *ir.Module
	Err    error
}

// LowerFiles lowers many semantic documents concurrently, one pipeline
// per document. Results come back sorted by path so batch output is
// deterministic. Only a context failure aborts the group; per-file
// errors travel in the results.
func LowerFiles(ctx context.Context, paths []string, opts LowerOptions, limit int) ([]BatchResult, error) {
	return runBatch(ctx, paths, limit, func(path string) (*ir.Module, error) {
		model, err := ReadSemantic(path)
		if err != nil {
			return nil, err
		}
		return Lower(model, opts), nil
	})
}

// OptimizeFiles optimizes many IR documents concurrently.
func OptimizeFiles(ctx context.Context, paths []string, opts OptimizeOptions, limit int) ([]BatchResult, error) {
	return runBatch(ctx, paths, limit, func(path string) (*ir.Module, error) {
		m, err := ReadModule(path)
		if err != nil {
			return nil, err
		}
		return Optimize(m, opts).Module, nil
	})
}

func runBatch(ctx context.Context, paths []string, limit int, fn func(string) (*ir.Module, error)) ([]BatchResult, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	results := make([]BatchResult, len(paths))
	for i, path := range paths {
		idx, err := safecast.Conv[int32](i)
		if err != nil {
			return nil, err
		}
		path := path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := fn(path)
			results[idx] = BatchResult{Path: path, Module: m, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}
