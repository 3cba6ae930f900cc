package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// FileResult is the outcome of one file in a batch
type FileResult struct {
	Path   string
	Result *Result
	Err    error
}

// FormatFiles formats paths (or URLs) concurrently, at most concurrency at a time
// (0 means GOMAXPROCS). Results keep the order of paths. A failing file never
// cancels its siblings; only ctx does.
func FormatFiles(ctx context.Context, paths []string, opts Options, concurrency int) []FileResult {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(paths))
	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, path := range paths {
		g.Go(func() error {
			res, err := FormatSource(ctx, path, opts)
			results[i] = FileResult{Path: path, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Failed counts the results that carry an error
func Failed(results []FileResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
