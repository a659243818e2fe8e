package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"bulloak/internal/source"
)

// ListTreeFiles expands the argument list into a sorted set of spec files.
// A directory argument is walked recursively for *.tree files; a file
// argument is taken as-is.
func ListTreeFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, TreeExt) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// Sort for a deterministic processing order.
	sort.Strings(files)
	return files, nil
}

// normalizeJobs clamps the worker count. The default is sequential: batch
// runs are usually a handful of small files and deterministic output order
// matters more than latency.
func normalizeJobs(jobs, n int) int {
	if jobs <= 0 {
		jobs = 1
	}
	if jobs > n {
		jobs = n
	}
	return jobs
}

// ScaffoldBatch compiles every spec file, jobs at a time. Results keep the
// input order regardless of completion order.
func ScaffoldBatch(ctx context.Context, paths []string, jobs int, opts Options) ([]*ScaffoldResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	// Index slots are unique per goroutine, no mutex needed.
	results := make([]*ScaffoldResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(normalizeJobs(jobs, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// Each worker owns its FileSet; spans never cross files here.
			results[i] = ScaffoldFile(source.NewFileSet(), path, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// CheckBatch checks every spec file against its companion, jobs at a time.
func CheckBatch(ctx context.Context, paths []string, jobs int, opts CheckOptions) ([]*CheckResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	results := make([]*CheckResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(normalizeJobs(jobs, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = CheckFile(source.NewFileSet(), path, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
