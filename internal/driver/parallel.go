package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"tiger/internal/source"
)

// ListTigerFiles returns every *.tig file under dir, sorted.
func ListTigerFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".tig") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CompileDir compiles every *.tig file under dir, fanning the independent
// programs out over the available cores. Results come back in the same
// order as ListTigerFiles.
func CompileDir(ctx context.Context, dir string, opts Options) ([]*Result, error) {
	files, err := ListTigerFiles(dir)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Each file is an independent program with its own FileSet and
			// temp factory, so no state is shared across goroutines.
			fileSet := source.NewFileSet()
			id, err := fileSet.Load(path)
			if err != nil {
				return err
			}
			results[i] = Compile(fileSet, id, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
