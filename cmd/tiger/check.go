package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tiger/internal/diag"
	"tiger/internal/driver"
	"tiger/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] path",
	Short: "Type-check Tiger sources",
	Long: "Check runs the front-end through semantic analysis. A directory " +
		"argument checks every *.tig file under it in parallel, without the " +
		"cache. A single unchanged file whose cached outcome is ok is skipped " +
		"unless --no-cache is set.",
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("no-cache", false, "ignore the disk cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	var cache *driver.DiskCache
	if !noCache {
		// A cache failure only disables the shortcut.
		cache, _ = driver.OpenDiskCache("tiger")
	}

	info, err := os.Stat(args[0])
	if err != nil {
		return err
	}
	opts := driver.Options{MaxDiagnostics: maxDiagnostics(cmd), StopAfter: "check"}

	if !info.IsDir() {
		return checkOne(cmd, args[0], opts, cache)
	}

	results, err := driver.CompileDir(context.Background(), args[0], opts)
	if err != nil {
		return err
	}
	failed := 0
	for _, res := range results {
		if res.Bag.Len() > 0 {
			res.Bag.Sort()
			diag.Render(os.Stderr, res.Bag, res.FS, diag.RenderOpts{Color: useColor(cmd, os.Stderr)})
		}
		if !res.Ok() {
			failed++
		}
	}
	fmt.Fprintf(os.Stdout, "checked %d files, %d failed\n", len(results), failed)
	if failed > 0 {
		os.Exit(1)
	}
	return nil
}

func checkOne(cmd *cobra.Command, path string, opts driver.Options, cache *driver.DiskCache) error {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return err
	}
	key := fs.Get(id).Hash
	if payload, hit := cache.Get(key); hit {
		if !payload.Broken {
			fmt.Fprintf(os.Stdout, "%s: ok (cached)\n", path)
			return nil
		}
		// Re-run broken files for their diagnostics.
	}

	res := driver.Compile(fs, id, opts)
	if res.Bag.Len() > 0 {
		res.Bag.Sort()
		diag.Render(os.Stderr, res.Bag, fs, diag.RenderOpts{Color: useColor(cmd, os.Stderr)})
	}
	_ = cache.Put(key, &driver.DiskPayload{Path: path, Broken: !res.Ok()})
	if !res.Ok() {
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, "%s: ok\n", path)
	return nil
}
