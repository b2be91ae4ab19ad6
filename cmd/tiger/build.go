package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tiger/internal/diag"
	"tiger/internal/driver"
	"tiger/internal/ir"
	"tiger/internal/translate"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [file.tig]",
	Short: "Compile a Tiger program to IR fragments",
	Long: "Build runs the whole front-end and emits IR fragments. With no " +
		"argument the entry point comes from tiger.toml.",
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().Bool("emit-ir", false, "print the IR of every fragment")
	buildCmd.Flags().String("dialect", "", "frame dialect (amd64|mips32); overrides tiger.toml")
}

func runBuild(cmd *cobra.Command, args []string) error {
	emitIR, err := cmd.Flags().GetBool("emit-ir")
	if err != nil {
		return err
	}
	dialect, err := cmd.Flags().GetString("dialect")
	if err != nil {
		return err
	}

	var target string
	if len(args) == 1 {
		target = args[0]
		if dialect == "" {
			if manifest, found, merr := loadProjectManifest("."); merr == nil && found {
				dialect = manifest.Config.Build.Dialect
			}
		}
	} else {
		manifest, found, merr := loadProjectManifest(".")
		if merr != nil {
			return merr
		}
		if !found {
			return fmt.Errorf("no tiger.toml found; pass a file explicitly, e.g. tiger build main.tig")
		}
		target = manifest.MainPath()
		if dialect == "" {
			dialect = manifest.Config.Build.Dialect
		}
	}

	fs, result, err := driver.CompileFile(target, driver.Options{
		Dialect:        dialect,
		MaxDiagnostics: maxDiagnostics(cmd),
	})
	if err != nil {
		return err
	}
	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		diag.Render(os.Stderr, result.Bag, fs, diag.RenderOpts{Color: useColor(cmd, os.Stderr)})
	}
	if !result.Ok() {
		os.Exit(1)
	}

	if emitIR {
		emitFragments(result.Fragments)
	} else {
		fmt.Fprintf(os.Stdout, "%s: %d fragments\n", result.Path, len(result.Fragments))
	}
	return nil
}

func emitFragments(frags []translate.Fragment) {
	for _, frag := range frags {
		switch frag := frag.(type) {
		case *translate.ProcFragment:
			fmt.Fprintf(os.Stdout, "proc %s:\n", frag.Frame.Name())
			ir.Print(os.Stdout, frag.Body)
		case *translate.StringFragment:
			fmt.Fprintf(os.Stdout, "string %s: %q\n", frag.Label, frag.Value)
		}
	}
}
