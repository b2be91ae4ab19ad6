package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tiger/internal/diag"
	"tiger/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.tig",
	Short: "Parse a Tiger source file",
	Long:  "Parse checks that the file is syntactically well-formed.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	fs, result, err := driver.CompileFile(args[0], driver.Options{
		MaxDiagnostics: maxDiagnostics(cmd),
		StopAfter:      "parse",
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
	fmt.Fprintf(os.Stdout, "%s: syntax ok\n", result.Path)
	return nil
}
