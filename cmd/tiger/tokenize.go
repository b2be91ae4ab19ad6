package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tiger/internal/diag"
	"tiger/internal/driver"
	"tiger/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.tig",
	Short: "Tokenize a Tiger source file",
	Long:  "Tokenize breaks a Tiger source file into its tokens, one per line.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	result, err := driver.Tokenize(args[0], maxDiagnostics(cmd))
	if err != nil {
		return err
	}
	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		diag.Render(os.Stderr, result.Bag, result.FileSet, diag.RenderOpts{Color: useColor(cmd, os.Stderr)})
	}
	for _, tok := range result.Tokens {
		pos := result.FileSet.Position(tok.Span)
		switch tok.Kind {
		case token.EOF:
			fmt.Fprintf(os.Stdout, "%d:%d\tEOF\n", pos.Line, pos.Col)
		case token.Ident, token.IntLit, token.StringLit:
			fmt.Fprintf(os.Stdout, "%d:%d\t%s\t%q\n", pos.Line, pos.Col, tok.Kind, tok.Text)
		default:
			fmt.Fprintf(os.Stdout, "%d:%d\t%q\n", pos.Line, pos.Col, tok.Kind.String())
		}
	}
	if result.Bag.HasErrors() {
		os.Exit(1)
	}
	return nil
}
