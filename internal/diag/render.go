package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tiger/internal/source"
)

// RenderOpts controls diagnostic formatting.
type RenderOpts struct {
	Color bool
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	posColor  = color.New(color.Bold)
)

// Render writes every diagnostic in bag to w in the form
//
//	<path>:<line>:<col>: <severity>[<code>]: <message>
//	  <source line>
//	  ^~~~
//
// followed by its notes. The caret underline is width-correct for wide runes.
func Render(w io.Writer, bag *Bag, fs *source.FileSet, opts RenderOpts) {
	for _, d := range bag.Items() {
		renderOne(w, d, fs, opts)
	}
}

func renderOne(w io.Writer, d Diagnostic, fs *source.FileSet, opts RenderOpts) {
	pos := fs.Position(d.Primary)
	sev := d.Severity.String()
	head := fmt.Sprintf("%s[%s]", sev, d.Code)
	if opts.Color {
		head = sevColor(d.Severity).Sprintf("%s[%s]", sev, d.Code)
		fmt.Fprintf(w, "%s: %s: %s\n", posColor.Sprint(pos), head, d.Message)
	} else {
		fmt.Fprintf(w, "%s: %s: %s\n", pos, head, d.Message)
	}
	renderContext(w, d.Primary, fs)
	for _, n := range d.Notes {
		npos := fs.Position(n.Span)
		fmt.Fprintf(w, "%s: note: %s\n", npos, n.Msg)
		renderContext(w, n.Span, fs)
	}
}

func renderContext(w io.Writer, span source.Span, fs *source.FileSet) {
	line := fs.Line(span.File, span.Start)
	if line == "" {
		return
	}
	pos := fs.Position(span)
	fmt.Fprintf(w, "  %s\n", line)

	// Pad up to the caret column using the display width of the prefix.
	prefix := line
	if int(pos.Col-1) <= len(line) {
		prefix = line[:pos.Col-1]
	}
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))
	n := int(span.Len())
	if n < 1 {
		n = 1
	}
	if n > len(line)-len(prefix) && len(line) >= len(prefix) {
		n = len(line) - len(prefix)
		if n < 1 {
			n = 1
		}
	}
	marker := "^" + strings.Repeat("~", n-1)
	fmt.Fprintf(w, "  %s%s\n", pad, marker)
}

func sevColor(s Severity) *color.Color {
	switch s {
	case SevError:
		return errColor
	case SevWarning:
		return warnColor
	default:
		return infoColor
	}
}
