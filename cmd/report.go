package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jinzhu/inflection"

	"github.com/cmmoran/valuegen/pkg/action/generate"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.FgCyan)
)

func plural(n int, noun string) string {
	if n != 1 {
		noun = inflection.Plural(noun)
	}
	return fmt.Sprintf("%d %s", n, noun)
}

func printReport(w io.Writer, r *generate.Report) {
	okColor.Fprint(w, "✓ ")
	fmt.Fprintf(w, "generated %s\n", plural(len(r.Types), "value type"))
	if r.GoFile != "" {
		dimColor.Fprintf(w, "  %s\n", r.GoFile)
	}
	if r.JavaOut != "" {
		dimColor.Fprintf(w, "  %s (%s)\n", r.JavaOut, plural(r.JavaN, "java file"))
	}
	if len(r.Failures) == 0 {
		return
	}

	failColor.Fprint(w, "✗ ")
	fmt.Fprintf(w, "%s failed\n", plural(len(r.Failures), "declaration"))
	for _, f := range r.Failures {
		name := f.Decl
		if name == "" {
			name = f.File
		}
		failColor.Fprintf(w, "  %s", name)
		fmt.Fprintf(w, ": %v\n", f.Err)
	}
}
