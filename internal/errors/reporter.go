package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Reporter renders Errors as Rust-style caret diagnostics, adapted from the
// teacher's ErrorReporter. The core never calls this on its own (and never
// prints: even the magic #trace line goes to the Reducer's Tracer
// callback) — it exists for the external REPL/CLI collaborator spec §1
// excludes from this module's scope.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter creates a Reporter for one source file's diagnostics.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(source, "\n")}
}

// Format renders err in the style `error[E0100]: message` followed by a
// source context window with a caret under the offending column.
func (r *Reporter) Format(err *Error) string {
	var b strings.Builder

	levelColor := color.New(color.FgRed, color.Bold).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(&b, "%s[%s]: %s\n", levelColor("error"), err.Kind, err.Message)

	width := lineNumberWidth(err.Position.Row)
	indent := strings.Repeat(" ", width)

	fmt.Fprintf(&b, "%s %s %s\n", indent, dim("-->"), err.Position)
	fmt.Fprintf(&b, "%s %s\n", indent, dim("│"))

	row := err.Position.Row
	if row > 0 && row <= len(r.lines) {
		fmt.Fprintf(&b, "%s %s %s\n",
			bold(fmt.Sprintf("%*d", width, row)), dim("│"), r.lines[row-1])

		marker := strings.Repeat(" ", max0(err.Position.Col-1)) + levelColor("^")
		fmt.Fprintf(&b, "%s %s %s\n", indent, dim("│"), marker)
	}

	return b.String()
}

func lineNumberWidth(row int) int {
	w := len(fmt.Sprintf("%d", row))
	if w < 3 {
		return 3
	}
	return w
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
