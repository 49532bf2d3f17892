// Package diag renders positioned syntax errors for people: the message, the
// offending source line, and a caret under the offending column.  This is a
// presentation layer; the parser itself only reports structured errors.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/portsh/portsh/parser"
)

// Fprint writes the full rendering of e to w.  name identifies the script
// source, e.g. a filename or "<command>".
func Fprint(w io.Writer, name, src string, e *parser.SyntaxError) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)

	bold.Fprintf(w, "%s:%d:%d:", name, e.Line, e.Col)
	fmt.Fprintf(w, " syntax error: %s\n", e.Msg)

	line := sourceLine(src, e.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "    %s\n", line)
	red.Fprintf(w, "    %s^\n", strings.Repeat(" ", caretPad(line, e.Col)))
}

func sourceLine(src string, line int) string {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// caretPad counts the screen columns before the caret, expanding tabs the
// same way the source line prints them.
func caretPad(line string, col int) int {
	pad := 0
	for i, r := range []rune(line) {
		if i >= col-1 {
			break
		}
		if r == '\t' {
			pad += 8 - pad%8
		} else {
			pad++
		}
	}
	return pad
}
