package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a stable, human-readable rendering of the tree to w.  The
// output is deterministic for structurally identical programs, which makes it
// suitable for golden-file tests.
func Fprint(w io.Writer, prog Program) {
	printProgram(w, prog, 0)
}

func indent(w io.Writer, depth int, format string, args ...any) {
	fmt.Fprint(w, strings.Repeat("  ", depth))
	fmt.Fprintf(w, format+"\n", args...)
}

func printProgram(w io.Writer, prog Program, depth int) {
	indent(w, depth, "program")
	for _, it := range prog {
		if it.Background {
			indent(w, depth+1, "item &")
		} else {
			indent(w, depth+1, "item")
		}
		printList(w, it.List, depth+2)
	}
}

func printList(w io.Writer, cl CommandList, depth int) {
	if cl.Lhs != nil {
		op := "&&"
		if cl.Op == LOr {
			op = "||"
		}
		indent(w, depth, "list %s", op)
		printList(w, *cl.Lhs, depth+1)
		printPipeline(w, cl.Rhs, depth+1)
		return
	}
	printPipeline(w, cl.Rhs, depth)
}

func printPipeline(w io.Writer, pl Pipeline, depth int) {
	if pl.Negate {
		indent(w, depth, "pipeline !")
	} else {
		indent(w, depth, "pipeline")
	}
	for _, cmd := range pl.Cmds {
		printCommand(w, cmd, depth+1)
	}
}

func printCommand(w io.Writer, cmd Command, depth int) {
	switch cmd := cmd.(type) {
	case Simple:
		indent(w, depth, "simple")
		for _, a := range cmd.Assigns {
			indent(w, depth+1, "assign %s", a.Name)
			printParts(w, a.Value, depth+2)
		}
		for _, word := range cmd.Args {
			indent(w, depth+1, "word")
			printParts(w, word, depth+2)
		}
		printRedirs(w, cmd.Redirs, depth+1)
	case Subshell:
		indent(w, depth, "subshell")
		printProgram(w, cmd.Body, depth+1)
		printRedirs(w, cmd.Redirs, depth+1)
	default:
		panic("unreachable")
	}
}

func printParts(w io.Writer, word Word, depth int) {
	for _, part := range word {
		switch part := part.(type) {
		case Lit:
			indent(w, depth, "lit %q", string(part))
		case Quoted:
			indent(w, depth, "quoted %q", string(part))
		case VarRef:
			if part.Quoted {
				indent(w, depth, "var %s quoted", part.Name)
			} else {
				indent(w, depth, "var %s", part.Name)
			}
		default:
			panic("unreachable")
		}
	}
}

func printRedirs(w io.Writer, redirs []Redirect, depth int) {
	for _, r := range redirs {
		switch r.Kind {
		case RedirRead:
			indent(w, depth, "redir < fd=%d", r.SrcFD)
		case RedirWrite:
			indent(w, depth, "redir > fd=%d", r.SrcFD)
		case RedirAppend:
			indent(w, depth, "redir >> fd=%d", r.SrcFD)
		case RedirDup:
			indent(w, depth, "redir >& fd=%d dst=%d", r.SrcFD, r.DstFD)
			continue
		}
		indent(w, depth+1, "word")
		printParts(w, r.Target, depth+2)
	}
}
