// Package builtin implements the commands that run inside the interpreter
// process.  Every builtin honors the same contract as an external pipeline
// stage: argument strings in, wired standard streams, an exit code out.
package builtin

import (
	"context"
	"fmt"
	"io"

	"github.com/pborman/getopt/v2"
	"github.com/spf13/afero"

	"github.com/portsh/portsh/env"
	"github.com/portsh/portsh/pkg/stack"
)

// Result is a builtin's outcome.  Exit requests termination of the whole
// script with Code as its final status.
type Result struct {
	Code int
	Exit bool
}

// Command is the invocation contract shared by all builtins.  Long-running
// builtins must check ctx at natural yield points.
type Command func(ctx context.Context, inv *Invocation) Result

// Invocation carries everything a builtin may touch: its arguments, the
// mutable environment of the enclosing scope, the filesystem capability, and
// the wired streams.
type Invocation struct {
	Name string
	Args []string

	Env  *env.Env
	Fsys afero.Fs
	// Dirs is the interpreter's directory history, used by ‘cd -’.
	Dirs *stack.Stack[string]
	// LastStatus is the exit status of the most recent foreground pipeline.
	LastStatus int

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

var table = map[string]Command{
	"cat":    cat,
	"cd":     cd,
	"echo":   echo,
	"exit":   exit,
	"export": export,
	"false":  false_,
	"mkdir":  mkdir,
	"pwd":    pwd,
	"rm":     rm,
	"sleep":  sleep,
	"touch":  touch,
	"true":   true_,
	"unset":  unset,
}

// Lookup resolves a command name against the builtin table.  Builtins take
// precedence over external executables of the same name.
func Lookup(name string) (Command, bool) {
	fn, ok := table[name]
	return fn, ok
}

func code(n int) Result {
	return Result{Code: n}
}

func (inv *Invocation) errorf(format string, args ...any) {
	format = fmt.Sprintf("%s: %s\n", inv.Name, format)
	fmt.Fprintf(inv.Stderr, format, args...)
}

// flags returns a fresh option set for parsing inv's arguments.
func (inv *Invocation) flags() *getopt.Set {
	s := getopt.New()
	s.SetProgram(inv.Name)
	return s
}

func (inv *Invocation) parse(s *getopt.Set) bool {
	if err := s.Getopt(append([]string{inv.Name}, inv.Args...), nil); err != nil {
		fmt.Fprintf(inv.Stderr, "%s: %s\n", inv.Name, err)
		s.PrintUsage(inv.Stderr)
		return false
	}
	return true
}

// copyAll copies src to dst in chunks, honoring cancellation between reads.
func copyAll(ctx context.Context, dst io.Writer, src io.Reader) error {
	buf := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
