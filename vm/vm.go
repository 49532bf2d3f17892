// Package vm walks the syntax tree and turns it into observable execution:
// builtins run in-process, external commands become OS processes, pipeline
// stages run concurrently connected by OS pipes.  All shell state lives in
// the Env owned by each execution scope; there is no global mutable state.
package vm

import (
	"context"
	"io"
	"sync"

	"github.com/spf13/afero"

	"github.com/portsh/portsh/ast"
	"github.com/portsh/portsh/env"
	"github.com/portsh/portsh/expand"
	"github.com/portsh/portsh/pkg/stack"
)

// Result is the final outcome of running a script.  Cancelled distinguishes
// cooperative shutdown from every normal exit code.
type Result struct {
	Code      int
	Cancelled bool
}

type Vm struct {
	env  *env.Env
	fsys afero.Fs
	dirs *stack.Stack[string]

	in  io.Reader
	out io.Writer
	err io.Writer

	spawn SpawnFunc
	jobs  *sync.WaitGroup

	lastStatus int
}

// New creates an interpreter over the given environment and filesystem.  The
// streams are the script's ambient stdin/stdout/stderr; pipeline wiring and
// redirections override them per stage.
func New(e *env.Env, fsys afero.Fs, in io.Reader, out, errw io.Writer) *Vm {
	return &Vm{
		env:   e,
		fsys:  fsys,
		dirs:  stack.New[string](16),
		in:    in,
		out:   out,
		err:   errw,
		spawn: spawnOS,
		jobs:  &sync.WaitGroup{},
	}
}

// SetSpawner replaces the external-process capability, mainly for tests.
func (v *Vm) SetSpawner(fn SpawnFunc) {
	v.spawn = fn
}

// Env exposes the interpreter's root environment.
func (v *Vm) Env() *env.Env {
	return v.env
}

// Run executes a parsed program to completion.  It returns only after every
// background pipeline has been reaped.  Cancelling ctx tears down all running
// stages and yields a Cancelled result within a bounded time.
func (v *Vm) Run(ctx context.Context, prog ast.Program) Result {
	res := v.execProgram(ctx, prog, streams{v.in, v.out, v.err})
	v.jobs.Wait()

	switch res := res.(type) {
	case errCancelled:
		return Result{Code: res.ExitCode(), Cancelled: true}
	default:
		return Result{Code: res.ExitCode()}
	}
}

// streams is the trio of wired standard streams handed to one command.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// fork derives an interpreter for an isolated scope: a subshell, a pipeline
// sibling, or a background task.  The clone mutates its own environment and
// directory history; background jobs are still reaped by the root.
func (v *Vm) fork(e *env.Env) *Vm {
	w := *v
	w.env = e
	w.dirs = stack.New[string](16)
	return &w
}

func (v *Vm) expander() *expand.Expander {
	return expand.New(v.env, v.fsys)
}
