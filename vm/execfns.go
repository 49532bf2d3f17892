package vm

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/portsh/portsh/ast"
	"github.com/portsh/portsh/builtin"
	"github.com/portsh/portsh/expand"
)

func (v *Vm) execProgram(ctx context.Context, prog ast.Program, s streams) commandResult {
	var last commandResult = errExitCode(0)

	for _, item := range prog {
		if ctx.Err() != nil {
			return errCancelled{}
		}

		if item.Background {
			v.execBackground(ctx, item.List, s)
			last = errExitCode(0)
			continue
		}

		last = v.execCmdList(ctx, item.List, s)
		v.lastStatus = last.ExitCode()
		if isFatal(last) {
			return last
		}
	}
	return last
}

// execBackground launches a command list without blocking the caller.  The
// job runs over its own environment clone and is reaped in Run.
func (v *Vm) execBackground(ctx context.Context, cl ast.CommandList, s streams) {
	bg := v.fork(v.env.Clone())
	v.jobs.Add(1)
	go func() {
		defer v.jobs.Done()
		bg.execCmdList(ctx, cl, s)
	}()
}

func (v *Vm) execCmdList(ctx context.Context, cl ast.CommandList, s streams) commandResult {
	if cl.Lhs == nil {
		return v.execPipeline(ctx, cl.Rhs, s)
	}

	res := v.execCmdList(ctx, *cl.Lhs, s)
	if isFatal(res) {
		return res
	}

	ec := res.ExitCode()
	if cl.Op == ast.LAnd && ec == 0 || cl.Op == ast.LOr && ec != 0 {
		return v.execPipeline(ctx, cl.Rhs, s)
	}
	return res
}

func (v *Vm) execPipeline(ctx context.Context, pl ast.Pipeline, s streams) commandResult {
	var res commandResult
	if len(pl.Cmds) == 1 {
		res = v.execCommand(ctx, pl.Cmds[0], s)
	} else {
		res = v.execStages(ctx, pl.Cmds, s)
	}

	if isFatal(res) || !pl.Negate {
		return res
	}
	if res.ExitCode() == 0 {
		return errExitCode(1)
	}
	return errExitCode(0)
}

// execStages runs a multi-command pipeline.  Every stage starts concurrently
// over its own environment clone; stage i's stdout feeds stage i+1's stdin
// through an OS pipe.  The pipeline completes when all stages have
// terminated, and reports the status of the last one.
func (v *Vm) execStages(ctx context.Context, cmds []ast.Command, s streams) commandResult {
	n := len(cmds)

	type pipe struct{ r, w *os.File }
	pipes := make([]pipe, n-1)
	for i := range pipes {
		r, w, err := os.Pipe()
		if err != nil {
			for _, p := range pipes[:i] {
				p.r.Close()
				p.w.Close()
			}
			return errInternal{err}
		}
		pipes[i] = pipe{r, w}
	}

	results := make([]commandResult, n)
	g, gctx := errgroup.WithContext(ctx)

	for i, cmd := range cmds {
		i, cmd := i, cmd
		stage := v.fork(v.env.Clone())

		ss := s
		if i > 0 {
			ss.in = pipes[i-1].r
		}
		if i < n-1 {
			ss.out = pipes[i].w
		}

		g.Go(func() error {
			results[i] = stage.execCommand(gctx, cmd, ss)
			// Closing the write end delivers EOF downstream; closing the
			// read end unblocks an upstream writer whose reader quit early.
			if i > 0 {
				pipes[i-1].r.Close()
			}
			if i < n-1 {
				pipes[i].w.Close()
			}
			return nil
		})
	}
	g.Wait()

	for _, res := range results {
		if isFatal(res) {
			return res
		}
	}
	return results[n-1]
}

func (v *Vm) execCommand(ctx context.Context, cmd ast.Command, s streams) commandResult {
	if ctx.Err() != nil {
		return errCancelled{}
	}

	switch cmd := cmd.(type) {
	case ast.Simple:
		return v.execSimple(ctx, cmd, s)
	case ast.Subshell:
		return v.execSubshell(ctx, cmd, s)
	}
	panic("unreachable")
}

func (v *Vm) execSubshell(ctx context.Context, sub ast.Subshell, s streams) commandResult {
	s, cleanup, rres := v.applyRedirs(s, sub.Redirs, v.expander())
	defer cleanup()
	if rres != nil {
		return rres
	}

	child := v.fork(v.env.Clone())
	res := child.execProgram(ctx, sub.Body, s)
	if r, ok := res.(errExit); ok {
		// ‘exit’ inside a subshell terminates only the subshell.
		return errExitCode(int(r))
	}
	return res
}

func (v *Vm) execSimple(ctx context.Context, cmd ast.Simple, s streams) commandResult {
	x := v.expander()

	// A command of bare assignments mutates the enclosing environment.
	if len(cmd.Args) == 0 {
		for _, a := range cmd.Assigns {
			v.env.Assign(a.Name, x.Literal(a.Value))
		}
		return errExitCode(0)
	}

	argv := x.Words(cmd.Args)
	if len(argv) == 0 {
		// Every word expanded away to nothing.
		return errExitCode(0)
	}

	s, cleanup, rres := v.applyRedirs(s, cmd.Redirs, x)
	defer cleanup()
	if rres != nil {
		return rres
	}

	if fn, ok := builtin.Lookup(argv[0]); ok {
		// Assignment prefixes shadow the live environment for the builtin's
		// duration: the values are restored afterwards, while state the
		// builtin itself mutates (the working directory, PWD) persists.
		restores := make([]func(), 0, len(cmd.Assigns))
		for _, a := range cmd.Assigns {
			restores = append(restores, v.env.Shadow(a.Name, x.Literal(a.Value)))
		}

		res := fn(ctx, &builtin.Invocation{
			Name:       argv[0],
			Args:       argv[1:],
			Env:        v.env,
			Fsys:       v.fsys,
			Dirs:       v.dirs,
			LastStatus: v.lastStatus,
			Stdin:      s.in,
			Stdout:     s.out,
			Stderr:     s.err,
		})
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}

		switch {
		case res.Exit:
			return errExit(res.Code)
		case ctx.Err() != nil:
			return errCancelled{}
		}
		return errExitCode(res.Code)
	}

	// External commands get a clone carrying the prefixes as exported
	// variables.
	runEnv := v.env
	if len(cmd.Assigns) > 0 {
		runEnv = v.env.Clone()
		for _, a := range cmd.Assigns {
			runEnv.Set(a.Name, x.Literal(a.Value), true)
		}
	}
	return v.execExternal(ctx, argv, runEnv, s)
}

// applyRedirs rewires s according to redirs, expanding each target word.  A
// target that expands to anything but exactly one field, or that cannot be
// opened, fails only this stage.  The caller must always run the returned
// cleanup.
func (v *Vm) applyRedirs(s streams, redirs []ast.Redirect, x *expand.Expander) (streams, func(), commandResult) {
	var toClose []io.Closer
	cleanup := func() {
		for _, c := range toClose {
			c.Close()
		}
	}

	for _, r := range redirs {
		if r.Kind == ast.RedirDup {
			// The parser only lets fds 1 and 2 through here.
			src := map[int]io.Writer{1: s.out, 2: s.err}[r.DstFD]
			if r.SrcFD == 1 {
				s.out = src
			} else {
				s.err = src
			}
			continue
		}

		fields := x.Word(r.Target)
		if len(fields) != 1 {
			fmt.Fprintf(s.err, "portsh: ambiguous redirection target\n")
			return s, cleanup, errExitCode(1)
		}
		path := x.Env.Abs(fields[0])

		switch r.Kind {
		case ast.RedirRead:
			fd, err := v.fsys.Open(path)
			if err != nil {
				fmt.Fprintf(s.err, "portsh: %s: cannot open for reading\n", fields[0])
				return s, cleanup, errExitCode(1)
			}
			toClose = append(toClose, fd)
			s.in = fd

		case ast.RedirWrite, ast.RedirAppend:
			flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
			if r.Kind == ast.RedirAppend {
				flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
			}
			fd, err := v.fsys.OpenFile(path, flags, 0o644)
			if err != nil {
				fmt.Fprintf(s.err, "portsh: %s: cannot open for writing\n", fields[0])
				return s, cleanup, errExitCode(1)
			}
			toClose = append(toClose, fd)
			if r.SrcFD == 2 {
				s.err = fd
			} else {
				s.out = fd
			}
		}
	}

	return s, cleanup, nil
}
