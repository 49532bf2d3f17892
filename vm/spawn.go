package vm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"

	"github.com/portsh/portsh/env"
)

// SpawnSpec describes one external process: a resolved executable path, its
// argument vector (Argv[0] is the name the script used), the exported
// environment, the working directory, and the wired streams.
type SpawnSpec struct {
	Path string
	Argv []string
	Env  []string
	Dir  string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// SpawnFunc is the external-process capability.  It blocks until the process
// exits and returns its exit code; cancelling ctx must terminate the process.
type SpawnFunc func(ctx context.Context, spec SpawnSpec) (int, error)

// spawnOS is the production spawner built on os/exec.
func spawnOS(ctx context.Context, spec SpawnSpec) (int, error) {
	cmd := exec.CommandContext(ctx, spec.Path)
	cmd.Args = spec.Argv
	cmd.Env = spec.Env
	cmd.Dir = spec.Dir
	cmd.Stdin = spec.Stdin
	cmd.Stdout = spec.Stdout
	cmd.Stderr = spec.Stderr

	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, nil
	case errors.As(err, &exitErr):
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		// Terminated by a signal.
		return 130, nil
	default:
		return 126, err
	}
}

// execExternal resolves and runs an external command.  Resolution and spawn
// failures become exit codes (127 not found, 126 otherwise) so that sibling
// stages keep running.
func (v *Vm) execExternal(ctx context.Context, argv []string, e *env.Env, s streams) commandResult {
	path, err := LookPath(v.fsys, e, argv[0])
	switch {
	case errors.Is(err, fs.ErrPermission):
		fmt.Fprintf(s.err, "portsh: %s: permission denied\n", argv[0])
		return errExitCode(126)
	case err != nil:
		fmt.Fprintf(s.err, "portsh: %s: command not found\n", argv[0])
		return errExitCode(127)
	}

	code, err := v.spawn(ctx, SpawnSpec{
		Path:   path,
		Argv:   argv,
		Env:    e.Environ(),
		Dir:    e.Cwd(),
		Stdin:  s.in,
		Stdout: s.out,
		Stderr: s.err,
	})
	if ctx.Err() != nil {
		return errCancelled{}
	}
	if err != nil {
		fmt.Fprintf(s.err, "portsh: %s: %s\n", argv[0], err)
	}
	return errExitCode(code)
}
