// Package env holds the mutable shell state: working directory and variables.
// An Env is exclusively owned by the execution scope it was created for;
// isolation between subshells and pipeline siblings comes from Clone, never
// from locking.
package env

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Var is a variable's value together with its export flag.  Only exported
// variables reach the process environment of spawned commands.
type Var struct {
	Value    string
	Exported bool
}

type Env struct {
	fsys afero.Fs
	cwd  string
	vars map[string]Var
}

// New creates an environment rooted at cwd.  The path is normalized but not
// validated; supply an existing directory.
func New(fsys afero.Fs, cwd string) *Env {
	return &Env{
		fsys: fsys,
		cwd:  filepath.Clean(cwd),
		vars: make(map[string]Var, 32),
	}
}

// NewFromEnviron seeds an environment from "KEY=VALUE" pairs, all exported,
// the way a host process environment arrives.
func NewFromEnviron(fsys afero.Fs, cwd string, environ []string) *Env {
	e := New(fsys, cwd)
	for _, kv := range environ {
		key, value, _ := strings.Cut(kv, "=")
		if key == "" {
			continue
		}
		e.Set(key, value, true)
	}
	return e
}

// Get returns the variable's value and whether it is set.  Names are
// case-sensitive.
func (e *Env) Get(name string) (string, bool) {
	v, ok := e.vars[name]
	return v.Value, ok
}

// Set assigns name.  Later duplicates overwrite earlier ones wholesale,
// including the export flag.
func (e *Env) Set(name, value string, exported bool) {
	e.vars[name] = Var{Value: value, Exported: exported}
}

// Assign sets the value while preserving an existing export flag, matching
// plain ‘NAME=value’ statements.
func (e *Env) Assign(name, value string) {
	e.vars[name] = Var{Value: value, Exported: e.vars[name].Exported}
}

// Export marks name as exported, setting value unless it is empty and the
// variable already exists.
func (e *Env) Export(name, value string) {
	v, ok := e.vars[name]
	if value == "" && ok {
		value = v.Value
	}
	e.vars[name] = Var{Value: value, Exported: true}
}

// Shadow sets name as an exported temporary and returns a function that
// restores the variable's previous state, including its absence.
func (e *Env) Shadow(name, value string) func() {
	old, ok := e.vars[name]
	e.vars[name] = Var{Value: value, Exported: true}
	if ok {
		return func() { e.vars[name] = old }
	}
	return func() { delete(e.vars, name) }
}

// Unset removes name.  Removing an unset name is not an error.
func (e *Env) Unset(name string) {
	delete(e.vars, name)
}

// Cwd returns the absolute, normalized working directory.
func (e *Env) Cwd() string {
	return e.cwd
}

// Chdir changes the working directory.  Relative paths resolve against the
// current directory; the target must exist and be a directory.
func (e *Env) Chdir(dir string) error {
	dst := e.Abs(dir)

	info, err := e.fsys.Stat(dst)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", dir)
	}

	e.cwd = dst
	return nil
}

// Abs resolves path against the working directory.
func (e *Env) Abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(e.cwd, path)
}

// Clone returns an independently mutable deep copy sharing only the
// filesystem handle.  Mutations on either side never propagate.
func (e *Env) Clone() *Env {
	vars := make(map[string]Var, len(e.vars))
	for k, v := range e.vars {
		vars[k] = v
	}
	return &Env{fsys: e.fsys, cwd: e.cwd, vars: vars}
}

// Environ renders the exported variables as sorted "KEY=VALUE" pairs for
// spawning external processes.
func (e *Env) Environ() []string {
	out := make([]string, 0, len(e.vars))
	for k, v := range e.vars {
		if v.Exported {
			out = append(out, k+"="+v.Value)
		}
	}
	sort.Strings(out)
	return out
}

// Exported reports the sorted names of all exported variables.
func (e *Env) Exported() []string {
	var names []string
	for k, v := range e.vars {
		if v.Exported {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// Fsys returns the filesystem this environment resolves paths against.
func (e *Env) Fsys() afero.Fs {
	return e.fsys
}
