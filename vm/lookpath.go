package vm

import (
	"errors"
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"

	"github.com/portsh/portsh/env"
)

// ErrNotFound reports that a command name resolved to no executable.
var ErrNotFound = errors.New("command not found")

// LookPath resolves name to an executable path.  Names containing a path
// separator resolve against the working directory; bare names are searched
// through the PATH directories in order.  A match that exists but is not
// executable yields fs.ErrPermission so the caller can report 126 instead of
// 127.
func LookPath(fsys afero.Fs, e *env.Env, name string) (string, error) {
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		path := e.Abs(name)
		if err := executable(fsys, path); err != nil {
			return "", err
		}
		return path, nil
	}

	pathVar, _ := e.Get("PATH")
	var permErr error
	for _, dir := range filepath.SplitList(pathVar) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(e.Abs(dir), name)
		switch err := executable(fsys, candidate); {
		case err == nil:
			return candidate, nil
		case errors.Is(err, fs.ErrPermission) && permErr == nil:
			permErr = err
		}
	}

	if permErr != nil {
		return "", permErr
	}
	return "", ErrNotFound
}

func executable(fsys afero.Fs, path string) error {
	info, err := fsys.Stat(path)
	if err != nil || info.IsDir() {
		return ErrNotFound
	}
	if runtime.GOOS != "windows" && info.Mode()&0o111 == 0 {
		return fs.ErrPermission
	}
	return nil
}
