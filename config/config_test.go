package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portsh/portsh/env"
)

func writeProfile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p, err := Load(writeProfile(t, `
env:
  FOO: bar
  EMPTY: ""
cwd: `+dir+`
path: /usr/bin:/bin
`))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"FOO": "bar", "EMPTY": ""}, p.Env)
	assert.Equal(t, dir, p.Cwd)
	assert.Equal(t, "/usr/bin:/bin", p.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeProfile(t, "environment:\n  FOO: bar\n"))
	assert.Error(t, err)
}

func TestLoadRejectsBadVariableName(t *testing.T) {
	_, err := Load(writeProfile(t, "env:\n  1BAD: x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid variable name")
}

func TestLoadRejectsMissingCwd(t *testing.T) {
	_, err := Load(writeProfile(t, "cwd: /definitely/not/a/real/dir\n"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/project", 0o755))
	e := env.New(fsys, "/")

	p := &Profile{
		Env:  map[string]string{"FOO": "bar"},
		Cwd:  "/project",
		Path: "/opt/bin",
	}
	require.NoError(t, p.Apply(e))

	assert.Equal(t, []string{"FOO=bar", "PATH=/opt/bin"}, e.Environ())
	assert.Equal(t, "/project", e.Cwd())
}

func TestApplyBadCwd(t *testing.T) {
	e := env.New(afero.NewMemMapFs(), "/")
	assert.Error(t, (&Profile{Cwd: "/missing"}).Apply(e))
}
