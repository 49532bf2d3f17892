// Package config loads the optional interpreter profile: a small YAML file
// that seeds the starting environment before a script runs.
package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"github.com/portsh/portsh/env"
)

type Profile struct {
	// Env seeds exported variables, overriding the host environment.
	Env map[string]string `yaml:"env"`

	// Cwd is the starting working directory.
	Cwd string `yaml:"cwd" validate:"omitempty,dir"`

	// Path, when set, replaces the PATH variable.
	Path string `yaml:"path"`
}

var nameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Load reads and validates a profile.  Unknown keys are an error so typos
// don't silently do nothing.
func Load(path string) (*Profile, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	profile := &Profile{}
	if err := yaml.UnmarshalStrict(contents, profile); err != nil {
		return nil, fmt.Errorf("couldn't parse profile %s: %v", path, err)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %v", path, err)
	}
	return profile, nil
}

func (p *Profile) Validate() error {
	if err := validator.New().Struct(p); err != nil {
		return err
	}
	for name := range p.Env {
		if !nameRegexp.MatchString(name) {
			return fmt.Errorf("invalid variable name %q", name)
		}
	}
	return nil
}

// Apply seeds e from the profile.
func (p *Profile) Apply(e *env.Env) error {
	for k, v := range p.Env {
		e.Set(k, v, true)
	}
	if p.Path != "" {
		e.Set("PATH", p.Path, true)
	}
	if p.Cwd != "" {
		return e.Chdir(p.Cwd)
	}
	return nil
}
