// Package cmd wires the interpreter into a command-line tool.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/portsh/portsh/config"
	"github.com/portsh/portsh/diag"
	"github.com/portsh/portsh/env"
	"github.com/portsh/portsh/parser"
	"github.com/portsh/portsh/vm"
)

var (
	command     string
	startDir    string
	envFlags    []string
	profilePath string
	noProfile   bool
	timeout     time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "portsh [script]",
	Short: "A portable shell-script interpreter",
	Long: `portsh runs POSIX-like shell scripts with identical behavior on every
supported operating system.  Scripts come from a file or the -c flag; the
process exit code is the script's exit code.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute runs the CLI.  It is called by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "portsh: %s\n", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&command, "command", "c", "", "execute a command string instead of a file")
	rootCmd.Flags().StringVar(&startDir, "cwd", "", "starting working directory")
	rootCmd.Flags().StringArrayVar(&envFlags, "env", nil, "extra KEY=VALUE variables, repeatable")
	rootCmd.Flags().StringVar(&profilePath, "profile", "", "profile file (default ~/.portsh.yaml)")
	rootCmd.Flags().BoolVar(&noProfile, "no-profile", false, "do not load any profile")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "cancel the script after this duration")
}

func run(_ *cobra.Command, args []string) error {
	src, name, err := scriptSource(args)
	if err != nil {
		return err
	}

	fsys := afero.NewOsFs()
	e, err := buildEnv(fsys)
	if err != nil {
		return err
	}

	prog, err := parser.Parse(src)
	if err != nil {
		var syntaxErr *parser.SyntaxError
		if errors.As(err, &syntaxErr) {
			diag.Fprint(os.Stderr, name, src, syntaxErr)
			os.Exit(2)
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	res := vm.New(e, fsys, os.Stdin, os.Stdout, os.Stderr).Run(ctx, prog)
	if res.Cancelled {
		os.Exit(130)
	}
	os.Exit(res.Code)
	return nil
}

func scriptSource(args []string) (src, name string, err error) {
	switch {
	case command != "" && len(args) > 0:
		return "", "", errors.New("cannot combine -c with a script file")
	case command != "":
		return command, "<command>", nil
	case len(args) == 1:
		contents, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}
		return string(contents), args[0], nil
	default:
		return "", "", errors.New("no script given; pass a file or use -c")
	}
}

func buildEnv(fsys afero.Fs) (*env.Env, error) {
	cwd := startDir
	if cwd == "" {
		var err error
		if cwd, err = os.Getwd(); err != nil {
			return nil, err
		}
	}

	e := env.NewFromEnviron(fsys, cwd, os.Environ())

	if profile, err := loadProfile(); err != nil {
		return nil, err
	} else if profile != nil {
		if err := profile.Apply(e); err != nil {
			return nil, err
		}
	}

	for _, kv := range envFlags {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("malformed --env value %q", kv)
		}
		e.Set(key, value, true)
	}
	return e, nil
}

func loadProfile() (*config.Profile, error) {
	if noProfile {
		return nil, nil
	}

	path := profilePath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil
		}
		path = filepath.Join(home, ".portsh.yaml")
		if _, err := os.Stat(path); err != nil {
			// The default profile is optional.
			return nil, nil
		}
	}
	return config.Load(path)
}
