package execx

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// DefaultPython is the interpreter used for module-form fallbacks when the
// dedicated console script is not on PATH.
const DefaultPython = "python3"

// CommandError reports a wrapped external command that exited non-zero,
// carrying the argv that was attempted.
type CommandError struct {
	Tool string
	Args []string
}

func (e *CommandError) Error() string {
	return e.Tool + " command failed: " + strings.Join(e.Args, " ")
}

// Tool invokes one external console script, falling back to running its
// Python module (`python -m <module>`) when the script is absent from PATH
// or fails to start.
type Tool struct {
	Name     string // console script name, e.g. "ray"
	Module   string // module for the interpreter fallback, e.g. "ray"
	Python   string // interpreter for the fallback; empty means DefaultPython
	Launcher Launcher

	// LookPath resolves the console script; defaults to exec.LookPath.
	LookPath func(file string) (string, error)
}

// Ray returns the Tool for the Ray cluster CLI.
func Ray(l Launcher, python string) *Tool {
	return &Tool{Name: "ray", Module: "ray", Python: python, Launcher: l}
}

// Serve returns the Tool for the Ray Serve CLI.
func Serve(l Launcher, python string) *Tool {
	return &Tool{Name: "serve", Module: "ray.serve.scripts", Python: python, Launcher: l}
}

func (t *Tool) python() string {
	if t.Python != "" {
		return t.Python
	}
	return DefaultPython
}

func (t *Tool) lookPath(file string) (string, error) {
	if t.LookPath != nil {
		return t.LookPath(file)
	}
	return exec.LookPath(file)
}

func (t *Tool) moduleArgv(args []string) []string {
	return append([]string{t.python(), "-m", t.Module}, args...)
}

// Run invokes the tool with args and blocks until it exits. When the console
// script is missing, or the direct invocation cannot start at all, the module
// form is attempted before giving up. A non-zero exit from the attempted form
// surfaces as *CommandError.
func (t *Tool) Run(ctx context.Context, args ...string) error {
	argv := t.moduleArgv(args)
	direct := false
	if path, err := t.lookPath(t.Name); err == nil {
		argv = append([]string{path}, args...)
		direct = true
	}

	err := t.Launcher.Run(ctx, Cmd{Path: argv[0], Args: argv[1:]})
	if err == nil {
		return nil
	}
	if direct && notFound(err) {
		argv = t.moduleArgv(args)
		if err := t.Launcher.Run(ctx, Cmd{Path: argv[0], Args: argv[1:]}); err != nil {
			return &CommandError{Tool: t.Name, Args: argv}
		}
		return nil
	}
	return &CommandError{Tool: t.Name, Args: argv}
}

// notFound reports whether err means the executable could not be started at
// all, as opposed to starting and exiting non-zero.
func notFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist)
}
