package execx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// Cmd describes one external command invocation.
type Cmd struct {
	Path string
	Args []string
	Env  map[string]string // additional env vars merged over the inherited environment
	Dir  string            // working directory; empty means inherit
}

// Handle is a started background process.
type Handle interface {
	Wait() error
	Terminate() error
}

// Launcher runs external commands. The default implementation execs them with
// inherited standard streams; tests substitute fakes that record argv.
type Launcher interface {
	Run(ctx context.Context, c Cmd) error
	Start(ctx context.Context, c Cmd) (Handle, error)
}

// ExecLauncher is the real Launcher backed by os/exec.
type ExecLauncher struct{}

func (ExecLauncher) command(ctx context.Context, c Cmd) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	cmd.Env = os.Environ()
	for k, v := range c.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// Run invokes the command and blocks until it exits.
func (l ExecLauncher) Run(ctx context.Context, c Cmd) error {
	log.Debug().Str("path", c.Path).Strs("args", c.Args).Msg("exec")
	return l.command(ctx, c).Run()
}

// Start launches the command in the background and returns its handle.
func (l ExecLauncher) Start(ctx context.Context, c Cmd) (Handle, error) {
	cmd := l.command(ctx, c)
	log.Debug().Str("path", c.Path).Strs("args", c.Args).Msg("exec (background)")
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &procHandle{cmd: cmd}, nil
}

type procHandle struct {
	cmd *exec.Cmd
}

func (h *procHandle) Wait() error { return h.cmd.Wait() }

// Terminate kills the process. Best-effort: a process that already exited is
// not an error.
func (h *procHandle) Terminate() error {
	if h.cmd.Process == nil {
		return nil
	}
	if err := h.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}
