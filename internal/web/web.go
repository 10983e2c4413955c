// Package web sequences the external tooling that brings up the bundled web
// app: container orchestration, schema migration, the ASGI server, and the
// frontend build.
package web

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"

	"dillema/internal/execx"
)

// Options configures the web app launch sequence.
type Options struct {
	Host string
	Port int

	SkipDocker   bool // skip `docker compose up -d`
	SkipMigrate  bool // skip `alembic upgrade head`
	SkipNPMBuild bool // skip `npm run build`

	Dir    string // working dir for the tooling; empty = auto-detect
	Python string
}

// detectDir prefers apps/RAGforge under the current directory when present,
// so compose files and migration config are picked up from there.
func detectDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	ragforge := filepath.Join(cwd, "apps", "RAGforge")
	if st, err := os.Stat(ragforge); err == nil && st.IsDir() {
		return ragforge
	}
	return cwd
}

// Run executes the web launch sequence: compose, migrate, start the ASGI
// server in the background, build the frontend, then wait on the server. A
// failed build terminates the server before the error is returned. Each step
// completes before the next begins.
func Run(ctx context.Context, l execx.Launcher, opts Options) error {
	dir := opts.Dir
	if dir == "" {
		dir = detectDir()
	}
	python := opts.Python
	if python == "" {
		python = execx.DefaultPython
	}

	if !opts.SkipDocker {
		log.Info().Str("cwd", dir).Msg("Running: docker compose up -d")
		cmd := execx.Cmd{Path: "sudo", Args: []string{"docker", "compose", "up", "-d"}, Dir: dir}
		if err := l.Run(ctx, cmd); err != nil {
			return fmt.Errorf("docker compose failed: %w", err)
		}
	}

	if !opts.SkipMigrate {
		log.Info().Str("cwd", dir).Msg("Running: alembic upgrade head")
		cmd := execx.Cmd{Path: python, Args: []string{"-m", "alembic", "upgrade", "head"}, Dir: dir}
		if err := l.Run(ctx, cmd); err != nil {
			return fmt.Errorf("alembic upgrade failed: %w", err)
		}
	}

	server, err := l.Start(ctx, execx.Cmd{
		Path: python,
		Args: []string{
			"-m", "uvicorn", "app.main:app",
			"--host", opts.Host,
			"--port", strconv.Itoa(opts.Port),
		},
	})
	if err != nil {
		return fmt.Errorf("start uvicorn: %w", err)
	}

	if !opts.SkipNPMBuild {
		log.Info().Str("cwd", dir).Msg("Running: npm run build")
		cmd := execx.Cmd{Path: "npm", Args: []string{"run", "build"}, Dir: dir}
		if err := l.Run(ctx, cmd); err != nil {
			// Don't leave the server orphaned behind a failed build.
			_ = server.Terminate()
			return fmt.Errorf("npm run build failed: %w", err)
		}
	}

	// Blocks until the server stops.
	return server.Wait()
}
