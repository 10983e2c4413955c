// Package cli wires the dillema command tree: convenient wrappers around the
// Ray CLI and Serve APIs.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"dillema/internal/config"
	"dillema/internal/deploy"
	"dillema/internal/execx"
)

// Deps are the external capabilities the commands act through. Tests inject
// fakes; Execute fills in the real implementations.
type Deps struct {
	Launcher execx.Launcher
	Runtime  deploy.ServingRuntime // nil means build a ServeRunner at run time
}

// NewRootCmd constructs the command tree. Configuration is resolved in the
// persistent pre-run (defaults file, then environment) so every subcommand
// sees the same precedence.
func NewRootCmd(deps Deps) *cobra.Command {
	cfg := config.Default()

	root := &cobra.Command{
		Use:           "dillema",
		Short:         "Convenient wrappers around the Ray CLI and Serve APIs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "defaults file (yaml|json|toml)")
	root.PersistentFlags().String("log-level", "", "log level: debug|info|warn|error (defaults DILLEMA_LOG_LEVEL or info)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		base := config.Default()
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			fileCfg, err := config.Load(path)
			if err != nil {
				return err
			}
			base = config.Merge(base, fileCfg)
		}
		base, err := config.FromEnv(base)
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			base.LogLevel = lvl
		}
		cfg = base
		setupLogger(cfg.LogLevel)
		return nil
	}

	root.AddCommand(
		newStartCmd(&cfg, deps),
		newStatusCmd(&cfg, deps),
		newDeployCmd(&cfg, deps),
	)
	return root
}

// Execute runs the CLI and returns the process exit code. Validation and
// execution failures are reported as `Error: <message>` with exit status 1.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd(Deps{Launcher: execx.ExecLauncher{}})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().Level(lvl)
}
