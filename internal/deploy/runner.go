package deploy

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"dillema/internal/execx"
)

// ServeRunner is the real ServingRuntime: it writes the config to a temp file
// and runs it through the Serve CLI, which blocks until the endpoint stops.
type ServeRunner struct {
	Serve *execx.Tool
}

// NewServeRunner builds a ServeRunner on top of the given launcher.
func NewServeRunner(l execx.Launcher, python string) *ServeRunner {
	return &ServeRunner{Serve: execx.Serve(l, python)}
}

func (r *ServeRunner) Deploy(ctx context.Context, cfg ServeConfig) error {
	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("render serve config: %w", err)
	}

	f, err := os.CreateTemp("", "dillema-serve-*.yaml")
	if err != nil {
		return fmt.Errorf("write serve config: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write serve config: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write serve config: %w", err)
	}

	app := cfg.Applications
	if len(app) > 0 && len(app[0].Args.LLMConfigs) > 0 {
		log.Info().
			Str("model_id", app[0].Args.LLMConfigs[0].ModelLoading.ModelID).
			Str("addr", fmt.Sprintf("%s:%d", cfg.HTTPOptions.Host, cfg.HTTPOptions.Port)).
			Msg("starting serve application")
	}
	// Blocks until the server is stopped externally.
	return r.Serve.Run(ctx, "run", path)
}
