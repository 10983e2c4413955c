package cli

import (
	"github.com/spf13/cobra"

	"dillema/internal/cluster"
	"dillema/internal/config"
	"dillema/internal/execx"
)

func newStatusCmd(cfg *config.Config, deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current Ray cluster status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cluster.Status(cmd.Context(), execx.Ray(deps.Launcher, cfg.Python))
		},
	}
}
