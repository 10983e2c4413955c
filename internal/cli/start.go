package cli

import (
	"github.com/spf13/cobra"

	"dillema/internal/cluster"
	"dillema/internal/config"
	"dillema/internal/execx"
	"dillema/internal/web"
)

func newStartCmd(cfg *config.Config, deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a Ray head or worker node, or run the web app",
		RunE: func(cmd *cobra.Command, args []string) error {
			// --web takes over the whole command: run the bundled web app
			// instead of touching Ray.
			if useWeb, _ := cmd.Flags().GetBool("web"); useWeb {
				opts := web.Options{Host: cfg.WebHost, Port: cfg.WebPort, Python: cfg.Python}
				if cmd.Flags().Changed("web-host") {
					opts.Host, _ = cmd.Flags().GetString("web-host")
				}
				if cmd.Flags().Changed("web-port") {
					opts.Port, _ = cmd.Flags().GetInt("web-port")
				}
				opts.SkipDocker, _ = cmd.Flags().GetBool("no-docker")
				opts.SkipMigrate, _ = cmd.Flags().GetBool("no-migrate")
				opts.SkipNPMBuild, _ = cmd.Flags().GetBool("no-npm-build")
				return web.Run(cmd.Context(), deps.Launcher, opts)
			}

			opts := cluster.StartOptions{DashboardHost: cfg.DashboardHost}
			opts.Head, _ = cmd.Flags().GetBool("head")
			opts.Worker, _ = cmd.Flags().GetBool("worker")
			opts.Address, _ = cmd.Flags().GetString("address")
			if cmd.Flags().Changed("dashboard-host") || opts.DashboardHost == "" {
				opts.DashboardHost, _ = cmd.Flags().GetString("dashboard-host")
			}
			return cluster.Start(cmd.Context(), execx.Ray(deps.Launcher, cfg.Python), opts)
		},
	}

	cmd.Flags().Bool("head", false, "start the Ray head node with dashboard enabled")
	cmd.Flags().Bool("worker", false, "start a Ray worker node that joins an existing cluster")
	cmd.Flags().String("address", "", "Ray head address the worker should join (required for --worker)")
	cmd.Flags().String("dashboard-host", cluster.DefaultDashboardHost, "host interface for the Ray dashboard when starting the head node")
	cmd.Flags().Bool("web", false, "run the bundled FastAPI web app instead of starting Ray")
	cmd.Flags().String("web-host", "0.0.0.0", "host for the web server if --web is used")
	cmd.Flags().Int("web-port", 8000, "port for the web server if --web is used")
	cmd.Flags().Bool("no-docker", false, "skip `docker compose up -d` before starting web")
	cmd.Flags().Bool("no-migrate", false, "skip `alembic upgrade head` before starting web")
	cmd.Flags().Bool("no-npm-build", false, "skip `npm run build` after starting web")
	cmd.MarkFlagsMutuallyExclusive("head", "worker")

	return cmd
}
