package cli

import (
	"github.com/spf13/cobra"

	"dillema/internal/config"
	"dillema/internal/deploy"
)

func newDeployCmd(cfg *config.Config, deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Launch an LLM deployment with Ray Serve",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := deploy.Request{
				HTTPHost:         cfg.HTTPHost,
				HTTPPort:         cfg.HTTPPort,
				TensorParallel:   cfg.TensorParallel,
				PipelineParallel: cfg.PipelineParallel,
				GPUMemUtil:       cfg.GPUMemUtil,
				MaxModelLen:      cfg.MaxModelLen,
				RuntimeInterface: cfg.RuntimeInterface,
			}
			req.ModelSource, _ = cmd.Flags().GetString("model")
			req.ModelID, _ = cmd.Flags().GetString("model-id")
			if cmd.Flags().Changed("http-host") {
				req.HTTPHost, _ = cmd.Flags().GetString("http-host")
			}
			if cmd.Flags().Changed("http-port") {
				req.HTTPPort, _ = cmd.Flags().GetInt("http-port")
			}
			if cmd.Flags().Changed("tensor-parallel") {
				req.TensorParallel, _ = cmd.Flags().GetInt("tensor-parallel")
			}
			if cmd.Flags().Changed("pipeline-parallel") {
				req.PipelineParallel, _ = cmd.Flags().GetInt("pipeline-parallel")
			}
			if cmd.Flags().Changed("gpu-mem") {
				req.GPUMemUtil, _ = cmd.Flags().GetFloat64("gpu-mem")
			}
			if cmd.Flags().Changed("max-model-len") {
				req.MaxModelLen, _ = cmd.Flags().GetInt("max-model-len")
			}
			if cmd.Flags().Changed("runtime-interface") {
				req.RuntimeInterface, _ = cmd.Flags().GetString("runtime-interface")
			}

			rt := deps.Runtime
			if rt == nil {
				rt = deploy.NewServeRunner(deps.Launcher, cfg.Python)
			}
			return deploy.Run(cmd.Context(), rt, req)
		},
	}

	cmd.Flags().String("model", "", "model source identifier, e.g. Qwen/Qwen2.5-14B-Instruct-AWQ")
	cmd.Flags().String("model-id", "", "override the model identifier reported to Ray Serve")
	cmd.Flags().String("http-host", deploy.DefaultHTTPHost, "HTTP host for Ray Serve")
	cmd.Flags().Int("http-port", deploy.DefaultHTTPPort, "HTTP port for Ray Serve")
	cmd.Flags().Int("tensor-parallel", deploy.DefaultTensorParallel, "tensor parallelism for the LLM engine")
	cmd.Flags().Int("pipeline-parallel", deploy.DefaultPipelineParallel, "pipeline parallelism for the LLM engine")
	cmd.Flags().Float64("gpu-mem", deploy.DefaultGPUMemUtil, "GPU memory utilization ratio (0-1)")
	cmd.Flags().Int("max-model-len", deploy.DefaultMaxModelLen, "maximum model sequence length")
	cmd.Flags().String("runtime-interface", "", "network interface to expose for collective backends (sets NCCL/GLOO socket IFNAME)")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}
