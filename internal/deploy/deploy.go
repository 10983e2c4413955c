// Package deploy launches an OpenAI-compatible LLM endpoint through Ray Serve.
package deploy

import (
	"context"
	"strings"
)

// Defaults applied when the caller leaves a Request field unset.
const (
	DefaultModelID          = "llm"
	DefaultHTTPHost         = "0.0.0.0"
	DefaultHTTPPort         = 8000
	DefaultTensorParallel   = 1
	DefaultPipelineParallel = 2
	DefaultGPUMemUtil       = 0.9
	DefaultMaxModelLen      = 22000
	DefaultRuntimeInterface = "enp132s0"
)

// Request is a one-shot launch descriptor for a model deployment. It is
// translated into a ServeConfig and discarded.
type Request struct {
	ModelSource      string // required, e.g. Qwen/Qwen2.5-14B-Instruct-AWQ
	ModelID          string // empty means derive from ModelSource
	HTTPHost         string
	HTTPPort         int
	TensorParallel   int
	PipelineParallel int
	GPUMemUtil       float64
	MaxModelLen      int
	RuntimeInterface string // NIC for the NCCL/GLOO collective backends
}

// ServingRuntime hosts a model endpoint described by a ServeConfig and blocks
// until the endpoint stops. The real implementation hands the config to Ray
// Serve; tests substitute fakes.
type ServingRuntime interface {
	Deploy(ctx context.Context, cfg ServeConfig) error
}

// DeriveModelID produces an identifier when the caller omits one: the path
// basename of the source, without the "-Instruct" marker, underscores turned
// into hyphens.
func DeriveModelID(source string) string {
	candidate := source
	if i := strings.LastIndex(source, "/"); i >= 0 {
		candidate = source[i+1:]
	}
	sanitized := strings.ReplaceAll(candidate, "-Instruct", "")
	sanitized = strings.ReplaceAll(sanitized, "_", "-")
	if sanitized == "" {
		return DefaultModelID
	}
	return sanitized
}

// Run resolves the request into a Serve application config and hands it to
// the runtime, blocking until the endpoint is stopped externally.
func Run(ctx context.Context, rt ServingRuntime, req Request) error {
	return rt.Deploy(ctx, BuildServeConfig(req))
}

// BuildServeConfig fills defaults and assembles the declarative Serve config.
func BuildServeConfig(req Request) ServeConfig {
	modelID := req.ModelID
	if modelID == "" {
		modelID = DeriveModelID(req.ModelSource)
	}
	host := req.HTTPHost
	if host == "" {
		host = DefaultHTTPHost
	}
	port := req.HTTPPort
	if port == 0 {
		port = DefaultHTTPPort
	}
	tp := req.TensorParallel
	if tp == 0 {
		tp = DefaultTensorParallel
	}
	pp := req.PipelineParallel
	if pp == 0 {
		pp = DefaultPipelineParallel
	}
	gpuMem := req.GPUMemUtil
	if gpuMem == 0 {
		gpuMem = DefaultGPUMemUtil
	}
	maxLen := req.MaxModelLen
	if maxLen == 0 {
		maxLen = DefaultMaxModelLen
	}
	iface := req.RuntimeInterface
	if iface == "" {
		iface = DefaultRuntimeInterface
	}

	envVars := map[string]string{
		"VLLM_USE_V1":        "1",
		"GLOO_SOCKET_IFNAME": iface,
		"NCCL_SOCKET_IFNAME": iface,
	}

	return ServeConfig{
		HTTPOptions: HTTPOptions{Host: host, Port: port},
		Applications: []Application{{
			Name:        modelID,
			RoutePrefix: "/",
			ImportPath:  "ray.serve.llm:build_openai_app",
			Args: AppArgs{LLMConfigs: []LLMConfig{{
				ModelLoading: ModelLoadingConfig{
					ModelID:     modelID,
					ModelSource: req.ModelSource,
				},
				Deployment: DeploymentConfig{
					Autoscaling: AutoscalingConfig{MinReplicas: 1, MaxReplicas: 1},
				},
				EngineKwargs: EngineKwargs{
					TensorParallelSize:   tp,
					PipelineParallelSize: pp,
					TrustRemoteCode:      true,
					GPUMemoryUtilization: gpuMem,
					MaxModelLen:          maxLen,
				},
				RuntimeEnv: RuntimeEnv{EnvVars: envVars},
			}}},
		}},
	}
}
