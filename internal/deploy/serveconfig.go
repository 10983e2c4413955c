package deploy

import "gopkg.in/yaml.v3"

// ServeConfig mirrors the Ray Serve declarative config file schema, the same
// document `serve run`/`serve deploy` accept. Field names follow the Serve
// schema, hence the snake_case tags.
type ServeConfig struct {
	HTTPOptions  HTTPOptions   `yaml:"http_options"`
	Applications []Application `yaml:"applications"`
}

type HTTPOptions struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type Application struct {
	Name        string  `yaml:"name"`
	RoutePrefix string  `yaml:"route_prefix"`
	ImportPath  string  `yaml:"import_path"`
	Args        AppArgs `yaml:"args"`
}

type AppArgs struct {
	LLMConfigs []LLMConfig `yaml:"llm_configs"`
}

type LLMConfig struct {
	ModelLoading ModelLoadingConfig `yaml:"model_loading_config"`
	Deployment   DeploymentConfig   `yaml:"deployment_config"`
	EngineKwargs EngineKwargs       `yaml:"engine_kwargs"`
	RuntimeEnv   RuntimeEnv         `yaml:"runtime_env"`
}

type ModelLoadingConfig struct {
	ModelID     string `yaml:"model_id"`
	ModelSource string `yaml:"model_source"`
}

type DeploymentConfig struct {
	Autoscaling AutoscalingConfig `yaml:"autoscaling_config"`
}

type AutoscalingConfig struct {
	MinReplicas int `yaml:"min_replicas"`
	MaxReplicas int `yaml:"max_replicas"`
}

type EngineKwargs struct {
	TensorParallelSize   int     `yaml:"tensor_parallel_size"`
	PipelineParallelSize int     `yaml:"pipeline_parallel_size"`
	TrustRemoteCode      bool    `yaml:"trust_remote_code"`
	GPUMemoryUtilization float64 `yaml:"gpu_memory_utilization"`
	MaxModelLen          int     `yaml:"max_model_len"`
}

type RuntimeEnv struct {
	EnvVars map[string]string `yaml:"env_vars"`
}

// Marshal renders the config as YAML for the Serve CLI.
func (c ServeConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
