// Package config holds the CLI's overridable defaults. Precedence, lowest to
// highest: built-in defaults, defaults file, DILLEMA_* environment variables,
// explicit flags (applied by the cli package).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime defaults for the wrapper commands.
// Zero values mean "unspecified" and fall back to the built-in defaults.
type Config struct {
	LogLevel      string `json:"log_level" yaml:"log_level" toml:"log_level" env:"DILLEMA_LOG_LEVEL"`
	Python        string `json:"python" yaml:"python" toml:"python" env:"DILLEMA_PYTHON"`
	DashboardHost string `json:"dashboard_host" yaml:"dashboard_host" toml:"dashboard_host" env:"DILLEMA_DASHBOARD_HOST"`

	WebHost string `json:"web_host" yaml:"web_host" toml:"web_host" env:"DILLEMA_WEB_HOST"`
	WebPort int    `json:"web_port" yaml:"web_port" toml:"web_port" env:"DILLEMA_WEB_PORT"`

	HTTPHost         string  `json:"http_host" yaml:"http_host" toml:"http_host" env:"DILLEMA_HTTP_HOST"`
	HTTPPort         int     `json:"http_port" yaml:"http_port" toml:"http_port" env:"DILLEMA_HTTP_PORT"`
	TensorParallel   int     `json:"tensor_parallel" yaml:"tensor_parallel" toml:"tensor_parallel" env:"DILLEMA_TENSOR_PARALLEL"`
	PipelineParallel int     `json:"pipeline_parallel" yaml:"pipeline_parallel" toml:"pipeline_parallel" env:"DILLEMA_PIPELINE_PARALLEL"`
	GPUMemUtil       float64 `json:"gpu_mem" yaml:"gpu_mem" toml:"gpu_mem" env:"DILLEMA_GPU_MEM"`
	MaxModelLen      int     `json:"max_model_len" yaml:"max_model_len" toml:"max_model_len" env:"DILLEMA_MAX_MODEL_LEN"`
	RuntimeInterface string  `json:"runtime_interface" yaml:"runtime_interface" toml:"runtime_interface" env:"DILLEMA_RUNTIME_IFACE"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		LogLevel: "info",
		WebHost:  "0.0.0.0",
		WebPort:  8000,
	}
}

// Load reads a defaults file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// FromEnv overlays DILLEMA_* environment variables onto cfg, loading a .env
// file first when one exists in the working directory.
func FromEnv(cfg Config) (Config, error) {
	_ = godotenv.Load()
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env config: %w", err)
	}
	return cfg, nil
}

// Merge overlays the set (non-zero) fields of over onto cfg.
func Merge(cfg, over Config) Config {
	if over.LogLevel != "" {
		cfg.LogLevel = over.LogLevel
	}
	if over.Python != "" {
		cfg.Python = over.Python
	}
	if over.DashboardHost != "" {
		cfg.DashboardHost = over.DashboardHost
	}
	if over.WebHost != "" {
		cfg.WebHost = over.WebHost
	}
	if over.WebPort != 0 {
		cfg.WebPort = over.WebPort
	}
	if over.HTTPHost != "" {
		cfg.HTTPHost = over.HTTPHost
	}
	if over.HTTPPort != 0 {
		cfg.HTTPPort = over.HTTPPort
	}
	if over.TensorParallel != 0 {
		cfg.TensorParallel = over.TensorParallel
	}
	if over.PipelineParallel != 0 {
		cfg.PipelineParallel = over.PipelineParallel
	}
	if over.GPUMemUtil != 0 {
		cfg.GPUMemUtil = over.GPUMemUtil
	}
	if over.MaxModelLen != 0 {
		cfg.MaxModelLen = over.MaxModelLen
	}
	if over.RuntimeInterface != "" {
		cfg.RuntimeInterface = over.RuntimeInterface
	}
	return cfg
}
