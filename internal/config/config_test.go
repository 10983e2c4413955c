package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "dashboard_host: 10.0.0.1\nweb_port: 9000\ngpu_mem: 0.8\nruntime_interface: eth0\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DashboardHost != "10.0.0.1" || cfg.WebPort != 9000 || cfg.GPUMemUtil != 0.8 || cfg.RuntimeInterface != "eth0" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"python":"python3.12","http_port":8080,"max_model_len":4096}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Python != "python3.12" || cfg.HTTPPort != 8080 || cfg.MaxModelLen != 4096 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "log_level=\"debug\"\ntensor_parallel=4\npipeline_parallel=1\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.TensorParallel != 4 || cfg.PipelineParallel != 1 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestMergeKeepsBaseWhenUnset(t *testing.T) {
	base := Default()
	merged := Merge(base, Config{WebPort: 9000, DashboardHost: "10.0.0.1"})
	if merged.WebPort != 9000 || merged.DashboardHost != "10.0.0.1" {
		t.Fatalf("overlay not applied: %+v", merged)
	}
	if merged.LogLevel != "info" || merged.WebHost != "0.0.0.0" {
		t.Fatalf("base defaults lost: %+v", merged)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DILLEMA_DASHBOARD_HOST", "192.168.1.2")
	t.Setenv("DILLEMA_WEB_PORT", "7000")
	t.Setenv("DILLEMA_GPU_MEM", "0.75")
	cfg, err := FromEnv(Default())
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.DashboardHost != "192.168.1.2" || cfg.WebPort != 7000 || cfg.GPUMemUtil != 0.75 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.WebHost != "0.0.0.0" {
		t.Fatalf("untouched fields must keep defaults: %+v", cfg)
	}
}
