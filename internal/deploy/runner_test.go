package deploy

import (
	"context"
	"os"
	"strings"
	"testing"

	"dillema/internal/execx"
)

type captureLauncher struct {
	cmds     []execx.Cmd
	seenYAML string // config file contents read while the file still exists
}

func (l *captureLauncher) Run(ctx context.Context, c execx.Cmd) error {
	l.cmds = append(l.cmds, c)
	if len(c.Args) >= 2 && c.Args[len(c.Args)-2] == "run" {
		b, err := os.ReadFile(c.Args[len(c.Args)-1])
		if err != nil {
			return err
		}
		l.seenYAML = string(b)
	}
	return nil
}

func (l *captureLauncher) Start(ctx context.Context, c execx.Cmd) (execx.Handle, error) {
	l.cmds = append(l.cmds, c)
	return nil, nil
}

func TestServeRunnerDeploy(t *testing.T) {
	l := &captureLauncher{}
	r := NewServeRunner(l, "")
	r.Serve.LookPath = func(string) (string, error) { return "/usr/bin/serve", nil }

	cfg := BuildServeConfig(Request{ModelSource: "Qwen/Qwen2.5-14B-Instruct-AWQ"})
	if err := r.Deploy(context.Background(), cfg); err != nil {
		t.Fatalf("deploy: %v", err)
	}

	if len(l.cmds) != 1 {
		t.Fatalf("expected one serve invocation, got %d", len(l.cmds))
	}
	c := l.cmds[0]
	if c.Path != "/usr/bin/serve" || len(c.Args) != 2 || c.Args[0] != "run" {
		t.Fatalf("unexpected argv: %s %v", c.Path, c.Args)
	}
	if !strings.Contains(l.seenYAML, "model_id: Qwen2.5-14B-AWQ") {
		t.Fatalf("config file missing model id:\n%s", l.seenYAML)
	}
	if !strings.Contains(l.seenYAML, "import_path: ray.serve.llm:build_openai_app") {
		t.Fatalf("config file missing import path:\n%s", l.seenYAML)
	}

	// The temp config is cleaned up once the blocking run returns.
	if _, err := os.Stat(c.Args[1]); !os.IsNotExist(err) {
		t.Fatalf("temp config %s should be removed, stat err=%v", c.Args[1], err)
	}
}
