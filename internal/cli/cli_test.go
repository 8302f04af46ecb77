package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	derrors "github.com/matzehuels/designpanel/pkg/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"run", "replay", "serve", "diagram", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag missing")
	}
}

func TestDiagramCommand(t *testing.T) {
	out, err := execute(t, "diagram")
	if err != nil {
		t.Fatalf("diagram error = %v", err)
	}
	if !strings.HasPrefix(out, "digraph positioner {") {
		t.Errorf("diagram output:\n%s", out)
	}
}

func TestDiagramCommandOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "states.dot")
	if _, err := execute(t, "diagram", "--merge", "-o", path); err != nil {
		t.Fatalf("diagram error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("->")) {
		t.Errorf("file has no edges:\n%s", data)
	}
}

func TestDiagramCommandUnsupportedFormat(t *testing.T) {
	_, err := execute(t, "diagram", "--format", "png")
	if !derrors.Is(err, derrors.ErrCodeUnsupported) {
		t.Errorf("error = %v, want UNSUPPORTED", err)
	}
}

func TestReplayCommand(t *testing.T) {
	out, err := execute(t, "replay", "../../examples/scripts/click-away.toml")
	if err != nil {
		t.Fatalf("replay error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "click away") {
		t.Errorf("replay output:\n%s", out)
	}
}

func TestReplayCommandNeedsArgs(t *testing.T) {
	if _, err := execute(t, "replay"); err == nil {
		t.Error("replay without scripts should fail")
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error = %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion does not mention the program")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	cfg, path, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if path != "" || cfg.Panel.Width != 500 {
		t.Errorf("loadConfig() = %+v, %q; want defaults", cfg.Panel, path)
	}

	c.configPath = "../../examples/panel.toml"
	cfg, path, err = c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig(%s) error = %v", c.configPath, err)
	}
	if path != c.configPath || cfg.Panel.Width != 60 || cfg.Block.Width != 12 {
		t.Errorf("loadConfig() = %+v, %q", cfg, path)
	}
}

func TestLoadConfigLowersLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	c.configPath = path
	if _, _, err := c.loadConfig(); err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}
