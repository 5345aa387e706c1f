package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/stipple/pkg/cache"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	want := []string{"render", "dot", "serve", "themes", "demos", "cache", "completion"}
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

// execute runs the root command with an isolated config and cache.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func TestRenderCommandWritesFiles(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out", "arc")
	if err := execute(t, "render", "arc", "--formats", "svg,json", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(out + ".svg")
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("svg output missing root element")
	}
	if _, err := os.Stat(out + ".json"); err != nil {
		t.Errorf("json output missing: %v", err)
	}
}

func TestRenderCommandSingleFileName(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.svg")
	if err := execute(t, "render", "frame", "-o", out, "--theme", "blueprint"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown diagram", []string{"render", "nope", "--no-cache"}},
		{"unknown theme", []string{"render", "arc", "--theme", "nope", "--no-cache"}},
		{"unknown variation", []string{"render", "arc", "--variation", "sepia", "--no-cache"}},
		{"bad format", []string{"render", "arc", "--formats", "gif", "--no-cache"}},
		{"bad background", []string{"render", "arc", "--background", "#zz", "--no-cache"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, tt.args...); err == nil {
				t.Errorf("%v: expected error", tt.args)
			}
		})
	}
}

func TestDotCommandWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "automaton.dot")
	if err := execute(t, "dot", "automaton", "-o", out, "--crumbs"); err != nil {
		t.Fatalf("dot: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "digraph") {
		t.Errorf("dot output = %.40q", data)
	}
}

func TestListingCommands(t *testing.T) {
	for _, args := range [][]string{
		{"themes"},
		{"themes", "show", "classic", "--variation", "dark"},
		{"demos"},
		{"cache", "path"},
	} {
		if err := execute(t, args...); err != nil {
			t.Errorf("%v: %v", args, err)
		}
	}
	if err := execute(t, "themes", "show", "nope"); err == nil {
		t.Error("themes show with unknown theme should fail")
	}
}

func TestNewCacheBackends(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	ctx := context.Background()

	ch, err := c.newCache(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ch.(cache.Clearer); ok {
		t.Error("--no-cache should yield a cache without Clear")
	}

	c.Config.Set(cfgCacheBackend, cacheBackendNone)
	if ch, err = c.newCache(ctx, false); err != nil {
		t.Fatal(err)
	}
	if _, ok := ch.(cache.Clearer); ok {
		t.Error("backend none should yield a cache without Clear")
	}

	c.Config.Set(cfgCacheBackend, cacheBackendFile)
	c.Config.Set(cfgCacheDir, t.TempDir())
	if ch, err = c.newCache(ctx, false); err != nil {
		t.Fatal(err)
	}
	defer ch.Close()
	if _, ok := ch.(cache.Clearer); !ok {
		t.Error("file backend should support Clear")
	}
}
