package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	v := newConfig()
	if got := v.GetString(cfgTheme); got != defaultTheme {
		t.Errorf("theme = %q, want %q", got, defaultTheme)
	}
	if got := v.GetFloat64(cfgScale); got != 2 {
		t.Errorf("scale = %v, want 2", got)
	}
	if got := v.GetString(cfgCacheBackend); got != cacheBackendFile {
		t.Errorf("cache.backend = %q, want %q", got, cacheBackendFile)
	}
	if got := v.GetString(cfgServeAddr); got != "localhost:8340" {
		t.Errorf("serve.addr = %q", got)
	}
}

func TestNewConfigEnv(t *testing.T) {
	t.Setenv("STIPPLE_REDIS_ADDR", "cache.internal:6380")
	t.Setenv("STIPPLE_THEME", "blueprint")

	v := newConfig()
	if got := v.GetString(cfgRedisAddr); got != "cache.internal:6380" {
		t.Errorf("redis.addr = %q", got)
	}
	if got := v.GetString(cfgTheme); got != "blueprint" {
		t.Errorf("theme = %q", got)
	}
}

func TestLoadConfigExplicitFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "stipple.toml")
	data := `theme = "blueprint"
formats = "svg,png"

[cache]
backend = "none"
`
	if err := os.WriteFile(file, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := loadConfig(file)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if got := v.GetString(cfgTheme); got != "blueprint" {
		t.Errorf("theme = %q", got)
	}
	if got := v.GetString(cfgFormats); got != "svg,png" {
		t.Errorf("formats = %q", got)
	}
	if got := v.GetString(cfgCacheBackend); got != cacheBackendNone {
		t.Errorf("cache.backend = %q", got)
	}
	if got := v.GetFloat64(cfgScale); got != 2 {
		t.Errorf("unset scale = %v, want default 2", got)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("loadConfig() with a missing explicit file should fail")
	}
}

func TestLoadConfigOptionalDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	v, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if got := v.GetString(cfgTheme); got != defaultTheme {
		t.Errorf("theme = %q", got)
	}
}

func TestLoadConfigDefaultFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`variation = "dark"`), 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if got := v.GetString(cfgVariation); got != "dark" {
		t.Errorf("variation = %q", got)
	}
}

func TestCLICacheDirOverride(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.Config.Set(cfgCacheDir, "/srv/stipple-cache")
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/srv/stipple-cache" {
		t.Errorf("cacheDir() = %q", dir)
	}
}
