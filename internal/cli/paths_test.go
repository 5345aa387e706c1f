package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestXDGDirs(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name     string
		env      string
		fn       func() (string, error)
		fallback string
	}{
		{"cache", "XDG_CACHE_HOME", cacheDir, ".cache"},
		{"config", "XDG_CONFIG_HOME", configDir, ".config"},
	}
	for _, tt := range tests {
		t.Run(tt.name+" default", func(t *testing.T) {
			t.Setenv(tt.env, "")
			dir, err := tt.fn()
			if err != nil {
				t.Fatal(err)
			}
			if want := filepath.Join(home, tt.fallback, appName); dir != want {
				t.Errorf("dir = %q, want %q", dir, want)
			}
		})
		t.Run(tt.name+" xdg", func(t *testing.T) {
			custom := t.TempDir()
			t.Setenv(tt.env, custom)
			dir, err := tt.fn()
			if err != nil {
				t.Fatal(err)
			}
			if want := filepath.Join(custom, appName); dir != want {
				t.Errorf("dir = %q, want %q", dir, want)
			}
		})
	}
}
