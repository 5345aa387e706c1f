package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, name, want string
	}{
		{"", "arc", "arc"},
		{"out/arc.svg", "arc", "out/arc"},
		{"out/arc.png", "arc", "out/arc"},
		{"out/arc.dot", "arc", "out/arc"},
		{"out/arc", "arc", "out/arc"},
		{"out/arc.v2", "arc", "out/arc.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.name); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.name, got, tt.want)
		}
	}
}

func TestWriteOutputCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.svg")
	if err := writeOutput(path, []byte("<svg/>")); err != nil {
		t.Fatalf("writeOutput() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("wrote %q", data)
	}
}

func TestCompleteDiagrams(t *testing.T) {
	names, _ := completeDiagrams(nil, nil, "")
	if len(names) == 0 {
		t.Fatal("completeDiagrams() returned nothing")
	}
	if more, _ := completeDiagrams(nil, []string{"arc"}, ""); more != nil {
		t.Errorf("completeDiagrams() after first arg = %v, want nil", more)
	}
}

func TestCompleteThemes(t *testing.T) {
	names, dir := completeThemes(nil, nil, "cl")
	if len(names) != 1 || names[0] != "classic" {
		t.Errorf("completeThemes(%q) = %v, want [classic]", "cl", names)
	}
	if dir != cobra.ShellCompDirectiveDefault {
		t.Errorf("directive = %v, want file completion kept", dir)
	}
	if all, _ := completeThemes(nil, nil, ""); len(all) < 2 {
		t.Errorf("completeThemes(\"\") = %v, want every built-in", all)
	}
}

func TestIsThemeFile(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "mine")
	if err := os.WriteFile(existing, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		want bool
	}{
		{"classic", false},
		{"themes/custom.toml", true},
		{existing, true},
	}
	for _, tt := range tests {
		if got := isThemeFile(tt.name); got != tt.want {
			t.Errorf("isThemeFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLoadTheme(t *testing.T) {
	th, err := loadTheme("classic", "dark.contrast")
	if err != nil {
		t.Fatalf("loadTheme() error: %v", err)
	}
	if got := th.Active(); len(got) != 2 || got[1] != "contrast" {
		t.Errorf("Active() = %v", got)
	}
	if _, err := loadTheme("classic", "sepia"); err == nil {
		t.Error("loadTheme() with unknown variation should fail")
	}
	if _, err := loadTheme("nope", ""); err == nil {
		t.Error("loadTheme() with unknown theme should fail")
	}
}
