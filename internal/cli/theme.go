package cli

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/stipple/pkg/theme"
	"github.com/matzehuels/stipple/pkg/theme/themefile"
)

// loadTheme resolves name to a theme file path or a built-in theme, then
// activates the dotted variation path (empty for the original).
func loadTheme(name, variation string) (*theme.Theme, error) {
	if name == "" {
		name = defaultTheme
	}

	var (
		th  *theme.Theme
		err error
	)
	if isThemeFile(name) {
		th, err = themefile.Load(name)
	} else {
		th, err = themefile.Builtin(name)
	}
	if err != nil {
		return nil, err
	}

	if err := th.UseVariation(theme.ParseVariationPath(variation)); err != nil {
		return nil, err
	}
	return th, nil
}

func isThemeFile(name string) bool {
	if filepath.Ext(name) == ".toml" {
		return true
	}
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}
