package themefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/theme"
)

const nodeTheme = `
name = "scenario"

[default.stroke]
color = "#000000"
width = 1

[fills.node]
gradient = "G1"

[gradients.G1]
stops = [{ offset = 0, color = "#ff0000" }, { offset = 1, color = "#0000ff" }]

[gradients.G2]
kind = "radial"
stops = [{ offset = 0, color = "#000000" }, { offset = 1, color = "#ffffff" }]

[styles.node]
fill = "node"

[variations.dark.fills.node]
gradient = "G2"
`

func TestParseVariationCascade(t *testing.T) {
	th, err := Parse([]byte(nodeTheme))
	require.NoError(t, err)
	assert.Equal(t, "scenario", th.Name)

	node := th.Style(th.MustStyleID("node"))
	require.NotNil(t, node.Fill)
	assert.Equal(t, "G1", node.Fill.Paint.Gradient)
	assert.Equal(t, 1.0, node.Fill.Opacity)

	require.NoError(t, th.UseVariation([]string{"dark"}))
	assert.Equal(t, "G2", node.Fill.Paint.Gradient)

	g, ok := th.Gradient("G2")
	require.True(t, ok)
	assert.Equal(t, theme.Radial, g.Kind)
	assert.Equal(t, 0.5, g.R)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{"syntax", "name = ", errors.ErrCodeInvalidFormat},
		{"bad color", "[strokes.a]\ncolor = \"#zzzzzz\"", errors.ErrCodeInvalidTheme},
		{"bad marker", "[markers.a]\nshape = \"star\"", errors.ErrCodeInvalidTheme},
		{"empty gradient", "[gradients.a]\nkind = \"linear\"", errors.ErrCodeInvalidTheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestLoadNamesThemeAfterFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "mine.toml")
	require.NoError(t, os.WriteFile(p, []byte("[styles.x]\n"), 0o644))

	th, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "mine", th.Name)

	_, err = Load(filepath.Join(dir, "absent.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestBuiltinThemes(t *testing.T) {
	names := BuiltinNames()
	assert.Contains(t, names, "classic")
	assert.Contains(t, names, "blueprint")

	for _, name := range names {
		th, err := Builtin(name)
		require.NoError(t, err, name)
		for _, style := range []string{"border", "node", "edge", "arc", "pin", "label"} {
			_, ok := th.StyleID(style)
			assert.True(t, ok, "%s: style %s", name, style)
		}
	}

	classic, err := Builtin("classic")
	require.NoError(t, err)
	assert.Equal(t, []string{"dark", "dark.contrast", "print"}, classic.Variations())
	require.NoError(t, classic.UseVariation([]string{"dark", "contrast"}))
	assert.Equal(t, 3.0, classic.Style(classic.MustStyleID("edge")).StrokeWidth())

	_, err = Builtin("nope")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}
