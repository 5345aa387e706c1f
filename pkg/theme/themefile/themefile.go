// Package themefile loads [theme.Theme] definitions from TOML.
//
// A theme file declares the default style, the named strokes, fills,
// markers, fonts and gradients, the styles that reference them, and a tree
// of variations:
//
//	name = "classic"
//
//	[default.stroke]
//	color = "#000000"
//	width = 1
//
//	[strokes.border]
//	color = "#333333"
//	width = 2
//
//	[fills.node]
//	gradient = "node"
//
//	[gradients.node]
//	kind = "radial"
//	stops = [{ offset = 0, color = "#ffffff" }, { offset = 1, color = "#c8d7e6" }]
//
//	[styles.node]
//	stroke = "border"
//	fill = "node"
//
//	[variations.dark.fills.node]
//	color = "#1e1e28"
//
// Built-in themes are embedded and available through [Builtin].
package themefile

import (
	"embed"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/theme"
)

//go:embed themes/*.toml
var builtinFS embed.FS

type file struct {
	Name       string                   `toml:"name"`
	Default    defaultFile              `toml:"default"`
	Strokes    map[string]strokeFile    `toml:"strokes"`
	Fills      map[string]fillFile      `toml:"fills"`
	Markers    map[string]markerFile    `toml:"markers"`
	Fonts      map[string]fontFile      `toml:"fonts"`
	Gradients  map[string]gradientFile  `toml:"gradients"`
	Styles     map[string]styleFile     `toml:"styles"`
	Variations map[string]variationFile `toml:"variations"`
}

type defaultFile struct {
	Stroke      *strokeFile `toml:"stroke"`
	Fill        *fillFile   `toml:"fill"`
	MarkerStart *markerFile `toml:"marker_start"`
	MarkerEnd   *markerFile `toml:"marker_end"`
	Font        *fontFile   `toml:"font"`
}

type strokeFile struct {
	Color    string    `toml:"color"`
	Gradient string    `toml:"gradient"`
	Width    float64   `toml:"width"`
	Dash     []float64 `toml:"dash"`
}

type fillFile struct {
	Color    string   `toml:"color"`
	Gradient string   `toml:"gradient"`
	Opacity  *float64 `toml:"opacity"`
}

type markerFile struct {
	Shape  string  `toml:"shape"`
	Length float64 `toml:"length"`
	Width  float64 `toml:"width"`
}

type fontFile struct {
	Family string  `toml:"family"`
	Size   float64 `toml:"size"`
	Weight int     `toml:"weight"`
}

type gradientFile struct {
	Kind  string     `toml:"kind"`
	X1    *float64   `toml:"x1"`
	Y1    *float64   `toml:"y1"`
	X2    *float64   `toml:"x2"`
	Y2    *float64   `toml:"y2"`
	CX    *float64   `toml:"cx"`
	CY    *float64   `toml:"cy"`
	R     *float64   `toml:"r"`
	Stops []stopFile `toml:"stops"`
}

type stopFile struct {
	Offset float64 `toml:"offset"`
	Color  string  `toml:"color"`
}

type styleFile struct {
	Stroke      string `toml:"stroke"`
	Fill        string `toml:"fill"`
	MarkerStart string `toml:"marker_start"`
	MarkerEnd   string `toml:"marker_end"`
	Font        string `toml:"font"`
}

type variationFile struct {
	Strokes    map[string]strokeFile    `toml:"strokes"`
	Fills      map[string]fillFile      `toml:"fills"`
	Variations map[string]variationFile `toml:"variations"`
}

// Load reads and parses a theme file.
func Load(filename string) (*theme.Theme, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "read theme %s", filename)
	}
	th, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "load theme %s", filename)
	}
	if th.Name == "" {
		th.Name = strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	}
	return th, nil
}

// Parse builds a theme from TOML source.
func Parse(data []byte) (*theme.Theme, error) {
	var f file
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode theme")
	}
	return f.build()
}

// Builtin returns an embedded theme by name.
func Builtin(name string) (*theme.Theme, error) {
	data, err := builtinFS.ReadFile("themes/" + name + ".toml")
	if err != nil {
		return nil, errors.New(errors.ErrCodeNotFound, "unknown theme %q (available: %s)",
			name, strings.Join(BuiltinNames(), ", "))
	}
	return Parse(data)
}

// BuiltinNames lists the embedded themes.
func BuiltinNames() []string {
	entries, _ := builtinFS.ReadDir("themes")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	sort.Strings(names)
	return names
}

func (f *file) build() (*theme.Theme, error) {
	def, err := f.Default.style()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "default style")
	}
	th := theme.New(def)
	th.Name = f.Name

	strokes, fills, err := convertPaints(f.Strokes, f.Fills)
	if err != nil {
		return nil, err
	}
	th.WithStrokes(strokes).WithFills(fills)

	markers := make(map[string]theme.Marker, len(f.Markers))
	for name, m := range f.Markers {
		mk, err := m.marker()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "marker %q", name)
		}
		markers[name] = mk
	}
	th.WithMarkers(markers)

	fonts := make(map[string]theme.Font, len(f.Fonts))
	for name, fo := range f.Fonts {
		fonts[name] = fo.font()
	}
	th.WithFonts(fonts)

	gradients := make(map[string]theme.Gradient, len(f.Gradients))
	for name, g := range f.Gradients {
		gr, err := g.gradient()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "gradient %q", name)
		}
		gradients[name] = gr
	}
	th.WithGradients(gradients)

	for _, name := range sortedKeys(f.Variations) {
		v, err := f.Variations[name].variation()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "variation %q", name)
		}
		th.WithVariation(name, v)
	}

	specs := make([]theme.StyleSpec, 0, len(f.Styles))
	for _, name := range sortedKeys(f.Styles) {
		s := f.Styles[name]
		specs = append(specs, theme.StyleSpec{
			Name:        name,
			Stroke:      s.Stroke,
			Fill:        s.Fill,
			MarkerStart: s.MarkerStart,
			MarkerEnd:   s.MarkerEnd,
			Font:        s.Font,
		})
	}
	th.WithStyles(specs...)
	return th, nil
}

func (d defaultFile) style() (theme.Style, error) {
	var s theme.Style
	if d.Stroke != nil {
		st, err := d.Stroke.stroke()
		if err != nil {
			return s, err
		}
		s.Stroke = &st
	}
	if d.Fill != nil {
		fi, err := d.Fill.fill()
		if err != nil {
			return s, err
		}
		s.Fill = &fi
	}
	if d.MarkerStart != nil {
		m, err := d.MarkerStart.marker()
		if err != nil {
			return s, err
		}
		s.Markers.Start = &m
	}
	if d.MarkerEnd != nil {
		m, err := d.MarkerEnd.marker()
		if err != nil {
			return s, err
		}
		s.Markers.End = &m
	}
	if d.Font != nil {
		fo := d.Font.font()
		s.Font = &fo
	}
	return s, nil
}

func convertPaints(sf map[string]strokeFile, ff map[string]fillFile) (map[string]theme.Stroke, map[string]theme.Fill, error) {
	strokes := make(map[string]theme.Stroke, len(sf))
	for name, s := range sf {
		st, err := s.stroke()
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "stroke %q", name)
		}
		strokes[name] = st
	}
	fills := make(map[string]theme.Fill, len(ff))
	for name, f := range ff {
		fi, err := f.fill()
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "fill %q", name)
		}
		fills[name] = fi
	}
	return strokes, fills, nil
}

func (v variationFile) variation() (*theme.Variation, error) {
	strokes, fills, err := convertPaints(v.Strokes, v.Fills)
	if err != nil {
		return nil, err
	}
	out := theme.NewVariation()
	for k, s := range strokes {
		out.Stroke(k, s)
	}
	for k, f := range fills {
		out.Fill(k, f)
	}
	for name, child := range v.Variations {
		c, err := child.variation()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTheme, err, "variation %q", name)
		}
		out.Child(name, c)
	}
	return out, nil
}

func paint(color, gradient string) (theme.Paint, error) {
	switch {
	case gradient != "":
		return theme.GradientPaint(gradient), nil
	case color == "" || color == "none":
		return theme.Paint{}, nil
	}
	return theme.Hex(color)
}

func (s strokeFile) stroke() (theme.Stroke, error) {
	p, err := paint(s.Color, s.Gradient)
	if err != nil {
		return theme.Stroke{}, err
	}
	if s.Width < 0 {
		return theme.Stroke{}, errors.New(errors.ErrCodeInvalidTheme, "negative width %g", s.Width)
	}
	return theme.Stroke{Paint: p, Width: s.Width, Dash: s.Dash}, nil
}

func (f fillFile) fill() (theme.Fill, error) {
	p, err := paint(f.Color, f.Gradient)
	if err != nil {
		return theme.Fill{}, err
	}
	opacity := 1.0
	if f.Opacity != nil {
		opacity = *f.Opacity
	}
	return theme.Fill{Paint: p, Opacity: opacity}, nil
}

func (m markerFile) marker() (theme.Marker, error) {
	var shape theme.MarkerShape
	switch m.Shape {
	case "", "arrow":
		shape = theme.MarkerArrow
	case "circle":
		shape = theme.MarkerCircle
	case "bar":
		shape = theme.MarkerBar
	default:
		return theme.Marker{}, errors.New(errors.ErrCodeInvalidTheme, "unknown marker shape %q", m.Shape)
	}
	return theme.Marker{Shape: shape, Length: m.Length, Width: m.Width}, nil
}

func (f fontFile) font() theme.Font {
	return theme.Font{Family: f.Family, Size: f.Size, Weight: f.Weight}
}

func (g gradientFile) gradient() (theme.Gradient, error) {
	var out theme.Gradient
	switch g.Kind {
	case "", "linear":
		out = theme.LinearGradient()
	case "radial":
		out = theme.RadialGradient()
	default:
		return out, errors.New(errors.ErrCodeInvalidTheme, "unknown gradient kind %q", g.Kind)
	}
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&out.X1, g.X1)
	set(&out.Y1, g.Y1)
	set(&out.X2, g.X2)
	set(&out.Y2, g.Y2)
	set(&out.CX, g.CX)
	set(&out.CY, g.CY)
	set(&out.R, g.R)

	for _, s := range g.Stops {
		c, err := theme.ParseColor(s.Color)
		if err != nil {
			return out, err
		}
		out.Stops = append(out.Stops, theme.Stop{Offset: s.Offset, Color: c})
	}
	return out, out.Validate()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
