package theme

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/stipple/pkg/errors"
)

// PaintKind tags the active member of a Paint.
type PaintKind uint8

const (
	// PaintNone paints nothing.
	PaintNone PaintKind = iota
	// PaintColor paints a solid color.
	PaintColor
	// PaintGradient paints the named gradient from the theme's gradient table.
	PaintGradient
)

// Paint is a tagged paint value: either a solid color or a reference to a
// named gradient. Gradient names are resolved by render backends, so a
// dangling name only fails at render time.
type Paint struct {
	Kind     PaintKind
	Color    color.NRGBA
	Gradient string
}

// Solid returns a solid-color paint.
func Solid(c color.NRGBA) Paint { return Paint{Kind: PaintColor, Color: c} }

// GradientPaint returns a paint referencing the named gradient.
func GradientPaint(name string) Paint { return Paint{Kind: PaintGradient, Gradient: name} }

// Hex parses a hex color ("#rgb", "#rrggbb" or "#rrggbbaa") into a solid paint.
func Hex(s string) (Paint, error) {
	c, err := ParseColor(s)
	if err != nil {
		return Paint{}, err
	}
	return Solid(c), nil
}

// MustHex is like Hex but panics on malformed input. Intended for literals.
func MustHex(s string) Paint {
	p, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseColor parses a hex color string. An 8-digit form carries alpha in the
// last byte.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	alpha := uint8(0xff)
	if len(s) == 9 && strings.HasPrefix(s, "#") {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "invalid alpha in color %q", s)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	if len(s) != 4 && len(s) != 7 {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidTheme, "invalid color %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// HexString formats c as "#rrggbb", ignoring alpha.
func HexString(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Opacity returns the alpha channel of c in [0, 1].
func Opacity(c color.NRGBA) float64 { return float64(c.A) / 255 }

// String renders p the way an SVG attribute expects it.
func (p Paint) String() string {
	switch p.Kind {
	case PaintColor:
		return HexString(p.Color)
	case PaintGradient:
		return "url(#" + p.Gradient + ")"
	}
	return "none"
}
