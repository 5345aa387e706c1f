package sink

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/render"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

const (
	defaultFontSize   = 12.0
	defaultFontFamily = "sans-serif"
	spanScale         = 0.7
	markerAspect      = 0.75
	barThickness      = 2.0
)

// num formats v with at most two decimals and no trailing zeros. Negative
// zero prints as "0".
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// svgID maps a theme name onto the characters allowed in an XML id.
func svgID(prefix, name string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func markerWidth(m *theme.Marker) float64 {
	if m.Width > 0 {
		return m.Width
	}
	return m.Length * markerAspect
}

func fontOf(st *theme.Style) theme.Font {
	f := theme.Font{Family: defaultFontFamily, Size: defaultFontSize, Weight: 400}
	if st != nil && st.Font != nil {
		if st.Font.Family != "" {
			f.Family = st.Font.Family
		}
		if st.Font.Size > 0 {
			f.Size = st.Font.Size
		}
		if st.Font.Weight > 0 {
			f.Weight = st.Font.Weight
		}
	}
	return f
}

// textPaint is the fill of a text crumb: the style's fill, else its stroke
// paint, else black.
func textPaint(st *theme.Style) (theme.Paint, float64) {
	if st != nil && st.Fill != nil && st.Fill.Paint.Kind != theme.PaintNone {
		return st.Fill.Paint, st.Fill.Opacity
	}
	if st != nil && st.Stroke != nil && st.Stroke.Paint.Kind != theme.PaintNone {
		return st.Stroke.Paint, 1
	}
	return theme.MustHex("#000000"), 1
}

func errGradient(name string) error {
	return errors.New(errors.ErrCodeGradientMissing, "gradient %q is not defined", name)
}

// isOpen reports whether c is drawn as an outline only. Open crumbs carry
// markers and are never filled.
func isOpen(c scene.Crumb) bool {
	switch v := c.(type) {
	case scene.Line, scene.Arc:
		return true
	case scene.Path:
		return !v.Closed()
	}
	return false
}

// resolveGradients looks up every gradient the draw list paints with, plus
// extra, in first-use order.
func resolveGradients(dl render.DrawList, extra ...theme.Paint) ([]string, map[string]theme.Gradient, error) {
	var (
		names []string
		defs  = map[string]theme.Gradient{}
	)
	add := func(p theme.Paint) error {
		if p.Kind != theme.PaintGradient {
			return nil
		}
		if _, ok := defs[p.Gradient]; ok {
			return nil
		}
		if dl.Theme == nil {
			return errGradient(p.Gradient)
		}
		g, err := dl.Theme.ResolveGradient(p.Gradient)
		if err != nil {
			return err
		}
		names = append(names, p.Gradient)
		defs[p.Gradient] = g
		return nil
	}
	for _, p := range extra {
		if err := add(p); err != nil {
			return nil, nil, err
		}
	}
	for _, it := range dl.Items {
		st := it.Style
		if st == nil {
			continue
		}
		if st.Stroke != nil {
			if err := add(st.Stroke.Paint); err != nil {
				return nil, nil, err
			}
		}
		if st.Fill != nil {
			if err := add(st.Fill.Paint); err != nil {
				return nil, nil, err
			}
		}
	}
	return names, defs, nil
}

// ends returns the first and last points of an open crumb together with
// the direction of travel at each.
func ends(c scene.Crumb) (start, startDir, end, endDir geom.Point, ok bool) {
	switch v := c.(type) {
	case scene.Line:
		d, ok := v.To.Sub(v.From).Unit()
		return v.From, d, v.To, d, ok
	case scene.Arc:
		a0, a1 := v.Start, v.Start+v.Sweep
		s := geom.Sign(v.Sweep)
		start = geom.Polar(v.Center, v.Radius, a0)
		end = geom.Polar(v.Center, v.Radius, a1)
		startDir = geom.Pt(-math.Sin(a0), math.Cos(a0)).Mul(s)
		endDir = geom.Pt(-math.Sin(a1), math.Cos(a1)).Mul(s)
		return start, startDir, end, endDir, s != 0
	case scene.Path:
		var pts []geom.Point
		for _, seg := range v.Segs {
			pts = append(pts, seg.Points()...)
		}
		if len(pts) < 2 {
			return
		}
		start, end = pts[0], pts[len(pts)-1]
		var okS, okE bool
		for _, p := range pts[1:] {
			if startDir, okS = p.Sub(start).Unit(); okS {
				break
			}
		}
		for i := len(pts) - 2; i >= 0; i-- {
			if endDir, okE = end.Sub(pts[i]).Unit(); okE {
				break
			}
		}
		return start, startDir, end, endDir, okS && okE
	}
	return
}
