package scene

import (
	"math"

	"github.com/matzehuels/stipple/pkg/geom"
)

// CrumbKind identifies the concrete type of a Crumb.
type CrumbKind uint8

const (
	KindLine CrumbKind = iota
	KindRect
	KindRoundRect
	KindCircle
	KindArc
	KindPath
	KindPin
	KindText
)

var kindNames = [...]string{"line", "rect", "roundrect", "circle", "arc", "path", "pin", "text"}

func (k CrumbKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Crumb is a single geometric drawing primitive. The set of implementations
// is closed: Line, Rect, RoundRect, Circle, Arc, Path, Pin and Text.
//
// Transformed returns the crumb mapped through a similarity transform.
// Stroke widths are not part of a crumb and are never scaled.
type Crumb interface {
	Kind() CrumbKind
	Bounds() geom.Rect
	Transformed(tf geom.Transform) Crumb
	crumb()
}

// Line is a straight segment.
type Line struct {
	From, To geom.Point
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min  geom.Point
	W, H float64
}

// RoundRect is a rectangle with rounded corners.
type RoundRect struct {
	Min    geom.Point
	W, H   float64
	Radius float64
}

// Circle is a full circle.
type Circle struct {
	Center geom.Point
	Radius float64
}

// Arc is a circular arc. Sweep is signed; a positive sweep runs in the
// direction of increasing angle.
type Arc struct {
	Center geom.Point
	Radius float64
	Start  float64
	Sweep  float64
}

// Pin is a small circular attachment point offset from an anchor.
type Pin struct {
	Center geom.Point
	Radius float64
}

// Align is the horizontal text alignment relative to Text.At.
type Align uint8

const (
	AlignMiddle Align = iota
	AlignStart
	AlignEnd
)

func (a Align) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignEnd:
		return "end"
	}
	return "middle"
}

// Text is a single-line label anchored at At. Upper and Lower are optional
// smaller spans drawn above and below the main line. Scale multiplies the
// style's font size; zero means one.
type Text struct {
	At    geom.Point
	Text  string
	Upper string
	Lower string
	Align Align
	Scale float64
}

// FontScale returns Scale, treating zero as one.
func (t Text) FontScale() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

func (Line) crumb()      {}
func (Rect) crumb()      {}
func (RoundRect) crumb() {}
func (Circle) crumb()    {}
func (Arc) crumb()       {}
func (Path) crumb()      {}
func (Pin) crumb()       {}
func (Text) crumb()      {}

func (Line) Kind() CrumbKind      { return KindLine }
func (Rect) Kind() CrumbKind      { return KindRect }
func (RoundRect) Kind() CrumbKind { return KindRoundRect }
func (Circle) Kind() CrumbKind    { return KindCircle }
func (Arc) Kind() CrumbKind       { return KindArc }
func (Path) Kind() CrumbKind      { return KindPath }
func (Pin) Kind() CrumbKind       { return KindPin }
func (Text) Kind() CrumbKind      { return KindText }

func (c Line) Bounds() geom.Rect { return geom.RectFromPoints(c.From, c.To) }
func (c Rect) Bounds() geom.Rect { return geom.Rect{Min: c.Min, W: c.W, H: c.H} }
func (c RoundRect) Bounds() geom.Rect {
	return geom.Rect{Min: c.Min, W: c.W, H: c.H}
}
func (c Circle) Bounds() geom.Rect { return circleBounds(c.Center, c.Radius) }
func (c Pin) Bounds() geom.Rect    { return circleBounds(c.Center, c.Radius) }

// Bounds of an arc are the bounds of its cubic approximation's end and
// control points, which contain the arc.
func (c Arc) Bounds() geom.Rect {
	pts := []geom.Point{geom.Polar(c.Center, c.Radius, c.Start)}
	for _, seg := range geom.ArcToCubics(c.Center, c.Radius, c.Start, c.Sweep) {
		pts = append(pts, seg[0], seg[1], seg[2])
	}
	return geom.RectFromPoints(pts...)
}

// Bounds of text cover only the anchor point; text is never measured.
func (c Text) Bounds() geom.Rect { return geom.Rect{Min: c.At} }

func (c Line) Transformed(tf geom.Transform) Crumb {
	return Line{From: tf.Apply(c.From), To: tf.Apply(c.To)}
}

func (c Rect) Transformed(tf geom.Transform) Crumb {
	r := c.Bounds().Transform(tf)
	return Rect{Min: r.Min, W: r.W, H: r.H}
}

func (c RoundRect) Transformed(tf geom.Transform) Crumb {
	r := c.Bounds().Transform(tf)
	return RoundRect{Min: r.Min, W: r.W, H: r.H, Radius: math.Abs(tf.ApplyLen(c.Radius))}
}

func (c Circle) Transformed(tf geom.Transform) Crumb {
	return Circle{Center: tf.Apply(c.Center), Radius: math.Abs(tf.ApplyLen(c.Radius))}
}

func (c Pin) Transformed(tf geom.Transform) Crumb {
	return Pin{Center: tf.Apply(c.Center), Radius: math.Abs(tf.ApplyLen(c.Radius))}
}

// A negative scale is a point reflection, so the start angle turns by π and
// the sweep keeps its sign.
func (c Arc) Transformed(tf geom.Transform) Crumb {
	out := Arc{Center: tf.Apply(c.Center), Radius: math.Abs(tf.ApplyLen(c.Radius)), Start: c.Start, Sweep: c.Sweep}
	if tf.Scale < 0 {
		out.Start = geom.NormalizeAngle(c.Start + math.Pi)
	}
	return out
}

func (c Text) Transformed(tf geom.Transform) Crumb {
	out := c
	out.At = tf.Apply(c.At)
	out.Scale = c.FontScale() * math.Abs(tf.Scale)
	return out
}

// Anchor returns the center and radius of circular crumbs. Only circles and
// pins can anchor pins, labels and joints.
func Anchor(c Crumb) (center geom.Point, radius float64, ok bool) {
	switch v := c.(type) {
	case Circle:
		return v.Center, v.Radius, true
	case Pin:
		return v.Center, v.Radius, true
	}
	return geom.Point{}, 0, false
}

func circleBounds(c geom.Point, r float64) geom.Rect {
	return geom.Rect{Min: geom.Pt(c.X-r, c.Y-r), W: 2 * r, H: 2 * r}
}
