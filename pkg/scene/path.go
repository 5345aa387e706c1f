package scene

import "github.com/matzehuels/stipple/pkg/geom"

// PathOp is a path drawing command.
type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	QuadTo
	CubeTo
	Close
)

// Segment is one path command. Pts holds the command's points in order:
// one for MoveTo and LineTo, control and end for QuadTo, two controls and
// end for CubeTo, none for Close.
type Segment struct {
	Op  PathOp
	Pts [3]geom.Point
}

// Points returns the points used by the segment.
func (s Segment) Points() []geom.Point {
	switch s.Op {
	case MoveTo, LineTo:
		return s.Pts[:1]
	case QuadTo:
		return s.Pts[:2]
	case CubeTo:
		return s.Pts[:3]
	}
	return nil
}

// Path is a general open or closed outline.
type Path struct {
	Segs []Segment
}

// Polyline returns an open path through pts.
func Polyline(pts ...geom.Point) Path {
	var p Path
	for i, pt := range pts {
		op := LineTo
		if i == 0 {
			op = MoveTo
		}
		p.Segs = append(p.Segs, Segment{Op: op, Pts: [3]geom.Point{pt}})
	}
	return p
}

// QuadCurve returns a quadratic Bézier path from p0 to p1 with control c.
func QuadCurve(p0, c, p1 geom.Point) Path {
	return Path{Segs: []Segment{
		{Op: MoveTo, Pts: [3]geom.Point{p0}},
		{Op: QuadTo, Pts: [3]geom.Point{c, p1}},
	}}
}

// CubicCurve returns a cubic Bézier path from p0 to p1 with controls c0, c1.
func CubicCurve(p0, c0, c1, p1 geom.Point) Path {
	return Path{Segs: []Segment{
		{Op: MoveTo, Pts: [3]geom.Point{p0}},
		{Op: CubeTo, Pts: [3]geom.Point{c0, c1, p1}},
	}}
}

// Bounds returns the bounds of every point in the path, control points
// included.
func (c Path) Bounds() geom.Rect {
	var pts []geom.Point
	for _, s := range c.Segs {
		pts = append(pts, s.Points()...)
	}
	return geom.RectFromPoints(pts...)
}

func (c Path) Transformed(tf geom.Transform) Crumb {
	out := Path{Segs: make([]Segment, len(c.Segs))}
	for i, s := range c.Segs {
		out.Segs[i] = Segment{Op: s.Op}
		for j, p := range s.Points() {
			out.Segs[i].Pts[j] = tf.Apply(p)
		}
	}
	return out
}

// Closed reports whether the path ends with a Close command.
func (c Path) Closed() bool {
	return len(c.Segs) > 0 && c.Segs[len(c.Segs)-1].Op == Close
}
