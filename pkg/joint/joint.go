package joint

import (
	"math"
	"sort"

	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/scene"
)

// Kind selects the connector shape.
type Kind uint8

const (
	KindLine Kind = iota
	KindPolyline
	KindQuadratic
	KindCubic
	KindArc
)

var kindNames = [...]string{"line", "polyline", "quadratic", "cubic", "arc"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Pulls returns how many pull offsets the kind accepts.
func (k Kind) Pulls() (lo, hi int) {
	switch k {
	case KindPolyline:
		return 1, 2
	case KindQuadratic:
		return 1, 1
	case KindCubic:
		return 2, 2
	}
	return 0, 0
}

// Spec requests a connector. Pulls are offsets from the chord midpoint and
// apply to polylines and curves; Radius is the signed arc radius.
type Spec struct {
	Kind   Kind
	Pulls  []geom.Point
	Radius float64
}

// Connector is a synthesized connector.
//
// Points holds the path vertices: the two endpoints for a line, the
// endpoints with the pull points between them for a polyline, and start,
// control point(s), end for curves. Arcs use Arc instead.
type Connector struct {
	Kind   Kind
	Points []geom.Point
	Arc    scene.Arc
}

// Start returns the first point of the connector.
func (c Connector) Start() geom.Point {
	if c.Kind == KindArc {
		return geom.Polar(c.Arc.Center, c.Arc.Radius, c.Arc.Start)
	}
	return c.Points[0]
}

// End returns the last point of the connector.
func (c Connector) End() geom.Point {
	if c.Kind == KindArc {
		return geom.Polar(c.Arc.Center, c.Arc.Radius, c.Arc.Start+c.Arc.Sweep)
	}
	return c.Points[len(c.Points)-1]
}

// Crumb converts the connector to a crumb for emission into a scene.
func (c Connector) Crumb() scene.Crumb {
	switch c.Kind {
	case KindLine:
		return scene.Line{From: c.Points[0], To: c.Points[1]}
	case KindQuadratic:
		return scene.QuadCurve(c.Points[0], c.Points[1], c.Points[2])
	case KindCubic:
		return scene.CubicCurve(c.Points[0], c.Points[1], c.Points[2], c.Points[3])
	case KindArc:
		return c.Arc
	}
	return scene.Polyline(c.Points...)
}

// Connect dispatches on spec.Kind. The number of pulls must match the kind
// exactly; callers trim excess pulls beforehand.
func Connect(a, b Anchor, ends Ends, spec Spec) (Connector, bool) {
	lo, hi := spec.Kind.Pulls()
	if len(spec.Pulls) < lo || len(spec.Pulls) > hi {
		return Connector{}, false
	}
	switch spec.Kind {
	case KindLine:
		return Line(a, b, ends)
	case KindPolyline:
		return Polyline(a, b, ends, spec.Pulls...)
	case KindQuadratic:
		return Quadratic(a, b, ends, spec.Pulls[0])
	case KindCubic:
		return Cubic(a, b, ends, spec.Pulls[0], spec.Pulls[1])
	case KindArc:
		return Arc(a, b, ends, spec.Radius)
	}
	return Connector{}, false
}

// Line connects a and b with a straight segment trimmed along the bearing
// between the centers. It fails when the trimmed ends would meet or cross.
func Line(a, b Anchor, ends Ends) (Connector, bool) {
	offA, offB := a.Offset(ends.Start), b.Offset(ends.End)
	chord := b.Center.Sub(a.Center)
	dir, ok := chord.Unit()
	if !ok || offA+offB >= chord.Len() {
		return Connector{}, false
	}
	return Connector{
		Kind: KindLine,
		Points: []geom.Point{
			a.Center.Add(dir.Mul(offA)),
			b.Center.Sub(dir.Mul(offB)),
		},
	}, true
}

// Polyline connects a and b through one or two pull points placed at the
// chord midpoint plus each pull offset. Each end is trimmed toward its
// nearest pull point; the pull points themselves are kept as given. With two
// pulls, the one closer to a comes first.
func Polyline(a, b Anchor, ends Ends, pulls ...geom.Point) (Connector, bool) {
	if len(pulls) < 1 || len(pulls) > 2 {
		return Connector{}, false
	}
	mid := geom.Mid(a.Center, b.Center)
	pts := make([]geom.Point, len(pulls))
	for i, p := range pulls {
		pts[i] = mid.Add(p)
	}
	sort.SliceStable(pts, func(i, j int) bool {
		return pts[i].Dist(a.Center) < pts[j].Dist(a.Center)
	})

	start, ok := trim(a, ends.Start, pts[0])
	if !ok {
		return Connector{}, false
	}
	end, ok := trim(b, ends.End, pts[len(pts)-1])
	if !ok {
		return Connector{}, false
	}
	out := append([]geom.Point{start}, pts...)
	return Connector{Kind: KindPolyline, Points: append(out, end)}, true
}

// Quadratic connects a and b with a quadratic Bézier whose control point is
// the chord midpoint plus pull. Both ends are trimmed toward the control
// point.
func Quadratic(a, b Anchor, ends Ends, pull geom.Point) (Connector, bool) {
	c := geom.Mid(a.Center, b.Center).Add(pull)
	start, ok := trim(a, ends.Start, c)
	if !ok {
		return Connector{}, false
	}
	end, ok := trim(b, ends.End, c)
	if !ok {
		return Connector{}, false
	}
	return Connector{Kind: KindQuadratic, Points: []geom.Point{start, c, end}}, true
}

// Cubic connects a and b with a cubic Bézier whose control points are the
// chord midpoint plus pull0 and pull1. The start is trimmed toward the first
// control point and the end toward the second.
func Cubic(a, b Anchor, ends Ends, pull0, pull1 geom.Point) (Connector, bool) {
	mid := geom.Mid(a.Center, b.Center)
	c0, c1 := mid.Add(pull0), mid.Add(pull1)
	start, ok := trim(a, ends.Start, c0)
	if !ok {
		return Connector{}, false
	}
	end, ok := trim(b, ends.End, c1)
	if !ok {
		return Connector{}, false
	}
	return Connector{Kind: KindCubic, Points: []geom.Point{start, c0, c1, end}}, true
}

// Arc connects a and b with a circular arc of signed radius. The arc's
// center lies on the perpendicular bisector of the chord, offset along the
// chord direction turned by +90 degrees for a positive radius and by -90
// degrees for a negative one. The sweep has the radius's sign.
//
// Arc fails when the anchors overlap, when no circle of that radius passes
// through both centers, or when trimming both ends would consume the whole
// sweep.
func Arc(a, b Anchor, ends Ends, radius float64) (Connector, bool) {
	chord := b.Center.Sub(a.Center)
	d := chord.Len()
	r := math.Abs(radius)
	if d < a.Radius+b.Radius+geom.Epsilon || r < d/2 || math.IsNaN(radius) {
		return Connector{}, false
	}
	u, _ := chord.Unit()
	sign := geom.Sign(radius)

	h := math.Sqrt(max(0, r*r-d*d/4))
	center := geom.Mid(a.Center, b.Center).Add(u.Perp().Mul(sign * h))

	start := a.Center.Sub(center).Angle()
	sweep := geom.NormalizeAngle(b.Center.Sub(center).Angle() - start)
	if h < geom.Epsilon {
		sweep = sign * math.Pi
	}

	offA, offB := a.Offset(ends.Start), b.Offset(ends.End)
	if offA > 2*r || offB > 2*r {
		return Connector{}, false
	}
	apexA := 2 * math.Asin(offA/(2*r))
	apexB := 2 * math.Asin(offB/(2*r))
	if apexA+apexB >= math.Abs(sweep) {
		return Connector{}, false
	}

	dir := geom.Sign(sweep)
	return Connector{
		Kind: KindArc,
		Arc: scene.Arc{
			Center: center,
			Radius: r,
			Start:  geom.NormalizeAngle(start + dir*apexA),
			Sweep:  sweep - dir*(apexA+apexB),
		},
	}, true
}

// trim returns the point at the anchor's attachment offset in the direction
// of toward. It fails when toward lies within that offset, where the
// direction would flip.
func trim(a Anchor, marker float64, toward geom.Point) (geom.Point, bool) {
	off := a.Offset(marker)
	v := toward.Sub(a.Center)
	dir, ok := v.Unit()
	if !ok || v.Len() <= off {
		return geom.Point{}, false
	}
	return a.Center.Add(dir.Mul(off)), true
}
