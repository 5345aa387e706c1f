package joint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

const tol = 1e-9

func node(x, y, r float64) Anchor {
	return Anchor{Center: geom.Pt(x, y), Radius: r}
}

func TestArcBetweenTwoNodes(t *testing.T) {
	a, b := node(200, 400, 35), node(600, 400, 35)
	h := math.Sqrt(300*300 - 200*200)

	for _, radius := range []float64{300, -300} {
		c, ok := Arc(a, b, Ends{}, radius)
		require.True(t, ok, "radius %v", radius)
		assert.InDelta(t, 400, c.Arc.Center.X, tol)
		assert.InDelta(t, 400+geom.Sign(radius)*h, c.Arc.Center.Y, tol)
		assert.NotZero(t, c.Arc.Sweep)
	}

	c, _ := Arc(a, b, Ends{}, 300)
	assert.InDelta(t, 623.6, c.Arc.Center.Y, 0.05)
	c, _ = Arc(a, b, Ends{}, -300)
	assert.InDelta(t, 176.4, c.Arc.Center.Y, 0.05)
}

func TestArcValidity(t *testing.T) {
	pairs := []struct{ a, b Anchor }{
		{node(0, 0, 5), node(100, 0, 5)},
		{node(10, 20, 3), node(-40, 90, 8)},
		{node(-5, -5, 1), node(-5, 60, 1)},
	}
	for _, p := range pairs {
		d := p.a.Center.Dist(p.b.Center)
		for _, k := range []float64{0.5, 0.51, 0.75, 1, 3, 10} {
			for _, sign := range []float64{1, -1} {
				radius := sign * k * d
				c, ok := Arc(p.a, p.b, Ends{}, radius)
				require.True(t, ok, "d=%v R=%v", d, radius)

				assert.InDelta(t, math.Abs(radius), c.Arc.Center.Dist(p.a.Center), 1e-6)
				assert.InDelta(t, math.Abs(radius), c.Arc.Center.Dist(p.b.Center), 1e-6)
				assert.Equal(t, geom.Sign(radius), geom.Sign(c.Arc.Sweep), "sweep sign for R=%v", radius)
				assert.Less(t, math.Abs(c.Arc.Sweep), math.Pi+tol)
			}
		}
	}
}

func TestArcEndsLieOnAnchorBoundary(t *testing.T) {
	a, b := node(0, 0, 10), node(200, 0, 20)
	a.StrokeWidth = 4
	ends := Ends{Start: 3, End: 6}

	c, ok := Arc(a, b, ends, 150)
	require.True(t, ok)
	assert.InDelta(t, a.Offset(ends.Start), c.Start().Dist(a.Center), 1e-6)
	assert.InDelta(t, b.Offset(ends.End), c.End().Dist(b.Center), 1e-6)
}

func TestArcRejection(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Anchor
		radius float64
	}{
		{"radius below half chord", node(0, 0, 5), node(400, 0, 5), 150},
		{"overlapping anchors", node(0, 0, 35), node(50, 0, 35), 300},
		{"coincident anchors", node(10, 10, 1), node(10, 10, 1), 5},
		{"zero radius", node(0, 0, 1), node(10, 0, 1), 0},
		{"trim consumes sweep", Anchor{Center: geom.Pt(0, 0), Radius: 10, StrokeWidth: 100},
			Anchor{Center: geom.Pt(100, 0), Radius: 10, StrokeWidth: 100}, 500},
		{"offset beyond diameter", Anchor{Center: geom.Pt(0, 0), Radius: 9, StrokeWidth: 400}, node(100, 0, 1), 60},
		{"nan radius", node(0, 0, 1), node(10, 0, 1), math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Arc(tt.a, tt.b, Ends{}, tt.radius)
			assert.False(t, ok)
		})
	}
}

func TestArcHalfCircle(t *testing.T) {
	a, b := node(0, 0, 1), node(10, 0, 1)
	c, ok := Arc(a, b, Ends{}, -5)
	require.True(t, ok)
	assert.InDelta(t, 5, c.Arc.Center.X, tol)
	assert.InDelta(t, 0, c.Arc.Center.Y, tol)
	assert.Less(t, c.Arc.Sweep, 0.0)
	assert.Greater(t, c.Arc.Sweep, -math.Pi)
}

func TestLineTrimsAlongBearing(t *testing.T) {
	a := Anchor{Center: geom.Pt(0, 0), Radius: 10, StrokeWidth: 2}
	b := node(100, 0, 5)

	c, ok := Line(a, b, Ends{End: 8})
	require.True(t, ok)
	assert.True(t, c.Start().Near(geom.Pt(11, 0), tol))
	assert.True(t, c.End().Near(geom.Pt(87, 0), tol))
	assert.Equal(t, scene.Line{From: geom.Pt(11, 0), To: geom.Pt(87, 0)}, c.Crumb())

	_, ok = Line(node(0, 0, 30), node(50, 0, 30), Ends{})
	assert.False(t, ok, "trimmed ends cross")
	_, ok = Line(node(0, 0, 1), node(0, 0, 1), Ends{})
	assert.False(t, ok)
}

func TestPolylineOrdersPullsFromStart(t *testing.T) {
	a, b := node(0, 0, 5), node(100, 0, 5)
	// Mid is (50,0): pull points at (80,40) and (20,40).
	c, ok := Polyline(a, b, Ends{}, geom.Pt(30, 40), geom.Pt(-30, 40))
	require.True(t, ok)
	require.Len(t, c.Points, 4)
	assert.Equal(t, geom.Pt(20, 40), c.Points[1])
	assert.Equal(t, geom.Pt(80, 40), c.Points[2])

	dirA, _ := geom.Pt(20, 40).Unit()
	assert.True(t, c.Start().Near(dirA.Mul(5), tol))
	assert.InDelta(t, 5, c.End().Dist(b.Center), tol)

	one, ok := Polyline(a, b, Ends{}, geom.Pt(0, 30))
	require.True(t, ok)
	assert.Len(t, one.Points, 3)
	assert.Equal(t, scene.KindPath, one.Crumb().Kind())

	_, ok = Polyline(a, b, Ends{})
	assert.False(t, ok)
	_, ok = Polyline(a, b, Ends{}, geom.Pt(-50, 0))
	assert.False(t, ok, "pull point at the start anchor's center")
}

func TestCurvesTrimTowardControlPoints(t *testing.T) {
	a, b := node(0, 0, 10), node(100, 0, 10)

	q, ok := Quadratic(a, b, Ends{}, geom.Pt(0, 50))
	require.True(t, ok)
	assert.Equal(t, geom.Pt(50, 50), q.Points[1])
	assert.InDelta(t, 10, q.Start().Dist(a.Center), tol)
	assert.InDelta(t, q.Start().Y, q.End().Y, tol, "symmetric pull trims symmetrically")

	c, ok := Cubic(a, b, Ends{Start: 2}, geom.Pt(-25, -40), geom.Pt(25, -40))
	require.True(t, ok)
	require.Len(t, c.Points, 4)
	assert.InDelta(t, 12, c.Start().Dist(a.Center), tol)
	dir, _ := geom.Pt(25, -40).Unit()
	assert.True(t, c.Start().Near(dir.Mul(12), tol))
	assert.Equal(t, scene.KindPath, c.Crumb().Kind())
}

func TestConnectChecksPullCount(t *testing.T) {
	a, b := node(0, 0, 5), node(100, 0, 5)
	_, ok := Connect(a, b, Ends{}, Spec{Kind: KindCubic, Pulls: []geom.Point{{}}})
	assert.False(t, ok)
	_, ok = Connect(a, b, Ends{}, Spec{Kind: KindLine, Pulls: []geom.Point{{}}})
	assert.False(t, ok)

	c, ok := Connect(a, b, Ends{}, Spec{Kind: KindArc, Radius: 80})
	require.True(t, ok)
	assert.Equal(t, scene.KindArc, c.Crumb().Kind())
}

func TestAnchorOfUsesStyle(t *testing.T) {
	th := theme.New(theme.Style{}).
		WithStrokes(map[string]theme.Stroke{"thick": {Width: 6}}).
		WithMarkers(map[string]theme.Marker{"arrow": {Length: 9}}).
		WithStyles(theme.StyleSpec{Name: "node", Stroke: "thick"},
			theme.StyleSpec{Name: "edge", MarkerEnd: "arrow"})

	an, ok := AnchorOf(scene.Circle{Center: geom.Pt(1, 1), Radius: 2}, geom.TranslateScale(10, 0, 3),
		th.Style(th.MustStyleID("node")))
	require.True(t, ok)
	assert.Equal(t, geom.Pt(13, 3), an.Center)
	assert.Equal(t, 6.0, an.Radius)
	assert.Equal(t, 6.0, an.StrokeWidth)
	assert.Equal(t, 9.0, an.Offset(0))

	assert.Equal(t, Ends{End: 9}, EndsOf(th.Style(th.MustStyleID("edge"))))

	_, ok = AnchorOf(scene.Rect{W: 1, H: 1}, geom.Identity(), th.Default())
	assert.False(t, ok)
}
