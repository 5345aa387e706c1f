package geom

import "math"

// Epsilon is the tolerance used for degenerate-geometry checks.
const Epsilon = 1e-9

// NormalizeAngle maps a into (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	switch {
	case a <= -math.Pi:
		a += 2 * math.Pi
	case a > math.Pi:
		a -= 2 * math.Pi
	}
	return a
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// ArcToCubics approximates the circular arc of radius r around c, starting at
// angle start and sweeping sweep radians, with cubic Bézier segments of at
// most 90 degrees each. Each returned element holds the two control points
// and the end point of one segment; the start point is Polar(c, r, start).
func ArcToCubics(c Point, r, start, sweep float64) [][3]Point {
	if r <= 0 || sweep == 0 {
		return nil
	}
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)

	out := make([][3]Point, 0, n)
	a0 := start
	for i := 0; i < n; i++ {
		a1 := a0 + step
		p0 := Polar(c, r, a0)
		p3 := Polar(c, r, a1)
		d0 := Point{-math.Sin(a0), math.Cos(a0)}.Mul(k * r)
		d1 := Point{-math.Sin(a1), math.Cos(a1)}.Mul(k * r)
		out = append(out, [3]Point{p0.Add(d0), p3.Sub(d1), p3})
		a0 = a1
	}
	return out
}
