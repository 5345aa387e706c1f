// Package geom provides the small amount of 2D geometry shared by the scene
// graph, the joint engine and the render backends: points, similarity
// transforms (translate + uniform scale), rectangles and angle helpers.
//
// All values are plain structs passed by value. Angles are radians.
package geom

import "math"

// Point is a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Cross returns the z component of the 3D cross product of p and q.
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Len returns the Euclidean length of p.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Dist returns the distance between p and q.
func (p Point) Dist(q Point) float64 { return q.Sub(p).Len() }

// Unit returns p scaled to length one. The zero vector is returned unchanged
// together with false.
func (p Point) Unit() (Point, bool) {
	l := p.Len()
	if l < Epsilon {
		return p, false
	}
	return Point{p.X / l, p.Y / l}, true
}

// Perp returns p rotated by +90 degrees.
func (p Point) Perp() Point { return Point{-p.Y, p.X} }

// Angle returns the bearing of p from the origin, in (-π, π].
func (p Point) Angle() float64 { return math.Atan2(p.Y, p.X) }

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Mid returns the midpoint of p and q.
func Mid(p, q Point) Point { return p.Lerp(q, 0.5) }

// Polar returns the point at distance r and angle a from c.
func Polar(c Point, r, a float64) Point {
	return Point{c.X + r*math.Cos(a), c.Y + r*math.Sin(a)}
}

// Near reports whether p and q coincide within tol.
func (p Point) Near(q Point, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}
