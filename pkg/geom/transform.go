package geom

import "fmt"

// Transform is a similarity transform: uniform scale followed by a
// translation. It maps p to p*Scale + (TX, TY).
//
// The zero value is not the identity; use Identity.
type Transform struct {
	Scale  float64
	TX, TY float64
}

// Identity returns the identity transform.
func Identity() Transform { return Transform{Scale: 1} }

// Translate returns a pure translation.
func Translate(x, y float64) Transform { return Transform{Scale: 1, TX: x, TY: y} }

// Scale returns a pure uniform scale about the origin.
func Scale(s float64) Transform { return Transform{Scale: s} }

// TranslateScale returns the transform that scales by s, then translates.
func TranslateScale(x, y, s float64) Transform { return Transform{Scale: s, TX: x, TY: y} }

// Mul returns t∘u: the transform that applies u first, then t.
//
// Composing the accumulated parent transform with a child reference
// transform is parent.Mul(child).
func (t Transform) Mul(u Transform) Transform {
	return Transform{
		Scale: t.Scale * u.Scale,
		TX:    t.Scale*u.TX + t.TX,
		TY:    t.Scale*u.TY + t.TY,
	}
}

// Apply maps p through t.
func (t Transform) Apply(p Point) Point {
	return Point{p.X*t.Scale + t.TX, p.Y*t.Scale + t.TY}
}

// ApplyLen scales a length by t.
func (t Transform) ApplyLen(l float64) float64 { return l * t.Scale }

// Inverse returns the inverse transform. A zero scale has no inverse and
// yields false.
func (t Transform) Inverse() (Transform, bool) {
	if t.Scale == 0 {
		return Transform{}, false
	}
	s := 1 / t.Scale
	return Transform{Scale: s, TX: -t.TX * s, TY: -t.TY * s}, true
}

// IsIdentity reports whether t is exactly the identity.
func (t Transform) IsIdentity() bool {
	return t.Scale == 1 && t.TX == 0 && t.TY == 0
}

// Near reports whether t and u agree within tol in every component.
func (t Transform) Near(u Transform, tol float64) bool {
	return abs(t.Scale-u.Scale) <= tol && abs(t.TX-u.TX) <= tol && abs(t.TY-u.TY) <= tol
}

// String renders t in SVG transform syntax.
func (t Transform) String() string {
	if t.IsIdentity() {
		return ""
	}
	if t.Scale == 1 {
		return fmt.Sprintf("translate(%g %g)", t.TX, t.TY)
	}
	return fmt.Sprintf("translate(%g %g) scale(%g)", t.TX, t.TY, t.Scale)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
