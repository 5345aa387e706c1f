package theme

import (
	"image/color"
	"sort"

	"github.com/matzehuels/stipple/pkg/errors"
)

// GradientKind selects between linear and radial gradients.
type GradientKind uint8

const (
	Linear GradientKind = iota
	Radial
)

func (k GradientKind) String() string {
	if k == Radial {
		return "radial"
	}
	return "linear"
}

// Stop is one color stop of a gradient. Offset is in [0, 1].
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Gradient is a gradient definition expressed in object bounding-box units:
// (0,0) is the top-left and (1,1) the bottom-right of the painted shape.
//
// Linear gradients run from (X1,Y1) to (X2,Y2). Radial gradients are centered
// at (CX,CY) with radius R.
type Gradient struct {
	Kind           GradientKind
	X1, Y1, X2, Y2 float64
	CX, CY, R      float64
	Stops          []Stop
}

// LinearGradient returns a left-to-right linear gradient through stops.
func LinearGradient(stops ...Stop) Gradient {
	return Gradient{Kind: Linear, X2: 1, Stops: stops}
}

// RadialGradient returns a centered radial gradient through stops.
func RadialGradient(stops ...Stop) Gradient {
	return Gradient{Kind: Radial, CX: 0.5, CY: 0.5, R: 0.5, Stops: stops}
}

// Validate checks that the gradient has at least one stop and that stop
// offsets are within [0, 1] and non-decreasing.
func (g Gradient) Validate() error {
	if len(g.Stops) == 0 {
		return errors.New(errors.ErrCodeInvalidTheme, "gradient has no stops")
	}
	prev := 0.0
	for i, s := range g.Stops {
		if s.Offset < 0 || s.Offset > 1 {
			return errors.New(errors.ErrCodeInvalidTheme, "stop %d offset %g outside [0,1]", i, s.Offset)
		}
		if s.Offset < prev {
			return errors.New(errors.ErrCodeInvalidTheme, "stop %d offset %g decreases", i, s.Offset)
		}
		prev = s.Offset
	}
	return nil
}

// Gradient looks up a gradient by name.
func (t *Theme) Gradient(name string) (Gradient, bool) {
	g, ok := t.gradients[name]
	return g, ok
}

// ResolveGradient looks up a gradient by name and reports GRADIENT_MISSING
// when it is not defined. Render backends call this while painting.
func (t *Theme) ResolveGradient(name string) (Gradient, error) {
	g, ok := t.gradients[name]
	if !ok {
		return Gradient{}, errors.New(errors.ErrCodeGradientMissing, "gradient %q is not defined", name)
	}
	return g, nil
}

// GradientNames returns the defined gradient names in sorted order.
func (t *Theme) GradientNames() []string {
	return sortedKeys(t.gradients)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
