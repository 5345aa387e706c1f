package joint

import (
	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

// Anchor is a circular endpoint of a connector.
type Anchor struct {
	Center      geom.Point
	Radius      float64
	StrokeWidth float64
}

// AnchorOf builds an anchor from a circle or pin crumb placed by tf and drawn
// with style. Other crumb kinds cannot anchor a connector.
func AnchorOf(c scene.Crumb, tf geom.Transform, style *theme.Style) (Anchor, bool) {
	center, radius, ok := scene.Anchor(c.Transformed(tf))
	if !ok {
		return Anchor{}, false
	}
	return Anchor{Center: center, Radius: radius, StrokeWidth: style.StrokeWidth()}, true
}

// Offset is the distance from the anchor's center at which a connector
// attaches: the radius, half the anchor's stroke, and the length of the
// marker drawn at that end.
func (a Anchor) Offset(marker float64) float64 {
	return a.Radius + 0.5*a.StrokeWidth + marker
}

// Ends holds the marker lengths at the start and end of a connector.
type Ends struct {
	Start float64
	End   float64
}

// EndsOf returns the marker lengths of a connector style.
func EndsOf(style *theme.Style) Ends {
	if style == nil {
		return Ends{}
	}
	return Ends{Start: style.Markers.StartLength(), End: style.Markers.EndLength()}
}
