// Package joint synthesizes connectors between circular anchors.
//
// Every connector attaches to an anchor at an offset from its center equal
// to the anchor's radius, half its stroke width, and the length of the
// marker drawn at that end (see [Anchor.Offset]). The attachment point lies
// along a local tangent direction: the bearing to the other anchor for
// [Line], the bearing to the nearest pull or control point for [Polyline],
// [Quadratic] and [Cubic].
//
// [Arc] works on the circle of the requested radius through both anchor
// centers and converts each linear offset into an angular trim, the apex
// angle 2·asin(offset / 2|R|), taken off the corresponding end of the sweep.
//
// All functions return false instead of a connector when the geometry
// admits none. They never panic on degenerate input.
package joint
