// Package render turns scenes into draw lists and converts rendered output
// between formats.
//
// # Draw Lists
//
// [Compile] flattens a scene (visible layers only unless [Options.All] is
// set) and binds each entry to its resolved theme style. Every [Item]
// carries the crumb already mapped into canvas space, so backends never
// compose transforms themselves.
//
//	dl, err := render.Compile(s, th, render.Options{})
//	svg, err := sink.RenderSVG(dl)
//
// [Compiler] keeps the last draw list and rebuilds it only when the scene
// or theme revision changed, which is how hosts avoid re-flattening on
// every frame.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). The sinks in [sink] and the
// group-graph view in [graphdot] both use them.
//
// [sink]: github.com/matzehuels/stipple/pkg/render/sink
// [graphdot]: github.com/matzehuels/stipple/pkg/render/graphdot
package render
