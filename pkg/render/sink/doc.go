// Package sink provides output format renderers for compiled draw lists.
//
// # Overview
//
// A "sink" transforms a [render.DrawList] into a final output format.
// This package provides renderers for:
//
//   - SVG: Scalable vector graphics with gradient and marker definitions
//   - PNG: Native raster output (srwiley/rasterx, no external tools)
//   - PDF: Print-ready output (requires rsvg-convert)
//   - JSON: Draw list export for external tools
//
// # Paint Resolution
//
// Styles name gradients symbolically. Sinks resolve every gradient a draw
// list uses against [render.DrawList.Theme] before painting anything, so a
// dangling name fails the whole render with GRADIENT_MISSING instead of
// producing a partial image.
//
// # Markers
//
// Start and end markers are drawn beyond the ends of open shapes (lines,
// arcs and paths), pointing away from the connector. The joint engine trims
// connectors by the marker length, so the marker tip lands on the anchor
// outline.
//
// # Usage
//
//	dl, err := render.Compile(s, th, render.Options{})
//	svg, err := sink.RenderSVG(dl, sink.WithTitle("diagram"))
//	png, err := sink.RenderPNG(dl, sink.WithScale(2))
//
// [RenderPDF] requires librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [render.DrawList]: github.com/matzehuels/stipple/pkg/render.DrawList
// [render.DrawList.Theme]: github.com/matzehuels/stipple/pkg/render.DrawList
package sink
