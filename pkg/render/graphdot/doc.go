// Package graphdot renders the group graph of a scene as a Graphviz
// diagram, for inspecting how groups reference each other.
//
// # Usage
//
//	dot := graphdot.ToDOT(s, graphdot.Options{Theme: th})
//	svg, err := graphdot.RenderSVG(dot)
//
// Groups become boxes, layer roots are drawn bold, hidden groups dashed.
// With [Options.Crumbs] every referenced crumb becomes an ellipse, so
// instanced crumbs show every group that draws them.
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package graphdot
