// Package pkg provides the core libraries for Stipple diagrams.
//
// # Overview
//
// Stipple draws 2D diagrams from a scene graph. Geometry is stored once as
// crumbs (lines, rectangles, circles, arcs, pins, text, paths) and placed
// any number of times through groups that reference crumbs and other groups
// with a style and an affine transform. Layers pick the roots that get
// painted, in z order. Styles live in a theme and cascade through nested
// variations, so a single scene can be drawn light, dark or print-ready
// without being rebuilt.
//
// # Architecture
//
// The typical data flow:
//
//	scene.Scene + theme.Theme
//	         ↓
//	    [builder] (pins, labels and joints derived from anchors)
//	         ↓
//	    [render] (flatten visible layers into a draw list)
//	         ↓
//	    [render/sink] (SVG, PNG, PDF, JSON)
//
// # Quick Start
//
//	th, _ := themefile.Builtin("classic")
//	node := th.MustStyleID("node")
//
//	s := scene.New(400, 200)
//	c := s.AddCrumb(scene.Circle{Radius: 30})
//	nodes, _ := s.AddGroup(*scene.NewGroup("nodes").
//	    AddCrumb(c, node, geom.Translate(100, 100)).
//	    AddCrumb(c, node, geom.Translate(300, 100)))
//
//	edges := builder.NewJoints().
//	    Style(th.MustStyleID("edge")).
//	    Line(builder.Nth(nodes, 0), builder.Nth(nodes, 1)).
//	    Build(s, th)
//
//	root, _ := s.AddGroup(*scene.NewGroup("diagram").
//	    AddChild(edges.Group, 0, geom.Identity()).
//	    AddChild(nodes, 0, geom.Identity()))
//	s.AddLayer(root, 0)
//
//	dl, _ := render.Compile(s, th, render.Options{})
//	svg, _ := sink.RenderSVG(dl)
//
// # Main Packages
//
// [geom] - Points and affine transforms.
//
// [scene] - The scene graph: crumbs, groups, layers and traversal.
//
// [theme] - Strokes, fills, markers, fonts and gradients, the style table,
// and the variation cascade. [theme/themefile] loads TOML themes and ships
// the built-in ones.
//
// [joint] - Connector geometry between circular anchors: lines, polylines,
// quadratic and cubic curves, and arcs, trimmed to the anchor outline and
// the end markers.
//
// [builder] - Two-phase builders for pins, labels and joints.
//
// [render] - Draw-list compilation with revision-based reuse, and SVG
// conversion to PDF and PNG through rsvg-convert. [render/sink] writes
// draw lists out; [render/graphdot] exports the group graph to Graphviz.
//
// [pipeline] - Compile → render orchestration with artifact caching, shared
// by the CLI and the preview server.
//
// [cache] - File, Redis and null artifact caches with content-addressed keys.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hooks for compile, render, cache and server events.
package pkg
