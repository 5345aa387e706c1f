package graphdot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/render"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

// Options configures group-graph rendering.
type Options struct {
	// Crumbs adds one node per referenced crumb. When false, only groups
	// and group references are shown.
	Crumbs bool
	// Theme, when set, labels references with style names instead of ids.
	Theme *theme.Theme
}

// ToDOT converts the group graph of s to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Layer roots are drawn bold and hidden groups dashed. Reference edges are
// labeled with their style and transform; an instanced group shows up as a
// node with several incoming edges.
func ToDOT(s *scene.Scene, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	roots := map[scene.GroupID][]scene.Layer{}
	for _, l := range s.Layers() {
		roots[l.Group] = append(roots[l.Group], l)
	}

	crumbs := map[scene.CrumbID]bool{}
	var edges []string
	for i := 0; i < s.GroupCount(); i++ {
		id := scene.GroupID(i)
		g, err := s.Group(id)
		if err != nil {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", groupNode(id), strings.Join(groupAttrs(id, g, roots[id]), ", "))

		for _, r := range g.Refs {
			label := refLabel(r, opts.Theme)
			switch r.Kind {
			case scene.RefGroup:
				edges = append(edges, fmt.Sprintf("  %q -> %q [label=%q];\n", groupNode(id), groupNode(r.Group), label))
			case scene.RefCrumb:
				if !opts.Crumbs {
					continue
				}
				crumbs[r.Crumb] = true
				edges = append(edges, fmt.Sprintf("  %q -> %q [label=%q, style=dotted];\n", groupNode(id), crumbNode(r.Crumb), label))
			}
		}
	}

	for i := 0; i < s.CrumbCount(); i++ {
		id := scene.CrumbID(i)
		if !crumbs[id] {
			continue
		}
		c, err := s.Crumb(id)
		if err != nil {
			continue
		}
		fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse, style=filled, fillcolor=lightyellow];\n",
			crumbNode(id), fmt.Sprintf("%s #%d", c.Kind(), id))
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func groupNode(id scene.GroupID) string { return "g" + strconv.Itoa(int(id)) }
func crumbNode(id scene.CrumbID) string { return "c" + strconv.Itoa(int(id)) }

func groupAttrs(id scene.GroupID, g scene.Group, layers []scene.Layer) []string {
	label := g.Name
	if label == "" {
		label = fmt.Sprintf("group %d", id)
	}
	for _, l := range layers {
		state := ""
		if !l.Visible {
			state = ", hidden"
		}
		label += fmt.Sprintf("\nlayer %d (z=%d%s)", l.ID, l.Z, state)
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	if len(layers) > 0 {
		attrs = append(attrs, "penwidth=2")
	}
	if g.Hidden {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

func refLabel(r scene.Ref, th *theme.Theme) string {
	var parts []string
	if r.Style != theme.NoStyle {
		if th != nil {
			parts = append(parts, th.Style(r.Style).Name)
		} else {
			parts = append(parts, fmt.Sprintf("style %d", r.Style))
		}
	}
	if tf := r.Transform.String(); tf != "" {
		parts = append(parts, tf)
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// viewBox so the SVG scales like the scene sinks' output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
