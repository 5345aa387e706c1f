package pipeline

import (
	"fmt"

	"github.com/matzehuels/stipple/pkg/render"
	"github.com/matzehuels/stipple/pkg/render/graphdot"
	"github.com/matzehuels/stipple/pkg/render/sink"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

// Render paints dl into every format of opts.Formats.
func Render(dl render.DrawList, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = sink.RenderSVG(dl, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(dl, buildPNGOptions(opts, svgOpts)...)
		case FormatPDF:
			data, err = sink.RenderPDF(dl, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(dl, buildJSONOptions(opts)...)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderGraph renders the group graph of s. The DOT format returns the
// source text; other formats go through Graphviz.
func RenderGraph(s *scene.Scene, th *theme.Theme, format string, scale float64, crumbs bool) ([]byte, error) {
	dot := graphdot.ToDOT(s, graphdot.Options{Crumbs: crumbs, Theme: th})
	return renderDOT(dot, format, scale)
}

func renderDOT(dot, format string, scale float64) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return graphdot.RenderSVG(dot)
	case FormatPNG:
		return graphdot.RenderPNG(dot, scale)
	case FormatPDF:
		return graphdot.RenderPDF(dot)
	default:
		return nil, fmt.Errorf("unsupported graph format: %s", format)
	}
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if bg, ok := opts.background(); ok {
		svgOpts = append(svgOpts, sink.WithBackground(theme.Solid(bg)))
	}
	return svgOpts
}

func buildPNGOptions(opts Options, svgOpts []sink.SVGOption) []sink.PNGOption {
	pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale)}
	if bg, ok := opts.background(); ok {
		pngOpts = append(pngOpts, sink.WithPNGBackground(bg))
	}
	if opts.RSVG {
		pngOpts = append(pngOpts, sink.WithRSVG(svgOpts...))
	}
	return pngOpts
}

func buildJSONOptions(opts Options) []sink.JSONOption {
	jsonOpts := []sink.JSONOption{sink.WithJSONStyles()}
	if opts.ThemeName != "" {
		jsonOpts = append(jsonOpts, sink.WithJSONTheme(opts.ThemeName))
	}
	if len(opts.Variation) > 0 {
		jsonOpts = append(jsonOpts, sink.WithJSONVariation(opts.Variation))
	}
	return jsonOpts
}
