// Package pipeline runs the compile → render stages for a scene, with
// content-addressed caching of the rendered artifacts.
//
// # Overview
//
// The pipeline has two stages:
//
//  1. Compile: flatten the scene and bind resolved styles ([render.Compiler])
//  2. Render: paint the draw list into each requested format ([sink])
//
// A [Runner] hashes the JSON export of the draw list (styles included) and
// uses that hash as the cache address of every artifact, so a scene that
// has not changed since the last run costs one compile and a cache read.
//
// # Usage
//
//	runner := pipeline.NewRunner(fileCache, nil, logger)
//	defer runner.Close()
//
//	result, err := runner.Execute(ctx, s, th, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	    Title:   "scenario A",
//	})
//
// # Group Graph
//
// [Runner.RenderGraph] renders the group graph of a scene through Graphviz
// for debugging instancing and layer membership.
package pipeline

import (
	"image/color"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stipple/pkg/cache"
	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/render"
	"github.com/matzehuels/stipple/pkg/theme"
)

// =============================================================================
// Constants and Defaults
// =============================================================================

// Default values for pipeline options.
const (
	DefaultScale = 2.0
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats lists the accepted draw-list output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidGraphFormats lists the accepted group-graph output formats.
var ValidGraphFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	// Output
	Formats    []string `json:"formats,omitempty"`
	Scale      float64  `json:"scale,omitempty"`      // PNG pixels per user unit
	Title      string   `json:"title,omitempty"`      // SVG <title>
	Background string   `json:"background,omitempty"` // hex color, empty for transparent SVG / white PNG
	RSVG       bool     `json:"rsvg,omitempty"`       // rasterize PNG with rsvg-convert instead of natively

	// Compile
	All bool `json:"all,omitempty"` // include hidden layers and groups

	// JSON export metadata
	ThemeName string   `json:"theme,omitempty"`
	Variation []string `json:"variation,omitempty"`

	// Refresh skips cache reads; fresh results are still written.
	Refresh bool `json:"-"`

	// Compiler is reused across runs when set, so unchanged scenes skip
	// compilation. Its own options take precedence over All.
	Compiler *render.Compiler `json:"-"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if err := ValidateScale(o.Scale); err != nil {
		return err
	}
	if o.Background != "" {
		if _, err := theme.ParseColor(o.Background); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "background")
		}
	}
	o.validated = true
	return nil
}

// RenderOptions returns the compile options implied by o.
func (o Options) RenderOptions() render.Options {
	return render.Options{All: o.All}
}

// ArtifactKeyOpts returns the cache key options for format.
func (o Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG:
		k.Title, k.Background = o.Title, o.Background
	case FormatPNG:
		k.Scale, k.Background, k.Native = o.Scale, o.Background, !o.RSVG
		if o.RSVG {
			k.Title = o.Title
		}
	case FormatPDF:
		k.Title, k.Background = o.Title, o.Background
	}
	return k
}

// background returns the parsed background color, or ok=false when unset.
func (o Options) background() (color.NRGBA, bool) {
	if o.Background == "" {
		return color.NRGBA{}, false
	}
	c, err := theme.ParseColor(o.Background)
	return c, err == nil
}

// =============================================================================
// Results
// =============================================================================

// Result holds everything a pipeline run produced.
type Result struct {
	DrawList  render.DrawList
	Hash      string            // content hash of the draw list
	Artifacts map[string][]byte // format → bytes
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats records timings and sizes of a run.
type Stats struct {
	Items       int
	CompileTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo reports which stages were served without recomputation.
type CacheInfo struct {
	CompileReused bool // the compiler reused its previous draw list
	RenderHit     bool // every artifact came from the cache
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat reports whether format is a draw-list output format.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (want %s)", format, formatList(ValidFormats))
	}
	return nil
}

// ValidateFormats validates every entry of formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateGraphFormat reports whether format is a group-graph output format.
func ValidateGraphFormat(format string) error {
	if !ValidGraphFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid graph format %q (want %s)", format, formatList(ValidGraphFormats))
	}
	return nil
}

// ValidateScale rejects non-positive PNG scales.
func ValidateScale(scale float64) error {
	if scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", scale)
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func formatList(m map[string]bool) string {
	names := make([]string, 0, len(m))
	for _, f := range []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT} {
		if m[f] {
			names = append(names, f)
		}
	}
	return strings.Join(names, ", ")
}
