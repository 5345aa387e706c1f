package pipeline

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stipple/pkg/cache"
	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/render"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", true}, // graph only
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateGraphFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateGraphFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateGraphFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestParseFormats(t *testing.T) {
	got := ParseFormats(" SVG, png,,json ")
	want := []string{"svg", "png", "json"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ParseFormats = %v, want %v", got, want)
	}
	if got := ParseFormats(""); len(got) != 0 {
		t.Errorf("ParseFormats(\"\") = %v, want empty", got)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Empty options should pass: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %v, got %v", DefaultScale, opts.Scale)
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"bad format", Options{Formats: []string{"gif"}}, true},
		{"negative scale", Options{Scale: -1}, true},
		{"bad background", Options{Background: "#zz"}, true},
		{"hex background", Options{Background: "#fafafa"}, false},
		{"all formats", Options{Formats: []string{"svg", "png", "pdf", "json"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Formats: []string{"png"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	originalScale := opts.Scale

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.Scale != originalScale {
		t.Error("Scale changed on second call")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Title: "t", Background: "#fff", Scale: 3}

	svg := opts.ArtifactKeyOpts(FormatSVG)
	if svg.Scale != 0 || svg.Title != "t" {
		t.Errorf("svg key opts = %+v, want title without scale", svg)
	}

	png := opts.ArtifactKeyOpts(FormatPNG)
	if png.Scale != 3 || !png.Native || png.Title != "" {
		t.Errorf("png key opts = %+v, want native scale 3 without title", png)
	}

	js := opts.ArtifactKeyOpts(FormatJSON)
	if js != (cache.ArtifactKeyOpts{Format: FormatJSON}) {
		t.Errorf("json key opts = %+v, want format only", js)
	}
}

// =============================================================================
// Runner
// =============================================================================

// memCache is an in-memory cache counting reads and writes.
type memCache struct {
	data       map[string][]byte
	hits, sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	d, ok := c.data[key]
	if ok {
		c.hits++
	}
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func testTheme() *theme.Theme {
	return theme.New(theme.Style{}).
		WithFills(map[string]theme.Fill{"node": {Paint: theme.MustHex("#336699"), Opacity: 1}}).
		WithStrokes(map[string]theme.Stroke{"edge": {Paint: theme.MustHex("#000000"), Width: 1}}).
		WithVariation("dark", theme.NewVariation().
			Fill("node", theme.Fill{Paint: theme.MustHex("#ffffff"), Opacity: 1})).
		WithStyles(
			theme.StyleSpec{Name: "node", Fill: "node"},
			theme.StyleSpec{Name: "edge", Stroke: "edge"},
		)
}

func testScene(t *testing.T, th *theme.Theme) *scene.Scene {
	t.Helper()
	s := scene.New(100, 60)
	a := s.AddCrumb(scene.Circle{Center: geom.Pt(20, 30), Radius: 10})
	b := s.AddCrumb(scene.Circle{Center: geom.Pt(80, 30), Radius: 10})
	e := s.AddCrumb(scene.Line{From: geom.Pt(30, 30), To: geom.Pt(70, 30)})
	g, err := s.AddGroup(*scene.NewGroup("root").
		AddCrumb(a, th.MustStyleID("node"), geom.Identity()).
		AddCrumb(b, th.MustStyleID("node"), geom.Identity()).
		AddCrumb(e, th.MustStyleID("edge"), geom.Identity()))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddLayer(g, 0); err != nil {
		t.Fatal(err)
	}
	return s
}

func quietLogger() *log.Logger { return log.New(io.Discard) }

func TestRunnerExecute(t *testing.T) {
	th := testTheme()
	s := testScene(t, th)
	mc := newMemCache()
	r := NewRunner(mc, nil, quietLogger())
	ctx := context.Background()
	opts := Options{Formats: []string{FormatSVG, FormatJSON}, Title: "pair"}

	first, err := r.Execute(ctx, s, th, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	if first.Stats.Items != 3 {
		t.Errorf("Items = %d, want 3", first.Stats.Items)
	}
	if !bytes.Contains(first.Artifacts[FormatSVG], []byte("<title>pair</title>")) {
		t.Errorf("svg missing title:\n%s", first.Artifacts[FormatSVG])
	}
	if !bytes.Contains(first.Artifacts[FormatJSON], []byte(`"kind": "circle"`)) {
		t.Errorf("json missing circle item:\n%s", first.Artifacts[FormatJSON])
	}
	if mc.sets != 2 {
		t.Errorf("sets = %d, want 2", mc.sets)
	}

	second, err := r.Execute(ctx, s, th, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("unchanged scene should hit the cache")
	}
	if second.Hash != first.Hash {
		t.Error("hash changed for an unchanged scene")
	}
	if !bytes.Equal(second.Artifacts[FormatSVG], first.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, s, th, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh should skip cache reads")
	}
}

func TestRunnerHashFollowsVariation(t *testing.T) {
	th := testTheme()
	s := testScene(t, th)
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()

	before, err := r.Execute(ctx, s, th, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := th.UseVariation([]string{"dark"}); err != nil {
		t.Fatal(err)
	}
	after, err := r.Execute(ctx, s, th, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if before.Hash == after.Hash {
		t.Error("switching variation should change the draw-list hash")
	}
	if !bytes.Contains(after.Artifacts[FormatSVG], []byte("#ffffff")) {
		t.Errorf("dark variation not painted:\n%s", after.Artifacts[FormatSVG])
	}

	th.UseOriginalVariation()
	restored, err := r.Execute(ctx, s, th, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if restored.Hash != before.Hash {
		t.Error("returning to the original variation should restore the hash")
	}
}

func TestRunnerReusesCompiler(t *testing.T) {
	th := testTheme()
	s := testScene(t, th)
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()
	opts := Options{Compiler: render.NewCompiler(render.Options{})}

	res, err := r.Execute(ctx, s, th, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.CompileReused {
		t.Error("first compile cannot be reused")
	}
	res, err = r.Execute(ctx, s, th, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheInfo.CompileReused {
		t.Error("unchanged scene should reuse the compiled draw list")
	}

	s.AddCrumb(scene.Pin{Center: geom.Pt(1, 1), Radius: 1})
	res, err = r.Execute(ctx, s, th, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.CompileReused {
		t.Error("a scene edit should force recompilation")
	}
}

func TestRunnerRejectsInvalidOptions(t *testing.T) {
	th := testTheme()
	r := NewRunner(nil, nil, quietLogger())
	_, err := r.Execute(context.Background(), testScene(t, th), th, Options{Formats: []string{"gif"}})
	if err == nil {
		t.Fatal("invalid format should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("code = %s, want INVALID_FORMAT", errors.GetCode(err))
	}
}

func TestRunnerRenderGraphDOT(t *testing.T) {
	th := testTheme()
	s := testScene(t, th)
	mc := newMemCache()
	r := NewRunner(mc, nil, quietLogger())

	data, hit, err := r.RenderGraphWithCacheInfo(context.Background(), s, th, FormatDOT, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("dot source is never cached")
	}
	if !strings.HasPrefix(string(data), "digraph") {
		t.Errorf("dot output = %q, want digraph", data)
	}
	if mc.sets != 0 {
		t.Errorf("sets = %d, want 0", mc.sets)
	}

	if _, _, err := r.RenderGraphWithCacheInfo(context.Background(), s, th, FormatJSON, 0, false); err == nil {
		t.Error("json is not a graph format")
	}
}
