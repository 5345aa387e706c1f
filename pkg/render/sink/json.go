package sink

import (
	"encoding/json"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/render"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	theme     string
	variation []string
	styles    bool
}

// WithJSONTheme records the theme name in the JSON output.
func WithJSONTheme(name string) JSONOption { return func(r *jsonRenderer) { r.theme = name } }

// WithJSONVariation records the active variation path in the JSON output.
func WithJSONVariation(path []string) JSONOption {
	return func(r *jsonRenderer) { r.variation = path }
}

// WithJSONStyles includes the resolved paint of every style the draw list
// uses, keyed by style name.
func WithJSONStyles() JSONOption { return func(r *jsonRenderer) { r.styles = true } }

type jsonOutput struct {
	Width     float64              `json:"width"`
	Height    float64              `json:"height"`
	Theme     string               `json:"theme,omitempty"`
	Variation []string             `json:"variation,omitempty"`
	Items     []jsonItem           `json:"items"`
	Styles    map[string]jsonStyle `json:"styles,omitempty"`
}

type jsonItem struct {
	Crumb  int          `json:"crumb"`
	Kind   string       `json:"kind"`
	Style  string       `json:"style,omitempty"`
	Scale  float64      `json:"scale"`
	Bounds jsonBounds   `json:"bounds"`
	Points [][2]float64 `json:"points,omitempty"`
	Radius float64      `json:"radius,omitempty"`
	Start  float64      `json:"start,omitempty"`
	Sweep  float64      `json:"sweep,omitempty"`
	Text   string       `json:"text,omitempty"`
	Upper  string       `json:"upper,omitempty"`
	Lower  string       `json:"lower,omitempty"`
}

type jsonBounds struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type jsonStyle struct {
	Stroke      string    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"stroke_width,omitempty"`
	Dash        []float64 `json:"dash,omitempty"`
	Fill        string    `json:"fill,omitempty"`
	FillOpacity float64   `json:"fill_opacity,omitempty"`
	MarkerStart string    `json:"marker_start,omitempty"`
	MarkerEnd   string    `json:"marker_end,omitempty"`
	Font        string    `json:"font,omitempty"`
	FontSize    float64   `json:"font_size,omitempty"`
}

// RenderJSON exports the draw list as a pretty-printed JSON document: one
// entry per item in paint order, with canvas-space geometry.
//
// RenderJSON returns an error only if JSON marshaling fails.
func RenderJSON(dl render.DrawList, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:     dl.Width,
		Height:    dl.Height,
		Theme:     r.theme,
		Variation: r.variation,
		Items:     make([]jsonItem, 0, len(dl.Items)),
	}
	if r.styles {
		out.Styles = map[string]jsonStyle{}
	}
	for _, it := range dl.Items {
		out.Items = append(out.Items, toJSONItem(it))
		if r.styles && it.Style != nil && it.Style.Name != "" {
			out.Styles[it.Style.Name] = toJSONStyle(it.Style)
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal draw list")
	}
	return data, nil
}

func toJSONItem(it render.Item) jsonItem {
	b := it.Crumb.Bounds()
	out := jsonItem{
		Crumb:  int(it.ID),
		Kind:   it.Crumb.Kind().String(),
		Scale:  it.Transform.Scale,
		Bounds: jsonBounds{X: b.Min.X, Y: b.Min.Y, W: b.W, H: b.H},
	}
	if it.Style != nil {
		out.Style = it.Style.Name
	}
	pts := func(ps ...geom.Point) {
		for _, p := range ps {
			out.Points = append(out.Points, [2]float64{p.X, p.Y})
		}
	}
	switch c := it.Crumb.(type) {
	case scene.Line:
		pts(c.From, c.To)
	case scene.Circle:
		pts(c.Center)
		out.Radius = c.Radius
	case scene.Pin:
		pts(c.Center)
		out.Radius = c.Radius
	case scene.RoundRect:
		out.Radius = c.Radius
	case scene.Arc:
		pts(c.Center)
		out.Radius, out.Start, out.Sweep = c.Radius, c.Start, c.Sweep
	case scene.Path:
		for _, s := range c.Segs {
			pts(s.Points()...)
		}
	case scene.Text:
		pts(c.At)
		out.Text, out.Upper, out.Lower = c.Text, c.Upper, c.Lower
	}
	return out
}

func toJSONStyle(st *theme.Style) jsonStyle {
	var out jsonStyle
	if st.Stroke != nil {
		out.Stroke = st.Stroke.Paint.String()
		out.StrokeWidth = st.Stroke.Width
		out.Dash = st.Stroke.Dash
	}
	if st.Fill != nil {
		out.Fill = st.Fill.Paint.String()
		out.FillOpacity = st.Fill.Opacity
	}
	if st.Markers.Start != nil {
		out.MarkerStart = st.MarkerStart
	}
	if st.Markers.End != nil {
		out.MarkerEnd = st.MarkerEnd
	}
	if st.Font != nil {
		out.Font = st.Font.Family
		out.FontSize = st.Font.Size
	}
	return out
}
