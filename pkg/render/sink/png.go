package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/render"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background color.Color
	rsvg       bool
	svgOpts    []SVGOption
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGBackground sets the canvas color (default white).
func WithPNGBackground(c color.Color) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// WithRSVG renders through SVG and rsvg-convert instead of the native
// rasterizer, passing opts to the SVG renderer.
func WithRSVG(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.rsvg = true; r.svgOpts = opts }
}

// RenderPNG renders the draw list as PNG.
func RenderPNG(dl render.DrawList, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, background: color.White}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", r.scale)
	}

	if r.rsvg {
		svg, err := RenderSVG(dl, r.svgOpts...)
		if err != nil {
			return nil, err
		}
		return render.ToPNG(svg, r.scale)
	}

	img, err := Rasterize(dl, r.scale, r.background)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Rasterize paints the draw list into a new image scaled by scale.
func Rasterize(dl render.DrawList, scale float64, background color.Color) (*image.RGBA, error) {
	_, grads, err := resolveGradients(dl)
	if err != nil {
		return nil, err
	}

	w := max(1, int(math.Ceil(dl.Width*scale)))
	h := max(1, int(math.Ceil(dl.Height*scale)))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	}

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	ras := &raster{
		img:    img,
		scale:  scale,
		grads:  grads,
		filler: rasterx.NewFiller(w, h, scanner),
		dasher: rasterx.NewDasher(w, h, scanner),
		text:   newTextDrawer(),
	}
	for _, it := range dl.Items {
		if err := ras.item(it); err != nil {
			return nil, err
		}
	}
	return img, nil
}

type raster struct {
	img    *image.RGBA
	scale  float64
	grads  map[string]theme.Gradient
	filler *rasterx.Filler
	dasher *rasterx.Dasher
	text   *textDrawer
}

// pather is the path-building half of rasterx.Filler and rasterx.Dasher.
type pather interface {
	Start(a fixed.Point26_6)
	Line(b fixed.Point26_6)
	QuadBezier(b, c fixed.Point26_6)
	CubeBezier(b, c, d fixed.Point26_6)
	Stop(closeLoop bool)
}

func (r *raster) fx(p geom.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * r.scale * 64), Y: fixed.Int26_6(p.Y * r.scale * 64)}
}

func (r *raster) item(it render.Item) error {
	st := it.Style
	if t, ok := it.Crumb.(scene.Text); ok {
		p, opacity := textPaint(st)
		return r.text.draw(r.img, t, fontOf(st), r.solid(p, opacity), r.scale)
	}

	open := isOpen(it.Crumb)
	if !open && st != nil && st.Fill != nil && st.Fill.Paint.Kind != theme.PaintNone {
		r.filler.Clear()
		r.trace(r.filler, it.Crumb)
		r.setPaint(r.filler.Scanner, st.Fill.Paint, st.Fill.Opacity, it.Crumb.Bounds())
		r.filler.Draw()
	}

	if st == nil || st.Stroke == nil || st.Stroke.Paint.Kind == theme.PaintNone || st.Stroke.Width <= 0 {
		return nil
	}
	s := st.Stroke
	dashes := make([]float64, len(s.Dash))
	for i, d := range s.Dash {
		dashes[i] = d * r.scale
	}
	r.dasher.Clear()
	r.dasher.SetStroke(fixed.Int26_6(s.Width*r.scale*64), fixed.Int26_6(4*64),
		rasterx.ButtCap, rasterx.ButtCap, rasterx.RoundGap, rasterx.Round, dashes, 0)
	r.trace(r.dasher, it.Crumb)
	r.setPaint(r.dasher.Scanner, s.Paint, 1, it.Crumb.Bounds())
	r.dasher.Draw()

	if open {
		r.markers(it.Crumb, st)
	}
	return nil
}

func (r *raster) trace(p pather, c scene.Crumb) {
	switch v := c.(type) {
	case scene.Line:
		p.Start(r.fx(v.From))
		p.Line(r.fx(v.To))
		p.Stop(false)
	case scene.Rect:
		r.polygon(p, v.Min, geom.Pt(v.Min.X+v.W, v.Min.Y), v.Bounds().Max(), geom.Pt(v.Min.X, v.Min.Y+v.H))
	case scene.RoundRect:
		r.roundRect(p, v)
	case scene.Circle:
		r.arc(p, v.Center, v.Radius, 0, 2*math.Pi)
		p.Stop(true)
	case scene.Pin:
		r.arc(p, v.Center, v.Radius, 0, 2*math.Pi)
		p.Stop(true)
	case scene.Arc:
		r.arc(p, v.Center, v.Radius, v.Start, v.Sweep)
		p.Stop(false)
	case scene.Path:
		started := false
		for _, s := range v.Segs {
			switch s.Op {
			case scene.MoveTo:
				if started {
					p.Stop(false)
				}
				p.Start(r.fx(s.Pts[0]))
				started = true
			case scene.LineTo:
				p.Line(r.fx(s.Pts[0]))
			case scene.QuadTo:
				p.QuadBezier(r.fx(s.Pts[0]), r.fx(s.Pts[1]))
			case scene.CubeTo:
				p.CubeBezier(r.fx(s.Pts[0]), r.fx(s.Pts[1]), r.fx(s.Pts[2]))
			case scene.Close:
				p.Stop(true)
				started = false
			}
		}
		if started {
			p.Stop(false)
		}
	}
}

func (r *raster) polygon(p pather, pts ...geom.Point) {
	p.Start(r.fx(pts[0]))
	for _, q := range pts[1:] {
		p.Line(r.fx(q))
	}
	p.Stop(true)
}

// arc starts a new subpath at the arc's first point and appends its cubic
// approximation.
func (r *raster) arc(p pather, c geom.Point, radius, start, sweep float64) {
	p.Start(r.fx(geom.Polar(c, radius, start)))
	r.arcTo(p, c, radius, start, sweep)
}

func (r *raster) arcTo(p pather, c geom.Point, radius, start, sweep float64) {
	for _, seg := range geom.ArcToCubics(c, radius, start, sweep) {
		p.CubeBezier(r.fx(seg[0]), r.fx(seg[1]), r.fx(seg[2]))
	}
}

func (r *raster) roundRect(p pather, v scene.RoundRect) {
	rad := min(v.Radius, v.W/2, v.H/2)
	if rad <= 0 {
		r.trace(p, scene.Rect{Min: v.Min, W: v.W, H: v.H})
		return
	}
	x0, y0 := v.Min.X, v.Min.Y
	x1, y1 := x0+v.W, y0+v.H
	p.Start(r.fx(geom.Pt(x0+rad, y0)))
	p.Line(r.fx(geom.Pt(x1-rad, y0)))
	r.arcTo(p, geom.Pt(x1-rad, y0+rad), rad, -math.Pi/2, math.Pi/2)
	p.Line(r.fx(geom.Pt(x1, y1-rad)))
	r.arcTo(p, geom.Pt(x1-rad, y1-rad), rad, 0, math.Pi/2)
	p.Line(r.fx(geom.Pt(x0+rad, y1)))
	r.arcTo(p, geom.Pt(x0+rad, y1-rad), rad, math.Pi/2, math.Pi/2)
	p.Line(r.fx(geom.Pt(x0, y0+rad)))
	r.arcTo(p, geom.Pt(x0+rad, y0+rad), rad, math.Pi, math.Pi/2)
	p.Stop(true)
}

// markers fills the start and end markers of an open crumb in the stroke
// color, extending outward from each end.
func (r *raster) markers(c scene.Crumb, st *theme.Style) {
	start, startDir, end, endDir, ok := ends(c)
	if !ok {
		return
	}
	col := r.solid(st.Stroke.Paint, 1)
	if m := st.Markers.Start; m != nil && m.Length > 0 {
		r.marker(m, start, startDir.Mul(-1), col)
	}
	if m := st.Markers.End; m != nil && m.Length > 0 {
		r.marker(m, end, endDir, col)
	}
}

// marker draws m with its base at at, pointing along dir.
func (r *raster) marker(m *theme.Marker, at, dir geom.Point, col color.Color) {
	l, w := m.Length, markerWidth(m)
	n := dir.Perp().Mul(w / 2)
	tip := at.Add(dir.Mul(l))

	r.filler.Clear()
	switch m.Shape {
	case theme.MarkerCircle:
		r.arc(r.filler, at.Add(dir.Mul(l/2)), min(l, w)/2, 0, 2*math.Pi)
		r.filler.Stop(true)
	case theme.MarkerBar:
		base := tip.Sub(dir.Mul(min(barThickness, l)))
		r.polygon(r.filler, base.Add(n), tip.Add(n), tip.Sub(n), base.Sub(n))
	default:
		r.polygon(r.filler, at.Add(n), tip, at.Sub(n))
	}
	r.filler.Scanner.SetColor(col)
	r.filler.Draw()
}

func (r *raster) solid(p theme.Paint, opacity float64) color.Color {
	switch p.Kind {
	case theme.PaintColor:
		return withOpacity(p.Color, opacity)
	case theme.PaintGradient:
		if g, ok := r.grads[p.Gradient]; ok && len(g.Stops) > 0 {
			return withOpacity(g.Stops[0].Color, opacity)
		}
	}
	return color.Black
}

// withOpacity scales the alpha of a non-premultiplied color.
func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * min(max(opacity, 0), 1)))
	return c
}

// setPaint selects the scanner color. Gradients are expressed in object
// bounding-box units and mapped onto the shape's pixel bounds.
func (r *raster) setPaint(sc rasterx.Scanner, p theme.Paint, opacity float64, bounds geom.Rect) {
	if p.Kind != theme.PaintGradient {
		sc.SetColor(r.solid(p, opacity))
		return
	}
	g := r.grads[p.Gradient]
	rg := rasterx.Gradient{
		Stops:    make([]rasterx.GradStop, len(g.Stops)),
		Matrix:   rasterx.Identity,
		Units:    rasterx.ObjectBoundingBox,
		IsRadial: g.Kind == theme.Radial,
	}
	if rg.IsRadial {
		rg.Points = [5]float64{g.CX, g.CY, g.CX, g.CY, g.R}
	} else {
		rg.Points = [5]float64{g.X1, g.Y1, g.X2, g.Y2, 0}
	}
	for i, s := range g.Stops {
		opaque := s.Color
		opaque.A = 0xff
		rg.Stops[i] = rasterx.GradStop{StopColor: opaque, Offset: s.Offset, Opacity: theme.Opacity(s.Color)}
	}
	rg.Bounds.X, rg.Bounds.Y = bounds.Min.X*r.scale, bounds.Min.Y*r.scale
	rg.Bounds.W, rg.Bounds.H = bounds.W*r.scale, bounds.H*r.scale
	sc.SetColor(rg.GetColorFunction(opacity))
}
