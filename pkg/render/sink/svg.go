package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/render"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title      string
	crumbIDs   bool
	background theme.Paint
	markers    map[string]bool
}

// WithTitle adds a <title> element.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithCrumbIDs tags every element with a data-crumb attribute holding its
// crumb id. Instanced crumbs share the id.
func WithCrumbIDs() SVGOption { return func(r *svgRenderer) { r.crumbIDs = true } }

// WithBackground paints the whole canvas before any item.
func WithBackground(p theme.Paint) SVGOption { return func(r *svgRenderer) { r.background = p } }

// RenderSVG renders the draw list as a standalone SVG document.
func RenderSVG(dl render.DrawList, opts ...SVGOption) ([]byte, error) {
	r := svgRenderer{markers: map[string]bool{}}
	for _, opt := range opts {
		opt(&r)
	}

	names, grads, err := resolveGradients(dl, r.background)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(dl.Width), num(dl.Height), num(dl.Width), num(dl.Height))
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}

	buf.WriteString("  <defs>\n")
	for _, name := range names {
		writeGradient(&buf, name, grads[name])
	}
	for _, it := range dl.Items {
		if isOpen(it.Crumb) {
			r.writeMarkers(&buf, it.Style)
		}
	}
	buf.WriteString("  </defs>\n")

	if r.background.Kind != theme.PaintNone {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", paintAttr(r.background))
	}
	for _, it := range dl.Items {
		r.writeItem(&buf, it)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func writeGradient(buf *bytes.Buffer, name string, g theme.Gradient) {
	id := svgID("grad-", name)
	switch g.Kind {
	case theme.Radial:
		fmt.Fprintf(buf, `    <radialGradient id="%s" cx="%s" cy="%s" r="%s">`+"\n", id, num(g.CX), num(g.CY), num(g.R))
	default:
		fmt.Fprintf(buf, `    <linearGradient id="%s" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
			id, num(g.X1), num(g.Y1), num(g.X2), num(g.Y2))
	}
	for _, s := range g.Stops {
		fmt.Fprintf(buf, `      <stop offset="%s" stop-color="%s"`, num(s.Offset), theme.HexString(s.Color))
		if s.Color.A != 0xff {
			fmt.Fprintf(buf, ` stop-opacity="%s"`, num(theme.Opacity(s.Color)))
		}
		buf.WriteString("/>\n")
	}
	if g.Kind == theme.Radial {
		buf.WriteString("    </radialGradient>\n")
	} else {
		buf.WriteString("    </linearGradient>\n")
	}
}

// markerID names the marker definition for a marker painted in a given
// color; the same theme marker is defined once per stroke color.
func markerID(name string, st *theme.Style) string {
	return svgID("marker-", name+"-"+markerFill(st)[1:])
}

func markerFill(st *theme.Style) string {
	if st.Stroke != nil && st.Stroke.Paint.Kind == theme.PaintColor {
		return theme.HexString(st.Stroke.Paint.Color)
	}
	return "#000000"
}

func (r *svgRenderer) writeMarkers(buf *bytes.Buffer, st *theme.Style) {
	if st == nil {
		return
	}
	for _, m := range []struct {
		name string
		def  *theme.Marker
	}{{st.MarkerStart, st.Markers.Start}, {st.MarkerEnd, st.Markers.End}} {
		if m.def == nil || m.def.Length <= 0 {
			continue
		}
		id := markerID(m.name, st)
		if r.markers[id] {
			continue
		}
		r.markers[id] = true

		l, w := m.def.Length, markerWidth(m.def)
		fmt.Fprintf(buf, `    <marker id="%s" viewBox="0 0 %s %s" refX="0" refY="%s" markerWidth="%s" markerHeight="%s" markerUnits="userSpaceOnUse" orient="auto-start-reverse">`+"\n",
			id, num(l), num(w), num(w/2), num(l), num(w))
		fill := markerFill(st)
		switch m.def.Shape {
		case theme.MarkerCircle:
			fmt.Fprintf(buf, `      <circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n", num(l/2), num(w/2), num(min(l, w)/2), fill)
		case theme.MarkerBar:
			t := min(barThickness, l)
			fmt.Fprintf(buf, `      <rect x="%s" y="0" width="%s" height="%s" fill="%s"/>`+"\n", num(l-t), num(t), num(w), fill)
		default:
			fmt.Fprintf(buf, `      <path d="M0,0 L%s,%s L0,%s z" fill="%s"/>`+"\n", num(l), num(w/2), num(w), fill)
		}
		buf.WriteString("    </marker>\n")
	}
}

func (r *svgRenderer) writeItem(buf *bytes.Buffer, it render.Item) {
	buf.WriteString("  ")
	switch c := it.Crumb.(type) {
	case scene.Line:
		fmt.Fprintf(buf, `<line x1="%s" y1="%s" x2="%s" y2="%s"`, num(c.From.X), num(c.From.Y), num(c.To.X), num(c.To.Y))
	case scene.Rect:
		fmt.Fprintf(buf, `<rect x="%s" y="%s" width="%s" height="%s"`, num(c.Min.X), num(c.Min.Y), num(c.W), num(c.H))
	case scene.RoundRect:
		fmt.Fprintf(buf, `<rect x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s"`,
			num(c.Min.X), num(c.Min.Y), num(c.W), num(c.H), num(c.Radius), num(c.Radius))
	case scene.Circle:
		fmt.Fprintf(buf, `<circle cx="%s" cy="%s" r="%s"`, num(c.Center.X), num(c.Center.Y), num(c.Radius))
	case scene.Pin:
		fmt.Fprintf(buf, `<circle class="pin" cx="%s" cy="%s" r="%s"`, num(c.Center.X), num(c.Center.Y), num(c.Radius))
	case scene.Arc:
		fmt.Fprintf(buf, `<path d="%s"`, arcData(c))
	case scene.Path:
		fmt.Fprintf(buf, `<path d="%s"`, pathData(c))
	case scene.Text:
		r.writeText(buf, it, c)
		return
	}
	if r.crumbIDs {
		fmt.Fprintf(buf, ` data-crumb="%d"`, it.ID)
	}
	writeStroke(buf, it.Style)
	if isOpen(it.Crumb) {
		buf.WriteString(` fill="none"`)
		if st := it.Style; st != nil {
			if st.Markers.Start != nil && st.Markers.Start.Length > 0 {
				fmt.Fprintf(buf, ` marker-start="url(#%s)"`, markerID(st.MarkerStart, st))
			}
			if st.Markers.End != nil && st.Markers.End.Length > 0 {
				fmt.Fprintf(buf, ` marker-end="url(#%s)"`, markerID(st.MarkerEnd, st))
			}
		}
	} else {
		writeFill(buf, it.Style)
	}
	buf.WriteString("/>\n")
}

func (r *svgRenderer) writeText(buf *bytes.Buffer, it render.Item, c scene.Text) {
	f := fontOf(it.Style)
	size := f.Size * c.FontScale()
	p, opacity := textPaint(it.Style)

	line := func(y, size float64, s string) {
		fmt.Fprintf(buf, `<text x="%s" y="%s" text-anchor="%s" dominant-baseline="central" font-family="%s" font-size="%s"`,
			num(c.At.X), num(y), c.Align, escapeXML(f.Family), num(size))
		if f.Weight != 400 {
			fmt.Fprintf(buf, ` font-weight="%d"`, f.Weight)
		}
		if r.crumbIDs {
			fmt.Fprintf(buf, ` data-crumb="%d"`, it.ID)
		}
		fmt.Fprintf(buf, ` fill="%s"`, paintAttr(p))
		if opacity < 1 {
			fmt.Fprintf(buf, ` fill-opacity="%s"`, num(opacity))
		}
		fmt.Fprintf(buf, ">%s</text>\n", escapeXML(s))
	}

	if c.Upper == "" && c.Lower == "" {
		line(c.At.Y, size, c.Text)
		return
	}
	buf.WriteString("<g>\n")
	if c.Upper != "" {
		buf.WriteString("    ")
		line(c.At.Y-size, size*spanScale, c.Upper)
	}
	buf.WriteString("    ")
	line(c.At.Y, size, c.Text)
	if c.Lower != "" {
		buf.WriteString("    ")
		line(c.At.Y+size, size*spanScale, c.Lower)
	}
	buf.WriteString("  </g>\n")
}

func writeStroke(buf *bytes.Buffer, st *theme.Style) {
	if st == nil || st.Stroke == nil || st.Stroke.Paint.Kind == theme.PaintNone {
		buf.WriteString(` stroke="none"`)
		return
	}
	s := st.Stroke
	fmt.Fprintf(buf, ` stroke="%s" stroke-width="%s"`, paintAttr(s.Paint), num(s.Width))
	if s.Paint.Kind == theme.PaintColor && s.Paint.Color.A != 0xff {
		fmt.Fprintf(buf, ` stroke-opacity="%s"`, num(theme.Opacity(s.Paint.Color)))
	}
	if len(s.Dash) > 0 {
		buf.WriteString(` stroke-dasharray="`)
		for i, d := range s.Dash {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(num(d))
		}
		buf.WriteByte('"')
	}
}

func writeFill(buf *bytes.Buffer, st *theme.Style) {
	if st == nil || st.Fill == nil || st.Fill.Paint.Kind == theme.PaintNone {
		buf.WriteString(` fill="none"`)
		return
	}
	f := st.Fill
	fmt.Fprintf(buf, ` fill="%s"`, paintAttr(f.Paint))
	opacity := f.Opacity
	if f.Paint.Kind == theme.PaintColor {
		opacity *= theme.Opacity(f.Paint.Color)
	}
	if opacity < 1 {
		fmt.Fprintf(buf, ` fill-opacity="%s"`, num(opacity))
	}
}

func paintAttr(p theme.Paint) string {
	switch p.Kind {
	case theme.PaintColor:
		return theme.HexString(p.Color)
	case theme.PaintGradient:
		return "url(#" + svgID("grad-", p.Gradient) + ")"
	}
	return "none"
}

// arcData splits the arc into pieces of at most half a turn so the
// large-arc flag is never needed.
func arcData(a scene.Arc) string {
	var buf bytes.Buffer
	p := geom.Polar(a.Center, a.Radius, a.Start)
	fmt.Fprintf(&buf, "M%s,%s", num(p.X), num(p.Y))

	n := max(1, int(math.Ceil(math.Abs(a.Sweep)/math.Pi)))
	step := a.Sweep / float64(n)
	sweep := 0
	if a.Sweep > 0 {
		sweep = 1
	}
	for i := 1; i <= n; i++ {
		q := geom.Polar(a.Center, a.Radius, a.Start+step*float64(i))
		fmt.Fprintf(&buf, " A%s,%s 0 0 %d %s,%s", num(a.Radius), num(a.Radius), sweep, num(q.X), num(q.Y))
	}
	return buf.String()
}

func pathData(c scene.Path) string {
	var buf bytes.Buffer
	for i, s := range c.Segs {
		if i > 0 {
			buf.WriteByte(' ')
		}
		switch s.Op {
		case scene.MoveTo:
			buf.WriteByte('M')
		case scene.LineTo:
			buf.WriteByte('L')
		case scene.QuadTo:
			buf.WriteByte('Q')
		case scene.CubeTo:
			buf.WriteByte('C')
		case scene.Close:
			buf.WriteByte('Z')
			continue
		}
		for j, p := range s.Points() {
			if j > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(&buf, "%s,%s", num(p.X), num(p.Y))
		}
	}
	return buf.String()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
