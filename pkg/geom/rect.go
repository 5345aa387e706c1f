package geom

// Rect is an axis-aligned rectangle given by its minimum corner and size.
type Rect struct {
	Min  Point
	W, H float64
}

// Max returns the maximum corner.
func (r Rect) Max() Point { return Point{r.Min.X + r.W, r.Min.Y + r.H} }

// Center returns the center of r.
func (r Rect) Center() Point { return Point{r.Min.X + r.W/2, r.Min.Y + r.H/2} }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Union returns the smallest rect containing r and o. Empty operands are
// ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	minX := min(r.Min.X, o.Min.X)
	minY := min(r.Min.Y, o.Min.Y)
	maxX := max(r.Max().X, o.Max().X)
	maxY := max(r.Max().Y, o.Max().Y)
	return Rect{Min: Point{minX, minY}, W: maxX - minX, H: maxY - minY}
}

// Transform maps r through t. Similarity transforms keep rects axis-aligned.
func (r Rect) Transform(t Transform) Rect {
	p := t.Apply(r.Min)
	w, h := t.ApplyLen(r.W), t.ApplyLen(r.H)
	if w < 0 {
		p.X, w = p.X+w, -w
	}
	if h < 0 {
		p.Y, h = p.Y+h, -h
	}
	return Rect{Min: p, W: w, H: h}
}

// RectFromPoints returns the bounding rect of pts.
func RectFromPoints(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}
	return Rect{Min: lo, W: hi.X - lo.X, H: hi.Y - lo.Y}
}
