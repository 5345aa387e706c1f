package render

import (
	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

// Item is one element of a compiled draw list. Crumb is already mapped into
// canvas space; Transform is kept for backends that need the scale (stroke
// widths are never scaled, text sizes are).
type Item struct {
	ID        scene.CrumbID
	Crumb     scene.Crumb
	Transform geom.Transform
	Style     *theme.Style
}

// DrawList is everything a backend needs to paint a scene: the canvas size,
// the items in paint order and the theme their styles came from.
type DrawList struct {
	Width  float64
	Height float64
	Items  []Item
	Theme  *theme.Theme
}

// Options control compilation.
type Options struct {
	// All includes hidden layers and groups.
	All bool
	// Root is applied to every item before its own transform. The zero
	// value is treated as the identity.
	Root geom.Transform
}

func (o Options) root() geom.Transform {
	if o.Root == (geom.Transform{}) {
		return geom.Identity()
	}
	return o.Root
}

// Compile flattens s and binds every entry to its resolved style in th.
//
// Styles are bound by pointer: switching th's variation after Compile
// changes what the returned items paint with.
func Compile(s *scene.Scene, th *theme.Theme, opts Options) (DrawList, error) {
	var (
		entries []scene.Entry
		err     error
	)
	if opts.All {
		entries, err = s.Flatten(opts.root())
	} else {
		entries, err = s.FlattenVisible(opts.root())
	}
	if err != nil {
		return DrawList{}, err
	}

	w, h := s.Size()
	dl := DrawList{Width: w, Height: h, Theme: th, Items: make([]Item, 0, len(entries))}
	for _, e := range entries {
		c, err := s.Crumb(e.Crumb)
		if err != nil {
			return DrawList{}, err
		}
		dl.Items = append(dl.Items, Item{
			ID:        e.Crumb,
			Crumb:     c.Transformed(e.Transform),
			Transform: e.Transform,
			Style:     th.Style(e.Style),
		})
	}
	return dl, nil
}

// Bounds returns the union of all item bounds.
func (dl DrawList) Bounds() geom.Rect {
	var r geom.Rect
	for _, it := range dl.Items {
		r = r.Union(it.Crumb.Bounds())
	}
	return r
}
