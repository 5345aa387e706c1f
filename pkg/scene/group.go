package scene

import (
	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/theme"
)

// RefKind distinguishes crumb references from group references.
type RefKind uint8

const (
	RefCrumb RefKind = iota
	RefGroup
)

// Ref is one entry of a group: a reference to a crumb or to another group,
// with the transform that maps the target into the group's space and an
// optional style.
//
// A style on a group reference is inherited by every crumb below it that
// has no style of its own.
type Ref struct {
	Kind      RefKind
	Crumb     CrumbID
	Group     GroupID
	Style     theme.StyleID
	Transform geom.Transform
}

// Group is an ordered container of references. Crumb and group references
// share one list so insertion order across both kinds is kept.
//
// The zero value is an empty, visible group ready to use.
type Group struct {
	Name   string
	Hidden bool
	Refs   []Ref
}

// NewGroup returns an empty group with the given name.
func NewGroup(name string) *Group {
	return &Group{Name: name}
}

// AddCrumb appends a crumb reference and returns g.
func (g *Group) AddCrumb(id CrumbID, style theme.StyleID, tf geom.Transform) *Group {
	g.Refs = append(g.Refs, Ref{Kind: RefCrumb, Crumb: id, Style: style, Transform: tf})
	return g
}

// AddChild appends a group reference and returns g.
func (g *Group) AddChild(id GroupID, style theme.StyleID, tf geom.Transform) *Group {
	g.Refs = append(g.Refs, Ref{Kind: RefGroup, Group: id, Style: style, Transform: tf})
	return g
}

// CrumbRef returns the index-th crumb reference, counting crumb references
// only. Builders address anchors this way.
func (g *Group) CrumbRef(index int) (Ref, bool) {
	if index < 0 {
		return Ref{}, false
	}
	n := 0
	for _, r := range g.Refs {
		if r.Kind != RefCrumb {
			continue
		}
		if n == index {
			return r, true
		}
		n++
	}
	return Ref{}, false
}

// CrumbRefs returns the crumb references in insertion order.
func (g *Group) CrumbRefs() []Ref {
	var out []Ref
	for _, r := range g.Refs {
		if r.Kind == RefCrumb {
			out = append(out, r)
		}
	}
	return out
}

// Children returns the referenced group ids in insertion order, including
// duplicates.
func (g *Group) Children() []GroupID {
	var out []GroupID
	for _, r := range g.Refs {
		if r.Kind == RefGroup {
			out = append(out, r.Group)
		}
	}
	return out
}

func (g *Group) clone() *Group {
	c := *g
	c.Refs = append([]Ref(nil), g.Refs...)
	return &c
}
