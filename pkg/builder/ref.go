package builder

import (
	"fmt"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

// RefKind tags the state of a Ref.
type RefKind uint8

const (
	// RefNth names the Nth crumb reference of a group.
	RefNth RefKind = iota
	// RefCrumb names a crumb directly.
	RefCrumb
	// RefResolved holds resolved anchor geometry.
	RefResolved
)

// Ref is a deferred anchor reference. It is recorded symbolically while a
// builder is assembled and resolved in place against a scene by Build.
type Ref struct {
	Kind  RefKind
	Group scene.GroupID
	Index int
	Crumb scene.CrumbID

	// Set once resolved. Transform and Style come from the group's crumb
	// reference; a direct crumb reference uses the identity and no style.
	Transform geom.Transform
	Style     theme.StyleID
	Center    geom.Point
	Radius    float64
	Shape     scene.Crumb
}

// Nth refers to the index-th crumb reference of group g.
func Nth(g scene.GroupID, index int) Ref {
	return Ref{Kind: RefNth, Group: g, Index: index}
}

// CrumbRef refers to crumb id directly.
func CrumbRef(id scene.CrumbID) Ref {
	return Ref{Kind: RefCrumb, Crumb: id}
}

// Resolve looks the reference up in s and records the anchor geometry. The
// target must be a circle or a pin.
func (r *Ref) Resolve(s *scene.Scene) error {
	switch r.Kind {
	case RefResolved:
		return nil
	case RefNth:
		g, err := s.Group(r.Group)
		if err != nil {
			return err
		}
		cr, ok := g.CrumbRef(r.Index)
		if !ok {
			return errors.New(errors.ErrCodeCrumbMissing, "group %d has no crumb reference %d", r.Group, r.Index)
		}
		r.Crumb, r.Transform, r.Style = cr.Crumb, cr.Transform, cr.Style
	case RefCrumb:
		r.Transform, r.Style = geom.Identity(), theme.NoStyle
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown reference kind %d", r.Kind)
	}

	c, err := s.Crumb(r.Crumb)
	if err != nil {
		return err
	}
	placed := c.Transformed(r.Transform)
	center, radius, ok := scene.Anchor(placed)
	if !ok {
		return errors.New(errors.ErrCodeCrumbMismatch, "%s is a %s, want a circle or pin", r, c.Kind())
	}
	r.Center, r.Radius, r.Shape = center, radius, placed
	r.Kind = RefResolved
	return nil
}

// String describes the reference for log output.
func (r Ref) String() string {
	if r.Kind == RefNth {
		return fmt.Sprintf("group %d index %d", r.Group, r.Index)
	}
	return fmt.Sprintf("crumb %d", r.Crumb)
}
