package scene

import (
	"time"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/observability"
	"github.com/matzehuels/stipple/pkg/theme"
)

// Entry is one element of a draw list: a crumb, the transform that maps it
// into canvas space, and its effective style.
type Entry struct {
	Crumb     CrumbID
	Transform geom.Transform
	Style     theme.StyleID
}

// Flatten walks every layer in paint order and returns the draw list.
//
// Each crumb reference reachable from a layer yields one entry, so a group
// referenced twice yields its crumbs twice. Entries appear in reference
// insertion order, depth-first. The transform of an entry is
// root ∘ T1 ∘ ... ∘ Tn ∘ Tcrumb along the path of references that reached it.
// The style of an entry is the crumb reference's style, else the style of
// the nearest enclosing group reference that has one, else theme.NoStyle.
//
// A dangling id aborts the traversal with GROUP_MISSING or CRUMB_MISSING.
func (s *Scene) Flatten(root geom.Transform) ([]Entry, error) {
	return s.flatten(root, false)
}

// FlattenVisible is Flatten restricted to visible layers, skipping hidden
// groups together with their subtrees.
func (s *Scene) FlattenVisible(root geom.Transform) ([]Entry, error) {
	return s.flatten(root, true)
}

type frame struct {
	refs  []Ref
	next  int
	tf    geom.Transform
	style theme.StyleID
}

func (s *Scene) flatten(root geom.Transform, visibleOnly bool) (out []Entry, err error) {
	start := time.Now()
	defer func() {
		observability.Scene().OnFlatten(len(out), visibleOnly, time.Since(start), err)
	}()

	var stack []frame
	for _, l := range s.Layers() {
		if visibleOnly && !l.Visible {
			continue
		}
		g, err := s.group(l.Group)
		if err != nil {
			return nil, err
		}
		if visibleOnly && g.Hidden {
			continue
		}
		stack = append(stack[:0], frame{refs: g.Refs, tf: root})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next >= len(top.refs) {
				stack = stack[:len(stack)-1]
				continue
			}
			r := top.refs[top.next]
			top.next++

			style := r.Style
			if style == theme.NoStyle {
				style = top.style
			}
			tf := top.tf.Mul(r.Transform)

			switch r.Kind {
			case RefCrumb:
				if _, err := s.Crumb(r.Crumb); err != nil {
					return nil, err
				}
				out = append(out, Entry{Crumb: r.Crumb, Transform: tf, Style: style})
			case RefGroup:
				child, err := s.group(r.Group)
				if err != nil {
					return nil, err
				}
				if visibleOnly && child.Hidden {
					continue
				}
				stack = append(stack, frame{refs: child.Refs, tf: tf, style: style})
			default:
				return nil, errors.New(errors.ErrCodeInvalidInput, "unknown reference kind %d", r.Kind)
			}
		}
	}
	return out, nil
}
