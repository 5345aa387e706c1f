package scene

import (
	"sort"

	"github.com/google/uuid"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/observability"
	"github.com/matzehuels/stipple/pkg/theme"
)

// CrumbID identifies a crumb in a Scene's arena.
type CrumbID int

// GroupID identifies a group in a Scene's arena.
type GroupID int

// LayerID identifies a layer (root) of a Scene.
type LayerID int

// Layer is a root of the group graph. Layers paint in ascending Z; equal Z
// keeps insertion order.
type Layer struct {
	ID      LayerID
	Group   GroupID
	Z       int
	Visible bool
}

// Scene is a diagram: a canvas size, an append-only arena of crumbs and
// groups, and the layers traversal starts from.
//
// Ids are assigned from arena length and never reused. A group can never
// contain itself, directly or through other groups.
//
// The zero value is not usable; use New. Scene is not safe for concurrent
// use without external synchronization.
type Scene struct {
	id            uuid.UUID
	width, height float64
	crumbs        []Crumb
	groups        []*Group
	layers        []Layer
	version       uint64
}

// New creates an empty scene with the given canvas size.
func New(width, height float64) *Scene {
	return &Scene{id: uuid.New(), width: width, height: height}
}

// ID returns the scene's identity. It is stable for the scene's lifetime.
func (s *Scene) ID() uuid.UUID { return s.id }

// Size returns the canvas size.
func (s *Scene) Size() (width, height float64) { return s.width, s.height }

// Revision increases on every mutation.
func (s *Scene) Revision() uint64 { return s.version }

// CrumbCount returns the number of crumbs in the arena.
func (s *Scene) CrumbCount() int { return len(s.crumbs) }

// GroupCount returns the number of groups in the arena.
func (s *Scene) GroupCount() int { return len(s.groups) }

// AddCrumb appends c to the arena.
func (s *Scene) AddCrumb(c Crumb) CrumbID {
	s.crumbs = append(s.crumbs, c)
	s.version++
	return CrumbID(len(s.crumbs) - 1)
}

// AddGroup appends a copy of g to the arena. Every crumb and group it
// references must already exist.
func (s *Scene) AddGroup(g Group) (GroupID, error) {
	for _, r := range g.Refs {
		if err := s.checkRef(r); err != nil {
			return 0, err
		}
	}
	s.groups = append(s.groups, g.clone())
	s.version++
	return GroupID(len(s.groups) - 1), nil
}

// Crumb returns the crumb with the given id.
func (s *Scene) Crumb(id CrumbID) (Crumb, error) {
	if id < 0 || int(id) >= len(s.crumbs) {
		return nil, errors.New(errors.ErrCodeCrumbMissing, "crumb %d does not exist", id)
	}
	return s.crumbs[id], nil
}

// Group returns a copy of the group with the given id. Changing the copy
// does not change the scene; use AddCrumbRef, AddGroupRef and
// SetGroupHidden.
func (s *Scene) Group(id GroupID) (Group, error) {
	g, err := s.group(id)
	if err != nil {
		return Group{}, err
	}
	return *g.clone(), nil
}

func (s *Scene) group(id GroupID) (*Group, error) {
	if id < 0 || int(id) >= len(s.groups) {
		return nil, errors.New(errors.ErrCodeGroupMissing, "group %d does not exist", id)
	}
	return s.groups[id], nil
}

// AddCrumbRef appends a crumb reference to an existing group.
func (s *Scene) AddCrumbRef(group GroupID, crumb CrumbID, style theme.StyleID, tf geom.Transform) error {
	g, err := s.group(group)
	if err != nil {
		return err
	}
	if _, err := s.Crumb(crumb); err != nil {
		return err
	}
	g.AddCrumb(crumb, style, tf)
	s.version++
	return nil
}

// AddGroupRef appends a reference to child into parent. The reference is
// rejected with GROUP_REUSE if parent is child or is reachable from child,
// and the graph is left unchanged.
func (s *Scene) AddGroupRef(parent, child GroupID, style theme.StyleID, tf geom.Transform) error {
	p, err := s.group(parent)
	if err != nil {
		return err
	}
	if _, err := s.group(child); err != nil {
		return err
	}
	if parent == child || s.reaches(child, parent) {
		observability.Scene().OnReferenceRejected(int(parent), int(child))
		return errors.New(errors.ErrCodeGroupReuse, "group %d would contain itself through group %d", parent, child)
	}
	p.AddChild(child, style, tf)
	s.version++
	return nil
}

// reaches reports whether target is reachable from start by following group
// references. Depth-first with white/gray/black coloring; every group is
// visited at most once.
func (s *Scene) reaches(start, target GroupID) bool {
	const (
		white = iota
		gray
		black
	)
	color := make([]uint8, len(s.groups))

	var dfs func(id GroupID) bool
	dfs = func(id GroupID) bool {
		if id == target {
			return true
		}
		color[id] = gray
		for _, child := range s.groups[id].Children() {
			if child < 0 || int(child) >= len(s.groups) {
				continue
			}
			if color[child] == white && dfs(child) {
				return true
			}
		}
		color[id] = black
		return false
	}
	return dfs(start)
}

// SetGroupHidden hides or shows a group and its subtree for visible
// traversal.
func (s *Scene) SetGroupHidden(id GroupID, hidden bool) error {
	g, err := s.group(id)
	if err != nil {
		return err
	}
	g.Hidden = hidden
	s.version++
	return nil
}

// AddLayer makes group a root painted at depth z.
func (s *Scene) AddLayer(group GroupID, z int) (LayerID, error) {
	if _, err := s.group(group); err != nil {
		return 0, err
	}
	id := LayerID(len(s.layers))
	s.layers = append(s.layers, Layer{ID: id, Group: group, Z: z, Visible: true})
	s.version++
	return id, nil
}

// SetLayerVisible shows or hides a layer for visible traversal.
func (s *Scene) SetLayerVisible(id LayerID, visible bool) error {
	if id < 0 || int(id) >= len(s.layers) {
		return errors.New(errors.ErrCodeLayerMissing, "layer %d does not exist", id)
	}
	s.layers[id].Visible = visible
	s.version++
	return nil
}

// Layers returns the layers in paint order: ascending Z, ties in insertion
// order.
func (s *Scene) Layers() []Layer {
	out := append([]Layer(nil), s.layers...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

func (s *Scene) checkRef(r Ref) error {
	switch r.Kind {
	case RefCrumb:
		_, err := s.Crumb(r.Crumb)
		return err
	case RefGroup:
		_, err := s.group(r.Group)
		return err
	}
	return errors.New(errors.ErrCodeInvalidInput, "unknown reference kind %d", r.Kind)
}
