// Package scene provides the diagram scene graph: an append-only arena of
// geometric primitives ("crumbs"), groups that reference crumbs and other
// groups, and the traversal that flattens the graph into a draw list.
//
// # Arena
//
// [Scene.AddCrumb] and [Scene.AddGroup] append to the arena and return
// stable ids that are never reused. Nothing is ever removed; diagrams are
// rebuilt, not edited.
//
// # Group Graph
//
// A [Group] holds an ordered list of [Ref] values. Each reference carries a
// similarity transform (translate + uniform scale) and an optional
// [theme.StyleID]. One group may be referenced from several parents with
// different transforms (instancing).
//
// The graph must stay acyclic. [Scene.AddGroupRef] checks reachability
// before inserting and rejects a reference that would make a group contain
// itself with GROUP_REUSE.
//
// # Layers
//
// A [Layer] makes a group a root of traversal. Layers paint in ascending
// z-index with insertion order breaking ties, and can be hidden.
//
// # Traversal
//
// [Scene.Flatten] produces the ordered draw list every render backend
// consumes:
//
//	entries, err := s.Flatten(geom.Identity())
//	for _, e := range entries {
//	    c, _ := s.Crumb(e.Crumb)
//	    draw(c.Transformed(e.Transform), th.Style(e.Style))
//	}
//
// [Scene.FlattenVisible] does the same but skips hidden layers and hidden
// groups. Both use an explicit stack, so depth is bounded only by memory.
package scene
