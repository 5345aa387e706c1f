// Package builder provides two-phase constructors that derive new crumbs
// from existing anchors: pins, labels and joints.
//
// # Two Phases
//
// While a builder is assembled it only records symbolic references: "the
// Nth crumb reference of group G" ([Nth]) or an explicit crumb ([CrumbRef]),
// together with per-slot data such as offsets or label text. Nothing in the
// scene is read or written.
//
// Build resolves every reference in place, checks that the target is a
// circle or a pin, and emits the derived crumbs into one new group whose id
// is returned in [Result.Group]. Coordinates of emitted crumbs are in the
// space of the anchor's group, so the new group is normally referenced from
// the same parent with the same transform.
//
// # Issues
//
// Problems with individual references never abort a batch:
//
//   - a dangling group or index (GROUP_MISSING, CRUMB_MISSING) skips that slot
//   - a non-circular anchor (CRUMB_MISMATCH) skips that slot
//   - more offsets or labels than slots (INDEX_OVERFLOW) ignores the extras
//   - more pulls than a joint kind takes (PULL_OVERFLOW) ignores the extras
//
// Every issue is logged with charmbracelet/log and recorded in
// [Result.Issues]; [Result.Err] joins them.
package builder
