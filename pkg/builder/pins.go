package builder

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

// Pins builds pin markers: small circles placed at an offset from an
// anchor's center.
//
//	res := builder.NewPins(4).
//	    Style(pinStyle).
//	    FromGroup(nodes, 0, 2).
//	    Offsets(geom.Pt(0, -20), geom.Pt(20, 0)).
//	    Build(s)
type Pins struct {
	radius  float64
	style   theme.StyleID
	logger  *log.Logger
	refs    []Ref
	offsets []geom.Point
}

// NewPins returns a pin builder emitting pins of the given radius.
func NewPins(radius float64) *Pins {
	return &Pins{radius: radius}
}

// Style sets the style of emitted pins.
func (p *Pins) Style(id theme.StyleID) *Pins { p.style = id; return p }

// Logger sets the logger issues are reported to. The default is log.Default().
func (p *Pins) Logger(l *log.Logger) *Pins { p.logger = l; return p }

// FromGroup declares one slot per index, anchored at that crumb reference of g.
func (p *Pins) FromGroup(g scene.GroupID, indices ...int) *Pins {
	for _, i := range indices {
		p.refs = append(p.refs, Nth(g, i))
	}
	return p
}

// Crumb declares a slot anchored at crumb id.
func (p *Pins) Crumb(id scene.CrumbID) *Pins {
	p.refs = append(p.refs, CrumbRef(id))
	return p
}

// Offsets appends per-slot offsets from the anchor center, in slot order.
// Slots without an offset pin the center.
func (p *Pins) Offsets(offsets ...geom.Point) *Pins {
	p.offsets = append(p.offsets, offsets...)
	return p
}

// Build resolves every slot against s and emits one pin per resolvable
// slot into a new group.
func (p *Pins) Build(s *scene.Scene) Result {
	b := newBatch("pins", s, p.logger)
	if len(p.offsets) > len(p.refs) {
		b.overflow(errors.ErrCodeIndexOverflow, "offsets", len(p.offsets), len(p.refs))
	}
	for i := range p.refs {
		ref := &p.refs[i]
		if err := ref.Resolve(s); err != nil {
			b.issue(err)
			continue
		}
		var off geom.Point
		if i < len(p.offsets) {
			off = p.offsets[i]
		}
		b.emit(scene.Pin{Center: ref.Center.Add(off), Radius: p.radius}, p.style)
	}
	return b.finish()
}
