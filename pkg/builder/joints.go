package builder

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/joint"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

type jointSlot struct {
	from, to Ref
	spec     joint.Spec
	style    theme.StyleID
}

// Joints builds connectors between pairs of anchors.
//
//	res := builder.NewJoints().
//	    Style(edge).
//	    Line(builder.Nth(nodes, 0), builder.Nth(nodes, 1)).
//	    Arc(builder.Nth(nodes, 1), builder.Nth(nodes, 2), -120).
//	    Build(s, th)
type Joints struct {
	style  theme.StyleID
	logger *log.Logger
	slots  []jointSlot
}

// NewJoints returns an empty joint builder.
func NewJoints() *Joints { return &Joints{} }

// Style sets the style of joints declared after this call.
func (j *Joints) Style(id theme.StyleID) *Joints { j.style = id; return j }

// Logger sets the logger issues are reported to. The default is log.Default().
func (j *Joints) Logger(l *log.Logger) *Joints { j.logger = l; return j }

// Add declares a joint of any kind.
func (j *Joints) Add(from, to Ref, spec joint.Spec) *Joints {
	j.slots = append(j.slots, jointSlot{from: from, to: to, spec: spec, style: j.style})
	return j
}

// Line declares a straight joint.
func (j *Joints) Line(from, to Ref) *Joints {
	return j.Add(from, to, joint.Spec{Kind: joint.KindLine})
}

// Polyline declares a polyline joint through the given pulls.
func (j *Joints) Polyline(from, to Ref, pulls ...geom.Point) *Joints {
	return j.Add(from, to, joint.Spec{Kind: joint.KindPolyline, Pulls: pulls})
}

// Quadratic declares a quadratic curve joint.
func (j *Joints) Quadratic(from, to Ref, pull geom.Point) *Joints {
	return j.Add(from, to, joint.Spec{Kind: joint.KindQuadratic, Pulls: []geom.Point{pull}})
}

// Cubic declares a cubic curve joint.
func (j *Joints) Cubic(from, to Ref, pull0, pull1 geom.Point) *Joints {
	return j.Add(from, to, joint.Spec{Kind: joint.KindCubic, Pulls: []geom.Point{pull0, pull1}})
}

// Arc declares an arc joint with a signed radius.
func (j *Joints) Arc(from, to Ref, radius float64) *Joints {
	return j.Add(from, to, joint.Spec{Kind: joint.KindArc, Radius: radius})
}

// Build resolves both anchors of every joint against s, sizes attachment
// offsets from th, and emits one connector per joint that admits one. A nil
// th attaches joints directly to the anchor outlines, with no stroke or
// marker offsets.
func (j *Joints) Build(s *scene.Scene, th *theme.Theme) Result {
	b := newBatch("joints", s, j.logger)
	for i := range j.slots {
		slot := &j.slots[i]

		lo, hi := slot.spec.Kind.Pulls()
		if n := len(slot.spec.Pulls); n > hi {
			b.overflow(errors.ErrCodePullOverflow, slot.spec.Kind.String()+" pulls", n, hi)
			slot.spec.Pulls = slot.spec.Pulls[:hi]
		} else if n < lo {
			b.issue(errors.New(errors.ErrCodeInvalidInput, "joint %d: %s needs %d pulls, got %d", i, slot.spec.Kind, lo, n))
			continue
		}

		a, ok := j.anchor(b, s, th, &slot.from)
		if !ok {
			continue
		}
		c, ok := j.anchor(b, s, th, &slot.to)
		if !ok {
			continue
		}

		conn, ok := joint.Connect(a, c, joint.EndsOf(styleOf(th, slot.style)), slot.spec)
		if !ok {
			b.issue(errors.New(errors.ErrCodeInvalidInput, "joint %d: no %s connector between %s and %s",
				i, slot.spec.Kind, slot.from, slot.to))
			continue
		}
		b.emit(conn.Crumb(), slot.style)
	}
	return b.finish()
}

func (j *Joints) anchor(b *batch, s *scene.Scene, th *theme.Theme, ref *Ref) (joint.Anchor, bool) {
	if err := ref.Resolve(s); err != nil {
		b.issue(err)
		return joint.Anchor{}, false
	}
	return joint.Anchor{
		Center:      ref.Center,
		Radius:      ref.Radius,
		StrokeWidth: styleOf(th, ref.Style).StrokeWidth(),
	}, true
}

func styleOf(th *theme.Theme, id theme.StyleID) *theme.Style {
	if th == nil {
		return nil
	}
	return th.Style(id)
}
