package builder

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

// Label is the text attached to one anchor. Upper and Lower are optional
// spans drawn above and below Text.
type Label struct {
	Text  string
	Upper string
	Lower string
}

// Labels builds text labels anchored at node centers.
type Labels struct {
	style   theme.StyleID
	align   scene.Align
	logger  *log.Logger
	refs    []Ref
	labels  []Label
	offsets []geom.Point
}

// NewLabels returns an empty label builder.
func NewLabels() *Labels { return &Labels{} }

// Style sets the style of emitted labels.
func (l *Labels) Style(id theme.StyleID) *Labels { l.style = id; return l }

// Align sets the horizontal alignment of emitted labels.
func (l *Labels) Align(a scene.Align) *Labels { l.align = a; return l }

// Logger sets the logger issues are reported to. The default is log.Default().
func (l *Labels) Logger(lg *log.Logger) *Labels { l.logger = lg; return l }

// FromGroup declares one slot per index, anchored at that crumb reference of g.
func (l *Labels) FromGroup(g scene.GroupID, indices ...int) *Labels {
	for _, i := range indices {
		l.refs = append(l.refs, Nth(g, i))
	}
	return l
}

// Crumb declares a slot anchored at crumb id.
func (l *Labels) Crumb(id scene.CrumbID) *Labels {
	l.refs = append(l.refs, CrumbRef(id))
	return l
}

// Texts appends per-slot plain labels, in slot order.
func (l *Labels) Texts(texts ...string) *Labels {
	for _, t := range texts {
		l.labels = append(l.labels, Label{Text: t})
	}
	return l
}

// With appends per-slot labels with optional spans, in slot order.
func (l *Labels) With(labels ...Label) *Labels {
	l.labels = append(l.labels, labels...)
	return l
}

// Offsets appends per-slot offsets from the anchor center, in slot order.
func (l *Labels) Offsets(offsets ...geom.Point) *Labels {
	l.offsets = append(l.offsets, offsets...)
	return l
}

// Build resolves every slot against s and emits one text crumb per slot
// that has both a resolvable anchor and a label.
func (l *Labels) Build(s *scene.Scene) Result {
	b := newBatch("labels", s, l.logger)
	if len(l.labels) > len(l.refs) {
		b.overflow(errors.ErrCodeIndexOverflow, "labels", len(l.labels), len(l.refs))
	}
	if len(l.offsets) > len(l.refs) {
		b.overflow(errors.ErrCodeIndexOverflow, "offsets", len(l.offsets), len(l.refs))
	}
	for i := range l.refs {
		if i >= len(l.labels) {
			b.issue(errors.New(errors.ErrCodeInvalidInput, "slot %d (%s) has no label", i, l.refs[i]))
			continue
		}
		ref := &l.refs[i]
		if err := ref.Resolve(s); err != nil {
			b.issue(err)
			continue
		}
		var off geom.Point
		if i < len(l.offsets) {
			off = l.offsets[i]
		}
		lb := l.labels[i]
		b.emit(scene.Text{
			At:    ref.Center.Add(off),
			Text:  lb.Text,
			Upper: lb.Upper,
			Lower: lb.Lower,
			Align: l.align,
		}, l.style)
	}
	return b.finish()
}
