package theme

import (
	"strings"

	"github.com/matzehuels/stipple/pkg/errors"
)

// Theme owns the style table and the tables styles resolve against.
//
// Strokes and fills cascade through variations; markers, fonts and gradients
// live in flat tables. Every mutation re-resolves the whole style table in
// place, so pointers handed out by Style stay valid and observe the change.
//
// A Theme is not safe for concurrent mutation.
type Theme struct {
	Name string

	original  *Variation
	markers   map[string]Marker
	fonts     map[string]Font
	gradients map[string]Gradient

	styles  []*Style // index 0 is the default style
	byName  map[string]StyleID
	active  []string
	chain   []*Variation
	version uint64
}

// New returns a theme whose fallback for unresolvable names is def.
// The resolved fields of def are used verbatim; its name fields are ignored.
func New(def Style) *Theme {
	d := def
	d.ID = NoStyle
	if d.Name == "" {
		d.Name = "default"
	}
	return &Theme{
		original:  NewVariation(),
		markers:   make(map[string]Marker),
		fonts:     make(map[string]Font),
		gradients: make(map[string]Gradient),
		styles:    []*Style{&d},
		byName:    make(map[string]StyleID),
	}
}

// WithStrokes adds or replaces original stroke values.
func (t *Theme) WithStrokes(strokes map[string]Stroke) *Theme {
	for k, v := range strokes {
		t.original.Stroke(k, v)
	}
	return t.changed()
}

// WithFills adds or replaces original fill values.
func (t *Theme) WithFills(fills map[string]Fill) *Theme {
	for k, v := range fills {
		t.original.Fill(k, v)
	}
	return t.changed()
}

// WithMarkers adds or replaces markers.
func (t *Theme) WithMarkers(markers map[string]Marker) *Theme {
	for k, v := range markers {
		t.markers[k] = v
	}
	return t.changed()
}

// WithFonts adds or replaces fonts.
func (t *Theme) WithFonts(fonts map[string]Font) *Theme {
	for k, v := range fonts {
		t.fonts[k] = v
	}
	return t.changed()
}

// WithGradients adds or replaces gradient definitions. Gradients are not
// validated against paints; a paint naming an undefined gradient fails when
// it is rendered.
func (t *Theme) WithGradients(gradients map[string]Gradient) *Theme {
	for k, v := range gradients {
		t.gradients[k] = v
	}
	return t.changed()
}

// WithVariation attaches a top-level variation.
func (t *Theme) WithVariation(name string, v *Variation) *Theme {
	t.original.Child(name, v)
	return t.changed()
}

// WithStyles declares styles. Redeclaring an existing name updates that
// style's references in place and keeps its StyleID.
func (t *Theme) WithStyles(specs ...StyleSpec) *Theme {
	for _, sp := range specs {
		id, ok := t.byName[sp.Name]
		if !ok {
			id = StyleID(len(t.styles))
			t.styles = append(t.styles, &Style{ID: id, Name: sp.Name})
			t.byName[sp.Name] = id
		}
		s := t.styles[id]
		s.StrokeName = sp.Stroke
		s.FillName = sp.Fill
		s.MarkerStart = sp.MarkerStart
		s.MarkerEnd = sp.MarkerEnd
		s.FontName = sp.Font
	}
	return t.changed()
}

// StyleID looks up a style by name.
func (t *Theme) StyleID(name string) (StyleID, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// MustStyleID is like StyleID but panics when the name is unknown.
func (t *Theme) MustStyleID(name string) StyleID {
	id, ok := t.byName[name]
	if !ok {
		panic("theme: unknown style " + name)
	}
	return id
}

// Style returns the style for id. NoStyle and unknown ids return the
// default style.
func (t *Theme) Style(id StyleID) *Style {
	if id <= NoStyle || int(id) >= len(t.styles) {
		return t.styles[0]
	}
	return t.styles[id]
}

// Default returns the default style.
func (t *Theme) Default() *Style { return t.styles[0] }

// Styles returns the declared styles in id order, excluding the default.
func (t *Theme) Styles() []*Style {
	return append([]*Style(nil), t.styles[1:]...)
}

// Marker looks up a marker by name.
func (t *Theme) Marker(name string) (Marker, bool) {
	m, ok := t.markers[name]
	return m, ok
}

// MarkerNames returns the defined marker names in sorted order.
func (t *Theme) MarkerNames() []string { return sortedKeys(t.markers) }

// Variations lists every variation as a dotted path, depth-first in name
// order.
func (t *Theme) Variations() []string {
	return t.original.paths("", nil)
}

// Active returns the active variation path.
func (t *Theme) Active() []string {
	return append([]string(nil), t.active...)
}

// Revision increases on every mutation, including variation switches.
func (t *Theme) Revision() uint64 { return t.version }

// UseVariation makes path the active variation and re-resolves every style.
// An unknown name in path fails with VARIATION_MISSING and leaves the
// current resolution untouched.
func (t *Theme) UseVariation(path []string) error {
	chain, missing, ok := t.original.chain(path)
	if !ok {
		return errors.New(errors.ErrCodeVariationMissing, "variation %q not found in path %q",
			missing, strings.Join(path, "."))
	}
	t.active = append([]string(nil), path...)
	t.chain = chain
	t.resolveAll()
	return nil
}

// UseOriginalVariation is UseVariation(nil).
func (t *Theme) UseOriginalVariation() {
	_ = t.UseVariation(nil)
}

// ParseVariationPath splits a dotted variation path. The empty string is
// the original variation.
func ParseVariationPath(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ".")
}

// changed re-walks the active path, since WithVariation may have replaced a
// variation on it, then re-resolves. A path that no longer exists falls
// back to the original variation.
func (t *Theme) changed() *Theme {
	chain, _, ok := t.original.chain(t.active)
	if !ok {
		t.active, chain = nil, nil
	}
	t.chain = chain
	return t.resolveAll()
}

func (t *Theme) resolveAll() *Theme {
	for _, s := range t.styles[1:] {
		t.resolve(s)
	}
	t.version++
	return t
}

func (t *Theme) resolve(s *Style) {
	def := t.styles[0]
	s.Stroke = t.lookupStroke(s.StrokeName, def.Stroke)
	s.Fill = t.lookupFill(s.FillName, def.Fill)
	s.Markers = MarkerSuite{
		Start: lookupFlat(t.markers, s.MarkerStart, def.Markers.Start),
		End:   lookupFlat(t.markers, s.MarkerEnd, def.Markers.End),
	}
	s.Font = lookupFlat(t.fonts, s.FontName, def.Font)
}

// lookupStroke walks the active chain from the deepest variation outward,
// then the original values, then the default.
func (t *Theme) lookupStroke(name string, def *Stroke) *Stroke {
	if name == "" {
		return nil
	}
	for i := len(t.chain) - 1; i >= 0; i-- {
		if v, ok := t.chain[i].Strokes[name]; ok {
			return &v
		}
	}
	if v, ok := t.original.Strokes[name]; ok {
		return &v
	}
	return copyOf(def)
}

func (t *Theme) lookupFill(name string, def *Fill) *Fill {
	if name == "" {
		return nil
	}
	for i := len(t.chain) - 1; i >= 0; i-- {
		if v, ok := t.chain[i].Fills[name]; ok {
			return &v
		}
	}
	if v, ok := t.original.Fills[name]; ok {
		return &v
	}
	return copyOf(def)
}

func lookupFlat[V any](table map[string]V, name string, def *V) *V {
	if name == "" {
		return nil
	}
	if v, ok := table[name]; ok {
		return &v
	}
	return copyOf(def)
}

func copyOf[V any](p *V) *V {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
