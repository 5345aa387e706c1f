package theme

import "sort"

// Variation is a named set of stroke and fill overrides. Variations nest:
// a child variation overrides its parent, which overrides the theme's
// original values.
type Variation struct {
	Strokes    map[string]Stroke
	Fills      map[string]Fill
	Variations map[string]*Variation
}

// NewVariation returns an empty variation.
func NewVariation() *Variation {
	return &Variation{
		Strokes:    make(map[string]Stroke),
		Fills:      make(map[string]Fill),
		Variations: make(map[string]*Variation),
	}
}

// Stroke sets a stroke override and returns v.
func (v *Variation) Stroke(name string, s Stroke) *Variation {
	if v.Strokes == nil {
		v.Strokes = make(map[string]Stroke)
	}
	v.Strokes[name] = s
	return v
}

// Fill sets a fill override and returns v.
func (v *Variation) Fill(name string, f Fill) *Variation {
	if v.Fills == nil {
		v.Fills = make(map[string]Fill)
	}
	v.Fills[name] = f
	return v
}

// Child attaches a nested variation and returns v.
func (v *Variation) Child(name string, c *Variation) *Variation {
	if v.Variations == nil {
		v.Variations = make(map[string]*Variation)
	}
	v.Variations[name] = c
	return v
}

// paths appends the dotted path of every nested variation under prefix.
func (v *Variation) paths(prefix string, out []string) []string {
	names := make([]string, 0, len(v.Variations))
	for n := range v.Variations {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		p := n
		if prefix != "" {
			p = prefix + "." + n
		}
		out = append(out, p)
		out = v.Variations[n].paths(p, out)
	}
	return out
}

// chain returns the variations named by path, outermost first. The second
// return value is the first path element that does not exist, if any.
func (v *Variation) chain(path []string) ([]*Variation, string, bool) {
	out := make([]*Variation, 0, len(path))
	cur := v
	for _, name := range path {
		next, ok := cur.Variations[name]
		if !ok || next == nil {
			return nil, name, false
		}
		out = append(out, next)
		cur = next
	}
	return out, "", true
}
