package demo

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
	"github.com/matzehuels/stipple/pkg/theme/themefile"
)

func quiet() *log.Logger { return log.New(io.Discard) }

func classic(t *testing.T) *theme.Theme {
	t.Helper()
	th, err := themefile.Builtin("classic")
	require.NoError(t, err)
	return th
}

func TestGet(t *testing.T) {
	assert.Equal(t, []string{"arc", "automaton", "frame", "gallery"}, Names())
	assert.Len(t, All(), 4)

	d, err := Get("arc")
	require.NoError(t, err)
	assert.Equal(t, "arc", d.Name)

	_, err = Get("nope")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestFrame(t *testing.T) {
	th := classic(t)
	s, err := Frame(th, quiet())
	require.NoError(t, err)

	entries, err := s.Flatten(geom.Identity())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Transform.IsIdentity())
	assert.Equal(t, th.MustStyleID("border"), entries[0].Style)

	c, err := s.Crumb(entries[0].Crumb)
	require.NoError(t, err)
	assert.Equal(t, scene.Rect{W: 1000, H: 1000}, c)
}

func TestArcPair(t *testing.T) {
	s, err := ArcPair(classic(t), quiet())
	require.NoError(t, err)

	entries, err := s.FlattenVisible(geom.Identity())
	require.NoError(t, err)
	assert.Len(t, entries, 8)

	var arcs []scene.Arc
	for _, e := range entries {
		c, err := s.Crumb(e.Crumb)
		require.NoError(t, err)
		if a, ok := c.(scene.Arc); ok {
			arcs = append(arcs, a)
		}
	}
	require.Len(t, arcs, 1)
	a := arcs[0]
	assert.InDelta(t, 400, a.Center.X, 1e-9)
	assert.InDelta(t, math.Sqrt(300*300-200*200), math.Abs(a.Center.Y-400), 1e-9)
	assert.InDelta(t, 300, a.Radius, 1e-9)
	assert.NotZero(t, a.Sweep)
}

func TestAutomaton(t *testing.T) {
	s, err := Automaton(classic(t), quiet())
	require.NoError(t, err)

	visible, err := s.FlattenVisible(geom.Identity())
	require.NoError(t, err)
	all, err := s.Flatten(geom.Identity())
	require.NoError(t, err)

	assert.Len(t, visible, 21)
	assert.Len(t, all, 25, "the hidden anchor layer holds one pin per state")

	// The four states are instances of a single crumb.
	var states []scene.Entry
	for _, e := range visible {
		c, _ := s.Crumb(e.Crumb)
		if circle, ok := c.(scene.Circle); ok && circle.Radius == 40 {
			states = append(states, e)
		}
	}
	require.Len(t, states, 4)
	for _, e := range states[1:] {
		assert.Equal(t, states[0].Crumb, e.Crumb)
	}
	assert.Equal(t, geom.Translate(620, 230), states[2].Transform)
}

func TestGallery(t *testing.T) {
	s, err := Gallery(classic(t), quiet())
	require.NoError(t, err)

	entries, err := s.Flatten(geom.Identity())
	require.NoError(t, err)
	require.Len(t, entries, 19)

	kinds := map[scene.CrumbKind]int{}
	for _, e := range entries[1:] {
		c, _ := s.Crumb(e.Crumb)
		kinds[c.Kind()]++
	}
	for _, k := range []scene.CrumbKind{
		scene.KindLine, scene.KindRect, scene.KindRoundRect, scene.KindCircle,
		scene.KindArc, scene.KindPin, scene.KindText,
	} {
		assert.Equal(t, 2, kinds[k], k.String())
	}
	assert.Equal(t, 4, kinds[scene.KindPath])

	// The second copy is the first at half size.
	assert.Equal(t, geom.TranslateScale(600, 100, 0.5), entries[10].Transform)
}

func TestEveryDiagramUnderEveryTheme(t *testing.T) {
	for _, name := range themefile.BuiltinNames() {
		th, err := themefile.Builtin(name)
		require.NoError(t, err)
		for _, d := range All() {
			t.Run(name+"/"+d.Name, func(t *testing.T) {
				s, err := d.Build(th, quiet())
				require.NoError(t, err)
				assert.NotZero(t, s.CrumbCount())
			})
		}
	}
}
