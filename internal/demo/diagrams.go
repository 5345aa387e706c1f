package demo

import (
	stderrors "errors"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stipple/pkg/builder"
	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

// Frame is a 1000×1000 canvas holding one rectangle styled "border".
func Frame(th *theme.Theme, _ *log.Logger) (*scene.Scene, error) {
	s := scene.New(1000, 1000)
	root, err := backdrop(s, th, "frame")
	if err != nil {
		return nil, err
	}
	if _, err := s.AddLayer(root, 0); err != nil {
		return nil, err
	}
	return s, nil
}

// ArcPair joins two nodes at (200,400) and (600,400) with an arc of
// radius 300, then pins and labels both.
func ArcPair(th *theme.Theme, logger *log.Logger) (*scene.Scene, error) {
	s := scene.New(800, 800)
	bg, err := backdrop(s, th, "background")
	if err != nil {
		return nil, err
	}

	node := style(th, "node")
	a := s.AddCrumb(scene.Circle{Center: geom.Pt(200, 400), Radius: 35})
	b := s.AddCrumb(scene.Circle{Center: geom.Pt(600, 400), Radius: 35})
	nodes, err := s.AddGroup(*scene.NewGroup("nodes").
		AddCrumb(a, node, geom.Identity()).
		AddCrumb(b, node, geom.Identity()))
	if err != nil {
		return nil, err
	}

	joints := builder.NewJoints().
		Logger(logger).
		Style(style(th, "arc")).
		Arc(builder.Nth(nodes, 0), builder.Nth(nodes, 1), 300).
		Build(s, th)
	pins := builder.NewPins(5).
		Logger(logger).
		Style(style(th, "pin")).
		FromGroup(nodes, 0, 1).
		Offsets(geom.Pt(0, 35), geom.Pt(0, 35)).
		Build(s)
	labels := builder.NewLabels().
		Logger(logger).
		Style(style(th, "label")).
		FromGroup(nodes, 0, 1).
		Texts("A", "B").
		Build(s)

	diagram, err := s.AddGroup(*scene.NewGroup("diagram").
		AddChild(joints.Group, theme.NoStyle, geom.Identity()).
		AddChild(nodes, theme.NoStyle, geom.Identity()).
		AddChild(pins.Group, theme.NoStyle, geom.Identity()).
		AddChild(labels.Group, theme.NoStyle, geom.Identity()))
	if err != nil {
		return nil, err
	}
	if err := layers(s, bg, diagram); err != nil {
		return nil, err
	}
	return s, stderrors.Join(joints.Err(), pins.Err(), labels.Err())
}

// Automaton draws four states, all instances of one circle crumb, joined
// by a line, a polyline, a quadratic, a cubic and an arc. Anchor pins sit
// on a hidden layer.
func Automaton(th *theme.Theme, logger *log.Logger) (*scene.Scene, error) {
	const (
		w, h   = 1000.0, 460.0
		radius = 40.0
		row    = 230.0
	)
	s := scene.New(w, h)
	bg, err := backdrop(s, th, "background")
	if err != nil {
		return nil, err
	}

	state := s.AddCrumb(scene.Circle{Radius: radius})
	ring := s.AddCrumb(scene.Circle{Radius: radius - 7})

	xs := []float64{140, 380, 620, 860}
	g := scene.NewGroup("states")
	for _, x := range xs {
		g.AddCrumb(state, style(th, "node"), geom.Translate(x, row))
	}
	states, err := s.AddGroup(*g)
	if err != nil {
		return nil, err
	}
	accept, err := s.AddGroup(*scene.NewGroup("accept").
		AddCrumb(ring, style(th, "edge"), geom.Translate(xs[3], row)))
	if err != nil {
		return nil, err
	}

	q := func(i int) builder.Ref { return builder.Nth(states, i) }
	joints := builder.NewJoints().
		Logger(logger).
		Style(style(th, "edge")).
		Line(q(0), q(1)).
		Line(q(1), q(2)).
		Cubic(q(2), q(3), geom.Pt(-40, -90), geom.Pt(40, -90)).
		Quadratic(q(0), q(2), geom.Pt(0, -170)).
		Polyline(q(3), q(1), geom.Pt(120, 140), geom.Pt(-120, 140)).
		Style(style(th, "arc")).
		Arc(q(1), q(0), 200).
		Build(s, th)

	labels := builder.NewLabels().
		Logger(logger).
		Style(style(th, "label")).
		FromGroup(states, 0, 1, 2, 3).
		With(
			builder.Label{Text: "q0", Lower: "start"},
			builder.Label{Text: "q1"},
			builder.Label{Text: "q2"},
			builder.Label{Text: "q3", Lower: "accept"},
		).
		Build(s)

	caption := style(th, "caption")
	cg := scene.NewGroup("captions")
	for _, c := range []struct {
		at   geom.Point
		text string
	}{
		{geom.Pt(260, row-12), "a"},
		{geom.Pt(500, row-12), "b"},
		{geom.Pt(740, row-80), "c"},
		{geom.Pt(380, 50), "a, b"},
		{geom.Pt(620, 385), "ε"},
	} {
		cg.AddCrumb(s.AddCrumb(scene.Text{At: c.at, Text: c.text}), caption, geom.Identity())
	}
	captions, err := s.AddGroup(*cg)
	if err != nil {
		return nil, err
	}

	diagram, err := s.AddGroup(*scene.NewGroup("diagram").
		AddChild(joints.Group, theme.NoStyle, geom.Identity()).
		AddChild(states, theme.NoStyle, geom.Identity()).
		AddChild(accept, theme.NoStyle, geom.Identity()).
		AddChild(labels.Group, theme.NoStyle, geom.Identity()).
		AddChild(captions, theme.NoStyle, geom.Identity()))
	if err != nil {
		return nil, err
	}

	pins := builder.NewPins(4).
		Logger(logger).
		Style(style(th, "pin")).
		FromGroup(states, 0, 1, 2, 3).
		Offsets(geom.Pt(0, -radius), geom.Pt(0, -radius), geom.Pt(0, -radius), geom.Pt(0, -radius)).
		Build(s)

	if err := layers(s, bg, diagram); err != nil {
		return nil, err
	}
	anchors, err := s.AddLayer(pins.Group, 2)
	if err != nil {
		return nil, err
	}
	if err := s.SetLayerVisible(anchors, false); err != nil {
		return nil, err
	}
	return s, stderrors.Join(joints.Err(), labels.Err(), pins.Err())
}

// Gallery draws one cell holding every crumb kind, referenced twice: once
// at full size and once at half size.
func Gallery(th *theme.Theme, _ *log.Logger) (*scene.Scene, error) {
	s := scene.New(900, 330)
	bg, err := backdrop(s, th, "background")
	if err != nil {
		return nil, err
	}

	node, edge, arc := style(th, "node"), style(th, "edge"), style(th, "arc")
	cell := scene.NewGroup("cell")
	add := func(c scene.Crumb, st theme.StyleID) {
		cell.AddCrumb(s.AddCrumb(c), st, geom.Identity())
	}
	add(scene.Line{From: geom.Pt(10, 10), To: geom.Pt(110, 90)}, edge)
	add(scene.Rect{Min: geom.Pt(150, 10), W: 100, H: 80}, style(th, "border"))
	add(scene.RoundRect{Min: geom.Pt(290, 10), W: 100, H: 80, Radius: 12}, node)
	add(scene.Circle{Center: geom.Pt(470, 50), Radius: 40}, node)
	add(scene.Arc{Center: geom.Pt(60, 220), Radius: 50, Start: -math.Pi, Sweep: 1.5 * math.Pi}, arc)
	add(triangle(geom.Pt(150, 270), geom.Pt(250, 270), geom.Pt(200, 170)), node)
	add(scene.CubicCurve(geom.Pt(290, 270), geom.Pt(310, 160), geom.Pt(370, 280), geom.Pt(390, 170)), arc)
	add(scene.Pin{Center: geom.Pt(470, 200), Radius: 6}, style(th, "pin"))
	add(scene.Text{At: geom.Pt(470, 260), Text: "Aa", Upper: "upper", Lower: "lower"}, style(th, "label"))
	cells, err := s.AddGroup(*cell)
	if err != nil {
		return nil, err
	}

	root, err := s.AddGroup(*scene.NewGroup("gallery").
		AddChild(cells, theme.NoStyle, geom.Translate(10, 10)).
		AddChild(cells, theme.NoStyle, geom.TranslateScale(600, 100, 0.5)))
	if err != nil {
		return nil, err
	}
	if err := layers(s, bg, root); err != nil {
		return nil, err
	}
	return s, nil
}

// backdrop adds a canvas-sized rectangle styled "border" in its own group.
func backdrop(s *scene.Scene, th *theme.Theme, name string) (scene.GroupID, error) {
	w, h := s.Size()
	r := s.AddCrumb(scene.Rect{W: w, H: h})
	return s.AddGroup(*scene.NewGroup(name).AddCrumb(r, style(th, "border"), geom.Identity()))
}

// layers stacks groups as layers in the given order, bottom first.
func layers(s *scene.Scene, groups ...scene.GroupID) error {
	for z, g := range groups {
		if _, err := s.AddLayer(g, z); err != nil {
			return err
		}
	}
	return nil
}

func triangle(a, b, c geom.Point) scene.Path {
	p := scene.Polyline(a, b, c)
	p.Segs = append(p.Segs, scene.Segment{Op: scene.Close})
	return p
}
