package graphdot

import (
	"strings"
	"testing"

	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

func buildScene(t *testing.T) (*scene.Scene, *theme.Theme) {
	t.Helper()
	th := theme.New(theme.Style{}).WithStyles(theme.StyleSpec{Name: "node"})
	node := th.MustStyleID("node")

	s := scene.New(100, 100)
	c := s.AddCrumb(scene.Circle{Radius: 5})
	leaf, err := s.AddGroup(*scene.NewGroup("leaf").AddCrumb(c, node, geom.Identity()))
	if err != nil {
		t.Fatalf("AddGroup(leaf) error: %v", err)
	}
	root, err := s.AddGroup(*scene.NewGroup("").
		AddChild(leaf, theme.NoStyle, geom.Translate(10, 0)).
		AddChild(leaf, node, geom.Identity()))
	if err != nil {
		t.Fatalf("AddGroup(root) error: %v", err)
	}
	if _, err := s.AddLayer(root, 3); err != nil {
		t.Fatalf("AddLayer() error: %v", err)
	}
	if err := s.SetGroupHidden(leaf, true); err != nil {
		t.Fatalf("SetGroupHidden() error: %v", err)
	}
	return s, th
}

func TestToDOT(t *testing.T) {
	s, th := buildScene(t)
	dot := ToDOT(s, Options{Theme: th})

	for _, want := range []string{
		`"g0" [label="leaf", style="rounded,filled,dashed", fillcolor=lightgrey];`,
		`"g1" [label="group 1\nlayer 0 (z=3)", penwidth=2];`,
		`"g1" -> "g0" [label="translate(10 0)"];`,
		`"g1" -> "g0" [label="node"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"c0"`) {
		t.Error("crumb nodes should be omitted by default")
	}
}

func TestToDOTWithCrumbs(t *testing.T) {
	s, _ := buildScene(t)
	dot := ToDOT(s, Options{Crumbs: true})

	if !strings.Contains(dot, `"c0" [label="circle #0", shape=ellipse`) {
		t.Errorf("ToDOT() missing crumb node\n%s", dot)
	}
	if !strings.Contains(dot, `"g0" -> "c0" [label="style 1", style=dotted];`) {
		t.Errorf("ToDOT() missing crumb edge\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
}

func TestRenderSVG(t *testing.T) {
	s, th := buildScene(t)
	svg, err := RenderSVG(ToDOT(s, Options{Theme: th}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), `viewBox="0 0 `) {
		t.Errorf("RenderSVG() did not normalize the viewBox: %.200s", svg)
	}
}
