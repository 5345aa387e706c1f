package builder_test

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stipple/pkg/builder"
	"github.com/matzehuels/stipple/pkg/errors"
	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/scene"
	"github.com/matzehuels/stipple/pkg/theme"
)

// Joints that cannot be built are reported in Issues while the others are
// still emitted into the result group.
func ExampleJoints_Build() {
	th := theme.New(theme.Style{}).
		WithStrokes(map[string]theme.Stroke{"edge": {Width: 1}}).
		WithMarkers(map[string]theme.Marker{"arrow": {Length: 10}}).
		WithStyles(theme.StyleSpec{Name: "edge", Stroke: "edge", MarkerEnd: "arrow"})

	s := scene.New(800, 800)
	node := s.AddCrumb(scene.Circle{Radius: 35})
	box := s.AddCrumb(scene.Rect{W: 10, H: 10})
	nodes, _ := s.AddGroup(*scene.NewGroup("nodes").
		AddCrumb(node, theme.NoStyle, geom.Translate(200, 400)).
		AddCrumb(node, theme.NoStyle, geom.Translate(600, 400)).
		AddCrumb(box, theme.NoStyle, geom.Identity()))

	res := builder.NewJoints().
		Logger(log.New(io.Discard)).
		Style(th.MustStyleID("edge")).
		Line(builder.Nth(nodes, 0), builder.Nth(nodes, 1)).
		Arc(builder.Nth(nodes, 0), builder.Nth(nodes, 1), -300).
		Line(builder.Nth(nodes, 0), builder.Nth(nodes, 2)).
		Build(s, th)

	fmt.Println(res.Emitted, len(res.Issues), errors.Is(res.Err(), errors.ErrCodeCrumbMismatch))

	g, _ := s.Group(res.Group)
	for _, r := range g.Refs {
		c, _ := s.Crumb(r.Crumb)
		fmt.Println(c.Kind())
	}
	// Output:
	// 2 1 true
	// line
	// arc
}
