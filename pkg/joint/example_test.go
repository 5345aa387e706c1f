package joint_test

import (
	"fmt"

	"github.com/matzehuels/stipple/pkg/geom"
	"github.com/matzehuels/stipple/pkg/joint"
)

func ExampleArc() {
	a := joint.Anchor{Center: geom.Pt(200, 400), Radius: 35}
	b := joint.Anchor{Center: geom.Pt(600, 400), Radius: 35}

	c, ok := joint.Arc(a, b, joint.Ends{End: 10}, 300)
	fmt.Println(ok)
	fmt.Printf("center (%.1f, %.1f) radius %.0f\n", c.Arc.Center.X, c.Arc.Center.Y, c.Arc.Radius)
	fmt.Printf("starts %.1f from a, ends %.1f from b\n", c.Start().Dist(a.Center), c.End().Dist(b.Center))

	_, ok = joint.Arc(a, b, joint.Ends{}, 150)
	fmt.Println(ok)
	// Output:
	// true
	// center (400.0, 623.6) radius 300
	// starts 35.0 from a, ends 45.0 from b
	// false
}

func ExampleLine() {
	a := joint.Anchor{Center: geom.Pt(0, 0), Radius: 10, StrokeWidth: 2}
	b := joint.Anchor{Center: geom.Pt(100, 0), Radius: 10}

	c, _ := joint.Line(a, b, joint.Ends{End: 5})
	fmt.Println(c.Start(), c.End())
	// Output:
	// {11 0} {85 0}
}
