package geom_test

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/geom"
)

func ExampleCurvedArc() {
	arc, err := geom.CurvedArc(gg.Pt(0, 0), gg.Pt(120, 0), 1)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("radius %.1f\n", arc.Radius)
	fmt.Printf("apex (%.1f, %.1f)\n", arc.Apex.X, arc.Apex.Y)
	// Output:
	// radius 100.0
	// apex (60.0, -20.0)
}

func ExampleSelfLoop() {
	loop := geom.SelfLoop(gg.Pt(100, 100), 30, 30, 0)
	fmt.Printf("centre (%.0f, %.0f) apex (%.0f, %.0f)\n", loop.Center.X, loop.Center.Y, loop.Apex.X, loop.Apex.Y)
	// Output:
	// centre (154, 100) apex (184, 100)
}
