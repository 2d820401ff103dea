package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// DefaultLoopRadius is the loop circle radius used unless overridden.
const DefaultLoopRadius = 30.0

// loopInset is the fraction of the loop radius that overlaps the vertex.
const loopInset = 0.8

// Loop is the circle drawn for an edge that starts and ends on one vertex.
type Loop struct {
	Center  gg.Point
	Radius  float64
	Apex    gg.Point // Point of the loop furthest from the vertex
	Tangent float64  // Direction of travel at the apex (radians)
	Angle   float64  // Direction from the vertex to the loop centre
}

// SelfLoop places a loop of radius loopRadius on the vertex at center with
// radius vertexRadius. The loop centre sits at
// vertexRadius + 0.8*loopRadius from the vertex along angle.
func SelfLoop(center gg.Point, vertexRadius, loopRadius, angle float64) Loop {
	c := center.Add(Polar(vertexRadius+loopInset*loopRadius, angle))
	return Loop{
		Center:  c,
		Radius:  loopRadius,
		Apex:    c.Add(Polar(loopRadius, angle)),
		Tangent: angle + math.Pi/2,
		Angle:   angle,
	}
}
