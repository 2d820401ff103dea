package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// LabelDistance is the label offset as a fraction of the text size.
const LabelDistance = 0.7

// LabelOffset returns the offset of a weight label from its anchor for a
// straight edge running along direction. The label sits 0.7*textSize away,
// perpendicular to the edge, on the side given by side (+1 rotates the
// direction by -90°, -1 by +90°).
func LabelOffset(direction gg.Point, textSize float64, side int) gg.Point {
	s := 1.0
	if side < 0 {
		s = -1
	}
	return Polar(LabelDistance*textSize, Angle(direction)-s*math.Pi/2)
}

// OutwardOffset returns the offset pushing a label 0.7*textSize away from
// a circle's centre along the unit direction dir.
func OutwardOffset(dir gg.Point, textSize float64) gg.Point {
	return dir.Normalize().Mul(LabelDistance * textSize)
}
