package geom

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/errors"
)

// epsilon is the length below which a vector is treated as zero.
const epsilon = 1e-12

// Polar returns the vector of length r at the given angle.
func Polar(r, angle float64) gg.Point {
	return gg.Pt(r*math.Cos(angle), r*math.Sin(angle))
}

// Angle returns the direction of v in radians, in (-π, π].
func Angle(v gg.Point) float64 {
	return math.Atan2(v.Y, v.X)
}

// Unit returns v scaled to length 1. The zero vector has no direction and is
// reported as a DEGENERATE_GEOMETRY error rather than silently returned.
func Unit(v gg.Point) (gg.Point, error) {
	l := v.Length()
	if l < epsilon {
		return gg.Point{}, errors.New(errors.ErrCodeDegenerateGeometry, "zero-length vector has no direction")
	}
	return v.Div(l), nil
}

// Perp returns v rotated by +90°.
func Perp(v gg.Point) gg.Point {
	return gg.Pt(-v.Y, v.X)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b gg.Point) gg.Point {
	return a.Lerp(b, 0.5)
}

// AngleBetween returns the unsigned angle between u and v in [0, π].
// It is zero if either vector is zero.
func AngleBetween(u, v gg.Point) float64 {
	lu, lv := u.Length(), v.Length()
	if lu < epsilon || lv < epsilon {
		return 0
	}
	c := u.Dot(v) / (lu * lv)
	return math.Acos(max(-1, min(1, c)))
}

// NormalizeAngle maps an angle into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
