package geom

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/errors"
)

// DefaultCurvature is the curvature used for curved edges unless overridden.
const DefaultCurvature = 1.0

// chordFactor relates chord length to radius: r = l / (chordFactor*k).
const chordFactor = 1.2

// MaxCurvature is the largest |k| for which an arc through both endpoints
// exists (radius >= half chord).
const MaxCurvature = 2 / chordFactor

// Arc is a circular arc between two points, ready to be passed to DrawArc.
//
// The arc sweeps from Start to End with increasing angle. Radius is always
// positive; the sign of the curvature is folded into the angles.
type Arc struct {
	Center gg.Point // Centre of the circle
	Radius float64  // Positive radius
	Start  float64  // Start angle (radians)
	End    float64  // End angle (radians), End > Start
	Apex   gg.Point // Point of the arc furthest from the chord
	// Direction is the unit vector from the centre through the apex. Labels
	// on the convex side are pushed along it.
	Direction gg.Point
}

// StartPoint returns the point on the circle at the Start angle.
func (a Arc) StartPoint() gg.Point { return a.Center.Add(Polar(a.Radius, a.Start)) }

// EndPoint returns the point on the circle at the End angle.
func (a Arc) EndPoint() gg.Point { return a.Center.Add(Polar(a.Radius, a.End)) }

// Sweep returns the angular extent of the arc.
func (a Arc) Sweep() float64 { return a.End - a.Start }

// CurvedArc solves the arc drawn for a curved edge from p0 to p1.
//
// k is the signed curvature. Positive values bulge to the side obtained by
// rotating p1-p0 by -90°, negative values to the other side. The chord must
// have non-zero length and |k| must not exceed [MaxCurvature].
func CurvedArc(p0, p1 gg.Point, k float64) (Arc, error) {
	chord := p1.Sub(p0)
	l := chord.Length()
	if l < epsilon {
		return Arc{}, errors.New(errors.ErrCodeDegenerateGeometry, "curved edge endpoints coincide")
	}
	if k == 0 || math.IsNaN(k) || math.IsInf(k, 0) {
		return Arc{}, errors.New(errors.ErrCodeDegenerateGeometry, "curvature must be finite and non-zero, got %v", k)
	}
	if math.Abs(k) > MaxCurvature {
		return Arc{}, errors.New(errors.ErrCodeDegenerateGeometry,
			"curvature %v exceeds %.4f: radius would be shorter than half the chord", k, MaxCurvature)
	}

	radius := l / (chordFactor * math.Abs(k))
	dir := Angle(chord) - math.Pi/2
	if k < 0 {
		dir += math.Pi
	}
	// At |k| == MaxCurvature the ratio is 1 up to rounding; keep Asin in range.
	half := math.Asin(min(1, l/(2*radius)))
	h := radius * math.Cos(half)
	center := Midpoint(p0, p1).Sub(Polar(h, dir))

	return Arc{
		Center:    center,
		Radius:    radius,
		Start:     dir - half,
		End:       dir + half,
		Apex:      center.Add(Polar(radius, dir)),
		Direction: Polar(1, dir),
	}, nil
}
