package geom

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/errors"
)

// Bisector returns the unit direction, from vertex, of the internal bisector
// of the angle a-vertex-b. Either arm having zero length, or the arms being
// exactly opposite, is a DEGENERATE_GEOMETRY error.
func Bisector(a, vertex, b gg.Point) (gg.Point, error) {
	ua, err := Unit(a.Sub(vertex))
	if err != nil {
		return gg.Point{}, err
	}
	ub, err := Unit(b.Sub(vertex))
	if err != nil {
		return gg.Point{}, err
	}
	d, err := Unit(ua.Add(ub))
	if err != nil {
		return gg.Point{}, errors.New(errors.ErrCodeDegenerateGeometry, "straight angle has no unique bisector")
	}
	return d, nil
}

// PerpendicularBisector returns a point on the midpoint of a-b and the unit
// direction perpendicular to a-b.
func PerpendicularBisector(a, b gg.Point) (gg.Point, gg.Point, error) {
	u, err := Unit(b.Sub(a))
	if err != nil {
		return gg.Point{}, gg.Point{}, err
	}
	return Midpoint(a, b), Perp(u), nil
}

// LineIntersection returns the intersection of the infinite lines p0-p1 and
// q0-q1. Parallel or coincident lines are a DEGENERATE_GEOMETRY error.
func LineIntersection(p0, p1, q0, q1 gg.Point) (gg.Point, error) {
	p, _, _, err := intersect(p0, p1, q0, q1)
	return p, err
}

// SegmentIntersection is like LineIntersection but also reports whether the
// intersection lies on both closed segments.
func SegmentIntersection(p0, p1, q0, q1 gg.Point) (gg.Point, bool, error) {
	p, t, u, err := intersect(p0, p1, q0, q1)
	if err != nil {
		return gg.Point{}, false, err
	}
	const tol = 1e-9
	on := t >= -tol && t <= 1+tol && u >= -tol && u <= 1+tol
	return p, on, nil
}

func intersect(p0, p1, q0, q1 gg.Point) (gg.Point, float64, float64, error) {
	r := p1.Sub(p0)
	s := q1.Sub(q0)
	denom := r.Cross(s)
	if math.Abs(denom) < epsilon*max(1, r.Length()*s.Length()) {
		return gg.Point{}, 0, 0, errors.New(errors.ErrCodeDegenerateGeometry, "lines are parallel")
	}
	qp := q0.Sub(p0)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	return p0.Add(r.Mul(t)), t, u, nil
}

// ExtendLine returns the endpoints of a-b extended by ext at both ends.
// A negative ext shortens the line instead.
func ExtendLine(a, b gg.Point, ext float64) (gg.Point, gg.Point, error) {
	u, err := Unit(b.Sub(a))
	if err != nil {
		return gg.Point{}, gg.Point{}, err
	}
	return a.Sub(u.Mul(ext)), b.Add(u.Mul(ext)), nil
}
