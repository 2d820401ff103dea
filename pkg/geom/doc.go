// Package geom provides the vector helpers and edge geometry used by drawkit.
//
// Points and vectors are [gg.Point] values from github.com/gogpu/gg. Angles
// are in radians, measured with [math.Atan2] in the drawing's own coordinate
// system, so they can be handed to gg's DrawArc unchanged.
//
// # Edge Geometry
//
// Three solvers cover the ways an edge between two vertices can be drawn:
//
//   - [CurvedArc]: a circular arc through both endpoints whose bulge is set
//     by a signed curvature k (default 1, negative flips the side)
//   - [SelfLoop]: a circle overlapping the vertex rim, used when an edge starts
//     and ends on the same vertex
//   - straight edges need no solver; [Midpoint] and [LabelOffset] place the
//     marker and the weight label
//
// The arc solver derives everything from the chord length l = |p1-p0|:
//
//	r = l / (1.2*k)
//	a = angle(p1-p0) - 90°
//	b = asin(l / (2r))
//	h = r*cos(b)
//	centre = mid - polar(h, a)
//	apex   = centre + polar(r, a)
//
// For |k| > 5/3 the radius is shorter than half the chord and no such arc
// exists; CurvedArc reports this as a DEGENERATE_GEOMETRY error.
//
// # Figure Helpers
//
// [Bisector], [LineIntersection], [SegmentIntersection], [AngleBetween] and
// [ExtendLine] support small geometry figures: angle marks, equal-length
// ticks and construction lines.
package geom
