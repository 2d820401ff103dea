package shape

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/canvas"
	"github.com/matzehuels/drawkit/pkg/geom"
	"github.com/matzehuels/drawkit/pkg/style"
)

// AngleMarkOptions controls [AngleMark].
type AngleMarkOptions struct {
	Radius float64
	// Count is the number of concentric arcs (1 to 3). Zero means 1.
	Count int
	// Gap separates concentric arcs. Zero means a fifth of Radius.
	Gap float64
	// Right draws the right-angle square instead of arcs.
	Right bool
}

// AngleMark marks the angle a-vertex-b. Arcs always cover the smaller of the
// two angles between the arms.
func AngleMark(c canvas.Canvas, a, vertex, b gg.Point, opts AngleMarkOptions, s style.Stroke) error {
	ua, err := geom.Unit(a.Sub(vertex))
	if err != nil {
		return err
	}
	ub, err := geom.Unit(b.Sub(vertex))
	if err != nil {
		return err
	}
	r := opts.Radius
	if r <= 0 {
		r = 20
	}

	if opts.Right {
		p1 := vertex.Add(ua.Mul(r))
		p2 := p1.Add(ub.Mul(r))
		p3 := vertex.Add(ub.Mul(r))
		return Polyline(c, []gg.Point{p1, p2, p3}, false, s)
	}

	a1 := geom.NormalizeAngle(geom.Angle(ua))
	a2 := geom.NormalizeAngle(geom.Angle(ub))
	if geom.NormalizeAngle(a2-a1) > math.Pi {
		a1, a2 = a2, a1
	}
	n := max(1, min(3, opts.Count))
	gap := opts.Gap
	if gap <= 0 {
		gap = r / 5
	}
	for i := range n {
		c.DrawArc(vertex.X, vertex.Y, r+float64(i)*gap, a1, a2)
	}
	return s.Apply(c)
}

// TickOptions controls [Ticks].
type TickOptions struct {
	Count  int     // Number of marks, zero means 1
	Length float64 // Length of each mark, zero means 10
	Gap    float64 // Spacing between marks, zero means 4
}

// Ticks draws equal-length marks across the middle of segment a-b.
func Ticks(c canvas.Canvas, a, b gg.Point, opts TickOptions, s style.Stroke) error {
	u, err := geom.Unit(b.Sub(a))
	if err != nil {
		return err
	}
	n := max(1, opts.Count)
	length := opts.Length
	if length <= 0 {
		length = 10
	}
	gap := opts.Gap
	if gap <= 0 {
		gap = 4
	}
	mid := geom.Midpoint(a, b)
	half := geom.Perp(u).Mul(length / 2)
	first := -gap * float64(n-1) / 2
	for i := range n {
		p := mid.Add(u.Mul(first + float64(i)*gap))
		q0, q1 := p.Sub(half), p.Add(half)
		c.MoveTo(q0.X, q0.Y)
		c.LineTo(q1.X, q1.Y)
	}
	return s.Apply(c)
}
