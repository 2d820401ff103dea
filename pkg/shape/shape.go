// Package shape draws the small primitives diagrams are assembled from:
// lines, direction markers, arrowheads, labels, dots, angle marks and
// equal-length ticks.
//
// Every function draws immediately onto a [canvas.Canvas] and leaves no path
// behind. Styles that paint nothing are skipped silently.
package shape

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/canvas"
	"github.com/matzehuels/drawkit/pkg/geom"
	"github.com/matzehuels/drawkit/pkg/style"
)

// MarkerAngle is the half-angle between the arms of a direction marker.
const MarkerAngle = math.Pi / 4

// Line strokes the segment a-b.
func Line(c canvas.Canvas, a, b gg.Point, s style.Stroke) error {
	c.MoveTo(a.X, a.Y)
	c.LineTo(b.X, b.Y)
	return s.Apply(c)
}

// Polyline strokes the path through pts, closing it if closed is set.
// Fewer than two points draw nothing.
func Polyline(c canvas.Canvas, pts []gg.Point, closed bool, s style.Stroke) error {
	if len(pts) < 2 {
		return nil
	}
	c.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.LineTo(p.X, p.Y)
	}
	if closed {
		c.ClosePath()
	}
	return s.Apply(c)
}

// Polygon fills then strokes the closed path through pts.
func Polygon(c canvas.Canvas, pts []gg.Point, f style.Fill, s style.Stroke) error {
	if len(pts) < 3 {
		return nil
	}
	trace := func() {
		c.MoveTo(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			c.LineTo(p.X, p.Y)
		}
		c.ClosePath()
	}
	trace()
	if err := f.Apply(c); err != nil {
		return err
	}
	trace()
	return s.Apply(c)
}

// Circle fills then strokes a circle.
func Circle(c canvas.Canvas, center gg.Point, r float64, f style.Fill, s style.Stroke) error {
	c.DrawCircle(center.X, center.Y, r)
	if err := f.Apply(c); err != nil {
		return err
	}
	c.DrawCircle(center.X, center.Y, r)
	return s.Apply(c)
}

// Dot fills a small circle, used for wire junctions and points on figures.
func Dot(c canvas.Canvas, at gg.Point, r float64, p style.Paint) error {
	c.DrawCircle(at.X, at.Y, r)
	return style.Fill{Paint: p}.Apply(c)
}

// Marker strokes an open chevron centred on at and pointing along angle.
// length is the length of each arm.
func Marker(c canvas.Canvas, at gg.Point, angle, length float64, s style.Stroke) error {
	tip := at.Add(geom.Polar(length*math.Cos(MarkerAngle)/2, angle))
	back := angle + math.Pi
	l := tip.Add(geom.Polar(length, back-MarkerAngle))
	r := tip.Add(geom.Polar(length, back+MarkerAngle))
	c.MoveTo(l.X, l.Y)
	c.LineTo(tip.X, tip.Y)
	c.LineTo(r.X, r.Y)
	return s.Apply(c)
}

// Arrowhead fills a triangle with its tip at tip, pointing along angle.
func Arrowhead(c canvas.Canvas, tip gg.Point, angle, size float64, p style.Paint) error {
	back := angle + math.Pi
	const spread = math.Pi / 7
	l := tip.Add(geom.Polar(size, back-spread))
	r := tip.Add(geom.Polar(size, back+spread))
	c.MoveTo(tip.X, tip.Y)
	c.LineTo(l.X, l.Y)
	c.LineTo(r.X, r.Y)
	c.ClosePath()
	return style.Fill{Paint: p}.Apply(c)
}

// Label draws text centred on at+offset using t.
func Label(c canvas.Canvas, text string, at, offset gg.Point, t style.Text) {
	p := at.Add(offset)
	t.Draw(c, text, p.X, p.Y)
}

// ExtendedLine strokes a-b extended by ext beyond both ends.
func ExtendedLine(c canvas.Canvas, a, b gg.Point, ext float64, s style.Stroke) error {
	p0, p1, err := geom.ExtendLine(a, b, ext)
	if err != nil {
		return err
	}
	return Line(c, p0, p1, s)
}

// ArrowLine strokes a-b shortened by inset at both ends, with a direction
// marker of arm length tick at its midpoint pointing towards b.
func ArrowLine(c canvas.Canvas, a, b gg.Point, inset, tick float64, s style.Stroke) error {
	p0, p1, err := geom.ExtendLine(a, b, -inset)
	if err != nil {
		return err
	}
	if err := Line(c, p0, p1, s); err != nil {
		return err
	}
	return Marker(c, geom.Midpoint(p0, p1), geom.Angle(p1.Sub(p0)), tick, s)
}
