package symbol

import (
	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/canvas"
	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/geom"
	"github.com/matzehuels/drawkit/pkg/shape"
	"github.com/matzehuels/drawkit/pkg/style"
)

// Wire joins two points with a straight or orthogonal line.
type Wire struct {
	From, To gg.Point
	// Orthogonal routes the wire horizontally to the midpoint x, vertically
	// to the target y, then horizontally to the target.
	Orthogonal bool
	// StartDot and EndDot draw junction dots at the ends.
	StartDot, EndDot bool
	// Arrow draws an arrowhead at To.
	Arrow  bool
	Stroke style.Stroke
}

// NewWire returns a straight wire with the default stroke.
func NewWire(from, to gg.Point) *Wire {
	return &Wire{From: from, To: to, Stroke: style.DefaultStroke()}
}

// Connect returns a wire from connector (fromSide, fromIndex) of a to
// connector (toSide, toIndex) of b.
func Connect(a Symbol, fromSide, fromIndex int, b Symbol, toSide, toIndex int) (*Wire, error) {
	from, err := a.Connector(fromSide, fromIndex)
	if err != nil {
		return nil, err
	}
	to, err := b.Connector(toSide, toIndex)
	if err != nil {
		return nil, err
	}
	return NewWire(from, to), nil
}

// Points returns the vertices of the wire's route.
func (w *Wire) Points() []gg.Point {
	if !w.Orthogonal || w.From.X == w.To.X || w.From.Y == w.To.Y {
		return []gg.Point{w.From, w.To}
	}
	mx := (w.From.X + w.To.X) / 2
	return []gg.Point{w.From, gg.Pt(mx, w.From.Y), gg.Pt(mx, w.To.Y), w.To}
}

// dotRadius returns the junction dot radius for the stroke width.
func (w *Wire) dotRadius() float64 {
	return 2 * max(w.Stroke.Width, 1)
}

// Draw strokes the route, then draws dots and the arrowhead.
func (w *Wire) Draw(c canvas.Canvas) error {
	pts := w.Points()
	if w.Arrow && pts[len(pts)-2] == w.To {
		return errors.New(errors.ErrCodeDegenerateGeometry, "wire has zero length at its end")
	}
	if err := shape.Polyline(c, pts, false, w.Stroke); err != nil {
		return err
	}
	if w.StartDot {
		if err := Connection(c, w.From, w.dotRadius(), w.Stroke.Paint); err != nil {
			return err
		}
	}
	if w.EndDot {
		if err := Connection(c, w.To, w.dotRadius(), w.Stroke.Paint); err != nil {
			return err
		}
	}
	if w.Arrow {
		angle := geom.Angle(w.To.Sub(pts[len(pts)-2]))
		size := 4 * max(w.Stroke.Width, 2)
		return shape.Arrowhead(c, w.To, angle, size, w.Stroke.Paint)
	}
	return nil
}

// Connection draws a junction dot of radius r at p.
func Connection(c canvas.Canvas, p gg.Point, r float64, paint style.Paint) error {
	return shape.Dot(c, p, r, paint)
}
