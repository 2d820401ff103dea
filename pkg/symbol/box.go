package symbol

import (
	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/canvas"
)

// Box sides.
const (
	Left = iota
	Right
	Top
	Bottom
)

// Box is a labelled rectangle with connection points on all four sides.
type Box struct {
	Frame
	// Points holds the number of connectors on each side, indexed by
	// Left, Right, Top and Bottom.
	Points [4]int
}

// NewBox returns a box with its top-left corner at at and the given
// connector counts per side.
func NewBox(at gg.Point, label string, left, right, top, bottom int) *Box {
	b := &Box{Frame: newFrame(at), Points: [4]int{left, right, top, bottom}}
	b.Label = label
	return b
}

// DefaultHeight is 0.6 of the width.
func (b *Box) DefaultHeight(width float64) float64 { return 0.6 * width }

// Sides returns 4.
func (b *Box) Sides() int { return 4 }

// Bounds returns the rectangle corners.
func (b *Box) Bounds() (gg.Point, gg.Point) {
	return b.Position, b.Position.Add(gg.Pt(b.width(), b.height(b)))
}

// LabelPos is the centre of the box.
func (b *Box) LabelPos() gg.Point {
	return b.Position.Add(gg.Pt(b.width()/2, b.height(b)/2))
}

// Connector returns point index on side. Points are spread at (i+1)/(n+1)
// of the side: top to bottom on the left and right, left to right on the
// top and bottom.
func (b *Box) Connector(side, index int) (gg.Point, error) {
	w, h := b.width(), b.height(b)
	local, err := connector(b.Points[:], side, index, func(side, i, n int) gg.Point {
		switch side {
		case Left:
			return gg.Pt(0, evenly(i, n, h))
		case Right:
			return gg.Pt(w, evenly(i, n, h))
		case Top:
			return gg.Pt(evenly(i, n, w), 0)
		default:
			return gg.Pt(evenly(i, n, w), h)
		}
	})
	if err != nil {
		return gg.Point{}, err
	}
	return b.Position.Add(local), nil
}

// Draw fills and strokes the rectangle and draws the label at its centre.
func (b *Box) Draw(c canvas.Canvas) error {
	w, h := b.width(), b.height(b)
	c.DrawRectangle(b.Position.X, b.Position.Y, w, h)
	if err := b.Fill.Apply(c); err != nil {
		return err
	}
	c.DrawRectangle(b.Position.X, b.Position.Y, w, h)
	if err := b.Stroke.Apply(c); err != nil {
		return err
	}
	b.drawLabel(c, b.LabelPos())
	return nil
}
