package symbol

import (
	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/canvas"
	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/style"
)

// DefaultWidth is the width of a symbol unless set.
const DefaultWidth = 100.0

// Symbol is a drawable shape with addressable connection points.
type Symbol interface {
	Draw(c canvas.Canvas) error
	// DefaultHeight returns the height used when none is set.
	DefaultHeight(width float64) float64
	// LabelPos returns the absolute point a label is centred on.
	LabelPos() gg.Point
	// Connector returns the absolute position of connection point index on
	// side.
	Connector(side, index int) (gg.Point, error)
	// Sides returns the number of connector sides.
	Sides() int
	// Bounds returns the minimum and maximum corners of the symbol.
	Bounds() (gg.Point, gg.Point)
}

// Frame holds the placement and style shared by all symbols. Position is
// the top-left corner.
type Frame struct {
	Position gg.Point
	Width    float64
	// Height of zero means the symbol's default height for its width.
	Height float64
	Fill   style.Fill
	Stroke style.Stroke
	Label  string
	Text   style.Text
}

func newFrame(at gg.Point) Frame {
	return Frame{
		Position: at,
		Width:    DefaultWidth,
		Fill:     style.Fill{Paint: style.Color(gg.White)},
		Stroke:   style.DefaultStroke(),
		Text:     style.DefaultText(16),
	}
}

func (f *Frame) width() float64 {
	if f.Width > 0 {
		return f.Width
	}
	return DefaultWidth
}

func (f *Frame) height(s Symbol) float64 {
	if f.Height > 0 {
		return f.Height
	}
	return s.DefaultHeight(f.width())
}

func (f *Frame) drawLabel(c canvas.Canvas, at gg.Point) {
	f.Text.Draw(c, f.Label, at.X, at.Y)
}

// connector validates (side, index) against counts and returns the local
// point computed by local.
func connector(counts []int, side, index int, local func(side, index, n int) gg.Point) (gg.Point, error) {
	if side < 0 || side >= len(counts) {
		return gg.Point{}, errors.New(errors.ErrCodeOutOfRange, "connector side %d out of range [0, %d)", side, len(counts))
	}
	n := counts[side]
	if index < 0 || index >= n {
		return gg.Point{}, errors.New(errors.ErrCodeOutOfRange, "connector %d out of range [0, %d) on side %d", index, n, side)
	}
	return local(side, index, n), nil
}

// evenly returns the position of point i of n spread along length with
// equal gaps at both ends: (i+1)/(n+1).
func evenly(i, n int, length float64) float64 {
	return length * float64(i+1) / float64(n+1)
}

// centred returns the position of point i of n centred in equal slots:
// (2i+1)/(2n).
func centred(i, n int, length float64) float64 {
	return length * float64(2*i+1) / float64(2*n)
}
