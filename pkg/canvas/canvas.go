package canvas

import (
	"image"

	"github.com/gogpu/gg"
)

// Canvas is a 2D drawing surface.
//
// Implementations are not safe for concurrent use. Fill and Stroke consume
// the current path.
type Canvas interface {
	Width() int
	Height() int

	// Push saves the drawing state; Pop restores it.
	Push()
	Pop()

	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	ClosePath()
	ClearPath()
	DrawArc(x, y, r, a1, a2 float64)
	DrawCircle(x, y, r float64)
	DrawRectangle(x, y, w, h float64)

	// Clear paints the whole surface with c.
	Clear(c gg.RGBA)
	SetColor(c gg.RGBA)
	SetBrush(b gg.Brush)
	SetLineWidth(w float64)
	SetLineCap(c gg.LineCap)
	SetLineJoin(j gg.LineJoin)
	SetMiterLimit(limit float64)
	// SetDash sets the dash pattern. No arguments means a solid line.
	SetDash(lengths ...float64)
	SetFillRule(r gg.FillRule)

	Fill() error
	FillPreserve() error
	Stroke() error

	SetFont(family string, size float64)
	// DrawText draws s with the anchor (ax, ay) at (x, y). (0.5, 0.5)
	// centres the text on the point.
	DrawText(s string, x, y, ax, ay float64)
	MeasureText(s string) (w, h float64)
	DrawImage(img image.Image, x, y float64)
}
