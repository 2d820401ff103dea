package canvas

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// OffsetCanvas shifts everything drawn by a fixed amount.
type OffsetCanvas struct {
	Canvas
	dx, dy float64
}

// Offset wraps c so that all geometry, text and images are moved by
// (dx, dy). Brush coordinates are not moved.
func Offset(c Canvas, dx, dy float64) Canvas {
	if dx == 0 && dy == 0 {
		return c
	}
	return &OffsetCanvas{Canvas: c, dx: dx, dy: dy}
}

func (o *OffsetCanvas) MoveTo(x, y float64) { o.Canvas.MoveTo(x+o.dx, y+o.dy) }
func (o *OffsetCanvas) LineTo(x, y float64) { o.Canvas.LineTo(x+o.dx, y+o.dy) }

func (o *OffsetCanvas) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	o.Canvas.CubicTo(c1x+o.dx, c1y+o.dy, c2x+o.dx, c2y+o.dy, x+o.dx, y+o.dy)
}

func (o *OffsetCanvas) DrawArc(x, y, r, a1, a2 float64) { o.Canvas.DrawArc(x+o.dx, y+o.dy, r, a1, a2) }
func (o *OffsetCanvas) DrawCircle(x, y, r float64)      { o.Canvas.DrawCircle(x+o.dx, y+o.dy, r) }

func (o *OffsetCanvas) DrawRectangle(x, y, w, h float64) {
	o.Canvas.DrawRectangle(x+o.dx, y+o.dy, w, h)
}

func (o *OffsetCanvas) DrawText(s string, x, y, ax, ay float64) {
	o.Canvas.DrawText(s, x+o.dx, y+o.dy, ax, ay)
}

func (o *OffsetCanvas) DrawImage(img image.Image, x, y float64) {
	o.Canvas.DrawImage(img, x+o.dx, y+o.dy)
}

// FadeCanvas multiplies the alpha of every colour, brush and image.
type FadeCanvas struct {
	Canvas
	alpha float64
}

// Fade wraps c so that everything drawn is scaled by alpha in [0, 1].
// Custom brushes pass through unchanged.
func Fade(c Canvas, alpha float64) Canvas {
	alpha = min(max(alpha, 0), 1)
	if alpha == 1 {
		return c
	}
	return &FadeCanvas{Canvas: c, alpha: alpha}
}

func (f *FadeCanvas) SetColor(c gg.RGBA) {
	c.A *= f.alpha
	f.Canvas.SetColor(c)
}

func (f *FadeCanvas) SetBrush(b gg.Brush) {
	switch v := b.(type) {
	case gg.SolidBrush:
		f.SetColor(v.Color)
		return
	case *gg.LinearGradientBrush:
		// A fresh brush, since the original caches its sorted stops.
		b = &gg.LinearGradientBrush{Start: v.Start, End: v.End, Stops: f.stops(v.Stops), Extend: v.Extend}
	}
	f.Canvas.SetBrush(b)
}

func (f *FadeCanvas) stops(in []gg.ColorStop) []gg.ColorStop {
	out := make([]gg.ColorStop, len(in))
	for i, s := range in {
		s.Color.A *= f.alpha
		out[i] = s
	}
	return out
}

func (f *FadeCanvas) DrawImage(img image.Image, x, y float64) {
	b := img.Bounds()
	faded := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	mask := image.NewUniform(color.Alpha{A: uint8(f.alpha*255 + 0.5)})
	draw.DrawMask(faded, faded.Bounds(), img, b.Min, mask, image.Point{}, draw.Over)
	f.Canvas.DrawImage(faded, x, y)
}

// ZoomCanvas scales everything drawn about a fixed point.
type ZoomCanvas struct {
	Canvas
	cx, cy, s float64
}

// Zoom wraps c so that geometry, line widths, dashes, text and images are
// scaled by s about (cx, cy). s must be positive.
func Zoom(c Canvas, cx, cy, s float64) Canvas {
	if s == 1 || s <= 0 {
		return c
	}
	return &ZoomCanvas{Canvas: c, cx: cx, cy: cy, s: s}
}

func (z *ZoomCanvas) x(v float64) float64 { return z.cx + (v-z.cx)*z.s }
func (z *ZoomCanvas) y(v float64) float64 { return z.cy + (v-z.cy)*z.s }

func (z *ZoomCanvas) MoveTo(x, y float64) { z.Canvas.MoveTo(z.x(x), z.y(y)) }
func (z *ZoomCanvas) LineTo(x, y float64) { z.Canvas.LineTo(z.x(x), z.y(y)) }

func (z *ZoomCanvas) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	z.Canvas.CubicTo(z.x(c1x), z.y(c1y), z.x(c2x), z.y(c2y), z.x(x), z.y(y))
}

func (z *ZoomCanvas) DrawArc(x, y, r, a1, a2 float64) {
	z.Canvas.DrawArc(z.x(x), z.y(y), r*z.s, a1, a2)
}

func (z *ZoomCanvas) DrawCircle(x, y, r float64) { z.Canvas.DrawCircle(z.x(x), z.y(y), r*z.s) }

func (z *ZoomCanvas) DrawRectangle(x, y, w, h float64) {
	z.Canvas.DrawRectangle(z.x(x), z.y(y), w*z.s, h*z.s)
}

func (z *ZoomCanvas) SetLineWidth(w float64) { z.Canvas.SetLineWidth(w * z.s) }

func (z *ZoomCanvas) SetDash(lengths ...float64) {
	scaled := make([]float64, len(lengths))
	for i, l := range lengths {
		scaled[i] = l * z.s
	}
	z.Canvas.SetDash(scaled...)
}

func (z *ZoomCanvas) SetFont(family string, size float64) { z.Canvas.SetFont(family, size*z.s) }

func (z *ZoomCanvas) DrawText(s string, x, y, ax, ay float64) {
	z.Canvas.DrawText(s, z.x(x), z.y(y), ax, ay)
}

// MeasureText reports the size in unzoomed units.
func (z *ZoomCanvas) MeasureText(s string) (w, h float64) {
	w, h = z.Canvas.MeasureText(s)
	return w / z.s, h / z.s
}

func (z *ZoomCanvas) DrawImage(img image.Image, x, y float64) {
	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*z.s+0.5))
	h := max(1, int(float64(b.Dy())*z.s+0.5))
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, draw.Over, nil)
	z.Canvas.DrawImage(scaled, z.x(x), z.y(y))
}
