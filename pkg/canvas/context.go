package canvas

import (
	"image"
	"math"

	"github.com/gogpu/gg"
)

// Option configures a Canvas created by [FromContext].
type Option func(*contextCanvas)

// WithFonts uses fonts instead of [DefaultFonts].
func WithFonts(fonts *Fonts) Option {
	return func(c *contextCanvas) { c.fonts = fonts }
}

type contextCanvas struct {
	ctx   *gg.Context
	fonts *Fonts
}

// FromContext returns a Canvas drawing onto ctx. The caller keeps ownership
// of ctx and is responsible for closing it.
func FromContext(ctx *gg.Context, opts ...Option) Canvas {
	c := &contextCanvas{ctx: ctx, fonts: DefaultFonts()}
	for _, opt := range opts {
		opt(c)
	}
	c.SetFont(FamilyRegular, 12)
	return c
}

func (c *contextCanvas) Width() int  { return c.ctx.Width() }
func (c *contextCanvas) Height() int { return c.ctx.Height() }
func (c *contextCanvas) Push()       { c.ctx.Push() }
func (c *contextCanvas) Pop()        { c.ctx.Pop() }

func (c *contextCanvas) MoveTo(x, y float64) { c.ctx.MoveTo(x, y) }
func (c *contextCanvas) LineTo(x, y float64) { c.ctx.LineTo(x, y) }
func (c *contextCanvas) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	c.ctx.CubicTo(c1x, c1y, c2x, c2y, x, y)
}
func (c *contextCanvas) ClosePath() { c.ctx.ClosePath() }
func (c *contextCanvas) ClearPath() { c.ctx.ClearPath() }

// DrawArc moves to the arc start first: gg only emits a MoveTo for an arc
// when the path is empty.
func (c *contextCanvas) DrawArc(x, y, r, a1, a2 float64) {
	c.ctx.MoveTo(x+r*math.Cos(a1), y+r*math.Sin(a1))
	c.ctx.DrawArc(x, y, r, a1, a2)
}

func (c *contextCanvas) DrawCircle(x, y, r float64)       { c.ctx.DrawCircle(x, y, r) }
func (c *contextCanvas) DrawRectangle(x, y, w, h float64) { c.ctx.DrawRectangle(x, y, w, h) }

func (c *contextCanvas) Clear(col gg.RGBA)      { c.ctx.ClearWithColor(col) }
func (c *contextCanvas) SetColor(col gg.RGBA)   { c.ctx.SetFillBrush(gg.Solid(col)) }
func (c *contextCanvas) SetBrush(b gg.Brush)    { c.ctx.SetFillBrush(b) }
func (c *contextCanvas) SetLineWidth(w float64) { c.ctx.SetLineWidth(w) }
func (c *contextCanvas) SetLineCap(lc gg.LineCap) {
	c.ctx.SetLineCap(lc)
}
func (c *contextCanvas) SetLineJoin(j gg.LineJoin)   { c.ctx.SetLineJoin(j) }
func (c *contextCanvas) SetMiterLimit(limit float64) { c.ctx.SetMiterLimit(limit) }

func (c *contextCanvas) SetDash(lengths ...float64) {
	if len(lengths) == 0 {
		c.ctx.ClearDash()
		return
	}
	c.ctx.SetDash(lengths...)
}

func (c *contextCanvas) SetFillRule(r gg.FillRule) { c.ctx.SetFillRule(r) }
func (c *contextCanvas) Fill() error               { return c.ctx.Fill() }
func (c *contextCanvas) FillPreserve() error       { return c.ctx.FillPreserve() }
func (c *contextCanvas) Stroke() error             { return c.ctx.Stroke() }

func (c *contextCanvas) SetFont(family string, size float64) {
	if face := c.fonts.Face(family, size); face != nil {
		c.ctx.SetFont(face)
	}
}

func (c *contextCanvas) DrawText(s string, x, y, ax, ay float64) {
	c.ctx.DrawStringAnchored(s, x, y, ax, ay)
}

func (c *contextCanvas) MeasureText(s string) (float64, float64) {
	return c.ctx.MeasureString(s)
}

func (c *contextCanvas) DrawImage(img image.Image, x, y float64) {
	if img == nil {
		return
	}
	c.ctx.DrawImage(gg.ImageBufFromImage(img), x, y)
}
