package canvas

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"
)

type recorderCanvas struct {
	rec *recording.Recorder
}

// FromRecorder returns a Canvas that records onto rec. Text is recorded with
// its family and size; measurements are approximate.
func FromRecorder(rec *recording.Recorder) Canvas {
	c := &recorderCanvas{rec: rec}
	c.SetFont(FamilyRegular, 12)
	return c
}

func (c *recorderCanvas) Width() int  { return c.rec.Width() }
func (c *recorderCanvas) Height() int { return c.rec.Height() }
func (c *recorderCanvas) Push()       { c.rec.Push() }
func (c *recorderCanvas) Pop()        { c.rec.Pop() }

func (c *recorderCanvas) MoveTo(x, y float64) { c.rec.MoveTo(x, y) }
func (c *recorderCanvas) LineTo(x, y float64) { c.rec.LineTo(x, y) }
func (c *recorderCanvas) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	c.rec.CubicTo(c1x, c1y, c2x, c2y, x, y)
}
func (c *recorderCanvas) ClosePath() { c.rec.ClosePath() }
func (c *recorderCanvas) ClearPath() { c.rec.ClearPath() }

func (c *recorderCanvas) DrawArc(x, y, r, a1, a2 float64) {
	c.rec.MoveTo(x+r*math.Cos(a1), y+r*math.Sin(a1))
	c.rec.DrawArc(x, y, r, a1, a2)
}

func (c *recorderCanvas) DrawCircle(x, y, r float64)       { c.rec.DrawCircle(x, y, r) }
func (c *recorderCanvas) DrawRectangle(x, y, w, h float64) { c.rec.DrawRectangle(x, y, w, h) }

func (c *recorderCanvas) Clear(col gg.RGBA) {
	c.rec.Push()
	c.rec.SetFillBrush(gg.Solid(col))
	c.rec.FillRectangle(0, 0, float64(c.rec.Width()), float64(c.rec.Height()))
	c.rec.Pop()
}

func (c *recorderCanvas) SetColor(col gg.RGBA) { c.rec.SetColor(col) }

func (c *recorderCanvas) SetBrush(b gg.Brush) {
	c.rec.SetFillBrush(b)
	c.rec.SetStrokeBrush(b)
}

func (c *recorderCanvas) SetLineWidth(w float64)      { c.rec.SetLineWidth(w) }
func (c *recorderCanvas) SetLineCap(lc gg.LineCap)    { c.rec.SetLineCapGG(lc) }
func (c *recorderCanvas) SetLineJoin(j gg.LineJoin)   { c.rec.SetLineJoinGG(j) }
func (c *recorderCanvas) SetMiterLimit(limit float64) { c.rec.SetMiterLimit(limit) }
func (c *recorderCanvas) SetDash(lengths ...float64)  { c.rec.SetDash(lengths...) }
func (c *recorderCanvas) SetFillRule(r gg.FillRule)   { c.rec.SetFillRuleGG(r) }

func (c *recorderCanvas) Fill() error {
	c.rec.Fill()
	return nil
}

func (c *recorderCanvas) FillPreserve() error {
	c.rec.FillPreserve()
	return nil
}

func (c *recorderCanvas) Stroke() error {
	c.rec.Stroke()
	return nil
}

func (c *recorderCanvas) SetFont(family string, size float64) {
	c.rec.SetFontFamily(family)
	c.rec.SetFontSize(size)
}

func (c *recorderCanvas) DrawText(s string, x, y, ax, ay float64) {
	c.rec.DrawStringAnchored(s, x, y, ax, ay)
}

func (c *recorderCanvas) MeasureText(s string) (float64, float64) {
	return c.rec.MeasureString(s)
}

func (c *recorderCanvas) DrawImage(img image.Image, x, y float64) {
	c.rec.DrawImage(img, int(math.Round(x)), int(math.Round(y)))
}
