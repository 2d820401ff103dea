// Package style resolves fill, stroke and text parameters and applies them to
// a canvas.
//
// Styles are plain values. Each has a useful zero value or a Default*
// constructor, and missing parameters always fall back to defaults rather
// than producing errors. Only [ParseColor] and the other Parse* helpers,
// which read user input, can fail.
package style

import (
	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/canvas"
)

// Paint is either a solid colour or a brush (gradient, pattern). The zero
// Paint paints nothing.
type Paint struct {
	color *gg.RGBA
	brush gg.Brush
}

// Color returns a solid-colour Paint.
func Color(c gg.RGBA) Paint { return Paint{color: &c} }

// Brush returns a Paint using b.
func Brush(b gg.Brush) Paint {
	if b == nil {
		return Paint{}
	}
	return Paint{brush: b}
}

// IsZero reports whether p paints nothing.
func (p Paint) IsZero() bool { return p.color == nil && p.brush == nil }

// RGBA returns the solid colour of p, or false for brushes and empty paints.
func (p Paint) RGBA() (gg.RGBA, bool) {
	if p.color == nil {
		return gg.RGBA{}, false
	}
	return *p.color, true
}

// WithAlpha returns p with its alpha multiplied by a. Brushes are returned
// unchanged.
func (p Paint) WithAlpha(a float64) Paint {
	if p.color == nil {
		return p
	}
	c := *p.color
	c.A *= a
	return Color(c)
}

// Or returns p, or fallback if p is zero.
func (p Paint) Or(fallback Paint) Paint {
	if p.IsZero() {
		return fallback
	}
	return p
}

// Apply sets p as the current paint of c. It reports false for the zero
// Paint so callers can skip the fill or stroke.
func (p Paint) Apply(c canvas.Canvas) bool {
	switch {
	case p.color != nil:
		c.SetColor(*p.color)
	case p.brush != nil:
		c.SetBrush(p.brush)
	default:
		return false
	}
	return true
}

// Fill describes how closed shapes are filled.
type Fill struct {
	Paint Paint
	Rule  gg.FillRule
}

// Apply fills the current path of c. The path is consumed either way.
func (f Fill) Apply(c canvas.Canvas) error {
	if !f.Paint.Apply(c) {
		c.ClearPath()
		return nil
	}
	c.SetFillRule(f.Rule)
	return c.Fill()
}

// ApplyPreserve fills the current path of c and keeps it for a stroke.
func (f Fill) ApplyPreserve(c canvas.Canvas) error {
	if !f.Paint.Apply(c) {
		return nil
	}
	c.SetFillRule(f.Rule)
	return c.FillPreserve()
}

// Stroke describes how lines are drawn.
type Stroke struct {
	Paint      Paint
	Width      float64
	Dash       []float64
	Cap        gg.LineCap
	Join       gg.LineJoin
	MiterLimit float64
}

// DefaultStroke returns a 1 unit black stroke with square caps and mitred
// joins.
func DefaultStroke() Stroke {
	return Stroke{
		Paint:      Color(gg.Black),
		Width:      1,
		Cap:        gg.LineCapSquare,
		Join:       gg.LineJoinMiter,
		MiterLimit: 10,
	}
}

// WithWidth returns s with the given width.
func (s Stroke) WithWidth(w float64) Stroke {
	s.Width = w
	return s
}

// WithPaint returns s with the given paint.
func (s Stroke) WithPaint(p Paint) Stroke {
	s.Paint = p
	return s
}

// Set pushes the stroke parameters to c without stroking. It reports false
// if the paint is empty.
func (s Stroke) Set(c canvas.Canvas) bool {
	if !s.Paint.Apply(c) {
		return false
	}
	w := s.Width
	if w <= 0 {
		w = 1
	}
	c.SetLineWidth(w)
	c.SetLineCap(s.Cap)
	c.SetLineJoin(s.Join)
	if s.MiterLimit > 0 {
		c.SetMiterLimit(s.MiterLimit)
	}
	c.SetDash(s.Dash...)
	return true
}

// Apply strokes the current path of c. The path is consumed either way.
func (s Stroke) Apply(c canvas.Canvas) error {
	if !s.Set(c) {
		c.ClearPath()
		return nil
	}
	return c.Stroke()
}

// Text describes how labels are drawn.
type Text struct {
	Font  string
	Size  float64
	Paint Paint
	// AnchorX and AnchorY place the text relative to its position;
	// (0.5, 0.5) centres it.
	AnchorX, AnchorY float64
}

// DefaultText returns centred black text in the default family.
func DefaultText(size float64) Text {
	return Text{
		Font:    canvas.FamilyRegular,
		Size:    size,
		Paint:   Color(gg.Black),
		AnchorX: 0.5,
		AnchorY: 0.5,
	}
}

// Draw draws s at (x, y).
func (t Text) Draw(c canvas.Canvas, s string, x, y float64) {
	if s == "" || !t.Paint.Apply(c) {
		return
	}
	font := t.Font
	if font == "" {
		font = canvas.FamilyRegular
	}
	size := t.Size
	if size <= 0 {
		size = 12
	}
	c.SetFont(font, size)
	c.DrawText(s, x, y, t.AnchorX, t.AnchorY)
}

// WithPaint returns t with the given paint.
func (t Text) WithPaint(p Paint) Text {
	t.Paint = p
	return t
}
