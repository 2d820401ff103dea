// Package plot draws graph axes and colour maps of functions of a complex
// variable.
//
// An [Axes] maps a rectangle of graph space onto a rectangle of the canvas,
// with y pointing up. Division values are labelled by a [Formatter], so the
// same axes serve real plots ([Number]), Argand diagrams ([Imaginary] on the
// y axis) and unscaled sketches ([Blank]).
package plot

import (
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/canvas"
	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/shape"
	"github.com/matzehuels/drawkit/pkg/style"
)

// Axes defaults. The default position and size centre the axes on a 500 by
// 500 drawing.
const (
	DefaultX      = 20.0
	DefaultY      = 20.0
	DefaultSize   = 460.0
	DefaultExtent = 10.0
	// LabelGap separates division labels from the axis lines.
	LabelGap = 4.0
)

// Formatter turns a division value into its label.
type Formatter func(v float64) string

// Number labels v as a plain number rounded to three decimal places.
func Number(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

// Imaginary labels v as a multiple of i, writing "i" and "-i" rather than
// "1i" and "-1i".
func Imaginary(v float64) string {
	switch Number(v) {
	case "1":
		return "i"
	case "-1":
		return "-i"
	}
	return Number(v) + "i"
}

// Blank leaves divisions unlabelled.
func Blank(float64) string { return "" }

// Style sets the look of an [Axes].
type Style struct {
	Background style.Paint
	Axis       style.Stroke
	Division   style.Stroke
	// Subdivision lines are drawn Subdivisions times per division.
	Subdivision  style.Stroke
	Subdivisions int
	Text         style.Text
	// XFormat and YFormat label the divisions. Nil means [Number].
	XFormat, YFormat Formatter
}

var (
	grey      = gg.Hex("#808080")
	lightGrey = gg.Hex("#d3d3d3")
)

// DefaultStyle has grey axes over light grey divisions on white.
func DefaultStyle() Style {
	line := style.DefaultStroke().WithWidth(2.5)
	line.Cap = gg.LineCapButt
	t := style.DefaultText(15).WithPaint(style.Color(grey))
	return Style{
		Background:  style.Color(gg.White),
		Axis:        line.WithPaint(style.Color(grey)),
		Division:    line.WithPaint(style.Color(lightGrey)),
		Subdivision: line.WithPaint(style.Color(lightGrey)),
		Text:        t,
		XFormat:     Number,
		YFormat:     Number,
	}
}

// ArgandStyle is DefaultStyle with the y axis labelled as imaginary.
func ArgandStyle() Style {
	s := DefaultStyle()
	s.YFormat = Imaginary
	return s
}

// BlankStyle is DefaultStyle without division labels.
func BlankStyle() Style {
	s := DefaultStyle()
	s.XFormat, s.YFormat = Blank, Blank
	return s
}

// OverlayStyle draws black Argand axes with no background or division
// lines, for laying over an image.
func OverlayStyle() Style {
	s := ArgandStyle()
	s.Background = style.Paint{}
	s.Axis = s.Axis.WithPaint(style.Color(gg.Black))
	s.Division.Paint = style.Paint{}
	s.Subdivision.Paint = style.Paint{}
	s.Text = s.Text.WithPaint(style.Color(gg.Black))
	return s
}

// ParseStyle looks up a style by name: "plain" (or empty), "argand", "blank"
// or "overlay".
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(name) {
	case "", "plain":
		return DefaultStyle(), nil
	case "argand":
		return ArgandStyle(), nil
	case "blank":
		return BlankStyle(), nil
	case "overlay":
		return OverlayStyle(), nil
	}
	return Style{}, errors.New(errors.ErrCodeInvalidStyle, "unknown axes style: %q", name)
}

// Axes maps graph space onto a canvas rectangle.
type Axes struct {
	// Pos is the top-left corner on the canvas.
	Pos           gg.Point
	Width, Height float64
	// Start is the graph point at the bottom-left corner and Extent the
	// graph size covered.
	Start, Extent gg.Point
	// Divisions is the spacing of division lines in graph units.
	Divisions gg.Point
	Style     Style
}

// New returns axes at pos covering [0, 10] on both axes with unit
// divisions and the default style.
func New(pos gg.Point, width, height float64) *Axes {
	return &Axes{
		Pos:       pos,
		Width:     width,
		Height:    height,
		Extent:    gg.Pt(DefaultExtent, DefaultExtent),
		Divisions: gg.Pt(1, 1),
		Style:     DefaultStyle(),
	}
}

// Validate reports axes that cannot be drawn.
func (a *Axes) Validate() error {
	switch {
	case a.Width <= 0 || a.Height <= 0:
		return errors.New(errors.ErrCodeDegenerateGeometry, "axes size %vx%v", a.Width, a.Height)
	case a.Extent.X <= 0 || a.Extent.Y <= 0:
		return errors.New(errors.ErrCodeDegenerateGeometry, "axes extent %v", a.Extent)
	case a.Divisions.X <= 0 || a.Divisions.Y <= 0:
		return errors.New(errors.ErrCodeDegenerateGeometry, "axes divisions %v", a.Divisions)
	}
	return nil
}

// Transform maps a graph point to the canvas.
func (a *Axes) Transform(p gg.Point) gg.Point {
	return gg.Pt(
		a.Pos.X+(p.X-a.Start.X)*a.Width/a.Extent.X,
		a.Pos.Y+a.Height-(p.Y-a.Start.Y)*a.Height/a.Extent.Y,
	)
}

// Inverse maps a canvas point to graph space.
func (a *Axes) Inverse(p gg.Point) gg.Point {
	return gg.Pt(
		a.Start.X+(p.X-a.Pos.X)*a.Extent.X/a.Width,
		a.Start.Y+(a.Pos.Y+a.Height-p.Y)*a.Extent.Y/a.Height,
	)
}

// divisions returns the multiples of step in [lo, hi].
func divisions(lo, hi, step float64) []float64 {
	const eps = 1e-9
	var out []float64
	for k := math.Ceil(lo/step - eps); k*step <= hi+eps*step; k++ {
		out = append(out, k*step)
	}
	return out
}

// Draw draws the background, division lines, the two axes and the division
// labels. Each axis sits at zero when zero is in range, otherwise on the
// bottom or left edge. The origin is not labelled.
func (a *Axes) Draw(c canvas.Canvas) error {
	if err := a.Validate(); err != nil {
		return err
	}
	s := a.Style
	end := a.Start.Add(a.Extent)

	c.DrawRectangle(a.Pos.X, a.Pos.Y, a.Width, a.Height)
	if err := (style.Fill{Paint: s.Background}).Apply(c); err != nil {
		return err
	}

	grid := func(step float64, st style.Stroke) error {
		for _, x := range divisions(a.Start.X, end.X, step) {
			if err := shape.Line(c, a.Transform(gg.Pt(x, a.Start.Y)), a.Transform(gg.Pt(x, end.Y)), st); err != nil {
				return err
			}
		}
		return nil
	}
	gridY := func(step float64, st style.Stroke) error {
		for _, y := range divisions(a.Start.Y, end.Y, step) {
			if err := shape.Line(c, a.Transform(gg.Pt(a.Start.X, y)), a.Transform(gg.Pt(end.X, y)), st); err != nil {
				return err
			}
		}
		return nil
	}
	if n := s.Subdivisions; n > 0 {
		if err := grid(a.Divisions.X/float64(n), s.Subdivision); err != nil {
			return err
		}
		if err := gridY(a.Divisions.Y/float64(n), s.Subdivision); err != nil {
			return err
		}
	}
	if err := grid(a.Divisions.X, s.Division); err != nil {
		return err
	}
	if err := gridY(a.Divisions.Y, s.Division); err != nil {
		return err
	}

	ox := min(max(0, a.Start.X), end.X)
	oy := min(max(0, a.Start.Y), end.Y)
	if err := shape.Line(c, a.Transform(gg.Pt(a.Start.X, oy)), a.Transform(gg.Pt(end.X, oy)), s.Axis); err != nil {
		return err
	}
	if err := shape.Line(c, a.Transform(gg.Pt(ox, a.Start.Y)), a.Transform(gg.Pt(ox, end.Y)), s.Axis); err != nil {
		return err
	}

	xf, yf := s.XFormat, s.YFormat
	if xf == nil {
		xf = Number
	}
	if yf == nil {
		yf = Number
	}
	xt := s.Text
	xt.AnchorX, xt.AnchorY = 0.5, 0
	for _, x := range divisions(a.Start.X, end.X, a.Divisions.X) {
		if math.Abs(x) < 1e-9*a.Divisions.X {
			continue
		}
		p := a.Transform(gg.Pt(x, oy))
		xt.Draw(c, xf(x), p.X, p.Y+LabelGap)
	}
	yt := s.Text
	yt.AnchorX, yt.AnchorY = 1, 0.5
	for _, y := range divisions(a.Start.Y, end.Y, a.Divisions.Y) {
		if math.Abs(y) < 1e-9*a.Divisions.Y {
			continue
		}
		p := a.Transform(gg.Pt(ox, y))
		yt.Draw(c, yf(y), p.X-LabelGap, p.Y)
	}
	return nil
}
