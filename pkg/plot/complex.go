package plot

import (
	"image"
	"image/color"
	"math"
	"math/cmplx"
	"strings"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/drawkit/pkg/canvas"
	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/shape"
	"github.com/matzehuels/drawkit/pkg/style"
)

// Complex plane defaults.
const (
	DefaultKeyWidth = 30.0
	DefaultKeyGap   = 12.0
	// tableSize is the number of precomputed colour map entries.
	tableSize = 1000
)

// ComplexFunc is a real-valued function of a complex variable.
type ComplexFunc func(z complex128) float64

var complexMaps = map[string]func(complex128) complex128{
	"z":       func(z complex128) complex128 { return z },
	"z^2":     func(z complex128) complex128 { return z * z },
	"z^3":     func(z complex128) complex128 { return z * z * z },
	"1/z":     func(z complex128) complex128 { return 1 / z },
	"exp(z)":  cmplx.Exp,
	"log(z)":  cmplx.Log,
	"sqrt(z)": cmplx.Sqrt,
	"sin(z)":  cmplx.Sin,
	"cos(z)":  cmplx.Cos,
}

var complexValues = map[string]func(complex128) float64{
	"abs": cmplx.Abs,
	"re":  func(z complex128) float64 { return real(z) },
	"im":  func(z complex128) float64 { return imag(z) },
	"arg": cmplx.Phase,
}

// ParseComplexFunc parses "value(map)", where value is one of abs, re, im
// and arg, and map is one of z, z^2, z^3, 1/z, exp(z), log(z), sqrt(z),
// sin(z) and cos(z). A bare value applies to z itself.
func ParseComplexFunc(s string) (ComplexFunc, error) {
	src := strings.ReplaceAll(strings.ToLower(s), " ", "")
	name, arg, found := strings.Cut(src, "(")
	if !found {
		arg = "z)"
	}
	value, ok := complexValues[name]
	inner, isArg := strings.CutSuffix(arg, ")")
	fn, known := complexMaps[inner]
	if !ok || !isArg || !known {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown complex function %q", s)
	}
	return func(z complex128) float64 { return value(fn(z)) }, nil
}

// ColorMap blends evenly spaced colours.
type ColorMap []gg.RGBA

// DefaultColorMap runs from yellow through red and grey to blue.
func DefaultColorMap() ColorMap {
	return ColorMap{
		gg.Hex("#ffd700"), gg.Hex("#ffa500"), gg.Hex("#ff0000"), gg.Hex("#d3d3d3"),
		gg.Hex("#228b22"), gg.Hex("#00ffff"), gg.Hex("#1e90ff"),
	}
}

// At returns the colour at t in [0, 1], blended in CIE L*a*b*. t outside
// the range is clamped.
func (m ColorMap) At(t float64) gg.RGBA {
	switch len(m) {
	case 0:
		return gg.Black
	case 1:
		return m[0]
	}
	t = min(max(t, 0), 1) * float64(len(m)-1)
	i := min(int(t), len(m)-2)
	a, b := m[i], m[i+1]
	c := colorful.Color{R: a.R, G: a.G, B: a.B}.
		BlendLab(colorful.Color{R: b.R, G: b.G, B: b.B}, t-float64(i)).
		Clamped()
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: a.A + (b.A-a.A)*(t-float64(i))}
}

func (m ColorMap) table() []color.Color {
	out := make([]color.Color, tableSize)
	for i := range out {
		out[i] = m.At(float64(i) / (tableSize - 1)).Color()
	}
	return out
}

// PlaneOptions controls [NewComplexPlane].
type PlaneOptions struct {
	// Low and High are the function values at the two ends of the colour
	// map.
	Low, High float64
	// Steps are the values marked on the key.
	Steps  []float64
	Colors ColorMap
	// KeyWidth and KeyGap size the key bar and its distance from the axes.
	// Zero selects the defaults.
	KeyWidth, KeyGap float64
}

// ComplexPlane is a colour map of a function over an Argand diagram with a
// key bar to its right. It is immutable once built.
type ComplexPlane struct {
	axes  *Axes
	opts  PlaneOptions
	plane *image.RGBA
	key   *image.RGBA
}

// NewComplexPlane evaluates f at every pixel covered by a and renders the
// key. The axes are drawn over the map in the style already set on a.
func NewComplexPlane(a *Axes, f ComplexFunc, opts PlaneOptions) (*ComplexPlane, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if !(opts.High > opts.Low) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "colour range [%v, %v] is empty", opts.Low, opts.High)
	}
	if len(opts.Colors) == 0 {
		opts.Colors = DefaultColorMap()
	}
	if opts.KeyWidth <= 0 {
		opts.KeyWidth = DefaultKeyWidth
	}
	if opts.KeyGap <= 0 {
		opts.KeyGap = DefaultKeyGap
	}
	tab := opts.Colors.table()
	// Clamp before converting, since int(±Inf) is undefined.
	index := func(v float64) int {
		t := min(max((v-opts.Low)/(opts.High-opts.Low), 0), 1)
		return int(t * (tableSize - 1))
	}

	w, h := int(math.Round(a.Width)), int(math.Round(a.Height))
	plane := image.NewRGBA(image.Rect(0, 0, w, h))
	for py := range h {
		for px := range w {
			g := a.Inverse(gg.Pt(a.Pos.X+float64(px)+0.5, a.Pos.Y+float64(py)+0.5))
			v := f(complex(g.X, g.Y))
			if math.IsNaN(v) {
				continue
			}
			plane.Set(px, py, tab[index(v)])
		}
	}

	key := image.NewRGBA(image.Rect(0, 0, int(math.Round(opts.KeyWidth)), h))
	for py := range h {
		col := tab[min((h-1-py)*tableSize/h, tableSize-1)]
		for px := range key.Bounds().Dx() {
			key.Set(px, py, col)
		}
	}
	return &ComplexPlane{axes: a, opts: opts, plane: plane, key: key}, nil
}

// Axes returns the axes the plane is drawn on.
func (p *ComplexPlane) Axes() *Axes { return p.axes }

// KeyY returns the canvas y of value v on the key bar.
func (p *ComplexPlane) KeyY(v float64) float64 {
	l := (v - p.opts.Low) / (p.opts.High - p.opts.Low)
	return p.axes.Pos.Y + (1-l)*p.axes.Height
}

// Draw draws the colour map, the axes over it, then the key bar with a
// tick and label at each step.
func (p *ComplexPlane) Draw(c canvas.Canvas) error {
	a := p.axes
	c.DrawImage(p.plane, a.Pos.X, a.Pos.Y)
	if err := a.Draw(c); err != nil {
		return err
	}

	kx := a.Pos.X + a.Width + p.opts.KeyGap
	c.DrawImage(p.key, kx, a.Pos.Y)
	tick := style.DefaultStroke().WithWidth(2)
	tick.Cap = gg.LineCapButt
	label := style.DefaultText(15)
	label.AnchorX = 0
	right := kx + p.opts.KeyWidth
	for _, v := range p.opts.Steps {
		y := p.KeyY(v)
		if err := shape.Line(c, gg.Pt(right, y), gg.Pt(right+5, y), tick); err != nil {
			return err
		}
		label.Draw(c, Number(v), right+10, y)
	}
	return nil
}
