package canvas

import (
	"math"

	"github.com/gogpu/gg"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// noiseScale maps canvas units to noise space. Nearby points get similar
// offsets so a single stroke bends smoothly instead of shaking.
const noiseScale = 0.02

// SketchCanvas draws straight segments as gently curved strokes.
type SketchCanvas struct {
	Canvas
	noise     opensimplex.Noise
	amplitude float64
	cur       gg.Point
	start     gg.Point
	segments  int
}

// Sketch wraps c so that LineTo, ClosePath and DrawRectangle produce cubic
// curves displaced by at most amplitude perpendicular to the segment. The
// same seed always produces the same wobble. Curves, arcs and circles pass
// through unchanged.
func Sketch(c Canvas, seed int64, amplitude float64) *SketchCanvas {
	return &SketchCanvas{
		Canvas:    c,
		noise:     opensimplex.New(seed),
		amplitude: amplitude,
	}
}

func (s *SketchCanvas) MoveTo(x, y float64) {
	s.cur = gg.Pt(x, y)
	s.start = s.cur
	s.Canvas.MoveTo(x, y)
}

func (s *SketchCanvas) LineTo(x, y float64) {
	s.wobble(gg.Pt(x, y))
}

func (s *SketchCanvas) ClosePath() {
	if s.cur != s.start {
		s.wobble(s.start)
	}
	s.Canvas.ClosePath()
	s.cur = s.start
}

func (s *SketchCanvas) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	s.Canvas.CubicTo(c1x, c1y, c2x, c2y, x, y)
	s.cur = gg.Pt(x, y)
}

func (s *SketchCanvas) DrawArc(x, y, r, a1, a2 float64) {
	s.Canvas.DrawArc(x, y, r, a1, a2)
	for a2 < a1 {
		a2 += 2 * math.Pi
	}
	s.start = gg.Pt(x+r*math.Cos(a1), y+r*math.Sin(a1))
	s.cur = gg.Pt(x+r*math.Cos(a2), y+r*math.Sin(a2))
}

func (s *SketchCanvas) DrawCircle(x, y, r float64) {
	s.Canvas.DrawCircle(x, y, r)
	s.cur = gg.Pt(x+r, y)
	s.start = s.cur
}

func (s *SketchCanvas) DrawRectangle(x, y, w, h float64) {
	s.MoveTo(x, y)
	s.LineTo(x+w, y)
	s.LineTo(x+w, y+h)
	s.LineTo(x, y+h)
	s.ClosePath()
}

func (s *SketchCanvas) ClearPath() {
	s.Canvas.ClearPath()
	s.cur, s.start = gg.Point{}, gg.Point{}
}

func (s *SketchCanvas) wobble(to gg.Point) {
	from := s.cur
	s.cur = to
	d := to.Sub(from)
	l := d.Length()
	if l < 2*s.amplitude || s.amplitude <= 0 {
		s.Canvas.LineTo(to.X, to.Y)
		return
	}
	s.segments++
	n := gg.Pt(-d.Y/l, d.X/l)
	z := float64(s.segments)
	m1 := from.Lerp(to, 1.0/3)
	m2 := from.Lerp(to, 2.0/3)
	c1 := m1.Add(n.Mul(s.amplitude * s.noise.Eval3(m1.X*noiseScale, m1.Y*noiseScale, z)))
	c2 := m2.Add(n.Mul(s.amplitude * s.noise.Eval3(m2.X*noiseScale+100, m2.Y*noiseScale+100, z)))
	s.Canvas.CubicTo(c1.X, c1.Y, c2.X, c2.Y, to.X, to.Y)
}
