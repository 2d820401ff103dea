package symbol

import (
	"fmt"
	"strings"

	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/canvas"
	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/shape"
)

// Gate sides.
const (
	Inputs  = 0
	Outputs = 1
)

// Kind identifies a logic gate.
type Kind int

// Gate kinds.
const (
	AND Kind = iota
	NAND
	OR
	NOR
	XOR
	XNOR
	NOT
	BUFFER
)

var kindNames = map[Kind]string{
	AND: "and", NAND: "nand", OR: "or", NOR: "nor",
	XOR: "xor", XNOR: "xnor", NOT: "not", BUFFER: "buffer",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses a gate name such as "nand". Case is ignored.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown gate kind: %q", s)
}

// Inverted reports whether the gate draws an output bubble.
func (k Kind) Inverted() bool {
	return k == NAND || k == NOR || k == XNOR || k == NOT
}

// single reports whether the gate has a fixed single input.
func (k Kind) single() bool { return k == NOT || k == BUFFER }

// Gate proportions, as fractions of the body width.
const (
	bubbleFraction = 1.0 / 20 // bubble radius
	orBackFraction = 0.25     // depth of the OR back curve control points
	xorGapFraction = 0.1      // gap between XOR's extra curve and its body
)

// Gate is a logic gate symbol.
type Gate struct {
	Frame
	Kind Kind
	// NumInputs is the number of inputs; NOT and BUFFER always have one.
	// Zero means two.
	NumInputs int
}

// NewGate returns a gate of the given kind with its top-left corner at at.
func NewGate(kind Kind, at gg.Point, inputs int) *Gate {
	return &Gate{Frame: newFrame(at), Kind: kind, NumInputs: inputs}
}

func (g *Gate) inputs() int {
	switch {
	case g.Kind.single():
		return 1
	case g.NumInputs > 0:
		return g.NumInputs
	default:
		return 2
	}
}

// DefaultHeight is the width for NOT and BUFFER and 0.8 of the width for
// the other gates.
func (g *Gate) DefaultHeight(width float64) float64 {
	if g.Kind.single() {
		return width
	}
	return 0.8 * width
}

// Sides returns 2: inputs and outputs.
func (g *Gate) Sides() int { return 2 }

func (g *Gate) bubbleRadius() float64 {
	if !g.Kind.Inverted() {
		return 0
	}
	return g.width() * bubbleFraction
}

// Bounds includes the output bubble.
func (g *Gate) Bounds() (gg.Point, gg.Point) {
	w := g.width() + 2*g.bubbleRadius()
	return g.Position, g.Position.Add(gg.Pt(w, g.height(g)))
}

// LabelPos is the centre of the gate body.
func (g *Gate) LabelPos() gg.Point {
	return g.Position.Add(gg.Pt(g.width()/2, g.height(g)/2))
}

// Connector returns input index on side [Inputs] or the output on side
// [Outputs].
func (g *Gate) Connector(side, index int) (gg.Point, error) {
	w, h := g.width(), g.height(g)
	local, err := connector([]int{g.inputs(), 1}, side, index, func(side, i, n int) gg.Point {
		if side == Inputs {
			return gg.Pt(0, centred(i, n, h))
		}
		return gg.Pt(w+2*g.bubbleRadius(), h/2)
	})
	if err != nil {
		return gg.Point{}, err
	}
	return g.Position.Add(local), nil
}

// Draw draws the body, any input leads and the output bubble.
func (g *Gate) Draw(c canvas.Canvas) error {
	w, h := g.width(), g.height(g)
	o := g.Position

	body := func() {
		switch g.Kind {
		case AND, NAND:
			traceAnd(c, o, w, h)
		case OR, NOR:
			traceOr(c, o, w, h)
		case XOR, XNOR:
			traceOr(c, o.Add(gg.Pt(w*xorGapFraction, 0)), w*(1-xorGapFraction), h)
		default:
			c.MoveTo(o.X, o.Y)
			c.LineTo(o.X, o.Y+h)
			c.LineTo(o.X+w, o.Y+h/2)
			c.ClosePath()
		}
	}
	body()
	if err := g.Fill.Apply(c); err != nil {
		return err
	}
	body()
	if err := g.Stroke.Apply(c); err != nil {
		return err
	}

	switch g.Kind {
	case OR, NOR:
		if err := g.drawLeads(c, o, w); err != nil {
			return err
		}
	case XOR, XNOR:
		traceOrBack(c, o, w*(1-xorGapFraction), h, false)
		if err := g.Stroke.Apply(c); err != nil {
			return err
		}
		if err := g.drawLeads(c, o.Add(gg.Pt(w*xorGapFraction, 0)), w*(1-xorGapFraction)); err != nil {
			return err
		}
	}

	if r := g.bubbleRadius(); r > 0 {
		centre := o.Add(gg.Pt(w+r, h/2))
		if err := shape.Circle(c, centre, r, g.Fill, g.Stroke); err != nil {
			return err
		}
	}
	g.drawLabel(c, g.LabelPos())
	return nil
}

// drawLeads draws short horizontal lines from each input connector to the
// concave back of an OR-family body whose left edge is at body.
func (g *Gate) drawLeads(c canvas.Canvas, body gg.Point, w float64) error {
	h := g.height(g)
	n := g.inputs()
	for i := range n {
		y := centred(i, n, h)
		x := orBackX(y, w, h)
		if body.X+x-g.Position.X < 1e-9 {
			continue
		}
		c.MoveTo(g.Position.X, g.Position.Y+y)
		c.LineTo(body.X+x, g.Position.Y+y)
	}
	return g.Stroke.Apply(c)
}

// traceAnd traces a D shape: flat back, straight top and bottom, and a
// half-ellipse front built from two quarter cubics so the outline stays one
// subpath.
func traceAnd(c canvas.Canvas, o gg.Point, w, h float64) {
	ry := h / 2
	rx := min(ry, w)
	cx, cy := o.X+w-rx, o.Y+ry
	c.MoveTo(o.X, o.Y)
	c.LineTo(cx, o.Y)
	c.CubicTo(cx+rx*kappa, o.Y, o.X+w, cy-ry*kappa, o.X+w, cy)
	c.CubicTo(o.X+w, cy+ry*kappa, cx+rx*kappa, o.Y+h, cx, o.Y+h)
	c.LineTo(o.X, o.Y+h)
	c.ClosePath()
}

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498307936

// traceOr traces the OR body: a concave back and two curves meeting at the
// output point.
func traceOr(c canvas.Canvas, o gg.Point, w, h float64) {
	tip := o.Add(gg.Pt(w, h/2))
	c.MoveTo(o.X, o.Y)
	c.CubicTo(o.X+w*0.5, o.Y, o.X+w*0.85, o.Y+h*0.15, tip.X, tip.Y)
	c.CubicTo(o.X+w*0.85, o.Y+h*0.85, o.X+w*0.5, o.Y+h, o.X, o.Y+h)
	traceOrBack(c, o, w, h, true)
	c.ClosePath()
}

// traceOrBack traces the concave back curve from bottom to top. When cont
// is false it starts a new subpath.
func traceOrBack(c canvas.Canvas, o gg.Point, w, h float64, cont bool) {
	q := w * orBackFraction
	if !cont {
		c.MoveTo(o.X, o.Y+h)
	}
	c.CubicTo(o.X+q, o.Y+h*0.75, o.X+q, o.Y+h*0.25, o.X, o.Y)
}

// orBackX returns the x offset of the back curve at height y. The curve's
// control points are evenly spaced in y, so y is linear in the curve
// parameter and x = 3q·t(1-t) with t = 1 - y/h.
func orBackX(y, w, h float64) float64 {
	t := 1 - y/h
	return 3 * w * orBackFraction * t * (1 - t)
}
