package graph

import (
	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/canvas"
	"github.com/matzehuels/drawkit/pkg/geom"
	"github.com/matzehuels/drawkit/pkg/shape"
	"github.com/matzehuels/drawkit/pkg/style"
)

// Edge joins two vertices by index. Zero-valued style fields inherit from
// the graph.
type Edge struct {
	Start, End int

	Directed bool
	Curved   bool
	// Curvature scales the bulge of a curved edge. Zero means
	// geom.DefaultCurvature; negative values bend to the other side.
	Curvature float64
	// Weight is drawn as a label when non-empty.
	Weight string
	// Offset, when set, replaces the computed label offset.
	Offset *gg.Point

	// LoopRadius and LoopAngle shape a loop edge (Start == End). A zero
	// radius means geom.DefaultLoopRadius; the angle is in radians.
	LoopRadius float64
	LoopAngle  float64

	Color     style.Paint
	LineWidth float64
	Font      string
	TextSize  float64
}

// IsLoop reports whether the edge starts and ends on the same vertex.
func (e *Edge) IsLoop() bool { return e.Start == e.End }

// WithDirection marks the edge as directed from Start to End.
func (e *Edge) WithDirection() *Edge { e.Directed = true; return e }

// WithCurve draws the edge as an arc with curvature k.
func (e *Edge) WithCurve(k float64) *Edge {
	e.Curved, e.Curvature = true, k
	return e
}

// WithWeight sets the weight label.
func (e *Edge) WithWeight(w string) *Edge { e.Weight = w; return e }

// WithOffset places the weight label at an explicit offset from its anchor.
func (e *Edge) WithOffset(p gg.Point) *Edge { e.Offset = &p; return e }

// WithLoop sets the radius and angular position of a loop edge.
func (e *Edge) WithLoop(radius, angle float64) *Edge {
	e.LoopRadius, e.LoopAngle = radius, angle
	return e
}

// WithColor overrides the line and label paint.
func (e *Edge) WithColor(p style.Paint) *Edge { e.Color = p; return e }

// WithLineWidth overrides the line width.
func (e *Edge) WithLineWidth(w float64) *Edge { e.LineWidth = w; return e }

// WithFont overrides the weight label font family and size.
func (e *Edge) WithFont(family string, size float64) *Edge {
	e.Font, e.TextSize = family, size
	return e
}

// edgeStyle is an edge's style with graph defaults filled in.
type edgeStyle struct {
	stroke   style.Stroke
	text     style.Text
	marker   float64
	textSize float64
}

func (g *Graph) edgeStyle(e *Edge) edgeStyle {
	paint := e.Color.Or(g.Foreground)
	lw := pick(e.LineWidth, g.LineWidth)
	ts := pick(e.TextSize, g.TextSize)
	text := style.DefaultText(ts).WithPaint(paint)
	text.Font = pickString(e.Font, g.Font)
	return edgeStyle{
		stroke:   style.DefaultStroke().WithPaint(paint).WithWidth(lw),
		text:     text,
		marker:   lw * markerScale,
		textSize: ts,
	}
}

func (g *Graph) drawEdge(c canvas.Canvas, e *Edge) error {
	from, to, err := g.endpoints(e)
	if err != nil {
		return err
	}
	st := g.edgeStyle(e)
	switch {
	case e.IsLoop():
		return g.drawLoop(c, e, from, st)
	case e.Curved:
		return drawCurve(c, e, from.Position, to.Position, st)
	default:
		return g.drawStraight(c, e, from.Position, to.Position, st)
	}
}

func (g *Graph) drawStraight(c canvas.Canvas, e *Edge, p0, p1 gg.Point, st edgeStyle) error {
	if err := shape.Line(c, p0, p1, st.stroke); err != nil {
		return err
	}
	dir := p1.Sub(p0)
	mid := geom.Midpoint(p0, p1)
	if e.Directed && dir.Length() > 0 {
		if err := shape.Marker(c, mid, geom.Angle(dir), st.marker, st.stroke); err != nil {
			return err
		}
	}
	drawWeight(c, e, mid, func() gg.Point {
		return geom.LabelOffset(dir, st.textSize, g.LabelSide)
	}, st)
	return nil
}

func drawCurve(c canvas.Canvas, e *Edge, p0, p1 gg.Point, st edgeStyle) error {
	k := e.Curvature
	if k == 0 {
		k = geom.DefaultCurvature
	}
	arc, err := geom.CurvedArc(p0, p1, k)
	if err != nil {
		return err
	}
	c.DrawArc(arc.Center.X, arc.Center.Y, arc.Radius, arc.Start, arc.End)
	if err := st.stroke.Apply(c); err != nil {
		return err
	}
	if e.Directed {
		if err := shape.Marker(c, arc.Apex, geom.Angle(p1.Sub(p0)), st.marker, st.stroke); err != nil {
			return err
		}
	}
	drawWeight(c, e, arc.Apex, func() gg.Point {
		return geom.OutwardOffset(arc.Direction, st.textSize)
	}, st)
	return nil
}

func (g *Graph) drawLoop(c canvas.Canvas, e *Edge, v *Vertex, st edgeStyle) error {
	lr := e.LoopRadius
	if lr <= 0 {
		lr = geom.DefaultLoopRadius
	}
	loop := geom.SelfLoop(v.Position, g.radius(v), lr, e.LoopAngle)
	c.DrawCircle(loop.Center.X, loop.Center.Y, loop.Radius)
	if err := st.stroke.Apply(c); err != nil {
		return err
	}
	if e.Directed {
		if err := shape.Marker(c, loop.Apex, loop.Tangent, st.marker, st.stroke); err != nil {
			return err
		}
	}
	drawWeight(c, e, loop.Apex, func() gg.Point {
		return geom.OutwardOffset(geom.Polar(1, loop.Angle), st.textSize)
	}, st)
	return nil
}

func drawWeight(c canvas.Canvas, e *Edge, anchor gg.Point, offset func() gg.Point, st edgeStyle) {
	if e.Weight == "" {
		return
	}
	var off gg.Point
	if e.Offset != nil {
		off = *e.Offset
	} else {
		off = offset()
	}
	shape.Label(c, e.Weight, anchor, off, st.text)
}
