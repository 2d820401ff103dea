package graph

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/canvas"
	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/shape"
	"github.com/matzehuels/drawkit/pkg/style"
)

// Defaults for a new Graph.
const (
	DefaultLineWidth = 4.0
	DefaultRadius    = 30.0
	DefaultTextSize  = 30.0
)

// markerScale sets direction marker arm length as a multiple of line width.
const markerScale = 4

// Vertex is a labelled circle. Zero-valued style fields inherit from the
// graph.
type Vertex struct {
	Position gg.Point
	Label    string
	// Auto marks a vertex whose position is to be assigned by a layout
	// engine.
	Auto bool

	Foreground style.Paint
	Background style.Paint
	LineWidth  float64
	Radius     float64
	Font       string
	TextSize   float64
}

// WithForeground overrides the outline and label paint.
func (v *Vertex) WithForeground(p style.Paint) *Vertex { v.Foreground = p; return v }

// WithBackground overrides the fill paint.
func (v *Vertex) WithBackground(p style.Paint) *Vertex { v.Background = p; return v }

// WithLineWidth overrides the outline width.
func (v *Vertex) WithLineWidth(w float64) *Vertex { v.LineWidth = w; return v }

// WithRadius overrides the circle radius.
func (v *Vertex) WithRadius(r float64) *Vertex { v.Radius = r; return v }

// WithFont overrides the label font family and size.
func (v *Vertex) WithFont(family string, size float64) *Vertex {
	v.Font, v.TextSize = family, size
	return v
}

// Graph is an ordered set of vertices, a list of edges and a default style.
type Graph struct {
	Vertices []*Vertex
	Edges    []*Edge

	Foreground style.Paint
	Background style.Paint
	LineWidth  float64
	Radius     float64
	Font       string
	TextSize   float64
	// LabelSide selects the side of straight edges that weight labels use:
	// +1 (default) rotates the edge direction by -90°, -1 by +90°.
	LabelSide int
}

// New returns an empty graph with black outlines on white vertices.
func New() *Graph {
	return &Graph{
		Foreground: style.Color(gg.Black),
		Background: style.Color(gg.White),
		LineWidth:  DefaultLineWidth,
		Radius:     DefaultRadius,
		Font:       canvas.FamilyRegular,
		TextSize:   DefaultTextSize,
		LabelSide:  1,
	}
}

// AddVertex appends a vertex and returns its index.
func (g *Graph) AddVertex(at gg.Point, label string) int {
	g.Vertices = append(g.Vertices, &Vertex{Position: at, Label: label})
	return len(g.Vertices) - 1
}

// Vertex returns the vertex at index i for further configuration.
func (g *Graph) Vertex(i int) (*Vertex, error) {
	if i < 0 || i >= len(g.Vertices) {
		return nil, errors.New(errors.ErrCodeOutOfRange, "vertex %d out of range [0, %d)", i, len(g.Vertices))
	}
	return g.Vertices[i], nil
}

// AddEdge appends an edge from start to end and returns it for chained
// configuration. Indices are not checked until the graph is drawn.
func (g *Graph) AddEdge(start, end int) *Edge {
	e := &Edge{Start: start, End: end}
	g.Edges = append(g.Edges, e)
	return e
}

// WithForeground sets the default outline, edge and text paint.
func (g *Graph) WithForeground(p style.Paint) *Graph { g.Foreground = p; return g }

// WithBackground sets the default vertex fill.
func (g *Graph) WithBackground(p style.Paint) *Graph { g.Background = p; return g }

// WithLineWidth sets the default line width.
func (g *Graph) WithLineWidth(w float64) *Graph { g.LineWidth = w; return g }

// WithRadius sets the default vertex radius.
func (g *Graph) WithRadius(r float64) *Graph { g.Radius = r; return g }

// WithFont sets the default font family and text size.
func (g *Graph) WithFont(family string, size float64) *Graph {
	g.Font, g.TextSize = family, size
	return g
}

// WithLabelSide sets which side of straight edges weight labels use.
func (g *Graph) WithLabelSide(side int) *Graph { g.LabelSide = side; return g }

// Validate checks that every edge refers to existing vertices.
func (g *Graph) Validate() error {
	for i, e := range g.Edges {
		if _, _, err := g.endpoints(e); err != nil {
			return wrapEdge(i, err)
		}
	}
	return nil
}

// Bounds returns the smallest rectangle containing every vertex circle, as
// its minimum and maximum corners. An empty graph has empty bounds.
func (g *Graph) Bounds() (gg.Point, gg.Point) {
	if len(g.Vertices) == 0 {
		return gg.Point{}, gg.Point{}
	}
	lo := gg.Pt(1e300, 1e300)
	hi := gg.Pt(-1e300, -1e300)
	for _, v := range g.Vertices {
		r := g.radius(v)
		lo = gg.Pt(min(lo.X, v.Position.X-r), min(lo.Y, v.Position.Y-r))
		hi = gg.Pt(max(hi.X, v.Position.X+r), max(hi.Y, v.Position.Y+r))
	}
	return lo, hi
}

// Draw draws every edge, then every vertex. An edge referring to a missing
// vertex fails with OUT_OF_RANGE; geometry that cannot be drawn (a curved
// edge between coincident vertices, or curvature beyond the feasible range)
// fails with DEGENERATE_GEOMETRY. Nothing after the failing edge is drawn.
func (g *Graph) Draw(c canvas.Canvas) error {
	for i, e := range g.Edges {
		if err := g.drawEdge(c, e); err != nil {
			return wrapEdge(i, err)
		}
	}
	for _, v := range g.Vertices {
		if err := g.drawVertex(c, v); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) drawVertex(c canvas.Canvas, v *Vertex) error {
	fg := v.Foreground.Or(g.Foreground)
	fill := style.Fill{Paint: v.Background.Or(g.Background)}
	stroke := style.DefaultStroke().WithPaint(fg).WithWidth(pick(v.LineWidth, g.LineWidth))
	if err := shape.Circle(c, v.Position, g.radius(v), fill, stroke); err != nil {
		return err
	}
	text := style.DefaultText(pick(v.TextSize, g.TextSize)).WithPaint(fg)
	text.Font = pickString(v.Font, g.Font)
	text.Draw(c, v.Label, v.Position.X, v.Position.Y)
	return nil
}

func (g *Graph) radius(v *Vertex) float64 { return pick(v.Radius, g.Radius) }

func (g *Graph) endpoints(e *Edge) (*Vertex, *Vertex, error) {
	n := len(g.Vertices)
	if e.Start < 0 || e.Start >= n {
		return nil, nil, errors.New(errors.ErrCodeOutOfRange, "start vertex %d out of range [0, %d)", e.Start, n)
	}
	if e.End < 0 || e.End >= n {
		return nil, nil, errors.New(errors.ErrCodeOutOfRange, "end vertex %d out of range [0, %d)", e.End, n)
	}
	return g.Vertices[e.Start], g.Vertices[e.End], nil
}

func wrapEdge(i int, err error) error {
	return fmt.Errorf("edge %d: %w", i, err)
}

func pick(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

func pickString(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
