package scene

import (
	"strings"

	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/canvas"
	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/geom"
	"github.com/matzehuels/drawkit/pkg/plot"
	"github.com/matzehuels/drawkit/pkg/shape"
	"github.com/matzehuels/drawkit/pkg/style"
)

// Figure defaults.
const (
	DefaultDotRadius    = 4.0
	DefaultFigureLength = 200.0
)

// figureArity gives the minimum number of points per kind, and whether
// more are allowed.
var figureArity = map[string]struct {
	n    int
	more bool
}{
	"line":                   {2, true},
	"extended-line":          {2, false},
	"arrow-line":             {2, false},
	"polygon":                {3, true},
	"angle":                  {3, false},
	"ticks":                  {2, false},
	"bisector":               {3, false},
	"perpendicular-bisector": {2, false},
	"intersection":           {4, false},
	"dot":                    {1, true},
	"axes":                   {2, false},
	"complex-plane":          {2, false},
}

// buildFigure checks spec and returns the function that draws it.
// Geometry is only evaluated when drawing, so coincident points surface as
// DEGENERATE_GEOMETRY from Draw.
func buildFigure(spec FigureSpec) (func(canvas.Canvas) error, error) {
	kind := strings.ToLower(spec.Kind)
	arity, ok := figureArity[kind]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidScene, "unknown figure kind %q", spec.Kind)
	}
	n := len(spec.Points)
	if n < arity.n || (!arity.more && n > arity.n) {
		return nil, errors.New(errors.ErrCodeInvalidScene, "%s needs %d points, got %d", kind, arity.n, n)
	}

	stroke := style.DefaultStroke()
	var err error
	if stroke.Paint, err = paintOr(spec.Color, stroke.Paint); err != nil {
		return nil, err
	}
	stroke.Width = pick(spec.LineWidth, 2)
	stroke.Dash = spec.Dash
	fill := style.Fill{}
	if fill.Paint, err = paintOr(spec.Fill, fill.Paint); err != nil {
		return nil, err
	}

	pts := make([]gg.Point, n)
	for i, p := range spec.Points {
		pts[i] = p.Pt()
	}
	length := pick(spec.Length, DefaultFigureLength)
	radius := pick(spec.Radius, DefaultDotRadius)

	switch kind {
	case "axes", "complex-plane":
		return buildPlot(kind, spec, pts[0], pts[1])
	case "line":
		return func(c canvas.Canvas) error { return shape.Polyline(c, pts, spec.Closed, stroke) }, nil
	case "extended-line":
		return func(c canvas.Canvas) error { return shape.ExtendedLine(c, pts[0], pts[1], spec.Extend, stroke) }, nil
	case "arrow-line":
		tick := pick(spec.Tick, 4*stroke.Width)
		return func(c canvas.Canvas) error { return shape.ArrowLine(c, pts[0], pts[1], spec.Inset, tick, stroke) }, nil
	case "polygon":
		return func(c canvas.Canvas) error { return shape.Polygon(c, pts, fill, stroke) }, nil
	case "angle":
		opts := shape.AngleMarkOptions{Radius: spec.Radius, Count: spec.Count, Gap: spec.Gap, Right: spec.Right}
		return func(c canvas.Canvas) error { return shape.AngleMark(c, pts[0], pts[1], pts[2], opts, stroke) }, nil
	case "ticks":
		opts := shape.TickOptions{Count: spec.Count, Length: spec.Length, Gap: spec.Gap}
		return func(c canvas.Canvas) error { return shape.Ticks(c, pts[0], pts[1], opts, stroke) }, nil
	case "bisector":
		return func(c canvas.Canvas) error {
			dir, err := geom.Bisector(pts[0], pts[1], pts[2])
			if err != nil {
				return err
			}
			return shape.Line(c, pts[1], pts[1].Add(dir.Mul(length)), stroke)
		}, nil
	case "perpendicular-bisector":
		return func(c canvas.Canvas) error {
			mid, dir, err := geom.PerpendicularBisector(pts[0], pts[1])
			if err != nil {
				return err
			}
			half := dir.Mul(length / 2)
			return shape.Line(c, mid.Sub(half), mid.Add(half), stroke)
		}, nil
	case "intersection":
		return func(c canvas.Canvas) error {
			p, err := geom.LineIntersection(pts[0], pts[1], pts[2], pts[3])
			if err != nil {
				return err
			}
			return shape.Dot(c, p, radius, stroke.Paint)
		}, nil
	default: // dot
		return func(c canvas.Canvas) error {
			for _, p := range pts {
				if err := shape.Dot(c, p, radius, stroke.Paint); err != nil {
					return err
				}
			}
			return nil
		}, nil
	}
}

// buildPlot builds axes or a complex plane filling the rectangle from tl to
// br. A complex plane evaluates its function here, once.
func buildPlot(kind string, spec FigureSpec, tl, br gg.Point) (func(canvas.Canvas) error, error) {
	a := plot.New(tl, br.X-tl.X, br.Y-tl.Y)
	if spec.Start != nil {
		a.Start = spec.Start.Pt()
	}
	if spec.Extent != nil {
		a.Extent = spec.Extent.Pt()
	}
	if spec.Divisions != nil {
		a.Divisions = spec.Divisions.Pt()
	}
	name := spec.AxesStyle
	if name == "" && kind == "complex-plane" {
		name = "overlay"
	}
	st, err := plot.ParseStyle(name)
	if err != nil {
		return nil, err
	}
	st.Subdivisions = spec.Subdivisions
	if spec.Color != "" {
		if st.Axis.Paint, err = paintOr(spec.Color, st.Axis.Paint); err != nil {
			return nil, err
		}
	}
	a.Style = st
	if kind == "axes" {
		return a.Draw, nil
	}

	if spec.Function == "" {
		return nil, errors.New(errors.ErrCodeInvalidScene, "complex-plane needs a function")
	}
	f, err := plot.ParseComplexFunc(spec.Function)
	if err != nil {
		return nil, err
	}
	opts := plot.PlaneOptions{Low: spec.Low, High: spec.High, Steps: spec.Steps}
	for _, s := range spec.Colors {
		c, err := style.ParseColor(s)
		if err != nil {
			return nil, err
		}
		opts.Colors = append(opts.Colors, c)
	}
	p, err := plot.NewComplexPlane(a, f, opts)
	if err != nil {
		return nil, err
	}
	return p.Draw, nil
}
