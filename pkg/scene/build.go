package scene

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/canvas"
	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/formula"
	"github.com/matzehuels/drawkit/pkg/graph"
	"github.com/matzehuels/drawkit/pkg/layout"
	"github.com/matzehuels/drawkit/pkg/style"
	"github.com/matzehuels/drawkit/pkg/symbol"
	"github.com/matzehuels/drawkit/pkg/tween"
)

// BuildOptions supply the external services a scene may need. Every field
// is optional.
type BuildOptions struct {
	// Layouter places unpositioned graph vertices. Nil means Graphviz with
	// the scene's engine.
	Layouter layout.Layouter
	// Rasterizer renders formulas. Nil means latex and dvipng from PATH.
	Rasterizer formula.Rasterizer
	// Namer names formula work files. Nil means a fresh random prefix.
	Namer  *formula.Namer
	Logger *log.Logger
}

// Drawing is a built scene, ready to draw any of its frames. A Drawing is
// immutable and may be drawn from several goroutines onto separate
// canvases.
type Drawing struct {
	scene      *Scene
	width      int
	height     int
	background gg.RGBA

	tweens  map[string]*tween.Tween
	motions map[string]*tween.PointTween
	symbols map[string]symbol.Symbol
	graphs  []*graph.Graph
	items   []item
}

// item is one drawable element with its animation.
type item struct {
	label string
	bind  binding
	draw  func(c canvas.Canvas) error
}

// Build resolves s into a Drawing. Every reference in the document is
// checked here, so a scene that builds can only fail to draw on geometry
// errors. Errors in the document itself are INVALID_SCENE.
func Build(ctx context.Context, s *Scene, opts BuildOptions) (*Drawing, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidScene, "nil scene")
	}
	if s.Name != "" {
		if err := errors.ValidateSceneName(s.Name); err != nil {
			return nil, err
		}
	}
	if s.Layout != "" {
		if err := layout.ValidateEngine(s.Layout); err != nil {
			return nil, err
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	d := &Drawing{
		scene:   s,
		tweens:  make(map[string]*tween.Tween, len(s.Tweens)),
		motions: make(map[string]*tween.PointTween, len(s.Motions)),
		symbols: make(map[string]symbol.Symbol),
	}
	d.width, d.height = s.Size()

	d.background = gg.White
	if s.Background != "" {
		bg, err := style.ParseColor(s.Background)
		if err != nil {
			return nil, sceneErr(err, "background")
		}
		d.background = bg
	}

	for name, spec := range s.Tweens {
		tw, err := buildTween(name, spec)
		if err != nil {
			return nil, err
		}
		d.tweens[name] = tw
	}
	for name, spec := range s.Motions {
		pt, err := buildMotion(name, spec)
		if err != nil {
			return nil, err
		}
		d.motions[name] = pt
	}

	b := builder{Drawing: d, opts: opts, logger: logger}
	steps := []func(context.Context) error{
		b.buildFigures, b.buildGraphs, b.buildSymbols, b.buildWires, b.buildFormulas, b.buildTexts,
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := step(ctx); err != nil {
			return nil, err
		}
	}

	// Symbols are built before wires so pins resolve, but wires are drawn
	// first so symbol bodies cover the wire ends.
	order := [][]item{b.figureItems, b.graphItems, b.wireItems, b.gateItems, b.boxItems, b.formulaItems, b.textItems}
	for _, items := range order {
		d.items = append(d.items, items...)
	}
	logger.Debug("scene built", "name", s.Name, "elements", len(d.items), "tweens", len(d.tweens))
	return d, nil
}

// Scene returns the document d was built from.
func (d *Drawing) Scene() *Scene { return d.scene }

// Size returns the canvas size in pixels.
func (d *Drawing) Size() (int, int) { return d.width, d.height }

// Graphs returns the built graphs with layout applied.
func (d *Drawing) Graphs() []*graph.Graph { return d.graphs }

// Pinned returns a copy of the drawing's scene in which every graph vertex
// placed by the layout engine carries its computed position, rounded to a
// tenth of a pixel. Building the copy needs no layout engine.
func (d *Drawing) Pinned() *Scene {
	cp := *d.scene
	cp.Graphs = slices.Clone(d.scene.Graphs)
	for i := range cp.Graphs {
		spec := &cp.Graphs[i]
		spec.Vertices = slices.Clone(spec.Vertices)
		for j := range spec.Vertices {
			if spec.Vertices[j].At != nil {
				continue
			}
			p := d.graphs[i].Vertices[j].Position
			spec.Vertices[j].At = &Point{math.Round(p.X*10) / 10, math.Round(p.Y*10) / 10}
		}
	}
	return &cp
}

// Symbol returns the gate or box called name.
func (d *Drawing) Symbol(name string) (symbol.Symbol, bool) {
	s, ok := d.symbols[name]
	return s, ok
}

// SymbolNames returns the names of all gates and boxes in sorted order.
func (d *Drawing) SymbolNames() []string {
	names := make([]string, 0, len(d.symbols))
	for name := range d.symbols {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Draw clears c to the background and draws frame onto it. frame must lie
// in [0, FrameCount).
func (d *Drawing) Draw(ctx context.Context, c canvas.Canvas, frame int) error {
	if n := d.scene.FrameCount(); frame < 0 || frame >= n {
		return errors.New(errors.ErrCodeOutOfRange, "frame %d out of range [0, %d)", frame, n)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if sk := d.scene.Sketch; sk != nil && sk.Amplitude > 0 {
		c = canvas.Sketch(c, sk.Seed, sk.Amplitude)
	}
	c.Clear(d.background)

	t := d.scene.Time(frame)
	for _, it := range d.items {
		cc, visible := it.bind.apply(c, t)
		if !visible {
			continue
		}
		cc.Push()
		err := it.draw(cc)
		cc.Pop()
		if err != nil {
			return fmt.Errorf("%s: %w", it.label, err)
		}
	}
	return nil
}

// builder carries per-kind item lists while a Drawing is assembled.
type builder struct {
	*Drawing
	opts   BuildOptions
	logger *log.Logger

	figureItems, graphItems, wireItems, gateItems []item
	boxItems, formulaItems, textItems             []item
}

func (b *builder) add(list *[]item, label string, a Anim, draw func(canvas.Canvas) error) error {
	return b.addAt(list, label, a, nil, draw)
}

// addAt is add for elements with a natural zoom centre.
func (b *builder) addAt(list *[]item, label string, a Anim, pivot *gg.Point, draw func(canvas.Canvas) error) error {
	bind, err := b.bind(a, pivot)
	if err != nil {
		return sceneErr(err, label)
	}
	*list = append(*list, item{label: label, bind: bind, draw: draw})
	return nil
}

func (b *builder) buildFigures(context.Context) error {
	for i, spec := range b.scene.Figures {
		label := fmt.Sprintf("figure %d (%s)", i, spec.Kind)
		draw, err := buildFigure(spec)
		if err != nil {
			return sceneErr(err, label)
		}
		if err := b.add(&b.figureItems, label, spec.Anim, draw); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) buildGraphs(ctx context.Context) error {
	for i, spec := range b.scene.Graphs {
		label := fmt.Sprintf("graph %d", i)
		if spec.Name != "" {
			label = fmt.Sprintf("graph %q", spec.Name)
		}
		g, err := buildGraph(spec)
		if err != nil {
			return sceneErr(err, label)
		}
		if layout.NeedsLayout(g) {
			if err := b.layouter().Layout(ctx, g, gg.Pt(0, 0), gg.Pt(float64(b.width), float64(b.height))); err != nil {
				return fmt.Errorf("%s: layout: %w", label, err)
			}
		}
		b.graphs = append(b.graphs, g)
		if err := b.add(&b.graphItems, label, spec.Anim, g.Draw); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) layouter() layout.Layouter {
	if b.opts.Layouter == nil {
		b.opts.Layouter = layout.New(b.scene.Layout)
	}
	return b.opts.Layouter
}

func buildGraph(spec GraphSpec) (*graph.Graph, error) {
	g := graph.New()
	var err error
	if g.Foreground, err = paintOr(spec.Foreground, g.Foreground); err != nil {
		return nil, err
	}
	if g.Background, err = paintOr(spec.Background, g.Background); err != nil {
		return nil, err
	}
	g.LineWidth = pick(spec.LineWidth, g.LineWidth)
	g.Radius = pick(spec.Radius, g.Radius)
	g.TextSize = pick(spec.TextSize, g.TextSize)
	if spec.Font != "" {
		g.Font = spec.Font
	}
	if spec.LabelSide != 0 {
		g.LabelSide = spec.LabelSide
	}

	for i, vs := range spec.Vertices {
		var at gg.Point
		if vs.At != nil {
			at = vs.At.Pt()
		}
		v, _ := g.Vertex(g.AddVertex(at, vs.Label))
		v.Auto = vs.At == nil
		if v.Foreground, err = paintOr(vs.Foreground, style.Paint{}); err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		if v.Background, err = paintOr(vs.Background, style.Paint{}); err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		v.LineWidth, v.Radius = vs.LineWidth, vs.Radius
		v.Font, v.TextSize = vs.Font, vs.TextSize
	}

	for i, es := range spec.Edges {
		e := g.AddEdge(es.From, es.To)
		e.Directed = es.Directed
		if es.Curved || es.Curvature != 0 {
			e.WithCurve(es.Curvature)
		}
		e.Weight = es.Weight
		if es.Offset != nil {
			e.WithOffset(es.Offset.Pt())
		}
		e.LoopRadius = es.LoopRadius
		e.LoopAngle = es.LoopAngle * math.Pi / 180
		if e.Color, err = paintOr(es.Color, style.Paint{}); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		e.LineWidth = es.LineWidth
		e.Font, e.TextSize = es.Font, es.TextSize
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (b *builder) buildSymbols(context.Context) error {
	for i, spec := range b.scene.Gates {
		label := symbolLabel("gate", i, spec.Name)
		kind, err := symbol.ParseKind(spec.Kind)
		if err != nil {
			return sceneErr(err, label)
		}
		g := symbol.NewGate(kind, spec.At.Pt(), spec.Inputs)
		if err := applyFrame(&g.Frame, spec.SymbolSpec); err != nil {
			return sceneErr(err, label)
		}
		if err := b.register(spec.Name, g, label); err != nil {
			return err
		}
		if err := b.add(&b.gateItems, label, spec.Anim, g.Draw); err != nil {
			return err
		}
	}
	for i, spec := range b.scene.Boxes {
		label := symbolLabel("box", i, spec.Name)
		bx := symbol.NewBox(spec.At.Pt(), spec.Label, spec.Left, spec.Right, spec.Top, spec.Bottom)
		if err := applyFrame(&bx.Frame, spec.SymbolSpec); err != nil {
			return sceneErr(err, label)
		}
		if err := b.register(spec.Name, bx, label); err != nil {
			return err
		}
		if err := b.add(&b.boxItems, label, spec.Anim, bx.Draw); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) register(name string, s symbol.Symbol, label string) error {
	if name == "" {
		return nil
	}
	if _, dup := b.symbols[name]; dup {
		return errors.New(errors.ErrCodeInvalidScene, "%s: duplicate symbol name", label)
	}
	b.symbols[name] = s
	return nil
}

func symbolLabel(kind string, i int, name string) string {
	if name != "" {
		return fmt.Sprintf("%s %q", kind, name)
	}
	return fmt.Sprintf("%s %d", kind, i)
}

func applyFrame(f *symbol.Frame, spec SymbolSpec) error {
	f.Width = pick(spec.Width, f.Width)
	f.Height = spec.Height
	f.Label = spec.Label
	var err error
	if f.Fill.Paint, err = paintOr(spec.Fill, f.Fill.Paint); err != nil {
		return err
	}
	if f.Stroke.Paint, err = paintOr(spec.Stroke, f.Stroke.Paint); err != nil {
		return err
	}
	f.Stroke.Width = pick(spec.LineWidth, f.Stroke.Width)
	f.Text.Size = pick(spec.TextSize, f.Text.Size)
	return nil
}

func (b *builder) buildWires(context.Context) error {
	for i, spec := range b.scene.Wires {
		label := fmt.Sprintf("wire %d", i)
		from, err := b.endpoint(spec.From, spec.FromAt, true)
		if err != nil {
			return sceneErr(err, label+" from")
		}
		to, err := b.endpoint(spec.To, spec.ToAt, false)
		if err != nil {
			return sceneErr(err, label+" to")
		}
		w := symbol.NewWire(from, to)
		w.Orthogonal = spec.Orthogonal
		w.StartDot, w.EndDot, w.Arrow = spec.StartDot, spec.EndDot, spec.Arrow
		if w.Stroke.Paint, err = paintOr(spec.Color, w.Stroke.Paint); err != nil {
			return sceneErr(err, label)
		}
		w.Stroke.Width = pick(spec.LineWidth, w.Stroke.Width)
		if w.Stroke.Cap, err = style.ParseLineCap(spec.Cap); err != nil {
			return sceneErr(err, label)
		}
		if err := b.add(&b.wireItems, label, spec.Anim, w.Draw); err != nil {
			return err
		}
	}
	return nil
}

// endpoint resolves a wire end from a pin or an explicit point. A bare
// symbol name means its first output when isFrom is set, its first input
// otherwise.
func (b *builder) endpoint(pin string, at *Point, isFrom bool) (gg.Point, error) {
	switch {
	case pin != "" && at != nil:
		return gg.Point{}, errors.New(errors.ErrCodeInvalidScene, "both pin %q and point given", pin)
	case at != nil:
		return at.Pt(), nil
	case pin == "":
		return gg.Point{}, errors.New(errors.ErrCodeInvalidScene, "missing pin or point")
	}

	parts := strings.Split(pin, ":")
	if len(parts) > 3 {
		return gg.Point{}, errors.New(errors.ErrCodeInvalidScene, "malformed pin %q", pin)
	}
	s, ok := b.symbols[parts[0]]
	if !ok {
		return gg.Point{}, errors.New(errors.ErrCodeInvalidScene, "unknown symbol %q", parts[0])
	}
	side := symbol.Inputs
	if isFrom {
		side = symbol.Outputs
	}
	if _, isBox := s.(*symbol.Box); isBox {
		side = symbol.Left
		if isFrom {
			side = symbol.Right
		}
	}
	index := 0
	var err error
	if len(parts) > 1 {
		if side, err = parseSide(parts[1]); err != nil {
			return gg.Point{}, err
		}
	}
	if len(parts) > 2 {
		if index, err = strconv.Atoi(parts[2]); err != nil {
			return gg.Point{}, errors.New(errors.ErrCodeInvalidScene, "malformed pin index in %q", pin)
		}
	}
	return s.Connector(side, index)
}

var sideNames = map[string]int{
	"in": symbol.Inputs, "input": symbol.Inputs, "inputs": symbol.Inputs,
	"out": symbol.Outputs, "output": symbol.Outputs, "outputs": symbol.Outputs,
	"left": symbol.Left, "right": symbol.Right, "top": symbol.Top, "bottom": symbol.Bottom,
}

func parseSide(s string) (int, error) {
	if side, ok := sideNames[strings.ToLower(s)]; ok {
		return side, nil
	}
	side, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidScene, "unknown connector side %q", s)
	}
	return side, nil
}

func (b *builder) buildFormulas(ctx context.Context) error {
	if len(b.scene.Formulas) == 0 {
		return nil
	}
	r := b.opts.Rasterizer
	if r == nil {
		r = formula.NewLatexRasterizer()
	}
	namer := b.opts.Namer
	if namer == nil {
		namer = formula.NewNamer()
	}
	for i, spec := range b.scene.Formulas {
		label := fmt.Sprintf("formula %d", i)
		opts := formula.RenderOptions{Options: formula.DefaultOptions()}
		if spec.DPI > 0 {
			opts.DPI = spec.DPI
		}
		opts.Packages = spec.Packages
		if spec.Color != "" {
			c, err := style.ParseColor(spec.Color)
			if err != nil {
				return sceneErr(err, label)
			}
			opts.Color = c
		}
		composed, err := formula.Render(ctx, namer, r, spec.Lines, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		var img image.Image = composed
		if spec.Scale > 0 {
			img = formula.Scale(img, spec.Scale)
		}
		at := spec.At.Pt()
		size := img.Bounds().Size()
		b.logger.Debug("formula rasterized", "index", i, "lines", len(spec.Lines), "size", size)
		draw := func(c canvas.Canvas) error {
			c.DrawImage(img, at.X, at.Y)
			return nil
		}
		centre := gg.Pt(at.X+float64(size.X)/2, at.Y+float64(size.Y)/2)
		if err := b.addAt(&b.formulaItems, label, spec.Anim, &centre, draw); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) buildTexts(context.Context) error {
	for i, spec := range b.scene.Texts {
		label := fmt.Sprintf("text %d", i)
		t := style.DefaultText(pick(spec.Size, 16))
		if spec.Font != "" {
			t.Font = spec.Font
		}
		var err error
		if t.Paint, err = paintOr(spec.Color, t.Paint); err != nil {
			return sceneErr(err, label)
		}
		if spec.Anchor != nil {
			t.AnchorX, t.AnchorY = spec.Anchor[0], spec.Anchor[1]
		}
		at, s := spec.At.Pt(), spec.Text
		draw := func(c canvas.Canvas) error {
			t.Draw(c, s, at.X, at.Y)
			return nil
		}
		if err := b.add(&b.textItems, label, spec.Anim, draw); err != nil {
			return err
		}
	}
	return nil
}

// paintOr parses s, returning fallback when s is empty.
func paintOr(s string, fallback style.Paint) (style.Paint, error) {
	if s == "" {
		return fallback, nil
	}
	return style.ParsePaint(s)
}

func pick(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

// sceneErr reports err against the element label. Errors that already
// carry a code keep it.
func sceneErr(err error, label string) error {
	if errors.GetCode(err) != "" {
		return fmt.Errorf("%s: %w", label, err)
	}
	return errors.Wrap(errors.ErrCodeInvalidScene, err, "%s", label)
}
