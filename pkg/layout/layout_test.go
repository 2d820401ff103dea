package layout

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/cache"
	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/graph"
)

func near(a, b gg.Point) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

func triangle() *graph.Graph {
	g := graph.New()
	for _, l := range []string{"A", "B", "C"} {
		i := g.AddVertex(gg.Point{}, l)
		g.Vertices[i].Auto = true
	}
	g.AddEdge(0, 1).WithDirection()
	g.AddEdge(1, 2).WithWeight("5")
	g.AddEdge(2, 0)
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(triangle())
	for _, want := range []string{
		"digraph G {",
		`v0 [label="A"];`,
		"v0 -> v1;",
		`v1 -> v2 [dir=none, label="5"];`,
		"v2 -> v0 [dir=none];",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestParsePositions(t *testing.T) {
	out := []byte(`digraph G {
	graph [bb="0,0,100,50"];
	node [label="\N"];
	v0	[height=0.6, label=A, pos="10,20", width=0.6];
	v1	[height=0.6, label=B, pos="90.5,\
30", width=0.6];
	v0 -> v1	[pos="e,80,30 20,20"];
}
`)
	pos, err := parsePositions(out, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !near(pos[0], gg.Pt(10, 20)) || !near(pos[1], gg.Pt(90.5, 30)) {
		t.Errorf("positions = %v", pos)
	}

	if _, err := parsePositions(out, 3); !errors.Is(err, errors.ErrCodeExternalTool) {
		t.Errorf("missing vertex err = %v", err)
	}
}

func TestFit(t *testing.T) {
	pts := []gg.Point{gg.Pt(0, 0), gg.Pt(100, 50)}
	got := Fit(pts, gg.Pt(0, 0), gg.Pt(420, 220), 10)
	// Usable box 400x200, scale 4 limited by width and height equally.
	want := []gg.Point{gg.Pt(10, 210), gg.Pt(410, 10)}
	for i := range want {
		if !near(got[i], want[i]) {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}

	single := Fit([]gg.Point{gg.Pt(5, 5)}, gg.Pt(0, 0), gg.Pt(100, 100), 0)
	if !near(single[0], gg.Pt(50, 50)) {
		t.Errorf("single point = %v, want centre", single[0])
	}
}

func TestValidateEngine(t *testing.T) {
	if err := ValidateEngine("neato"); err != nil {
		t.Errorf("neato: %v", err)
	}
	if err := ValidateEngine("sfdp2"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad engine err = %v", err)
	}
}

func TestAutoSkipsPositionedGraphs(t *testing.T) {
	g := graph.New()
	g.AddVertex(gg.Pt(1, 2), "A")
	if err := Auto(context.Background(), g, gg.Pt(0, 0), gg.Pt(10, 10), "no-such-engine"); err != nil {
		t.Errorf("Auto on positioned graph = %v, want no-op", err)
	}
}

func TestAuto(t *testing.T) {
	g := triangle()
	fixed := g.AddVertex(gg.Pt(7, 7), "D")
	ctx := context.Background()
	if err := Auto(ctx, g, gg.Pt(0, 0), gg.Pt(600, 400), EngineNeato); err != nil {
		t.Fatalf("Auto: %v", err)
	}
	for i, v := range g.Vertices[:3] {
		if v.Auto {
			t.Errorf("vertex %d still Auto", i)
		}
		p := v.Position
		if p.X < 30-1e-6 || p.X > 570+1e-6 || p.Y < 30-1e-6 || p.Y > 370+1e-6 {
			t.Errorf("vertex %d at %v outside inset bounds", i, p)
		}
	}
	if g.Vertices[fixed].Position != gg.Pt(7, 7) {
		t.Errorf("positioned vertex moved to %v", g.Vertices[fixed].Position)
	}
}

func TestCachedLayout(t *testing.T) {
	ctx := context.Background()
	c, _ := cache.NewFileCache(t.TempDir())
	l := NewCached(New(EngineCirco), c, nil)

	g1 := triangle()
	if err := l.Layout(ctx, g1, gg.Pt(0, 0), gg.Pt(300, 300)); err != nil {
		t.Fatal(err)
	}
	g2 := triangle()
	if err := l.Layout(ctx, g2, gg.Pt(0, 0), gg.Pt(300, 300)); err != nil {
		t.Fatal(err)
	}
	for i := range g1.Vertices {
		if !near(g1.Vertices[i].Position, g2.Vertices[i].Position) {
			t.Errorf("vertex %d: %v then %v", i, g1.Vertices[i].Position, g2.Vertices[i].Position)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(triangle()), EngineDot)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), `viewBox="0 0 `) {
		t.Errorf("SVG not normalised:\n%.300s", svg)
	}
}
