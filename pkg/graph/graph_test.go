package graph

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"

	"github.com/matzehuels/drawkit/pkg/canvas"
	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/style"
)

type drawn struct {
	kinds []string
	texts []recording.DrawTextCommand
	paths []*gg.Path // stroked paths, in order
}

func record(t *testing.T, g *Graph) (drawn, error) {
	t.Helper()
	rec := recording.NewRecorder(600, 600)
	err := g.Draw(canvas.FromRecorder(rec))
	r := rec.FinishRecording()
	var d drawn
	for _, cmd := range r.Commands() {
		switch v := cmd.(type) {
		case recording.FillPathCommand:
			d.kinds = append(d.kinds, "fill")
		case recording.StrokePathCommand:
			d.kinds = append(d.kinds, "stroke")
			d.paths = append(d.paths, r.Resources().GetPath(v.Path))
		case recording.DrawTextCommand:
			d.kinds = append(d.kinds, "text")
			d.texts = append(d.texts, v)
		}
	}
	return d, err
}

// ends returns the first and last points of p.
func ends(p *gg.Path) (gg.Point, gg.Point) {
	c := p.Coords()
	return gg.Pt(c[0], c[1]), gg.Pt(c[len(c)-2], c[len(c)-1])
}

func near(a, b gg.Point) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

func TestDrawOrder(t *testing.T) {
	g := New()
	g.AddVertex(gg.Pt(100, 100), "A")
	g.AddVertex(gg.Pt(100, 300), "B")
	g.AddVertex(gg.Pt(200, 50), "C")
	g.AddVertex(gg.Pt(300, 200), "D")
	g.AddEdge(0, 1)
	g.AddEdge(1, 3)
	g.AddEdge(2, 0)
	g.AddEdge(3, 2)

	d, err := record(t, g)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}

	want := []string{"stroke", "stroke", "stroke", "stroke"}
	for range 4 {
		want = append(want, "fill", "stroke", "text")
	}
	if len(d.kinds) != len(want) {
		t.Fatalf("commands = %v, want %v", d.kinds, want)
	}
	for i := range want {
		if d.kinds[i] != want[i] {
			t.Fatalf("command %d = %s, want %s (all: %v)", i, d.kinds[i], want[i], d.kinds)
		}
	}
	for i, label := range []string{"A", "B", "C", "D"} {
		if d.texts[i].Text != label {
			t.Errorf("label %d = %q, want %q", i, d.texts[i].Text, label)
		}
		if d.texts[i].FontSize != DefaultTextSize {
			t.Errorf("label %d size = %v, want %v", i, d.texts[i].FontSize, DefaultTextSize)
		}
	}
}

func TestDrawOutOfRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
	}{
		{"end past last", 0, 2},
		{"negative start", -1, 0},
		{"loop on missing", 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			g.AddVertex(gg.Pt(0, 0), "A")
			g.AddVertex(gg.Pt(50, 0), "B")
			g.AddEdge(0, 1)
			g.AddEdge(tt.start, tt.end)

			d, err := record(t, g)
			if !errors.Is(err, errors.ErrCodeOutOfRange) {
				t.Fatalf("Draw error = %v, want OUT_OF_RANGE", err)
			}
			if len(d.texts) != 0 {
				t.Errorf("vertices drawn after failing edge")
			}
			if verr := g.Validate(); !errors.Is(verr, errors.ErrCodeOutOfRange) {
				t.Errorf("Validate error = %v, want OUT_OF_RANGE", verr)
			}
		})
	}
}

func TestEdgesAddedBeforeVertices(t *testing.T) {
	g := New()
	g.AddEdge(0, 1).WithDirection()
	g.AddVertex(gg.Pt(0, 0), "A")
	g.AddVertex(gg.Pt(100, 0), "B")
	if _, err := record(t, g); err != nil {
		t.Errorf("Draw: %v", err)
	}
}

func TestLoopGeometry(t *testing.T) {
	g := New()
	g.AddVertex(gg.Pt(100, 100), "A")
	g.AddEdge(0, 0)

	d, err := record(t, g)
	if err != nil {
		t.Fatal(err)
	}
	// DrawCircle starts at (cx+r, cy); the loop centre is (154, 100).
	start, _ := ends(d.paths[0])
	if !near(start, gg.Pt(184, 100)) {
		t.Errorf("loop circle starts at %v, want (184, 100)", start)
	}
}

func TestLoopUsesVertexRadius(t *testing.T) {
	g := New()
	v, _ := g.Vertex(g.AddVertex(gg.Pt(100, 100), "A"))
	v.Radius = 40
	g.AddEdge(0, 0)

	d, err := record(t, g)
	if err != nil {
		t.Fatal(err)
	}
	// Centre at 100 + 40 + 0.8*30 = 164, not the graph radius of 30.
	start, _ := ends(d.paths[0])
	if !near(start, gg.Pt(194, 100)) {
		t.Errorf("loop circle starts at %v, want (194, 100)", start)
	}
}

func TestCurvedEdgeEndsAtVertices(t *testing.T) {
	p0, p1 := gg.Pt(100, 100), gg.Pt(300, 180)
	for _, k := range []float64{1, -1, 0.5, -1.6} {
		g := New()
		g.AddVertex(p0, "A")
		g.AddVertex(p1, "B")
		g.AddEdge(0, 1).WithCurve(k)

		d, err := record(t, g)
		if err != nil {
			t.Fatalf("k=%v: %v", k, err)
		}
		a, b := ends(d.paths[0])
		if !(near(a, p0) && near(b, p1)) && !(near(a, p1) && near(b, p0)) {
			t.Errorf("k=%v: arc runs %v to %v, want %v to %v", k, a, b, p0, p1)
		}
	}
}

func TestDirectedEdgesDrawMarker(t *testing.T) {
	for _, tt := range []struct {
		name string
		edge func(g *Graph)
	}{
		{"straight", func(g *Graph) { g.AddEdge(0, 1).WithDirection() }},
		{"curved", func(g *Graph) { g.AddEdge(0, 1).WithDirection().WithCurve(1) }},
		{"loop", func(g *Graph) { g.AddEdge(0, 0).WithDirection() }},
	} {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			g.AddVertex(gg.Pt(0, 0), "A")
			g.AddVertex(gg.Pt(120, 0), "B")
			tt.edge(g)
			d, err := record(t, g)
			if err != nil {
				t.Fatal(err)
			}
			// Edge line plus marker, then two stroked vertex outlines.
			if got := len(d.paths); got != 4 {
				t.Errorf("stroked paths = %d, want 4", got)
			}
		})
	}
}

func TestWeightLabelPlacement(t *testing.T) {
	off := gg.Pt(3, 4)
	tests := []struct {
		name string
		side int
		edge func(g *Graph)
		want gg.Point
	}{
		{"straight default side", 1, func(g *Graph) { g.AddEdge(0, 1).WithWeight("5") }, gg.Pt(60, -21)},
		{"straight flipped side", -1, func(g *Graph) { g.AddEdge(0, 1).WithWeight("5") }, gg.Pt(60, 21)},
		{"explicit offset", 1, func(g *Graph) { g.AddEdge(0, 1).WithWeight("5").WithOffset(off) }, gg.Pt(63, 4)},
		{"curved outward", 1, func(g *Graph) { g.AddEdge(0, 1).WithWeight("5").WithCurve(1) }, gg.Pt(60, -41)},
		{"curved flipped stays outward", -1, func(g *Graph) { g.AddEdge(0, 1).WithWeight("5").WithCurve(-1) }, gg.Pt(60, 41)},
		{"loop outward", 1, func(g *Graph) { g.AddEdge(1, 1).WithWeight("5") }, gg.Pt(120+30+24+30+21, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New().WithLabelSide(tt.side)
			g.AddVertex(gg.Pt(0, 0), "")
			g.AddVertex(gg.Pt(120, 0), "")
			tt.edge(g)
			d, err := record(t, g)
			if err != nil {
				t.Fatal(err)
			}
			if len(d.texts) != 1 {
				t.Fatalf("texts = %d, want 1", len(d.texts))
			}
			got := gg.Pt(d.texts[0].X, d.texts[0].Y)
			if !near(got, tt.want) {
				t.Errorf("label at %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCurvedEdgeErrors(t *testing.T) {
	g := New()
	g.AddVertex(gg.Pt(0, 0), "A")
	g.AddVertex(gg.Pt(0, 0), "B")
	g.AddEdge(0, 1).WithCurve(1)
	if _, err := record(t, g); !errors.Is(err, errors.ErrCodeDegenerateGeometry) {
		t.Errorf("coincident curved edge error = %v, want DEGENERATE_GEOMETRY", err)
	}

	g = New()
	g.AddVertex(gg.Pt(0, 0), "A")
	g.AddVertex(gg.Pt(100, 0), "B")
	g.AddEdge(0, 1).WithCurve(3)
	if _, err := record(t, g); !errors.Is(err, errors.ErrCodeDegenerateGeometry) {
		t.Errorf("over-curved edge error = %v, want DEGENERATE_GEOMETRY", err)
	}
}

func TestOverrides(t *testing.T) {
	g := New()
	i := g.AddVertex(gg.Pt(50, 50), "A")
	v, err := g.Vertex(i)
	if err != nil {
		t.Fatal(err)
	}
	v.WithRadius(10).WithFont(canvas.FamilyBold, 12).WithBackground(style.Color(gg.Red))

	if _, err := g.Vertex(3); !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Errorf("Vertex(3) error = %v, want OUT_OF_RANGE", err)
	}

	d, err := record(t, g)
	if err != nil {
		t.Fatal(err)
	}
	if d.texts[0].FontFamily != canvas.FamilyBold || d.texts[0].FontSize != 12 {
		t.Errorf("label font = %s %v, want %s 12", d.texts[0].FontFamily, d.texts[0].FontSize, canvas.FamilyBold)
	}
	lo, hi := g.Bounds()
	if lo != gg.Pt(40, 40) || hi != gg.Pt(60, 60) {
		t.Errorf("Bounds = %v, %v; want (40,40), (60,60)", lo, hi)
	}
}
