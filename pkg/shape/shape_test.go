package shape

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"

	"github.com/matzehuels/drawkit/pkg/canvas"
	"github.com/matzehuels/drawkit/pkg/style"
)

// segment is one verb of a recorded path and the point it ends at.
type segment struct {
	verb gg.PathVerb
	end  gg.Point
}

// strokes records fn and returns the segments of every stroked path.
func strokes(t *testing.T, fn func(c canvas.Canvas) error) [][]segment {
	t.Helper()
	rec := recording.NewRecorder(400, 400)
	if err := fn(canvas.FromRecorder(rec)); err != nil {
		t.Fatalf("draw: %v", err)
	}
	r := rec.FinishRecording()
	var out [][]segment
	for _, cmd := range r.Commands() {
		if sp, ok := cmd.(recording.StrokePathCommand); ok {
			var segs []segment
			r.Resources().GetPath(sp.Path).Iterate(func(v gg.PathVerb, coords []float64) {
				seg := segment{verb: v}
				if n := len(coords); n >= 2 {
					seg.end = gg.Pt(coords[n-2], coords[n-1])
				}
				segs = append(segs, seg)
			})
			out = append(out, segs)
		}
	}
	return out
}

func count(segs []segment, v gg.PathVerb) int {
	n := 0
	for _, s := range segs {
		if s.verb == v {
			n++
		}
	}
	return n
}

func TestMarkerPointsAlongAngle(t *testing.T) {
	paths := strokes(t, func(c canvas.Canvas) error {
		return Marker(c, gg.Pt(100, 100), 0, 16, style.DefaultStroke())
	})
	if len(paths) != 1 {
		t.Fatalf("got %d strokes, want 1", len(paths))
	}
	segs := paths[0]
	if len(segs) != 3 || segs[0].verb != gg.MoveTo || segs[1].verb != gg.LineTo {
		t.Fatalf("got segments %v, want MoveTo, LineTo, LineTo", segs)
	}
	tip := segs[1].end
	if tip.X <= 100 || math.Abs(tip.Y-100) > 1e-9 {
		t.Errorf("tip = %v, want ahead of (100, 100) on the x axis", tip)
	}
	left := segs[0].end
	if left.X >= tip.X {
		t.Errorf("arm end %v not behind tip %v", left, tip)
	}
}

func TestAngleMark(t *testing.T) {
	tests := []struct {
		name       string
		opts       AngleMarkOptions
		wantMoves  int
		wantCubics bool
	}{
		{"single", AngleMarkOptions{Radius: 20}, 1, true},
		{"double", AngleMarkOptions{Radius: 20, Count: 2}, 2, true},
		{"clamped", AngleMarkOptions{Radius: 20, Count: 9}, 3, true},
		{"right angle", AngleMarkOptions{Radius: 10, Right: true}, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := strokes(t, func(c canvas.Canvas) error {
				return AngleMark(c, gg.Pt(100, 0), gg.Pt(0, 0), gg.Pt(0, 100), tt.opts, style.DefaultStroke())
			})
			if len(paths) != 1 {
				t.Fatalf("got %d strokes, want 1", len(paths))
			}
			if got := count(paths[0], gg.MoveTo); got != tt.wantMoves {
				t.Errorf("subpaths = %d, want %d", got, tt.wantMoves)
			}
			if got := count(paths[0], gg.CubicTo) > 0; got != tt.wantCubics {
				t.Errorf("has cubics = %v, want %v", got, tt.wantCubics)
			}
		})
	}
}

func TestAngleMarkTakesSmallerAngle(t *testing.T) {
	// Arms at 350° and 10°: the mark must sweep 20°, not 340°.
	a := gg.Pt(math.Cos(-10*math.Pi/180), math.Sin(-10*math.Pi/180)).Mul(50)
	b := gg.Pt(math.Cos(10*math.Pi/180), math.Sin(10*math.Pi/180)).Mul(50)
	paths := strokes(t, func(c canvas.Canvas) error {
		return AngleMark(c, a, gg.Point{}, b, AngleMarkOptions{Radius: 20}, style.DefaultStroke())
	})
	if got := count(paths[0], gg.CubicTo); got != 1 {
		t.Errorf("got %d arc segments, want 1 for a 20° sweep", got)
	}
}

func TestTicks(t *testing.T) {
	paths := strokes(t, func(c canvas.Canvas) error {
		return Ticks(c, gg.Pt(0, 0), gg.Pt(100, 0), TickOptions{Count: 3, Length: 10, Gap: 4}, style.DefaultStroke())
	})
	segs := paths[0]
	if got := count(segs, gg.MoveTo); got != 3 {
		t.Fatalf("ticks = %d, want 3", got)
	}
	first := segs[0].end
	if first != gg.Pt(46, -5) {
		t.Errorf("first tick starts at %v, want (46, -5)", first)
	}
}

func TestArrowLineErrorsOnZeroLength(t *testing.T) {
	rec := recording.NewRecorder(10, 10)
	if err := ArrowLine(canvas.FromRecorder(rec), gg.Pt(1, 1), gg.Pt(1, 1), 2, 4, style.DefaultStroke()); err == nil {
		t.Error("ArrowLine on a point succeeded")
	}
}

func TestCircleFillsThenStrokes(t *testing.T) {
	rec := recording.NewRecorder(100, 100)
	c := canvas.FromRecorder(rec)
	err := Circle(c, gg.Pt(50, 50), 20, style.Fill{Paint: style.Color(gg.White)}, style.DefaultStroke())
	if err != nil {
		t.Fatal(err)
	}
	var kinds []string
	for _, cmd := range rec.FinishRecording().Commands() {
		switch cmd.(type) {
		case recording.FillPathCommand:
			kinds = append(kinds, "fill")
		case recording.StrokePathCommand:
			kinds = append(kinds, "stroke")
		}
	}
	if len(kinds) != 2 || kinds[0] != "fill" || kinds[1] != "stroke" {
		t.Errorf("draw order = %v, want [fill stroke]", kinds)
	}
}
