package canvas

import (
	"image"
	"image/color"
	"math"
	"slices"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"
)

func commands(rec *recording.Recorder) (*recording.Recording, []recording.Command) {
	r := rec.FinishRecording()
	return r, r.Commands()
}

// segment is one verb of a recorded path with its points; the last point is
// where the segment ends.
type segment struct {
	verb gg.PathVerb
	pts  []gg.Point
}

func segments(p *gg.Path) []segment {
	var out []segment
	p.Iterate(func(v gg.PathVerb, coords []float64) {
		seg := segment{verb: v}
		for i := 0; i+1 < len(coords); i += 2 {
			seg.pts = append(seg.pts, gg.Pt(coords[i], coords[i+1]))
		}
		out = append(out, seg)
	})
	return out
}

func countVerb(segs []segment, v gg.PathVerb) int {
	n := 0
	for _, s := range segs {
		if s.verb == v {
			n++
		}
	}
	return n
}

func TestRecorderDrawArcStartsAtArcStart(t *testing.T) {
	rec := recording.NewRecorder(200, 200)
	c := FromRecorder(rec)

	c.MoveTo(0, 0)
	c.LineTo(10, 0)
	c.DrawArc(100, 100, 50, 0, math.Pi/2)
	if err := c.Stroke(); err != nil {
		t.Fatal(err)
	}

	r, cmds := commands(rec)
	var stroke *recording.StrokePathCommand
	for _, cmd := range cmds {
		if s, ok := cmd.(recording.StrokePathCommand); ok {
			stroke = &s
		}
	}
	if stroke == nil {
		t.Fatal("no stroke recorded")
	}

	var moves []gg.Point
	for _, seg := range segments(r.Resources().GetPath(stroke.Path)) {
		if seg.verb == gg.MoveTo {
			moves = append(moves, seg.pts[0])
		}
	}
	if len(moves) != 2 {
		t.Fatalf("got %d MoveTo elements, want 2", len(moves))
	}
	if moves[1] != gg.Pt(150, 100) {
		t.Errorf("arc subpath starts at %v, want (150, 100)", moves[1])
	}
}

func TestRecorderTextAndImage(t *testing.T) {
	rec := recording.NewRecorder(100, 100)
	c := FromRecorder(rec)

	c.SetFont(FamilyBold, 30)
	c.DrawText("A", 40, 50, 0.5, 0.5)
	c.DrawImage(image.NewRGBA(image.Rect(0, 0, 4, 3)), 10.4, 20.6)

	_, cmds := commands(rec)
	var gotText, gotImage bool
	for _, cmd := range cmds {
		switch v := cmd.(type) {
		case recording.DrawTextCommand:
			gotText = true
			if v.Text != "A" || v.FontSize != 30 || v.FontFamily != FamilyBold {
				t.Errorf("text command = %+v", v)
			}
		case recording.DrawImageCommand:
			gotImage = true
			if v.DstRect.MinX != 10 || v.DstRect.MinY != 21 {
				t.Errorf("image placed at %+v, want (10, 21)", v.DstRect)
			}
		}
	}
	if !gotText || !gotImage {
		t.Errorf("text=%v image=%v, want both recorded", gotText, gotImage)
	}
}

func TestContextFill(t *testing.T) {
	ctx := gg.NewContext(40, 40)
	defer ctx.Close()
	c := FromContext(ctx)

	if c.Width() != 40 || c.Height() != 40 {
		t.Fatalf("size = %dx%d, want 40x40", c.Width(), c.Height())
	}

	c.Clear(gg.White)
	c.SetColor(gg.Red)
	c.DrawRectangle(10, 10, 20, 20)
	if err := c.Fill(); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	r, g, b, _ := ctx.Image().At(20, 20).RGBA()
	if r>>8 < 200 || g>>8 > 50 || b>>8 > 50 {
		t.Errorf("centre pixel = %v, want red", ctx.Image().At(20, 20))
	}
	if got := color.RGBAModel.Convert(ctx.Image().At(2, 2)).(color.RGBA); got.R < 200 || got.G < 200 {
		t.Errorf("corner pixel = %v, want white", got)
	}
}

func TestContextMeasureText(t *testing.T) {
	ctx := gg.NewContext(100, 100)
	defer ctx.Close()
	c := FromContext(ctx)

	c.SetFont("No Such Family", 20)
	w, h := c.MeasureText("Hello")
	if w <= 0 || h <= 0 {
		t.Errorf("MeasureText with fallback font = (%v, %v), want positive", w, h)
	}
}

func TestDefaultFonts(t *testing.T) {
	f := DefaultFonts()
	if got := f.Families(); got != 3 {
		t.Errorf("Families() = %d, want 3", got)
	}
	if f.Face(FamilyMono, 10) == nil {
		t.Error("Face(Go Mono) = nil")
	}
	if f.Face("missing", 10) == nil {
		t.Error("Face(missing) = nil, want fallback")
	}
	if NewFonts("x").Face("x", 10) != nil {
		t.Error("empty registry returned a face")
	}
}

func TestSketchDeterministic(t *testing.T) {
	var cubics int
	draw := func(seed int64) []float64 {
		rec := recording.NewRecorder(200, 200)
		s := Sketch(FromRecorder(rec), seed, 3)
		s.DrawRectangle(20, 20, 150, 100)
		_ = s.Stroke()
		r := rec.FinishRecording()
		for _, cmd := range r.Commands() {
			if sp, ok := cmd.(recording.StrokePathCommand); ok {
				p := r.Resources().GetPath(sp.Path)
				cubics = countVerb(segments(p), gg.CubicTo)
				return p.Coords()
			}
		}
		return nil
	}

	a, b := draw(7), draw(7)
	if len(a) == 0 || !slices.Equal(a, b) {
		t.Fatalf("same seed drew different paths:\n%v\n%v", a, b)
	}
	if cubics != 4 {
		t.Errorf("got %d cubic segments, want 4 (one per side)", cubics)
	}
}

func TestSketchShortSegmentsStayStraight(t *testing.T) {
	rec := recording.NewRecorder(50, 50)
	s := Sketch(FromRecorder(rec), 1, 5)
	s.MoveTo(0, 0)
	s.LineTo(4, 0)
	_ = s.Stroke()

	r := rec.FinishRecording()
	for _, cmd := range r.Commands() {
		if sp, ok := cmd.(recording.StrokePathCommand); ok {
			if countVerb(segments(r.Resources().GetPath(sp.Path)), gg.CubicTo) > 0 {
				t.Error("short segment was curved")
			}
		}
	}
}
