package style

import (
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"

	"github.com/matzehuels/drawkit/pkg/canvas"
	"github.com/matzehuels/drawkit/pkg/errors"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    gg.RGBA
		wantErr bool
	}{
		{"short hex", "#f00", gg.RGBA{R: 1, G: 0, B: 0, A: 1}, false},
		{"long hex", "#0000ff", gg.RGBA{R: 0, G: 0, B: 1, A: 1}, false},
		{"hex alpha", "#00000000", gg.RGBA{}, false},
		{"name", "white", gg.RGBA{R: 1, G: 1, B: 1, A: 1}, false},
		{"name mixed case", "Black", gg.RGBA{A: 1}, false},
		{"padded", "  red ", gg.RGBA{R: 1, A: 1}, false},

		{"empty", "", gg.RGBA{}, true},
		{"unknown name", "blurple", gg.RGBA{}, true},
		{"bad hex", "#12", gg.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidStyle) {
					t.Errorf("error code = %v, want INVALID_STYLE", errors.GetCode(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePaint(t *testing.T) {
	for _, s := range []string{"", "none", "NONE"} {
		p, err := ParsePaint(s)
		if err != nil || !p.IsZero() {
			t.Errorf("ParsePaint(%q) = %v, %v; want zero paint", s, p, err)
		}
	}
	p, err := ParsePaint("navy")
	if err != nil {
		t.Fatal(err)
	}
	if c, ok := p.RGBA(); !ok || c.B == 0 {
		t.Errorf("ParsePaint(navy) = %+v", c)
	}
}

func TestParseEnums(t *testing.T) {
	if c, err := ParseLineCap(""); err != nil || c != gg.LineCapSquare {
		t.Errorf("ParseLineCap(\"\") = %v, %v", c, err)
	}
	if c, err := ParseLineCap("round"); err != nil || c != gg.LineCapRound {
		t.Errorf("ParseLineCap(round) = %v, %v", c, err)
	}
	if _, err := ParseLineCap("pointy"); err == nil {
		t.Error("ParseLineCap(pointy) succeeded")
	}
	if j, err := ParseLineJoin("bevel"); err != nil || j != gg.LineJoinBevel {
		t.Errorf("ParseLineJoin(bevel) = %v, %v", j, err)
	}
	if r, err := ParseFillRule("evenodd"); err != nil || r != gg.FillRuleEvenOdd {
		t.Errorf("ParseFillRule(evenodd) = %v, %v", r, err)
	}
}

func TestPaintHelpers(t *testing.T) {
	p := Color(gg.RGBA{R: 1, A: 0.8}).WithAlpha(0.5)
	c, _ := p.RGBA()
	if c.A != 0.4 {
		t.Errorf("WithAlpha alpha = %v, want 0.4", c.A)
	}

	var zero Paint
	if got := zero.Or(Color(gg.Black)); got.IsZero() {
		t.Error("Or did not fall back")
	}
	if !Brush(nil).IsZero() {
		t.Error("Brush(nil) is not zero")
	}
	if LinearGradient(0, 0, 10, 0, gg.Red, gg.Blue).IsZero() {
		t.Error("gradient paint is zero")
	}
}

func TestZeroPaintDrawsNothing(t *testing.T) {
	rec := recording.NewRecorder(50, 50)
	c := canvas.FromRecorder(rec)

	c.DrawCircle(25, 25, 10)
	if err := (Fill{}).Apply(c); err != nil {
		t.Fatal(err)
	}
	c.DrawCircle(25, 25, 10)
	if err := (Stroke{Width: 2}).Apply(c); err != nil {
		t.Fatal(err)
	}
	DefaultText(12).WithPaint(Paint{}).Draw(c, "x", 1, 1)

	for _, cmd := range rec.FinishRecording().Commands() {
		switch cmd.(type) {
		case recording.FillPathCommand, recording.StrokePathCommand, recording.DrawTextCommand:
			t.Errorf("unexpected draw command %T", cmd)
		}
	}
}

func TestStrokeApply(t *testing.T) {
	rec := recording.NewRecorder(50, 50)
	c := canvas.FromRecorder(rec)

	c.MoveTo(0, 0)
	c.LineTo(10, 10)
	s := DefaultStroke().WithWidth(4)
	s.Dash = []float64{2, 1}
	if err := s.Apply(c); err != nil {
		t.Fatal(err)
	}

	var found bool
	for _, cmd := range rec.FinishRecording().Commands() {
		if sp, ok := cmd.(recording.StrokePathCommand); ok {
			found = true
			if sp.Stroke.Width != 4 {
				t.Errorf("width = %v, want 4", sp.Stroke.Width)
			}
			if len(sp.Stroke.DashPattern) != 2 {
				t.Errorf("dash = %v, want [2 1]", sp.Stroke.DashPattern)
			}
		}
	}
	if !found {
		t.Error("no stroke recorded")
	}
}
