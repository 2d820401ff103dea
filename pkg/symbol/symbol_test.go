package symbol

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"

	"github.com/matzehuels/drawkit/pkg/canvas"
	"github.com/matzehuels/drawkit/pkg/errors"
)

func near(a, b gg.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

// kinds records d and returns the sequence of fill, stroke and text
// commands it produced.
func kinds(t *testing.T, draw func(canvas.Canvas) error) []string {
	t.Helper()
	rec := recording.NewRecorder(400, 400)
	if err := draw(canvas.FromRecorder(rec)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	var out []string
	for _, cmd := range rec.FinishRecording().Commands() {
		switch cmd.(type) {
		case recording.FillPathCommand:
			out = append(out, "fill")
		case recording.StrokePathCommand:
			out = append(out, "stroke")
		case recording.DrawTextCommand:
			out = append(out, "text")
		}
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGateConnectors(t *testing.T) {
	tests := []struct {
		name        string
		kind        Kind
		inputs      int
		side, index int
		want        gg.Point
	}{
		{"and first input", AND, 2, Inputs, 0, gg.Pt(10, 40)},
		{"and second input", AND, 2, Inputs, 1, gg.Pt(10, 80)},
		{"and output", AND, 2, Outputs, 0, gg.Pt(110, 60)},
		{"nand output past bubble", NAND, 2, Outputs, 0, gg.Pt(120, 60)},
		{"or three inputs", OR, 3, Inputs, 1, gg.Pt(10, 60)},
		{"not input", NOT, 0, Inputs, 0, gg.Pt(10, 70)},
		{"not output", NOT, 0, Outputs, 0, gg.Pt(120, 70)},
		{"buffer output", BUFFER, 0, Outputs, 0, gg.Pt(110, 70)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGate(tt.kind, gg.Pt(10, 20), tt.inputs)
			got, err := g.Connector(tt.side, tt.index)
			if err != nil {
				t.Fatalf("Connector: %v", err)
			}
			if !near(got, tt.want) {
				t.Errorf("Connector(%d, %d) = %v, want %v", tt.side, tt.index, got, tt.want)
			}
		})
	}
}

func TestConnectorOutOfRange(t *testing.T) {
	g := NewGate(AND, gg.Pt(0, 0), 2)
	b := NewBox(gg.Pt(0, 0), "", 1, 1, 0, 0)
	tests := []struct {
		name        string
		sym         Symbol
		side, index int
	}{
		{"gate side", g, 2, 0},
		{"gate negative side", g, -1, 0},
		{"gate input index", g, Inputs, 2},
		{"gate output index", g, Outputs, 1},
		{"box empty side", b, Top, 0},
		{"box side", b, 4, 0},
		{"box negative index", b, Left, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.sym.Connector(tt.side, tt.index)
			if !errors.Is(err, errors.ErrCodeOutOfRange) {
				t.Errorf("err = %v, want OUT_OF_RANGE", err)
			}
		})
	}
}

func TestConnectorIsPure(t *testing.T) {
	g := NewGate(XOR, gg.Pt(5, 5), 4)
	a, _ := g.Connector(Inputs, 3)
	b, _ := g.Connector(Inputs, 3)
	if a != b {
		t.Errorf("Connector not stable: %v then %v", a, b)
	}
}

func TestBoxConnectors(t *testing.T) {
	b := NewBox(gg.Pt(0, 0), "ALU", 2, 1, 3, 1)
	tests := []struct {
		side, index int
		want        gg.Point
	}{
		{Left, 0, gg.Pt(0, 20)},
		{Left, 1, gg.Pt(0, 40)},
		{Right, 0, gg.Pt(100, 30)},
		{Top, 0, gg.Pt(25, 0)},
		{Top, 2, gg.Pt(75, 0)},
		{Bottom, 0, gg.Pt(50, 60)},
	}
	for _, tt := range tests {
		got, err := b.Connector(tt.side, tt.index)
		if err != nil {
			t.Fatalf("Connector(%d, %d): %v", tt.side, tt.index, err)
		}
		if !near(got, tt.want) {
			t.Errorf("Connector(%d, %d) = %v, want %v", tt.side, tt.index, got, tt.want)
		}
	}
}

func TestExplicitHeight(t *testing.T) {
	g := NewGate(AND, gg.Pt(0, 0), 2)
	g.Height = 200
	p, _ := g.Connector(Inputs, 0)
	if !near(p, gg.Pt(0, 50)) {
		t.Errorf("input = %v, want (0, 50)", p)
	}
	_, hi := g.Bounds()
	if !near(hi, gg.Pt(100, 200)) {
		t.Errorf("Bounds max = %v, want (100, 200)", hi)
	}
}

func TestGateDraw(t *testing.T) {
	tests := []struct {
		kind Kind
		want []string
	}{
		{AND, []string{"fill", "stroke"}},
		{NAND, []string{"fill", "stroke", "fill", "stroke"}},
		{OR, []string{"fill", "stroke", "stroke"}},
		{XOR, []string{"fill", "stroke", "stroke", "stroke"}},
		{XNOR, []string{"fill", "stroke", "stroke", "stroke", "fill", "stroke"}},
		{NOT, []string{"fill", "stroke", "fill", "stroke"}},
		{BUFFER, []string{"fill", "stroke"}},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			g := NewGate(tt.kind, gg.Pt(10, 10), 2)
			if got := kinds(t, g.Draw); !equal(got, tt.want) {
				t.Errorf("commands = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxDrawLabel(t *testing.T) {
	b := NewBox(gg.Pt(0, 0), "MUX", 2, 1, 0, 0)
	want := []string{"fill", "stroke", "text"}
	if got := kinds(t, b.Draw); !equal(got, want) {
		t.Errorf("commands = %v, want %v", got, want)
	}
}

func TestParseKind(t *testing.T) {
	for k, name := range kindNames {
		got, err := ParseKind(name)
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", name, got, err)
		}
	}
	if k, err := ParseKind("XNOR"); err != nil || k != XNOR {
		t.Errorf("ParseKind(XNOR) = %v, %v", k, err)
	}
	if _, err := ParseKind("mux"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseKind(mux) err = %v", err)
	}
}

func TestWireRoute(t *testing.T) {
	w := NewWire(gg.Pt(0, 0), gg.Pt(100, 50))
	if got := w.Points(); len(got) != 2 {
		t.Errorf("straight route = %v", got)
	}
	w.Orthogonal = true
	got := w.Points()
	want := []gg.Point{gg.Pt(0, 0), gg.Pt(50, 0), gg.Pt(50, 50), gg.Pt(100, 50)}
	if len(got) != len(want) {
		t.Fatalf("orthogonal route = %v, want %v", got, want)
	}
	for i := range want {
		if !near(got[i], want[i]) {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}

	// Aligned ends need no elbow.
	w.To = gg.Pt(100, 0)
	if got := w.Points(); len(got) != 2 {
		t.Errorf("aligned orthogonal route = %v", got)
	}
}

func TestWireDraw(t *testing.T) {
	w := NewWire(gg.Pt(0, 0), gg.Pt(100, 50))
	w.Orthogonal = true
	w.StartDot = true
	w.EndDot = true
	w.Arrow = true
	want := []string{"stroke", "fill", "fill", "fill"}
	if got := kinds(t, w.Draw); !equal(got, want) {
		t.Errorf("commands = %v, want %v", got, want)
	}

	w = NewWire(gg.Pt(10, 10), gg.Pt(10, 10))
	w.Arrow = true
	rec := recording.NewRecorder(10, 10)
	if err := w.Draw(canvas.FromRecorder(rec)); !errors.Is(err, errors.ErrCodeDegenerateGeometry) {
		t.Errorf("zero-length arrow err = %v", err)
	}
}

func TestConnect(t *testing.T) {
	a := NewGate(AND, gg.Pt(0, 0), 2)
	n := NewGate(NOT, gg.Pt(200, 0), 0)
	w, err := Connect(a, Outputs, 0, n, Inputs, 0)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if !near(w.From, gg.Pt(100, 40)) || !near(w.To, gg.Pt(200, 50)) {
		t.Errorf("wire = %v -> %v", w.From, w.To)
	}
	if _, err := Connect(a, Outputs, 1, n, Inputs, 0); !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Errorf("bad connector err = %v", err)
	}
}
