package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/drawkit/pkg/scene"
)

func TestElementRows(t *testing.T) {
	s, err := scene.Decode(strings.NewReader(latchTOML))
	if err != nil {
		t.Fatal(err)
	}
	rows := elementRows(s)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	want := []string{"gate", "nand n1", "10,20", "—", "—", "—"}
	if !slices.Equal(rows[0], want) {
		t.Errorf("rows[0] = %v, want %v", rows[0], want)
	}
	if rows[2][0] != "box" {
		t.Errorf("boxes should draw after gates, got %v", rows[2])
	}
}

func TestElementRowsZoom(t *testing.T) {
	s, err := scene.Decode(strings.NewReader(`
[tweens.grow]
kind = "zoom-in"

[[formula]]
at = [10, 10]
lines = ["e^{i\\pi} = -1"]
zoom = "grow"
`))
	if err != nil {
		t.Fatal(err)
	}
	rows := elementRows(s)
	if len(rows) != 1 || rows[0][0] != "formula" || rows[0][5] != "grow" {
		t.Errorf("rows = %v, want one formula zoomed by grow", rows)
	}
}

func TestSideLabels(t *testing.T) {
	tests := []struct {
		n    int
		want []string
	}{
		{2, []string{"in", "out"}},
		{4, []string{"left", "right", "top", "bottom"}},
		{5, []string{"left", "right", "top", "bottom", "4"}},
	}
	for _, tt := range tests {
		if got := sideLabels(tt.n); !slices.Equal(got, tt.want) {
			t.Errorf("sideLabels(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestDash(t *testing.T) {
	if dash("  ") != "—" || dash("on") != "on" {
		t.Error("dash() should replace blank values only")
	}
}
