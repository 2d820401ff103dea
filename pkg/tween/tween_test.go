package tween

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestTweenGet(t *testing.T) {
	tests := []struct {
		name string
		tw   *Tween
		at   float64
		want float64
	}{
		{"before start", New(0).Wait(2).ToD(1, 0.5), -1, 0},
		{"holding", New(0).Wait(2).ToD(1, 0.5), 1, 0},
		{"midway", New(0).Wait(2).ToD(1, 0.5), 2.25, 0.5},
		{"past end", New(0).Wait(2).ToD(1, 0.5), 10, 1},
		{"empty tween", New(7), 3, 7},
		{"before set", New(0).Wait(1).Set(5).ToD(10, 1), 0.5, 0},
		{"at set", New(0).Wait(1).Set(5).ToD(10, 1), 1, 5},
		{"after set", New(0).Wait(1).Set(5).ToD(10, 1), 1.5, 7.5},
		{"absolute to", New(10).To(20, 4), 1, 12.5},
		{"backwards to becomes set", New(0).Wait(5).To(3, 2), 6, 3},
		{"backwards wait ignored", New(0).Wait(5).Wait(2).ToD(1, 1), 5.5, 0.5},
		{"eased", New(0).Ease(EaseIn).ToD(1, 1), 0.5, 0.125},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tw.Get(tt.at); !approx(got, tt.want) {
				t.Errorf("Get(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestTweenLen(t *testing.T) {
	if got := New(0).Len(); got != 0 {
		t.Errorf("empty Len = %v", got)
	}
	tw := New(0).Wait(2).ToD(1, 0.5).WaitD(3)
	if got := tw.Len(); !approx(got, 5.5) {
		t.Errorf("Len = %v, want 5.5", got)
	}
}

func TestEasings(t *testing.T) {
	tests := []struct {
		name string
		fn   Easing
		half float64
	}{
		{"linear", Linear, 0.5},
		{"ease-in", EaseIn, 0.125},
		{"ease-out", EaseOut, 0.875},
		{"ease-in-out", EaseInOut, 0.5},
		{"smoothstep", Smoothstep, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !approx(tt.fn(0), 0) || !approx(tt.fn(1), 1) {
				t.Errorf("endpoints = %v, %v", tt.fn(0), tt.fn(1))
			}
			if got := tt.fn(0.5); !approx(got, tt.half) {
				t.Errorf("f(0.5) = %v, want %v", got, tt.half)
			}
			fn, ok := ParseEasing(tt.name)
			if !ok || !approx(fn(0.5), tt.half) {
				t.Errorf("ParseEasing(%q) mismatch", tt.name)
			}
		})
	}
	if _, ok := ParseEasing("bounce"); ok {
		t.Error("ParseEasing(bounce) succeeded")
	}
}

func TestAlphaToggles(t *testing.T) {
	on := AlphaOn(DefaultAlpha(), 2, 5, 8)
	for _, c := range []struct{ at, want float64 }{
		{0, 0}, {2.25, 0.5}, {3, 1}, {5.25, 0.5}, {6, 0}, {9, 1},
	} {
		if got := on.Get(c.at); !approx(got, c.want) {
			t.Errorf("AlphaOn.Get(%v) = %v, want %v", c.at, got, c.want)
		}
	}

	off := AlphaOff(Alpha{Off: 0.2, On: 0.8, Fade: 2}, 3)
	for _, c := range []struct{ at, want float64 }{
		{0, 0.8}, {4, 0.5}, {5, 0.2}, {100, 0.2},
	} {
		if got := off.Get(c.at); !approx(got, c.want) {
			t.Errorf("AlphaOff.Get(%v) = %v, want %v", c.at, got, c.want)
		}
	}
}

func TestFades(t *testing.T) {
	tw := FadeInOut(1, 1, 2)
	for _, c := range []struct{ at, want float64 }{
		{0, 0}, {1.5, 0.5}, {3, 1}, {4.5, 0.5}, {6, 0},
	} {
		if got := tw.Get(c.at); !approx(got, c.want) {
			t.Errorf("FadeInOut.Get(%v) = %v, want %v", c.at, got, c.want)
		}
	}
	if got := FadeOut(1, 2).Get(2); !approx(got, 0.5) {
		t.Errorf("FadeOut.Get(2) = %v", got)
	}
}

func TestWithAlpha(t *testing.T) {
	c := gg.RGBA{R: 1, A: 0.8}
	if got := WithAlpha(c, 0.5).A; !approx(got, 0.4) {
		t.Errorf("A = %v, want 0.4", got)
	}
	if got := WithAlpha(c, 2).A; !approx(got, 0.8) {
		t.Errorf("clamped A = %v, want 0.8", got)
	}
}

func TestPointTween(t *testing.T) {
	pt := NewPoint(gg.Pt(0, 0)).Wait(1).ToD(gg.Pt(10, 20), 2)
	got := pt.Get(2)
	if !approx(got.X, 5) || !approx(got.Y, 10) {
		t.Errorf("Get(2) = %v, want (5, 10)", got)
	}
	if !approx(pt.Len(), 3) {
		t.Errorf("Len = %v, want 3", pt.Len())
	}
}

func TestZoomIn(t *testing.T) {
	tw := ZoomIn(1, 2, 0.5)
	for _, tc := range []struct{ at, want float64 }{{0, 0.5}, {1, 0.5}, {2, 0.75}, {3, 1}, {9, 1}} {
		if got := tw.Get(tc.at); !approx(got, tc.want) {
			t.Errorf("Get(%v) = %v, want %v", tc.at, got, tc.want)
		}
	}
	if got := ZoomIn(0, 1, 0).Get(0); !approx(got, DefaultZoomFrom) {
		t.Errorf("default start scale = %v, want %v", got, DefaultZoomFrom)
	}
}
