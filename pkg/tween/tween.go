// Package tween provides keyframe interpolation for animated scenes.
//
// A [Tween] is built as a chain of segments and then sampled at any time:
//
//	alpha := tween.New(0).Wait(2).ToD(1, 0.5)  // hidden, then fades in
//	alpha.Get(1)    // 0
//	alpha.Get(2.25) // 0.5
//	alpha.Get(10)   // 1
//
// Times are absolute for [Tween.Wait] and [Tween.To] and relative for the
// D variants. The unit is the caller's choice; scenes build their tweens in
// seconds and sample them at frame/fps.
package tween

import "sort"

// Easing maps progress in [0, 1] to eased progress.
type Easing func(float64) float64

// Easing functions.
var (
	Linear Easing = func(x float64) float64 { return x }
	// EaseIn is a cubic ease-in.
	EaseIn Easing = func(x float64) float64 { return x * x * x }
	// EaseOut is a cubic ease-out.
	EaseOut Easing = func(x float64) float64 {
		y := 1 - x
		return 1 - y*y*y
	}
	// EaseInOut is a cubic ease-in-out.
	EaseInOut Easing = func(x float64) float64 {
		if x < 0.5 {
			return 4 * x * x * x
		}
		y := -2*x + 2
		return 1 - y*y*y/2
	}
	Smoothstep Easing = func(x float64) float64 { return x * x * (3 - 2*x) }
)

// ParseEasing returns the easing named s, or false if s is unknown. The
// empty string is linear.
func ParseEasing(s string) (Easing, bool) {
	switch s {
	case "", "linear":
		return Linear, true
	case "ease-in", "easein":
		return EaseIn, true
	case "ease-out", "easeout":
		return EaseOut, true
	case "ease-in-out", "easeinout":
		return EaseInOut, true
	case "smoothstep":
		return Smoothstep, true
	}
	return nil, false
}

type segment struct {
	start, end float64
	from, to   float64
	ease       Easing
}

// Tween is a scalar that changes over time. The zero value is not usable;
// call [New].
//
// Builder methods return the receiver so they can be chained. A Wait or
// target time earlier than the current end of the tween is treated as the
// current end, so To degrades to Set rather than moving back in time.
type Tween struct {
	initial  float64
	segments []segment
	ease     Easing
}

// New returns a tween that holds initial.
func New(initial float64) *Tween {
	return &Tween{initial: initial, ease: Linear}
}

// Len returns the time at which the final value is reached.
func (tw *Tween) Len() float64 {
	if len(tw.segments) == 0 {
		return 0
	}
	return tw.segments[len(tw.segments)-1].end
}

// last returns the value at the end of the tween.
func (tw *Tween) last() float64 {
	if len(tw.segments) == 0 {
		return tw.initial
	}
	return tw.segments[len(tw.segments)-1].to
}

// Ease sets the easing for segments added after this call.
func (tw *Tween) Ease(fn Easing) *Tween {
	if fn == nil {
		fn = Linear
	}
	tw.ease = fn
	return tw
}

// Set jumps to v at the current end.
func (tw *Tween) Set(v float64) *Tween {
	end := tw.Len()
	tw.segments = append(tw.segments, segment{start: end, end: end, from: v, to: v, ease: Linear})
	return tw
}

// Wait holds the current value until time t.
func (tw *Tween) Wait(t float64) *Tween {
	end := tw.Len()
	if t <= end {
		return tw
	}
	v := tw.last()
	tw.segments = append(tw.segments, segment{start: end, end: t, from: v, to: v, ease: Linear})
	return tw
}

// WaitD holds the current value for duration d.
func (tw *Tween) WaitD(d float64) *Tween { return tw.Wait(tw.Len() + d) }

// To moves from the current value to v, arriving at time t.
func (tw *Tween) To(v, t float64) *Tween {
	end := tw.Len()
	if t <= end {
		return tw.Set(v)
	}
	tw.segments = append(tw.segments, segment{start: end, end: t, from: tw.last(), to: v, ease: tw.ease})
	return tw
}

// ToD moves from the current value to v over duration d.
func (tw *Tween) ToD(v, d float64) *Tween { return tw.To(v, tw.Len()+d) }

// Get returns the value at time t. Times before the first segment return
// the initial value; times past the end hold the final value.
func (tw *Tween) Get(t float64) float64 {
	if len(tw.segments) == 0 || t < 0 {
		return tw.initial
	}
	if t >= tw.Len() {
		return tw.last()
	}
	// First segment that ends after t; zero-length Set segments ending at t
	// are skipped so the value after the jump wins.
	i := sort.Search(len(tw.segments), func(i int) bool { return tw.segments[i].end > t })
	s := tw.segments[i]
	if t < s.start {
		return s.from
	}
	x := (t - s.start) / (s.end - s.start)
	return s.from + (s.to-s.from)*s.ease(x)
}
