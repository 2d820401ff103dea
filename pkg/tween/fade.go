package tween

import "github.com/gogpu/gg"

// DefaultFade is the fade duration used by [AlphaOn] and [AlphaOff] when
// none is given, in seconds.
const DefaultFade = 0.5

// Alpha configures the toggling fades built by [AlphaOn] and [AlphaOff].
type Alpha struct {
	Off, On float64
	// Fade is the duration of each transition. Zero means DefaultFade.
	Fade float64
}

// DefaultAlpha toggles between 0 and 1 with the default fade.
func DefaultAlpha() Alpha { return Alpha{Off: 0, On: 1, Fade: DefaultFade} }

func (a Alpha) fade() float64 {
	if a.Fade > 0 {
		return a.Fade
	}
	return DefaultFade
}

// AlphaOn starts at a.Off and fades to a.On at time t. Each further time in
// times toggles the value again, off then on and so on. Times should be at
// least one fade apart.
func AlphaOn(a Alpha, t float64, times ...float64) *Tween {
	return toggle(a.Off, a.On, a.fade(), t, times)
}

// AlphaOff starts at a.On and fades to a.Off at time t, then toggles at
// each further time.
func AlphaOff(a Alpha, t float64, times ...float64) *Tween {
	return toggle(a.On, a.Off, a.fade(), t, times)
}

func toggle(from, to, fade, t float64, times []float64) *Tween {
	tw := New(from).Wait(t).ToD(to, fade)
	next := [2]float64{from, to}
	for i, ti := range times {
		tw.Wait(ti).ToD(next[i%2], fade)
	}
	return tw
}

// FadeIn is 0 until start and reaches 1 after d.
func FadeIn(start, d float64) *Tween {
	return New(0).Wait(start).ToD(1, d)
}

// FadeOut is 1 until start and reaches 0 after d.
func FadeOut(start, d float64) *Tween {
	return New(1).Wait(start).ToD(0, d)
}

// FadeInOut fades in from start over fade, stays visible for hold, then
// fades out over fade.
func FadeInOut(start, fade, hold float64) *Tween {
	return FadeIn(start, fade).WaitD(hold).ToD(0, fade)
}

// WithAlpha scales the alpha of c by a, clamped to [0, 1].
func WithAlpha(c gg.RGBA, a float64) gg.RGBA {
	c.A *= min(max(a, 0), 1)
	return c
}
