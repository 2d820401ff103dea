package scene

import (
	"strings"

	"github.com/gogpu/gg"

	"github.com/matzehuels/drawkit/pkg/canvas"
	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/tween"
)

// buildTween turns a TweenSpec into a tween.
func buildTween(name string, spec TweenSpec) (*tween.Tween, error) {
	d := spec.Duration
	if d <= 0 {
		d = tween.DefaultFade
	}
	switch strings.ToLower(spec.Kind) {
	case "":
	case "fade-in":
		return tween.FadeIn(spec.Start, d), nil
	case "fade-out":
		return tween.FadeOut(spec.Start, d), nil
	case "fade-in-out":
		return tween.FadeInOut(spec.Start, d, spec.Hold), nil
	case "alpha-on":
		return tween.AlphaOn(tween.Alpha{Off: 0, On: 1, Fade: d}, spec.Start, spec.Times...), nil
	case "alpha-off":
		return tween.AlphaOff(tween.Alpha{Off: 0, On: 1, Fade: d}, spec.Start, spec.Times...), nil
	case "zoom-in":
		if spec.Duration <= 0 {
			d = 1
		}
		return tween.ZoomIn(spec.Start, d, spec.Initial), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidScene, "tween %q: unknown kind %q", name, spec.Kind)
	}

	tw := tween.New(spec.Initial)
	for i, st := range spec.Steps {
		switch strings.ToLower(st.Op) {
		case "set":
			tw.Set(st.Value)
		case "wait":
			tw.Wait(st.T)
		case "wait-d":
			tw.WaitD(st.T)
		case "to":
			tw.To(st.Value, st.T)
		case "to-d":
			tw.ToD(st.Value, st.T)
		case "ease":
			fn, ok := tween.ParseEasing(st.Ease)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidScene, "tween %q step %d: unknown easing %q", name, i, st.Ease)
			}
			tw.Ease(fn)
		default:
			return nil, errors.New(errors.ErrCodeInvalidScene, "tween %q step %d: unknown op %q", name, i, st.Op)
		}
	}
	return tw, nil
}

func buildMotion(name string, spec MotionSpec) (*tween.PointTween, error) {
	pt := tween.NewPoint(spec.From.Pt())
	for i, st := range spec.Steps {
		switch strings.ToLower(st.Op) {
		case "wait":
			pt.Wait(st.T)
		case "to":
			pt.To(st.To.Pt(), st.T)
		case "to-d":
			pt.ToD(st.To.Pt(), st.T)
		case "ease":
			fn, ok := tween.ParseEasing(st.Ease)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidScene, "motion %q step %d: unknown easing %q", name, i, st.Ease)
			}
			pt.Ease(fn)
		default:
			return nil, errors.New(errors.ErrCodeInvalidScene, "motion %q step %d: unknown op %q", name, i, st.Op)
		}
	}
	return pt, nil
}

// binding is an element's resolved Anim.
type binding struct {
	fade *tween.Tween
	move *tween.PointTween
	zoom *tween.Tween
	// pivot is the point zoom scales about.
	pivot gg.Point
}

// bind resolves a. pivot is the element's own zoom centre, used when
// a.ZoomAt is unset; nil means the element has none.
func (d *Drawing) bind(a Anim, pivot *gg.Point) (binding, error) {
	var b binding
	if a.Fade != "" {
		tw, ok := d.tweens[a.Fade]
		if !ok {
			return b, errors.New(errors.ErrCodeInvalidScene, "unknown tween %q", a.Fade)
		}
		b.fade = tw
	}
	if a.Move != "" {
		pt, ok := d.motions[a.Move]
		if !ok {
			return b, errors.New(errors.ErrCodeInvalidScene, "unknown motion %q", a.Move)
		}
		b.move = pt
	}
	if a.Zoom != "" {
		tw, ok := d.tweens[a.Zoom]
		if !ok {
			return b, errors.New(errors.ErrCodeInvalidScene, "unknown tween %q", a.Zoom)
		}
		switch {
		case a.ZoomAt != nil:
			b.pivot = a.ZoomAt.Pt()
		case pivot != nil:
			b.pivot = *pivot
		default:
			return b, errors.New(errors.ErrCodeInvalidScene, "zoom %q needs zoom_at", a.Zoom)
		}
		b.zoom = tw
	}
	return b, nil
}

// apply wraps c for time t. It reports false when the element is fully
// transparent or zoomed to nothing and need not be drawn.
func (b binding) apply(c canvas.Canvas, t float64) (canvas.Canvas, bool) {
	if b.fade != nil {
		a := b.fade.Get(t)
		if a <= 0 {
			return c, false
		}
		c = canvas.Fade(c, a)
	}
	if b.move != nil {
		off := b.move.Get(t)
		c = canvas.Offset(c, off.X, off.Y)
	}
	if b.zoom != nil {
		s := b.zoom.Get(t)
		if s <= 0 {
			return c, false
		}
		c = canvas.Zoom(c, b.pivot.X, b.pivot.Y, s)
	}
	return c, true
}
