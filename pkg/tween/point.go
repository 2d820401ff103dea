package tween

import "github.com/gogpu/gg"

// PointTween animates a point from two independent scalar tweens.
type PointTween struct {
	X, Y *Tween
}

// NewPoint returns a tween that holds p.
func NewPoint(p gg.Point) *PointTween {
	return &PointTween{X: New(p.X), Y: New(p.Y)}
}

// Wait holds the current point until time t.
func (pt *PointTween) Wait(t float64) *PointTween {
	pt.X.Wait(t)
	pt.Y.Wait(t)
	return pt
}

// To moves to p, arriving at time t.
func (pt *PointTween) To(p gg.Point, t float64) *PointTween {
	pt.X.To(p.X, t)
	pt.Y.To(p.Y, t)
	return pt
}

// ToD moves to p over duration d.
func (pt *PointTween) ToD(p gg.Point, d float64) *PointTween {
	return pt.To(p, pt.Len()+d)
}

// Ease sets the easing for subsequent segments of both coordinates.
func (pt *PointTween) Ease(fn Easing) *PointTween {
	pt.X.Ease(fn)
	pt.Y.Ease(fn)
	return pt
}

// Len returns the later of the two coordinate lengths.
func (pt *PointTween) Len() float64 { return max(pt.X.Len(), pt.Y.Len()) }

// Get returns the point at time t.
func (pt *PointTween) Get(t float64) gg.Point {
	return gg.Pt(pt.X.Get(t), pt.Y.Get(t))
}
