package tween

// DefaultZoomFrom is the starting scale of [ZoomIn] when none is given.
const DefaultZoomFrom = 0.7

// ZoomIn holds from until start, then grows to full size 1 over d.
func ZoomIn(start, d, from float64) *Tween {
	if from <= 0 {
		from = DefaultZoomFrom
	}
	return New(from).Wait(start).ToD(1, d)
}
