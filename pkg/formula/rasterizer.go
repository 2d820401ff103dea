package formula

import (
	"context"
	"fmt"
	"image"

	"github.com/gogpu/gg"
)

// Defaults for formula rasterization.
const (
	DefaultDPI = 600
	DefaultGap = 50
)

// Options control how a formula is rasterized.
type Options struct {
	// DPI sets the formula size; 600 gives roughly 80 pixel tall capitals.
	DPI int
	// Color is the ink colour. The background is transparent.
	Color gg.RGBA
	// Packages are extra LaTeX packages to load, beyond amsmath and amssymb.
	Packages []string
}

// DefaultOptions returns black ink at DefaultDPI.
func DefaultOptions() Options {
	return Options{DPI: DefaultDPI, Color: gg.Black}
}

func (o Options) dpi() int {
	if o.DPI > 0 {
		return o.DPI
	}
	return DefaultDPI
}

// colorKey renders the colour as #rrggbbaa for cache keys.
func (o Options) colorKey() string {
	c := o.Color
	b := func(v float64) int { return int(min(max(v, 0), 1)*255 + 0.5) }
	return fmt.Sprintf("#%02x%02x%02x%02x", b(c.R), b(c.G), b(c.B), b(c.A))
}

// Rasterizer converts LaTeX source to an image. name identifies the
// formula's intermediate files and must be unique among concurrent calls.
type Rasterizer interface {
	Rasterize(ctx context.Context, name, tex string, opts Options) (image.Image, error)
}

// RasterizerFunc adapts a function to the Rasterizer interface.
type RasterizerFunc func(ctx context.Context, name, tex string, opts Options) (image.Image, error)

// Rasterize calls f.
func (f RasterizerFunc) Rasterize(ctx context.Context, name, tex string, opts Options) (image.Image, error) {
	return f(ctx, name, tex, opts)
}
