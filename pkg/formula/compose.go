package formula

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/matzehuels/drawkit/pkg/errors"
)

// Compose stacks images top to bottom, left aligned, with gap pixels
// around and between them. The result is at least minWidth wide; extra
// width is added on the right. bg fills the canvas; nil leaves it
// transparent.
//
// The height is the sum of the image heights plus (n+1) gaps and the width
// is the widest image plus two gaps.
func Compose(images []image.Image, gap, minWidth int, bg color.Color) (*image.RGBA, error) {
	if len(images) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no formulas to compose")
	}
	gap = max(gap, 0)

	width, height := 0, (len(images)+1)*gap
	for _, img := range images {
		b := img.Bounds()
		width = max(width, b.Dx())
		height += b.Dy()
	}
	width = max(width+2*gap, minWidth)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if bg != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}
	y := gap
	for _, img := range images {
		b := img.Bounds()
		r := image.Rect(gap, y, gap+b.Dx(), y+b.Dy())
		draw.Draw(dst, r, img, b.Min, draw.Over)
		y += b.Dy() + gap
	}
	return dst, nil
}

// Scale resizes img by factor with Catmull-Rom filtering.
func Scale(img image.Image, factor float64) image.Image {
	if factor == 1 || factor <= 0 {
		return img
	}
	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*factor+0.5))
	h := max(1, int(float64(b.Dy())*factor+0.5))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// RenderOptions configure [Render].
type RenderOptions struct {
	Options
	Gap      int
	MinWidth int
	// Background fills the composed image; nil is transparent.
	Background color.Color
}

// DefaultRenderOptions returns black formulas on white with DefaultGap.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Options: DefaultOptions(), Gap: DefaultGap, Background: color.White}
}

// Render rasterizes each line as its own formula, naming them with namer,
// and stacks the results with [Compose].
func Render(ctx context.Context, namer *Namer, r Rasterizer, lines []string, opts RenderOptions) (*image.RGBA, error) {
	if len(lines) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no formulas to render")
	}
	names := namer.NextN(len(lines))
	images := make([]image.Image, len(lines))
	for i, tex := range lines {
		img, err := r.Rasterize(ctx, names[i], tex, opts.Options)
		if err != nil {
			return nil, fmt.Errorf("formula %d: %w", i, err)
		}
		images[i] = img
	}
	return Compose(images, opts.Gap, opts.MinWidth, opts.Background)
}
