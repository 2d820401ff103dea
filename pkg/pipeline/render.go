package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"math"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"

	"github.com/matzehuels/drawkit/pkg/canvas"
	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/formula"
	"github.com/matzehuels/drawkit/pkg/observability"
	"github.com/matzehuels/drawkit/pkg/scene"
)

// Render generates output artifacts in the requested formats. d may be nil
// when only json and toml are requested.
func Render(ctx context.Context, s *scene.Scene, d *scene.Drawing, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if d == nil && opts.NeedsBuild() {
		return nil, errors.New(errors.ErrCodeInternal, "formats %v need a built scene", opts.Formats)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var img image.Image
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatPNG, FormatJPEG:
			if img == nil {
				if img, err = Rasterize(ctx, d, opts.Frame, opts.Scale); err != nil {
					return nil, err
				}
			}
			data, err = EncodeImage(img, format)
		case FormatJSON:
			var buf bytes.Buffer
			err = scene.WriteJSON(s, &buf)
			data = buf.Bytes()
		case FormatTOML:
			data, err = scene.MarshalTOML(s)
		case FormatDOT, FormatSVG, FormatPDF:
			data, err = RenderGraph(ctx, d, format, opts)
		case FormatCommands:
			data, err = Commands(ctx, d, opts.Frame)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// Rasterize draws frame of d into a new image, scaled by scale.
func Rasterize(ctx context.Context, d *scene.Drawing, frame int, scale float64) (image.Image, error) {
	if err := ValidateScale(scale); err != nil {
		return nil, err
	}
	start := time.Now()
	w, h := d.Size()
	dc := gg.NewContext(int(math.Ceil(float64(w)*scale)), int(math.Ceil(float64(h)*scale)))
	defer dc.Close()
	if scale != 1 {
		dc.Scale(scale, scale)
	}
	if err := d.Draw(ctx, canvas.FromContext(dc), frame); err != nil {
		return nil, err
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	img := dc.Image()
	observability.Render().OnFrame(ctx, d.Scene().Name, frame, time.Since(start))
	return img, nil
}

// EncodeImage encodes img as png or jpeg.
func EncodeImage(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: DefaultJPEGQuality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		if err := formula.WritePNG(&buf, img); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// command is one entry of a commands dump.
type command struct {
	Op   string            `json:"op"`
	Args recording.Command `json:"args"`
}

// Commands records frame of d and returns the draw commands as a JSON
// array of {"op", "args"} objects. Paths, brushes and images appear as
// resource references.
func Commands(ctx context.Context, d *scene.Drawing, frame int) ([]byte, error) {
	w, h := d.Size()
	rec := recording.NewRecorder(w, h)
	if err := d.Draw(ctx, canvas.FromRecorder(rec), frame); err != nil {
		return nil, err
	}
	cmds := rec.FinishRecording().Commands()
	out := make([]command, len(cmds))
	for i, c := range cmds {
		out[i] = command{Op: c.Type().String(), Args: c}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode commands: %w", err)
	}
	return data, nil
}
