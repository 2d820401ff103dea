package cli

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/pipeline"
)

// framesCommand creates the frames command for rendering animations.
func (c *CLI) framesCommand() *cobra.Command {
	var (
		outDir string
		format string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "frames [scene]",
		Short: "Render every frame of an animated scene",
		Long: `Render every frame of a scene as numbered images.

Frames are written as <dir>/<scene>-0000.png, <scene>-0001.png and so on, ready
for an encoder such as ffmpeg:

  drawkit frames intro.toml -o out
  ffmpeg -framerate 24 -i out/intro-%04d.png intro.mp4

The scene is built once; formulas and graph layouts are still cached.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := sceneArg(cmd.Context(), args)
			if err != nil {
				return err
			}
			if format != pipeline.FormatPNG && format != pipeline.FormatJPEG {
				return errors.New(errors.ErrCodeInvalidFormat, "frames are written as png or jpeg, not %q", format)
			}
			return c.runFrames(cmd.Context(), input, opts, outDir, format)
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", "", "output directory (default: <scene>_frames)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatPNG, "image format: png, jpeg")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "raster scale factor")
	cmd.Flags().Float64Var(&opts.Sketch, "sketch", 0, "hand-drawn stroke amplitude (overrides the scene)")

	return cmd
}

func (c *CLI) runFrames(ctx context.Context, input string, opts pipeline.Options, outDir, format string) error {
	logger := loggerFromContext(ctx)
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	base := basePath("", input)
	if outDir == "" {
		outDir = base + "_frames"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	stem := filepath.Base(base)

	opts.Path = input
	opts.Logger = logger

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Building scene...")
	spinner.Start()

	count := 0
	err = runner.RenderFrames(ctx, opts, func(frame int, img image.Image) error {
		spinner.Update("Rendering frame %d...", frame+1)
		data, err := pipeline.EncodeImage(img, format)
		if err != nil {
			return err
		}
		path := filepath.Join(outDir, fmt.Sprintf("%s-%04d.%s", stem, frame, format))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debug("wrote frame", "path", path)
		count++
		return nil
	})
	if err != nil {
		spinner.StopWithError("Frames failed")
		return err
	}
	spinner.Stop()

	prog.done(fmt.Sprintf("Rendered %d frames", count))
	printSuccess("Frames complete")
	printFile(filepath.Join(outDir, fmt.Sprintf("%s-%%04d.%s", stem, format)))
	printStats([]stat{{count, "frame"}}, false)
	return nil
}
