package cli

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/drawkit/pkg/formula"
	"github.com/matzehuels/drawkit/pkg/pipeline"
	"github.com/matzehuels/drawkit/pkg/style"
)

// formulaOpts holds the flags of the formula command.
type formulaOpts struct {
	output      string
	dpi         int
	color       string
	gap         int
	scale       float64
	packages    []string
	transparent bool
	noCache     bool
}

// formulaCommand creates the formula command.
func (c *CLI) formulaCommand() *cobra.Command {
	opts := formulaOpts{
		output: "formula.png",
		dpi:    formula.DefaultDPI,
		color:  "black",
		gap:    formula.DefaultGap,
		scale:  1,
	}

	cmd := &cobra.Command{
		Use:   "formula <tex>...",
		Short: "Rasterize LaTeX formulas to a PNG",
		Long: `Rasterize each argument as a display-math formula and stack them top to
bottom, left aligned, into one PNG.

Requires latex and dvipng on PATH. Rendered formulas are cached, so repeated
runs with the same lines are fast.`,
		Example: `  drawkit formula 'e^{i\pi} + 1 = 0' -o euler.png
  drawkit formula 'a^2 + b^2 = c^2' 'c = \sqrt{a^2 + b^2}' --dpi 300 --color '#336699'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFormula(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output PNG file")
	cmd.Flags().IntVar(&opts.dpi, "dpi", opts.dpi, "rasterization resolution")
	cmd.Flags().StringVar(&opts.color, "color", opts.color, "ink colour (#rrggbb or a CSS name)")
	cmd.Flags().IntVar(&opts.gap, "gap", opts.gap, "vertical gap between lines in pixels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "resize factor applied after composing")
	cmd.Flags().StringSliceVar(&opts.packages, "package", nil, "extra LaTeX package (repeatable)")
	cmd.Flags().BoolVar(&opts.transparent, "transparent", false, "keep a transparent background")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runFormula(ctx context.Context, lines []string, opts formulaOpts) error {
	ink, err := style.ParseColor(opts.color)
	if err != nil {
		return err
	}
	if err := pipeline.ValidateScale(opts.scale); err != nil {
		return err
	}
	if err := formula.NewLatexRasterizer().Available(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	ropts := formula.DefaultRenderOptions()
	ropts.DPI = opts.dpi
	ropts.Color = ink
	ropts.Packages = opts.packages
	ropts.Gap = opts.gap
	if opts.transparent {
		ropts.Background = nil
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rasterizing %d formula(s)...", len(lines)))
	spinner.Start()
	composed, err := formula.Render(ctx, formula.NewNamer(), runner.Rasterizer, lines, ropts)
	if err != nil {
		spinner.StopWithError("Formula failed")
		return err
	}
	spinner.Stop()

	var img image.Image = composed
	if opts.scale != 1 {
		img = formula.Scale(img, opts.scale)
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.output, err)
	}
	defer f.Close()
	if err := formula.WritePNG(f, img); err != nil {
		return err
	}

	b := img.Bounds()
	printSuccess("Formula complete")
	printFile(opts.output)
	printDetail("%d×%d px", b.Dx(), b.Dy())
	return nil
}
