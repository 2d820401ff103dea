package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/drawkit/pkg/pipeline"
	"github.com/matzehuels/drawkit/pkg/scene"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Render a scene frame to PNG, JPEG, SVG, PDF, DOT or a command dump",
		Long: `Render one frame of a scene document (.toml or .json).

Raster formats (png, jpeg) and the draw command dump (commands) show the whole
scene. The dot, svg and pdf formats export one of the scene's graphs as a
Graphviz node-link diagram; select it with --graph. The json and toml formats
re-encode the scene document itself.

Without a scene argument, an interactive picker lists the scenes in the
current directory.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := sceneArg(cmd.Context(), args)
			if err != nil {
				return err
			}
			opts.Formats = parseFormats(formatsStr)
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), input, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even if cached")

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), jpeg, svg, pdf, dot, json, toml, commands (comma-separated)")
	cmd.Flags().IntVar(&opts.Frame, "frame", 0, "frame to draw")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "raster scale factor")
	cmd.Flags().Float64Var(&opts.Sketch, "sketch", 0, "hand-drawn stroke amplitude (overrides the scene)")
	cmd.Flags().IntVar(&opts.Graph, "graph", 0, "graph to export for dot, svg and pdf")
	cmd.Flags().StringVar(&opts.Engine, "engine", "", "Graphviz engine for dot, svg and pdf: neato, dot, circo, fdp, twopi")

	return cmd
}

// runRender renders input through the cached pipeline and writes one file
// per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Path = input
	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(input)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		stats:     sceneStats(result.Scene),
		cacheHit:  result.CacheInfo.RenderHit,
	})
}

// artifactWriteParams holds what writeArtifacts needs to name and report
// output files.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	stats     []stat
	cacheHit  bool
}

// writeArtifacts writes each artifact to its output path. An output that
// would overwrite the input scene is refused.
func writeArtifacts(p artifactWriteParams) error {
	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		path := outputPath(p.output, p.input, format, len(p.formats))
		if sameFile(path, p.input) {
			return fmt.Errorf("refusing to overwrite input %s; pass --output", p.input)
		}
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.stats, p.cacheHit)
	return nil
}

func sameFile(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && aa == bb
}

// sceneStats summarizes s for printStats.
func sceneStats(s *scene.Scene) []stat {
	if s == nil {
		return nil
	}
	return []stat{
		{s.FrameCount(), "frame"},
		{len(s.Graphs), "graph"},
		{len(s.Gates), "gate"},
		{len(s.Boxes), "box"},
		{len(s.Wires), "wire"},
		{len(s.Formulas), "formula"},
		{len(s.Figures), "figure"},
		{len(s.Texts), "text"},
	}
}
