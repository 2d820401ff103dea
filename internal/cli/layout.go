package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/drawkit/pkg/layout"
	"github.com/matzehuels/drawkit/pkg/scene"
)

// layoutCommand creates the layout command for pinning graph layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		engine  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [scene]",
		Short: "Run Graphviz on a scene's graphs and write the positions back",
		Long: `Compute positions for every graph vertex that has none and write a copy of
the scene with the positions filled in.

The output scene renders without Graphviz and can be edited by hand to nudge
vertices. It is written as TOML unless the output name ends in .json.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := sceneArg(cmd.Context(), args)
			if err != nil {
				return err
			}
			if engine != "" {
				if err := layout.ValidateEngine(engine); err != nil {
					return err
				}
			}
			return c.runLayout(cmd.Context(), input, engine, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <scene>.layout.toml)")
	cmd.Flags().StringVar(&engine, "engine", "", "Graphviz engine: neato (default), dot, circo, fdp, twopi")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout builds the scene, which lays out its graphs, and writes the
// pinned copy.
func (c *CLI) runLayout(ctx context.Context, input, engine, output string, noCache bool) error {
	s, err := scene.Open(input)
	if err != nil {
		return err
	}
	if engine != "" {
		s.Layout = engine
	}
	auto := 0
	for _, g := range s.Graphs {
		for _, v := range g.Vertices {
			if v.At == nil {
				auto++
			}
		}
	}
	if auto == 0 {
		printInfo("Every vertex is already placed; nothing to lay out")
		return nil
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	d, err := runner.Build(ctx, s)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	path := output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.toml"
	}
	if err := writeScene(d.Pinned(), path); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(path)
	printStats([]stat{{len(s.Graphs), "graph"}, {auto, "vertex"}}, false)
	printNewline()
	printNextStep("Render", appName+" render "+path)
	return nil
}

// writeScene writes s as JSON or TOML depending on the extension of path.
func writeScene(s *scene.Scene, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return scene.ExportJSON(s, path)
	}
	data, err := scene.MarshalTOML(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
