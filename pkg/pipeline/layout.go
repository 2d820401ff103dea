package pipeline

import (
	"context"

	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/graph"
	"github.com/matzehuels/drawkit/pkg/layout"
	"github.com/matzehuels/drawkit/pkg/scene"
)

// selectGraph returns graph index of d.
func selectGraph(d *scene.Drawing, index int) (*graph.Graph, error) {
	graphs := d.Graphs()
	if len(graphs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scene has no graphs to export")
	}
	if index < 0 || index >= len(graphs) {
		return nil, errors.New(errors.ErrCodeOutOfRange, "graph %d out of range [0, %d)", index, len(graphs))
	}
	return graphs[index], nil
}

// exportEngine is the Graphviz engine for a node-link export.
func exportEngine(d *scene.Drawing, opts Options) string {
	if opts.Engine != "" {
		return opts.Engine
	}
	if e := d.Scene().Layout; e != "" {
		return e
	}
	return layout.DefaultEngine
}

// RenderGraph renders one scene graph as a Graphviz node-link view in
// format dot, svg or pdf.
func RenderGraph(ctx context.Context, d *scene.Drawing, format string, opts Options) ([]byte, error) {
	g, err := selectGraph(d, opts.Graph)
	if err != nil {
		return nil, err
	}
	dot := layout.ToDOT(g)
	engine := exportEngine(d, opts)

	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return layout.RenderSVG(ctx, dot, engine)
	case FormatPDF:
		return layout.RenderPDF(ctx, dot, engine)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "graph export does not support %s", format)
}
