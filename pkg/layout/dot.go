package layout

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/drawkit/pkg/errors"
	"github.com/matzehuels/drawkit/pkg/graph"
)

// Graphviz engines accepted by [Auto] and [RenderSVG].
const (
	EngineNeato = "neato"
	EngineDot   = "dot"
	EngineCirco = "circo"
	EngineFdp   = "fdp"
	EngineTwopi = "twopi"
)

// DefaultEngine suits the small undirected-looking diagrams scenes hold.
const DefaultEngine = EngineNeato

var engines = map[string]graphviz.Layout{
	EngineNeato: graphviz.NEATO,
	EngineDot:   graphviz.DOT,
	EngineCirco: graphviz.CIRCO,
	EngineFdp:   graphviz.FDP,
	EngineTwopi: graphviz.TWOPI,
}

// ValidateEngine checks that engine names a supported Graphviz layout.
func ValidateEngine(engine string) error {
	if _, ok := engines[engine]; !ok {
		return errors.New(errors.ErrCodeInvalidInput, "invalid layout engine: %q (must be one of: neato, dot, circo, fdp, twopi)", engine)
	}
	return nil
}

// nodeID is the DOT identifier of vertex i.
func nodeID(i int) string { return "v" + strconv.Itoa(i) }

// ToDOT converts g to a Graphviz digraph. Undirected edges get dir=none;
// curved edges and loops are drawn straight by Graphviz.
func ToDOT(g *graph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14, width=0.6, fixedsize=true];\n")
	buf.WriteString("  edge [arrowsize=0.8];\n")
	buf.WriteString("\n")

	for i, v := range g.Vertices {
		fmt.Fprintf(&buf, "  %s [label=%q];\n", nodeID(i), v.Label)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		var attrs []string
		if !e.Directed {
			attrs = append(attrs, "dir=none")
		}
		if e.Weight != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Weight))
		}
		fmt.Fprintf(&buf, "  %s -> %s", nodeID(e.Start), nodeID(e.End))
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, " [%s]", strings.Join(attrs, ", "))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// render lays out dot with engine and writes it in format.
func render(ctx context.Context, dot, engine string, format graphviz.Format) ([]byte, error) {
	if engine == "" {
		engine = DefaultEngine
	}
	if err := ValidateEngine(engine); err != nil {
		return nil, err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(engines[engine])

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExternalTool, err, "graphviz %s", engine)
	}
	return buf.Bytes(), nil
}

// RenderSVG lays out dot with engine and renders it as SVG.
func RenderSVG(ctx context.Context, dot, engine string) ([]byte, error) {
	svg, err := render(ctx, dot, engine, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPDF renders dot as SVG and converts it with rsvg-convert.
func RenderPDF(ctx context.Context, dot, engine string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot, engine)
	if err != nil {
		return nil, err
	}
	return SVGToPDF(svg)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg element with one whose viewBox
// starts at the origin and whose size matches the viewBox, so the image
// scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
