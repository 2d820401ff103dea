// Package layout positions graph vertices with Graphviz and exports graphs
// as DOT, SVG and PDF.
//
// Scenes may leave vertex positions out. [Auto] runs a Graphviz engine
// (neato by default) over the whole graph, reads the computed node
// positions back from the DOT output, and fits them into a target
// rectangle. Vertices that already have positions keep them.
//
// Graphviz runs in-process through github.com/goccy/go-graphviz, so no
// external binaries are needed for layout or SVG export. PDF export
// converts the SVG with rsvg-convert.
package layout
