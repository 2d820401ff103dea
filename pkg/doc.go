// Package pkg provides the core libraries for drawkit scene rendering.
//
// # Overview
//
// drawkit turns declarative scene documents into images. A scene places
// graphs, logic gates, boxes, wires, LaTeX formulas, text and geometry
// figures on a canvas, and can animate them over a number of frames.
//
// # Architecture
//
// The typical data flow:
//
//	scene document (TOML or JSON)
//	         ↓
//	    [scene] package (decode, resolve pins, tweens and motions)
//	         ↓
//	    [layout] and [formula] packages (Graphviz positions, LaTeX images)
//	         ↓
//	    [canvas] and [shape] packages (draw a frame)
//	         ↓
//	PNG/JPEG/SVG/PDF/DOT/JSON/TOML output
//
// [pipeline] ties these stages together with caching, and is shared by the
// CLI and the HTTP preview server.
//
// # Quick Start
//
//	s, _ := scene.Open("adder.toml")
//	d, _ := scene.Build(ctx, s, scene.BuildOptions{})
//	img, _ := pipeline.Rasterize(ctx, d, 0, 2)
//
// # Main Packages
//
// ## Drawing
//
// [geom] - Points, segment intersection, bisectors and arc helpers.
//
// [style] - Colors, paints, strokes and the hand-drawn sketch effect.
//
// [shape] - Lines, arrows, arcs, polygons, angle marks and tick marks drawn
// onto a canvas.
//
// [canvas] - The drawing surface, backed either by a gogpu/gg raster
// context or by a command recorder.
//
// [symbol] - Logic gates and boxes with named connectors.
//
// [graph] - Vertices and edges with loops, curved edges and labels.
//
// [plot] - Graph axes and complex-plane colour maps with a key bar.
//
// [tween] - Animated scalars and motion paths sampled per frame.
//
// ## Scene and Rendering
//
// [scene] - The scene document and its build into a drawable [scene.Drawing].
//
// [layout] - Graphviz layout and DOT, SVG and PDF export.
//
// [formula] - LaTeX rasterization with an external toolchain.
//
// [pipeline] - Load, build and render with artifact caching.
//
// ## Infrastructure
//
// [cache] - File, Redis and null caches with key derivation.
//
// [store] - Scene storage in a directory or in MongoDB.
//
// [server] - HTTP preview server.
//
// [observability] - Hooks for render, cache and HTTP events.
//
// [errors] - Coded errors shared across packages.
//
// [buildinfo] - Version information set at build time.
package pkg
