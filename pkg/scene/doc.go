// Package scene describes a complete drawing as data and renders it frame by
// frame.
//
// A [Scene] is a plain document that can be read from TOML ([Load],
// [Decode]) or JSON ([ReadJSON]). It lists graphs, logic gates, boxes,
// wires, text, LaTeX formulas and construction figures (including graph
// axes and complex-plane colour maps), plus named tweens that animate
// element opacity, position and scale over time.
//
// # Building
//
// [Build] resolves everything that does not change between frames: colours
// and styles are parsed, wire endpoints are looked up on their symbols,
// unpositioned graph vertices are placed by a [layout.Layouter] and formulas
// are rasterized once. The result is a [Drawing]:
//
//	s, err := scene.Load("circuit.toml")
//	if err != nil {
//	    return err
//	}
//	d, err := scene.Build(ctx, s, scene.BuildOptions{})
//	if err != nil {
//	    return err
//	}
//	err = d.Draw(ctx, c, 0)
//
// # Animation
//
// Elements bind to tweens by name. A "fade" binding multiplies the alpha of
// everything the element paints; a "move" binding offsets it by a point
// tween; a "zoom" binding scales it about "zoom_at", which formulas default
// to their centre. Tween times are in seconds and frame n is drawn at n/fps.
//
// # Elements
//
// Elements are drawn in a fixed order regardless of their order in the
// document: figures, graphs, wires, gates, boxes, formulas, then text.
// Within a kind, document order is kept.
package scene
