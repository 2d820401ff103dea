// Package canvas defines the drawing surface drawkit renders onto.
//
// [Canvas] is the narrow set of operations the diagram packages need: path
// building, arcs and circles, colour and stroke parameters, fill and stroke,
// anchored text and image placement. Two adapters are provided:
//
//   - [FromContext] draws onto a rasterizing *gg.Context
//   - [FromRecorder] records onto a *recording.Recorder, which tests and the
//     "commands" output format use to inspect exactly what was drawn
//
// [Sketch] wraps any Canvas so straight segments are drawn as slightly
// wobbly curves, for a hand-drawn look.
//
// # Arcs
//
// DrawArc always begins a new subpath at the arc's start point. Angles sweep
// from a1 to a2 in increasing direction; a2 < a1 is wrapped by 2π.
//
// # Fonts
//
// Font families are looked up in a [Fonts] registry. The default registry
// holds the Go fonts ("Go Regular", "Go Bold", "Go Mono"). Unknown families
// fall back to the default face so text is never silently dropped.
package canvas
