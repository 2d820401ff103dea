// Package symbol draws circuit-style symbols with addressable connection
// points: logic gates, labelled boxes, and the wires between them.
//
// # Connectors
//
// Every [Symbol] exposes its connection points as (side, index) pairs:
//
//	p, err := and.Connector(symbol.Inputs, 1)  // second input
//	q, err := box.Connector(symbol.Left, 0)    // first point on the left
//
// Connector is pure: it returns the same absolute point every time for the
// same symbol geometry, and fails with OUT_OF_RANGE for a side or index the
// symbol does not have. Points are spread evenly along their side: gate
// inputs at (2i+1)/(2n) of the height, box points at (i+1)/(n+1) of the
// side length.
//
// # Gates
//
// [Gate] covers AND, NAND, OR, NOR, XOR, XNOR, NOT and BUFFER. Side 0 holds
// the inputs, side 1 the single output. Inverting gates draw a bubble at the
// output and move the output connector past it.
//
// # Wires
//
// A [Wire] joins two points, usually two connectors, either straight or with
// an orthogonal elbow at the horizontal midpoint. Junction dots and an
// arrowhead at the end are optional.
package symbol
