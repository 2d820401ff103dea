// Package graph draws vertex/edge diagrams: circles with centred labels joined
// by straight, curved or loop edges, optionally directed and weighted.
//
// # Building a Graph
//
// Vertices are indexed in insertion order. Edges refer to vertices by index
// and are not validated until the graph is drawn, so edges may be added
// before the vertices they connect:
//
//	g := graph.New()
//	a := g.AddVertex(gg.Pt(100, 100), "A")
//	b := g.AddVertex(gg.Pt(100, 300), "B")
//	g.AddEdge(a, b).WithDirection().WithWeight("5")
//	g.AddEdge(b, b).WithLoop(30, math.Pi)
//	err := g.Draw(c)
//
// # Styling
//
// The graph holds the default style: foreground (outlines, edges, text),
// background (vertex fill), line width, vertex radius, font and text size.
// Each vertex and edge may override any of these; zero values inherit.
//
// # Edge Kinds
//
//   - Straight: a line between the vertex centres. A direction marker sits at
//     the midpoint; the weight label sits 0.7*textSize to one side.
//   - Curved: an arc from [geom.CurvedArc]. Marker and label sit at the apex,
//     the label pushed outward on the convex side.
//   - Loop (start == end): a circle from [geom.SelfLoop]. Marker at the apex
//     along the tangent, label pushed outward along the loop angle.
//
// [Graph.LabelSide] flips which side straight-edge labels use. Curved and
// loop labels always sit outside the curve.
//
// # Draw Order
//
// All edges are drawn before any vertex, so vertex circles cover edge ends.
package graph
