// Package diagram renders the positioner state machine as a Graphviz graph.
//
// The machine has two orthogonal dimensions, Idle/Dragging and
// Unselected/Selected, giving four states. Edges are not hand-written: each
// input is applied to a representative state of every node through the pure
// transition functions in package positioner, and every committed change
// becomes an edge. The diagram therefore cannot drift from the code.
//
// # Usage
//
//	m := diagram.Build()
//	dot := diagram.ToDOT(m, diagram.Options{})
//	svg, err := diagram.RenderSVG(ctx, dot)
package diagram
