// Package positioner implements a draggable, keyboard-nudgeable block
// confined to a fixed-size panel.
//
// The package is toolkit-agnostic. Hosts (a terminal UI, an HTTP server, a
// test harness) translate their input into [Event] values and dispatch them
// through a [Document]; a [Positioner] attached to the document turns them
// into a clamped [Position] and reports each committed change as a [Tree].
//
// # State Machine
//
// Two orthogonal dimensions:
//
//   - Idle / Dragging: pointer-down on the block starts a drag, pointer-up
//     anywhere ends it. Pointer moves apply only while dragging and only when
//     the pointer lies inside the panel.
//   - Unselected / Selected: a click on the block selects it, any click in
//     the document deselects it. The document listener runs in the capture
//     phase, before the block's own bubble-phase listener, so clicking the
//     block leaves it selected.
//
// While selected, arrow keys nudge the block by one unit.
//
// Every transition is a pure function of (State, input) in transition.go;
// [Positioner] only wires those functions to document listeners.
//
// # Geometry
//
// The block is always kept within [0, panelWidth-blockWidth] x
// [0, panelHeight-blockHeight]. The block size comes from an injected
// [Measurer] and is re-read on every move and nudge.
//
// # Lifecycle
//
//	doc := positioner.NewDocument()
//	p := positioner.New(positioner.Config{Panel: positioner.Size{Width: 500, Height: 500}}, m)
//	if err := p.Attach(doc); err != nil {
//	    return err
//	}
//	defer p.Detach()
package positioner
