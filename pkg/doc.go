// Package pkg provides the libraries behind the designpanel tool.
//
// # Overview
//
// Designpanel hosts a single draggable block inside a fixed-size panel. The
// block follows the pointer while dragged, becomes selected when clicked and
// moves one unit per arrow key while selected. It never leaves the panel.
// The pkg directory is organized into these areas:
//
//  1. [positioner] - The state machine, the event boundary and rendering
//  2. [positioner/simulate] - Synthetic input for tests and replays
//  3. [script] - TOML/YAML input scripts with expected end states
//  4. [server] - HTTP host with a single event loop
//  5. [diagram] - Graphviz rendering of the state machine
//  6. [config], [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// Every host follows the same flow:
//
//	Host input (terminal mouse, HTTP body, script step)
//	         ↓
//	    positioner.Event values
//	         ↓
//	    [positioner.Document] (capture, then bubble)
//	         ↓
//	    [positioner.Positioner] (pure transitions, clamped position)
//	         ↓
//	    [positioner.Tree] rendered by the host
//
// # Quick Start
//
//	sim, err := simulate.New(
//	    positioner.Size{Width: 500, Height: 500},
//	    positioner.Size{Width: 80, Height: 30},
//	)
//	if err != nil {
//	    return err
//	}
//	defer sim.Close()
//
//	sim.DragFrom(positioner.Point{X: 10, Y: 10}, positioner.Point{X: 480, Y: 0})
//	fmt.Println(sim.Position()) // {top: 0px, left: 420px}
package pkg
