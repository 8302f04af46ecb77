package diagram

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/designpanel/pkg/positioner"
)

// Node is one of the four machine states.
type Node struct {
	Dragging bool
	Selected bool
}

// ID is the DOT identifier of the node.
func (n Node) ID() string {
	return n.dragLabel() + "_" + n.selectLabel()
}

// Label is the human-readable node name.
func (n Node) Label() string {
	return n.dragLabel() + "\n" + n.selectLabel()
}

func (n Node) dragLabel() string {
	if n.Dragging {
		return "dragging"
	}
	return "idle"
}

func (n Node) selectLabel() string {
	if n.Selected {
		return "selected"
	}
	return "unselected"
}

// Edge is a committed transition between two nodes.
type Edge struct {
	From, To Node
	Input    string
}

// Machine is the explored state graph.
type Machine struct {
	Nodes []Node
	Edges []Edge
}

// Inputs in the order they are explored.
const (
	InputPress         = "press block"
	InputMove          = "move in panel"
	InputRelease       = "release"
	InputClickBlock    = "click block"
	InputClickDocument = "click document"
	InputArrow         = "arrow key"
)

var (
	panel  = positioner.Size{Width: 500, Height: 500}
	block  = positioner.Handle("block")
	sample = positioner.FixedMeasurer(block, positioner.Size{Width: 80, Height: 30})
	mid    = positioner.Point{X: 200, Y: 200}
)

type input struct {
	name  string
	apply func(positioner.State) (positioner.State, bool)
}

var inputs = []input{
	{InputPress, func(s positioner.State) (positioner.State, bool) {
		return positioner.Press(s, block, mid)
	}},
	{InputMove, func(s positioner.State) (positioner.State, bool) {
		return positioner.Move(s, panel, sample, positioner.Point{X: 210, Y: 210})
	}},
	{InputRelease, positioner.Release},
	{InputClickBlock, func(s positioner.State) (positioner.State, bool) {
		s, deselected := positioner.ClickCapture(s)
		s, selected := positioner.ClickBlock(s, block)
		return s, deselected || selected
	}},
	{InputClickDocument, positioner.ClickCapture},
	{InputArrow, func(s positioner.State) (positioner.State, bool) {
		return positioner.Nudge(s, panel, sample, positioner.ArrowRight)
	}},
}

// Build explores every input from every node.
func Build() Machine {
	var m Machine
	for _, dragging := range []bool{false, true} {
		for _, selected := range []bool{false, true} {
			m.Nodes = append(m.Nodes, Node{Dragging: dragging, Selected: selected})
		}
	}

	for _, from := range m.Nodes {
		for _, in := range inputs {
			next, changed := in.apply(representative(from))
			if !changed {
				continue
			}
			m.Edges = append(m.Edges, Edge{From: from, To: classify(next), Input: in.name})
		}
	}
	return m
}

func representative(n Node) positioner.State {
	s := positioner.State{
		Last:     mid,
		Position: positioner.Position{Top: 100, Left: 100},
	}
	if n.Dragging {
		s.Dragging = block
	}
	if n.Selected {
		s.Editing = block
	}
	return s
}

func classify(s positioner.State) Node {
	return Node{Dragging: s.IsDragging(), Selected: s.IsEditing()}
}

// Options configures DOT output.
type Options struct {
	// MergeEdges joins parallel edges into one with a combined label.
	MergeEdges bool
}

// ToDOT converts the machine to Graphviz DOT.
func ToDOT(m Machine, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph positioner {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("\n")

	for _, n := range m.Nodes {
		attrs := []string{fmt.Sprintf("label=%q", n.Label())}
		if n == (Node{}) {
			attrs = append(attrs, "peripheries=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range edges(m, opts) {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From.ID(), e.To.ID(), e.Input)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edges(m Machine, opts Options) []Edge {
	if !opts.MergeEdges {
		return m.Edges
	}

	type key struct{ from, to Node }
	var (
		order  []key
		labels = map[key][]string{}
	)
	for _, e := range m.Edges {
		k := key{e.From, e.To}
		if _, ok := labels[k]; !ok {
			order = append(order, k)
		}
		labels[k] = append(labels[k], e.Input)
	}

	out := make([]Edge, 0, len(order))
	for _, k := range order {
		out = append(out, Edge{From: k.from, To: k.to, Input: strings.Join(labels[k], "\n")})
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
