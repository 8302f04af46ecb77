// Package simulate drives a positioner with synthetic input, the way a host
// document would.
//
// Clicks go through the document, so the capture-phase deselect on the root
// always runs before the block's own bubble-phase select. Simulating the two
// listeners in a single phase would invert the outcome.
package simulate

import (
	"context"

	"github.com/matzehuels/designpanel/pkg/positioner"
)

// Simulator owns a document, one attached positioner and a block whose size
// can be changed between events.
type Simulator struct {
	Doc *positioner.Document
	P   *positioner.Positioner

	ctx   context.Context
	block positioner.Size
}

// New creates a simulator for a panel holding a block of the given size.
// The positioner is attached before New returns.
func New(panel, block positioner.Size, opts ...positioner.Option) (*Simulator, error) {
	return NewWithConfig(positioner.Config{Panel: panel}, block, opts...)
}

// NewWithConfig is New with a full positioner configuration.
func NewWithConfig(cfg positioner.Config, block positioner.Size, opts ...positioner.Option) (*Simulator, error) {
	s := &Simulator{
		Doc:   positioner.NewDocument(),
		ctx:   context.Background(),
		block: block,
	}

	h := positioner.NewHandle()
	m := positioner.MeasurerFunc(func(got positioner.Handle) (positioner.Size, bool) {
		if got != h {
			return positioner.Size{}, false
		}
		return s.block, true
	})

	s.P = positioner.New(cfg, m, append(opts, positioner.WithHandle(h))...)
	if err := s.P.Attach(s.Doc); err != nil {
		return nil, err
	}
	return s, nil
}

// WithContext sets the context passed to every dispatch.
func (s *Simulator) WithContext(ctx context.Context) *Simulator {
	s.ctx = ctx
	return s
}

// Block returns the block handle.
func (s *Simulator) Block() positioner.Handle { return s.P.Block() }

// SetBlockSize changes what the measurer reports from the next event on.
func (s *Simulator) SetBlockSize(size positioner.Size) { s.block = size }

// State returns the positioner state.
func (s *Simulator) State() positioner.State { return s.P.State() }

// Position returns the committed block position.
func (s *Simulator) Position() positioner.Position { return s.P.State().Position }

// Dispatch sends a raw event through the document.
func (s *Simulator) Dispatch(ev positioner.Event) {
	s.Doc.Dispatch(s.ctx, ev)
}

// PressAt presses the pointer on the block at pt.
func (s *Simulator) PressAt(pt positioner.Point) {
	s.Dispatch(positioner.PointerDown{Point: pt, On: s.Block()})
}

// PressDocumentAt presses the pointer on the document outside the block.
func (s *Simulator) PressDocumentAt(pt positioner.Point) {
	s.Dispatch(positioner.PointerDown{Point: pt, On: positioner.Root})
}

// MoveTo moves the pointer to pt.
func (s *Simulator) MoveTo(pt positioner.Point) {
	s.Dispatch(positioner.PointerMove{Point: pt})
}

// Release lifts the pointer at pt without producing a click.
func (s *Simulator) Release(pt positioner.Point) {
	s.Dispatch(positioner.PointerUp{Point: pt})
}

// ClickBlock clicks the block.
func (s *Simulator) ClickBlock() {
	s.Dispatch(positioner.Click{On: s.Block()})
}

// ClickDocument clicks somewhere outside the block.
func (s *Simulator) ClickDocument() {
	s.Dispatch(positioner.Click{On: positioner.Root})
}

// Key sends a key-down with the given identifier.
func (s *Simulator) Key(key string) {
	s.Dispatch(positioner.KeyDown{Key: key})
}

// Tap presses and releases on the block at pt, then clicks it.
func (s *Simulator) Tap(pt positioner.Point) {
	s.PressAt(pt)
	s.Release(pt)
	s.ClickBlock()
}

// DragFrom presses the block at start, moves by delta in one step, releases
// and clicks, as a browser does when press and release hit the same element.
func (s *Simulator) DragFrom(start, delta positioner.Point) {
	end := positioner.Point{X: start.X + delta.X, Y: start.Y + delta.Y}
	s.PressAt(start)
	s.MoveTo(end)
	s.Release(end)
	s.ClickBlock()
}

// DragPath presses the block at the first point, moves through the rest and
// releases at the last one without clicking.
func (s *Simulator) DragPath(points ...positioner.Point) {
	if len(points) == 0 {
		return
	}
	s.PressAt(points[0])
	for _, pt := range points[1:] {
		s.MoveTo(pt)
	}
	s.Release(points[len(points)-1])
}

// Close detaches the positioner.
func (s *Simulator) Close() {
	s.P.Detach()
}
