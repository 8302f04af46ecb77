package positioner

import (
	derrors "github.com/matzehuels/designpanel/pkg/errors"
)

// Tree is the renderable output: a fixed-size container holding the block.
type Tree struct {
	Container Container `json:"container"`
	Child     Child     `json:"child"`
}

// Container is the panel box.
type Container struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Child is the positioned block. Top and Left are pixel strings.
type Child struct {
	Handle   Handle `json:"handle"`
	Label    string `json:"label"`
	Top      string `json:"top"`
	Left     string `json:"left"`
	Dragging bool   `json:"dragging"`
	Editing  bool   `json:"editing"`
}

// Render builds the tree for state s.
func Render(cfg Config, block Handle, s State) Tree {
	return Tree{
		Container: Container{Width: cfg.Panel.Width, Height: cfg.Panel.Height},
		Child: Child{
			Handle:   block,
			Label:    cfg.Label,
			Top:      s.Position.TopPx(),
			Left:     s.Position.LeftPx(),
			Dragging: s.Dragging == block,
			Editing:  s.Editing == block,
		},
	}
}

// CheckInvariant reports an INVARIANT_BREACH error when pos puts a block of
// size block outside panel. Any such error is a defect in the clamp logic.
func CheckInvariant(panel, block Size, pos Position) error {
	right, bottom := panel.Limits(block)
	if !InRange(pos.Left, 0, right) {
		return derrors.New(derrors.ErrCodeInvariantBreach, "left %d outside [0, %d]", pos.Left, right)
	}
	if !InRange(pos.Top, 0, bottom) {
		return derrors.New(derrors.ErrCodeInvariantBreach, "top %d outside [0, %d]", pos.Top, bottom)
	}
	return nil
}
