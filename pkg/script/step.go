package script

import (
	"strings"

	derrors "github.com/matzehuels/designpanel/pkg/errors"
	"github.com/matzehuels/designpanel/pkg/positioner"
)

// Actions a step may perform.
const (
	ActionPress   = "press"
	ActionMove    = "move"
	ActionRelease = "release"
	ActionClick   = "click"
	ActionKey     = "key"
	ActionTap     = "tap"
	ActionDrag    = "drag"
)

// MaxRepeat bounds Step.Repeat.
const MaxRepeat = 1000

// Targets a pointer step may aim at.
const (
	TargetBlock    = "block"
	TargetDocument = "document"
)

// Step is one input in a script or in an HTTP request body.
type Step struct {
	Action string `toml:"action" yaml:"action" json:"type"`
	X      int    `toml:"x" yaml:"x" json:"x"`
	Y      int    `toml:"y" yaml:"y" json:"y"`
	// DX and DY are the displacement of a drag step.
	DX     int    `toml:"dx" yaml:"dx" json:"dx,omitempty"`
	DY     int    `toml:"dy" yaml:"dy" json:"dy,omitempty"`
	Target string `toml:"target" yaml:"target" json:"target,omitempty"`
	Key    string `toml:"key" yaml:"key" json:"key,omitempty"`
	// Repeat runs the step this many times. Zero means once.
	Repeat int `toml:"repeat" yaml:"repeat" json:"repeat,omitempty"`
}

// Validate checks the step without running it.
func (s Step) Validate() error {
	switch strings.ToLower(s.Action) {
	case ActionPress, ActionMove, ActionRelease, ActionClick, ActionTap, ActionDrag:
	case ActionKey:
		if s.Key == "" {
			return derrors.New(derrors.ErrCodeInvalidEvent, "key step needs a key")
		}
	case "":
		return derrors.New(derrors.ErrCodeInvalidEvent, "step has no action")
	default:
		return derrors.New(derrors.ErrCodeInvalidEvent, "unknown action %q", s.Action)
	}

	switch strings.ToLower(s.Target) {
	case "", TargetBlock, TargetDocument:
	default:
		return derrors.New(derrors.ErrCodeInvalidEvent, "unknown target %q (want block or document)", s.Target)
	}

	if s.Repeat < 0 || s.Repeat > MaxRepeat {
		return derrors.New(derrors.ErrCodeInvalidEvent, "repeat must be between 0 and %d, got %d", MaxRepeat, s.Repeat)
	}
	return nil
}

// Count returns how many events the step expands to. The step must be valid.
func (s Step) Count() int {
	per := 1
	switch strings.ToLower(s.Action) {
	case ActionTap:
		per = 3
	case ActionDrag:
		per = 4
	}
	return per * max(s.Repeat, 1)
}

// Events expands the step into the events a host would dispatch. Press and
// click default to the block; move and release default to the document.
func (s Step) Events(block positioner.Handle) ([]positioner.Event, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	at := positioner.Point{X: s.X, Y: s.Y}
	on := s.target(block)

	var once []positioner.Event
	switch strings.ToLower(s.Action) {
	case ActionPress:
		once = []positioner.Event{positioner.PointerDown{Point: at, On: on}}
	case ActionMove:
		once = []positioner.Event{positioner.PointerMove{Point: at, On: on}}
	case ActionRelease:
		once = []positioner.Event{positioner.PointerUp{Point: at, On: on}}
	case ActionClick:
		once = []positioner.Event{positioner.Click{Point: at, On: on}}
	case ActionKey:
		once = []positioner.Event{positioner.KeyDown{Key: s.Key}}
	case ActionTap:
		once = []positioner.Event{
			positioner.PointerDown{Point: at, On: on},
			positioner.PointerUp{Point: at, On: on},
			positioner.Click{Point: at, On: on},
		}
	case ActionDrag:
		end := positioner.Point{X: s.X + s.DX, Y: s.Y + s.DY}
		once = []positioner.Event{
			positioner.PointerDown{Point: at, On: on},
			positioner.PointerMove{Point: end},
			positioner.PointerUp{Point: end},
			positioner.Click{Point: end, On: on},
		}
	}

	n := max(s.Repeat, 1)
	events := make([]positioner.Event, 0, n*len(once))
	for range n {
		events = append(events, once...)
	}
	return events, nil
}

func (s Step) target(block positioner.Handle) positioner.Handle {
	switch strings.ToLower(s.Target) {
	case TargetBlock:
		return block
	case TargetDocument:
		return positioner.Root
	}
	switch strings.ToLower(s.Action) {
	case ActionPress, ActionClick, ActionTap, ActionDrag:
		return block
	}
	return positioner.Root
}
