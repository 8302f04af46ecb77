// Package script loads and replays input scripts against a positioner.
//
// A script names a panel, a block size, a list of steps and optionally the
// expected end state. Scripts are TOML or YAML:
//
//	name = "drag past the right edge"
//
//	[panel]
//	width = 500
//	height = 500
//
//	[[steps]]
//	action = "press"
//	x = 100
//	y = 100
//
//	[[steps]]
//	action = "move"
//	x = 600
//	y = 100
//
//	[expect]
//	left = "0px"
//
// The positioner invariant is checked after every event; a breach aborts the
// replay with an INVARIANT_BREACH error.
package script

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matzehuels/designpanel/pkg/config"
	derrors "github.com/matzehuels/designpanel/pkg/errors"
	"github.com/matzehuels/designpanel/pkg/positioner"
	"github.com/matzehuels/designpanel/pkg/positioner/simulate"
)

// Script is a replayable input sequence.
type Script struct {
	Name   string       `toml:"name" yaml:"name"`
	Panel  config.Panel `toml:"panel" yaml:"panel"`
	Block  config.Block `toml:"block" yaml:"block"`
	Steps  []Step       `toml:"steps" yaml:"steps"`
	Expect *Expect      `toml:"expect" yaml:"expect"`
}

// Expect is the end state a script asserts. Empty or nil fields are not
// checked.
type Expect struct {
	Top      string `toml:"top" yaml:"top"`
	Left     string `toml:"left" yaml:"left"`
	Dragging *bool  `toml:"dragging" yaml:"dragging"`
	Editing  *bool  `toml:"editing" yaml:"editing"`
}

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	if err := derrors.ValidateDataPath(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, derrors.Wrap(derrors.ErrCodeFileNotFound, err, "script %s", path)
		}
		return nil, fmt.Errorf("read script: %w", err)
	}

	return Parse(path, data)
}

// Parse decodes a script; path only selects the format.
func Parse(path string, data []byte) (*Script, error) {
	defaults := config.Default()
	s := &Script{Panel: defaults.Panel, Block: defaults.Block}
	if err := config.Decode(path, data, s); err != nil {
		return nil, derrors.Wrap(derrors.ErrCodeInvalidScript, err, "parse %s", path)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the panel, block and every step.
func (s *Script) Validate() error {
	cfg := config.Default()
	cfg.Panel = s.Panel
	cfg.Block = s.Block
	if err := cfg.Validate(); err != nil {
		return derrors.Wrap(derrors.ErrCodeInvalidScript, err, "script %q", s.Name)
	}
	for i, step := range s.Steps {
		if err := step.Validate(); err != nil {
			return derrors.Wrap(derrors.ErrCodeInvalidScript, err, "step %d", i+1)
		}
	}
	return nil
}

// Result is the outcome of a replay.
type Result struct {
	Name     string
	Events   int
	State    positioner.State
	Tree     positioner.Tree
	Failures []string
}

// OK reports whether every expectation held.
func (r *Result) OK() bool { return len(r.Failures) == 0 }

// Run replays s on a fresh positioner. It returns an error for invalid steps
// and invariant breaches; failed expectations are reported in the result.
func Run(ctx context.Context, s *Script, opts ...positioner.Option) (*Result, error) {
	cfg := positioner.Config{
		Panel: positioner.Size{Width: s.Panel.Width, Height: s.Panel.Height},
		Label: s.Block.Label,
	}
	sim, err := simulate.NewWithConfig(cfg, positioner.Size{Width: s.Block.Width, Height: s.Block.Height}, opts...)
	if err != nil {
		return nil, err
	}
	defer sim.Close()
	sim.WithContext(ctx)

	res := &Result{Name: s.Name}
	for i, step := range s.Steps {
		events, err := step.Events(sim.Block())
		if err != nil {
			return nil, derrors.Wrap(derrors.ErrCodeInvalidScript, err, "step %d", i+1)
		}
		for _, ev := range events {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			sim.Dispatch(ev)
			res.Events++
			if err := sim.P.Check(); err != nil {
				return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
			}
		}
	}

	res.State = sim.State()
	res.Tree = sim.P.Tree()
	res.Failures = s.Expect.check(res.State)
	return res, nil
}

func (e *Expect) check(st positioner.State) []string {
	if e == nil {
		return nil
	}
	var failures []string
	if e.Top != "" && e.Top != st.Position.TopPx() {
		failures = append(failures, fmt.Sprintf("top = %s, want %s", st.Position.TopPx(), e.Top))
	}
	if e.Left != "" && e.Left != st.Position.LeftPx() {
		failures = append(failures, fmt.Sprintf("left = %s, want %s", st.Position.LeftPx(), e.Left))
	}
	if e.Dragging != nil && *e.Dragging != st.IsDragging() {
		failures = append(failures, fmt.Sprintf("dragging = %v, want %v", st.IsDragging(), *e.Dragging))
	}
	if e.Editing != nil && *e.Editing != st.IsEditing() {
		failures = append(failures, fmt.Sprintf("editing = %v, want %v", st.IsEditing(), *e.Editing))
	}
	return failures
}
