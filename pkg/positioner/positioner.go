package positioner

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	derrors "github.com/matzehuels/designpanel/pkg/errors"
	"github.com/matzehuels/designpanel/pkg/observability"
)

// DefaultLabel is the text shown on the block.
const DefaultLabel = "drag me!"

// Config is fixed for the lifetime of a Positioner.
type Config struct {
	Panel Size
	Label string
}

// Positioner owns the state of one draggable block inside one panel and
// drives it from events delivered by a Document.
//
// A Positioner is not safe for concurrent use; like its Document it lives on
// a single event loop.
type Positioner struct {
	cfg      Config
	block    Handle
	measurer Measurer
	logger   *log.Logger
	onChange func(Tree)

	state State
	doc   *Document
	subs  []Subscription
}

// Option configures a Positioner.
type Option func(*Positioner)

// WithLogger sets the logger used for transition debug output.
func WithLogger(l *log.Logger) Option {
	return func(p *Positioner) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithHandle sets the block handle instead of generating one.
func WithHandle(h Handle) Option {
	return func(p *Positioner) {
		if h != NoHandle {
			p.block = h
		}
	}
}

// WithOnChange registers the render callback, invoked after every committed
// state change.
func WithOnChange(fn func(Tree)) Option {
	return func(p *Positioner) { p.onChange = fn }
}

// New creates a detached Positioner. m measures the block on every move and
// nudge.
func New(cfg Config, m Measurer, opts ...Option) *Positioner {
	if cfg.Label == "" {
		cfg.Label = DefaultLabel
	}
	p := &Positioner{
		cfg:      cfg,
		block:    NewHandle(),
		measurer: m,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Block returns the handle of the draggable block.
func (p *Positioner) Block() Handle { return p.block }

// Config returns the construction-time configuration.
func (p *Positioner) Config() Config { return p.cfg }

// State returns a copy of the current state.
func (p *Positioner) State() State { return p.state }

// Tree renders the current state.
func (p *Positioner) Tree() Tree { return Render(p.cfg, p.block, p.state) }

// Attached reports whether the positioner is listening to a document.
func (p *Positioner) Attached() bool { return p.doc != nil }

// Attach subscribes the positioner to doc: pointer-down and click on the
// block, and pointer-move, pointer-up, capture-phase click and key-down on
// the root.
func (p *Positioner) Attach(doc *Document) error {
	if p.doc != nil {
		return derrors.New(derrors.ErrCodeAlreadyAttached, "positioner for block %s is already attached", p.block)
	}
	p.doc = doc
	p.subs = []Subscription{
		doc.On(KindPointerDown, Bubble, p.block, p.handlePress),
		doc.On(KindPointerMove, Bubble, Root, p.handleMove),
		doc.On(KindPointerUp, Bubble, Root, p.handleRelease),
		doc.On(KindClick, Capture, Root, p.handleClickCapture),
		doc.On(KindClick, Bubble, p.block, p.handleClickBlock),
		doc.On(KindKeyDown, Bubble, Root, p.handleKeyDown),
	}
	p.logger.Debug("attached", "block", p.block, "panel", p.cfg.Panel)
	return nil
}

// Detach cancels every subscription made by Attach. It is idempotent.
func (p *Positioner) Detach() {
	if p.doc == nil {
		return
	}
	for _, s := range p.subs {
		s.Cancel()
	}
	p.subs = nil
	p.doc = nil
	p.logger.Debug("detached", "block", p.block)
}

// Check measures the block and verifies the committed position lies inside
// the panel.
func (p *Positioner) Check() error {
	return CheckInvariant(p.cfg.Panel, measure(p.measurer, p.block), p.state.Position)
}

func (p *Positioner) commit(next State, changed bool) bool {
	if !changed {
		return false
	}
	p.state = next
	if p.onChange != nil {
		p.onChange(p.Tree())
	}
	return true
}

func (p *Positioner) handlePress(ctx context.Context, ev Event) {
	e, ok := ev.(PointerDown)
	if !ok {
		return
	}
	if p.commit(Press(p.state, e.Target(), e.Point)) {
		p.logger.Debug("press", "x", e.X, "y", e.Y)
		observability.Positioner().OnPress(ctx, string(e.Target()), e.X, e.Y)
	}
}

func (p *Positioner) handleMove(ctx context.Context, ev Event) {
	e, ok := ev.(PointerMove)
	if !ok {
		return
	}
	if p.commit(Move(p.state, p.cfg.Panel, p.measurer, e.Point)) {
		pos := p.state.Position
		p.logger.Debug("move", "x", e.X, "y", e.Y, "top", pos.Top, "left", pos.Left)
		observability.Positioner().OnMove(ctx, pos.Top, pos.Left)
	}
}

func (p *Positioner) handleRelease(ctx context.Context, _ Event) {
	if p.commit(Release(p.state)) {
		p.logger.Debug("release", "position", p.state.Position)
		observability.Positioner().OnRelease(ctx)
	}
}

func (p *Positioner) handleClickCapture(ctx context.Context, _ Event) {
	if p.commit(ClickCapture(p.state)) {
		p.logger.Debug("deselect")
		observability.Positioner().OnDeselect(ctx)
	}
}

func (p *Positioner) handleClickBlock(ctx context.Context, ev Event) {
	if p.commit(ClickBlock(p.state, ev.Target())) {
		p.logger.Debug("select", "block", ev.Target())
		observability.Positioner().OnSelect(ctx, string(ev.Target()))
	}
}

func (p *Positioner) handleKeyDown(ctx context.Context, ev Event) {
	e, ok := ev.(KeyDown)
	if !ok {
		return
	}
	if p.commit(Nudge(p.state, p.cfg.Panel, p.measurer, e.Key)) {
		pos := p.state.Position
		p.logger.Debug("nudge", "key", e.Key, "top", pos.Top, "left", pos.Left)
		observability.Positioner().OnNudge(ctx, e.Key, pos.Top, pos.Left)
	}
}
