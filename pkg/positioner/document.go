package positioner

import (
	"context"
	"slices"
)

// Phase selects when a listener runs during dispatch.
type Phase int

const (
	// Capture listeners run on the way down, from Root to the target.
	Capture Phase = iota
	// Bubble listeners run on the way up, from the target back to Root.
	Bubble
)

func (p Phase) String() string {
	if p == Capture {
		return "capture"
	}
	return "bubble"
}

// Listener handles one dispatched event.
type Listener func(ctx context.Context, ev Event)

type listener struct {
	id     int
	kind   Kind
	phase  Phase
	target Handle
	fn     Listener
}

// Document is the event source boundary. Hosts translate their raw input
// into Events and Dispatch them; components subscribe with On.
//
// A Document is not safe for concurrent use. All dispatch happens on one
// event loop.
type Document struct {
	listeners []listener
	nextID    int
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Subscription is a registered listener. Cancel detaches it.
type Subscription struct {
	doc *Document
	id  int
}

// Cancel removes the listener. Calling it more than once is harmless.
func (s Subscription) Cancel() {
	if s.doc == nil {
		return
	}
	s.doc.listeners = slices.DeleteFunc(s.doc.listeners, func(l listener) bool {
		return l.id == s.id
	})
}

// On registers fn for events of kind reaching target during phase.
func (d *Document) On(kind Kind, phase Phase, target Handle, fn Listener) Subscription {
	d.nextID++
	d.listeners = append(d.listeners, listener{
		id:     d.nextID,
		kind:   kind,
		phase:  phase,
		target: targetOrRoot(target),
		fn:     fn,
	})
	return Subscription{doc: d, id: d.nextID}
}

// Len returns the number of registered listeners.
func (d *Document) Len() int {
	return len(d.listeners)
}

// Dispatch delivers ev along the path Root -> target. Capture listeners run
// first in path order, then bubble listeners in reverse path order. Listeners
// registered or cancelled during dispatch take effect from the next event.
func (d *Document) Dispatch(ctx context.Context, ev Event) {
	path := []Handle{Root}
	if t := ev.Target(); t != Root {
		path = append(path, t)
	}

	snapshot := slices.Clone(d.listeners)
	run := func(phase Phase, node Handle) {
		for _, l := range snapshot {
			if l.kind == ev.Kind() && l.phase == phase && l.target == node {
				l.fn(ctx, ev)
			}
		}
	}

	for _, node := range path {
		run(Capture, node)
	}
	for i := len(path) - 1; i >= 0; i-- {
		run(Bubble, path[i])
	}
}
