package positioner

import "fmt"

// Kind names an input event type.
type Kind int

const (
	KindPointerDown Kind = iota
	KindPointerMove
	KindPointerUp
	KindClick
	KindKeyDown
)

var kindNames = map[Kind]string{
	KindPointerDown: "pointerdown",
	KindPointerMove: "pointermove",
	KindPointerUp:   "pointerup",
	KindClick:       "click",
	KindKeyDown:     "keydown",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is a discrete input event delivered through a Document.
type Event interface {
	Kind() Kind
	// Target is the element the event is aimed at. Root for document-wide
	// events.
	Target() Handle
}

func targetOrRoot(h Handle) Handle {
	if h == NoHandle {
		return Root
	}
	return h
}

// PointerDown is a primary-button press.
type PointerDown struct {
	Point
	On Handle
}

func (PointerDown) Kind() Kind       { return KindPointerDown }
func (e PointerDown) Target() Handle { return targetOrRoot(e.On) }

// PointerMove is a pointer motion anywhere in the document.
type PointerMove struct {
	Point
	On Handle
}

func (PointerMove) Kind() Kind       { return KindPointerMove }
func (e PointerMove) Target() Handle { return targetOrRoot(e.On) }

// PointerUp is a primary-button release anywhere in the document.
type PointerUp struct {
	Point
	On Handle
}

func (PointerUp) Kind() Kind       { return KindPointerUp }
func (e PointerUp) Target() Handle { return targetOrRoot(e.On) }

// Click is a completed press and release on the same target.
type Click struct {
	Point
	On Handle
}

func (Click) Kind() Kind       { return KindClick }
func (e Click) Target() Handle { return targetOrRoot(e.On) }

// KeyDown is a key press. Key carries a single key identifier, e.g.
// "ArrowLeft"; chords arrive as separate events.
type KeyDown struct {
	Key string
}

func (KeyDown) Kind() Kind     { return KindKeyDown }
func (KeyDown) Target() Handle { return Root }
