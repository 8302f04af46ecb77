package positioner

import (
	"fmt"

	"github.com/google/uuid"
)

// Handle identifies an element without tying the core to a UI toolkit.
type Handle string

// NoHandle means no element.
const NoHandle Handle = ""

// Root is the handle of the document root, the target of global listeners.
const Root Handle = "#document"

// NewHandle returns a fresh element handle.
func NewHandle() Handle {
	return Handle(uuid.NewString())
}

// Position is the offset of the block inside the panel.
type Position struct {
	Top  int `json:"top"`
	Left int `json:"left"`
}

// TopPx returns Top as a pixel string such as "42px".
func (p Position) TopPx() string { return px(p.Top) }

// LeftPx returns Left as a pixel string such as "42px".
func (p Position) LeftPx() string { return px(p.Left) }

func (p Position) String() string {
	return fmt.Sprintf("{top: %s, left: %s}", p.TopPx(), p.LeftPx())
}

func px(v int) string {
	return fmt.Sprintf("%dpx", v)
}

// State is everything the positioner remembers between events.
//
// Dragging and Editing are independent: a drag does not select the block,
// and selecting does not start a drag.
type State struct {
	// Last is the pointer point recorded at press and after every applied
	// move. It is never clamped.
	Last Point `json:"last"`

	// Position is the committed block offset.
	Position Position `json:"position"`

	// Dragging is the element being dragged, or NoHandle.
	Dragging Handle `json:"dragging,omitempty"`

	// Editing is the element selected for keyboard nudges, or NoHandle.
	Editing Handle `json:"editing,omitempty"`
}

// IsDragging reports whether a drag is in progress.
func (s State) IsDragging() bool { return s.Dragging != NoHandle }

// IsEditing reports whether an element is selected for nudging.
func (s State) IsEditing() bool { return s.Editing != NoHandle }

// Measurer reads the live size of an element. Implementations must answer
// from current layout on every call.
type Measurer interface {
	Measure(h Handle) (Size, bool)
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(h Handle) (Size, bool)

// Measure calls f(h).
func (f MeasurerFunc) Measure(h Handle) (Size, bool) { return f(h) }

// FixedMeasurer reports the same size for one handle and nothing for others.
func FixedMeasurer(h Handle, size Size) Measurer {
	return MeasurerFunc(func(got Handle) (Size, bool) {
		if got != h {
			return Size{}, false
		}
		return size, true
	})
}

// measure returns the size of h, or a zero size if the measurer does not
// know it.
func measure(m Measurer, h Handle) Size {
	if m == nil {
		return Size{}
	}
	size, ok := m.Measure(h)
	if !ok {
		return Size{}
	}
	return size
}
