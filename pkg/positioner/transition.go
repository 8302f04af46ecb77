package positioner

// Arrow key identifiers accepted by KeyDown.
const (
	ArrowLeft  = "ArrowLeft"
	ArrowRight = "ArrowRight"
	ArrowUp    = "ArrowUp"
	ArrowDown  = "ArrowDown"
)

// IsArrowKey reports whether key is one of the four arrow identifiers.
func IsArrowKey(key string) bool {
	switch key {
	case ArrowLeft, ArrowRight, ArrowUp, ArrowDown:
		return true
	}
	return false
}

// Press starts a drag of target with the pointer at p.
func Press(s State, target Handle, p Point) (State, bool) {
	s.Last = p
	s.Dragging = target
	return s, true
}

// Move applies a pointer move to a drag in progress.
//
// Moves are ignored when idle or when p lies outside the panel. Otherwise the
// block moves by the pointer displacement since the last recorded point,
// clamped per axis, and p becomes the new last point. The last point is
// recorded unclamped, so after the pointer overshoots a clamp boundary the
// block lags behind it on the way back.
func Move(s State, panel Size, m Measurer, p Point) (State, bool) {
	if !s.IsDragging() || !panel.Contains(p) {
		return s, false
	}

	block := measure(m, s.Dragging)
	right, bottom := panel.Limits(block)

	offset := p.Sub(s.Last)
	s.Position = Position{
		Left: Clamp(s.Position.Left+offset.X, 0, right),
		Top:  Clamp(s.Position.Top+offset.Y, 0, bottom),
	}
	s.Last = p
	return s, true
}

// Release ends a drag. It is a no-op when nothing is being dragged.
func Release(s State) (State, bool) {
	if !s.IsDragging() {
		return s, false
	}
	s.Last = Origin
	s.Dragging = NoHandle
	return s, true
}

// ClickCapture clears the editing selection. It runs for every click in the
// document, before any element's own click handler.
func ClickCapture(s State) (State, bool) {
	changed := s.IsEditing()
	s.Editing = NoHandle
	return s, changed
}

// ClickBlock selects target for keyboard editing.
func ClickBlock(s State, target Handle) (State, bool) {
	changed := s.Editing != target
	s.Editing = target
	return s, changed
}

// Nudge moves the selected element one unit in the direction of key and
// re-clamps both axes against its current size. Without a selection, or for
// keys that are not arrows, it does nothing.
//
// A KeyDown names exactly one key, so one event moves at most one axis.
// Combined identifiers such as "ArrowLeftArrowUp" are not arrows.
func Nudge(s State, panel Size, m Measurer, key string) (State, bool) {
	if !s.IsEditing() || !IsArrowKey(key) {
		return s, false
	}

	top, left := s.Position.Top, s.Position.Left
	if key == ArrowLeft {
		left--
	}
	if key == ArrowRight {
		left++
	}
	if key == ArrowUp {
		top--
	}
	if key == ArrowDown {
		top++
	}

	block := measure(m, s.Editing)
	right, bottom := panel.Limits(block)

	s.Position = Position{
		Top:  Clamp(top, 0, bottom),
		Left: Clamp(left, 0, right),
	}
	return s, true
}
