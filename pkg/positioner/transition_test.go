package positioner

import "testing"

var (
	testPanel = Size{Width: 500, Height: 500}
	testBlock = Handle("block")
	testSize  = Size{Width: 80, Height: 30}
)

func testMeasurer() Measurer {
	return FixedMeasurer(testBlock, testSize)
}

func TestPress(t *testing.T) {
	s, changed := Press(State{}, testBlock, Point{X: 100, Y: 120})
	if !changed {
		t.Fatal("Press() changed = false")
	}
	if s.Last != (Point{X: 100, Y: 120}) {
		t.Errorf("Last = %v, want {100 120}", s.Last)
	}
	if s.Dragging != testBlock {
		t.Errorf("Dragging = %q, want %q", s.Dragging, testBlock)
	}
	if s.IsEditing() {
		t.Error("Press() should not select the block")
	}
}

func TestMove(t *testing.T) {
	dragging := State{Last: Point{X: 100, Y: 100}, Dragging: testBlock}

	tests := []struct {
		name        string
		state       State
		to          Point
		wantChanged bool
		wantPos     Position
		wantLast    Point
	}{
		{
			name:        "idle is a no-op",
			state:       State{Last: Origin},
			to:          Point{X: 200, Y: 200},
			wantChanged: false,
			wantLast:    Origin,
		},
		{
			name:        "applies displacement",
			state:       dragging,
			to:          Point{X: 150, Y: 130},
			wantChanged: true,
			wantPos:     Position{Top: 30, Left: 50},
			wantLast:    Point{X: 150, Y: 130},
		},
		{
			name:        "zero displacement",
			state:       dragging,
			to:          Point{X: 100, Y: 100},
			wantChanged: true,
			wantPos:     Position{},
			wantLast:    Point{X: 100, Y: 100},
		},
		{
			name:        "clamps right and bottom",
			state:       State{Last: Point{X: 100, Y: 100}, Dragging: testBlock, Position: Position{Top: 100, Left: 100}},
			to:          Point{X: 500, Y: 500},
			wantChanged: true,
			wantPos:     Position{Top: 470, Left: 420},
			wantLast:    Point{X: 500, Y: 500},
		},
		{
			name:        "clamps left and top, keeps raw last point",
			state:       dragging,
			to:          Point{X: 0, Y: 0},
			wantChanged: true,
			wantPos:     Position{},
			wantLast:    Point{X: 0, Y: 0},
		},
		{
			name:        "outside panel horizontally",
			state:       dragging,
			to:          Point{X: 501, Y: 100},
			wantChanged: false,
			wantLast:    Point{X: 100, Y: 100},
		},
		{
			name:        "outside panel vertically",
			state:       dragging,
			to:          Point{X: 100, Y: -1},
			wantChanged: false,
			wantLast:    Point{X: 100, Y: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := Move(tt.state, testPanel, testMeasurer(), tt.to)
			if changed != tt.wantChanged {
				t.Fatalf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if got.Position != tt.wantPos {
				t.Errorf("Position = %v, want %v", got.Position, tt.wantPos)
			}
			if got.Last != tt.wantLast {
				t.Errorf("Last = %v, want %v", got.Last, tt.wantLast)
			}
		})
	}
}

func TestMoveStickyAfterOvershoot(t *testing.T) {
	s := State{Last: Point{X: 100, Y: 100}, Dragging: testBlock}
	m := testMeasurer()

	// Pointer goes left past the clamp boundary, then back to where it started.
	s, _ = Move(s, testPanel, m, Point{X: 50, Y: 100})
	if s.Position.Left != 0 {
		t.Fatalf("Left after overshoot = %d, want 0", s.Position.Left)
	}
	s, _ = Move(s, testPanel, m, Point{X: 100, Y: 100})
	if s.Position.Left != 50 {
		t.Errorf("Left after return = %d, want 50 (block lags the pointer)", s.Position.Left)
	}
}

func TestMoveMeasuresEveryTime(t *testing.T) {
	size := testSize
	m := MeasurerFunc(func(Handle) (Size, bool) { return size, true })
	s := State{Last: Point{X: 0, Y: 0}, Dragging: testBlock}

	s, _ = Move(s, testPanel, m, Point{X: 500, Y: 0})
	if s.Position.Left != 420 {
		t.Fatalf("Left = %d, want 420", s.Position.Left)
	}

	size = Size{Width: 200, Height: 30}
	s.Last = Point{X: 400, Y: 0}
	s, _ = Move(s, testPanel, m, Point{X: 401, Y: 0})
	if s.Position.Left != 300 {
		t.Errorf("Left after block grew = %d, want 300", s.Position.Left)
	}
}

func TestMoveUnknownHandleIsZeroSize(t *testing.T) {
	s := State{Last: Point{X: 0, Y: 0}, Dragging: Handle("other")}
	s, _ = Move(s, testPanel, testMeasurer(), Point{X: 500, Y: 500})
	if s.Position != (Position{Top: 500, Left: 500}) {
		t.Errorf("Position = %v, want {500 500}", s.Position)
	}
}

func TestRelease(t *testing.T) {
	t.Run("ends drag", func(t *testing.T) {
		s := State{Last: Point{X: 9, Y: 9}, Dragging: testBlock, Position: Position{Top: 3, Left: 4}}
		got, changed := Release(s)
		if !changed {
			t.Fatal("changed = false")
		}
		if got.IsDragging() || got.Last != Origin {
			t.Errorf("Release() = %+v, want idle at origin", got)
		}
		if got.Position != s.Position {
			t.Errorf("Release() moved the block: %v", got.Position)
		}
	})

	t.Run("idle is a no-op", func(t *testing.T) {
		s := State{Editing: testBlock, Position: Position{Top: 1, Left: 2}}
		got, changed := Release(s)
		if changed || got != s {
			t.Errorf("Release() = %+v, %v; want unchanged", got, changed)
		}
	})
}

func TestClickTransitions(t *testing.T) {
	s, changed := ClickBlock(State{}, testBlock)
	if !changed || s.Editing != testBlock {
		t.Fatalf("ClickBlock() = %+v, %v", s, changed)
	}

	s, changed = ClickBlock(s, testBlock)
	if changed {
		t.Error("ClickBlock() on the selected block should report no change")
	}

	s, changed = ClickCapture(s)
	if !changed || s.IsEditing() {
		t.Errorf("ClickCapture() = %+v, %v", s, changed)
	}

	_, changed = ClickCapture(s)
	if changed {
		t.Error("ClickCapture() with nothing selected should report no change")
	}
}

func TestNudgeTransition(t *testing.T) {
	selected := State{Editing: testBlock, Position: Position{Top: 10, Left: 10}}

	tests := []struct {
		name        string
		state       State
		key         string
		wantChanged bool
		want        Position
	}{
		{"right", selected, ArrowRight, true, Position{Top: 10, Left: 11}},
		{"left", selected, ArrowLeft, true, Position{Top: 10, Left: 9}},
		{"down", selected, ArrowDown, true, Position{Top: 11, Left: 10}},
		{"up", selected, ArrowUp, true, Position{Top: 9, Left: 10}},
		{"non-arrow", selected, "a", false, Position{Top: 10, Left: 10}},
		{"terminal name is not an arrow id", selected, "right", false, Position{Top: 10, Left: 10}},
		{"combined identifiers", selected, ArrowLeft + ArrowUp, false, Position{Top: 10, Left: 10}},
		{"unselected", State{Position: Position{Top: 10, Left: 10}}, ArrowRight, false, Position{Top: 10, Left: 10}},
		{
			"right at limit",
			State{Editing: testBlock, Position: Position{Top: 10, Left: 420}},
			ArrowRight, true, Position{Top: 10, Left: 420},
		},
		{
			"up at zero",
			State{Editing: testBlock, Position: Position{Top: 0, Left: 10}},
			ArrowUp, true, Position{Top: 0, Left: 10},
		},
		{
			"down at limit",
			State{Editing: testBlock, Position: Position{Top: 470, Left: 10}},
			ArrowDown, true, Position{Top: 470, Left: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := Nudge(tt.state, testPanel, testMeasurer(), tt.key)
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if got.Position != tt.want {
				t.Errorf("Position = %v, want %v", got.Position, tt.want)
			}
		})
	}
}

func TestNudgeReclampsBothAxes(t *testing.T) {
	// The block grew since the last move; a nudge on one axis pulls the
	// other axis back inside too.
	s := State{Editing: testBlock, Position: Position{Top: 470, Left: 420}}
	big := FixedMeasurer(testBlock, Size{Width: 100, Height: 100})

	got, _ := Nudge(s, testPanel, big, ArrowLeft)
	if got.Position != (Position{Top: 400, Left: 400}) {
		t.Errorf("Position = %v, want {400 400}", got.Position)
	}
}
