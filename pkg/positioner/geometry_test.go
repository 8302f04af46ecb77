package positioner

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi int
		want      int
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -3, 0, 10, 0},
		{"above", 42, 0, 10, 10},
		{"at low", 0, 0, 10, 0},
		{"at high", 10, 0, 10, 10},
		{"degenerate", 7, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestInRange(t *testing.T) {
	tests := []struct {
		v, lo, hi int
		want      bool
	}{
		{0, 0, 500, true},
		{500, 0, 500, true},
		{250, 0, 500, true},
		{-1, 0, 500, false},
		{501, 0, 500, false},
	}

	for _, tt := range tests {
		if got := InRange(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("InRange(%d, %d, %d) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestSizeContains(t *testing.T) {
	panel := Size{Width: 500, Height: 300}

	inside := []Point{{0, 0}, {500, 300}, {499, 1}, {0, 300}}
	for _, p := range inside {
		if !panel.Contains(p) {
			t.Errorf("Contains(%v) = false, want true", p)
		}
	}

	outside := []Point{{-1, 0}, {501, 10}, {10, 301}, {10, -1}}
	for _, p := range outside {
		if panel.Contains(p) {
			t.Errorf("Contains(%v) = true, want false", p)
		}
	}
}

func TestSizeLimits(t *testing.T) {
	right, bottom := Size{Width: 500, Height: 500}.Limits(Size{Width: 80, Height: 30})
	if right != 420 || bottom != 470 {
		t.Errorf("Limits() = (%d, %d), want (420, 470)", right, bottom)
	}
}

func TestPositionPx(t *testing.T) {
	p := Position{Top: 11, Left: 0}
	if p.TopPx() != "11px" {
		t.Errorf("TopPx() = %q, want %q", p.TopPx(), "11px")
	}
	if p.LeftPx() != "0px" {
		t.Errorf("LeftPx() = %q, want %q", p.LeftPx(), "0px")
	}
	if p.String() != "{top: 11px, left: 0px}" {
		t.Errorf("String() = %q", p.String())
	}
}
