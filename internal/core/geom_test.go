package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)
	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"top-left corner", 2, 3, true},
		{"last cell", 5, 4, true},
		{"right edge is exclusive", 6, 3, false},
		{"bottom edge is exclusive", 2, 5, false},
		{"left of rect", 1, 3, false},
		{"above rect", 3, 2, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectCellAt(t *testing.T) {
	// Board drawn at (10, 2) with cells two columns wide and one row high.
	r := NewRect(10, 2, 8, 3)
	tests := []struct {
		name     string
		p        Point
		col, row int
		ok       bool
	}{
		{"first cell", Point{10, 2}, 0, 0, true},
		{"second half of first cell", Point{11, 2}, 0, 0, true},
		{"middle", Point{14, 3}, 2, 1, true},
		{"last cell", Point{17, 4}, 3, 2, true},
		{"outside right", Point{18, 2}, 0, 0, false},
		{"outside above", Point{12, 1}, 0, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col, row, ok := r.CellAt(tc.p, 2, 1)
			if ok != tc.ok || col != tc.col || row != tc.row {
				t.Errorf("CellAt(%v) = (%d, %d, %v), expected (%d, %d, %v)",
					tc.p, col, row, ok, tc.col, tc.row, tc.ok)
			}
		})
	}

	if _, _, ok := r.CellAt(Point{10, 2}, 0, 1); ok {
		t.Error("zero cell width should never hit")
	}
}

func TestRectCenter(t *testing.T) {
	x, y := NewRect(0, 0, 10, 6).Center()
	if x != 5 || y != 3 {
		t.Errorf("Center() = (%d, %d), expected (5, 3)", x, y)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 0, 0},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}
	f.Set(ActionLeft)
	f.Click(4, 7)
	if !f.Has(ActionLeft) || f.Has(ActionRight) {
		t.Error("Has should report only set actions")
	}
	if len(f.Clicks) != 1 || f.Clicks[0] != (Point{4, 7}) {
		t.Errorf("Clicks = %v", f.Clicks)
	}
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}

	var zero InputFrame
	zero.Set(ActionConfirm)
	if !zero.Has(ActionConfirm) {
		t.Error("Set should work on a zero frame")
	}
}

func TestParseColor(t *testing.T) {
	c, ok := ParseColor(" Bright_Red ")
	if !ok || c != ColorBrightRed {
		t.Errorf("ParseColor = %v, %v", c, ok)
	}
	if _, ok := ParseColor("octarine"); ok {
		t.Error("unknown colour should not parse")
	}
	if ColorBlue.Bright() != ColorBrightBlue || ColorOrange.Bright() != ColorOrange {
		t.Error("Bright mapping is wrong")
	}
}

func TestActionString(t *testing.T) {
	if ActionConfirm.String() != "Confirm" || Action(200).String() != "Unknown" {
		t.Errorf("unexpected names %q %q", ActionConfirm, Action(200))
	}
	var f InputFrame
	f.Set(ActionNone)
	if !f.Empty() {
		t.Error("ActionNone must not mark the frame")
	}
}
