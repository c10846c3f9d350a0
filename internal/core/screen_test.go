package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)
	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 12x4", s.Width(), s.Height())
	}
	for y := range s.Height() {
		for x := range s.Width() {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Errorf("cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetCell(t *testing.T) {
	s := NewScreen(10, 10)
	s.SetCell(3, 4, '▣', ColorBrightRed)

	got := s.GetCell(3, 4)
	if got.Rune != '▣' || got.Color != ColorBrightRed {
		t.Errorf("GetCell(3, 4) = %+v", got)
	}
	if s.Get(3, 4) != '▣' {
		t.Errorf("Get(3, 4) = %q", s.Get(3, 4))
	}

	// Out of bounds is silent
	s.SetCell(-1, 0, 'A', ColorRed)
	s.SetCell(10, 0, 'A', ColorRed)
	s.SetCell(0, 10, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' || s.GetCell(0, 10).Color != ColorDefault {
		t.Error("out of bounds reads should return a blank cell")
	}
}

func TestScreenClearResetsColor(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawTextColor(0, 0, "abcd", ColorGreen)
	s.Clear()
	for x := range 4 {
		if c := s.GetCell(x, 0); c != blank {
			t.Errorf("after Clear cell %d = %+v", x, c)
		}
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(6, 2)
	s.DrawTextColor(4, 1, "Hello", ColorYellow)

	if s.Row(1) != "    He" {
		t.Errorf("Row(1) = %q", s.Row(1))
	}
	if s.GetCell(5, 1).Color != ColorYellow {
		t.Error("clipped text keeps its colour")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	tests := []struct {
		text  string
		width int
		x     int
	}{
		{"Hi", 20, 9},
		{"═║▣✸", 10, 3},
		{"odd", 8, 2},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			s := NewScreen(tc.width, 1)
			s.DrawTextCentered(0, tc.text, ColorCyan)
			first, _ := firstRune(tc.text)
			if s.Get(tc.x, 0) != first {
				t.Errorf("expected %q at x=%d, row = %q", first, tc.x, s.Row(0))
			}
		})
	}
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawRect(NewRect(1, 1, 3, 2), '#')

	expected := "      \n ###  \n ###  \n      "
	if s.String() != expected {
		t.Errorf("String() = %q, expected %q", s.String(), expected)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(7, 5)
	s.DrawBox(NewRect(1, 1, 5, 3), ColorGray)

	expected := strings.Join([]string{
		"       ",
		" ┌───┐ ",
		" │   │ ",
		" └───┘ ",
		"       ",
	}, "\n")
	if s.String() != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", s.String(), expected)
	}
	if s.GetCell(1, 1).Color != ColorGray {
		t.Error("box border should carry its colour")
	}
	if s.GetCell(2, 2).Color != ColorDefault {
		t.Error("box interior should be untouched")
	}

	// Too small to outline
	s.Clear()
	s.DrawBox(NewRect(0, 0, 1, 3), ColorRed)
	if s.Get(0, 0) != ' ' {
		t.Error("a box narrower than 2 draws nothing")
	}
}

func TestScreenResizeKeepsContent(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColor(0, 0, "Hello", ColorMagenta)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 8x4", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("row 0 = %q", s.Row(0))
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") || s.GetCell(0, 0).Color != ColorMagenta {
		t.Errorf("content lost after enlarging, row 0 = %q", s.Row(0))
	}
	if s.Get(14, 7) != ' ' {
		t.Error("new area should be blank")
	}

	s.Resize(-3, 2)
	if s.Width() != 0 || s.String() != "\n" {
		t.Errorf("negative width should clamp to 0, got %d", s.Width())
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(5, 2)
	if s.Row(-1) != "     " || s.Row(2) != "     " {
		t.Error("out of bounds rows should be spaces")
	}
}
