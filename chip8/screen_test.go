package chip8

import "testing"

// pixels returns the coordinates of every lit pixel, for compact
// comparison against a literal.
func pixels(f Frame) (set [][2]int) {
	for y := range f {
		for x := range f[y] {
			if f[y][x] {
				set = append(set, [2]int{x, y})
			}
		}
	}
	return set
}

func eq(a, b [][2]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestScreenDraw(t *testing.T) {
	for _, c := range []struct {
		name      string
		x, y      byte
		sprite    []byte
		want      [][2]int
		collision bool
	}{
		{"single row", 0, 0, []byte{0xff},
			[][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}}, false},
		{"two rows", 10, 5, []byte{0x80, 0x01},
			[][2]int{{10, 5}, {17, 6}}, false},
		{"clip right edge", 60, 0, []byte{0xff},
			[][2]int{{60, 0}, {61, 0}, {62, 0}, {63, 0}}, false},
		{"clip bottom edge", 0, 31, []byte{0x80, 0x80},
			[][2]int{{0, 31}}, false},
		{"start x wraps", 64, 0, []byte{0x80},
			[][2]int{{0, 0}}, false},
		{"start x wraps with offset", 68, 0, []byte{0x80},
			[][2]int{{4, 0}}, false},
		{"start y wraps", 0, 35, []byte{0x80},
			[][2]int{{0, 3}}, false},
		{"empty sprite", 0, 0, nil, nil, false},
	} {
		t.Run(c.name, func(t *testing.T) {
			var s Screen
			if g := s.Draw(c.x, c.y, c.sprite); g != c.collision {
				t.Errorf("collision is %v, want %v", g, c.collision)
			}
			if g := pixels(s.Frame()); !eq(g, c.want) {
				t.Errorf("lit pixels are %v, want %v", g, c.want)
			}
		})
	}
}

func TestScreenXOR(t *testing.T) {
	var s Screen
	s.Draw(0, 0, []byte{0xff})
	// A second sprite overlapping one pixel erases it and reports
	// the collision.
	if !s.Draw(7, 0, []byte{0x80}) {
		t.Error("overlapping draw did not report a collision")
	}
	if s.Frame()[0][7] {
		t.Error("pixel (7, 0) is still lit")
	}
	if !s.Frame()[0][6] {
		t.Error("pixel (6, 0) went out")
	}
	// Redrawing the first sprite erases what is left of it.
	if !s.Draw(0, 0, []byte{0xff}) {
		t.Error("redraw did not report a collision")
	}
	want := Frame{}
	want[0][7] = true
	if s.Frame() != want {
		t.Error("redraw did not restore the frame")
	}
}

func TestScreenClear(t *testing.T) {
	var s Screen
	s.Draw(0, 0, []byte{0xff, 0xff})
	s.Clear()
	if s.Frame() != (Frame{}) {
		t.Error("screen is not empty after Clear")
	}
}

func TestScreenFrameIsACopy(t *testing.T) {
	var s Screen
	f := s.Frame()
	s.Draw(0, 0, []byte{0x80})
	if f[0][0] {
		t.Error("mutating the screen changed an earlier Frame")
	}
}

func TestScreenRev(t *testing.T) {
	var s Screen
	if s.Rev() != 0 {
		t.Fatalf("new screen rev is %d, want 0", s.Rev())
	}
	s.Draw(0, 0, nil)
	s.Clear()
	if s.Rev() != 2 {
		t.Errorf("rev is %d, want 2", s.Rev())
	}
}
