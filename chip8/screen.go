package chip8

// Screen dimensions in pixels.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Frame is a snapshot of the screen contents, addressed [y][x].
type Frame [ScreenHeight][ScreenWidth]bool

// Screen is a 1-bit display with XOR draw semantics.
type Screen struct {
	frame Frame
	rev   int
}

// Draw blits sprite at (x, y), one byte per row with the most
// significant bit leftmost, inverting each pixel whose sprite bit is
// set. The start position wraps around the screen edges, but rows and
// columns that extend past the bottom or right edge are clipped.
// It reports whether any set pixel was erased.
func (s *Screen) Draw(x, y byte, sprite []byte) (collision bool) {
	x %= ScreenWidth
	y %= ScreenHeight
	for dy, row := range sprite {
		py := int(y) + dy
		if py >= ScreenHeight {
			break
		}
		for dx := 0; dx < 8; dx++ {
			px := int(x) + dx
			if px >= ScreenWidth {
				break
			}
			if row>>(7-dx)&1 == 0 {
				continue
			}
			if s.frame[py][px] {
				collision = true
			}
			s.frame[py][px] = !s.frame[py][px]
		}
	}
	s.rev++
	return collision
}

// Clear switches every pixel off.
func (s *Screen) Clear() {
	s.frame = Frame{}
	s.rev++
}

// Frame returns a copy of the screen contents.
func (s *Screen) Frame() Frame { return s.frame }

// Rev returns a counter that is incremented by every draw or clear,
// so that a renderer can skip frames that cannot have changed.
func (s *Screen) Rev() int { return s.rev }
