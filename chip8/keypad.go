package chip8

// Keypad tracks the up/down state of the sixteen CHIP-8 keys,
// 0x0 through 0xf.
type Keypad struct {
	down [16]bool
}

// Set records key as held down or released.
func (k *Keypad) Set(key byte, down bool) { k.down[key&0xf] = down }

// IsDown reports whether key is held down.
func (k *Keypad) IsDown(key byte) bool { return k.down[key&0xf] }

// FirstDown returns the lowest-numbered key that is held down,
// and reports whether any key is down at all.
func (k *Keypad) FirstDown() (key byte, ok bool) {
	for i, down := range k.down {
		if down {
			return byte(i), true
		}
	}
	return 0, false
}
