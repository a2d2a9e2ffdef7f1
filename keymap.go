package main

import "fmt"

// Keymap translates host key runes to CHIP-8 logical keys.
type Keymap map[rune]byte

// DefaultLayout maps the left-hand block of a QWERTY keyboard onto
// the 4x4 COSMAC VIP keypad:
//
//	1 2 3 4        1 2 3 C
//	q w e r   ->   4 5 6 D
//	a s d f        7 8 9 E
//	z x c v        A 0 B F
var DefaultLayout = map[rune]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xc,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xd,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xe,
	'z': 0xa, 'x': 0x0, 'c': 0xb, 'v': 0xf,
}

// NewKeymap validates layout, which must map exactly sixteen runes,
// one to each logical key.
func NewKeymap(layout map[rune]byte) (Keymap, error) {
	if len(layout) != 16 {
		return nil, fmt.Errorf("keymap has %d entries, want 16", len(layout))
	}
	var seen [16]rune
	for r, k := range layout {
		if k > 0xf {
			return nil, fmt.Errorf("keymap maps %q to %#x, want a key in 0..f", r, k)
		}
		if seen[k] != 0 {
			return nil, fmt.Errorf("keymap maps both %q and %q to key %x", seen[k], r, k)
		}
		seen[k] = r
	}
	return Keymap(layout), nil
}
