package main

import "testing"

func TestNewKeymap(t *testing.T) {
	edit := func(f func(map[rune]byte)) map[rune]byte {
		layout := make(map[rune]byte, len(DefaultLayout))
		for r, k := range DefaultLayout {
			layout[r] = k
		}
		f(layout)
		return layout
	}
	for _, c := range []struct {
		name   string
		layout map[rune]byte
		ok     bool
	}{
		{"default", DefaultLayout, true},
		{"missing entry", edit(func(l map[rune]byte) { delete(l, 'z') }), false},
		{"extra entry", edit(func(l map[rune]byte) { l['0'] = 0x0 }), false},
		{"duplicate logical key", edit(func(l map[rune]byte) { l['z'] = 0x1 }), false},
		{"key out of range", edit(func(l map[rune]byte) { l['z'] = 0x10 }), false},
	} {
		t.Run(c.name, func(t *testing.T) {
			keys, err := NewKeymap(c.layout)
			if c.ok != (err == nil) {
				t.Fatalf("got error %v, want ok = %v", err, c.ok)
			}
			if !c.ok {
				return
			}
			for r, k := range c.layout {
				if keys[r] != k {
					t.Errorf("keymap maps %q to %x, want %x", r, keys[r], k)
				}
			}
		})
	}
}
