package chip8

import "testing"

func TestKeypad(t *testing.T) {
	var k Keypad
	if _, ok := k.FirstDown(); ok {
		t.Error("FirstDown reports a key on a fresh keypad")
	}
	k.Set(7, true)
	k.Set(3, true)
	if !k.IsDown(7) || !k.IsDown(3) {
		t.Error("keys 3 and 7 should be down")
	}
	if k.IsDown(0) {
		t.Error("key 0 should be up")
	}
	if key, ok := k.FirstDown(); !ok || key != 3 {
		t.Errorf("FirstDown is %x, %v, want 3, true", key, ok)
	}
	k.Set(3, false)
	if key, ok := k.FirstDown(); !ok || key != 7 {
		t.Errorf("FirstDown is %x, %v, want 7, true", key, ok)
	}
	k.Set(7, false)
	if _, ok := k.FirstDown(); ok {
		t.Error("FirstDown reports a key after all releases")
	}
}
