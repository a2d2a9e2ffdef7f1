package main

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/livexia/gochip8/chip8"
	"github.com/livexia/gochip8/emu"
)

// termKeyHold is how long a key is considered held after its last
// press event. Terminals report key repeats but never key releases,
// so a release is synthesized when the repeats stop.
const termKeyHold = 200 * time.Millisecond

var termStyle = tcell.StyleDefault.
	Foreground(tcell.ColorGreen).
	Background(tcell.ColorBlack)

// term renders frames to the terminal, two pixels per cell, and
// feeds its key events to the runner, translated by the keymap.
type term struct {
	r    *emu.Runner
	keys Keymap

	scr    tcell.Screen
	frames chan chip8.Frame
	hold   [16]*time.Timer
}

func newTerm(keys Keymap) *term {
	return &term{keys: keys, frames: make(chan chip8.Frame, 1)}
}

// Flush implements emu.Display. Only the most recent frame is kept
// if the terminal falls behind.
func (t *term) Flush(f chip8.Frame) {
	select {
	case <-t.frames:
	default:
	}
	t.frames <- f
}

// run drives r on m until escape is pressed or the machine halts.
func (t *term) run(r *emu.Runner, m *chip8.Machine) error {
	t.r = r

	scr, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := scr.Init(); err != nil {
		return err
	}
	defer scr.Fini()
	scr.HideCursor()
	t.scr = scr

	quit := make(chan struct{})
	defer close(quit)
	events := make(chan tcell.Event)
	go scr.ChannelEvents(events, quit)

	done := make(chan error, 1)
	go func() { done <- r.Run(m) }()
	defer r.Halt()

	for {
		select {
		case f := <-t.frames:
			t.paint(f)
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				scr.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					r.Halt()
					return <-done
				}
				t.key(ev)
			}
		case err := <-done:
			return err
		}
	}
}

func (t *term) key(ev *tcell.EventKey) {
	if ev.Key() != tcell.KeyRune {
		return
	}
	k, ok := t.keys[unicode.ToLower(ev.Rune())]
	if !ok {
		return
	}
	t.r.Key(k, true)
	if h := t.hold[k]; h != nil {
		h.Reset(termKeyHold)
	} else {
		t.hold[k] = time.AfterFunc(termKeyHold, func() {
			t.r.Key(k, false)
		})
	}
}

// paint draws a frame using half-block runes, packing two rows of
// pixels into each terminal row.
func (t *term) paint(f chip8.Frame) {
	for y := 0; y < chip8.ScreenHeight; y += 2 {
		for x := 0; x < chip8.ScreenWidth; x++ {
			var r rune
			switch top, bottom := f[y][x], f[y+1][x]; {
			case top && bottom:
				r = '█'
			case top:
				r = '▀'
			case bottom:
				r = '▄'
			default:
				r = ' '
			}
			t.scr.SetContent(x, y/2, r, nil, termStyle)
		}
	}
	t.scr.Show()
}
