package main

import (
	"image"
	"image/color"
	"log"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/draw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/livexia/gochip8/chip8"
	"github.com/livexia/gochip8/emu"
)

// guiScale is the initial window size in host pixels per CHIP-8 pixel.
const guiScale = 10

var guiPalette = [2]color.RGBA{
	{R: 0x11, G: 0x16, B: 0x11, A: 0xff}, // off
	{R: 0xbd, G: 0xff, B: 0xca, A: 0xff}, // on
}

// gui renders frames in a window and feeds its key events to the
// runner, translated by the keymap.
type gui struct {
	r    *emu.Runner
	keys Keymap

	win   screen.Window
	frame screen.Buffer // one pixel per CHIP-8 pixel
	winB  screen.Buffer // scaled to the window
	tex   screen.Texture
	sz    size.Event
}

// frameEvent carries a machine frame into the window event loop.
type frameEvent chip8.Frame

// haltEvent reports that the runner has stopped.
type haltEvent struct{}

func newGUI(keys Keymap) *gui {
	return &gui{keys: keys}
}

// Flush implements emu.Display. It is called from the runner's
// goroutine, so the frame is handed to the event loop rather than
// painted here.
func (g *gui) Flush(f chip8.Frame) { g.win.Send(frameEvent(f)) }

// run opens the window and drives r on m until the window is closed
// or the machine halts.
func (g *gui) run(r *emu.Runner, m *chip8.Machine) error {
	g.r = r
	var runErr error
	driver.Main(func(s screen.Screen) {
		w, err := s.NewWindow(&screen.NewWindowOptions{
			Title:  "gochip8",
			Width:  chip8.ScreenWidth * guiScale,
			Height: chip8.ScreenHeight * guiScale,
		})
		if err != nil {
			runErr = err
			return
		}
		defer w.Release()
		g.win = w

		g.frame, err = s.NewBuffer(image.Point{chip8.ScreenWidth, chip8.ScreenHeight})
		if err != nil {
			runErr = err
			return
		}
		defer g.release()

		done := make(chan error, 1)
		go func() {
			done <- r.Run(m)
			w.Send(haltEvent{})
		}()
		defer r.Halt()

		for {
			switch e := w.NextEvent().(type) {
			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}
			case size.Event:
				if e.WidthPx+e.HeightPx == 0 {
					return // window gone
				}
				g.sz = e
				if err := g.resize(s, e); err != nil {
					runErr = err
					return
				}
				g.publish()
			case key.Event:
				if e.Code == key.CodeEscape && e.Direction == key.DirPress {
					r.Halt()
					break
				}
				g.key(e)
			case frameEvent:
				g.paint(chip8.Frame(e))
				g.publish()
			case paint.Event:
				g.publish()
			case haltEvent:
				runErr = <-done
				return
			case error:
				log.Print(e)
			}
		}
	})
	return runErr
}

func (g *gui) key(e key.Event) {
	if e.Direction != key.DirPress && e.Direction != key.DirRelease {
		return
	}
	if k, ok := g.keys[unicode.ToLower(e.Rune)]; ok {
		g.r.Key(k, e.Direction == key.DirPress)
	}
}

// paint copies a machine frame into the frame buffer.
func (g *gui) paint(f chip8.Frame) {
	m := g.frame.RGBA()
	for y := range f {
		for x, on := range f[y] {
			c := guiPalette[0]
			if on {
				c = guiPalette[1]
			}
			m.SetRGBA(x, y, c)
		}
	}
}

// publish scales the frame buffer to the window and presents it.
func (g *gui) publish() {
	if g.winB == nil {
		return
	}
	draw.NearestNeighbor.Scale(
		g.winB.RGBA(), g.winB.Bounds(),
		g.frame.RGBA(), g.frame.Bounds(),
		draw.Src, nil)
	g.tex.Upload(image.Point{}, g.winB, g.winB.Bounds())
	g.win.Copy(image.Point{}, g.tex, g.tex.Bounds(), draw.Src, nil)
	g.win.Publish()
}

// resize replaces the window-sized buffer and texture.
func (g *gui) resize(s screen.Screen, e size.Event) error {
	if g.winB != nil {
		g.winB.Release()
		g.tex.Release()
		g.winB, g.tex = nil, nil
	}
	sz := image.Point{e.WidthPx, e.HeightPx}
	winB, err := s.NewBuffer(sz)
	if err != nil {
		return err
	}
	tex, err := s.NewTexture(sz)
	if err != nil {
		winB.Release()
		return err
	}
	g.winB, g.tex = winB, tex
	return nil
}

func (g *gui) release() {
	if g.frame != nil {
		g.frame.Release()
	}
	if g.winB != nil {
		g.winB.Release()
	}
	if g.tex != nil {
		g.tex.Release()
	}
}
