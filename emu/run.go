// Package emu drives a chip8.Machine at the CHIP-8's two fixed clock
// rates, routing host input and output between the machine and the
// front end.
package emu

import (
	"log"

	"github.com/livexia/gochip8/chip8"
)

// CycleHz is the rate at which machine instructions execute. TimerHz
// is the rate at which the delay and sound timers count down and
// frames are flushed to the display.
const (
	CycleHz = 500
	TimerHz = 60
)

// Display receives a frame whenever the screen has changed by the
// next timer tick. Flush is called from the Runner's loop; the frame
// is a copy and may be retained.
type Display interface {
	Flush(chip8.Frame)
}

// Audio is the beeper controlled by the sound timer.
type Audio interface {
	Start()
	Stop()
}

// StateKind describes why a StateFunc is being called.
type StateKind int

const (
	QuietState StateKind = iota // periodic refresh
	PauseState                  // execution paused or single-stepped
	HaltState                   // machine halted
)

// StateFunc is called by the Runner to report machine state, for
// example to a monitor UI. The machine must not be accessed after the
// call returns.
type StateFunc func(*chip8.Machine, StateKind)

// Runner executes a Machine, stepping it at CycleHz and ticking its
// timers at TimerHz. The two clocks are independent; the Runner's
// loop services whichever fires first, and owns the Machine
// exclusively for its lifetime.
type Runner struct {
	display Display
	audio   Audio
	state   StateFunc
	dev     bool

	keys chan KeyEvent
	swap chan *chip8.Machine
	ctrl chan string
	done chan bool
}

// KeyEvent reports a logical key going down or up.
type KeyEvent struct {
	Key  byte // 0x0 through 0xf
	Down bool
}

// NewRunner returns a Runner that reports frames to display and sound
// transitions to audio, either of which may be nil. In dev mode a
// machine halt leaves the Runner waiting for a Swap instead of
// stopping it. If state is non-nil it is called as described by its
// StateKind.
func NewRunner(display Display, audio Audio, dev bool, state StateFunc) *Runner {
	if display == nil {
		display = noopDisplay{}
	}
	if audio == nil {
		audio = noopAudio{}
	}
	return &Runner{
		display: display,
		audio:   audio,
		state:   state,
		dev:     dev,
		keys:    make(chan KeyEvent, 64),
		swap:    make(chan *chip8.Machine),
		ctrl:    make(chan string),
		done:    make(chan bool),
	}
}

// Key reports a logical key transition to the running machine.
// It is safe to call from any goroutine, and a no-op once the
// Runner has stopped.
func (r *Runner) Key(key byte, down bool) {
	select {
	case r.keys <- KeyEvent{key & 0xf, down}:
	case <-r.done:
	}
}

// Swap replaces the running machine, resuming execution if it was
// paused or halted.
func (r *Runner) Swap(m *chip8.Machine) {
	select {
	case r.swap <- m:
	case <-r.done:
	}
}

// Halt stops the Runner; Run returns nil.
func (r *Runner) Halt() { r.command("halt") }

// Command executes a monitor command: "pause", "step", "cont".
func (r *Runner) Command(cmd string) { r.command(cmd) }

func (r *Runner) command(cmd string) {
	select {
	case r.ctrl <- cmd:
	case <-r.done:
	}
}

// Run executes m until it halts or Halt is called. It returns the
// machine's halt error, or nil for a host-initiated stop.
func (r *Runner) Run(m *chip8.Machine) error {
	defer close(r.done)
	defer r.audio.Stop()

	var (
		cycle = clock(cyclePeriod, r.done)
		timer = clock(timerPeriod, r.done)

		paused  bool
		halted  bool
		beeping bool
		flushed = -1 // screen revision last sent to the display
	)
	for {
		select {
		case <-cycle:
			if paused || halted {
				break
			}
			r.drainKeys(m)
			if err := m.Step(); err != nil {
				if !r.dev {
					return err
				}
				log.Printf("chip8: %v", err)
				halted = true
				r.callState(m, HaltState)
			}
		case <-timer:
			if !paused && !halted {
				beeping = r.beep(beeping, m.TickTimers())
			}
			if rev := m.Screen.Rev(); rev != flushed {
				flushed = rev
				r.display.Flush(m.Screen.Frame())
			}
			if !paused && !halted {
				r.callState(m, QuietState)
			}
		case nm := <-r.swap:
			m = nm
			paused, halted = false, false
			beeping = r.beep(beeping, false)
			flushed = -1
			r.callState(m, QuietState)
		case cmd := <-r.ctrl:
			switch cmd {
			case "halt":
				return nil
			case "pause":
				paused = true
				beeping = r.beep(beeping, false)
				r.callState(m, PauseState)
			case "step":
				if !paused || halted {
					break
				}
				r.drainKeys(m)
				if err := m.Step(); err != nil {
					log.Printf("chip8: %v", err)
					halted = true
					r.callState(m, HaltState)
					break
				}
				r.callState(m, PauseState)
			case "cont":
				paused = false
			}
		}
	}
}

// drainKeys applies all pending key events to the keypad before the
// next instruction executes.
func (r *Runner) drainKeys(m *chip8.Machine) {
	for {
		select {
		case e := <-r.keys:
			m.Keys.Set(e.Key, e.Down)
		default:
			return
		}
	}
}

// beep starts or stops the beeper on sound timer transitions and
// returns the new state.
func (r *Runner) beep(was, now bool) bool {
	switch {
	case now && !was:
		r.audio.Start()
	case was && !now:
		r.audio.Stop()
	}
	return now
}

func (r *Runner) callState(m *chip8.Machine, k StateKind) {
	if r.state != nil {
		r.state(m, k)
	}
}

type noopDisplay struct{}

func (noopDisplay) Flush(chip8.Frame) {}

type noopAudio struct{}

func (noopAudio) Start() {}
func (noopAudio) Stop()  {}
