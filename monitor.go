package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/livexia/gochip8/chip8"
	"github.com/livexia/gochip8/emu"
)

// monitor is the developer-mode terminal UI: a log pane, a machine
// state pane, and a command input.
type monitor struct {
	r     *emu.Runner
	reset func()

	log   *tview.TextView
	state *tview.TextView
	input *tview.InputField
	rows  *tview.Flex
	app   *tview.Application
}

func newMonitor() *monitor {
	m := &monitor{
		log: tview.NewTextView().
			SetMaxLines(1000),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	m.log.SetChangedFunc(func() { m.app.Draw() })
	m.state.SetBackgroundColor(tcell.ColorDarkGrey)
	m.rows.
		AddItem(m.log, 0, 1, false).
		AddItem(m.state, 3, 0, false).
		AddItem(m.input, 1, 0, true)
	m.app.SetRoot(m.rows, true)

	m.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := m.input.GetText()
		if cmd == "" {
			return
		}
		m.input.SetText("")
		switch cmd {
		case "exit":
			m.app.Stop()
		case "p", "pause":
			m.r.Command("pause")
		case "s", "step":
			m.r.Command("step")
		case "c", "cont":
			m.r.Command("cont")
		case "r", "reset":
			m.reset()
		default:
			log.Printf("unknown command %q (try pause, step, cont, reset, exit)", cmd)
		}
	})
	return m
}

func (m *monitor) Run() error { return m.app.Run() }

// StateFunc renders the machine state pane. It is called by the
// Runner, which guarantees exclusive access to mach for the duration
// of the call, so the text is built here and handed to the UI.
func (m *monitor) StateFunc(mach *chip8.Machine, k emu.StateKind) {
	state := stateMsg(mach, k)
	m.app.QueueUpdateDraw(func() {
		switch k {
		case emu.QuietState:
			m.state.SetTextColor(tcell.ColorBlack)
			m.state.SetBackgroundColor(tcell.ColorDarkGrey)
		case emu.PauseState:
			m.state.SetTextColor(tcell.ColorWhite)
			m.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case emu.HaltState:
			m.state.SetTextColor(tcell.ColorWhite)
			m.state.SetBackgroundColor(tcell.ColorDarkRed)
		}
		m.state.SetText(state)
	})
}

func stateMsg(m *chip8.Machine, k emu.StateKind) string {
	kind := "       "
	switch k {
	case emu.PauseState:
		kind = "[pause]"
	case emu.HaltState:
		kind = "[HALT!]"
	}
	var op chip8.Op
	if int(m.PC)+1 < len(m.Mem) {
		op = chip8.Op(m.Mem[m.PC])<<8 | chip8.Op(m.Mem[m.PC+1])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%.4x %- 12s %s  I %.4x  DT %.2x  ST %.2x\n",
		m.PC, op, kind, m.I, m.Delay, m.Sound)
	fmt.Fprintf(&b, "V % x\n", m.V[:])
	fmt.Fprintf(&b, "stack %.3x", m.Stack[:m.SP])
	return b.String()
}
