// Package chip8 provides an implementation of a CHIP-8 CPU, called
// Machine, that can be used to execute CHIP-8 ROMs.
package chip8

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	memSize   = 4096
	romBase   = 0x200
	stackSize = 16
)

// MaxROMSize is the largest program image that fits in memory above
// the reserved region.
const MaxROMSize = memSize - romBase

// Machine is an implementation of a CHIP-8 CPU.
type Machine struct {
	Mem   [memSize]byte
	V     [16]byte
	I     uint16
	PC    uint16
	Stack [stackSize]uint16
	SP    byte
	Delay byte
	Sound byte

	Screen Screen
	Keys   Keypad

	rand func() byte
}

// NewMachine returns a CHIP-8 CPU with the given rom loaded at 0x200
// and the built-in font at 0x50. It returns an error if the rom is
// larger than MaxROMSize bytes.
func NewMachine(rom []byte) (*Machine, error) {
	if len(rom) > MaxROMSize {
		return nil, fmt.Errorf("rom is %d bytes; at most %d fit in memory", len(rom), MaxROMSize)
	}
	m := &Machine{PC: romBase}
	copy(m.Mem[fontBase:], font[:])
	copy(m.Mem[romBase:], rom)
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	m.rand = func() byte { return byte(r.Intn(256)) }
	return m, nil
}

// Step fetches and executes the instruction at m.PC.
// It returns a non-nil error only if it encounters a halt condition.
func (m *Machine) Step() error {
	if int(m.PC)+1 >= memSize {
		return HaltError{Addr: m.PC, HaltCode: OutOfRange}
	}
	var (
		op   = Op(m.Mem[m.PC])<<8 | Op(m.Mem[m.PC+1])
		opPC = m.PC
	)
	m.PC += 2

	switch op.Kind() {
	case 0x0:
		switch op {
		case 0x00e0:
			m.Screen.Clear()
		case 0x00ee:
			if m.SP == 0 {
				return HaltError{Addr: opPC, Op: op, HaltCode: Underflow}
			}
			m.SP--
			m.PC = m.Stack[m.SP]
		}
	case 0x1:
		m.PC = op.NNN()
	case 0x2:
		if m.SP == stackSize {
			return HaltError{Addr: opPC, Op: op, HaltCode: Overflow}
		}
		m.Stack[m.SP] = m.PC
		m.SP++
		m.PC = op.NNN()
	case 0x3:
		if m.V[op.X()] == op.NN() {
			m.PC += 2
		}
	case 0x4:
		if m.V[op.X()] != op.NN() {
			m.PC += 2
		}
	case 0x5:
		if op.N() == 0 && m.V[op.X()] == m.V[op.Y()] {
			m.PC += 2
		}
	case 0x6:
		m.V[op.X()] = op.NN()
	case 0x7:
		m.V[op.X()] += op.NN()
	case 0x8:
		m.alu(op)
	case 0x9:
		if op.N() == 0 && m.V[op.X()] != m.V[op.Y()] {
			m.PC += 2
		}
	case 0xa:
		m.I = op.NNN()
	case 0xb:
		m.PC = op.NNN() + uint16(m.V[0])
	case 0xc:
		m.V[op.X()] = m.rand() & op.NN()
	case 0xd:
		return m.draw(op, opPC)
	case 0xe:
		down := m.Keys.IsDown(m.V[op.X()])
		if op.NN() == 0x9e && down || op.NN() == 0xa1 && !down {
			m.PC += 2
		}
	case 0xf:
		return m.misc(op, opPC)
	}
	return nil
}

// alu executes the register-register instructions, family 0x8.
// The overflow, borrow, and shifted-out bit lands in VF before the
// result is stored; the order matters only when VF itself is the
// destination register, and matches the reference interpreter.
func (m *Machine) alu(op Op) {
	x, y := op.X(), op.Y()
	switch op.N() {
	case 0x0:
		m.V[x] = m.V[y]
	case 0x1:
		m.V[x] |= m.V[y]
	case 0x2:
		m.V[x] &= m.V[y]
	case 0x3:
		m.V[x] ^= m.V[y]
	case 0x4:
		sum := uint16(m.V[x]) + uint16(m.V[y])
		m.V[0xf] = byte(sum >> 8)
		m.V[x] = byte(sum)
	case 0x5:
		vx, vy := m.V[x], m.V[y]
		m.V[0xf] = flag(vx >= vy)
		m.V[x] = vx - vy
	case 0x6:
		// The original CHIP-8 shifted Vy into Vx; like most modern
		// interpreters (and the programs written for them) we shift
		// Vx in place and ignore Vy.
		m.V[0xf] = m.V[x] & 1
		m.V[x] >>= 1
	case 0x7:
		vx, vy := m.V[x], m.V[y]
		m.V[0xf] = flag(vy >= vx)
		m.V[x] = vy - vx
	case 0xe:
		m.V[0xf] = m.V[x] >> 7
		m.V[x] <<= 1
	}
}

func (m *Machine) draw(op Op, opPC uint16) error {
	n := uint16(op.N())
	if int(m.I)+int(n) > memSize {
		return HaltError{Addr: opPC, Op: op, HaltCode: OutOfRange}
	}
	sprite := m.Mem[m.I : m.I+n]
	m.V[0xf] = flag(m.Screen.Draw(m.V[op.X()], m.V[op.Y()], sprite))
	return nil
}

// misc executes the timer, keypad, and index register instructions,
// family 0xf.
func (m *Machine) misc(op Op, opPC uint16) error {
	x := op.X()
	switch op.NN() {
	case 0x07:
		m.V[x] = m.Delay
	case 0x0a:
		if k, ok := m.Keys.FirstDown(); ok {
			m.V[x] = k
			m.Keys.Set(k, false)
		} else {
			// Rewind so the same instruction runs again next cycle.
			m.PC -= 2
		}
	case 0x15:
		m.Delay = m.V[x]
	case 0x18:
		m.Sound = m.V[x]
	case 0x1e:
		// No overflow flag, per the original interpreter.
		m.I += uint16(m.V[x])
	case 0x29:
		m.I = fontBase + 5*uint16(m.V[x])
	case 0x33:
		if int(m.I)+3 > memSize {
			return HaltError{Addr: opPC, Op: op, HaltCode: OutOfRange}
		}
		v := m.V[x]
		m.Mem[m.I] = v / 100
		m.Mem[m.I+1] = v / 10 % 10
		m.Mem[m.I+2] = v % 10
	case 0x55:
		if int(m.I)+int(x)+1 > memSize {
			return HaltError{Addr: opPC, Op: op, HaltCode: OutOfRange}
		}
		copy(m.Mem[m.I:], m.V[:x+1])
	case 0x65:
		if int(m.I)+int(x)+1 > memSize {
			return HaltError{Addr: opPC, Op: op, HaltCode: OutOfRange}
		}
		copy(m.V[:x+1], m.Mem[m.I:])
	}
	return nil
}

// TickTimers performs one 60Hz timer tick, counting the delay and
// sound timers down toward zero. It reports whether the sound timer
// was still running, ie whether the beeper should be audible.
func (m *Machine) TickTimers() (beeping bool) {
	if m.Delay > 0 {
		m.Delay--
	}
	if m.Sound > 0 {
		m.Sound--
		return true
	}
	return false
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// HaltError is returned by Step if execution cannot continue.
// The machine is left in the state it had before the instruction
// at Addr executed, except that PC has advanced past it.
type HaltError struct {
	HaltCode
	Op   Op
	Addr uint16
}

func (e HaltError) Error() string {
	return fmt.Sprintf("%s executing %s at %.4x", e.HaltCode, e.Op, e.Addr)
}

// HaltCode signifies the type of condition that halted execution.
type HaltCode byte

const (
	Underflow  HaltCode = iota // return with an empty call stack
	Overflow                   // call with a full call stack
	OutOfRange                 // memory access past the end of memory
)

func (c HaltCode) String() string {
	if s, ok := map[HaltCode]string{
		Underflow:  "stack underflow",
		Overflow:   "stack overflow",
		OutOfRange: "address out of range",
	}[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown (%.2x)", byte(c))
}
