// Command gochip8 executes CHIP-8 ROMs.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/livexia/gochip8/chip8"
	"github.com/livexia/gochip8/emu"
)

func main() {
	log.SetPrefix("gochip8: ")
	log.SetFlags(0)

	var (
		cliFlag = flag.Bool("cli", false, "render to the terminal instead of a window")
		devFlag = flag.Bool("dev", false, "enable developer mode (watch, re-load, and monitor the rom)")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-cli] <program.ch8>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -dev <program.ch8>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}
	if *devFlag && *cliFlag {
		log.Fatal("-dev needs the terminal for its monitor and cannot be combined with -cli")
	}

	if *devFlag {
		if err := devMode(flag.Arg(0)); err != nil {
			log.Fatal(err)
		}
		return
	}

	var cpuProfile io.Closer
	if prof := *cpuProfileFlag; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			log.Fatalf("creating CPU profile file: %v", err)
		}
		pprof.StartCPUProfile(f)
		cpuProfile = f
	}

	err := run(flag.Arg(0), !*cliFlag)

	if f := cpuProfile; f != nil {
		pprof.StopCPUProfile()
		f.Close()
	}

	if err != nil {
		log.Fatal(err)
	}
}

func run(romFile string, gui bool) error {
	rom, err := os.ReadFile(romFile)
	if err != nil {
		return err
	}
	m, err := chip8.NewMachine(rom)
	if err != nil {
		return err
	}
	keys, err := NewKeymap(DefaultLayout)
	if err != nil {
		return err
	}
	audio := newAudio()

	if gui {
		g := newGUI(keys)
		return g.run(emu.NewRunner(g, audio, false, nil), m)
	}
	t := newTerm(keys)
	return t.run(emu.NewRunner(t, audio, false, nil), m)
}

// newAudio returns the beeper, or nil (silence) if the host has no
// usable audio device.
func newAudio() emu.Audio {
	b, err := newBeeper()
	if err != nil {
		log.Printf("audio disabled: %v", err)
		return nil
	}
	return b
}
