package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/livexia/gochip8/chip8"
	"github.com/livexia/gochip8/emu"
)

// devMode runs romFile in a window while watching it for changes,
// re-loading it into a fresh machine on each write. A monitor UI in
// the terminal shows machine state and accepts debugger commands.
func devMode(romFile string) error {
	romFile = filepath.Clean(romFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(romFile)); err != nil {
		return err
	}

	keys, err := NewKeymap(DefaultLayout)
	if err != nil {
		return err
	}

	mon := newMonitor()
	g := newGUI(keys)
	r := emu.NewRunner(g, newAudio(), true, mon.StateFunc)
	mon.r = r

	load := func() (*chip8.Machine, error) {
		rom, err := os.ReadFile(romFile)
		if err != nil {
			return nil, err
		}
		return chip8.NewMachine(rom)
	}
	mon.reset = func() {
		m, err := load()
		if err != nil {
			log.Printf("dev: %v", err)
			return
		}
		log.Printf("dev: reset")
		r.Swap(m)
	}

	log.SetPrefix("")
	log.SetOutput(mon.log)
	go func() {
		if err := mon.Run(); err != nil {
			log.Fatalf("monitor: %v", err)
		}
		log.SetOutput(os.Stderr)
		log.SetPrefix("gochip8: ")
		r.Halt()
	}()
	defer mon.app.Stop()

	machineCh := make(chan *chip8.Machine)
	go func() {
		started := false
		run := time.After(1 * time.Millisecond)
		for {
			select {
			case <-run:
				m, err := load()
				if err != nil {
					log.Printf("dev: %v", err)
					break
				}
				if !started {
					log.Printf("dev: start %s", filepath.Base(romFile))
					machineCh <- m
					started = true
				} else {
					log.Printf("dev: reload")
					r.Swap(m)
				}
			case ev := <-watcher.Event:
				if ev.Name == romFile && !ev.IsAttrib() {
					run = time.After(100 * time.Millisecond)
				}
			case err := <-watcher.Error:
				log.Printf("dev: watcher: %v", err)
			}
		}
	}()

	if err := g.run(r, <-machineCh); err != nil {
		return fmt.Errorf("dev: %v", err)
	}
	return nil
}
