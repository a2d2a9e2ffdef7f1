package main

import (
	"github.com/ebitengine/oto/v3"
)

const (
	beepRate = 44100
	beepHz   = 440
)

// beeper plays a square wave while the machine's sound timer runs.
type beeper struct {
	player *oto.Player
}

func newBeeper() (*beeper, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   beepRate,
		ChannelCount: 1,
		Format:       oto.FormatUnsignedInt8,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	return &beeper{player: ctx.NewPlayer(&squareWave{})}, nil
}

func (b *beeper) Start() { b.player.Play() }
func (b *beeper) Stop()  { b.player.Pause() }

// squareWave is an endless square wave at beepHz.
type squareWave struct {
	n int
}

func (w *squareWave) Read(p []byte) (int, error) {
	const half = beepRate / beepHz / 2
	for i := range p {
		if w.n/half%2 == 0 {
			p[i] = 0xc0
		} else {
			p[i] = 0x40
		}
		w.n++
	}
	return len(p), nil
}
