package emu

import (
	"testing"
	"time"
)

func TestClock(t *testing.T) {
	done := make(chan bool)
	defer close(done)
	c := clock(time.Millisecond, done)
	var last time.Time
	for i := 0; i < 5; i++ {
		tick := <-c
		if tick.Before(last) {
			t.Fatalf("tick %d is before tick %d", i, i-1)
		}
		last = tick
	}
}

func TestClockStops(t *testing.T) {
	done := make(chan bool)
	c := clock(time.Millisecond, done)
	<-c
	close(done)
	// The producer may have a tick in flight, but once done is
	// closed the channel must go quiet. If it never does, the test
	// times out.
	for quiet := 0; quiet < 20; {
		select {
		case <-c:
			quiet = 0
		default:
			quiet++
			time.Sleep(time.Millisecond)
		}
	}
}
