package emu

import "time"

const (
	cyclePeriod = time.Second / CycleHz
	timerPeriod = time.Second / TimerHz
)

// clock delivers timestamped ticks at the given period until done is
// closed. A tick is never dropped: if the consumer falls behind, the
// producer blocks and its schedule slips, so ticks queue up rather
// than coalesce.
func clock(period time.Duration, done <-chan bool) <-chan time.Time {
	ch := make(chan time.Time, 1)
	go func() {
		for {
			time.Sleep(period)
			select {
			case ch <- time.Now():
			case <-done:
				return
			}
		}
	}()
	return ch
}
