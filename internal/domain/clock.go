package domain

import "github.com/jonboulle/clockwork"

// clock is the package time source. The hourly trim, "tomorrow" labeling,
// and the strictly-in-the-future precipitation-change filter all depend on
// the current instant, so tests freeze it via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the package time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
