// Package timing provides the monotonic millisecond clock and sleep
// primitive used by the tick driver.
package timing

import "time"

var start = time.Now()

// Milliseconds returns a monotonic timestamp in milliseconds since process
// start.
func Milliseconds() float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

// Sleep suspends the calling goroutine for the given number of milliseconds.
// Non-positive durations return immediately.
func Sleep(ms float64) {
	if ms <= 0 {
		return
	}
	time.Sleep(time.Duration(ms * float64(time.Millisecond)))
}
