// Package caret tracks the blink phase of a field's caret.
package caret

import "time"

// DefaultInterval is the on (and off) duration of one blink phase.
const DefaultInterval = 500 * time.Millisecond

// Blink accumulates frame time since the last reset.
//
// The zero value is a freshly reset timer: the caret is visible.
type Blink struct {
	elapsed time.Duration
}

// Advance adds one frame's elapsed time. Negative durations are ignored.
func (b *Blink) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	b.elapsed += dt
}

// Reset restarts the visible phase. Edits and cursor moves call it so the
// caret never blinks off while typing.
func (b *Blink) Reset() { b.elapsed = 0 }

// Elapsed returns the accumulated time since the last reset.
func (b Blink) Elapsed() time.Duration { return b.elapsed }

// Visible reports whether the caret is in the on phase for interval.
// A non-positive interval disables blinking.
func (b Blink) Visible(interval time.Duration) bool {
	if interval <= 0 {
		return true
	}
	return b.elapsed%(2*interval) < interval
}

// NextToggle returns how long until Visible flips, for hosts that schedule
// redraws instead of ticking every frame.
func (b Blink) NextToggle(interval time.Duration) time.Duration {
	if interval <= 0 {
		return 0
	}
	return interval - b.elapsed%interval
}
