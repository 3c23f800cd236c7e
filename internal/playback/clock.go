// Package playback provides the media clock captions are synchronized to.
package playback

import "time"

// Clock is a pausable media position in seconds. It only moves forward
// while playing, except through Seek.
type Clock struct {
	pos      float64
	duration float64
	playing  bool
}

// NewClock returns a paused clock at zero. A duration <= 0 leaves the clock
// unbounded.
func NewClock(duration float64) *Clock {
	return &Clock{duration: duration}
}

func (c *Clock) Now() float64 { return c.pos }

func (c *Clock) Duration() float64 { return c.duration }

func (c *Clock) Playing() bool { return c.playing }

func (c *Clock) Play() { c.playing = true }

func (c *Clock) Pause() { c.playing = false }

func (c *Clock) Toggle() { c.playing = !c.playing }

// SetDuration changes the media length, pulling the position back if needed.
func (c *Clock) SetDuration(d float64) {
	c.duration = d
	c.pos = c.bound(c.pos)
}

// Advance moves the position by elapsed wall time while playing. Reaching
// the end pauses the clock.
func (c *Clock) Advance(elapsed time.Duration) float64 {
	if !c.playing || elapsed <= 0 {
		return c.pos
	}
	c.pos = c.bound(c.pos + elapsed.Seconds())
	if c.duration > 0 && c.pos >= c.duration {
		c.playing = false
	}
	return c.pos
}

// Seek jumps to an absolute position.
func (c *Clock) Seek(pos float64) float64 {
	c.pos = c.bound(pos)
	return c.pos
}

// SeekBy jumps relative to the current position.
func (c *Clock) SeekBy(delta float64) float64 {
	return c.Seek(c.pos + delta)
}

// Progress returns the position as a fraction of the duration, or 0 when
// the clock is unbounded.
func (c *Clock) Progress() float64 {
	if c.duration <= 0 {
		return 0
	}
	return c.pos / c.duration
}

func (c *Clock) bound(pos float64) float64 {
	if pos < 0 {
		return 0
	}
	if c.duration > 0 && pos > c.duration {
		return c.duration
	}
	return pos
}
