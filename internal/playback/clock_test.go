package playback

import (
	"testing"
	"time"
)

func TestClock_AdvanceOnlyWhilePlaying(t *testing.T) {
	c := NewClock(10)
	if got := c.Advance(time.Second); got != 0 {
		t.Fatalf("paused clock advanced to %v", got)
	}
	c.Play()
	c.Advance(1500 * time.Millisecond)
	if c.Now() != 1.5 {
		t.Fatalf("now = %v", c.Now())
	}
}

func TestClock_StopsAtEnd(t *testing.T) {
	c := NewClock(2)
	c.Play()
	c.Advance(5 * time.Second)
	if c.Now() != 2 || c.Playing() {
		t.Fatalf("now = %v playing = %v", c.Now(), c.Playing())
	}
}

func TestClock_SeekIsBounded(t *testing.T) {
	c := NewClock(60)
	if got := c.Seek(30); got != 30 {
		t.Fatalf("seek = %v", got)
	}
	if got := c.SeekBy(-100); got != 0 {
		t.Fatalf("seek back = %v", got)
	}
	if got := c.SeekBy(1000); got != 60 {
		t.Fatalf("seek forward = %v", got)
	}
	if c.Progress() != 1 {
		t.Fatalf("progress = %v", c.Progress())
	}
}

func TestClock_Unbounded(t *testing.T) {
	c := NewClock(0)
	if got := c.Seek(1e6); got != 1e6 {
		t.Fatalf("seek = %v", got)
	}
	if c.Progress() != 0 {
		t.Fatalf("progress = %v", c.Progress())
	}
}
