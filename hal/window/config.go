// Package window runs the app in a desktop window through ebiten.
//
// The window backend needs cgo. Without it Run reports an error and only the
// headless runner in package hal is available.
package window

import "time"

// Config controls the desktop window runner.
type Config struct {
	Width  int
	Height int
	Scale  int
	TPS    int
	Title  string
}

// RepeatDelay is how long a key is held before it starts repeating, and
// RepeatInterval the spacing of repeats after that.
const (
	RepeatDelay    = 500 * time.Millisecond
	RepeatInterval = 100 * time.Millisecond
)

// repeatDue reports whether a key held for ticks ticks at tps ticks per
// second fires a repeat on this tick.
func repeatDue(ticks, tps int) bool {
	if tps <= 0 {
		return false
	}
	delay := max(int(RepeatDelay*time.Duration(tps)/time.Second), 1)
	interval := max(int(RepeatInterval*time.Duration(tps)/time.Second), 1)
	return ticks > delay && (ticks-delay)%interval == 0
}

func (c *Config) defaults() {
	if c.TPS <= 0 {
		c.TPS = 60
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Title == "" {
		c.Title = "Cover Flow"
	}
}
