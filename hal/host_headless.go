package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Width   int
	Height  int
	Hz      int
	Ticks   uint64

	// Unpaced runs ticks back to back instead of waiting on a ticker.
	// The frame clock still advances by 1/Hz per tick.
	Unpaced bool

	// Finish, if set, receives the framebuffer after the last tick.
	Finish func(Framebuffer) error
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := NewHost(cfg.Width, cfg.Height)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	finish := func() error {
		if cfg.Finish == nil {
			return nil
		}
		return cfg.Finish(h.fb)
	}

	var tickC <-chan time.Time
	if !cfg.Unpaced {
		t := time.NewTicker(d)
		defer t.Stop()
		tickC = t.C
	}

	var tick uint64
	for {
		if tickC != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tickC:
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		h.t.step(d)
		if step != nil {
			if err := step(); err != nil {
				if errors.Is(err, ErrQuit) {
					return finish()
				}
				return err
			}
		}
		tick++
		if cfg.Ticks > 0 && tick >= cfg.Ticks {
			return finish()
		}
	}
}
