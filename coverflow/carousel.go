package coverflow

import (
	"errors"
	"fmt"
	"time"

	"coverflow/quarkgl"

	"go.uber.org/zap"
)

// ErrIndexOutOfRange is returned by MoveTo for an index outside [0, Len()-1].
var ErrIndexOutOfRange = errors.New("coverflow: index out of range")

// Config describes a carousel. Zero Layout, Timing and WheelStep select the
// defaults.
type Config struct {
	Slides    int
	Layout    Layout
	Timing    Timing
	WheelStep float64
}

// Carousel owns the selected index and every card.
//
// It is not safe for concurrent use; the render loop drives it.
type Carousel struct {
	layout    Layout
	driver    *Driver
	cards     []Card
	selected  int
	value     float64
	wheelStep float64
	log       *zap.Logger
}

// New creates a carousel with cfg.Slides cards resting at the origin and
// index 0 selected.
func New(cfg Config, log *zap.Logger) (*Carousel, error) {
	if cfg.Slides <= 0 {
		return nil, fmt.Errorf("coverflow: slides must be positive, got %d", cfg.Slides)
	}
	if cfg.Layout == (Layout{}) {
		cfg.Layout = DefaultLayout()
	}
	if cfg.Timing.Position <= 0 && cfg.Timing.Rotation <= 0 {
		cfg.Timing = DefaultTiming()
	}
	if cfg.WheelStep == 0 {
		cfg.WheelStep = DefaultWheelStep
	}
	if log == nil {
		log = zap.NewNop()
	}

	cards := make([]Card, cfg.Slides)
	for i := range cards {
		cards[i].Index = i
	}
	return &Carousel{
		layout:    cfg.Layout,
		driver:    NewDriver(cfg.Slides, cfg.Timing),
		cards:     cards,
		wheelStep: cfg.WheelStep,
		log:       log,
	}, nil
}

func (c *Carousel) Len() int         { return len(c.cards) }
func (c *Carousel) Selected() int    { return c.selected }
func (c *Carousel) Value() float64   { return c.value }
func (c *Carousel) Layout() Layout   { return c.layout }
func (c *Carousel) Animating() bool  { return c.driver.Active() }
func (c *Carousel) Cards() []Card    { return c.cards }
func (c *Carousel) Card(i int) *Card { return &c.cards[i] }

// SetTexture replaces the front texture of card i.
func (c *Carousel) SetTexture(i int, tex *quarkgl.Texture) {
	if i < 0 || i >= len(c.cards) {
		return
	}
	c.cards[i].Texture = tex
}

// MoveTo centres card idx, starting a transition for every card at time now.
// It reports false without touching any card when idx is already selected.
func (c *Carousel) MoveTo(now time.Duration, idx int) (bool, error) {
	if idx < 0 || idx >= len(c.cards) {
		return false, fmt.Errorf("%w: %d not in [0,%d]", ErrIndexOutOfRange, idx, len(c.cards)-1)
	}
	if idx == c.selected {
		return false, nil
	}
	for i := range c.cards {
		c.driver.Start(now, &c.cards[i], c.layout.ComputeTarget(i, idx))
	}
	c.log.Debug("move", zap.Int("from", c.selected), zap.Int("to", idx))
	c.selected = idx
	return true, nil
}

// SetValue sets the slider value, clamped to [0,1], and moves to the index it
// maps to.
func (c *Carousel) SetValue(now time.Duration, v float64) bool {
	c.value = clampValue(v)
	moved, _ := c.MoveTo(now, IndexForValue(c.value, len(c.cards)))
	return moved
}

// Wheel accumulates a wheel delta into the slider value. Positive deltaY
// scrolls toward later slides.
func (c *Carousel) Wheel(now time.Duration, deltaY float64) bool {
	if deltaY == 0 {
		return false
	}
	return c.SetValue(now, c.value+deltaY*c.wheelStep)
}

// Step moves delta slides from the current selection, stopping at either end,
// and snaps the slider to the new index.
func (c *Carousel) Step(now time.Duration, delta int) bool {
	idx := min(max(c.selected+delta, 0), len(c.cards)-1)
	return c.Jump(now, idx)
}

// Jump selects idx (clamped) and snaps the slider to it.
func (c *Carousel) Jump(now time.Duration, idx int) bool {
	idx = min(max(idx, 0), len(c.cards)-1)
	c.value = ValueForIndex(idx, len(c.cards))
	moved, _ := c.MoveTo(now, idx)
	return moved
}

// Update advances every card's transition to time now.
func (c *Carousel) Update(now time.Duration) {
	c.driver.Update(now, c.cards)
}
