package coverflow

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Timing controls how long a card takes to reach its target.
type Timing struct {
	Position time.Duration
	Rotation time.Duration
	Easing   ease.TweenFunc
}

// DefaultTiming eases position over 1.8s and rotation over 0.9s, expo-out.
func DefaultTiming() Timing {
	return Timing{
		Position: 1800 * time.Millisecond,
		Rotation: 900 * time.Millisecond,
		Easing:   ease.OutExpo,
	}
}

type transition struct {
	start  time.Duration
	target Target

	x, z, rot *gween.Tween
}

// Driver animates cards toward their targets.
//
// Each card has at most one transition. Starting a new one replaces the old
// one, beginning from wherever the card currently is.
type Driver struct {
	timing Timing
	active []*transition
}

// NewDriver returns a driver for n cards.
func NewDriver(n int, timing Timing) *Driver {
	if timing.Easing == nil {
		timing.Easing = ease.OutExpo
	}
	return &Driver{timing: timing, active: make([]*transition, n)}
}

// Start begins a transition of c toward target at time now.
func (d *Driver) Start(now time.Duration, c *Card, target Target) {
	if c == nil || c.Index < 0 || c.Index >= len(d.active) {
		return
	}
	pos := float32(d.timing.Position.Seconds())
	rot := float32(d.timing.Rotation.Seconds())
	d.active[c.Index] = &transition{
		start:  now,
		target: target,
		x:      gween.New(c.Position.X(), target.X, pos, d.timing.Easing),
		z:      gween.New(c.Position.Z(), -target.Z, pos, d.timing.Easing),
		rot:    gween.New(c.RotY, target.RotY, rot, d.timing.Easing),
	}
}

// Update writes the eased transform of every animating card for time now.
// Finished transitions leave the card exactly on its target.
func (d *Driver) Update(now time.Duration, cards []Card) {
	for i, tr := range d.active {
		if tr == nil || i >= len(cards) {
			continue
		}
		c := &cards[i]
		elapsed := float32((now - tr.start).Seconds())

		x, xDone := tr.x.Set(elapsed)
		z, zDone := tr.z.Set(elapsed)
		rot, rotDone := tr.rot.Set(elapsed)
		if xDone {
			x = tr.target.X
		}
		if zDone {
			z = -tr.target.Z
		}
		if rotDone {
			rot = tr.target.RotY
		}
		c.Position[0] = x
		c.Position[2] = z
		c.RotY = rot

		if xDone && zDone && rotDone {
			d.active[i] = nil
		}
	}
}

// Active reports whether any card is still moving.
func (d *Driver) Active() bool {
	for _, tr := range d.active {
		if tr != nil {
			return true
		}
	}
	return false
}

// Pending returns the target of card i's in-flight transition, if any.
func (d *Driver) Pending(i int) (Target, bool) {
	if i < 0 || i >= len(d.active) || d.active[i] == nil {
		return Target{}, false
	}
	return d.active[i].target, true
}
