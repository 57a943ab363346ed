// Package hud draws the 2D overlay on top of the 3D frame: the slider that
// browses the cards and a "n / N" caption.
package hud

import (
	"fmt"
	"image"
	"image/color"

	"coverflow/hal"
)

var (
	colorTrack   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x50}
	colorFill    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xa0}
	colorKnob    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorCaption = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
)

const (
	trackHeight = 4
	knobSize    = 12
	hitSlop     = 10
	bottomPad   = 36
)

// Overlay is the slider and caption. It also tracks slider drags.
type Overlay struct {
	track    image.Rectangle
	dragging bool
}

// New lays the overlay out for a w x h frame: a track across the middle
// 60% near the bottom edge.
func New(w, h int) *Overlay {
	tw := w * 6 / 10
	x0 := (w - tw) / 2
	y0 := h - bottomPad
	return &Overlay{track: image.Rect(x0, y0, x0+tw, y0+trackHeight)}
}

// Track returns the slider track rectangle.
func (o *Overlay) Track() image.Rectangle { return o.track }

// SliderRect returns the slider hit box.
func (o *Overlay) SliderRect() image.Rectangle {
	return o.track.Inset(-hitSlop)
}

// Dragging reports whether a slider drag is in progress.
func (o *Overlay) Dragging() bool { return o.dragging }

// ValueAt maps a framebuffer x coordinate to a slider value in [0,1].
func (o *Overlay) ValueAt(x int) float64 {
	w := o.track.Dx()
	if w <= 1 {
		return 0
	}
	v := float64(x-o.track.Min.X) / float64(w-1)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// HandlePointer follows slider drags. A drag starts when the button goes down
// inside the hit box and lasts until it is released, wherever the pointer
// moves. It returns the slider value while dragging.
func (o *Overlay) HandlePointer(st hal.PointerState) (float64, bool) {
	if !st.Down {
		o.dragging = false
		return 0, false
	}
	if !o.dragging {
		if !image.Pt(st.X, st.Y).In(o.SliderRect()) {
			return 0, false
		}
		o.dragging = true
	}
	return o.ValueAt(st.X), true
}

// Draw renders the slider at value and the caption for the selected slide.
func (o *Overlay) Draw(d *Display, value float64, selected, n int) {
	if d == nil {
		return
	}
	t := o.track
	_ = d.FillRectangle(int16(t.Min.X), int16(t.Min.Y), int16(t.Dx()), int16(t.Dy()), colorTrack)

	kx := t.Min.X + int(value*float64(t.Dx()-1)+0.5)
	_ = d.FillRectangle(int16(t.Min.X), int16(t.Min.Y), int16(kx-t.Min.X), int16(t.Dy()), colorFill)

	ky := t.Min.Y + t.Dy()/2
	_ = d.FillRectangle(int16(kx-knobSize/2), int16(ky-knobSize/2), knobSize, knobSize, colorKnob)

	caption := fmt.Sprintf("%d / %d", selected+1, n)
	cx := t.Min.X + (t.Dx()-TextWidth(caption))/2
	WriteText(d, cx, t.Max.Y+6, caption, colorCaption)
}
