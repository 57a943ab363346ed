package hud

import (
	"image"
	"image/color"

	"coverflow/hal"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*Display)(nil)

// Display adapts an RGBA pixel buffer to drivers.Displayer so tinyfont can
// draw into it. Translucent colors are blended over the existing pixel.
type Display struct {
	fb     hal.Framebuffer
	buf    []byte
	stride int
	w, h   int
}

// NewFramebufferDisplay wraps an RGBA framebuffer. It returns nil for other
// pixel formats.
func NewFramebufferDisplay(fb hal.Framebuffer) *Display {
	if fb == nil || fb.Format() != hal.PixelFormatRGBA8888 {
		return nil
	}
	return &Display{fb: fb, buf: fb.Buffer(), stride: fb.StrideBytes(), w: fb.Width(), h: fb.Height()}
}

// NewImageDisplay wraps an image. The image must start at the origin.
func NewImageDisplay(img *image.RGBA) *Display {
	b := img.Bounds()
	return &Display{buf: img.Pix, stride: img.Stride, w: b.Dx(), h: b.Dy()}
}

func (d *Display) Size() (x, y int16) {
	if d == nil {
		return 0, 0
	}
	return int16(d.w), int16(d.h)
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	if d == nil {
		return
	}
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.w || iy < 0 || iy >= d.h {
		return
	}
	off := iy*d.stride + ix*4
	if off < 0 || off+3 >= len(d.buf) {
		return
	}
	switch c.A {
	case 0:
		return
	case 0xFF:
		d.buf[off+0] = c.R
		d.buf[off+1] = c.G
		d.buf[off+2] = c.B
	default:
		a := uint32(c.A)
		ia := 255 - a
		d.buf[off+0] = uint8((uint32(c.R)*a + uint32(d.buf[off+0])*ia) / 255)
		d.buf[off+1] = uint8((uint32(c.G)*a + uint32(d.buf[off+1])*ia) / 255)
		d.buf[off+2] = uint8((uint32(c.B)*a + uint32(d.buf[off+2])*ia) / 255)
	}
	d.buf[off+3] = 0xFF
}

func (d *Display) Display() error {
	if d == nil || d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d == nil {
		return nil
	}
	x0 := clampInt(int(x), 0, d.w)
	y0 := clampInt(int(y), 0, d.h)
	x1 := clampInt(int(x)+int(width), 0, d.w)
	y1 := clampInt(int(y)+int(height), 0, d.h)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			d.SetPixel(int16(px), int16(py), c)
		}
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
