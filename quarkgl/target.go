package quarkgl

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Pixel(x, y int) Color
	Clear(c Color)
}

// RenderMode selects the rasterization mode.
type RenderMode uint8

const (
	RenderTextured RenderMode = iota
	RenderSolidFlat
	RenderWireframe
)

// RGBATarget renders into an RGBA8888 buffer.
//
// Callers provide the backing buffer and layout (stride); it needs no
// framebuffer abstraction.
type RGBATarget struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int
}

func (t *RGBATarget) Size() (w, h int) { return t.W, t.H }

func (t *RGBATarget) offset(x, y int) int {
	if t == nil || t.Buf == nil || t.Stride <= 0 {
		return -1
	}
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return -1
	}
	off := y*t.Stride + x*4
	if off+3 >= len(t.Buf) {
		return -1
	}
	return off
}

func (t *RGBATarget) Clear(c Color) {
	if t == nil || t.Buf == nil || t.Stride <= 0 || t.W <= 0 || t.H <= 0 {
		return
	}
	for y := 0; y < t.H; y++ {
		row := y * t.Stride
		for x := 0; x < t.W; x++ {
			off := row + x*4
			if off+3 >= len(t.Buf) {
				return
			}
			t.Buf[off+0] = c.R
			t.Buf[off+1] = c.G
			t.Buf[off+2] = c.B
			t.Buf[off+3] = 0xFF
		}
	}
}

func (t *RGBATarget) SetPixel(x, y int, c Color) {
	off := t.offset(x, y)
	if off < 0 {
		return
	}
	t.Buf[off+0] = c.R
	t.Buf[off+1] = c.G
	t.Buf[off+2] = c.B
	t.Buf[off+3] = 0xFF
}

func (t *RGBATarget) Pixel(x, y int) Color {
	off := t.offset(x, y)
	if off < 0 {
		return Color{}
	}
	return Color{R: t.Buf[off], G: t.Buf[off+1], B: t.Buf[off+2], A: t.Buf[off+3]}
}
