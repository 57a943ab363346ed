package hal

import (
	"image"
	"sync"
)

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 4
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGBA8888 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }
func (f *hostFramebuffer) Present() error      { return nil }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := 0; i+3 < len(f.buf); i += 4 {
		f.buf[i+0] = r
		f.buf[i+1] = g
		f.buf[i+2] = b
		f.buf[i+3] = 0xFF
	}
}

func (f *hostFramebuffer) snapshot(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

// Snapshot copies an RGBA framebuffer into a new image.
// It returns nil for other pixel formats.
func Snapshot(fb Framebuffer) *image.RGBA {
	if fb == nil || fb.Format() != PixelFormatRGBA8888 {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, fb.Width(), fb.Height()))
	if hf, ok := fb.(*hostFramebuffer); ok {
		hf.snapshot(img.Pix)
		return img
	}
	src := fb.Buffer()
	stride := fb.StrideBytes()
	for y := 0; y < fb.Height(); y++ {
		off := y * stride
		if off+fb.Width()*4 > len(src) {
			break
		}
		copy(img.Pix[y*img.Stride:], src[off:off+fb.Width()*4])
	}
	return img
}
