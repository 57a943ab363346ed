package quarkgl

import (
	"image"
	"image/draw"
)

// Texture is an RGBA8 image sampled with nearest filtering and clamped edges.
type Texture struct {
	W, H int
	Pix  []uint8 // row-major, 4 bytes per texel
}

// NewTexture copies img into a texture.
func NewTexture(img image.Image) *Texture {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	pix := make([]uint8, len(rgba.Pix))
	copy(pix, rgba.Pix)
	return &Texture{W: b.Dx(), H: b.Dy(), Pix: pix}
}

// SolidTexture returns a 1x1 texture of color c.
func SolidTexture(c Color) *Texture {
	return &Texture{W: 1, H: 1, Pix: []uint8{c.R, c.G, c.B, c.A}}
}

// Sample returns the texel at (u, v); (0,0) is the top-left corner.
func (t *Texture) Sample(u, v float32) Color {
	if t == nil || t.W <= 0 || t.H <= 0 {
		return RGB(0xFF, 0xFF, 0xFF)
	}
	x := int(u * float32(t.W))
	y := int(v * float32(t.H))
	if x < 0 {
		x = 0
	} else if x >= t.W {
		x = t.W - 1
	}
	if y < 0 {
		y = 0
	} else if y >= t.H {
		y = t.H - 1
	}
	i := (y*t.W + x) * 4
	if i+3 >= len(t.Pix) {
		return RGB(0xFF, 0xFF, 0xFF)
	}
	return Color{R: t.Pix[i], G: t.Pix[i+1], B: t.Pix[i+2], A: t.Pix[i+3]}
}
