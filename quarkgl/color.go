package quarkgl

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// MulScalar scales the color channels by s clamped to [0,1]. Alpha is kept.
func (c Color) MulScalar(s float32) Color {
	t := uint32(Clamp01(s) * 255)
	mul := func(ch uint8) uint8 {
		return uint8((uint32(ch) * t) / 255)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

// Modulate multiplies two colors channel by channel, alpha included.
func (c Color) Modulate(o Color) Color {
	mul := func(a, b uint8) uint8 {
		return uint8((uint32(a) * uint32(b)) / 255)
	}
	return Color{R: mul(c.R, o.R), G: mul(c.G, o.G), B: mul(c.B, o.B), A: mul(c.A, o.A)}
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

// Blend composites src over dst using src.A. The result is opaque.
func Blend(dst, src Color) Color {
	a := uint32(src.A)
	if a == 0xFF {
		return src.WithAlpha(0xFF)
	}
	ia := 255 - a
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*ia) / 255)
	}
	return Color{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 0xFF}
}
