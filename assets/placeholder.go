package assets

import (
	"image"
	"image/color"
	"strconv"

	"coverflow/hud"

	"golang.org/x/image/draw"
)

var placeholderPalette = []color.RGBA{
	{R: 0x2e, G: 0x4a, B: 0x7a, A: 0xff},
	{R: 0x7a, G: 0x2e, B: 0x4a, A: 0xff},
	{R: 0x2e, G: 0x7a, B: 0x5c, A: 0xff},
	{R: 0x7a, G: 0x5c, B: 0x2e, A: 0xff},
	{R: 0x4f, G: 0x2e, B: 0x7a, A: 0xff},
	{R: 0x2e, G: 0x6b, B: 0x7a, A: 0xff},
}

// PlaceholderColor is the fill color of the placeholder for slide i.
func PlaceholderColor(i int) color.RGBA {
	if i < 0 {
		i = -i
	}
	return placeholderPalette[i%len(placeholderPalette)]
}

// Placeholder renders a w x h card for slide i: a colored panel with a light
// border and the slide number in the middle.
func Placeholder(i, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(PlaceholderColor(i)), image.Point{}, draw.Src)

	border := max(w/64, 1)
	frame := color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	for _, r := range []image.Rectangle{
		image.Rect(0, 0, w, border),
		image.Rect(0, h-border, w, h),
		image.Rect(0, 0, border, h),
		image.Rect(w-border, 0, w, h),
	} {
		draw.Draw(img, r, image.NewUniform(frame), image.Point{}, draw.Src)
	}

	label := strconv.Itoa(i)
	tw := hud.TextWidth(label) + 2
	th := hud.Baseline + 4
	small := image.NewRGBA(image.Rect(0, 0, tw, th))
	hud.WriteText(hud.NewImageDisplay(small), 1, 1, label, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})

	// Scale the label up to roughly half the card width.
	scale := max(min(w/2/tw, h/2/th), 1)
	dw, dh := tw*scale, th*scale
	x0, y0 := (w-dw)/2, (h-dh)/2
	draw.NearestNeighbor.Scale(img, image.Rect(x0, y0, x0+dw, y0+dh), small, small.Bounds(), draw.Over, nil)
	return img
}

// BackgroundPlaceholder renders a dark vertical gradient.
func BackgroundPlaceholder(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		t := 0
		if h > 1 {
			t = y * 255 / (h - 1)
		}
		c := color.RGBA{R: uint8(0x18 + t/12), G: uint8(0x18 + t/10), B: uint8(0x24 + t/6), A: 0xff}
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
