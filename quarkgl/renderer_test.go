package quarkgl

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTarget(w, h int) *RGBATarget {
	return &RGBATarget{Buf: make([]byte, w*h*4), Stride: w * 4, W: w, H: h}
}

func orthoScene(n int) *Scene {
	s := CreateScene(n)
	s.Camera = Camera{
		Type:      CameraOrtho,
		Position:  V3(0, 0, 5),
		Target:    V3(0, 0, 0),
		OrthoSize: 1,
		Near:      0.1,
		Far:       10,
	}
	s.Light.Mode = LightOff
	return s
}

func TestTRSTranslatesAfterRotating(t *testing.T) {
	m := TRS(V3(10, 0, 0), mgl32.DegToRad(90))
	p := transformPoint(m, V3(1, 0, 0))
	assert.InDelta(t, 10, p.X(), 1e-4)
	assert.InDelta(t, -1, p.Z(), 1e-4)
}

func TestRenderQuadCoversCenter(t *testing.T) {
	s := orthoScene(1)
	q := NewQuad(1, 1, false)
	q.Material.BaseColor = RGB(0xFF, 0, 0)
	require.Equal(t, 0, s.AddMesh(q))

	tgt := newTestTarget(20, 20)
	r := NewRenderer(20, 20, true)
	r.ClearColor = RGB(0, 0, 0xFF)
	r.Render(tgt, s)

	assert.Equal(t, RGBA(0xFF, 0, 0, 0xFF), tgt.Pixel(10, 10))
	assert.Equal(t, RGBA(0, 0, 0xFF, 0xFF), tgt.Pixel(0, 0))
	assert.Equal(t, RGBA(0, 0, 0xFF, 0xFF), tgt.Pixel(19, 19))
}

func TestRenderDepthIndependentOfOrder(t *testing.T) {
	for _, nearFirst := range []bool{true, false} {
		s := orthoScene(2)
		near := NewQuad(1, 1, false)
		near.Material.BaseColor = RGB(0, 0xFF, 0)
		near.Transform = mgl32.Translate3D(0, 0, 1)
		far := NewQuad(1, 1, false)
		far.Material.BaseColor = RGB(0xFF, 0, 0)
		far.Transform = mgl32.Translate3D(0, 0, -1)
		if nearFirst {
			s.AddMesh(near)
			s.AddMesh(far)
		} else {
			s.AddMesh(far)
			s.AddMesh(near)
		}

		tgt := newTestTarget(16, 16)
		NewRenderer(16, 16, true).Render(tgt, s)
		assert.Equal(t, RGBA(0, 0xFF, 0, 0xFF), tgt.Pixel(8, 8), "nearFirst=%v", nearFirst)
	}
}

func TestRenderTranslucentBlends(t *testing.T) {
	s := orthoScene(2)
	back := NewQuad(2, 2, false)
	back.Material.BaseColor = RGB(0, 0, 0)
	back.Transform = mgl32.Translate3D(0, 0, -1)
	s.AddMesh(back)

	glass := NewQuad(1, 1, false)
	glass.Material.BaseColor = RGB(0xFF, 0xFF, 0xFF)
	glass.Material.Opacity = 0x33 // 0.2
	s.AddMesh(glass)

	tgt := newTestTarget(16, 16)
	NewRenderer(16, 16, true).Render(tgt, s)

	c := tgt.Pixel(8, 8)
	assert.InDelta(t, 0x33, int(c.R), 1)
	assert.Equal(t, uint8(0xFF), c.A)
}

func TestRenderTranslucentHiddenBehindOpaque(t *testing.T) {
	s := orthoScene(2)
	glass := NewQuad(1, 1, false)
	glass.Material.BaseColor = RGB(0xFF, 0xFF, 0xFF)
	glass.Material.Opacity = 0x80
	glass.Transform = mgl32.Translate3D(0, 0, -1)
	s.AddMesh(glass)

	wall := NewQuad(2, 2, false)
	wall.Material.BaseColor = RGB(0x10, 0x20, 0x30)
	s.AddMesh(wall)

	tgt := newTestTarget(16, 16)
	NewRenderer(16, 16, true).Render(tgt, s)
	assert.Equal(t, RGBA(0x10, 0x20, 0x30, 0xFF), tgt.Pixel(8, 8))
}

func TestRenderTextureOrientation(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 0xFF, A: 0xFF}) // top-left red
	img.Set(1, 0, color.RGBA{R: 0xFF, A: 0xFF})
	img.Set(0, 1, color.RGBA{B: 0xFF, A: 0xFF}) // bottom row blue
	img.Set(1, 1, color.RGBA{B: 0xFF, A: 0xFF})
	tex := NewTexture(img)
	require.NotNil(t, tex)

	for _, flip := range []bool{false, true} {
		s := orthoScene(1)
		q := NewQuad(2, 2, flip)
		q.Material.Texture = tex
		s.AddMesh(q)

		tgt := newTestTarget(20, 20)
		NewRenderer(20, 20, true).Render(tgt, s)

		top, bottom := tgt.Pixel(10, 3), tgt.Pixel(10, 16)
		if flip {
			top, bottom = bottom, top
		}
		assert.Equal(t, uint8(0xFF), top.R, "flip=%v", flip)
		assert.Equal(t, uint8(0xFF), bottom.B, "flip=%v", flip)
	}
}

func TestRenderPerspectiveQuadInFrontOfCamera(t *testing.T) {
	s := CreateScene(1)
	s.Camera.Position = V3(0, 0, 900)
	s.Camera.FOVYRad = mgl32.DegToRad(50)
	s.Camera.Near = 1
	s.Camera.Far = 3000
	s.Light.Mode = LightOff
	q := NewQuad(256, 256, false)
	q.Material.BaseColor = RGB(0xAA, 0xBB, 0xCC)
	s.AddMesh(q)

	tgt := newTestTarget(64, 36)
	NewRenderer(64, 36, true).Render(tgt, s)
	assert.Equal(t, RGBA(0xAA, 0xBB, 0xCC, 0xFF), tgt.Pixel(32, 18))
	assert.Equal(t, RGBA(0, 0, 0, 0xFF), tgt.Pixel(1, 1))
}

func TestPointLightFadesWithDistance(t *testing.T) {
	l := Light{Mode: LightAmbientPoint, Ambient: 0.1, Position: V3(0, 0, 500), Range: 1000, Amount: 1}
	quadAt := func(z float32) float32 {
		return lightIntensity(l, V3(-1, 1, z), V3(-1, -1, z), V3(1, -1, z))
	}
	near := quadAt(0)
	far := quadAt(-400)
	beyond := quadAt(-600)
	assert.Greater(t, near, far)
	assert.InDelta(t, 0.1, beyond, 1e-5)
	assert.LessOrEqual(t, near, float32(1))
}

func TestSceneMeshLifecycle(t *testing.T) {
	s := CreateScene(1)
	id := s.AddMesh(NewQuad(1, 1, false))
	require.Equal(t, 0, id)
	require.Equal(t, -1, s.AddMesh(NewQuad(1, 1, false)))

	m, ok := s.Mesh(id)
	require.True(t, ok)
	assert.Equal(t, uint8(0xFF), m.Material.Opacity)
	assert.Equal(t, mgl32.Ident4(), m.Transform)

	tex := SolidTexture(RGB(1, 2, 3))
	s.SetMeshTexture(id, tex)
	s.UpdateMeshTransform(id, mgl32.Translate3D(1, 2, 3))
	m, _ = s.Mesh(id)
	assert.Same(t, tex, m.Material.Texture)
	assert.Equal(t, float32(2), m.Transform[13])

	s.RemoveMesh(id)
	_, ok = s.Mesh(id)
	assert.False(t, ok)
	assert.Equal(t, 0, s.AddMesh(NewQuad(1, 1, false)))
}
