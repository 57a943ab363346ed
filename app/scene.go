package app

import (
	"coverflow/coverflow"
	"coverflow/quarkgl"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	cameraZ    = 900
	cameraFOV  = 50 // degrees, vertical
	cameraNear = 1
	cameraFar  = 3000

	lightZ     = 500
	lightRange = 1000

	bgWidth  = 3000
	bgHeight = 1000
	bgZ      = -500

	reflectionOpacity = 0x33 // 0.2
)

// stage maps carousel cards onto renderer meshes: one front plane and one
// mirrored reflection plane per card, plus the background.
type stage struct {
	scene   *quarkgl.Scene
	bg      int
	front   []int
	reflect []int
	drop    mgl32.Mat4
}

func newStage(c *coverflow.Carousel, bgTex *quarkgl.Texture) *stage {
	l := c.Layout()
	n := c.Len()

	s := quarkgl.CreateScene(2*n + 1)
	s.Camera = quarkgl.Camera{
		Type:     quarkgl.CameraPerspective,
		Position: quarkgl.V3(0, 0, cameraZ),
		Target:   quarkgl.V3(0, 0, 0),
		Up:       quarkgl.V3(0, 1, 0),
		FOVYRad:  mgl32.DegToRad(cameraFOV),
		Near:     cameraNear,
		Far:      cameraFar,
	}
	s.Light = quarkgl.Light{
		Mode:     quarkgl.LightAmbientPoint,
		Ambient:  0.15,
		Position: quarkgl.V3(0, 0, lightZ),
		Range:    lightRange,
		Amount:   2,
	}

	bg := quarkgl.NewQuad(bgWidth, bgHeight, false)
	bg.Transform = mgl32.Translate3D(0, 0, bgZ)
	bg.Material = quarkgl.Material{Texture: bgTex, Unlit: true}

	st := &stage{
		scene:   s,
		bg:      s.AddMesh(bg),
		front:   make([]int, n),
		reflect: make([]int, n),
		drop:    mgl32.Translate3D(0, -l.ItemHeight-1, 0),
	}

	for i, card := range c.Cards() {
		front := quarkgl.NewQuad(l.ItemWidth, l.ItemHeight, false)
		front.Material = quarkgl.Material{Texture: card.Texture}
		st.front[i] = s.AddMesh(front)

		mirror := quarkgl.NewQuad(l.ItemWidth, l.ItemHeight, true)
		mirror.Material = quarkgl.Material{Texture: card.Texture, Opacity: reflectionOpacity}
		st.reflect[i] = s.AddMesh(mirror)
	}
	st.sync(c.Cards())
	return st
}

// sync copies card transforms into the meshes. The reflection hangs below
// the front plane in the card's frame.
func (st *stage) sync(cards []coverflow.Card) {
	for i := range cards {
		m := cards[i].Transform()
		st.scene.UpdateMeshTransform(st.front[i], m)
		st.scene.UpdateMeshTransform(st.reflect[i], m.Mul4(st.drop))
	}
}

func (st *stage) setCardTexture(i int, tex *quarkgl.Texture) {
	if i < 0 || i >= len(st.front) {
		return
	}
	st.scene.SetMeshTexture(st.front[i], tex)
	st.scene.SetMeshTexture(st.reflect[i], tex)
}

// showReflections toggles every reflection plane.
func (st *stage) showReflections(on bool) {
	for _, id := range st.reflect {
		st.scene.SetMeshEnabled(id, on)
	}
}

func (st *stage) setBackground(tex *quarkgl.Texture) {
	st.scene.SetMeshTexture(st.bg, tex)
}
