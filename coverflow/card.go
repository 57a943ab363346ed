package coverflow

import (
	"coverflow/quarkgl"

	"github.com/go-gl/mathgl/mgl32"
)

// Card is one slide. Its transform is written only by the Driver.
type Card struct {
	Index    int
	Position mgl32.Vec3
	RotY     float32
	Texture  *quarkgl.Texture
}

// Transform returns the card's model matrix.
func (c *Card) Transform() mgl32.Mat4 {
	return quarkgl.TRS(c.Position, c.RotY)
}

// AtRest reports whether the card sits exactly on t.
func (c *Card) AtRest(t Target) bool {
	return c.Position.X() == t.X && c.Position.Z() == -t.Z && c.RotY == t.RotY
}
