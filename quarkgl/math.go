package quarkgl

import "github.com/go-gl/mathgl/mgl32"

func V3(x, y, z float32) mgl32.Vec3 { return mgl32.Vec3{x, y, z} }

// Normalize returns v with unit length, or the zero vector for a zero input.
func Normalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// TRS builds a transform that rotates around Y, then translates.
func TRS(pos mgl32.Vec3, rotY float32) mgl32.Mat4 {
	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(mgl32.HomogRotate3DY(rotY))
}

func transformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}
