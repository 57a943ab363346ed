// Package quarkgl is a small, predictable software 3D renderer.
//
// It draws textured quads and simple triangle meshes into a caller-provided
// Target. It is not a game engine and does not provide a GPU abstraction.
//
// Pipeline (fixed):
//
//	Scene → Transform → Projection → Clipping → Rasterization → Frame output.
//
// Opaque meshes are drawn first with depth test and depth write. Translucent
// meshes (Material.Opacity < 255) follow, sorted back to front, with depth test
// only. Texture coordinates are interpolated perspective-correct.
//
// Vector and matrix math is github.com/go-gl/mathgl/mgl32.
package quarkgl
