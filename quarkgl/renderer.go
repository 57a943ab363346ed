package quarkgl

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// minClipW drops triangles touching the camera plane; there is no near clipping.
const minClipW = 1e-4

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	ClearColor Color

	depthBuf []float32
	blended  []blendItem
}

type blendItem struct {
	mesh  *Mesh
	viewZ float32
}

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Mode:       RenderTextured,
		Depth:      enableDepth,
		ClearColor: RGB(0, 0, 0),
	}
	if enableDepth && w > 0 && h > 0 {
		r.depthBuf = make([]float32, w*h)
	}
	return r
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on || w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// Render renders a scene into the target.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)

	if r.Depth {
		r.EnableDepth(true, w, h)
		r.clearDepth()
	}

	view := s.Camera.View()
	proj := s.Camera.Projection(float32(w) / float32(h))
	vp := proj.Mul4(view)

	r.blended = r.blended[:0]
	s.eachMesh(func(m *Mesh) {
		if m == nil || !m.Enabled {
			return
		}
		if m.Material.Opacity < 0xFF {
			origin := transformPoint(view.Mul4(m.Transform), mgl32.Vec3{})
			r.blended = append(r.blended, blendItem{mesh: m, viewZ: origin.Z()})
			return
		}
		r.renderMesh(t, w, h, vp, m, s.Light, true)
	})

	// Farthest first; view space looks down -Z.
	slices.SortStableFunc(r.blended, func(a, b blendItem) int {
		return cmp.Compare(a.viewZ, b.viewZ)
	})
	for _, it := range r.blended {
		r.renderMesh(t, w, h, vp, it.mesh, s.Light, false)
	}
}

type rasterVertex struct {
	x, y int
	z    float32 // NDC depth
	iw   float32 // 1/w
	uw   float32 // u/w
	vw   float32 // v/w
}

func (r *Renderer) renderMesh(t Target, w, h int, vp mgl32.Mat4, m *Mesh, light Light, writeDepth bool) {
	if len(m.Vertices) == 0 || len(m.Indices) < 3 {
		return
	}
	model := m.Transform
	if model == (mgl32.Mat4{}) {
		model = mgl32.Ident4()
	}
	mvp := vp.Mul4(model)
	mat := m.Material

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0 := int(m.Indices[i+0])
		i1 := int(m.Indices[i+1])
		i2 := int(m.Indices[i+2])
		if i0 >= len(m.Vertices) || i1 >= len(m.Vertices) || i2 >= len(m.Vertices) {
			continue
		}
		v0, v1, v2 := m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]

		r0, ok0 := project(mvp, v0, w, h)
		r1, ok1 := project(mvp, v1, w, h)
		r2, ok2 := project(mvp, v2, w, h)
		if !ok0 || !ok1 || !ok2 {
			continue
		}

		shade := mat.BaseColor
		if !mat.Unlit {
			intensity := lightIntensity(light,
				transformPoint(model, v0.Pos),
				transformPoint(model, v1.Pos),
				transformPoint(model, v2.Pos))
			shade = shade.MulScalar(intensity)
		}
		shade.A = mat.Opacity

		switch r.Mode {
		case RenderWireframe:
			r.drawLine(t, r0.x, r0.y, r1.x, r1.y, shade)
			r.drawLine(t, r1.x, r1.y, r2.x, r2.y, shade)
			r.drawLine(t, r2.x, r2.y, r0.x, r0.y, shade)
		case RenderSolidFlat:
			r.fillTriangle(t, w, h, r0, r1, r2, shade, nil, writeDepth)
		default:
			r.fillTriangle(t, w, h, r0, r1, r2, shade, mat.Texture, writeDepth)
		}
	}
}

func project(mvp mgl32.Mat4, v Vertex, w, h int) (rasterVertex, bool) {
	c := mvp.Mul4x1(v.Pos.Vec4(1))
	cw := c.W()
	if cw <= minClipW {
		return rasterVertex{}, false
	}
	iw := 1 / cw
	nx, ny, nz := c.X()*iw, c.Y()*iw, c.Z()*iw
	sx := (nx*0.5 + 0.5) * float32(w-1)
	sy := (1 - (ny*0.5 + 0.5)) * float32(h-1)
	return rasterVertex{
		x:  int(sx + 0.5),
		y:  int(sy + 0.5),
		z:  nz,
		iw: iw,
		uw: v.UV.X() * iw,
		vw: v.UV.Y() * iw,
	}, true
}

func lightIntensity(l Light, a, b, c mgl32.Vec3) float32 {
	amb := Clamp01(l.Ambient)
	n := Normalize(b.Sub(a).Cross(c.Sub(a)))
	switch l.Mode {
	case LightAmbientDirectional:
		ld := Normalize(l.Dir)
		if ld == (mgl32.Vec3{}) {
			return amb
		}
		return Clamp01(amb + abs32(n.Dot(ld.Mul(-1)))*l.Amount)
	case LightAmbientPoint:
		center := a.Add(b).Add(c).Mul(1.0 / 3)
		toLight := l.Position.Sub(center)
		dist := toLight.Len()
		if dist == 0 {
			return Clamp01(amb + l.Amount)
		}
		atten := float32(1)
		if l.Range > 0 {
			f := dist / l.Range
			atten = Clamp01(1 - f*f)
		}
		return Clamp01(amb + abs32(n.Dot(toLight.Mul(1/dist)))*l.Amount*atten)
	default:
		return 1
	}
}

func (r *Renderer) depthTest(w int, x, y int, z float32, write bool) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	idx := y*w + x
	if x < 0 || x >= w || idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is in [-1,1]. Map to [0,1].
	d := Clamp01(z*0.5 + 0.5)
	if d >= r.depthBuf[idx] {
		return false
	}
	if write {
		r.depthBuf[idx] = d
	}
	return true
}

func (r *Renderer) fillTriangle(t Target, w, h int, v0, v1, v2 rasterVertex, shade Color, tex *Texture, writeDepth bool) {
	area := edgeFn(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if area == 0 {
		return
	}
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}

	minX, maxX := max(min(v0.x, v1.x, v2.x), 0), min(max(v0.x, v1.x, v2.x), w-1)
	minY, maxY := max(min(v0.y, v1.y, v2.y), 0), min(max(v0.y, v1.y, v2.y), h-1)
	if minX > maxX || minY > maxY {
		return
	}
	invArea := 1.0 / float32(area)

	// Edge functions step linearly in x and y.
	dx0, dy0 := v2.y-v1.y, -(v2.x - v1.x)
	dx1, dy1 := v0.y-v2.y, -(v0.x - v2.x)
	dx2, dy2 := v1.y-v0.y, -(v1.x - v0.x)
	row0 := edgeFn(v1.x, v1.y, v2.x, v2.y, minX, minY)
	row1 := edgeFn(v2.x, v2.y, v0.x, v0.y, minX, minY)
	row2 := edgeFn(v0.x, v0.y, v1.x, v1.y, minX, minY)

	// Pixels exactly on an edge belong to one triangle only, so shared edges
	// of translucent quads are not blended twice.
	b0, b1, b2 := edgeBias(dx0, dy0), edgeBias(dx1, dy1), edgeBias(dx2, dy2)

	for y := minY; y <= maxY; y++ {
		e0, e1, e2 := row0, row1, row2
		for x := minX; x <= maxX; x++ {
			if ((e0 + b0) | (e1 + b1) | (e2 + b2)) >= 0 {
				a0 := float32(e0) * invArea
				a1 := float32(e1) * invArea
				a2 := float32(e2) * invArea
				z := a0*v0.z + a1*v1.z + a2*v2.z
				if r.depthTest(w, x, y, z, writeDepth) {
					c := shade
					if tex != nil {
						iw := a0*v0.iw + a1*v1.iw + a2*v2.iw
						u := (a0*v0.uw + a1*v1.uw + a2*v2.uw) / iw
						v := (a0*v0.vw + a1*v1.vw + a2*v2.vw) / iw
						c = tex.Sample(u, v).Modulate(shade)
					}
					r.plot(t, x, y, c)
				}
			}
			e0 += dx0
			e1 += dx1
			e2 += dx2
		}
		row0 += dy0
		row1 += dy1
		row2 += dy2
	}
}

func (r *Renderer) plot(t Target, x, y int, c Color) {
	switch c.A {
	case 0:
		return
	case 0xFF:
		t.SetPixel(x, y, c)
	default:
		t.SetPixel(x, y, Blend(t.Pixel(x, y), c))
	}
}

func (r *Renderer) drawLine(t Target, x0, y0, x1, y1 int, c Color) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		r.plot(t, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func edgeBias(dx, dy int) int {
	if dx > 0 || (dx == 0 && dy > 0) {
		return 0
	}
	return -1
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
