package quarkgl

import "github.com/go-gl/mathgl/mgl32"

// Material is a minimal surface description.
type Material struct {
	BaseColor Color
	Texture   *Texture
	Opacity   uint8 // 0..255. 255 means opaque.
	Unlit     bool
}

// LightMode defines minimal lighting options.
type LightMode uint8

const (
	LightOff LightMode = iota
	LightAmbientDirectional
	LightAmbientPoint
)

// Light is a minimal light setup.
//
// Lighting is flat per triangle and two-sided.
type Light struct {
	Mode    LightMode
	Ambient float32 // 0..1

	// Directional: direction *towards* the scene.
	Dir mgl32.Vec3

	// Point: position and range; intensity fades to zero at Range.
	Position mgl32.Vec3
	Range    float32

	Amount float32 // diffuse contribution, may exceed 1
}

// CameraType selects camera projection.
type CameraType uint8

const (
	CameraPerspective CameraType = iota
	CameraOrtho
)

// Camera describes the viewing transform.
type Camera struct {
	Type CameraType

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	// Perspective.
	FOVYRad float32

	// Orthographic (half-height).
	OrthoSize float32

	Near float32
	Far  float32
}

// View returns the camera view matrix.
func (c Camera) View() mgl32.Mat4 {
	up := c.Up
	if up == (mgl32.Vec3{}) {
		up = V3(0, 1, 0)
	}
	return mgl32.LookAtV(c.Position, c.Target, up)
}

// Projection returns the projection matrix for a target aspect.
func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	if aspect == 0 {
		aspect = 1
	}
	switch c.Type {
	case CameraOrtho:
		size := c.OrthoSize
		if size == 0 {
			size = 1
		}
		right := size * aspect
		return mgl32.Ortho(-right, right, -size, size, c.Near, c.Far)
	default:
		fov := c.FOVYRad
		if fov == 0 {
			fov = 1
		}
		return mgl32.Perspective(fov, aspect, c.Near, c.Far)
	}
}

// Vertex is a mesh vertex. UV (0,0) is the top-left of the texture.
type Vertex struct {
	Pos mgl32.Vec3
	UV  mgl32.Vec2
}

// Mesh is a triangle mesh with an object transform.
type Mesh struct {
	Enabled bool

	Vertices []Vertex
	Indices  []uint16 // triangle list

	Transform mgl32.Mat4
	Material  Material
}

// NewQuad returns a w x h plane in the XY plane, centred on the origin and
// facing +Z. With flipV the texture is mirrored vertically.
func NewQuad(w, h float32, flipV bool) Mesh {
	hw, hh := w/2, h/2
	top, bottom := float32(0), float32(1)
	if flipV {
		top, bottom = 1, 0
	}
	return Mesh{
		Vertices: []Vertex{
			{Pos: V3(-hw, hh, 0), UV: mgl32.Vec2{0, top}},
			{Pos: V3(hw, hh, 0), UV: mgl32.Vec2{1, top}},
			{Pos: V3(hw, -hh, 0), UV: mgl32.Vec2{1, bottom}},
			{Pos: V3(-hw, -hh, 0), UV: mgl32.Vec2{0, bottom}},
		},
		Indices: []uint16{0, 3, 2, 0, 2, 1},
	}
}

// Scene is a collection of objects to render.
type Scene struct {
	Camera Camera
	Light  Light

	meshes []Mesh
	alive  []bool
}

// CreateScene allocates a scene with a fixed mesh capacity.
func CreateScene(maxMeshes int) *Scene {
	if maxMeshes < 0 {
		maxMeshes = 0
	}
	return &Scene{
		Camera: Camera{
			Type:      CameraPerspective,
			Position:  V3(0, 0, 3),
			Target:    V3(0, 0, 0),
			Up:        V3(0, 1, 0),
			FOVYRad:   1.0,
			Near:      0.05,
			Far:       100,
			OrthoSize: 1,
		},
		Light: Light{
			Mode:    LightAmbientDirectional,
			Ambient: 0.25,
			Dir:     Normalize(V3(1, 1, 1)),
			Amount:  0.75,
		},
		meshes: make([]Mesh, maxMeshes),
		alive:  make([]bool, maxMeshes),
	}
}

// AddMesh adds a mesh to the scene and returns its id or -1 if full.
func (s *Scene) AddMesh(m Mesh) int {
	if s == nil {
		return -1
	}
	for i := range s.meshes {
		if s.alive[i] {
			continue
		}
		if m.Transform == (mgl32.Mat4{}) {
			m.Transform = mgl32.Ident4()
		}
		if m.Material.Opacity == 0 {
			m.Material.Opacity = 0xFF
		}
		if m.Material.BaseColor == (Color{}) {
			m.Material.BaseColor = RGB(0xFF, 0xFF, 0xFF)
		}
		m.Enabled = true
		s.meshes[i] = m
		s.alive[i] = true
		return i
	}
	return -1
}

// RemoveMesh removes a mesh by id.
func (s *Scene) RemoveMesh(id int) {
	if !s.valid(id) {
		return
	}
	s.alive[id] = false
	s.meshes[id] = Mesh{}
}

// SetMeshEnabled enables/disables a mesh by id.
func (s *Scene) SetMeshEnabled(id int, enabled bool) {
	if !s.valid(id) {
		return
	}
	s.meshes[id].Enabled = enabled
}

// UpdateMeshTransform updates a mesh transform by id.
func (s *Scene) UpdateMeshTransform(id int, m mgl32.Mat4) {
	if !s.valid(id) {
		return
	}
	s.meshes[id].Transform = m
}

// SetMeshTexture swaps the texture of a mesh by id.
func (s *Scene) SetMeshTexture(id int, tex *Texture) {
	if !s.valid(id) {
		return
	}
	s.meshes[id].Material.Texture = tex
}

// Mesh returns a copy of the mesh with the given id.
func (s *Scene) Mesh(id int) (Mesh, bool) {
	if !s.valid(id) {
		return Mesh{}, false
	}
	return s.meshes[id], true
}

func (s *Scene) valid(id int) bool {
	return s != nil && id >= 0 && id < len(s.meshes) && s.alive[id]
}

func (s *Scene) eachMesh(fn func(m *Mesh)) {
	for i := range s.meshes {
		if !s.alive[i] {
			continue
		}
		fn(&s.meshes[i])
	}
}
