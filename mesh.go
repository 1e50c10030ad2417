package warp

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Mesh is one image plane. It references the scene's shared geometry, owns
// its uniform set exclusively, and has a horizontal offset fixed at
// construction. Y and RotationZ are rewritten every frame by the Driver.
type Mesh struct {
	Index    int
	geometry *PlaneGeometry
	uniforms *Uniforms
	x        float64

	// Y is the vertical position in world units.
	Y float64
	// RotationZ is the rotation about the Z axis in radians.
	RotationZ float64

	verts    [4]ebiten.Vertex
	shaderOp ebiten.DrawTrianglesShaderOptions
}

// X returns the layout offset computed by the scene composer.
func (m *Mesh) X() float64 { return m.x }

// Geometry returns the shared plane geometry.
func (m *Mesh) Geometry() *PlaneGeometry { return m.geometry }

// Uniforms returns the mesh's own uniform set.
func (m *Mesh) Uniforms() *Uniforms { return m.uniforms }

// ApplyProgress sets the per-frame transform driven by the transition
// progress: the plane sinks by progress and turns by a quarter turn at 1.
func (m *Mesh) ApplyProgress(progress float64) {
	m.Y = -progress
	m.RotationZ = progress * math.Pi / 2
}

// Model returns the mesh's model matrix: Translate(X, Y, 0) * RotateZ.
func (m *Mesh) Model() mgl64.Mat4 {
	return mgl64.Translate3D(m.x, m.Y, 0).Mul4(mgl64.HomogRotate3DZ(m.RotationZ))
}

// texture returns the bound image or the blank placeholder.
func (m *Mesh) texture() *ebiten.Image {
	if img := m.uniforms.Texture(uniformTexture); img != nil {
		return img
	}
	return ensureBlankTexture()
}

// projectVertices fills m.verts with the screen-space corners of the plane
// as seen by cam in a w x h target. Returns false if any corner is behind
// the camera.
//
// The planes only translate and rotate about Z, so they stay parallel to the
// image plane and an affine texture mapping is exact.
func (m *Mesh) projectVertices(cam *Camera, w, h int, tex *ebiten.Image) bool {
	model := m.Model()
	b := tex.Bounds()
	tw, th := float64(b.Dx()), float64(b.Dy())
	for i := 0; i < 4; i++ {
		world := model.Mul4x1(m.geometry.Corner(i).Vec4(1)).Vec3()
		sx, sy, ok := cam.Project(world, w, h)
		if !ok {
			return false
		}
		uv := m.geometry.UV(i)
		m.verts[i] = ebiten.Vertex{
			DstX:   float32(sx),
			DstY:   float32(sy),
			SrcX:   float32(float64(b.Min.X) + uv.X*tw),
			SrcY:   float32(float64(b.Min.Y) + (1-uv.Y)*th),
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
	}
	return true
}

// draw renders the mesh into dst with the material shader.
func (m *Mesh) draw(dst *ebiten.Image, cam *Camera, shader *ebiten.Shader) {
	b := dst.Bounds()
	tex := m.texture()
	if !m.projectVertices(cam, b.Dx(), b.Dy(), tex) {
		return
	}
	m.shaderOp.Images[0] = tex
	m.shaderOp.Uniforms = m.uniforms.kageUniforms()
	dst.DrawTrianglesShader(m.verts[:], planeIndices, shader, &m.shaderOp)
}
